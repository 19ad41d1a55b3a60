package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/refview-dev/refview/internal/buildinfo"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build revision",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("refview", buildinfo.String())
	},
}
