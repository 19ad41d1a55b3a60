package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/refview-dev/refview/internal/browse"
)

var browseNoWatch bool

func init() {
	browseCmd.Flags().BoolVar(&browseNoWatch, "nowatch", false, "do not refresh the ref list on repository changes")
	rootCmd.AddCommand(browseCmd)
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactively pick and compare references",
	Long: `Browse shows the repository's references and asks which to compare.
Picking one reference compares it against the working tree; picking two
compares them against each other. The list refreshes when the
repository changes underneath the session.`,
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	cfg := loadAppConfig()
	return browse.Run(cmd.Context(), browse.Config{
		Store:   store,
		Out:     os.Stdout,
		Options: presentOptions(),
		Watch:   cfg.WatchEnabled() && !browseNoWatch,
	})
}
