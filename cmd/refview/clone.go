package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/refview-dev/refview/internal/git"
	"github.com/refview-dev/refview/internal/registry"
)

var (
	cloneGroup string
	cloneBare  bool
)

func init() {
	cloneCmd.Flags().StringVar(&cloneGroup, "group", "", "registry group for the new repository")
	cloneCmd.Flags().BoolVar(&cloneBare, "bare", false, "clone without a working tree")
	rootCmd.AddCommand(cloneCmd)
}

var cloneCmd = &cobra.Command{
	Use:   "clone url [directory]",
	Short: "Clone a repository and register it",
	Long: `Clone fetches the repository at url, tags included, and records it in
the registry so other commands can find it. The url may be a pasted
"git clone ..." command line; it is cleaned up first.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runClone,
}

func runClone(cmd *cobra.Command, args []string) error {
	url := git.SanitizeURL(args[0])
	var dir string
	if len(args) == 2 {
		dir = args[1]
	} else {
		dir = git.DefaultCloneDir(url)
		if dir == "" {
			return fmt.Errorf("cannot derive a directory from %q, pass one explicitly", args[0])
		}
	}
	store, err := git.Clone(cmd.Context(), git.CloneOptions{
		URL:      url,
		Path:     dir,
		Bare:     cloneBare,
		Progress: os.Stderr,
	})
	if err != nil {
		return err
	}
	fmt.Printf("cloned %s into %s\n", url, store.Path())

	registerClone(store.Path())
	return nil
}

// registerClone records the new repository; a registry problem is worth
// a warning, not a failed clone.
func registerClone(path string) {
	regPath, err := registry.DefaultPath()
	if err != nil {
		slog.Warn("repository not registered", slog.Any("error", err))
		return
	}
	reg, err := registry.Load(regPath)
	if err != nil {
		slog.Warn("repository not registered", slog.Any("error", err))
		return
	}
	var groupID string
	if cloneGroup != "" {
		groupID = reg.EnsureGroup(cloneGroup).ID
	}
	reg.AddRepository(path, groupID)
	if err := reg.Save(); err != nil {
		slog.Warn("repository not registered", slog.Any("error", err))
	}
}
