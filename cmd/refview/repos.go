package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/refview-dev/refview/internal/git"
	"github.com/refview-dev/refview/internal/registry"
)

var (
	reposJSON     bool
	reposAddGroup string
)

func init() {
	reposCmd.Flags().BoolVar(&reposJSON, "json", false, "machine-readable output")
	reposAddCmd.Flags().StringVar(&reposAddGroup, "group", "", "registry group for the repository")
	reposCmd.AddCommand(reposAddCmd)
	reposCmd.AddCommand(reposRemoveCmd)
	rootCmd.AddCommand(reposCmd)
}

var reposCmd = &cobra.Command{
	Use:   "repos",
	Short: "List registered repositories",
	RunE:  runRepos,
}

var reposAddCmd = &cobra.Command{
	Use:   "add [path]",
	Short: "Register an existing repository",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runReposAdd,
}

var reposRemoveCmd = &cobra.Command{
	Use:   "remove path",
	Short: "Remove a repository from the registry",
	Args:  cobra.ExactArgs(1),
	RunE:  runReposRemove,
}

func loadRegistry() (*registry.Registry, error) {
	path, err := registry.DefaultPath()
	if err != nil {
		return nil, err
	}
	return registry.Load(path)
}

func runRepos(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	listings := reg.Grouped()
	if reposJSON {
		return outputJSON(listings)
	}
	if len(listings) == 0 {
		fmt.Println("no repositories registered")
		return nil
	}
	for _, listing := range listings {
		name := listing.Group
		if name == "" {
			name = "(no group)"
		}
		fmt.Printf("%s:\n", name)
		for _, path := range listing.Repositories {
			fmt.Printf("  %s\n", path)
		}
	}
	return nil
}

func runReposAdd(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	store, err := git.Open(dir)
	if err != nil {
		return err
	}
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	var groupID string
	if reposAddGroup != "" {
		groupID = reg.EnsureGroup(reposAddGroup).ID
	}
	if reg.AddRepository(store.Path(), groupID) {
		fmt.Printf("registered %s\n", store.Path())
	} else {
		fmt.Printf("%s already registered\n", store.Path())
	}
	return reg.Save()
}

func runReposRemove(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	if !reg.RemoveRepository(path) {
		return fmt.Errorf("%s is not registered", path)
	}
	if err := reg.Save(); err != nil {
		return err
	}
	fmt.Printf("removed %s\n", path)
	return nil
}
