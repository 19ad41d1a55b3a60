package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/refview-dev/refview/internal/compare"
	"github.com/refview-dev/refview/internal/git"
	"github.com/refview-dev/refview/internal/present"
)

func init() {
	rootCmd.AddCommand(compareCmd)
}

var compareCmd = &cobra.Command{
	Use:   "compare [ref [ref]]",
	Short: "Compare two references, or one against the working tree",
	Long: `Compare resolves each named reference the way the browser would: tags
compare at the commit they peel to, branches and symbolic refs at their
current tip. With two references the older commit becomes the diff
base; with one, the working tree is compared against it.`,
	Example: `  refview compare main feature/login
  refview compare v1.2.0 v1.3.0
  refview compare v1.2.0`,
	Args: cobra.MaximumNArgs(2),
	RunE: runCompare,
}

func runCompare(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	refs, err := store.ListRefs()
	if err != nil {
		return err
	}

	selection := make([]compare.Node, 0, len(args))
	for _, arg := range args {
		selection = append(selection, nodeForName(store, refs, arg))
	}
	req, err := compare.Resolve(selection)
	if err != nil {
		return err
	}
	if req == nil {
		fmt.Fprintln(os.Stderr, "nothing to compare")
		os.Exit(ExitNoComparison)
	}
	presenter := present.New(os.Stdout, presentOptions())
	return presenter.Show(cmd.Context(), store, req)
}

// nodeForName maps an argument onto the row it would select in the
// browser: the listed ref matching by short or full name, or an inert
// node that resolves to nothing, like selecting a non-ref row.
func nodeForName(store *git.Store, refs []git.Ref, name string) compare.Node {
	for _, ref := range refs {
		if ref.Short == name || ref.Name == name {
			return compare.NodeForRef(store, ref)
		}
	}
	return compare.Node{Kind: compare.KindOther, Repo: store}
}
