package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/refview-dev/refview/internal/git"
)

var (
	refsJSON  bool
	refsKinds []string
)

func init() {
	refsCmd.Flags().BoolVar(&refsJSON, "json", false, "machine-readable output")
	refsCmd.Flags().StringSliceVar(&refsKinds, "kind", nil, "limit to kinds: branch, remote, tag, additional")
	rootCmd.AddCommand(refsCmd)
}

var refsCmd = &cobra.Command{
	Use:   "refs",
	Short: "List the repository's selectable references",
	RunE:  runRefs,
}

type refEntry struct {
	Kind   string `json:"kind"`
	Name   string `json:"name"`
	Short  string `json:"short"`
	Target string `json:"target"`
	Peeled string `json:"peeled,omitempty"`
}

func runRefs(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	refs, err := store.ListRefs()
	if err != nil {
		return err
	}
	refs, err = filterRefKinds(refs, refsKinds)
	if err != nil {
		return err
	}

	if refsJSON {
		entries := make([]refEntry, 0, len(refs))
		for _, ref := range refs {
			entry := refEntry{
				Kind:   ref.Kind.String(),
				Name:   ref.Name,
				Short:  ref.Short,
				Target: ref.Target.String(),
			}
			if !ref.Peeled.IsZero() {
				entry.Peeled = ref.Peeled.String()
			}
			entries = append(entries, entry)
		}
		return outputJSON(entries)
	}

	for _, ref := range refs {
		line := fmt.Sprintf("%-10s %-40s %s", ref.Kind, ref.Short, git.ShortHash(ref.Target))
		if ref.Kind == git.RefKindTag && !ref.Peeled.IsZero() && ref.Peeled != ref.Target {
			line += " -> " + git.ShortHash(ref.Peeled)
		}
		fmt.Println(line)
	}
	return nil
}

// filterRefKinds keeps refs whose kind is named in kinds; empty keeps all.
func filterRefKinds(refs []git.Ref, kinds []string) ([]git.Ref, error) {
	if len(kinds) == 0 {
		return refs, nil
	}
	keep := make(map[string]bool, len(kinds))
	for _, kind := range kinds {
		switch kind {
		case "branch", "remote", "tag", "additional":
			keep[kind] = true
		default:
			return nil, fmt.Errorf("unknown ref kind %q", kind)
		}
	}
	var out []git.Ref
	for _, ref := range refs {
		if keep[ref.Kind.String()] {
			out = append(out, ref)
		}
	}
	return out, nil
}
