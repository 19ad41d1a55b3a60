// Package browse runs the interactive comparison loop: pick one or two
// references, see the diff, repeat.
package browse

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/refview-dev/refview/internal/compare"
	"github.com/refview-dev/refview/internal/git"
	"github.com/refview-dev/refview/internal/present"
)

// Config wires one interactive session.
type Config struct {
	Store   *git.Store
	Out     io.Writer
	Options present.Options
	Watch   bool // re-list refs when the repository changes
}

// Run drives selection rounds until the user quits: list references
// (re-listing when the watcher flagged changes), ask for up to two, and
// render the comparison they resolve to. Selections that resolve to
// nothing just start the next round.
func Run(ctx context.Context, cfg Config) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("browse needs an interactive terminal")
	}

	var w *watcher
	if cfg.Watch {
		started, err := newWatcher(cfg.Store.Path())
		if err != nil {
			slog.Warn("ref auto-refresh disabled", slog.Any("error", err))
		} else {
			w = started
			defer w.Close()
		}
	}

	presenter := present.New(cfg.Out, cfg.Options)
	refs, err := cfg.Store.ListRefs()
	if err != nil {
		return err
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if w != nil && w.Dirty() {
			fresh, err := cfg.Store.ListRefs()
			if err != nil {
				slog.Error("ref refresh failed", slog.Any("error", err))
			} else {
				refs = fresh
			}
		}
		if len(refs) == 0 {
			return errors.New("repository has no selectable references")
		}

		selection, quit, err := pickSelection(cfg.Store, refs)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
		if !compare.Available(selection) {
			fmt.Fprintln(cfg.Out, "That selection cannot be compared.")
			continue
		}
		fmt.Fprintln(cfg.Out, compare.Label(selection))

		req, err := compare.Resolve(selection)
		if err != nil {
			slog.Error("comparison failed", slog.Any("error", err))
			continue
		}
		if req == nil {
			fmt.Fprintln(cfg.Out, "Nothing to compare for that selection.")
			continue
		}
		if err := presenter.Show(ctx, cfg.Store, req); err != nil {
			return err
		}
		fmt.Fprintln(cfg.Out)
	}
}

// pickSelection asks for up to two references. Selection order is row
// order, matching how tree views report multi-selections. Quitting is
// either an abort (ctrl+c, esc) or confirming an empty selection.
func pickSelection(store *git.Store, refs []git.Ref) ([]compare.Node, bool, error) {
	options := make([]huh.Option[int], 0, len(refs))
	for i, ref := range refs {
		options = append(options, huh.NewOption(optionLabel(ref), i))
	}

	var picked []int
	form := huh.NewForm(huh.NewGroup(
		huh.NewMultiSelect[int]().
			Title("Select references to compare").
			Description("One compares against the working tree, two compare with each other.\nConfirm an empty selection to quit.").
			Options(options...).
			Limit(2).
			Value(&picked),
	))
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, true, nil
		}
		return nil, false, err
	}
	if len(picked) == 0 {
		return nil, true, nil
	}

	nodes := make([]compare.Node, 0, len(picked))
	for _, idx := range picked {
		nodes = append(nodes, compare.NodeForRef(store, refs[idx]))
	}
	return nodes, false, nil
}

// optionLabel renders one picker row: kind, name, and the commit the
// row would compare at. Unpeelable tags show dashes instead of a hash.
func optionLabel(ref git.Ref) string {
	hash := ref.Target
	if ref.Kind == git.RefKindTag {
		hash = ref.Peeled
	}
	short := "-------"
	if !hash.IsZero() {
		short = git.ShortHash(hash)
	}
	return fmt.Sprintf("%-10s %-32s %s", ref.Kind, ref.Short, short)
}
