package present

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/refview-dev/refview/internal/compare"
	"github.com/refview-dev/refview/internal/git"
)

// Options control how a comparison is rendered.
type Options struct {
	Theme   ThemePreference
	Color   ColorMode
	Syntax  bool // highlight code lines with the file's lexer
	Context int  // unified diff context lines, 0 for the default
}

// Presenter writes rendered comparisons to one output.
type Presenter struct {
	out   io.Writer
	opts  Options
	color bool
}

func New(out io.Writer, opts Options) *Presenter {
	return &Presenter{out: out, opts: opts, color: opts.Color.enabled(out)}
}

// Show renders the comparison req describes against store. Two-sided
// requests diff two commits; one-sided requests diff the target commit
// against the working tree.
func (p *Presenter) Show(ctx context.Context, store *git.Store, req *compare.Request) error {
	var (
		text string
		err  error
	)
	if req.TwoSided() {
		text, _, err = store.CommitDiff(ctx, req.Base, req.Target, p.opts.Context)
	} else {
		text, _, err = store.WorktreeDiff(ctx, req.Target, p.opts.Context)
	}
	if err != nil {
		return err
	}
	return p.Render(text)
}

// Render writes already-produced diff text, colorizing it when the
// output mode calls for it.
func (p *Presenter) Render(text string) error {
	w := bufio.NewWriter(p.out)
	if !p.color {
		if _, err := w.WriteString(text); err != nil {
			return err
		}
		return w.Flush()
	}

	h := newHighlighter(p.opts.Syntax, p.opts.Theme)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		h.observeLine(line)
		if _, err := w.WriteString(styleLine(line, h)); err != nil {
			return err
		}
		if i < len(lines)-1 {
			if err := w.WriteByte('\n'); err != nil {
				return err
			}
		}
	}
	return w.Flush()
}

func styleLine(line string, h *highlighter) string {
	switch classifyDiffLine(line) {
	case lineFileHeader, lineMeta:
		return ansiBold + line + ansiReset
	case lineHunk:
		return ansiCyan + line + ansiReset
	case lineAdd:
		return bodyLine(line, h, ansiGreen)
	case lineDel:
		return bodyLine(line, h, ansiRed)
	case lineContext:
		return bodyLine(line, h, "")
	default:
		return line
	}
}

// bodyLine colors the diff marker and, when a lexer is active, the code
// after it. Without highlighting the whole line takes the marker color.
func bodyLine(line string, h *highlighter, marker string) string {
	code, offset, ok := diffLineCode(line)
	if ok {
		if colored, did := h.codeANSI(code); did {
			prefix := line[:offset]
			if marker != "" {
				prefix = marker + prefix + ansiReset
			}
			return prefix + colored
		}
	}
	if marker == "" {
		return line
	}
	return marker + line + ansiReset
}
