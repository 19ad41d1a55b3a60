package present

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/refview-dev/refview/internal/git"
)

const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiCyan  = "\x1b[36m"
)

// diffLineKind classifies rendered diff lines for styling.
type diffLineKind uint8

const (
	linePlain diffLineKind = iota
	lineFileHeader
	lineMeta
	lineHunk
	lineAdd
	lineDel
	lineContext
)

func classifyDiffLine(line string) diffLineKind {
	switch {
	case strings.HasPrefix(line, "diff --git "):
		return lineFileHeader
	case strings.HasPrefix(line, "@@"):
		return lineHunk
	case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"),
		strings.HasPrefix(line, "index "), strings.HasPrefix(line, "new file"),
		strings.HasPrefix(line, "deleted file"), strings.HasPrefix(line, "old mode"),
		strings.HasPrefix(line, "new mode"), strings.HasPrefix(line, "rename "),
		strings.HasPrefix(line, "similarity "), strings.HasPrefix(line, "Binary files"),
		strings.HasPrefix(line, "\\ "):
		return lineMeta
	case strings.HasPrefix(line, "+"):
		return lineAdd
	case strings.HasPrefix(line, "-"):
		return lineDel
	case strings.HasPrefix(line, " "):
		return lineContext
	default:
		return linePlain
	}
}

// diffLineCode returns the code portion of a diff body line and the
// offset where it starts. Header and meta lines carry no code.
func diffLineCode(line string) (string, int, bool) {
	if line == "" {
		return "", 0, false
	}
	if strings.HasPrefix(line, "+++") || strings.HasPrefix(line, "---") || strings.HasPrefix(line, "\\ ") {
		return "", 0, false
	}
	switch line[0] {
	case '+', '-', ' ':
		return line[1:], 1, true
	default:
		return "", 0, false
	}
}

// highlighter colorizes the code portion of diff lines with the lexer
// of the file section currently being rendered.
type highlighter struct {
	style   *chroma.Style
	lexer   chroma.Lexer
	enabled bool
}

func newHighlighter(enabled bool, pref ThemePreference) *highlighter {
	if !enabled {
		return &highlighter{}
	}
	return &highlighter{style: styleForPreference(pref), enabled: true}
}

// observeLine switches the active lexer whenever a new file section
// begins. A header without a usable path disables highlighting until
// the next section.
func (h *highlighter) observeLine(line string) {
	if !h.enabled {
		return
	}
	path, ok := git.DiffHeaderPath(line)
	if !ok {
		return
	}
	h.lexer = nil
	if path != "" {
		h.lexer = lexerForPath(path)
	}
}

// codeANSI renders code with the active lexer, emitting a truecolor
// escape per token. ok=false means the caller should fall back to the
// plain line.
func (h *highlighter) codeANSI(code string) (string, bool) {
	if !h.enabled || h.lexer == nil || code == "" {
		return "", false
	}
	iter, err := h.lexer.Tokenise(nil, code)
	if err != nil {
		return "", false
	}
	var b strings.Builder
	for _, token := range iter.Tokens() {
		value := strings.TrimRight(token.Value, "\n")
		if value == "" {
			continue
		}
		if color := ansiForEntry(h.style.Get(token.Type)); color != "" {
			b.WriteString(color)
			b.WriteString(value)
			b.WriteString(ansiReset)
		} else {
			b.WriteString(value)
		}
	}
	return b.String(), true
}

func ansiForEntry(entry chroma.StyleEntry) string {
	if !entry.Colour.IsSet() {
		return ""
	}
	c := entry.Colour
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", c.Red(), c.Green(), c.Blue())
}

func lexerForPath(path string) chroma.Lexer {
	lexer := lexers.Match(path)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}
