// Package present renders comparison results as optionally colorized,
// syntax-highlighted unified diffs on a terminal.
package present

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	darkmode "github.com/thiagokokada/dark-mode-go"
	"golang.org/x/term"
)

// ThemePreference selects the highlight palette.
type ThemePreference int

const (
	ThemeAuto ThemePreference = iota
	ThemeLight
	ThemeDark
)

func (p ThemePreference) String() string {
	switch p {
	case ThemeLight:
		return "light"
	case ThemeDark:
		return "dark"
	default:
		return "auto"
	}
}

// ThemePreferenceFromString maps user input to a preference; anything
// unrecognized means auto.
func ThemePreferenceFromString(raw string) ThemePreference {
	switch raw {
	case "light":
		return ThemeLight
	case "dark":
		return ThemeDark
	default:
		return ThemeAuto
	}
}

// detectDarkMode is swappable for tests.
var detectDarkMode = darkmode.IsDarkMode

func styleNameForPreference(pref ThemePreference) string {
	switch pref {
	case ThemeLight:
		return "github"
	case ThemeDark:
		return "github-dark"
	default:
		dark, err := detectDarkMode()
		if err != nil {
			slog.Debug("dark mode detection failed", slog.Any("error", err))
			return "github"
		}
		if dark {
			return "github-dark"
		}
		return "github"
	}
}

func styleForPreference(pref ThemePreference) *chroma.Style {
	if style := styles.Get(styleNameForPreference(pref)); style != nil {
		return style
	}
	return styles.Fallback
}

// ColorMode controls whether output is colorized at all.
type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

func (m ColorMode) String() string {
	switch m {
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "auto"
	}
}

// ColorModeFromString maps user input to a mode; anything unrecognized
// means auto.
func ColorModeFromString(raw string) ColorMode {
	switch raw {
	case "always":
		return ColorAlways
	case "never":
		return ColorNever
	default:
		return ColorAuto
	}
}

// enabled decides whether to emit escapes for w. Auto colorizes only
// real terminals.
func (m ColorMode) enabled(w io.Writer) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd()))
	}
}
