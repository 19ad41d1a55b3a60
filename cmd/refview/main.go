// refview is a terminal browser for git references: it lists a
// repository's branches, tags, and symbolic refs, compares any two of
// them or one against the working tree, clones new repositories, and
// keeps a registry of known ones.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/refview-dev/refview/internal/buildinfo"
	"github.com/refview-dev/refview/internal/config"
	"github.com/refview-dev/refview/internal/git"
	"github.com/refview-dev/refview/internal/present"
)

var (
	flagRepo     string
	flagVerbose  bool
	flagMode     string
	flagColor    string
	flagContext  int
	flagNoSyntax bool

	appConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "refview",
	Short: "Browse and compare git references",
	Long: `refview lists a repository's branches, tags, and symbolic refs and
compares any two of them, or one of them against the working tree. It
can also clone repositories and keep a registry of known ones, sorted
into groups.`,
	Version:       buildinfo.Version(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if flagVerbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagRepo, "repo", "C", ".", "repository path (any directory inside it works)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().StringVar(&flagMode, "mode", "", "color mode: auto, light, or dark")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "", "colorize output: auto, always, or never")
	rootCmd.PersistentFlags().IntVar(&flagContext, "context", 0, "unified diff context lines")
	rootCmd.PersistentFlags().BoolVar(&flagNoSyntax, "no-syntax", false, "disable syntax highlighting")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(ExitError)
	}
}

func openStore() (*git.Store, error) {
	return git.Open(flagRepo)
}

func loadAppConfig() *config.Config {
	if appConfig != nil {
		return appConfig
	}
	appConfig = &config.Config{}
	path, err := config.Path()
	if err != nil {
		slog.Warn("config location unknown", slog.Any("error", err))
		return appConfig
	}
	cfg, err := config.Load(path)
	if err != nil {
		slog.Warn("ignoring config", slog.Any("error", err))
		return appConfig
	}
	appConfig = cfg
	return appConfig
}

// presentOptions merges presentation settings; flags win over config.
func presentOptions() present.Options {
	cfg := loadAppConfig()
	opts := present.Options{
		Theme:  present.ThemePreferenceFromString(firstNonEmpty(flagMode, cfg.Mode)),
		Color:  present.ColorModeFromString(firstNonEmpty(flagColor, cfg.Color)),
		Syntax: cfg.SyntaxEnabled() && !flagNoSyntax,
	}
	switch {
	case flagContext > 0:
		opts.Context = flagContext
	case cfg.Context > 0:
		opts.Context = cfg.Context
	}
	return opts
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
