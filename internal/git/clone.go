package git

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"path/filepath"
	"strings"
	"unicode"

	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/transport"
)

// CloneOptions describe one clone operation.
type CloneOptions struct {
	URL      string
	Path     string
	Bare     bool
	Progress io.Writer
}

// Clone fetches the repository at opts.URL into opts.Path, tags
// included, and opens the result. The URL is sanitized first so pasted
// "git clone ..." command lines work as-is.
func Clone(ctx context.Context, opts CloneOptions) (*Store, error) {
	url := SanitizeURL(opts.URL)
	if !ValidGitURL(url) {
		return nil, fmt.Errorf("%q is not a clonable git url", opts.URL)
	}
	abs, err := filepath.Abs(opts.Path)
	if err != nil {
		return nil, err
	}
	slog.Info("cloning repository", slog.String("url", url), slog.String("into", abs))
	repo, err := gitlib.PlainCloneContext(ctx, abs, opts.Bare, &gitlib.CloneOptions{
		URL:      url,
		Progress: opts.Progress,
		Tags:     gitlib.AllTags,
	})
	if err != nil {
		return nil, fmt.Errorf("clone %s: %w", url, err)
	}
	return newStore(repo, abs), nil
}

// SanitizeURL normalizes text pasted as a clone source: surrounding
// whitespace goes, a leading "git clone" invocation is stripped, and
// only the first whitespace-delimited token survives.
func SanitizeURL(raw string) string {
	url := strings.TrimSpace(raw)
	url = strings.TrimPrefix(url, "git clone")
	url = strings.TrimSpace(url)
	if i := strings.IndexFunc(url, unicode.IsSpace); i >= 0 {
		url = url[:i]
	}
	return url
}

// ValidGitURL reports whether url names a transport git can dial: a
// full URL, an scp-like SSH shorthand, or a local path.
func ValidGitURL(url string) bool {
	if url == "" {
		return false
	}
	ep, err := transport.NewEndpoint(url)
	return err == nil && ep.Protocol != ""
}

// DefaultCloneDir derives the checkout directory git itself would pick
// for url, or "" when none can be derived.
func DefaultCloneDir(url string) string {
	trimmed := strings.TrimSuffix(strings.TrimRight(url, "/"), ".git")
	base := path.Base(strings.ReplaceAll(trimmed, ":", "/"))
	if base == "." || base == "/" || base == "" {
		return ""
	}
	return base
}
