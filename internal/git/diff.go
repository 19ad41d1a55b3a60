package git

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	fdiff "github.com/go-git/go-git/v5/plumbing/format/diff"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// DefaultContextLines matches git's unified diff default.
const DefaultContextLines = 3

// FileSection locates one file's patch inside rendered diff text.
// Line is the 1-based line number of the file's "diff --git" header.
type FileSection struct {
	Path string
	Line int
}

// CommitDiff renders the unified diff between two commits, base side
// first, prefixed with a short header naming both commits. The returned
// sections index each file header in the text.
func (s *Store) CommitDiff(ctx context.Context, base, target plumbing.Hash, contextLines int) (string, []FileSection, error) {
	if contextLines <= 0 {
		contextLines = DefaultContextLines
	}
	baseCommit, err := s.repo.CommitObject(base)
	if err != nil {
		return "", nil, fmt.Errorf("read commit %s: %w", ShortHash(base), err)
	}
	targetCommit, err := s.repo.CommitObject(target)
	if err != nil {
		return "", nil, fmt.Errorf("read commit %s: %w", ShortHash(target), err)
	}
	baseTree, err := baseCommit.Tree()
	if err != nil {
		return "", nil, err
	}
	targetTree, err := targetCommit.Tree()
	if err != nil {
		return "", nil, err
	}
	changes, err := object.DiffTreeWithOptions(ctx, baseTree, targetTree, object.DefaultDiffTreeOptions)
	if err != nil {
		return "", nil, fmt.Errorf("diff trees: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "comparing %s..%s\n", ShortHash(base), ShortHash(target))
	b.WriteString(commitSummary(baseCommit) + "\n")
	b.WriteString(commitSummary(targetCommit) + "\n\n")
	headerLines := strings.Count(b.String(), "\n")

	patchText, err := renderPatch(ctx, changes, contextLines)
	if err != nil {
		return "", nil, err
	}
	if patchText == "" {
		b.WriteString("No changes.\n")
		return b.String(), nil, nil
	}
	b.WriteString(patchText)
	return b.String(), parseDiffSections(patchText, headerLines), nil
}

func renderPatch(ctx context.Context, changes object.Changes, contextLines int) (string, error) {
	patch, err := changes.PatchContext(ctx)
	if err != nil {
		return "", fmt.Errorf("build patch: %w", err)
	}
	var buf bytes.Buffer
	enc := fdiff.NewUnifiedEncoder(&buf, contextLines)
	if err := enc.Encode(patch); err != nil {
		return "", fmt.Errorf("encode patch: %w", err)
	}
	return buf.String(), nil
}

// parseDiffSections indexes file headers in rendered diff text.
// lineOffset is the number of lines already emitted before the text.
func parseDiffSections(text string, lineOffset int) []FileSection {
	var sections []FileSection
	line := lineOffset
	for raw := range strings.SplitSeq(text, "\n") {
		line++
		path, ok := DiffHeaderPath(raw)
		if !ok || path == "" {
			continue
		}
		sections = append(sections, FileSection{Path: path, Line: line})
	}
	return sections
}

// DiffHeaderPath extracts the post-image path from a "diff --git" header
// line. It returns ok=false for any other line, and an empty path for a
// header it cannot split. Paths with spaces or escapes arrive C-quoted.
func DiffHeaderPath(line string) (string, bool) {
	rest, found := strings.CutPrefix(line, "diff --git ")
	if !found {
		return "", false
	}
	paths := splitDiffPaths(strings.TrimSpace(rest))
	if len(paths) < 2 {
		return "", true
	}
	return stripPathPrefix(paths[1]), true
}

// splitDiffPaths tokenizes the remainder of a diff header, honoring
// C-style quoting for paths that contain spaces or escapes.
func splitDiffPaths(s string) []string {
	var out []string
	for s != "" {
		s = strings.TrimLeft(s, " \t")
		if s == "" {
			break
		}
		if s[0] == '"' {
			path, rest := unquoteDiffPath(s[1:])
			out = append(out, path)
			s = rest
			continue
		}
		end := strings.IndexAny(s, " \t")
		if end < 0 {
			out = append(out, s)
			break
		}
		out = append(out, s[:end])
		s = s[end:]
	}
	return out
}

func unquoteDiffPath(s string) (path, rest string) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if i+1 < len(s) {
				i++
				b.WriteByte(s[i])
			}
		case '"':
			return b.String(), s[i+1:]
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String(), ""
}

func stripPathPrefix(token string) string {
	if rest, ok := strings.CutPrefix(token, "a/"); ok {
		return rest
	}
	if rest, ok := strings.CutPrefix(token, "b/"); ok {
		return rest
	}
	return token
}
