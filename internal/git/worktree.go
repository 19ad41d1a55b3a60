package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/pmezard/go-difflib/difflib"
)

// WorktreeDiff renders the unified diff between the commit at target and
// the files currently on disk. Candidate paths are the union of the
// tree-level difference against HEAD and any tracked paths the status
// reports dirty; untracked files are not part of a comparison. Files
// whose contents turn out identical are skipped.
func (s *Store) WorktreeDiff(ctx context.Context, target plumbing.Hash, contextLines int) (string, []FileSection, error) {
	if s.wt == nil {
		return "", nil, errors.New("bare repository has no working tree")
	}
	if contextLines <= 0 {
		contextLines = DefaultContextLines
	}
	commit, err := s.repo.CommitObject(target)
	if err != nil {
		return "", nil, fmt.Errorf("read commit %s: %w", ShortHash(target), err)
	}
	targetTree, err := commit.Tree()
	if err != nil {
		return "", nil, err
	}
	paths, err := s.worktreeChangedPaths(ctx, targetTree)
	if err != nil {
		return "", nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "comparing %s with working tree\n", ShortHash(target))
	b.WriteString(commitSummary(commit) + "\n\n")
	line := strings.Count(b.String(), "\n")

	var sections []FileSection
	for _, path := range paths {
		from, err := treeFile(targetTree, path)
		if err != nil {
			return "", nil, fmt.Errorf("read %s from tree: %w", path, err)
		}
		to, err := s.diskFile(path)
		if err != nil {
			return "", nil, fmt.Errorf("read %s from disk: %w", path, err)
		}
		if from == nil && to == nil {
			continue
		}
		text, err := fileDiffText(from, to, path, contextLines)
		if err != nil {
			return "", nil, err
		}
		if text == "" {
			continue
		}
		sections = append(sections, FileSection{Path: path, Line: line + 1})
		b.WriteString(text)
		line += strings.Count(text, "\n")
	}
	if len(sections) == 0 {
		b.WriteString("No changes.\n")
		return b.String(), nil, nil
	}
	return b.String(), sections, nil
}

// worktreeChangedPaths collects candidate paths: everything that differs
// between the target tree and HEAD, plus tracked paths the worktree
// status reports dirty. With an unborn HEAD every file of the target
// tree is a candidate.
func (s *Store) worktreeChangedPaths(ctx context.Context, targetTree *object.Tree) ([]string, error) {
	set := make(map[string]struct{})

	headTree, err := s.headTree()
	if err != nil {
		return nil, err
	}
	if headTree != nil {
		changes, err := object.DiffTreeWithOptions(ctx, targetTree, headTree, object.DefaultDiffTreeOptions)
		if err != nil {
			return nil, fmt.Errorf("diff against HEAD: %w", err)
		}
		for _, ch := range changes {
			if ch.From.Name != "" {
				set[ch.From.Name] = struct{}{}
			}
			if ch.To.Name != "" {
				set[ch.To.Name] = struct{}{}
			}
		}
	} else {
		err := targetTree.Files().ForEach(func(f *object.File) error {
			set[f.Name] = struct{}{}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	wt, err := s.repo.Worktree()
	if err != nil {
		return nil, err
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("worktree status: %w", err)
	}
	for path, st := range status {
		if st.Worktree == gitlib.Untracked {
			continue
		}
		if st.Worktree != gitlib.Unmodified || st.Staging != gitlib.Unmodified {
			set[path] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(set)), nil
}

func (s *Store) headTree() (*object.Tree, error) {
	head, err := s.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}
	commit, err := s.repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("read HEAD commit: %w", err)
	}
	return commit.Tree()
}

func treeFile(tree *object.Tree, path string) (*object.File, error) {
	f, err := tree.File(path)
	if errors.Is(err, object.ErrFileNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// diskFile wraps the on-disk contents of path in a blob-backed File so
// the same helpers serve both sides of the diff. A missing file returns
// nil, matching treeFile.
func (s *Store) diskFile(path string) (*object.File, error) {
	f, err := s.wt.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	mem := &plumbing.MemoryObject{}
	mem.SetType(plumbing.BlobObject)
	if _, err := mem.Write(data); err != nil {
		return nil, err
	}
	blob, err := object.DecodeBlob(mem)
	if err != nil {
		return nil, err
	}

	mode := filemode.Regular
	if info, err := s.wt.Stat(path); err == nil {
		if m, err := filemode.NewFromOSFileMode(info.Mode()); err == nil {
			mode = m
		}
	}
	return object.NewFile(path, mode, blob), nil
}

// fileDiffText renders one file's patch with a git-style header, or ""
// when both sides match.
func fileDiffText(from, to *object.File, path string, contextLines int) (string, error) {
	binary, err := eitherBinary(from, to)
	if err != nil {
		return "", err
	}
	var body string
	if binary {
		same, err := sameContents(from, to)
		if err != nil {
			return "", err
		}
		if same {
			return "", nil
		}
		body = "(binary files differ)\n"
	} else {
		fromLines, err := fileLines(from)
		if err != nil {
			return "", err
		}
		toLines, err := fileLines(to)
		if err != nil {
			return "", err
		}
		body, err = difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        fromLines,
			B:        toLines,
			FromFile: "a/" + path,
			ToFile:   "b/" + path,
			Context:  contextLines,
		})
		if err != nil {
			return "", fmt.Errorf("diff %s: %w", path, err)
		}
		if body == "" {
			return "", nil
		}
		if !strings.HasSuffix(body, "\n") {
			body += "\n"
		}
	}
	return fmt.Sprintf("diff --git a/%s b/%s\n", path, path) + body, nil
}

func eitherBinary(files ...*object.File) (bool, error) {
	for _, f := range files {
		if f == nil {
			continue
		}
		binary, err := f.IsBinary()
		if err != nil {
			return false, err
		}
		if binary {
			return true, nil
		}
	}
	return false, nil
}

func sameContents(from, to *object.File) (bool, error) {
	a, err := fileContents(from)
	if err != nil {
		return false, err
	}
	b, err := fileContents(to)
	if err != nil {
		return false, err
	}
	return a == b, nil
}

func fileContents(f *object.File) (string, error) {
	if f == nil {
		return "", nil
	}
	return f.Contents()
}

func fileLines(f *object.File) ([]string, error) {
	if f == nil {
		return []string{}, nil
	}
	content, err := f.Contents()
	if err != nil {
		return nil, err
	}
	if content == "" {
		return []string{}, nil
	}
	return difflib.SplitLines(content), nil
}
