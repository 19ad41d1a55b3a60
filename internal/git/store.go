// Package git reads references, commits, and diffs from a local
// repository. It is the repository access layer behind the compare and
// present packages; everything here is read-only except Clone.
package git

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// RefKind classifies the references a repository offers for comparison.
type RefKind uint8

const (
	RefKindBranch RefKind = iota
	RefKindRemote
	RefKindTag
	RefKindAdditional
)

func (k RefKind) String() string {
	switch k {
	case RefKindBranch:
		return "branch"
	case RefKindRemote:
		return "remote"
	case RefKindTag:
		return "tag"
	case RefKindAdditional:
		return "additional"
	default:
		return "unknown"
	}
}

// Ref is one selectable reference as captured at listing time.
//
// Target is the hash the reference pointed at when listed and may go
// stale; callers that need freshness re-resolve through RefByName.
// Peeled is only set for tags: the commit an annotated tag ultimately
// points at, or the target itself for lightweight tags on commits. A
// zero Peeled on a tag means it does not peel to a commit.
type Ref struct {
	Name   string
	Short  string
	Kind   RefKind
	Target plumbing.Hash
	Peeled plumbing.Hash
}

// Commit is the header subset comparisons need.
type Commit struct {
	ID         plumbing.Hash
	CommitTime int64 // committer timestamp, seconds since epoch
}

// ErrNotCommit reports that an object exists but is not a commit.
var ErrNotCommit = errors.New("object is not a commit")

// Store reads one repository. The pointer itself serves as the
// repository identity when gating comparisons, so hosts must reuse a
// single Store per open repository.
type Store struct {
	repo *gitlib.Repository
	path string
	wt   billy.Filesystem // nil for bare repositories
}

// Open finds the repository containing dir, walking up the way git does.
func Open(dir string) (*Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	repo, err := gitlib.PlainOpenWithOptions(abs, &gitlib.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository at %s: %w", abs, err)
	}
	return newStore(repo, abs), nil
}

func newStore(repo *gitlib.Repository, fallbackPath string) *Store {
	s := &Store{repo: repo, path: fallbackPath}
	if wt, err := repo.Worktree(); err == nil {
		s.wt = wt.Filesystem
		s.path = s.wt.Root()
	}
	return s
}

// Path is the working tree root, or the directory Open was given for
// bare repositories.
func (s *Store) Path() string {
	return s.path
}

// RefByName resolves name through any symbolic references to its
// current target. The boolean is false when name does not exist; an
// error means the reference store itself failed.
func (s *Store) RefByName(name string) (Ref, bool, error) {
	refName := plumbing.ReferenceName(name)
	ref, err := s.repo.Reference(refName, true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return Ref{}, false, nil
		}
		return Ref{}, false, fmt.Errorf("resolve %s: %w", name, err)
	}
	return Ref{
		Name:   name,
		Short:  refName.Short(),
		Kind:   kindOfName(refName),
		Target: ref.Hash(),
	}, true, nil
}

func kindOfName(name plumbing.ReferenceName) RefKind {
	switch {
	case name.IsBranch():
		return RefKindBranch
	case name.IsRemote():
		return RefKindRemote
	case name.IsTag():
		return RefKindTag
	default:
		return RefKindAdditional
	}
}

// ParseCommit loads the commit header for id. Objects of any other type
// fail with ErrNotCommit; object store failures surface as-is so callers
// can tell a malformed store from a non-commit target.
func (s *Store) ParseCommit(id plumbing.Hash) (Commit, error) {
	obj, err := s.repo.Storer.EncodedObject(plumbing.AnyObject, id)
	if err != nil {
		return Commit{}, fmt.Errorf("read object %s: %w", ShortHash(id), err)
	}
	if obj.Type() != plumbing.CommitObject {
		return Commit{}, fmt.Errorf("object %s of type %s: %w", ShortHash(id), obj.Type(), ErrNotCommit)
	}
	commit, err := object.DecodeCommit(s.repo.Storer, obj)
	if err != nil {
		return Commit{}, fmt.Errorf("decode commit %s: %w", ShortHash(id), err)
	}
	return Commit{ID: commit.Hash, CommitTime: commit.Committer.When.Unix()}, nil
}

// ShortHash is the 7-character abbreviation used in headers and listings.
func ShortHash(h plumbing.Hash) string {
	return h.String()[:7]
}

func commitSummary(c *object.Commit) string {
	title, _, _ := strings.Cut(c.Message, "\n")
	return fmt.Sprintf("%s %s %s", ShortHash(c.Hash), c.Committer.When.UTC().Format("2006-01-02 15:04"), title)
}
