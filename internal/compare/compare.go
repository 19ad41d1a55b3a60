// Package compare turns a selection of repository references into a
// concrete comparison request. It mirrors how the selection behaves in
// a repository browser: one selected reference is compared against the
// working tree, two are compared with each other, anything else is a
// quiet no-op.
package compare

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/refview-dev/refview/internal/git"
)

// Store is the read-only repository capability Resolve needs. A
// *git.Store satisfies it; tests substitute fakes. Implementations must
// be comparable, since a Store value doubles as repository identity.
type Store interface {
	// RefByName resolves a full reference name to its current target.
	// The boolean is false when the name no longer exists.
	RefByName(name string) (git.Ref, bool, error)
	// ParseCommit loads the commit header for id. Non-commit objects
	// fail with git.ErrNotCommit; store corruption returns other errors.
	ParseCommit(id plumbing.Hash) (git.Commit, error)
}

// Request names the two sides of a comparison. Base is zero when the
// target commit is compared against the working tree instead of a
// second commit.
type Request struct {
	Base   plumbing.Hash
	Target plumbing.Hash
}

// TwoSided reports whether both sides are commits.
func (r Request) TwoSided() bool {
	return r.Base != plumbing.ZeroHash
}

// ResolutionError reports that the object store failed while resolving
// a selection. It is distinct from a selection that merely resolves to
// nothing, which Resolve reports as a nil Request without error.
type ResolutionError struct {
	Name string // the reference or object being resolved
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve %s: %v", e.Name, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// Resolve maps a selection onto the comparison it denotes, or nil when
// the selection does not denote one: wrong size, a node that carries no
// reference, a tag that does not peel to a commit, or a name that has
// vanished since listing. Store failures are the only errors.
//
// With two nodes the older commit becomes the base; on equal commit
// times the first-selected node stays the base. All lookups go through
// the first node's repository, which the enablement gate guarantees is
// shared by both nodes.
func Resolve(selection []Node) (*Request, error) {
	if len(selection) == 0 || len(selection) > 2 {
		return nil, nil
	}
	repo := selection[0].Repo
	commits := make([]git.Commit, 0, len(selection))
	for _, node := range selection {
		commit, ok, err := resolveNode(repo, node)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		commits = append(commits, commit)
	}
	if len(commits) == 1 {
		return &Request{Target: commits[0].ID}, nil
	}
	first, second := commits[0], commits[1]
	if first.CommitTime <= second.CommitTime {
		return &Request{Base: first.ID, Target: second.ID}, nil
	}
	return &Request{Base: second.ID, Target: first.ID}, nil
}

// resolveNode finds the commit a node stands for. Tags use the peeled
// commit captured at listing time; branches and additional refs
// re-resolve by name so a moved reference compares at its current tip.
// ok=false means the node quietly resolves to nothing.
func resolveNode(repo Store, node Node) (git.Commit, bool, error) {
	switch node.Kind {
	case KindTag:
		if node.Ref.Peeled == plumbing.ZeroHash {
			return git.Commit{}, false, nil
		}
		return parseCommit(repo, node.Ref.Short, node.Ref.Peeled)
	case KindBranch, KindAdditional:
		ref, ok, err := repo.RefByName(node.Ref.Name)
		if err != nil {
			return git.Commit{}, false, &ResolutionError{Name: node.Ref.Name, Err: err}
		}
		if !ok {
			return git.Commit{}, false, nil
		}
		return parseCommit(repo, node.Ref.Name, ref.Target)
	default:
		return git.Commit{}, false, nil
	}
}

func parseCommit(repo Store, name string, id plumbing.Hash) (git.Commit, bool, error) {
	commit, err := repo.ParseCommit(id)
	if err != nil {
		if errors.Is(err, git.ErrNotCommit) {
			return git.Commit{}, false, nil
		}
		return git.Commit{}, false, &ResolutionError{Name: name, Err: err}
	}
	return commit, true, nil
}
