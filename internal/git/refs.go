package git

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/go-git/go-git/v5/plumbing"
)

// additionalRefNames are the symbolic repository states offered for
// comparison alongside branches and tags, in display order. Absent ones
// are skipped silently.
var additionalRefNames = []string{
	"HEAD",
	"FETCH_HEAD",
	"ORIG_HEAD",
	"MERGE_HEAD",
	"CHERRY_PICK_HEAD",
}

// ListRefs captures the repository's selectable references: local
// branches, remote-tracking branches, tags, then additional refs. Tags
// carry the commit they peel to; a tag that does not peel to a commit is
// listed with a zero Peeled hash and cannot be compared.
func (s *Store) ListRefs() ([]Ref, error) {
	iter, err := s.repo.References()
	if err != nil {
		return nil, fmt.Errorf("list references: %w", err)
	}

	var branches, remotes, tags []Ref
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() != plumbing.HashReference {
			return nil
		}
		name := ref.Name()
		switch {
		case name.IsBranch():
			branches = append(branches, Ref{
				Name:   string(name),
				Short:  name.Short(),
				Kind:   RefKindBranch,
				Target: ref.Hash(),
			})
		case name.IsRemote():
			remotes = append(remotes, Ref{
				Name:   string(name),
				Short:  name.Short(),
				Kind:   RefKindRemote,
				Target: ref.Hash(),
			})
		case name.IsTag():
			tags = append(tags, s.tagRef(ref))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk references: %w", err)
	}

	slices.SortFunc(branches, compareRefShorts)
	slices.SortFunc(remotes, compareRefShorts)
	slices.SortFunc(tags, func(a, b Ref) int { return compareTagNames(a.Short, b.Short) })

	refs := make([]Ref, 0, len(branches)+len(remotes)+len(tags)+len(additionalRefNames))
	refs = append(refs, branches...)
	refs = append(refs, remotes...)
	refs = append(refs, tags...)

	for _, name := range additionalRefNames {
		ref, ok, err := s.RefByName(name)
		if err != nil {
			slog.Debug("skipping additional ref", slog.String("name", name), slog.Any("error", err))
			continue
		}
		if !ok {
			continue
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

func (s *Store) tagRef(ref *plumbing.Reference) Ref {
	r := Ref{
		Name:   string(ref.Name()),
		Short:  ref.Name().Short(),
		Kind:   RefKindTag,
		Target: ref.Hash(),
	}
	if peeled, ok := s.peelTagCommit(ref.Hash()); ok {
		r.Peeled = peeled
	}
	return r
}

// peelTagCommit follows annotated tag objects until it reaches a commit.
// Lightweight tags point at their target directly. The depth limit
// matches git's own tolerance for nested tags.
func (s *Store) peelTagCommit(hash plumbing.Hash) (plumbing.Hash, bool) {
	if _, err := s.repo.CommitObject(hash); err == nil {
		return hash, true
	}
	current := hash
	for range 8 {
		tag, err := s.repo.TagObject(current)
		if err != nil {
			return plumbing.ZeroHash, false
		}
		switch tag.TargetType {
		case plumbing.CommitObject:
			return tag.Target, true
		case plumbing.TagObject:
			current = tag.Target
		default:
			return plumbing.ZeroHash, false
		}
	}
	return plumbing.ZeroHash, false
}

func compareRefShorts(a, b Ref) int {
	return strings.Compare(a.Short, b.Short)
}

// compareTagNames orders tags newest-first when both parse as semantic
// versions, falling back to reverse lexical order so date-stamped tags
// also end up newest-first. Versioned tags sort above unversioned ones.
func compareTagNames(a, b string) int {
	av, aerr := semver.NewVersion(a)
	bv, berr := semver.NewVersion(b)
	switch {
	case aerr == nil && berr == nil:
		if c := bv.Compare(av); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	case aerr == nil:
		return -1
	case berr == nil:
		return 1
	default:
		return strings.Compare(b, a)
	}
}
