package compare

import (
	"testing"

	"github.com/go-git/go-git/v5/plumbing"
)

func TestAvailable(t *testing.T) {
	a := newFakeStore()
	b := newFakeStore()
	branchA := a.addBranch("main", hashOf(1), 10)
	branchB := b.addBranch("main", hashOf(2), 20)
	tagA := a.addTag("v1.0.0", hashOf(3), hashOf(4), 30)
	blobTagA := a.addTag("blob-tag", hashOf(5), plumbing.ZeroHash, 0)
	headA := a.addAdditional("HEAD", hashOf(1), 10)

	tests := []struct {
		name string
		sel  []Node
		want bool
	}{
		{"empty", nil, false},
		{"single branch", []Node{branchA}, true},
		{"single additional ref", []Node{headA}, true},
		{"single peeled tag", []Node{tagA}, true},
		{"single unpeelable tag", []Node{blobTagA}, false},
		{"single nameless node", []Node{{Kind: KindBranch, Repo: a}}, false},
		{"single non-ref node", []Node{a.otherNode()}, false},
		{"two refs one repository", []Node{branchA, tagA}, true},
		{"two nodes incl non-ref, one repository", []Node{branchA, a.otherNode()}, true},
		{"two refs across repositories", []Node{branchA, branchB}, false},
		{"two nodes without repositories", []Node{{Kind: KindBranch}, {Kind: KindBranch}}, false},
		{"three refs", []Node{branchA, tagA, headA}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Available(tt.sel); got != tt.want {
				t.Errorf("Available = %v, want %v", got, tt.want)
			}
		})
	}

	// Availability runs on every selection change and must stay off the
	// object store entirely.
	if a.calls() != 0 || b.calls() != 0 {
		t.Errorf("Available touched the store: a(refs=%v parses=%v) b(refs=%v parses=%v)",
			a.refCalls, a.parseCalls, b.refCalls, b.parseCalls)
	}
}

func TestLabel(t *testing.T) {
	f := newFakeStore()
	branch := f.addBranch("main", hashOf(1), 10)
	tag := f.addTag("v1.0.0", hashOf(2), hashOf(3), 20)

	if got := Label([]Node{branch}); got != LabelWorkingTree {
		t.Errorf("single-node label = %q, want %q", got, LabelWorkingTree)
	}
	if got := Label([]Node{branch, tag}); got != LabelTwoRefs {
		t.Errorf("two-node label = %q, want %q", got, LabelTwoRefs)
	}
	if got := Label(nil); got != LabelTwoRefs {
		t.Errorf("empty-selection label = %q, want %q", got, LabelTwoRefs)
	}
}
