package compare

import (
	"testing"

	"github.com/refview-dev/refview/internal/git"
)

func TestNodesFromRefs(t *testing.T) {
	f := newFakeStore()
	refs := []git.Ref{
		{Name: "refs/heads/main", Short: "main", Kind: git.RefKindBranch},
		{Name: "refs/remotes/origin/main", Short: "origin/main", Kind: git.RefKindRemote},
		{Name: "refs/tags/v1.0.0", Short: "v1.0.0", Kind: git.RefKindTag},
		{Name: "HEAD", Short: "HEAD", Kind: git.RefKindAdditional},
	}

	nodes := NodesFromRefs(f, refs)
	if len(nodes) != len(refs) {
		t.Fatalf("len(nodes) = %d, want %d", len(nodes), len(refs))
	}

	wantKinds := []NodeKind{KindBranch, KindBranch, KindTag, KindAdditional}
	for i, node := range nodes {
		if node.Kind != wantKinds[i] {
			t.Errorf("node %d kind = %s, want %s", i, node.Kind, wantKinds[i])
		}
		if node.Repo != Store(f) {
			t.Errorf("node %d repo not set", i)
		}
		if node.Ref.Name != refs[i].Name {
			t.Errorf("node %d ref = %q, want %q", i, node.Ref.Name, refs[i].Name)
		}
	}
}
