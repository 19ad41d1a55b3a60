package compare

import "github.com/refview-dev/refview/internal/git"

// NodeKind tags the closed set of browser rows a selection can contain.
type NodeKind uint8

const (
	// KindOther is any selectable row that carries no reference, such
	// as a grouping header or a name that matched nothing. It resolves
	// to no commit and aborts the comparison quietly.
	KindOther NodeKind = iota
	KindBranch
	KindTag
	KindAdditional
)

func (k NodeKind) String() string {
	switch k {
	case KindBranch:
		return "branch"
	case KindTag:
		return "tag"
	case KindAdditional:
		return "additional"
	default:
		return "other"
	}
}

// Node is one selected row: its kind, the repository that owns it, and
// the reference captured when the row was listed. Repo must be set on
// every node a host constructs.
type Node struct {
	Kind NodeKind
	Repo Store
	Ref  git.Ref
}

// NodeForRef wraps a listed reference as a selectable node.
func NodeForRef(repo Store, ref git.Ref) Node {
	return Node{Kind: kindForRef(ref.Kind), Repo: repo, Ref: ref}
}

// NodesFromRefs wraps every listed reference, preserving order.
func NodesFromRefs(repo Store, refs []git.Ref) []Node {
	nodes := make([]Node, 0, len(refs))
	for _, ref := range refs {
		nodes = append(nodes, NodeForRef(repo, ref))
	}
	return nodes
}

// kindForRef collapses local and remote-tracking branches into one kind;
// both resolve by name.
func kindForRef(kind git.RefKind) NodeKind {
	switch kind {
	case git.RefKindBranch, git.RefKindRemote:
		return KindBranch
	case git.RefKindTag:
		return KindTag
	case git.RefKindAdditional:
		return KindAdditional
	default:
		return KindOther
	}
}
