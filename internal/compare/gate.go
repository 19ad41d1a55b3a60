package compare

// Action labels shown for a comparable selection.
const (
	LabelWorkingTree = "Compare with Working Tree"
	LabelTwoRefs     = "Compare with Each Other"
)

// Available reports whether the compare action applies to the current
// selection. It runs on every selection change, so it only inspects
// metadata captured at listing time and never touches the object store.
//
// Two nodes are comparable when they share a repository; their kinds
// are deliberately not inspected, Resolve decides later whether they
// actually name commits. One node is comparable when it plausibly
// carries a reference.
func Available(selection []Node) bool {
	switch len(selection) {
	case 1:
		return carriesReference(selection[0])
	case 2:
		return selection[0].Repo != nil && selection[0].Repo == selection[1].Repo
	default:
		return false
	}
}

// Label is the action text for a selection: a single node compares
// against the working tree, anything else compares two references.
func Label(selection []Node) string {
	if len(selection) == 1 {
		return LabelWorkingTree
	}
	return LabelTwoRefs
}

func carriesReference(node Node) bool {
	switch node.Kind {
	case KindTag:
		return !node.Ref.Peeled.IsZero()
	case KindBranch, KindAdditional:
		return node.Ref.Name != ""
	default:
		return false
	}
}
