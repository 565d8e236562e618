package plate

import "fmt"

// ChildrenBi returns the top-most values of type To within the node. When To
// is the node's own type the result is the node itself, not its children; use
// [Children] for substructures.
func ChildrenBi[To, From any](node From) []To {
	tree, _ := BiplateFor[To](node)
	xs, _ := tree.List()
	return xs
}

// UniverseBi returns every value of type To reachable from the node, in
// preorder: each top-most To value followed by its own universe.
func UniverseBi[To, From any](node From) []To {
	var out []To
	for _, child := range ChildrenBi[To](node) {
		out = append(out, Universe(child)...)
	}
	return out
}

// WithChildrenBi rebuilds the node with the given To values, which must be
// exactly as many as [ChildrenBi] returned. It panics on a count mismatch.
func WithChildrenBi[To, From any](node From, children []To) From {
	tree, ctx := BiplateFor[To](node)
	old, rebuild := tree.List()
	if len(old) != len(children) {
		panic(fmt.Sprintf("plate: WithChildrenBi given %d children, want %d", len(children), len(old)))
	}
	return ctx(rebuild(children))
}

// DescendBi applies f to every top-most To value and rebuilds the node.
//
// When To is the node's own type this applies f to the node itself and does
// not descend. Definitions therefore usually match types with DescendBi once,
// then continue recursion with [Descend].
func DescendBi[To, From any](node From, f func(To) To) From {
	tree, ctx := BiplateFor[To](node)
	return ctx(tree.Map(f))
}

// TransformBi applies f bottom up to every value of type To within the node.
func TransformBi[To, From any](node From, f func(To) To) From {
	return DescendBi(node, func(x To) To {
		return Transform(x, f)
	})
}
