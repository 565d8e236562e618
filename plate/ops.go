package plate

import "fmt"

// Children returns the direct children of a node: the maximal substructures
// of the node's own type.
func Children[T any](node T) []T {
	tree, _ := UniplateFor(node)
	xs, _ := tree.List()
	return xs
}

// Universe returns the node and all of its transitive children in preorder:
// the node first, then each child's universe, left to right.
//
// The data model assumes tree-shaped ownership; Universe does not terminate
// on cyclic structures.
func Universe[T any](node T) []T {
	out := []T{node}
	for _, child := range Children(node) {
		out = append(out, Universe(child)...)
	}
	return out
}

// WithChildren rebuilds the node with the given children, which must be
// exactly as many as [Children] returned. It panics on a count mismatch;
// callers may reorder or replace children element-wise but never resize.
func WithChildren[T any](node T, children []T) T {
	tree, ctx := UniplateFor(node)
	old, rebuild := tree.List()
	if len(old) != len(children) {
		panic(fmt.Sprintf("plate: WithChildren given %d children, want %d", len(children), len(old)))
	}
	return ctx(rebuild(children))
}

// Descend applies f to every direct child and rebuilds the node. It does not
// recurse; for whole-tree transformation use [Transform].
func Descend[T any](node T, f func(T) T) T {
	tree, ctx := UniplateFor(node)
	return ctx(tree.Map(f))
}

// Transform applies f to every node, bottom up: children are transformed
// first, the node is rebuilt, then f is applied to the rebuilt node.
func Transform[T any](node T, f func(T) T) T {
	tree, ctx := UniplateFor(node)
	return f(ctx(tree.Map(func(child T) T {
		return Transform(child, f)
	})))
}

// Rewrite applies a partial rule everywhere it fires, bottom up. The rule
// returns ok=false to decline a node, in which case the rebuilt-but-unchanged
// node is kept.
func Rewrite[T any](node T, f func(T) (T, bool)) T {
	tree, ctx := UniplateFor(node)
	rebuilt := ctx(tree.Map(func(child T) T {
		return Rewrite(child, f)
	}))
	if out, ok := f(rebuilt); ok {
		return out
	}
	return rebuilt
}

// Cata folds the tree bottom up: each node is combined with the already
// folded results of its children.
func Cata[T, R any](node T, f func(T, []R) R) R {
	children := Children(node)
	folded := make([]R, len(children))
	for i, child := range children {
		folded[i] = Cata(child, f)
	}
	return f(node, folded)
}
