package plate

import "fmt"

type treeKind uint8

const (
	zeroTree treeKind = iota
	oneTree
	manyTree
)

// Tree records where values of a target type occur within one node: no values,
// the node itself, or an ordered sequence of sub-shapes, one per field or
// element, left to right.
//
// A Tree is built fresh on every traversal step and consumed by [Tree.List],
// [Tree.Map], or a reconstruction function; it is never cached.
type Tree[T any] struct {
	kind  treeKind
	leaf  T
	trees []Tree[T]
}

// Zero returns the empty shape: no values of the target type.
func Zero[T any]() Tree[T] {
	return Tree[T]{kind: zeroTree}
}

// One returns the shape of a single value: the node itself is of the target
// type.
func One[T any](v T) Tree[T] {
	return Tree[T]{kind: oneTree, leaf: v}
}

// Many returns the shape of an ordered sequence of sub-shapes.
func Many[T any](trees ...Tree[T]) Tree[T] {
	return Tree[T]{kind: manyTree, trees: trees}
}

// List flattens the tree into its leaf values, depth-first left to right, and
// returns a rebuilder that reproduces a tree with the same branching structure
// from a new sequence of leaves.
//
// The rebuilder panics if given a sequence whose length differs from the
// flattened length; passing back a resized sequence is a caller-contract
// violation, not a recoverable condition.
func (t Tree[T]) List() ([]T, func([]T) Tree[T]) {
	var xs []T
	t.appendLeaves(&xs)
	n := len(xs)

	rebuild := func(ys []T) Tree[T] {
		if len(ys) != n {
			panic(fmt.Sprintf("plate: tree rebuild given %d values, want %d", len(ys), n))
		}
		out, rest := t.refill(ys)
		_ = rest
		return out
	}
	return xs, rebuild
}

func (t Tree[T]) appendLeaves(xs *[]T) {
	switch t.kind {
	case zeroTree:
	case oneTree:
		*xs = append(*xs, t.leaf)
	case manyTree:
		for _, sub := range t.trees {
			sub.appendLeaves(xs)
		}
	}
}

// refill walks t, taking leaf values from ys in order, and returns the new
// tree and the unconsumed remainder of ys.
func (t Tree[T]) refill(ys []T) (Tree[T], []T) {
	switch t.kind {
	case oneTree:
		return One(ys[0]), ys[1:]
	case manyTree:
		out := make([]Tree[T], len(t.trees))
		for i, sub := range t.trees {
			out[i], ys = sub.refill(ys)
		}
		return Many(out...), ys
	default:
		return Zero[T](), ys
	}
}

// Map applies f to every leaf value, preserving structure.
func (t Tree[T]) Map(f func(T) T) Tree[T] {
	switch t.kind {
	case oneTree:
		return One(f(t.leaf))
	case manyTree:
		out := make([]Tree[T], len(t.trees))
		for i, sub := range t.trees {
			out[i] = sub.Map(f)
		}
		return Many(out...)
	default:
		return t
	}
}

// IsLeafless reports whether the tree contains no leaf values anywhere.
// Container traversals use this to short-circuit when no element matched.
func (t Tree[T]) IsLeafless() bool {
	switch t.kind {
	case oneTree:
		return false
	case manyTree:
		for _, sub := range t.trees {
			if !sub.IsLeafless() {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// MustOne returns the sole leaf of a One tree. It panics on any other shape;
// reconstruction functions use it when the replacement tree is contractually a
// single value.
func (t Tree[T]) MustOne() T {
	if t.kind != oneTree {
		panic("plate: expected a single-value tree")
	}
	return t.leaf
}

// MustMany returns the sub-shapes of a Many tree, panicking unless the tree
// has exactly n of them. Generated reconstruction functions use it to take a
// replacement tree apart field by field.
func (t Tree[T]) MustMany(n int) []Tree[T] {
	if t.kind != manyTree || len(t.trees) != n {
		panic(fmt.Sprintf("plate: expected a tree of %d sub-shapes", n))
	}
	return t.trees
}
