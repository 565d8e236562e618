package plate

import (
	"iter"
	"slices"
)

// Zipper is a cursor into a tree of self-traversable nodes.
//
// The cursor can be moved around the tree and the value at the cursor can be
// replaced in O(1), regardless of its position; ancestors are only rebuilt
// when the cursor moves back up. Prefer a Zipper over [Contexts] when many
// edits happen in one pass: the context functions rebuild the root on every
// call.
//
// All navigation is partial. Moves return false when no such position exists
// (root has no parent, a leaf has no child, the first sibling has no left
// neighbour); these are ordinary outcomes, never panics.
type Zipper[T any] struct {
	// focus is the current node.
	focus T

	// path holds one frame per ancestor level, immediate parent last.
	// Empty path means the focus is the root.
	path []frame[T]
}

// frame captures everything needed to rebuild one ancestor level: the
// siblings on either side of the focus in left-to-right order, the shape
// rebuilder for that level, and the parent's reconstruction function.
type frame[T any] struct {
	left        []T
	right       []T
	rebuildTree func([]T) Tree[T]
	ctx         func(Tree[T]) T
}

// NewZipper returns a zipper focused on root.
func NewZipper[T any](root T) *Zipper[T] {
	return &Zipper[T]{focus: root}
}

// Focus returns the current node.
func (z *Zipper[T]) Focus() T {
	return z.focus
}

// ReplaceFocus replaces the current node, returning the old one. Ancestors
// are untouched until the cursor moves up.
func (z *Zipper[T]) ReplaceFocus(newFocus T) T {
	old := z.focus
	z.focus = newFocus
	return old
}

// Depth returns the distance from the focus to the root.
func (z *Zipper[T]) Depth() int {
	return len(z.path)
}

// SiblingIndex returns the position of the focus among its siblings, or
// false when the focus is the root.
func (z *Zipper[T]) SiblingIndex() (int, bool) {
	if len(z.path) == 0 {
		return 0, false
	}
	return len(z.path[len(z.path)-1].left), true
}

// Clone returns an independent copy of the zipper. Edits made through one
// copy are never visible through the other.
func (z *Zipper[T]) Clone() *Zipper[T] {
	path := make([]frame[T], len(z.path))
	for i, seg := range z.path {
		path[i] = frame[T]{
			left:        slices.Clone(seg.left),
			right:       slices.Clone(seg.right),
			rebuildTree: seg.rebuildTree,
			ctx:         seg.ctx,
		}
	}
	return &Zipper[T]{focus: z.focus, path: path}
}

// GoDown moves the focus to its left-most child, if it has one.
func (z *Zipper[T]) GoDown() bool {
	tree, ctx := UniplateFor(z.focus)
	siblings, rebuildTree := tree.List()
	if len(siblings) == 0 {
		return false
	}
	z.path = append(z.path, frame[T]{
		right:       siblings[1:],
		rebuildTree: rebuildTree,
		ctx:         ctx,
	})
	z.focus = siblings[0]
	return true
}

// GoUp moves the focus to its parent, rebuilding the parent from the current
// siblings so that any edits below become visible.
func (z *Zipper[T]) GoUp() bool {
	if len(z.path) == 0 {
		return false
	}
	seg := z.path[len(z.path)-1]
	z.path = z.path[:len(z.path)-1]

	children := make([]T, 0, len(seg.left)+1+len(seg.right))
	children = append(children, seg.left...)
	children = append(children, z.focus)
	children = append(children, seg.right...)

	z.focus = seg.ctx(seg.rebuildTree(children))
	return true
}

// GoLeft moves the focus to its adjacent left sibling, if it has one.
func (z *Zipper[T]) GoLeft() bool {
	if len(z.path) == 0 {
		return false
	}
	seg := &z.path[len(z.path)-1]
	if len(seg.left) == 0 {
		return false
	}
	newFocus := seg.left[len(seg.left)-1]
	seg.left = seg.left[:len(seg.left)-1]
	seg.right = append([]T{z.focus}, seg.right...)
	z.focus = newFocus
	return true
}

// GoRight moves the focus to its adjacent right sibling, if it has one.
func (z *Zipper[T]) GoRight() bool {
	if len(z.path) == 0 {
		return false
	}
	seg := &z.path[len(z.path)-1]
	if len(seg.right) == 0 {
		return false
	}
	newFocus := seg.right[0]
	seg.right = seg.right[1:]
	seg.left = append(slices.Clip(seg.left), z.focus)
	z.focus = newFocus
	return true
}

// RebuildRoot moves all the way back up and returns the fully reconstructed
// root, incorporating every edit made anywhere during the traversal. The
// zipper is left focused on the root.
func (z *Zipper[T]) RebuildRoot() T {
	for z.GoUp() {
	}
	return z.focus
}

// LeftSiblings returns the siblings to the left of the focus, in their
// original left-to-right order. The slice is a copy.
func (z *Zipper[T]) LeftSiblings() []T {
	if len(z.path) == 0 {
		return nil
	}
	return slices.Clone(z.path[len(z.path)-1].left)
}

// RightSiblings returns the siblings to the right of the focus, in their
// original left-to-right order. The slice is a copy.
func (z *Zipper[T]) RightSiblings() []T {
	if len(z.path) == 0 {
		return nil
	}
	return slices.Clone(z.path[len(z.path)-1].right)
}

// Siblings returns the focus together with all of its siblings, in
// left-to-right order, the focus included at its own position.
func (z *Zipper[T]) Siblings() []T {
	if len(z.path) == 0 {
		return []T{z.focus}
	}
	seg := z.path[len(z.path)-1]
	out := make([]T, 0, len(seg.left)+1+len(seg.right))
	out = append(out, seg.left...)
	out = append(out, z.focus)
	out = append(out, seg.right...)
	return out
}

// Ancestors iterates over the ancestors of the focus, nearest first, each
// rebuilt to reflect any edits made below it. The zipper itself is not
// moved.
func (z *Zipper[T]) Ancestors() iter.Seq[T] {
	return func(yield func(T) bool) {
		up := z.Clone()
		for up.GoUp() {
			if !yield(up.focus) {
				return
			}
		}
	}
}
