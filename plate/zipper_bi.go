package plate

import "slices"

// BiZipper is a cursor over all values of type To within a root of a
// different type From.
//
// Unlike [Zipper], the root itself can never be focused (it is not a To);
// the initial focus is the left-most To child, and the top-most frame
// rebuilds into the outer type. Use [BiZipper.RebuildRoot] to recover the
// root.
type BiZipper[To, From any] struct {
	focus To

	// top rebuilds the first level back into the outer type.
	top topFrame[To, From]

	// path holds the frames below the top level, immediate parent last.
	path []frame[To]
}

type topFrame[To, From any] struct {
	left        []To
	right       []To
	rebuildTree func([]To) Tree[To]
	ctx         func(Tree[To]) From
}

// NewBiZipper returns a zipper over the To values within root, focused on
// the left-most one. It returns ok=false when root has no values of type To.
func NewBiZipper[To, From any](root From) (*BiZipper[To, From], bool) {
	tree, ctx := BiplateFor[To](root)
	siblings, rebuildTree := tree.List()
	if len(siblings) == 0 {
		return nil, false
	}
	return &BiZipper[To, From]{
		focus: siblings[0],
		top: topFrame[To, From]{
			right:       siblings[1:],
			rebuildTree: rebuildTree,
			ctx:         ctx,
		},
	}, true
}

// Focus returns the current node.
func (z *BiZipper[To, From]) Focus() To {
	return z.focus
}

// ReplaceFocus replaces the current node, returning the old one.
func (z *BiZipper[To, From]) ReplaceFocus(newFocus To) To {
	old := z.focus
	z.focus = newFocus
	return old
}

// Depth returns the distance from the focus to the root. The top level
// counts, so the depth is never zero.
func (z *BiZipper[To, From]) Depth() int {
	return len(z.path) + 1
}

// Clone returns an independent copy of the zipper.
func (z *BiZipper[To, From]) Clone() *BiZipper[To, From] {
	path := make([]frame[To], len(z.path))
	for i, seg := range z.path {
		path[i] = frame[To]{
			left:        slices.Clone(seg.left),
			right:       slices.Clone(seg.right),
			rebuildTree: seg.rebuildTree,
			ctx:         seg.ctx,
		}
	}
	return &BiZipper[To, From]{
		focus: z.focus,
		top: topFrame[To, From]{
			left:        slices.Clone(z.top.left),
			right:       slices.Clone(z.top.right),
			rebuildTree: z.top.rebuildTree,
			ctx:         z.top.ctx,
		},
		path: path,
	}
}

// GoDown moves the focus to its left-most child, if it has one. Descent
// below the first level uses the focus type's own self-traversal.
func (z *BiZipper[To, From]) GoDown() bool {
	tree, ctx := UniplateFor(z.focus)
	siblings, rebuildTree := tree.List()
	if len(siblings) == 0 {
		return false
	}
	z.path = append(z.path, frame[To]{
		right:       siblings[1:],
		rebuildTree: rebuildTree,
		ctx:         ctx,
	})
	z.focus = siblings[0]
	return true
}

// GoUp moves the focus to its parent, if the parent is of type To. The
// top-most level is not of type To; recover it with
// [BiZipper.RebuildRoot].
func (z *BiZipper[To, From]) GoUp() bool {
	if len(z.path) == 0 {
		return false
	}
	seg := z.path[len(z.path)-1]
	z.path = z.path[:len(z.path)-1]

	children := make([]To, 0, len(seg.left)+1+len(seg.right))
	children = append(children, seg.left...)
	children = append(children, z.focus)
	children = append(children, seg.right...)

	z.focus = seg.ctx(seg.rebuildTree(children))
	return true
}

// GoLeft moves the focus to its adjacent left sibling, if it has one.
func (z *BiZipper[To, From]) GoLeft() bool {
	left, right := z.siblingLists()
	if len(*left) == 0 {
		return false
	}
	newFocus := (*left)[len(*left)-1]
	*left = (*left)[:len(*left)-1]
	*right = append([]To{z.focus}, *right...)
	z.focus = newFocus
	return true
}

// GoRight moves the focus to its adjacent right sibling, if it has one.
func (z *BiZipper[To, From]) GoRight() bool {
	left, right := z.siblingLists()
	if len(*right) == 0 {
		return false
	}
	newFocus := (*right)[0]
	*right = (*right)[1:]
	*left = append(slices.Clip(*left), z.focus)
	z.focus = newFocus
	return true
}

func (z *BiZipper[To, From]) siblingLists() (left, right *[]To) {
	if len(z.path) > 0 {
		seg := &z.path[len(z.path)-1]
		return &seg.left, &seg.right
	}
	return &z.top.left, &z.top.right
}

// RebuildRoot reconstructs the root value, incorporating every edit made
// during the traversal.
func (z *BiZipper[To, From]) RebuildRoot() From {
	for z.GoUp() {
	}
	children := make([]To, 0, len(z.top.left)+1+len(z.top.right))
	children = append(children, z.top.left...)
	children = append(children, z.focus)
	children = append(children, z.top.right...)
	return z.top.ctx(z.top.rebuildTree(children))
}
