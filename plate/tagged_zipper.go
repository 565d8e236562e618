package plate

// tagNode is one position in the lazily built tag tree. Nodes are created on
// first visit and discarded when the subtree they describe is invalidated.
type tagNode[D any] struct {
	data     D
	parent   *tagNode[D]
	children []*tagNode[D]
}

// TaggedZipper is a [Zipper] that attaches caller-supplied metadata (a "tag")
// to each position in the tree.
//
// Tags are constructed lazily: the constructor passed to [NewTaggedZipper]
// runs when a position is first visited and when its focus is replaced, never
// eagerly for the whole tree. Replacing the focus invalidates the tags of the
// entire focused subtree, since its structure may have changed.
//
// Mutable access to the inner tree is deliberately not provided; going
// around the zipper would let the tree and its tags drift apart.
type TaggedZipper[T, D any] struct {
	zipper    *Zipper[T]
	node      *tagNode[D]
	construct func(T) D
}

// NewTaggedZipper returns a tagged zipper focused on root, with the tag for
// each position computed on demand by construct.
func NewTaggedZipper[T, D any](root T, construct func(T) D) *TaggedZipper[T, D] {
	return &TaggedZipper[T, D]{
		zipper:    NewZipper(root),
		node:      &tagNode[D]{data: construct(root)},
		construct: construct,
	}
}

// Focus returns the current node.
func (z *TaggedZipper[T, D]) Focus() T {
	return z.zipper.Focus()
}

// Depth returns the distance from the focus to the root.
func (z *TaggedZipper[T, D]) Depth() int {
	return z.zipper.Depth()
}

// ReplaceFocus replaces the current node, returning the old one. The tags of
// the focused subtree are invalidated and will be rebuilt on demand.
func (z *TaggedZipper[T, D]) ReplaceFocus(newFocus T) T {
	old := z.zipper.ReplaceFocus(newFocus)
	z.InvalidateSubtree()
	return old
}

// RebuildRoot returns the fully reconstructed root. The tag structure is
// discarded; the zipper must not be used afterwards.
func (z *TaggedZipper[T, D]) RebuildRoot() T {
	return z.zipper.RebuildRoot()
}

// Tag returns the tag of the current focus.
func (z *TaggedZipper[T, D]) Tag() D {
	return z.node.data
}

// ReplaceTag replaces the tag of the current focus, returning the old tag.
func (z *TaggedZipper[T, D]) ReplaceTag(newTag D) D {
	old := z.node.data
	z.node.data = newTag
	return old
}

// ResetTag recomputes the tag of the current focus with the constructor,
// returning the old tag.
func (z *TaggedZipper[T, D]) ResetTag() D {
	return z.ReplaceTag(z.construct(z.zipper.Focus()))
}

// InvalidateSubtree discards the tags of the current focus and all of its
// descendants. Any edits made to descendants' tags are lost; the constructor
// runs again as the subtree is re-explored.
func (z *TaggedZipper[T, D]) InvalidateSubtree() {
	fresh := &tagNode[D]{
		data:   z.construct(z.zipper.Focus()),
		parent: z.node.parent,
	}
	if parent := z.node.parent; parent != nil {
		for i, child := range parent.children {
			if child == z.node {
				parent.children[i] = fresh
				break
			}
		}
	}
	z.node = fresh
}

// GoUp moves the focus to its parent, if it has one.
func (z *TaggedZipper[T, D]) GoUp() bool {
	if !z.zipper.GoUp() {
		return false
	}
	// A parent tag always exists: positions below the root are only ever
	// reached through it.
	z.node = z.node.parent
	return true
}

// GoDown moves the focus to its left-most child, if it has one.
func (z *TaggedZipper[T, D]) GoDown() bool {
	if !z.zipper.GoDown() {
		return false
	}
	z.node = z.childTag(z.node, 0)
	return true
}

// GoLeft moves the focus to its adjacent left sibling, if it has one.
func (z *TaggedZipper[T, D]) GoLeft() bool {
	if !z.zipper.GoLeft() {
		return false
	}
	idx, _ := z.zipper.SiblingIndex()
	z.node = z.childTag(z.node.parent, idx)
	return true
}

// GoRight moves the focus to its adjacent right sibling, if it has one.
func (z *TaggedZipper[T, D]) GoRight() bool {
	if !z.zipper.GoRight() {
		return false
	}
	idx, _ := z.zipper.SiblingIndex()
	z.node = z.childTag(z.node.parent, idx)
	return true
}

// childTag returns parent's idx-th child tag, creating missing tags up to and
// including idx. Children are visited left to right, so the tag list is only
// ever extended at the end.
func (z *TaggedZipper[T, D]) childTag(parent *tagNode[D], idx int) *tagNode[D] {
	for len(parent.children) <= idx {
		parent.children = append(parent.children, &tagNode[D]{
			data:   z.construct(z.zipper.Focus()),
			parent: parent,
		})
	}
	return parent.children[idx]
}
