package plate

import (
	"iter"
	"slices"
)

// Holes iterates over the direct children of a node, each paired with a
// function that fills the hole where that child was: given a replacement it
// returns the node rebuilt with just that one child replaced.
//
// The fill functions are independent and reusable; each call rebuilds from
// the original node.
func Holes[T any](node T) iter.Seq2[T, func(T) T] {
	return func(yield func(T, func(T) T) bool) {
		children := Children(node)
		for i, child := range children {
			fill := func(x T) T {
				replaced := slices.Clone(children)
				replaced[i] = x
				return WithChildren(node, replaced)
			}
			if !yield(child, fill) {
				return
			}
		}
	}
}

// HolesBi is the cross-type variant of [Holes]: it iterates over the
// top-most values of type To within the node, each paired with a function
// that rebuilds the whole node with that one value replaced.
func HolesBi[To, From any](node From) iter.Seq2[To, func(To) From] {
	return func(yield func(To, func(To) From) bool) {
		children := ChildrenBi[To](node)
		for i, child := range children {
			fill := func(x To) From {
				replaced := slices.Clone(children)
				replaced[i] = x
				return WithChildrenBi(node, replaced)
			}
			if !yield(child, fill) {
				return
			}
		}
	}
}
