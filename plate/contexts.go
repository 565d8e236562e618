package plate

import "iter"

// Contexts iterates over the preorder universe of a tree, yielding each node
// paired with a function that rebuilds the entire root with just that node
// replaced. Replacing a node with itself reproduces the original tree.
//
// Every call to a yielded function rebuilds the whole path back to the root;
// when many edits happen in one pass, use a [Zipper] instead.
func Contexts[T any](node T) iter.Seq2[T, func(T) T] {
	return func(yield func(T, func(T) T) bool) {
		z := NewZipper(node)
		for {
			at := z.Clone()
			rebuild := func(x T) T {
				edited := at.Clone()
				edited.ReplaceFocus(x)
				return edited.RebuildRoot()
			}
			if !yield(z.Focus(), rebuild) {
				return
			}
			if !advance(z) {
				return
			}
		}
	}
}

// ContextsBi is the cross-type variant of [Contexts]: it iterates over every
// value of type To within the root, each paired with a function that rebuilds
// the root with that one value replaced.
func ContextsBi[To, From any](node From) iter.Seq2[To, func(To) From] {
	return func(yield func(To, func(To) From) bool) {
		z, ok := NewBiZipper[To](node)
		if !ok {
			return
		}
		for {
			at := z.Clone()
			rebuild := func(x To) From {
				edited := at.Clone()
				edited.ReplaceFocus(x)
				return edited.RebuildRoot()
			}
			if !yield(z.Focus(), rebuild) {
				return
			}
			if !advanceBi(z) {
				return
			}
		}
	}
}

// advance moves a zipper one step in preorder: down if possible, otherwise
// right, otherwise up until a right move works. Returns false when the
// traversal is exhausted.
func advance[T any](z *Zipper[T]) bool {
	if z.GoDown() {
		return true
	}
	for !z.GoRight() {
		if !z.GoUp() {
			return false
		}
	}
	return true
}

func advanceBi[To, From any](z *BiZipper[To, From]) bool {
	if z.GoDown() {
		return true
	}
	for !z.GoRight() {
		if !z.GoUp() {
			return false
		}
	}
	return true
}
