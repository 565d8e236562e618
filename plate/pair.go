package plate

// Pair is a two-element tuple. Field types with no natural Go spelling for
// tuples use Pair so that both halves stay traversable; the derivation engine
// classifies each half recursively.
type Pair[A, B any] struct {
	First  A
	Second B
}

// PairOf combines traversal steps for both halves of a [Pair] into one step:
// the shape is the two sub-shapes in order, and rebuilding reassembles the
// pair from each half's reconstruction.
func PairOf[To, A, B any](first BiplateFunc[A, To], second BiplateFunc[B, To]) BiplateFunc[Pair[A, B], To] {
	return func(p Pair[A, B]) (Tree[To], func(Tree[To]) Pair[A, B]) {
		treeA, ctxA := first(p.First)
		treeB, ctxB := second(p.Second)
		return Many(treeA, treeB), func(t Tree[To]) Pair[A, B] {
			subs := t.MustMany(2)
			return Pair[A, B]{First: ctxA(subs[0]), Second: ctxB(subs[1])}
		}
	}
}

// PairBiplate traverses both halves of a pair into values of type To,
// resolving each half through the dispatch layer.
func PairBiplate[To, A, B any](p Pair[A, B]) (Tree[To], func(Tree[To]) Pair[A, B]) {
	return PairOf[To](BiplateOf[To, A](), BiplateOf[To, B]())(p)
}
