package plate

// SliceOf lifts a per-element traversal step to a slice. The result follows
// the container contract:
//
//   - an empty slice has no children;
//   - when the element type is the target type, every element is a child;
//   - otherwise each element is traversed with elem and the results are
//     collected in order.
//
// Slices themselves are opaque to self-traversal: a traversal targeting
// []F never walks into a []F looking for more slices.
func SliceOf[To, F any](elem BiplateFunc[F, To]) BiplateFunc[[]F, To] {
	return func(xs []F) (Tree[To], func(Tree[To]) []F) {
		if len(xs) == 0 {
			return Zero[To](), func(Tree[To]) []F { return xs }
		}

		if typeFor[F]() == typeFor[To]() {
			trees := make([]Tree[To], len(xs))
			for i, x := range xs {
				v, _ := any(x).(To)
				trees[i] = One(v)
			}
			return Many(trees...), func(t Tree[To]) []F {
				subs := t.MustMany(len(xs))
				out := make([]F, len(subs))
				for i, sub := range subs {
					v, _ := any(sub.MustOne()).(F)
					out[i] = v
				}
				return out
			}
		}

		trees := make([]Tree[To], len(xs))
		ctxs := make([]func(Tree[To]) F, len(xs))
		for i, x := range xs {
			trees[i], ctxs[i] = elem(x)
		}
		return Many(trees...), func(t Tree[To]) []F {
			subs := t.MustMany(len(xs))
			out := make([]F, len(subs))
			for i, sub := range subs {
				out[i] = ctxs[i](sub)
			}
			return out
		}
	}
}

// SliceBiplate traverses a slice into values of type To, resolving elements
// through the dispatch layer. Generated code uses it for single-level slice
// fields; nested containers compose [SliceOf] explicitly.
func SliceBiplate[To, F any](xs []F) (Tree[To], func(Tree[To]) []F) {
	return SliceOf[To](BiplateOf[To, F]())(xs)
}

// PtrOf lifts a traversal step over one level of pointer indirection: the
// pointee is traversed and the rebuilt value is re-wrapped in a fresh
// pointer. A nil pointer has no children and rebuilds as nil.
//
// Exactly one level is supported; the derivation engine rejects nested
// indirection.
func PtrOf[To, F any](elem BiplateFunc[F, To]) BiplateFunc[*F, To] {
	return func(p *F) (Tree[To], func(Tree[To]) *F) {
		if p == nil {
			return Zero[To](), func(Tree[To]) *F { return nil }
		}
		tree, ctx := elem(*p)
		return tree, func(t Tree[To]) *F {
			v := ctx(t)
			return &v
		}
	}
}

// PtrBiplate traverses through a pointer field into values of type To,
// resolving the pointee through the dispatch layer.
func PtrBiplate[To, F any](p *F) (Tree[To], func(Tree[To]) *F) {
	return PtrOf[To](BiplateOf[To, F]())(p)
}
