package plate

import (
	"fmt"
	"reflect"
	"sync"
)

// Plated is the self-traversal primitive. Implementations return the shape of
// the node's direct children of its own type, paired with a function that
// rebuilds the node from a replacement shape.
//
// The reconstruction function must satisfy the identity law: applied to the
// unmodified shape it yields a value equal to the original node.
//
// Implementations are normally generated by the derive package; hand-written
// implementations only make sense for foreign types that the generator cannot
// see.
type Plated[T any] interface {
	Uniplate() (Tree[T], func(Tree[T]) T)
}

// UniplateFunc is a self-traversal step for a type that cannot carry the
// [Plated] method itself, registered via [RegisterUniplate].
type UniplateFunc[T any] func(T) (Tree[T], func(Tree[T]) T)

// BiplateFunc is a cross-type traversal step: the shape of all top-most
// values of type To within a From, paired with the function that rebuilds the
// From.
type BiplateFunc[From, To any] func(From) (Tree[To], func(Tree[To]) From)

type plateKey struct {
	from, to reflect.Type
}

var (
	registryMu sync.RWMutex
	biplates   = make(map[plateKey]any) // BiplateFunc[From, To]
	uniplates  = make(map[reflect.Type]any)
)

func typeFor[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// RegisterBiplate registers the traversal step from From into To. Generated
// init functions call this once per declared cross-type instance; container
// and foreign types may register additional steps.
//
// Registering the same (From, To) pair twice panics: two traversals for one
// pair would make dispatch ambiguous.
func RegisterBiplate[From, To any](fn BiplateFunc[From, To]) {
	key := plateKey{from: typeFor[From](), to: typeFor[To]()}
	if key.from == key.to {
		panic(fmt.Sprintf("plate: refusing to register a biplate from %v to itself; the identity case is built in", key.from))
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := biplates[key]; dup {
		panic(fmt.Sprintf("plate: duplicate biplate registration %v -> %v", key.from, key.to))
	}
	biplates[key] = fn
}

// RegisterUniplate registers a self-traversal step for a type that cannot
// implement [Plated] directly (a foreign or primitive type). Unregistered
// types without the method are treated as leaves with no children.
func RegisterUniplate[T any](fn UniplateFunc[T]) {
	key := typeFor[T]()
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := uniplates[key]; dup {
		panic(fmt.Sprintf("plate: duplicate uniplate registration for %v", key))
	}
	uniplates[key] = fn
}

// UniplateFor resolves the self-traversal step for x. Types implementing
// [Plated] use their own method; types registered with [RegisterUniplate] use
// the registered step; everything else is a leaf with no children.
func UniplateFor[T any](x T) (Tree[T], func(Tree[T]) T) {
	if p, ok := any(x).(Plated[T]); ok {
		return p.Uniplate()
	}
	registryMu.RLock()
	fn, ok := uniplates[typeFor[T]()]
	registryMu.RUnlock()
	if ok {
		return fn.(UniplateFunc[T])(x)
	}
	return Zero[T](), func(Tree[T]) T { return x }
}

// BiplateFor resolves the traversal from x into values of type To.
//
// Exactly one of three cases applies, tried in order: From and To are the
// same type (the value itself is the single child, with an identity
// reconstructor); a biplate From -> To is registered (delegate); or neither
// (opaque leaf). The same-type case always wins, so a registered instance can
// never shadow identity.
func BiplateFor[To, From any](x From) (Tree[To], func(Tree[To]) From) {
	from, to := typeFor[From](), typeFor[To]()
	if from == to {
		// The comma-ok form tolerates nil interface values.
		v, _ := any(x).(To)
		return One(v), func(t Tree[To]) From {
			out, _ := any(t.MustOne()).(From)
			return out
		}
	}
	registryMu.RLock()
	fn, ok := biplates[plateKey{from: from, to: to}]
	registryMu.RUnlock()
	if ok {
		return fn.(BiplateFunc[From, To])(x)
	}
	return Zero[To](), func(Tree[To]) From { return x }
}

// BiplateOf returns [BiplateFor] as a first-class step, for composition with
// [SliceOf], [PtrOf], and [PairOf].
func BiplateOf[To, From any]() BiplateFunc[From, To] {
	return BiplateFor[To, From]
}

// OpaqueOf returns the step that treats every From as a leaf with no To
// children. Generated code uses it for container components that a traversal
// instance declares off-limits, so that the walk decision is fixed at
// generation time instead of depending on what happens to be registered.
func OpaqueOf[To, F any]() BiplateFunc[F, To] {
	return func(x F) (Tree[To], func(Tree[To]) F) {
		return Zero[To](), func(Tree[To]) F { return x }
	}
}

// ImplementsBiplate reports whether a traversal from From into To resolves
// structurally: either the types are identical or an instance is registered.
// When it returns false, [BiplateFor] treats From values as opaque leaves.
func ImplementsBiplate[To, From any]() bool {
	from, to := typeFor[From](), typeFor[To]()
	if from == to {
		return true
	}
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := biplates[plateKey{from: from, to: to}]
	return ok
}
