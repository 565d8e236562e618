// Package plate implements the runtime half of uniplate: the shape tree, the
// generic traversal API, and the Zipper family of cursors.
//
// # The traversal primitive
//
// Every traversable type exposes a single operation, the plate: given a node,
// it returns a [Tree] describing all top-most reachable values of the target
// type, paired with a reconstruction function that rebuilds the node from a
// replacement tree of the same shape. Self-traversal is declared by
// implementing [Plated] (usually via generated code); cross-type traversal is
// declared by registering a [BiplateFunc] with [RegisterBiplate].
//
// Everything else in the package - [Children], [Universe], [Transform],
// [Rewrite], [Cata], [Contexts], [Zipper] - is expressed in terms of that one
// primitive.
//
// # Dispatch
//
// [BiplateFor] resolves a traversal from a value of type From into values of
// type To using three cases, tried in order:
//
//  1. From and To are the same type: the value itself is the single child.
//  2. A biplate From -> To has been registered: delegate to it.
//  3. Neither: the value is an opaque leaf with no children.
//
// The resolution is deterministic and safe; no type is required to know about
// every possible target type in the program.
//
// # Concurrency
//
// Traversals are plain synchronous recursion with no suspension points.
// Registration ([RegisterBiplate], [RegisterUniplate]) is expected to happen
// in init functions; the registry is safe for concurrent reads afterwards.
// Individual zippers and iterators are single-owner and must not be shared
// across goroutines.
package plate
