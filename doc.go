// Package uniplate provides boilerplate-free traversal of recursive data types.
//
// Given a recursive type (a struct, or an "enum" expressed as a sealed
// interface with variant structs), uniplate mechanically derives the ability
// to enumerate direct and transitive children, rebuild a node from a new set
// of children, apply bottom-up transformations, fold, and obtain zippers that
// edit a single node without reconstructing the whole tree.
//
// # Overview
//
// The library consists of two primary packages:
//
//   - plate: the runtime traversal core. The shape tree, the generic
//     traversal API (Children, Universe, Transform, Rewrite, Cata, ...), the
//     cross-type ("biplate") variants, and the Zipper family of cursors.
//   - derive: the derivation engine. It consumes structured type
//     declarations, plans a traversal per declared instance, and emits the Go
//     source that implements it.
//
// # Installation
//
// Install the library using go get:
//
//	go get github.com/conjure-cp/uniplate
//
// # Quick Start
//
// Annotate a sealed-interface enum and run the generator:
//
//	//uniplate:derive
//	//uniplate:biplate to=string
//	type Expr interface{ isExpr() }
//
//	type Val struct{ N int }
//	type Add struct{ Lhs, Rhs Expr }
//
//	//go:generate uniplate generate .
//
// Then traverse:
//
//	import "github.com/conjure-cp/uniplate/plate"
//
//	for _, name := range plate.UniverseBi[string](expr) {
//		fmt.Println(name)
//	}
//
// The cmd/uniplate command wraps the derive package for use with go generate.
package uniplate
