// Package derive generates traversal code for the plate package.
//
// The generator consumes structured type declarations ([TypeDecl]) and emits
// one Go file per package containing Uniplate methods, cross-type biplate
// functions, and an init function that registers them. Declarations come from
// two front ends that can be combined: directive comments in Go source
// (//uniplate:derive and friends, discovered by [Load]) and a YAML
// configuration file ([LoadConfig]).
//
// Generation never partially succeeds silently: unsupported field shapes,
// conflicting instances, and unknown walk-into names are reported as issues
// on the [Result], and no file is produced for a package with error-level
// issues.
//
// The typical entry point is go:generate:
//
//	//go:generate go run github.com/conjure-cp/uniplate/cmd/uniplate generate
package derive
