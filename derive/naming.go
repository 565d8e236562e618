package derive

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English, cases.NoLower)

// exportedName returns a Go-exported spelling of a type name for use inside
// generated identifiers: the package qualifier is dropped and the first rune
// is upper-cased, so "string" becomes "String" and "ast.Expr" becomes "Expr".
func exportedName(typeName string) string {
	_, bare := qualifier(typeName)
	return titleCaser.String(bare)
}

// biplateFuncName returns the name of the generated biplate function for an
// instance, e.g. biplateStmtToExpr for Stmt -> Expr.
func biplateFuncName(from, to string) string {
	return "biplate" + exportedName(from) + "To" + exportedName(to)
}
