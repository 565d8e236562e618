package derive

import (
	"go/ast"
	"go/types"
)

// classifyExpr turns a field type expression into a [TypeRef]. Shapes the
// generator cannot traverse or reliably treat as opaque are rejected with an
// [UnsupportedTypeError] carrying the reason; the caller fills in the
// declaration context.
//
// Accepted shapes: named types (possibly package-qualified), one level of
// pointer indirection, slices, and plate.Pair instantiations, each nesting
// recursively. Everything else fails closed; silently emitting code that
// skips a map or channel field would hide data from traversals.
func classifyExpr(expr ast.Expr) (TypeRef, *UnsupportedTypeError) {
	switch e := expr.(type) {
	case *ast.Ident:
		return NamedRef(e.Name), nil

	case *ast.SelectorExpr:
		if pkg, ok := e.X.(*ast.Ident); ok {
			return NamedRef(pkg.Name + "." + e.Sel.Name), nil
		}
		return TypeRef{}, reject(expr, "unsupported qualified type")

	case *ast.StarExpr:
		elem, err := classifyExpr(e.X)
		if err != nil {
			return TypeRef{}, err
		}
		if elem.Kind == RefPointer {
			return TypeRef{}, reject(expr, "nested pointer indirection; only one level is supported")
		}
		return TypeRef{Kind: RefPointer, Elem: &elem}, nil

	case *ast.ArrayType:
		if e.Len != nil {
			return TypeRef{}, reject(expr, "array types are not supported; use a slice")
		}
		elem, err := classifyExpr(e.Elt)
		if err != nil {
			return TypeRef{}, err
		}
		return TypeRef{Kind: RefSlice, Elem: &elem}, nil

	case *ast.IndexListExpr:
		if !isPairName(e.X) || len(e.Indices) != 2 {
			return TypeRef{}, reject(expr, "generic instantiations other than plate.Pair are not supported")
		}
		first, err := classifyExpr(e.Indices[0])
		if err != nil {
			return TypeRef{}, err
		}
		second, err := classifyExpr(e.Indices[1])
		if err != nil {
			return TypeRef{}, err
		}
		return TypeRef{Kind: RefPair, First: &first, Second: &second}, nil

	case *ast.IndexExpr:
		return TypeRef{}, reject(expr, "generic instantiations other than plate.Pair are not supported")

	case *ast.MapType:
		return TypeRef{}, reject(expr, "map types are not supported")

	case *ast.FuncType:
		return TypeRef{}, reject(expr, "function types are not supported")

	case *ast.ChanType:
		return TypeRef{}, reject(expr, "channel types are not supported")

	case *ast.StructType:
		return TypeRef{}, reject(expr, "anonymous struct types are not supported; declare a named type")

	case *ast.InterfaceType:
		return TypeRef{}, reject(expr, "anonymous interface types are not supported; declare a named type")

	default:
		return TypeRef{}, reject(expr, "unsupported type shape")
	}
}

// isPairName reports whether the instantiated generic is Pair or plate.Pair.
func isPairName(expr ast.Expr) bool {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name == "Pair"
	case *ast.SelectorExpr:
		return e.Sel.Name == "Pair"
	default:
		return false
	}
}

func reject(expr ast.Expr, reason string) *UnsupportedTypeError {
	return &UnsupportedTypeError{
		TypeSpelling: types.ExprString(expr),
		Reason:       reason,
	}
}
