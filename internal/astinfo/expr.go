// Package astinfo provides syntactic helpers over go/ast declarations.
//
// intoerror inspects directive files before they are able to type-check, so
// every question about a type is answered from its source text: the textual
// type tag. Tags are compared after unwrapping parentheses, which makes the
// two spellings "error" and "(error)" of the top error type equivalent.
package astinfo

import (
	"go/ast"
	"go/types"
)

// TypeTag returns the canonical textual tag of a type expression. Redundant
// parentheses are not part of the tag.
func TypeTag(expr ast.Expr) string {
	return types.ExprString(ast.Unparen(expr))
}

// IsWildcard reports whether a payload type tag denotes "any failure", that
// is, the top error type. Both the bare and the parenthesized spellings are
// recognized.
func IsWildcard(expr ast.Expr) bool {
	id, ok := ast.Unparen(expr).(*ast.Ident)
	return ok && id.Name == "error"
}

// TailIdent extracts the rightmost [ast.Ident] from the expression.
//
//	Foo{}
//	^^^
//	Foo{}.Bar
//	      ^^^
//	(*Foo)(nil).Bar.Baz
//	                ^^^
func TailIdent(expr ast.Expr) (*ast.Ident, bool) {
	expr = ast.Unparen(expr)
	switch expr := expr.(type) {
	case *ast.Ident:
		// foo
		// ^^^
		return expr, true
	case *ast.SelectorExpr:
		// foo.bar.baz
		//         ^^^
		return TailIdent(expr.Sel)
	}
	return nil, false
}
