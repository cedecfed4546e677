package codefmt

import (
	"go/ast"
	"go/token"
	"io"
)

// FormatNode is a shorthand for [Formatter.Node].
func FormatNode(fsetter Fsetter, node any) string {
	return newByFsetter(fsetter).Node(node)
}

// FormatExpr is a shorthand for [Formatter.Expr].
func FormatExpr(fsetter Fsetter, expr ast.Expr) string {
	return newByFsetter(fsetter).Expr(expr)
}

// FormatExprParen is a shorthand for [Formatter.ExprParen].
func FormatExprParen(fsetter Fsetter, expr ast.Expr) string {
	return newByFsetter(fsetter).ExprParen(expr)
}

// FormatPos is a shorthand for [Formatter.Pos].
func FormatPos(fsetter Fsetter, pos token.Pos) string {
	return newByFsetter(fsetter).Pos(pos)
}

func Sprintf(fsetter Fsetter, format string, args ...any) string {
	return newByFsetter(fsetter).Sprintf(format, args...)
}

func Fprintf(fsetter Fsetter, w io.Writer, format string, args ...any) (int, error) {
	return newByFsetter(fsetter).Fprintf(w, format, args...)
}

func Errorf(fsetter Fsetter, poser Poser, format string, args ...any) error {
	return newByFsetter(fsetter).Errorf(poser, format, args...)
}

type fsetter struct{ fset *token.FileSet }

func (f fsetter) Fset() *token.FileSet { return f.fset }
func Fset(fset *token.FileSet) Fsetter { return fsetter{fset} }

type poser struct{ pos token.Pos }

func (p poser) Pos() token.Pos { return p.pos }
func Pos(pos token.Pos) Poser  { return poser{pos} }
