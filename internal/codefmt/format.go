package codefmt

import (
	"fmt"
	"go/ast"
	"go/format"
	"go/token"
	"os"
	"path/filepath"
	"strings"
)

// Formatter formats AST expressions and positions. Unlike type-aware code
// formatters, it works on syntax alone: intoerror processes directive files
// before they can type-check, so there is never a types.Info to consult.
type Formatter struct {
	Fset *token.FileSet
}

func New(fset *token.FileSet) Formatter {
	return Formatter{Fset: fset}
}

func newByFsetter(fsetter Fsetter) Formatter {
	if fsetter == nil {
		return New(nil)
	}
	return New(fsetter.Fset())
}

// Node returns the Go source representation of the given node. It accepts
// everything go/format does, including *printer.CommentedNode. Synthetic
// nodes without positions are supported.
func (f Formatter) Node(node any) string {
	fset := f.Fset
	if fset == nil {
		fset = token.NewFileSet()
	}

	var b strings.Builder
	if err := format.Node(&b, fset, node); err != nil {
		panic(err) // AST nodes are always printable by go/printer
	}
	return b.String()
}

// Expr returns the Go source representation of the given [ast.Expr].
func (f Formatter) Expr(expr ast.Expr) string {
	return f.Node(expr)
}

// ExprParen returns the source representation of the given expression. It
// wraps the string with parentheses if the expression is a pointer type.
func (f Formatter) ExprParen(expr ast.Expr) string {
	s := f.Expr(expr)
	if strings.HasPrefix(s, "*") {
		return fmt.Sprintf("(%s)", s)
	}
	return s
}

func (f Formatter) Pos(pos token.Pos) string {
	return FormatPosition(f.Fset.Position(pos))
}

// wd is the cached working directory.
var wd, _ = os.Getwd()

func FormatPosition(pos token.Position) string {
	if !pos.IsValid() {
		return "-:-"
	}

	filename := pos.Filename
	if rel, err := filepath.Rel(wd, filename); err == nil {
		filename = rel
	}

	return fmt.Sprintf("%s:%d:%d", filename, pos.Line, pos.Column)
}
