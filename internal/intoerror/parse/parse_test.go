package parse_test

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/packages"

	"github.com/tikhop/IntoError/internal/intoerror/parse"
)

// loadPackage builds a syntax-only package from source strings, the same
// shape the generator receives from packages.Load.
func loadPackage(t *testing.T, srcs ...string) *packages.Package {
	t.Helper()

	fset := token.NewFileSet()
	var files []*ast.File
	for i, src := range srcs {
		file, err := parser.ParseFile(fset, fmt.Sprintf("file%d.go", i), src, parser.ParseComments)
		require.NoError(t, err)
		files = append(files, file)
	}

	return &packages.Package{
		Name:   files[0].Name.Name,
		Fset:   fset,
		Syntax: files,
	}
}

func newParser(t *testing.T, srcs ...string) *parse.Parser {
	t.Helper()
	p, err := parse.New(loadPackage(t, srcs...))
	require.NoError(t, err)
	return p
}
