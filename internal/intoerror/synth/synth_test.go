package synth_test

import (
	"bytes"
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/packages"

	"github.com/tikhop/IntoError/internal/codefmt"
	"github.com/tikhop/IntoError/internal/intoerror/parse"
)

// testPackage builds a syntax-only package from one directive file.
func testPackage(t *testing.T, src string) *packages.Package {
	t.Helper()

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "file0.go", src, parser.ParseComments)
	require.NoError(t, err)

	return &packages.Package{
		Name:   file.Name.Name,
		Fset:   fset,
		Syntax: []*ast.File{file},
	}
}

// newWriter returns a Writer whose namespace knows the package's top-level
// names, writing into buf.
func newWriter(t *testing.T, pkg *packages.Package) (*codefmt.Writer, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	ns := codefmt.NewNS(pkg.Syntax)
	return codefmt.NewWriter(&buf, pkg.Fset).WithNS(ns), &buf
}

func parseUnion(t *testing.T, src string) (*parse.Parser, *parse.Union) {
	t.Helper()
	p, err := parse.New(testPackage(t, src))
	require.NoError(t, err)
	unions, errs := p.ParseUnions(parse.DefaultFallbackName)
	require.NoError(t, errs)
	require.Len(t, unions, 1)
	return p, unions[0]
}

func parseWrap(t *testing.T, src string) (*parse.Parser, *parse.Wrap) {
	t.Helper()
	p, err := parse.New(testPackage(t, src))
	require.NoError(t, err)
	unions, errs := p.ParseUnions(parse.DefaultFallbackName)
	require.NoError(t, errs)
	wraps, errs := p.ParseWraps(unions)
	require.NoError(t, errs)
	require.Len(t, wraps, 1)
	return p, wraps[0]
}

// requireParses checks that the emitted declarations are syntactically valid
// Go code.
func requireParses(t *testing.T, code string) {
	t.Helper()
	fset := token.NewFileSet()
	_, err := parser.ParseFile(fset, "generated.go", "package p\n\n"+code, 0)
	require.NoError(t, err, "generated code does not parse:\n%s", code)
}
