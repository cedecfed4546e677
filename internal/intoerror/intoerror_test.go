package intoerrorinternal

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/packages"

	"github.com/tikhop/IntoError/pkg/intoerrorfaults"
)

// loadPackage builds a syntax-only package from source strings, the same
// shape load produces.
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

func generate(t *testing.T, srcs ...string) string {
	t.Helper()

	g, err := New(loadPackage(t, srcs...), DefaultOptions())
	require.NoError(t, err)
	require.NoError(t, g.Build())

	code := g.Generate()
	requireParses(t, string(code))
	return string(code)
}

// requireParses checks that the generated file is syntactically valid Go.
func requireParses(t *testing.T, code string) {
	t.Helper()
	fset := token.NewFileSet()
	_, err := parser.ParseFile(fset, "intoerror_gen.go", code, 0)
	require.NoError(t, err, "generated code does not parse:\n%s", code)
}

const paymentSrc = `//go:build intoerror

package payment

import "fmt"

// DeclineError reports a decline code from the issuer.
type DeclineError struct {
	Code int
}

func (e DeclineError) Error() string {
	return fmt.Sprintf("declined: %d", e.Code)
}

//intoerror:union
type PaymentError struct {
	Declined DeclineError
	Other    error
}

//intoerror:wrap
func Charge(id string) (int, *PaymentError) {
	n, err := bill(id)
	if err != nil {
		return 0, err
	}
	return n, nil
}

//intoerror:wrap PaymentError
func Refund(id string) error {
	return fmt.Errorf("refund %s not supported", id)
}

func bill(id string) (int, error) {
	return 0, nil
}
`

func TestGenerate(t *testing.T) {
	code := generate(t, paymentSrc)

	// Frame.
	assert.Contains(t, code, "//go:build !intoerror")
	assert.Contains(t, code, "DO NOT EDIT")
	assert.Contains(t, code, "package payment")

	// Synthesized union code.
	assert.Contains(t, code, "type PaymentErrorKind int")
	assert.Regexp(t, `Kind\s+PaymentErrorKind`, code)
	assert.Contains(t, code, "func NewPaymentErrorDeclined(err DeclineError) *PaymentError")
	assert.Contains(t, code, "func PaymentErrorFrom(err error) *PaymentError")
	assert.Contains(t, code, "func AsPaymentError(err error) *PaymentError")
	assert.Contains(t, code, "func CatchPaymentError[T any](v T, err error) (T, error)")

	// Rewritten functions.
	assert.Contains(t, code, "func Charge(id string) (int, *PaymentError) {")
	assert.Contains(t, code, "AsPaymentError(err)")
	assert.Contains(t, code, "func Refund(id string) error {")

	// Merged declarations.
	assert.Contains(t, code, "// file0.go:")
	assert.Contains(t, code, "// DeclineError reports a decline code from the issuer.")
	assert.Contains(t, code, "func (e DeclineError) Error() string")
	assert.Contains(t, code, "func bill(id string) (int, error)")

	// Imports are collected from usage.
	assert.Contains(t, code, `"fmt"`)

	// Directives never leak into the generated file.
	assert.NotContains(t, code, "//intoerror:")
	assert.NotContains(t, code, "//go:build intoerror\n")

	// The source union declaration is replaced by the augmented one.
	assert.Equal(t, 1, strings.Count(code, "type PaymentError struct"))
}

func TestGenerateDeterministic(t *testing.T) {
	first := generate(t, paymentSrc)
	second := generate(t, paymentSrc)
	assert.Equal(t, first, second)
}

func TestGenerateNothing(t *testing.T) {
	g, err := New(loadPackage(t, `//go:build intoerror

package payment

func bill() {}
`), DefaultOptions())
	require.NoError(t, err)
	require.NoError(t, g.Build())
	assert.Nil(t, g.Generate())
}

func TestGenerateGroupedTypeDecl(t *testing.T) {
	code := generate(t, `//go:build intoerror

package payment

type (
	//intoerror:union
	PaymentError struct {
		Other error
	}

	Receipt struct {
		Total int
	}
)
`)

	// The union spec leaves the group; its sibling stays.
	assert.Contains(t, code, "Receipt struct")
	assert.Regexp(t, `Kind\s+PaymentErrorKind`, code)
	assert.Equal(t, 1, strings.Count(code, "PaymentError struct"))
}

func TestGenerateImportConflict(t *testing.T) {
	code := generate(t, `//go:build intoerror

package payment

import "math/rand"

//intoerror:union
type PaymentError struct {
	Other error
}

func roll() int { return rand.Int() }
`, `//go:build intoerror

package payment

import "crypto/rand"

func read(p []byte) (int, error) { return rand.Read(p) }
`)

	assert.Contains(t, code, `"math/rand"`)
	assert.Contains(t, code, `rand2 "crypto/rand"`)
	assert.Contains(t, code, "rand2.Read(p)")
	assert.Contains(t, code, "rand.Int()")
}

func TestGenerateCustomFallback(t *testing.T) {
	opts := DefaultOptions()
	opts.Fallback = "Rest"

	g, err := New(loadPackage(t, `//go:build intoerror

package payment

//intoerror:union
type PaymentError struct {
	Declined DeclineError
}
`), opts)
	require.NoError(t, err)
	require.NoError(t, g.Build())

	code := string(g.Generate())
	requireParses(t, code)
	assert.Regexp(t, `Rest\s+error`, code)
	assert.Contains(t, code, "func NewPaymentErrorRest(err error) *PaymentError")
}

func TestBuildFault(t *testing.T) {
	g, err := New(loadPackage(t, `//go:build intoerror

package payment

//intoerror:union
type PaymentError int
`), DefaultOptions())
	require.NoError(t, err)

	err = g.Build()
	assert.ErrorIs(t, err, intoerrorfaults.ErrNotUnionDecl)
}

func TestBuildJoinsFaults(t *testing.T) {
	g, err := New(loadPackage(t, `//go:build intoerror

package payment

//intoerror:union
type PaymentError int

//intoerror:wrap
func Refund() error {
	return nil
}
`), DefaultOptions())
	require.NoError(t, err)

	err = g.Build()
	assert.ErrorIs(t, err, intoerrorfaults.ErrNotUnionDecl)
	assert.ErrorIs(t, err, intoerrorfaults.ErrMissingTypedContract)
}

func TestReorderErrors(t *testing.T) {
	errB := errors.New("b error")
	errA := errors.New("a error")
	joined := errors.Join(errB, errors.Join(errA))

	reordered := reorderErrors(joined)
	assert.Equal(t, "a error\nb error", reordered.Error())
	assert.ErrorIs(t, reordered, errA)
	assert.ErrorIs(t, reordered, errB)
}
