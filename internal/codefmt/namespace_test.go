package codefmt

import (
	"go/ast"
	"go/parser"
	"go/token"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisambiguate(t *testing.T) {
	pull, stop := iter.Pull(DisambiguateName("example"))
	defer stop()

	var name string
	var more bool

	name, more = pull()
	assert.Equal(t, "example", name)
	assert.True(t, more)

	name, more = pull()
	assert.Equal(t, "example2", name)
	assert.True(t, more)

	name, more = pull()
	assert.Equal(t, "example3", name)
	assert.True(t, more)
}

func TestDisambiguateNumSuffix(t *testing.T) {
	pull, stop := iter.Pull(DisambiguateName("answer42"))
	defer stop()

	var name string
	var more bool

	name, more = pull()
	assert.Equal(t, "answer42", name)
	assert.True(t, more)

	name, more = pull()
	assert.Equal(t, "answer42_2", name)
	assert.True(t, more)

	name, more = pull()
	assert.Equal(t, "answer42_3", name)
	assert.True(t, more)
}

func TestNameNumbering(t *testing.T) {
	ns := make(NS)
	assert.Equal(t, "err", ns.Name("err"))
	assert.Equal(t, "err2", ns.Name("err"))
	assert.Equal(t, "err3", ns.Name("err"))
}

func TestNameReserved(t *testing.T) {
	ns := make(NS)
	ns.Reserve("v0")
	assert.Equal(t, "v0_2", ns.Name("v0"))
}

func TestExportName(t *testing.T) {
	assert.Equal(t, "Timeout", ExportName("timeout"))
	assert.Equal(t, "Timeout", ExportName("Timeout"))
	assert.Equal(t, "IoFailure", ExportName("ioFailure"))
}

func TestNewNSReservesTopLevel(t *testing.T) {
	src := `package p

import f "fmt"

type Payment struct{}

const limit = 10

var count int

func Charge() {}

func (Payment) Refund() {}
`
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "p.go", src, 0)
	require.NoError(t, err)

	ns := NewNS([]*ast.File{file})
	assert.False(t, ns.Reserve("Payment"))
	assert.False(t, ns.Reserve("limit"))
	assert.False(t, ns.Reserve("count"))
	assert.False(t, ns.Reserve("Charge"))
	assert.False(t, ns.Reserve("f"))

	// Methods do not occupy the package namespace.
	assert.True(t, ns.Reserve("Refund"))
}
