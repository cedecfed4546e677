package codefmt

import (
	"go/token"
	"io"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Writer is a writer for generated code.
type Writer struct {
	w       io.Writer
	fmt     Formatter
	imports *linkedhashmap.Map // path -> Import, in first-use order
	ns      NS
}

// NewWriter creates a new [Writer]. It does not initialize the
// namespace. To specify a namespace, use [Writer.WithNS].
func NewWriter(w io.Writer, fset *token.FileSet) *Writer {
	return &Writer{
		w:       w,
		fmt:     New(fset),
		imports: linkedhashmap.New(),
		ns:      nil,
	}
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	return w.w.Write(p)
}

// Fset returns the file set positions in formatted values belong to.
func (w *Writer) Fset() *token.FileSet {
	return w.fmt.Fset
}

// Printf writes a formatted string to the underlying writer using
// [Formatter.Fprintf].
func (w *Writer) Printf(format string, args ...any) (int, error) {
	return w.fmt.Fprintf(w.w, format, args...)
}

// Sprintf creates a formatted string using [Formatter.Sprintf].
func (w *Writer) Sprintf(format string, args ...any) string {
	return w.fmt.Sprintf(format, args...)
}

// Name returns a unique name in the namespace of the writer.
func (w *Writer) Name(name string) string {
	return w.ns.Name(name)
}

// Reserve marks a name as used in the namespace of the writer.
func (w *Writer) Reserve(name string) bool {
	return w.ns.Reserve(name)
}

// WithBuf copies the writer and sets a new write buffer.
func (w *Writer) WithBuf(buf io.Writer) *Writer {
	return &Writer{
		w:       buf,
		fmt:     w.fmt,
		imports: w.imports,
		ns:      w.ns,
	}
}

// WithNS copies the writer and sets a new namespace.
func (w *Writer) WithNS(ns NS) *Writer {
	return &Writer{
		w:       w.w,
		fmt:     w.fmt,
		imports: w.imports,
		ns:      ns,
	}
}

// Import records a package to be imported by the generated file.
type Import struct {
	// Path is the import path.
	Path string

	// Name is the effective package name in generated code.
	Name string

	// HasAlias indicates that the import must be written with an alias.
	HasAlias bool
}

// Imports returns the collected imports in first-use order. Imports are
// collected by [Writer.Import].
func (w *Writer) Imports() []Import {
	imps := make([]Import, 0, w.imports.Size())
	it := w.imports.Iterator()
	for it.Next() {
		imps = append(imps, it.Value().(Import))
	}
	return imps
}

// Import adds an import for the package with the given path and effective
// name. It returns the name to refer to the imported package in generated
// code. The name might be different if it has tried to resolve name
// conflicts.
//
//	// fmtName can be used to refer to the "fmt" package without any name conflict.
//	fmtName := w.Import("fmt", "fmt")
//	w.Printf("%s.Println(\"Hello, World!\")", fmtName)
func (w *Writer) Import(path, name string) string {
	if name == "" {
		name = ImportName(path)
	}

	if prev, ok := w.imports.Get(path); ok {
		return prev.(Import).Name
	}

	for name := range DisambiguateName(name) {
		if taken := w.importNameTaken(name); taken {
			continue
		}
		if w.ns != nil && !w.ns.Reserve(name) {
			continue
		}
		w.imports.Put(path, Import{
			Path:     path,
			Name:     name,
			HasAlias: name != ImportName(path),
		})
		return name
	}

	panic("unreachable")
}

func (w *Writer) importNameTaken(name string) bool {
	it := w.imports.Iterator()
	for it.Next() {
		if it.Value().(Import).Name == name {
			return true
		}
	}
	return false
}

// ImportName guesses the package name of an import path: the last path
// segment, with a major-version segment ("/v2") or extension-style suffix
// (".v3" as in gopkg.in paths) trimmed. Without type information the guess
// can be wrong for packages whose name differs from their path; such imports
// need an explicit alias in the directive file.
func ImportName(path string) string {
	name := path
	if i := strings.LastIndex(name, "/"); i != -1 {
		name = name[i+1:]
	}

	if len(name) > 1 && name[0] == 'v' && strings.Trim(name[1:], "0123456789") == "" {
		// Major-version suffix like "grpc/v2"; the segment before it names
		// the package.
		trimmed := strings.TrimSuffix(path, "/"+name)
		return ImportName(trimmed)
	}

	if i := strings.Index(name, "."); i > 0 {
		name = name[:i]
	}
	return name
}
