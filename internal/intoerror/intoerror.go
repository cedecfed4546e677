package intoerrorinternal

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/format"
	"go/printer"
	"go/token"
	"io"
	"maps"
	"path/filepath"
	"strconv"

	"golang.org/x/tools/go/ast/astutil"
	"golang.org/x/tools/go/packages"

	"github.com/tikhop/IntoError/internal/codefmt"
	"github.com/tikhop/IntoError/internal/intoerror/parse"
	"github.com/tikhop/IntoError/internal/intoerror/synth"
	"github.com/tikhop/IntoError/pkg/intoerrorfaults"
)

// IntoError generates tagged-union conversion code for the target package.
// Call [IntoError.Build] and then [IntoError.Generate] to get the generated
// code. All potential errors are returned by Build. Once Build succeeds,
// Generate never fails.
type IntoError struct {
	p    *parse.Parser
	opts Options
	ns   codefmt.NS
	buf  *bytes.Buffer
	w    *codefmt.Writer

	unions []*parse.Union
	wraps  []*parse.Wrap

	unionSpecs map[token.Pos]bool // type specs replaced by synthesized code
	wrapDecls  map[token.Pos]bool // func decls replaced by rewritten code
}

// New creates a new [IntoError] for the given package. The package must have
// its Name, Fset, and Syntax; type information is not needed because
// directive files do not type-check until the generated file exists.
func New(pkg *packages.Package, opts Options) (*IntoError, error) {
	parser, err := parse.New(pkg)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	ns := codefmt.NewNS(pkg.Syntax)
	return &IntoError{
		p:    parser,
		opts: opts.withDefaults(),
		ns:   ns,
		buf:  &buf,
		w:    codefmt.NewWriter(&buf, pkg.Fset).WithNS(ns),
	}, nil
}

// Build parses the directives and validates everything. All potential
// errors are returned by this method. It must be called before
// [IntoError.Generate].
func (g *IntoError) Build() error {
	unions, errs := g.p.ParseUnions(g.opts.Fallback)
	g.unions = unions

	wraps, err := g.p.ParseWraps(unions)
	errs = errors.Join(errs, err)
	g.wraps = wraps

	g.unionSpecs = make(map[token.Pos]bool)
	g.wrapDecls = make(map[token.Pos]bool)

	for _, u := range unions {
		g.unionSpecs[u.Spec.Pos()] = true

		// The resolver guarantees a wildcard variant. Catch a broken
		// sequence here instead of letting Generate emit a constructor for
		// a variant that does not exist.
		if _, ok := u.Variants.Wildcard(); !ok {
			err := codefmt.Errorf(g.p, u, "%w: %s", intoerrorfaults.ErrFallbackMissing, u.Name)
			errs = errors.Join(errs, err)
		}
	}
	for _, wr := range wraps {
		g.wrapDecls[wr.Decl.Pos()] = true
	}

	if errs != nil {
		return errs
	}

	// Reserve the names of the declarations about to be generated, so
	// import disambiguation never claims them.
	for _, u := range g.unions {
		g.ns.Reserve(u.Name)
		g.ns.Reserve(synth.KindTypeName(u.Name))
		g.ns.Reserve(synth.FromName(u.Name))
		g.ns.Reserve(synth.AsName(u.Name))
		g.ns.Reserve(synth.CatchName(u.Name))
		for _, v := range u.Variants.All() {
			g.ns.Reserve(synth.ConstName(u.Name, v.Name))
			g.ns.Reserve(synth.CtorName(u.Name, v.Name))
		}
	}

	return nil
}

// Generate generates the union conversion code and the rewritten functions
// for the package. It must be called after [IntoError.Build] succeeds.
// Running it twice over an unchanged package yields byte-identical output.
func (g *IntoError) Generate() []byte {
	if len(g.unions) == 0 && len(g.wraps) == 0 {
		return nil
	}

	g.writeSynthCode()
	g.mergeCode()
	return g.frameCode()
}

// writeSynthCode writes the declarations synthesized per union and the
// rewritten wrapped functions, in source order.
func (g *IntoError) writeSynthCode() {
	if len(g.unions) != 0 {
		g.w.Printf("// intoerror: unions\n\n")

		for _, u := range g.unions {
			g.useImports(u.File, u.Decl)

			w := g.w.WithNS(maps.Clone(g.ns))
			if err := synth.Union(w, u); err != nil {
				panic(err) // Build has validated every union
			}
			synth.Wrapper(w, u)
		}
	}

	if len(g.wraps) != 0 {
		g.w.Printf("// intoerror: wrapped functions\n\n")

		for _, wr := range g.wraps {
			g.useImports(wr.File, wr.Decl)

			w := g.w.WithNS(maps.Clone(g.ns))
			synth.Func(w, wr)
		}
	}
}

// mergeCode copies non-directive declarations from the files tagged with
// "//go:build intoerror", so the package keeps a single source of truth
// under the tag. Declarations replaced by synthesized code are skipped and
// directive comments are erased.
func (g *IntoError) mergeCode() {
	for _, file := range g.p.DirectiveFiles() {
		name := filepath.Base(g.p.Fset().File(file.Pos()).Name())
		first := true

		for _, decl := range file.Decls {
			rebuilt := false

			switch d := decl.(type) {
			case *ast.FuncDecl:
				if g.wrapDecls[d.Pos()] {
					continue
				}

			case *ast.GenDecl:
				if d.Tok == token.IMPORT {
					// Required imports are collected from their usage and
					// rewritten as one import declaration group.
					continue
				}

				if d.Tok == token.TYPE {
					specs := make([]ast.Spec, 0, len(d.Specs))
					for _, spec := range d.Specs {
						if g.unionSpecs[spec.Pos()] {
							continue
						}
						specs = append(specs, spec)
					}
					if len(specs) == 0 {
						continue
					}
					if len(specs) != len(d.Specs) {
						dup := *d
						dup.Specs = specs
						decl = &dup
						rebuilt = true
					}
				}
			}

			if first {
				g.w.Printf("// %s:\n\n", name)
				first = false
			}

			g.useImports(file, decl)
			g.writeDecl(file, decl, rebuilt)
		}
	}
}

// writeDecl prints one user declaration: its doc comment with directive
// lines erased, then the declaration itself. Comments inside the
// declaration are kept, except for a rebuilt group whose removed specs
// would leave their comments floating.
func (g *IntoError) writeDecl(file *ast.File, decl ast.Decl, rebuilt bool) {
	var doc *ast.CommentGroup
	switch decl := decl.(type) {
	case *ast.FuncDecl:
		doc = decl.Doc
	case *ast.GenDecl:
		doc = decl.Doc
	}

	if stripped := parse.StripDirectives(doc); stripped != nil {
		for _, comment := range stripped.List {
			g.w.Printf("%s\n", comment.Text)
		}
	}

	if rebuilt {
		g.w.Printf("%s\n\n", codefmt.FormatNode(g.w, decl))
		return
	}

	g.w.Printf("%s\n\n", codefmt.FormatNode(g.w, &printer.CommentedNode{
		Node:     decl,
		Comments: file.Comments,
	}))
}

// useImports registers the file imports the node refers to, so the
// generated file imports them as well. When an import has to be renamed to
// avoid a conflict between merged files, the node's qualifiers are rewritten
// in place. The check is syntactic: a local variable sharing its name with
// an import qualifier can cause a false positive, which gofmt-level tools
// flag in the directive file anyway.
func (g *IntoError) useImports(file *ast.File, node ast.Node) {
	byName := make(map[string]string, len(file.Imports))
	for _, imp := range file.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}

		name := codefmt.ImportName(path)
		if imp.Name != nil {
			name = imp.Name.Name
			if name == "_" || name == "." {
				// Blank and dot imports stay in the directive file; merged
				// declarations cannot refer to them by name.
				continue
			}
		}
		byName[name] = path
	}

	astutil.Apply(node, func(c *astutil.Cursor) bool {
		sel, ok := c.Node().(*ast.SelectorExpr)
		if !ok {
			return true
		}
		id, ok := sel.X.(*ast.Ident)
		if !ok {
			return true
		}

		path, ok := byName[id.Name]
		if !ok {
			return true
		}

		if name := g.w.Import(path, id.Name); name != id.Name {
			id.Name = name
		}
		return true
	}, nil)
}

func (g *IntoError) frameCode() []byte {
	versionSuffix := ""
	if Version != "" {
		versionSuffix = "@" + Version
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "//go:build !%s\n", parse.Tag)
	fmt.Fprintf(&buf, "// Code generated by github.com/tikhop/IntoError%s. DO NOT EDIT.\n", versionSuffix)
	fmt.Fprintf(&buf, "package %s\n", g.p.Pkg().Name)

	if imps := g.w.Imports(); len(imps) != 0 {
		fmt.Fprintf(&buf, "import (\n")
		for _, imp := range imps {
			if imp.HasAlias {
				fmt.Fprintf(&buf, "%s %q\n", imp.Name, imp.Path)
			} else {
				fmt.Fprintf(&buf, "%q\n", imp.Path)
			}
		}
		fmt.Fprintf(&buf, ")\n")
	}

	_, _ = io.Copy(&buf, g.buf)
	code := buf.Bytes()

	// Apply gofmt if succeeded
	if fmtCode, err := format.Source(code); err == nil {
		code = fmtCode
	}
	return code
}
