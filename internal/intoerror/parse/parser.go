package parse

import (
	"fmt"
	"go/ast"
	"go/build/constraint"
	"go/token"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/tikhop/IntoError/internal/codefmt"
)

// Tag is the build constraint that keeps directive files out of regular
// builds. Generated files carry its negation.
const Tag = "intoerror"

// prefix marks directive comments, e.g. "//intoerror:union".
const prefix = "//" + Tag + ":"

// Parser collects intoerror directives from the AST of the underlying
// package. It works on syntax alone: directive files are not expected to
// type-check before generation.
type Parser struct{ pkg *packages.Package }

// New creates a new [Parser].
func New(pkg *packages.Package) (*Parser, error) {
	if pkg.Name == "" {
		return nil, fmt.Errorf("need pkg name")
	}
	if pkg.Fset == nil {
		return nil, fmt.Errorf("need pkg fset")
	}
	if pkg.Syntax == nil {
		return nil, fmt.Errorf("need pkg syntax")
	}
	return &Parser{pkg: pkg}, nil
}

func (p *Parser) Pkg() *packages.Package { return p.pkg }
func (p *Parser) Fset() *token.FileSet   { return p.pkg.Fset }

// Directive is one parsed "//intoerror:NAME ARG" comment.
type Directive struct {
	// Name is the directive name, e.g. "union" or "wrap".
	Name string

	// Arg is the raw argument text after the directive name, "" when the
	// directive has no argument.
	Arg string

	pos token.Pos
	end token.Pos
}

func (d Directive) Pos() token.Pos { return d.pos }
func (d Directive) End() token.Pos { return d.end }

// IsDirective reports whether the comment line is an intoerror directive.
// Like other Go directives, the comment must not have a space after "//".
func IsDirective(text string) bool {
	return strings.HasPrefix(text, prefix)
}

// directiveOf scans doc comment groups for a directive line. Only the first
// directive found is returned; group order decides precedence.
func directiveOf(groups ...*ast.CommentGroup) (Directive, bool) {
	for _, group := range groups {
		if group == nil {
			continue
		}
		for _, comment := range group.List {
			if !IsDirective(comment.Text) {
				continue
			}

			rest := strings.TrimPrefix(comment.Text, prefix)
			name, arg, _ := strings.Cut(rest, " ")
			return Directive{
				Name: name,
				Arg:  strings.TrimSpace(arg),
				pos:  comment.Pos(),
				end:  comment.End(),
			}, true
		}
	}
	return Directive{}, false
}

// DirectiveFiles returns the Go files constrained by "//go:build intoerror".
// Only these files are scanned for directives and merged into the generated
// output.
func (p *Parser) DirectiveFiles() []*ast.File {
	var files []*ast.File
	for _, file := range p.pkg.Syntax {
		if hasDirectiveTag(file) {
			files = append(files, file)
		}
	}
	return files
}

// hasDirectiveTag checks if the file has a "//go:build intoerror" constraint.
func hasDirectiveTag(file *ast.File) bool {
	ok := false
	for _, group := range file.Comments {
		for _, comment := range group.List {
			if constraint.IsGoBuild(comment.Text) {
				expr, _ := constraint.Parse(comment.Text)
				expr.Eval(func(tag string) bool {
					if tag == Tag {
						ok = true
					}
					return true
				})
			}
		}
	}
	return ok
}

// errf builds a positional fault. kind must be one of the
// [intoerrorfaults] sentinels so hosts can match the fault with errors.Is.
func (p *Parser) errf(kind error, poser codefmt.Poser, format string, args ...any) error {
	msg := codefmt.Sprintf(p, format, args...)
	return codefmt.Errorf(p, poser, "%w: %s", kind, msg)
}

// StripDirectives returns a copy of the comment group without directive
// lines, or nil when nothing else remains. Used when re-emitting user
// declarations into the generated file.
func StripDirectives(doc *ast.CommentGroup) *ast.CommentGroup {
	if doc == nil {
		return nil
	}

	var list []*ast.Comment
	for _, comment := range doc.List {
		if IsDirective(comment.Text) {
			continue
		}
		list = append(list, comment)
	}
	if len(list) == 0 {
		return nil
	}
	return &ast.CommentGroup{List: list}
}
