package parse

import (
	"errors"
	"go/ast"
	"go/token"

	"github.com/tikhop/IntoError/pkg/intoerrorfaults"
)

// Wrap is a parsed //intoerror:wrap declaration: a function whose body gets
// the attempt/intercept/re-raise treatment against its resolved target.
type Wrap struct {
	File *ast.File
	Decl *ast.FuncDecl

	// Target is the union failures are converted into.
	Target Target

	dir Directive
}

func (w *Wrap) Pos() token.Pos { return w.Decl.Pos() }
func (w *Wrap) End() token.Pos { return w.Decl.End() }

// ParseWraps collects //intoerror:wrap declarations from the directive
// files, in source order. unions are the package's parsed union directives;
// a wrap target that names none of them is a fault, because the generated
// body would call a constructor that does not exist.
func (p *Parser) ParseWraps(unions []*Union) ([]*Wrap, error) {
	known := make(map[string]bool, len(unions))
	for _, u := range unions {
		known[u.Name] = true
	}

	var wraps []*Wrap
	var errs error

	for _, file := range p.DirectiveFiles() {
		for _, decl := range file.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok {
				continue
			}

			dir, has := directiveOf(fn.Doc)
			if !has {
				continue
			}

			switch dir.Name {
			case "wrap":
			case "union":
				errs = errors.Join(errs, p.errf(intoerrorfaults.ErrNotUnionDecl,
					fn, "//intoerror:union must mark a struct type, found func %s", fn.Name.Name))
				continue
			default:
				errs = errors.Join(errs, p.errf(intoerrorfaults.ErrUnknownDirective,
					fn, "//intoerror:%s", dir.Name))
				continue
			}

			if fn.Body == nil {
				errs = errors.Join(errs, p.errf(intoerrorfaults.ErrMissingBody,
					fn, "%s has no body to rewrite", fn.Name.Name))
				continue
			}

			target, err := p.resolveTarget(fn, dir)
			if err != nil {
				errs = errors.Join(errs, err)
				continue
			}

			if !known[target.Type] {
				errs = errors.Join(errs, p.errf(intoerrorfaults.ErrUnknownTargetUnion,
					fn, "%s is not declared with //intoerror:union in this package", target.Type))
				continue
			}

			wraps = append(wraps, &Wrap{
				File:   file,
				Decl:   fn,
				Target: target,
				dir:    dir,
			})
		}
	}

	return wraps, errs
}
