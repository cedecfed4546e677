package parse

import (
	"errors"
	"go/ast"
	"go/token"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"github.com/tikhop/IntoError/internal/astinfo"
	"github.com/tikhop/IntoError/internal/codefmt"
	"github.com/tikhop/IntoError/pkg/intoerrorfaults"
)

// Variant is one case of a tagged union: a name wrapping exactly one payload.
type Variant struct {
	// Name is the variant name, taken from the field name.
	Name string

	// Tag is the textual type tag of the payload.
	Tag string

	// Wildcard reports whether the payload tag denotes "any failure".
	Wildcard bool

	// Field is the declared struct field, nil for the variant synthesized by
	// the fallback resolver.
	Field *ast.Field
}

// Synthesized reports whether the variant was appended by the fallback
// resolver instead of being declared in the source union.
func (v *Variant) Synthesized() bool { return v.Field == nil }

// VariantSequence is an ordered sequence of variants, unique by name. The
// order is load-bearing: it drives both constructor emission order and the
// generic constructor's match order.
type VariantSequence struct {
	m *linkedhashmap.Map // name -> *Variant, in declaration order
}

func newVariantSequence() *VariantSequence {
	return &VariantSequence{m: linkedhashmap.New()}
}

// ExtractVariants walks a tagged-union struct type and produces the variant
// sequence in source order. Members that do not fit the single-payload case
// shape (embedded fields, fields declaring several names at once) are
// silently skipped.
func ExtractVariants(st *ast.StructType) *VariantSequence {
	seq := newVariantSequence()
	if st.Fields == nil {
		return seq
	}

	for _, field := range st.Fields.List {
		if len(field.Names) != 1 {
			continue
		}

		seq.append(&Variant{
			Name:     field.Names[0].Name,
			Tag:      astinfo.TypeTag(field.Type),
			Wildcard: astinfo.IsWildcard(field.Type),
			Field:    field,
		})
	}
	return seq
}

func (s *VariantSequence) append(v *Variant) {
	s.m.Put(v.Name, v)
}

// Len returns the number of variants.
func (s *VariantSequence) Len() int { return s.m.Size() }

// All yields the variants in declaration order.
func (s *VariantSequence) All() []*Variant {
	vs := make([]*Variant, 0, s.m.Size())
	it := s.m.Iterator()
	for it.Next() {
		vs = append(vs, it.Value().(*Variant))
	}
	return vs
}

// Has reports whether a variant with the given name exists.
func (s *VariantSequence) Has(name string) bool {
	_, ok := s.m.Get(name)
	return ok
}

// Wildcard returns the first variant whose payload tag denotes "any
// failure", in declaration order.
func (s *VariantSequence) Wildcard() (*Variant, bool) {
	for _, v := range s.All() {
		if v.Wildcard {
			return v, true
		}
	}
	return nil, false
}

// Union is a parsed //intoerror:union declaration with its resolved variant
// sequence.
type Union struct {
	// Name is the union type name.
	Name string

	File   *ast.File
	Decl   *ast.GenDecl
	Spec   *ast.TypeSpec
	Struct *ast.StructType

	// Variants is the extracted sequence, fallback-resolved: it always ends
	// in exactly one wildcard variant unless the source union declared one
	// earlier.
	Variants *VariantSequence

	// Synthesized is the fallback variant appended by the resolver, nil when
	// the source union already had a wildcard variant. It is the member
	// delta to splice into the union declaration.
	Synthesized *Variant

	dir Directive
}

func (u *Union) Pos() token.Pos { return u.Spec.Pos() }
func (u *Union) End() token.Pos { return u.Spec.End() }

// MemberNames returns every member name the union struct declares, not just
// the extracted variants: skipped multi-name members and the bare names of
// embedded fields count too, because the generated struct re-emits all of
// them. The synthesized fallback member is included once resolution ran.
func (u *Union) MemberNames() map[string]bool {
	names := structMemberNames(u.Struct)
	if u.Synthesized != nil {
		names[u.Synthesized.Name] = true
	}
	return names
}

func structMemberNames(st *ast.StructType) map[string]bool {
	names := make(map[string]bool)
	if st.Fields == nil {
		return names
	}

	for _, field := range st.Fields.List {
		for _, name := range field.Names {
			names[name.Name] = true
		}
		if len(field.Names) != 0 {
			continue
		}

		// An embedded field is addressed by the bare name of its type.
		typ := ast.Unparen(field.Type)
		if star, ok := typ.(*ast.StarExpr); ok {
			typ = star.X
		}
		if id, ok := astinfo.TailIdent(typ); ok {
			names[id.Name] = true
		}
	}
	return names
}

// ParseUnions collects //intoerror:union declarations from the directive
// files, in source order. fallbackName is the variant name to synthesize
// when a union lacks a wildcard variant.
func (p *Parser) ParseUnions(fallbackName string) ([]*Union, error) {
	var unions []*Union
	var errs error

	for _, file := range p.DirectiveFiles() {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok {
				continue
			}

			if gen.Tok != token.TYPE {
				// Directives on var, const, and import declarations are
				// always misplaced.
				if dir, has := directiveOf(gen.Doc); has {
					errs = errors.Join(errs, p.checkDeclDirective(dir, gen))
				}
				continue
			}

			for _, spec := range gen.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}

				dir, has := directiveOf(ts.Doc, gen.Doc)
				if !has {
					continue
				}

				switch dir.Name {
				case "union":
				case "wrap":
					errs = errors.Join(errs, p.errf(intoerrorfaults.ErrNotFuncDecl,
						ts, "//intoerror:wrap must mark a function, found type %s", ts.Name.Name))
					continue
				default:
					errs = errors.Join(errs, p.errf(intoerrorfaults.ErrUnknownDirective,
						ts, "//intoerror:%s", dir.Name))
					continue
				}

				st, ok := ts.Type.(*ast.StructType)
				if !ok {
					errs = errors.Join(errs, p.errf(intoerrorfaults.ErrNotUnionDecl,
						ts, "%s is not a struct type", ts.Name.Name))
					continue
				}

				union := &Union{
					Name:   ts.Name.Name,
					File:   file,
					Decl:   gen,
					Spec:   ts,
					Struct: st,
					dir:    dir,
				}
				union.Variants = ExtractVariants(st)
				union.Synthesized = Resolve(union.Variants, fallbackName, structMemberNames(st))
				unions = append(unions, union)
			}
		}
	}

	return unions, errs
}

// checkDeclDirective reports faults for directives on non-type GenDecls
// (var, const, and import declarations). Faults are anchored at the
// declaration, not the directive comment.
func (p *Parser) checkDeclDirective(dir Directive, at codefmt.Poser) error {
	switch dir.Name {
	case "union":
		return p.errf(intoerrorfaults.ErrNotUnionDecl, at,
			"//intoerror:union must mark a struct type declaration")
	case "wrap":
		return p.errf(intoerrorfaults.ErrNotFuncDecl, at,
			"//intoerror:wrap must mark a function declaration")
	}
	return p.errf(intoerrorfaults.ErrUnknownDirective, at, "//intoerror:%s", dir.Name)
}
