// Package synth writes the declarations intoerror generates: per union the
// conversion constructors and wrapper helpers, and per wrapped function the
// rewritten body.
package synth

import (
	"go/ast"

	"github.com/emirpasic/gods/sets/linkedhashset"

	"github.com/tikhop/IntoError/internal/codefmt"
	"github.com/tikhop/IntoError/internal/intoerror/parse"
	"github.com/tikhop/IntoError/pkg/intoerrorfaults"
)

// KindTypeName returns the name of the variant enum generated for a union.
func KindTypeName(union string) string { return union + "Kind" }

// ConstName returns the name of the enum constant generated for a variant.
func ConstName(union, variant string) string {
	return union + codefmt.ExportName(variant)
}

// CtorName returns the name of the typed constructor generated for a variant.
func CtorName(union, variant string) string {
	return "New" + union + codefmt.ExportName(variant)
}

// FromName returns the name of the generic constructor generated for a union.
func FromName(union string) string { return union + "From" }

// AsName returns the name of the converting helper generated for a union.
func AsName(union string) string { return "As" + union }

// CatchName returns the name of the inline call-site helper generated for a
// union.
func CatchName(union string) string { return "Catch" + union }

// Union writes every declaration generated for one union: the variant kind
// enum, the augmented union type, its error conformance, one typed
// constructor per variant, and the generic constructor.
//
// The variant sequence must already be fallback-resolved; a sequence without
// a wildcard variant is a resolver defect and aborts synthesis.
func Union(w *codefmt.Writer, u *parse.Union) error {
	if _, ok := u.Variants.Wildcard(); !ok {
		return codefmt.Errorf(w, u, "%w: %s", intoerrorfaults.ErrFallbackMissing, u.Name)
	}

	writeKindCode(w, u)
	writeTypeCode(w, u)
	writeConformCode(w, u)
	writeCtorCode(w, u)
	writeFromCode(w, u)
	return nil
}

// payload returns the source text of a variant's payload type. The variant
// synthesized by the fallback resolver has no declared field; its payload is
// the top error type.
func payload(w *codefmt.Writer, v *parse.Variant) string {
	if v.Field != nil {
		return w.Sprintf("%c", v.Field.Type)
	}
	return v.Tag
}

// writeDoc prints a doc comment group verbatim.
func writeDoc(w *codefmt.Writer, doc *ast.CommentGroup) {
	if doc == nil {
		return
	}
	for _, comment := range doc.List {
		w.Printf("%s\n", comment.Text)
	}
}

// writeKindCode writes the variant enum, one constant per variant in
// declaration order.
func writeKindCode(w *codefmt.Writer, u *parse.Union) {
	kind := KindTypeName(u.Name)

	w.Printf("// %s identifies the variant held by a %s.\n", kind, u.Name)
	w.Printf("type %s int\n\n", kind)

	w.Printf("const (\n")
	for i, v := range u.Variants.All() {
		if i == 0 {
			w.Printf("%s %s = iota\n", constName(u, v.Name), kind)
			continue
		}
		w.Printf("%s\n", constName(u, v.Name))
	}
	w.Printf(")\n\n")
}

// constName returns the enum constant for a variant, stepping around the
// kind type name when a variant is literally named after it.
func constName(u *parse.Union, variant string) string {
	kind := KindTypeName(u.Name)
	for name := range codefmt.DisambiguateName(ConstName(u.Name, variant)) {
		if name != kind {
			return name
		}
	}
	panic("unreachable")
}

// kindFieldName picks the name of the tag field. "Kind" unless the union
// already declares a member with that name. Skipped members and embedded
// fields occupy their names too, since the generated struct re-emits them.
func kindFieldName(u *parse.Union) string {
	taken := u.MemberNames()
	for name := range codefmt.DisambiguateName("Kind") {
		if !taken[name] {
			return name
		}
	}
	panic("unreachable")
}

// writeTypeCode re-emits the union type with the tag field prepended and the
// synthesized fallback variant appended. Members skipped by variant
// extraction are still part of the user's type and are kept as declared.
func writeTypeCode(w *codefmt.Writer, u *parse.Union) {
	if doc := parse.StripDirectives(u.Spec.Doc); doc != nil {
		writeDoc(w, doc)
	} else if doc := parse.StripDirectives(u.Decl.Doc); doc != nil {
		writeDoc(w, doc)
	} else {
		w.Printf("// %s is a tagged union of its variant payloads.\n", u.Name)
	}

	w.Printf("type %s struct {\n", u.Name)
	w.Printf("%s %s\n\n", kindFieldName(u), KindTypeName(u.Name))

	for _, field := range u.Struct.Fields.List {
		for i, name := range field.Names {
			if i > 0 {
				w.Printf(", ")
			}
			w.Printf("%s", name.Name)
		}
		if len(field.Names) > 0 {
			w.Printf(" ")
		}
		w.Printf("%c", field.Type)
		if field.Tag != nil {
			w.Printf(" %s", field.Tag.Value)
		}
		w.Printf("\n")
	}

	if v := u.Synthesized; v != nil {
		w.Printf("%s %s\n", v.Name, v.Tag)
	}
	w.Printf("}\n\n")
}

// writeConformCode writes the error conformance of the union: Error and
// Unwrap over the held variant. Every payload type has to implement error
// itself; the compiler enforces that in the generated file.
func writeConformCode(w *codefmt.Writer, u *parse.Union) {
	w.Printf("// Error implements the error interface with the payload's message.\n")
	w.Printf("func (e *%s) Error() string {\n", u.Name)
	w.Printf("if err := e.Unwrap(); err != nil {\n")
	w.Printf("return err.Error()\n")
	w.Printf("}\n")
	w.Printf("return %q\n", u.Name)
	w.Printf("}\n\n")

	w.Printf("// Unwrap returns the wrapped payload of the held variant.\n")
	w.Printf("func (e *%s) Unwrap() error {\n", u.Name)
	w.Printf("switch e.%s {\n", kindFieldName(u))
	for _, v := range u.Variants.All() {
		w.Printf("case %s:\n", constName(u, v.Name))
		w.Printf("return e.%s\n", v.Name)
	}
	w.Printf("}\n")
	w.Printf("return nil\n")
	w.Printf("}\n\n")
}

// writeCtorCode writes one typed constructor per variant, in declaration
// order.
func writeCtorCode(w *codefmt.Writer, u *parse.Union) {
	kindField := kindFieldName(u)
	for _, v := range u.Variants.All() {
		ctor := CtorName(u.Name, v.Name)

		w.Printf("// %s wraps err into the %s variant of %s.\n", ctor, v.Name, u.Name)
		w.Printf("func %s(err %s) *%s {\n", ctor, payload(w, v), u.Name)
		w.Printf("return &%s{%s: %s, %s: err}\n",
			u.Name, kindField, constName(u, v.Name), v.Name)
		w.Printf("}\n\n")
	}
}

// writeFromCode writes the generic constructor: a type switch over the
// non-wildcard payload types in declaration order, defaulting to the
// wildcard variant. When several variants share a payload type, the first
// one wins; a type switch cannot repeat a case anyway.
func writeFromCode(w *codefmt.Writer, u *parse.Union) {
	wildcard, _ := u.Variants.Wildcard()

	w.Printf("// %s wraps err into the first variant of %s whose payload type\n", FromName(u.Name), u.Name)
	w.Printf("// matches, falling back to %s.\n", wildcard.Name)
	w.Printf("func %s(err error) *%s {\n", FromName(u.Name), u.Name)

	seen := linkedhashset.New()
	cases := 0
	for _, v := range u.Variants.All() {
		if v.Wildcard || seen.Contains(v.Tag) {
			continue
		}
		seen.Add(v.Tag)

		if cases == 0 {
			w.Printf("switch err := err.(type) {\n")
		}
		cases++

		w.Printf("case %s:\n", payload(w, v))
		w.Printf("return %s(err)\n", CtorName(u.Name, v.Name))
	}

	if cases == 0 {
		// Nothing but the wildcard to match.
		w.Printf("return %s(err)\n", CtorName(u.Name, wildcard.Name))
		w.Printf("}\n\n")
		return
	}

	w.Printf("default:\n")
	w.Printf("return %s(err)\n", CtorName(u.Name, wildcard.Name))
	w.Printf("}\n")
	w.Printf("}\n\n")
}
