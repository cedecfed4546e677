package synth

import (
	"github.com/tikhop/IntoError/internal/codefmt"
	"github.com/tikhop/IntoError/internal/intoerror/parse"
)

// Wrapper writes the reusable attempt/intercept/re-raise helpers for one
// union. The same conversion rule is exposed twice: as a named helper over a
// single error value, and as an inline form that passes a call's value
// through while converting its failure.
func Wrapper(w *codefmt.Writer, u *parse.Union) {
	as := AsName(u.Name)
	catch := CatchName(u.Name)

	w.Printf("// %s converts err into a *%s. A nil error stays nil, and an\n", as, u.Name)
	w.Printf("// error that already is a *%s is returned unchanged rather than\n", u.Name)
	w.Printf("// wrapped a second time.\n")
	w.Printf("func %s(err error) *%s {\n", as, u.Name)
	w.Printf("if err == nil {\n")
	w.Printf("return nil\n")
	w.Printf("}\n")
	w.Printf("if err, ok := err.(*%s); ok {\n", u.Name)
	w.Printf("return err\n")
	w.Printf("}\n")
	w.Printf("return %s(err)\n", FromName(u.Name))
	w.Printf("}\n\n")

	w.Printf("// %s passes v through and converts an accompanying failure into a\n", catch)
	w.Printf("// *%s. It wraps a fallible call in place:\n", u.Name)
	w.Printf("//\n")
	w.Printf("//\treturn %s(fetch(id))\n", catch)
	w.Printf("func %s[T any](v T, err error) (T, error) {\n", catch)
	w.Printf("if err == nil {\n")
	w.Printf("return v, nil\n")
	w.Printf("}\n")
	w.Printf("return v, %s(err)\n", as)
	w.Printf("}\n\n")
}
