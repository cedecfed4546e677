package synth

import (
	"fmt"
	"go/ast"
	"go/printer"
	"strings"

	"github.com/tikhop/IntoError/internal/astinfo"
	"github.com/tikhop/IntoError/internal/codefmt"
	"github.com/tikhop/IntoError/internal/intoerror/parse"
)

// Func writes the rewritten declaration of a wrapped function. The original
// statements move verbatim into an immediately-called closure whose failure
// slot is the untyped error; a failure coming out of the closure is
// converted into the target union (unless it already is one) and re-raised,
// while success values pass through unchanged:
//
//	func Fetch(id string) (Invoice, *PaymentError) {
//		v0, err := func() (Invoice, error) {
//			// original statements
//		}()
//		if err != nil {
//			return v0, AsPaymentError(err)
//		}
//		return v0, nil
//	}
//
// When the function has success results and its last statement is a bare
// expression, that statement becomes an explicit return of the same
// expression first. The rewrite is applied once and never recurses into
// nested function literals.
func Func(w *codefmt.Writer, wr *parse.Wrap) {
	fn := wr.Decl

	writeDoc(w, parse.StripDirectives(fn.Doc))

	head := *fn
	head.Doc = nil
	head.Body = nil
	w.Printf("%s", codefmt.FormatNode(w, &head))

	if len(fn.Body.List) == 0 {
		// Nothing to intercept; an empty closure with results would not
		// even compile. The declaration passes through unchanged.
		w.Printf(" {\n}\n\n")
		return
	}

	sig, _ := astinfo.SplitResults(fn.Type)
	reserveScopeNames(w, fn)

	vars := make([]string, sig.SuccessCount())
	for i := range vars {
		vars[i] = w.Name(fmt.Sprintf("v%d", i))
	}
	errVar := w.Name("err")

	w.Printf(" {\n")

	if len(vars) > 0 {
		w.Printf("%s, ", strings.Join(vars, ", "))
	}
	w.Printf("%s := func() %s %s()\n",
		errVar, closureResults(w, sig), bodyCode(w, wr, len(vars) > 0))

	w.Printf("if %s != nil {\n", errVar)
	w.Printf("return %s%s(%s)\n", returnPrefix(vars), AsName(wr.Target.Type), errVar)
	w.Printf("}\n")
	w.Printf("return %snil\n", returnPrefix(vars))
	w.Printf("}\n\n")
}

func returnPrefix(vars []string) string {
	if len(vars) == 0 {
		return ""
	}
	return strings.Join(vars, ", ") + ", "
}

// reserveScopeNames reserves every name already visible in the function
// scope so the outer variables of the rewritten body never shadow them.
func reserveScopeNames(w *codefmt.Writer, fn *ast.FuncDecl) {
	reserveFields := func(fields *ast.FieldList) {
		if fields == nil {
			return
		}
		for _, field := range fields.List {
			for _, name := range field.Names {
				w.Reserve(name.Name)
			}
		}
	}

	reserveFields(fn.Recv)
	reserveFields(fn.Type.TypeParams)
	reserveFields(fn.Type.Params)
	reserveFields(fn.Type.Results)
}

// closureResults renders the result list of the inner closure: the success
// results as declared, with the failure slot's type replaced by error.
// Result names are kept so that statements referring to named results still
// compile; when only some results are named, the unnamed ones become "_" to
// keep the list consistent.
func closureResults(w *codefmt.Writer, sig astinfo.Signature) string {
	named := sig.FailName() != ""
	for _, field := range sig.Success {
		if len(field.Names) > 0 {
			named = true
		}
	}

	var parts []string
	for _, field := range sig.Success {
		names := make([]string, 0, len(field.Names))
		for _, name := range field.Names {
			names = append(names, name.Name)
		}
		if len(names) == 0 && named {
			names = append(names, "_")
		}

		part := w.Sprintf("%c", field.Type)
		if len(names) > 0 {
			part = strings.Join(names, ", ") + " " + part
		}
		parts = append(parts, part)
	}

	fail := "error"
	if name := sig.FailName(); name != "" {
		fail = name + " error"
	} else if named {
		fail = "_ error"
	}
	parts = append(parts, fail)

	return "(" + strings.Join(parts, ", ") + ")"
}

// bodyCode renders the closure body: the original block with the trailing
// bare expression, if any, normalized into an explicit return. Comments
// inside the body are preserved.
func bodyCode(w *codefmt.Writer, wr *parse.Wrap, hasValue bool) string {
	body := wr.Decl.Body

	if hasValue {
		if last, ok := body.List[len(body.List)-1].(*ast.ExprStmt); ok {
			list := make([]ast.Stmt, len(body.List))
			copy(list, body.List)
			list[len(list)-1] = &ast.ReturnStmt{
				Return:  last.Pos(),
				Results: []ast.Expr{last.X},
			}
			body = &ast.BlockStmt{
				Lbrace: wr.Decl.Body.Lbrace,
				List:   list,
				Rbrace: wr.Decl.Body.Rbrace,
			}
		}
	}

	return codefmt.FormatNode(w, &printer.CommentedNode{
		Node:     body,
		Comments: wr.File.Comments,
	})
}
