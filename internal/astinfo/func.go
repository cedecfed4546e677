package astinfo

import "go/ast"

// Signature is a function's result list split into the success results and
// the trailing failure slot.
type Signature struct {
	// Success holds the result fields before the failure slot, in order.
	// Result names are preserved.
	Success []*ast.Field

	// Fail is the failure slot: the last declared result. It always holds
	// at most one name.
	Fail *ast.Field
}

// SplitResults splits the results of a function type. It returns false when
// the function declares no results at all.
func SplitResults(ft *ast.FuncType) (Signature, bool) {
	if ft.Results == nil || len(ft.Results.List) == 0 {
		return Signature{}, false
	}

	fields := ft.Results.List
	last := fields[len(fields)-1]

	var sig Signature
	sig.Success = append(sig.Success, fields[:len(fields)-1]...)

	if len(last.Names) > 1 {
		// (a, b T): only the last name is the failure slot; the other names
		// stay success results of the same type.
		sig.Success = append(sig.Success, &ast.Field{
			Names: last.Names[:len(last.Names)-1],
			Type:  last.Type,
		})
		last = &ast.Field{
			Names: last.Names[len(last.Names)-1:],
			Type:  last.Type,
		}
	}

	sig.Fail = last
	return sig, true
}

// SuccessCount returns the number of success values, counting every declared
// name of multi-name result fields.
func (s Signature) SuccessCount() int {
	n := 0
	for _, field := range s.Success {
		if len(field.Names) == 0 {
			n++
			continue
		}
		n += len(field.Names)
	}
	return n
}

// FailName returns the declared name of the failure slot, or "" when the
// results are unnamed.
func (s Signature) FailName() string {
	if s.Fail == nil || len(s.Fail.Names) == 0 {
		return ""
	}
	return s.Fail.Names[0].Name
}

// ContractName returns the name of a declared typed failure contract: a
// failure slot of the form *U for a locally named type U. It returns false
// for anything else, including the untyped "error" slot.
func ContractName(expr ast.Expr) (string, bool) {
	star, ok := ast.Unparen(expr).(*ast.StarExpr)
	if !ok {
		return "", false
	}
	id, ok := ast.Unparen(star.X).(*ast.Ident)
	if !ok {
		return "", false
	}
	return id.Name, true
}
