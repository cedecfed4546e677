package parse

import (
	"go/ast"
	"go/parser"

	"github.com/tikhop/IntoError/internal/astinfo"
	"github.com/tikhop/IntoError/pkg/intoerrorfaults"
)

// TargetSource tells where a wrap target was resolved from.
type TargetSource int

const (
	// SourceContract resolves the target from the declared typed failure
	// contract: a last result of *U.
	SourceContract TargetSource = iota

	// SourceArgument resolves the target from the directive argument.
	SourceArgument
)

// Target names the union type a wrapped function converts failures into.
// Exactly one source produces it; the other one being present as well is a
// fault.
type Target struct {
	Type   string
	Source TargetSource
}

// resolveTarget validates a wrapped function against its directive argument
// and picks the target union type.
//
//	argument  declared contract  outcome
//	no        yes                contract type
//	no        no                 ErrMissingTypedContract
//	yes       no                 argument type (last result must be error)
//	yes       yes                ErrArgumentConflict
func (p *Parser) resolveTarget(fn *ast.FuncDecl, dir Directive) (Target, error) {
	var argType string
	if dir.Arg != "" {
		name, ok := normalizeTypeArg(dir.Arg)
		if !ok {
			return Target{}, p.errf(intoerrorfaults.ErrInvalidArgument, fn,
				"%q is not a type reference", dir.Arg)
		}
		argType = name
	}

	var contract string
	hasContract := false
	failIsError := false
	if sig, ok := astinfo.SplitResults(fn.Type); ok {
		contract, hasContract = astinfo.ContractName(sig.Fail.Type)
		failIsError = astinfo.IsWildcard(sig.Fail.Type)
	}

	switch {
	case argType == "" && hasContract:
		return Target{Type: contract, Source: SourceContract}, nil

	case argType == "":
		return Target{}, p.errf(intoerrorfaults.ErrMissingTypedContract, fn,
			"%s must declare a *Union last result or pass a target type to //intoerror:wrap",
			fn.Name.Name)

	case hasContract:
		return Target{}, p.errf(intoerrorfaults.ErrArgumentConflict, fn,
			"%s already declares the failure contract *%s", fn.Name.Name, contract)

	case failIsError:
		return Target{Type: argType, Source: SourceArgument}, nil

	default:
		return Target{}, p.errf(intoerrorfaults.ErrMissingErrorResult, fn,
			"the last result of %s must be error to intercept failures", fn.Name.Name)
	}
}

// normalizeTypeArg turns a directive argument into a bare type name. The
// argument is either a type name or a type name suffixed with the "{}"
// marker, which is stripped:
//
//	PaymentError   => PaymentError
//	PaymentError{} => PaymentError
//
// No other expression shape is accepted.
func normalizeTypeArg(arg string) (string, bool) {
	expr, err := parser.ParseExpr(arg)
	if err != nil {
		return "", false
	}

	switch expr := ast.Unparen(expr).(type) {
	case *ast.Ident:
		return expr.Name, true

	case *ast.CompositeLit:
		if len(expr.Elts) != 0 {
			return "", false
		}
		if id, ok := ast.Unparen(expr.Type).(*ast.Ident); ok {
			return id.Name, true
		}
	}
	return "", false
}
