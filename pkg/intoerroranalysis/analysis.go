package intoerroranalysis

import (
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/packages"

	"github.com/tikhop/IntoError/internal/codefmt"
	intoerrorinternal "github.com/tikhop/IntoError/internal/intoerror"
)

// Analyzer validates the usage of IntoError in the package.
var Analyzer = &analysis.Analyzer{
	Name: "intoerror",
	Doc:  "linter for intoerror usage",
	Run:  run,
}

func run(pass *analysis.Pass) (any, error) {
	pkg := &packages.Package{
		Name:    pass.Pkg.Name(),
		PkgPath: pass.Pkg.Path(),
		Fset:    pass.Fset,
		Syntax:  pass.Files,
	}

	ie, err := intoerrorinternal.New(pkg, intoerrorinternal.DefaultOptions())
	if err != nil {
		return nil, err
	}

	if err := ie.Build(); err != nil {
		// Unroll all errors and report them
		errs := []error{err}
		for len(errs) != 0 {
			err := errs[0]
			errs = errs[1:]

			if codeErr, ok := err.(*codefmt.CodeError); ok {
				pass.Report(analysis.Diagnostic{
					Pos:     codeErr.Pos(),
					End:     codeErr.End(),
					Message: codeErr.Unwrap().Error(),
				})
				continue
			}

			if u, ok := err.(interface{ Unwrap() []error }); ok {
				errs = append(errs, u.Unwrap()...)
			}
		}
	}

	return nil, nil
}
