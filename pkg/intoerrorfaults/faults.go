// Package intoerrorfaults defines the fault kinds intoerror reports while
// synthesizing code. Every fault halts synthesis for the one declaration it
// belongs to and never affects other declarations in the same batch.
//
// The faults are sentinel errors so hosts can match them with [errors.Is]
// regardless of the position prefix and context the generator attaches.
package intoerrorfaults

import "errors"

var (
	// ErrNotUnionDecl reports a //intoerror:union directive on a declaration
	// that is not a struct type.
	ErrNotUnionDecl = errors.New("not a union declaration")

	// ErrNotFuncDecl reports a //intoerror:wrap directive on a declaration
	// that is not a function.
	ErrNotFuncDecl = errors.New("not a function declaration")

	// ErrMissingBody reports a //intoerror:wrap directive on a function
	// without a body.
	ErrMissingBody = errors.New("missing function body")

	// ErrMissingTypedContract reports a wrapped function that neither
	// declares a typed failure contract nor receives a target type argument.
	ErrMissingTypedContract = errors.New("missing typed failure contract")

	// ErrArgumentConflict reports a wrapped function that both declares a
	// typed failure contract and receives a target type argument. The two
	// are mutually exclusive.
	ErrArgumentConflict = errors.New("argument conflicts with declared contract")

	// ErrInvalidArgument reports a directive argument that is not a type
	// reference, with or without the trailing "{}" marker.
	ErrInvalidArgument = errors.New("invalid argument expression")

	// ErrMissingErrorResult reports a wrapped function whose last result is
	// neither "error" nor a typed contract, leaving no failure slot to
	// intercept.
	ErrMissingErrorResult = errors.New("missing error result")

	// ErrUnknownTargetUnion reports a wrap target that names no
	// //intoerror:union declaration in the same package.
	ErrUnknownTargetUnion = errors.New("unknown target union")

	// ErrUnknownDirective reports a comment under the //intoerror: prefix
	// whose directive name is not recognized.
	ErrUnknownDirective = errors.New("unknown directive")

	// ErrFallbackMissing reports a variant sequence without a wildcard
	// variant after fallback resolution. It indicates a defect in the
	// resolver, not a user error.
	ErrFallbackMissing = errors.New("fallback variant missing after resolution")
)
