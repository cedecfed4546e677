// Package intoerror provides directives for tagged-union error code
// generation.
//
// IntoError eliminates the boilerplate of funneling heterogeneous failures
// into one typed error per subsystem. Declare the union of failure cases
// once, and the generator produces the type, its constructors, and the
// conversion plumbing. Functions marked for wrapping get their bodies
// rewritten so every error they return is already converted.
//
// To start with IntoError, add a build constraint to files containing
// IntoError directives:
//
//	//go:build intoerror
//
// # Unions
//
// A union is a struct type marked with the union directive. Each field is
// one variant: the field name names the case and the field type is the
// payload it wraps. A field of type error is the wildcard variant matching
// any failure:
//
//	// source:
//	//intoerror:union
//	type PaymentError struct {
//		Declined  DeclineCode
//		Network   net.Error
//		Underlying error
//	}
//
// The generator augments the struct with a kind discriminator and emits one
// constructor per variant, a generic constructor that picks the variant by
// the dynamic type of an error value, and Error/Unwrap methods:
//
//	// generated: (simplified)
//	type PaymentErrorKind int
//
//	const (
//		PaymentErrorDeclined PaymentErrorKind = iota
//		PaymentErrorNetwork
//		PaymentErrorUnderlying
//	)
//
//	type PaymentError struct {
//		Kind       PaymentErrorKind
//		Declined   DeclineCode
//		Network    net.Error
//		Underlying error
//	}
//
//	func NewPaymentErrorDeclined(payload DeclineCode) *PaymentError
//	func PaymentErrorFrom(err error) *PaymentError
//	func (e *PaymentError) Error() string
//	func (e *PaymentError) Unwrap() error
//
// When a union declares no wildcard variant, one named Unknown (of type
// error) is appended, so the generic constructor always has somewhere to
// put an unrecognized failure.
//
// # Wrapping
//
// A function marked with the wrap directive gets its body rewritten so that
// any error escaping it is converted to the target union first. The target
// is either the function's own last result, when it is a pointer to a
// union type declared in the same package:
//
//	// source:
//	//intoerror:wrap
//	func Charge(id string) (Receipt, *PaymentError) {
//		r, err := gateway.Charge(id)
//		if err != nil {
//			return Receipt{}, err // returned as-is; the rewrite converts it
//		}
//		return r, nil
//	}
//
// or named by the directive argument, when the function returns a plain
// error:
//
//	// source:
//	//intoerror:wrap PaymentError
//	func Refund(id string) error {
//		return gateway.Refund(id)
//	}
//
// The argument also accepts the composite-literal spelling PaymentError{}.
// Specifying an argument when the function already declares a union result
// is a conflict and is reported at generation time.
//
// The rewrite never double-wraps: an error that is already a *PaymentError
// passes through unchanged.
//
// # Generating
//
// After declaring unions and wraps, run the intoerror command. It will
// generate intoerror_gen.go for your package:
//
//	go run github.com/tikhop/IntoError/cmd/intoerror
//
// The generated file carries the negated constraint (!intoerror) and also
// contains the remaining declarations of the directive files, so the
// package has exactly one visible copy of each declaration per build.
//
// An optional intoerror.yaml in the working directory configures the
// output file name, extra build tags, and the fallback variant name.
//
// # Diagnostics
//
// Misplaced or conflicting directives are reported with file positions, one
// line per fault. Hosts embedding the generator can match fault kinds with
// errors.Is against the sentinels in the intoerrorfaults package, or run
// the intoerroranalysis analyzer to surface them in an IDE.
package intoerror
