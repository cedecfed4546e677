//go:build intoerror

package main

import (
	"errors"
	"fmt"
)

type SyntaxError struct{ Line int }

func (e SyntaxError) Error() string { return fmt.Sprintf("syntax error at line %d", e.Line) }

// DecodeError declares no wildcard variant; the generator appends one named
// Unknown.

//intoerror:union
type DecodeError struct {
	Syntax SyntaxError
}

// EncodeError already uses the name Unknown for a typed variant, so the
// appended wildcard steps to Unknown2.

//intoerror:union
type EncodeError struct {
	Unknown SyntaxError
}

func main() {
	d := DecodeErrorFrom(errors.New("unexpected eof"))
	fmt.Println(d.Kind == DecodeErrorUnknown, d.Unknown != nil, d)

	d = DecodeErrorFrom(SyntaxError{Line: 3})
	fmt.Println(d.Kind == DecodeErrorSyntax, d)

	e := EncodeErrorFrom(errors.New("short write"))
	fmt.Println(e.Kind == EncodeErrorUnknown2, e.Unknown2 != nil, e)
}
