//go:build intoerror

package main

import "fmt"

type flakyError struct{}

func (flakyError) Error() string   { return "flaky" }
func (flakyError) Timeout() bool   { return true }
func (flakyError) Temporary() bool { return true }

type Timeouter interface {
	error
	Timeout() bool
}

type Temporarer interface {
	error
	Temporary() bool
}

// DialError and RetryError declare the same variants in opposite orders. A
// failure implementing both interfaces lands in whichever variant is
// declared first.

//intoerror:union
type DialError struct {
	Timeout   Timeouter
	Temporary Temporarer
	Other     error
}

//intoerror:union
type RetryError struct {
	Temporary Temporarer
	Timeout   Timeouter
	Other     error
}

func main() {
	d := DialErrorFrom(flakyError{})
	fmt.Println(d.Kind == DialErrorTimeout)

	r := RetryErrorFrom(flakyError{})
	fmt.Println(r.Kind == RetryErrorTemporary)
}
