//go:build intoerror

package main

import "fmt"

type DeclineError struct{ Code int }

func (e DeclineError) Error() string { return fmt.Sprintf("declined: %d", e.Code) }

//intoerror:union
type PaymentError struct {
	Declined DeclineError
	Other    error
}

// Charge declares the failure contract in its own results; the rewrite
// converts whatever error its body returns.

//intoerror:wrap
func Charge(amount int) (string, *PaymentError) {
	if amount <= 0 {
		return "", DeclineError{Code: 13}
	}
	return "receipt", nil
}

func main() {
	r, err := Charge(10)
	fmt.Println(r, err == nil)

	_, err = Charge(-1)
	fmt.Println(err.Kind == PaymentErrorDeclined, err)

	declined := NewPaymentErrorDeclined(DeclineError{Code: 51})
	fmt.Println(AsPaymentError(declined) == declined)
	fmt.Println(AsPaymentError(nil) == nil)
}
