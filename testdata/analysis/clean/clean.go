//go:build intoerror

package clean

import "errors"

// DeclineError reports a decline code from the issuer.
type DeclineError struct{ Code int }

func (e DeclineError) Error() string { return "declined" }

//intoerror:union
type PaymentError struct {
	Declined DeclineError
	Other    error
}

//intoerror:wrap
func Charge(id string) (int, *PaymentError) {
	return 0, nil
}

//intoerror:wrap PaymentError
func Refund(id string) error {
	return errors.New("refund not supported")
}
