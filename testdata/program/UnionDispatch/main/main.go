//go:build intoerror

package main

import (
	"errors"
	"fmt"
)

type DeclineError struct{ Code int }

func (e DeclineError) Error() string { return fmt.Sprintf("declined: %d", e.Code) }

type GatewayError struct{ Status int }

func (e GatewayError) Error() string { return fmt.Sprintf("gateway: %d", e.Status) }

//intoerror:union
type PaymentError struct {
	Declined DeclineError
	Gateway  GatewayError
	Other    error
}

func main() {
	e := PaymentErrorFrom(DeclineError{Code: 51})
	fmt.Println(e.Kind == PaymentErrorDeclined, e)

	e = PaymentErrorFrom(GatewayError{Status: 502})
	fmt.Println(e.Kind == PaymentErrorGateway, e)

	e = PaymentErrorFrom(errors.New("wire unplugged"))
	fmt.Println(e.Kind == PaymentErrorOther, e)

	e = NewPaymentErrorGateway(GatewayError{Status: 429})
	fmt.Println(e.Kind == PaymentErrorGateway, e.Unwrap())
}
