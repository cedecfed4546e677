//go:build intoerror

package broken

//intoerror:union
type PaymentError struct {
	Other error
}

//intoerror:union
type NotAUnion int // want `not a union declaration`

//intoerror:frob
type Frobbed struct{} // want `unknown directive`

//intoerror:wrap
func Refund() error { // want `missing typed failure contract`
	return nil
}

//intoerror:wrap PaymentError
func Charge() (int, *PaymentError) { // want `argument conflicts with declared contract`
	return 0, nil
}

//intoerror:wrap OrderError
func Cancel() error { // want `unknown target union`
	return nil
}

//intoerror:wrap PaymentError
func Count() int { // want `missing error result`
	return 0
}
