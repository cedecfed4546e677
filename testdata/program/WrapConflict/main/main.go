//go:build intoerror

package main

import "fmt"

//intoerror:union
type PaymentError struct {
	Other error
}

//intoerror:wrap PaymentError
func Charge() (int, *PaymentError) {
	return 0, nil
}

func main() {
	fmt.Println(Charge())
}
