//go:build intoerror

package main

import (
	"errors"
	"fmt"
)

//intoerror:union
type LookupError struct {
	Other error
}

func find(id int) (int, error) {
	if id < 0 {
		return 0, errors.New("negative id")
	}
	return id * 2, nil
}

// Find names its target in the directive argument and leaves a bare trailing
// expression; the rewrite normalizes it into a return.

//intoerror:wrap LookupError{}
func Find(id int) (int, error) {
	find(id)
}

//intoerror:wrap LookupError
func Describe(id int) error {
	if id == 0 {
		return errors.New("zero id")
	}
	return nil
}

func main() {
	v, err := Find(7)
	fmt.Println(v, err == nil)

	_, err = Find(-1)
	le, ok := err.(*LookupError)
	fmt.Println(ok, le.Kind == LookupErrorOther, err)

	err = Describe(0)
	fmt.Println(err.(*LookupError).Kind == LookupErrorOther, err)

	v, err = CatchLookupError(find(21))
	fmt.Println(v, err == nil)
}
