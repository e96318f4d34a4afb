package wholenumber_test

import (
	"fmt"
	"os"

	"github.com/agbru/fibwhole/internal/wholenumber"
)

func ExampleWholeNumber_AddOnto() {
	acc := wholenumber.MustNew(500)
	if err := acc.AddOnto(wholenumber.MustNew(600)); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(acc)
	// Output: 1,100
}

func ExampleWholeNumber_Display() {
	w := wholenumber.MustNew(1_000_000)
	_ = w.Display(os.Stdout)
	fmt.Println()
	fmt.Println(w.Digits())
	// Output:
	// 1,000,000
	// 1000000
}
