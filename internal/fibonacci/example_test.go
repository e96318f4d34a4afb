package fibonacci

import (
	"context"
	"fmt"
	"os"

	"github.com/agbru/fibwhole/internal/wholenumber"
)

// ExampleDefaultFactory demonstrates using the factory to obtain
// pre-registered calculators by name.
func ExampleDefaultFactory() {
	factory := NewDefaultFactory()

	fmt.Println(factory.List())

	calc, err := factory.Get("list")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	result, err := calc.Calculate(context.Background(), nil, 0, 100, Options{})
	if err != nil {
		fmt.Printf("Calculation error: %v\n", err)
		return
	}

	fmt.Println(result)
	// Output:
	// [big doubling list]
	// 354,224,848,179,261,915,075
}

// ExampleSequence_Each prints the first terms of the sequence.
func ExampleSequence_Each() {
	seq, err := NewSequence(Options{})
	if err != nil {
		fmt.Println(err)
		return
	}
	_ = seq.Each(context.Background(), 6, func(i uint64, term *wholenumber.WholeNumber) error {
		fmt.Printf("F(%d) = ", i)
		if err := term.Display(os.Stdout); err != nil {
			return err
		}
		fmt.Println()
		return nil
	})
	// Output:
	// F(1) = 1
	// F(2) = 1
	// F(3) = 2
	// F(4) = 3
	// F(5) = 5
	// F(6) = 8
}
