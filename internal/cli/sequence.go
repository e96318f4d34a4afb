package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/agbru/fibwhole/internal/fibonacci"
	"github.com/agbru/fibwhole/internal/wholenumber"
)

// Prompts of the console sequence driver.
const (
	CountPrompt = "How many Fibonacci numbers would you like to see? "
	IndexPrompt = "Which Fibonacci number would you like to display? "
)

// ErrNoInput is returned when the input ends before a prompt is answered.
var ErrNoInput = errors.New("no input")

// SequenceOptions configures RunSequence.
type SequenceOptions struct {
	// Calc is the calculation options for the accumulators.
	Calc fibonacci.Options
	// Plain writes values without group separators.
	Plain bool
}

// RunSequence is the console driver. It asks how many terms to list and
// writes F(1) onward, one tab-indented term per line, then asks for one
// index and writes that term. Counts below one list nothing; indices below
// one display F(1).
func RunSequence(ctx context.Context, in io.Reader, out io.Writer, opts SequenceOptions) error {
	scanner := bufio.NewScanner(in)
	scanner.Split(bufio.ScanWords)

	fmt.Fprint(out, CountPrompt)
	count, err := readInt(scanner)
	if err != nil {
		return err
	}

	seq, err := fibonacci.NewSequence(opts.Calc)
	if err != nil {
		return err
	}
	if count > 0 {
		err = seq.Each(ctx, uint64(count), func(_ uint64, term *wholenumber.WholeNumber) error {
			return writeTerm(out, term, opts.Plain)
		})
		if err != nil {
			return err
		}
	}

	fmt.Fprint(out, IndexPrompt)
	index, err := readInt(scanner)
	if err != nil {
		return err
	}
	term, err := fibonacci.Term(ctx, uint64(max(index, 1)), opts.Calc)
	if err != nil {
		return err
	}
	return writeTerm(out, term, opts.Plain)
}

func writeTerm(out io.Writer, term *wholenumber.WholeNumber, plain bool) error {
	if _, err := io.WriteString(out, "\t"); err != nil {
		return err
	}
	if plain {
		if _, err := io.WriteString(out, term.Digits()); err != nil {
			return err
		}
	} else if err := term.Display(out); err != nil {
		return err
	}
	_, err := io.WriteString(out, "\n")
	return err
}

func readInt(scanner *bufio.Scanner) (int64, error) {
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return 0, err
		}
		return 0, ErrNoInput
	}
	word := strings.TrimSpace(scanner.Text())
	v, err := strconv.ParseInt(word, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", word)
	}
	return v, nil
}
