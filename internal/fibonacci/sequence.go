package fibonacci

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/agbru/fibwhole/internal/wholenumber"
)

// ErrSequenceBroken is returned by a Sequence after a failed Advance. The
// accumulators may hold a partially updated value and are not reused.
var ErrSequenceBroken = errors.New("fibonacci: sequence broken by an earlier error")

// Sequence generates successive Fibonacci numbers with three WholeNumber
// accumulators. It starts at F(1) = 1; each Advance performs
//
//	a = b; b = fib; fib += a
//
// so that fib holds F(Index()).
type Sequence struct {
	a, b, fib *wholenumber.WholeNumber
	index     uint64
	started   bool
	recorder  StepRecorder
	err       error
}

// NewSequence returns a sequence positioned at F(1).
func NewSequence(opts Options) (*Sequence, error) {
	groupOpts := opts.groupOptions()
	a, err := wholenumber.New(0, groupOpts...)
	if err != nil {
		return nil, err
	}
	b, err := wholenumber.New(0, groupOpts...)
	if err != nil {
		return nil, err
	}
	fib, err := wholenumber.New(1, groupOpts...)
	if err != nil {
		return nil, err
	}
	return &Sequence{a: a, b: b, fib: fib, index: 1, recorder: opts.Recorder}, nil
}

// Index returns n such that the current term is F(n).
func (s *Sequence) Index() uint64 { return s.index }

// Current returns a copy of the current term.
func (s *Sequence) Current() *wholenumber.WholeNumber { return s.fib.Clone() }

// WriteCurrent displays the current term on w without copying it.
func (s *Sequence) WriteCurrent(w io.Writer) error { return s.fib.Display(w) }

// Advance moves the sequence to the next term.
func (s *Sequence) Advance() error {
	if s.err != nil {
		return s.err
	}
	before := s.fib.Len()
	if err := s.step(); err != nil {
		s.err = fmt.Errorf("%w: %w", ErrSequenceBroken, err)
		return fmt.Errorf("computing F(%d): %w", s.index+1, err)
	}
	s.index++
	if s.recorder != nil {
		s.recorder.RecordAddition(before, s.fib.Len())
	}
	return nil
}

func (s *Sequence) step() error {
	if err := s.a.Assign(s.b); err != nil {
		return err
	}
	if err := s.b.Assign(s.fib); err != nil {
		return err
	}
	return s.fib.AddOnto(s.a)
}

// Next returns the current term and positions the sequence on the following
// one. The first call yields F(1) without advancing.
func (s *Sequence) Next() (*wholenumber.WholeNumber, error) {
	if s.started {
		if err := s.Advance(); err != nil {
			return nil, err
		}
	}
	s.started = true
	return s.Current(), nil
}

// Each calls fn with the first count terms, F(1) through F(count). The term
// passed to fn is the live accumulator and must not be retained or modified.
// Context cancellation is checked every CancelCheckInterval terms.
func (s *Sequence) Each(ctx context.Context, count uint64, fn func(index uint64, term *wholenumber.WholeNumber) error) error {
	for i := uint64(0); i < count; i++ {
		if i%CancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if s.started {
			if err := s.Advance(); err != nil {
				return err
			}
		}
		s.started = true
		if err := fn(s.index, s.fib); err != nil {
			return err
		}
	}
	return nil
}

// Term computes F(n) with the linked-list accumulators. F(0) is 0.
func Term(ctx context.Context, n uint64, opts Options) (*wholenumber.WholeNumber, error) {
	return (&ListAccumulator{}).CalculateCore(ctx, nil, n, opts)
}
