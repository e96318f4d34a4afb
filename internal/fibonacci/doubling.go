package fibonacci

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"math/bits"

	"github.com/agbru/fibwhole/internal/wholenumber"
)

// ErrVerification is returned by VerifyLastDigits when a value disagrees
// with the independently computed residue.
var ErrVerification = errors.New("fibonacci: verification failed")

// FastDoubling computes F(n) on math/big integers in O(log n) steps using
//
//	F(2k)   = F(k) * (2*F(k+1) - F(k))
//	F(2k+1) = F(k+1)² + F(k)²
type FastDoubling struct{}

// Name returns the algorithm name.
func (c *FastDoubling) Name() string {
	return "Fast Doubling math/big (O(log n))"
}

// CalculateCore implements coreCalculator.
func (c *FastDoubling) CalculateCore(ctx context.Context, reporter ProgressCallback, n uint64, opts Options) (*wholenumber.WholeNumber, error) {
	fk, err := fastDoubling(ctx, reporter, n, nil)
	if err != nil {
		return nil, err
	}
	return wholenumber.FromBigInt(fk, opts.groupOptions()...)
}

// FastDoublingMod computes F(n) mod m. Memory usage is O(log m) regardless
// of n.
func FastDoublingMod(n uint64, m *big.Int) (*big.Int, error) {
	return FastDoublingModContext(context.Background(), n, m)
}

// FastDoublingModContext is FastDoublingMod with cancellation.
func FastDoublingModContext(ctx context.Context, n uint64, m *big.Int) (*big.Int, error) {
	if m == nil || m.Sign() <= 0 {
		return nil, fmt.Errorf("modulus must be positive")
	}
	return fastDoubling(ctx, nil, n, m)
}

// fastDoubling walks the bits of n from the most significant end. A nil m
// computes the exact value.
func fastDoubling(ctx context.Context, reporter ProgressCallback, n uint64, m *big.Int) (*big.Int, error) {
	fk := big.NewInt(0)  // F(k)
	fk1 := big.NewInt(1) // F(k+1)
	t1 := new(big.Int)
	t2 := new(big.Int)

	reduce := func(x *big.Int) {
		if m != nil {
			x.Mod(x, m)
		}
	}

	numBits := bits.Len64(n)
	for i := numBits - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// F(2k) = F(k) * (2*F(k+1) - F(k))
		t1.Lsh(fk1, 1)
		t1.Sub(t1, fk)
		reduce(t1)
		t1.Mul(t1, fk)
		reduce(t1)

		// F(2k+1) = F(k+1)² + F(k)²
		t2.Mul(fk1, fk1)
		fk.Mul(fk, fk)
		t2.Add(t2, fk)
		reduce(t2)

		fk.Set(t1)
		fk1.Set(t2)

		if (n>>uint(i))&1 == 1 {
			t1.Add(fk, fk1)
			reduce(t1)
			fk.Set(fk1)
			fk1.Set(t1)
		}

		if reporter != nil {
			reporter(float64(numBits-i) / float64(numBits))
		}
	}
	return fk, nil
}

// VerifyLastDigits checks the trailing VerifyDigits decimal digits of value
// against F(n) mod 10^VerifyDigits computed by fast doubling.
func VerifyLastDigits(n uint64, value *wholenumber.WholeNumber) error {
	mod := new(big.Int).Exp(big.NewInt(10), big.NewInt(VerifyDigits), nil)
	want, err := FastDoublingMod(n, mod)
	if err != nil {
		return err
	}
	digits := value.Digits()
	got, ok := new(big.Int).SetString(digits[max(len(digits)-VerifyDigits, 0):], 10)
	if !ok || got.Cmp(want) != 0 {
		return fmt.Errorf("%w: F(%d) ends in %s, expected %s", ErrVerification, n, got, want)
	}
	return nil
}
