// Package wholenumber implements arbitrary-precision unsigned integers stored
// as base-1000 digit groups in a digitlist.List, most significant group first.
package wholenumber

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"math/big"
	"strings"

	"github.com/agbru/fibwhole/internal/digitlist"
)

const (
	// Radix is the base of a digit group.
	Radix = 1000
	// GroupWidth is the number of decimal digits in a full digit group.
	GroupWidth = 3
	// Separator is written between digit groups by Display.
	Separator = ","
)

var (
	// ErrNegative is returned when converting a negative big.Int.
	ErrNegative = errors.New("wholenumber: negative value")
	// ErrSyntax is returned by Parse for text that is not a decimal number.
	ErrSyntax = errors.New("wholenumber: invalid decimal syntax")
)

// WholeNumber is an unsigned integer of unbounded size. Values are mutated in
// place by AddOnto and copied with Clone or Assign; copies never share
// storage.
//
// The group list is never empty and has no leading zero group unless the
// value is zero. The zero value is not usable; construct with New, Zero or
// Parse.
type WholeNumber struct {
	groups *digitlist.List[int]
}

// Option configures the digit storage of a WholeNumber.
type Option func(*config)

type config struct {
	maxGroups int
}

// WithMaxGroups caps the number of digit groups the value may grow to.
// Growth beyond the cap fails with digitlist.ErrAllocation.
func WithMaxGroups(n int) Option {
	return func(c *config) { c.maxGroups = n }
}

func newGroups(opts []Option) *digitlist.List[int] {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	return digitlist.New[int](digitlist.WithMaxNodes(c.maxGroups))
}

// New returns a WholeNumber holding n. Values up to 999 occupy a single
// group; larger values are split into as many groups as needed.
func New(n uint64, opts ...Option) (*WholeNumber, error) {
	w := &WholeNumber{groups: newGroups(opts)}
	if n == 0 {
		if err := w.groups.PushFront(0); err != nil {
			return nil, err
		}
		return w, nil
	}
	for n > 0 {
		if err := w.groups.PushFront(int(n % Radix)); err != nil {
			return nil, err
		}
		n /= Radix
	}
	return w, nil
}

// MustNew is like New but panics on error. It is intended for literals and
// tests where the group cap cannot be hit.
func MustNew(n uint64, opts ...Option) *WholeNumber {
	w, err := New(n, opts...)
	if err != nil {
		panic(err)
	}
	return w
}

// Zero returns a WholeNumber holding 0.
func Zero(opts ...Option) *WholeNumber {
	return MustNew(0, opts...)
}

// Clone returns an independent copy of w.
func (w *WholeNumber) Clone() *WholeNumber {
	return &WholeNumber{groups: w.groups.Clone()}
}

// Assign makes w hold a copy of src's value. Assigning a value to itself is a
// no-op.
func (w *WholeNumber) Assign(src *WholeNumber) error {
	if w == src {
		return nil
	}
	return w.groups.Assign(src.groups)
}

// Add is shorthand for AddOnto.
func (w *WholeNumber) Add(term *WholeNumber) error {
	return w.AddOnto(term)
}

// AddOnto adds term into w.
//
// Groups are summed from the least significant end with a carry of 0 or 1.
// Groups of term beyond the length of w are prepended to w, and a remaining
// carry becomes a new most significant group. If the sum needs more groups
// than the cap allows the call fails before touching w.
func (w *WholeNumber) AddOnto(term *WholeNumber) error {
	if limit := w.groups.MaxNodes(); limit > 0 {
		width := max(w.groups.Len(), term.groups.Len())
		if width > limit || (width == limit && w.carriesOut(term)) {
			return fmt.Errorf("wholenumber: add: %w", &digitlist.OpError{Op: "push front", Err: digitlist.ErrAllocation})
		}
	}

	carry := 0
	mine, myEnd := w.groups.RBegin(), w.groups.REnd()
	theirs, theirEnd := term.groups.RBegin(), term.groups.REnd()

	for !mine.Equal(myEnd) && !theirs.Equal(theirEnd) {
		left, err := mine.Get()
		if err != nil {
			return err
		}
		right, err := theirs.Get()
		if err != nil {
			return err
		}
		sum := left + right + carry
		if err := mine.Set(sum % Radix); err != nil {
			return err
		}
		carry = sum / Radix
		if err := mine.Dec(); err != nil {
			return err
		}
		if err := theirs.Dec(); err != nil {
			return err
		}
	}

	for carry != 0 && !mine.Equal(myEnd) {
		group, err := mine.Get()
		if err != nil {
			return err
		}
		sum := group + carry
		if err := mine.Set(sum % Radix); err != nil {
			return err
		}
		carry = sum / Radix
		if err := mine.Dec(); err != nil {
			return err
		}
	}

	for !theirs.Equal(theirEnd) {
		group, err := theirs.Get()
		if err != nil {
			return err
		}
		sum := group + carry
		if err := w.groups.PushFront(sum % Radix); err != nil {
			return err
		}
		carry = sum / Radix
		if err := theirs.Dec(); err != nil {
			return err
		}
	}

	if carry != 0 {
		return w.groups.PushFront(carry)
	}
	return nil
}

// carriesOut reports whether w+term produces a carry out of the most
// significant group, without modifying either operand.
func (w *WholeNumber) carriesOut(term *WholeNumber) bool {
	nextMine, stopMine := iter.Pull(w.groups.Backward())
	defer stopMine()
	nextTheirs, stopTheirs := iter.Pull(term.groups.Backward())
	defer stopTheirs()

	carry := 0
	for {
		left, okMine := nextMine()
		right, okTheirs := nextTheirs()
		if !okMine && !okTheirs {
			return carry != 0
		}
		carry = (left + right + carry) / Radix
	}
}

// Display writes w in decimal with digit groups separated by commas. The
// leading group is unpadded; every following group is zero-padded to three
// digits.
func (w *WholeNumber) Display(out io.Writer) error {
	_, err := io.WriteString(out, w.format(Separator))
	return err
}

// String returns the Display form of w.
func (w *WholeNumber) String() string {
	return w.format(Separator)
}

// Digits returns w in plain decimal without separators.
func (w *WholeNumber) Digits() string {
	return w.format("")
}

func (w *WholeNumber) format(sep string) string {
	var b strings.Builder
	b.Grow(w.groups.Len() * (GroupWidth + len(sep)))
	first := true
	for group := range w.groups.All() {
		if first {
			fmt.Fprintf(&b, "%d", group)
			first = false
			continue
		}
		b.WriteString(sep)
		fmt.Fprintf(&b, "%03d", group)
	}
	return b.String()
}

// Len returns the number of digit groups.
func (w *WholeNumber) Len() int { return w.groups.Len() }

// Groups returns a copy of the digit groups, most significant first.
func (w *WholeNumber) Groups() []int { return w.groups.Values() }

// DigitCount returns the number of decimal digits in w.
func (w *WholeNumber) DigitCount() int {
	lead, err := w.groups.Front()
	if err != nil {
		return 0
	}
	n := (w.groups.Len() - 1) * GroupWidth
	switch {
	case lead >= 100:
		return n + 3
	case lead >= 10:
		return n + 2
	default:
		return n + 1
	}
}

// IsZero reports whether w holds 0.
func (w *WholeNumber) IsZero() bool {
	lead, err := w.groups.Front()
	return err == nil && w.groups.Len() == 1 && lead == 0
}

// Equal reports whether w and other hold the same value.
func (w *WholeNumber) Equal(other *WholeNumber) bool {
	if w.groups.Len() != other.groups.Len() {
		return false
	}
	next, stop := iter.Pull(other.groups.All())
	defer stop()
	for x := range w.groups.All() {
		if y, ok := next(); !ok || x != y {
			return false
		}
	}
	return true
}

// BigInt converts w to a big.Int.
func (w *WholeNumber) BigInt() *big.Int {
	z := new(big.Int)
	radix := big.NewInt(Radix)
	for group := range w.groups.All() {
		z.Mul(z, radix)
		z.Add(z, big.NewInt(int64(group)))
	}
	return z
}

// FromBigInt converts a non-negative big.Int.
func FromBigInt(x *big.Int, opts ...Option) (*WholeNumber, error) {
	if x.Sign() < 0 {
		return nil, ErrNegative
	}
	return Parse(x.String(), opts...)
}

// Parse reads a decimal number. Comma separators are accepted anywhere
// between digits and ignored.
func Parse(s string, opts ...Option) (*WholeNumber, error) {
	digits := strings.ReplaceAll(strings.TrimSpace(s), Separator, "")
	if digits == "" {
		return nil, fmt.Errorf("%w: %q", ErrSyntax, s)
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("%w: %q", ErrSyntax, s)
		}
	}
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return New(0, opts...)
	}

	w := &WholeNumber{groups: newGroups(opts)}
	for end := len(digits); end > 0; end -= GroupWidth {
		start := max(end-GroupWidth, 0)
		group := 0
		for _, r := range digits[start:end] {
			group = group*10 + int(r-'0')
		}
		if err := w.groups.PushFront(group); err != nil {
			return nil, err
		}
	}
	return w, nil
}
