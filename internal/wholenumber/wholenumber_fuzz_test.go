package wholenumber

import (
	"math/big"
	"strings"
	"testing"
)

// FuzzParse checks that any accepted decimal text round-trips through
// math/big and the Display form.
func FuzzParse(f *testing.F) {
	for _, seed := range []string{"0", "1", "999", "1000", "1,000,000", "0007", "12200160415121876738"} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, s string) {
		w, err := Parse(s)
		if err != nil {
			return
		}
		want, ok := new(big.Int).SetString(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 10)
		if !ok {
			t.Fatalf("Parse accepted %q but big.Int did not", s)
		}
		if w.BigInt().Cmp(want) != 0 {
			t.Fatalf("Parse(%q) = %s, want %s", s, w.Digits(), want)
		}
		back, err := Parse(w.String())
		if err != nil || !back.Equal(w) {
			t.Fatalf("Display form %q does not parse back", w.String())
		}
	})
}

// FuzzAddOnto compares two-operand addition against math/big.
func FuzzAddOnto(f *testing.F) {
	f.Add(uint64(0), uint64(0))
	f.Add(uint64(500), uint64(600))
	f.Add(uint64(999_999), uint64(1))
	f.Add(^uint64(0), ^uint64(0))

	f.Fuzz(func(t *testing.T, a, b uint64) {
		acc := MustNew(a)
		if err := acc.AddOnto(MustNew(b)); err != nil {
			t.Fatal(err)
		}
		want := new(big.Int).Add(new(big.Int).SetUint64(a), new(big.Int).SetUint64(b))
		if acc.Digits() != want.String() {
			t.Fatalf("%d + %d = %s, want %s", a, b, acc.Digits(), want)
		}
	})
}
