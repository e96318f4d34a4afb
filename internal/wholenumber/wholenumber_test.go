package wholenumber

import (
	"bytes"
	"errors"
	"math/big"
	"slices"
	"testing"

	"github.com/agbru/fibwhole/internal/digitlist"
)

func TestNew(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		n      uint64
		groups []int
		text   string
	}{
		{"zero", 0, []int{0}, "0"},
		{"single digit", 7, []int{7}, "7"},
		{"full group", 999, []int{999}, "999"},
		{"two groups", 1000, []int{1, 0}, "1,000"},
		{"three groups", 1_000_000, []int{1, 0, 0}, "1,000,000"},
		{"max uint64", 18446744073709551615, []int{18, 446, 744, 73, 709, 551, 615}, "18,446,744,073,709,551,615"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w, err := New(tt.n)
			if err != nil {
				t.Fatalf("New(%d) error: %v", tt.n, err)
			}
			if got := w.Groups(); !equalInts(got, tt.groups) {
				t.Errorf("Groups() = %v, want %v", got, tt.groups)
			}
			if got := w.String(); got != tt.text {
				t.Errorf("String() = %q, want %q", got, tt.text)
			}
		})
	}
}

func TestAddOnto(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		a, b uint64
		want string
	}{
		{"zero plus zero", 0, 0, "0"},
		{"carry within group", 500, 600, "1,100"},
		{"longer accumulator", 1000, 1, "1,001"},
		{"shorter accumulator", 1, 1000, "1,001"},
		{"carry ripples through", 999_999, 1, "1,000,000"},
		{"carry through prepended groups", 1, 999_999_999, "1,000,000,000"},
		{"zero accumulator takes term", 0, 123_456_789, "123,456,789"},
		{"adding zero", 42_000, 0, "42,000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			acc := MustNew(tt.a)
			if err := acc.AddOnto(MustNew(tt.b)); err != nil {
				t.Fatalf("AddOnto error: %v", err)
			}
			if got := acc.String(); got != tt.want {
				t.Errorf("%d + %d = %q, want %q", tt.a, tt.b, got, tt.want)
			}
			assertCanonical(t, acc)
		})
	}
}

func TestAddOnto_Self(t *testing.T) {
	t.Parallel()
	w := MustNew(999_999)
	if err := w.AddOnto(w); err != nil {
		t.Fatalf("AddOnto(self) error: %v", err)
	}
	if got := w.String(); got != "1,999,998" {
		t.Errorf("999999 doubled = %q, want %q", got, "1,999,998")
	}
}

func TestAddOnto_TermUnchanged(t *testing.T) {
	t.Parallel()
	acc := MustNew(5)
	term := MustNew(999_999_999)
	if err := acc.AddOnto(term); err != nil {
		t.Fatal(err)
	}
	if got := term.String(); got != "999,999,999" {
		t.Errorf("term modified to %q", got)
	}
}

func TestAddOnto_RepeatedCarries(t *testing.T) {
	t.Parallel()
	acc := Zero()
	one := MustNew(1)
	for range 1_000_001 {
		if err := acc.AddOnto(one); err != nil {
			t.Fatal(err)
		}
	}
	if got := acc.String(); got != "1,000,001" {
		t.Errorf("got %q, want %q", got, "1,000,001")
	}
}

func TestAddOnto_GroupCap(t *testing.T) {
	t.Parallel()

	t.Run("prepend beyond cap fails before mutation", func(t *testing.T) {
		t.Parallel()
		acc := MustNew(1, WithMaxGroups(1))
		err := acc.AddOnto(MustNew(5_000))
		if !errors.Is(err, digitlist.ErrAllocation) {
			t.Fatalf("expected ErrAllocation, got %v", err)
		}
		if got := acc.String(); got != "1" {
			t.Errorf("accumulator corrupted: %q", got)
		}
	})

	carryCases := []struct {
		name      string
		acc, term uint64
		maxGroups int
	}{
		{"single group", 999, 1, 1},
		{"accumulator longer", 999_999, 1, 2},
		{"term longer", 1, 999_999, 2},
		{"equal lengths", 500_500, 499_500, 2},
	}
	for _, tc := range carryCases {
		t.Run("final carry beyond cap leaves value unchanged/"+tc.name, func(t *testing.T) {
			t.Parallel()
			acc := MustNew(tc.acc, WithMaxGroups(tc.maxGroups))
			want := acc.Groups()
			err := acc.AddOnto(MustNew(tc.term))
			if !errors.Is(err, digitlist.ErrAllocation) {
				t.Fatalf("expected ErrAllocation, got %v", err)
			}
			assertGroupsInRange(t, acc)
			if got := acc.Groups(); !slices.Equal(got, want) {
				t.Errorf("groups = %v, want unchanged %v", got, want)
			}
			if g := acc.Groups(); len(g) > 1 && g[0] == 0 {
				t.Errorf("leading zero group: %v", g)
			}
		})
	}

	t.Run("sum filling the cap exactly succeeds", func(t *testing.T) {
		t.Parallel()
		acc := MustNew(1, WithMaxGroups(2))
		if err := acc.AddOnto(MustNew(999_998)); err != nil {
			t.Fatal(err)
		}
		if got := acc.String(); got != "999,999" {
			t.Errorf("got %q, want %q", got, "999,999")
		}
	})

	t.Run("construction beyond cap", func(t *testing.T) {
		t.Parallel()
		if _, err := New(1_000_000, WithMaxGroups(2)); !errors.Is(err, digitlist.ErrAllocation) {
			t.Fatalf("expected ErrAllocation, got %v", err)
		}
	})
}

func TestClone_Isolation(t *testing.T) {
	t.Parallel()
	orig := MustNew(123_456)
	cp := orig.Clone()
	if err := cp.AddOnto(MustNew(999_999)); err != nil {
		t.Fatal(err)
	}
	if got := orig.String(); got != "123,456" {
		t.Errorf("original changed to %q after adding to copy", got)
	}
	if got := cp.String(); got != "1,123,455" {
		t.Errorf("copy = %q, want %q", got, "1,123,455")
	}
}

func TestAssign(t *testing.T) {
	t.Parallel()
	dst := MustNew(7)
	src := MustNew(1_234_567)
	if err := dst.Assign(src); err != nil {
		t.Fatal(err)
	}
	if err := src.AddOnto(MustNew(1)); err != nil {
		t.Fatal(err)
	}
	if got := dst.String(); got != "1,234,567" {
		t.Errorf("dst = %q, want %q", got, "1,234,567")
	}

	if err := dst.Assign(dst); err != nil {
		t.Fatalf("self-assign error: %v", err)
	}
	if got := dst.String(); got != "1,234,567" {
		t.Errorf("self-assign changed value to %q", got)
	}
}

func TestDisplay(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		groups []int
		want   string
	}{
		{"leading group one digit", []int{1, 0, 0}, "1,000,000"},
		{"leading group two digits", []int{12, 5}, "12,005"},
		{"leading group three digits", []int{123, 45, 6}, "123,045,006"},
		{"single group", []int{42}, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := fromGroups(t, tt.groups...)
			var buf bytes.Buffer
			if err := w.Display(&buf); err != nil {
				t.Fatal(err)
			}
			if buf.String() != tt.want {
				t.Errorf("Display = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestDigitsAndCounts(t *testing.T) {
	t.Parallel()
	w := MustNew(12_345_678)
	if got := w.Digits(); got != "12345678" {
		t.Errorf("Digits() = %q", got)
	}
	if got := w.DigitCount(); got != 8 {
		t.Errorf("DigitCount() = %d, want 8", got)
	}
	if got := w.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}
	if w.IsZero() || !Zero().IsZero() {
		t.Error("IsZero mismatch")
	}
}

func TestParse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"0", "0", false},
		{"000", "0", false},
		{"1000", "1,000", false},
		{"1,000,000", "1,000,000", false},
		{"0001234", "1,234", false},
		{"354224848179261915075", "354,224,848,179,261,915,075", false},
		{"", "", true},
		{"12a", "", true},
		{"-5", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			w, err := Parse(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrSyntax) {
					t.Fatalf("Parse(%q) error = %v, want ErrSyntax", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.in, err)
			}
			if w.String() != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.in, w.String(), tt.want)
			}
			assertCanonical(t, w)
		})
	}
}

func TestBigIntRoundTrip(t *testing.T) {
	t.Parallel()
	x, _ := new(big.Int).SetString("12200160415121876738", 10)
	w, err := FromBigInt(x)
	if err != nil {
		t.Fatal(err)
	}
	if w.BigInt().Cmp(x) != 0 {
		t.Errorf("BigInt() = %s, want %s", w.BigInt(), x)
	}
	if _, err := FromBigInt(big.NewInt(-1)); !errors.Is(err, ErrNegative) {
		t.Errorf("expected ErrNegative, got %v", err)
	}
}

func TestEqual(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b *WholeNumber
		want bool
	}{
		{"equal values", MustNew(1_000), MustNew(1_000), true},
		{"zero", Zero(), MustNew(0), true},
		{"last group differs", MustNew(1_000), MustNew(1_001), false},
		{"leading group differs", MustNew(2_000_005), MustNew(3_000_005), false},
		{"different lengths", MustNew(1), MustNew(1_000), false},
		{"parsed and constructed", mustParse(t, "12,345,678"), MustNew(12_345_678), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("%s.Equal(%s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := tt.b.Equal(tt.a); got != tt.want {
				t.Errorf("%s.Equal(%s) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func mustParse(t *testing.T, s string) *WholeNumber {
	t.Helper()
	w, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q): %v", s, err)
	}
	return w
}

func TestFibonacciRecurrence(t *testing.T) {
	t.Parallel()
	want := []string{"1", "1", "2", "3", "5", "8", "13", "21", "34", "55", "89", "144"}

	a, b, fib := Zero(), Zero(), MustNew(1)
	for i, expected := range want {
		if got := fib.String(); got != expected {
			t.Fatalf("F(%d) = %s, want %s", i+1, got, expected)
		}
		if err := a.Assign(b); err != nil {
			t.Fatal(err)
		}
		if err := b.Assign(fib); err != nil {
			t.Fatal(err)
		}
		if err := fib.AddOnto(a); err != nil {
			t.Fatal(err)
		}
	}
}

func fromGroups(t *testing.T, groups ...int) *WholeNumber {
	t.Helper()
	w := &WholeNumber{groups: digitlist.New[int]()}
	for _, g := range groups {
		if err := w.groups.PushBack(g); err != nil {
			t.Fatal(err)
		}
	}
	return w
}

func assertGroupsInRange(t *testing.T, w *WholeNumber) {
	t.Helper()
	for i, g := range w.Groups() {
		if g < 0 || g >= Radix {
			t.Errorf("group %d = %d out of range", i, g)
		}
	}
}

func assertCanonical(t *testing.T, w *WholeNumber) {
	t.Helper()
	groups := w.Groups()
	if len(groups) == 0 {
		t.Fatal("empty group list")
	}
	if len(groups) > 1 && groups[0] == 0 {
		t.Errorf("leading zero group in %v", groups)
	}
	assertGroupsInRange(t, w)
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
