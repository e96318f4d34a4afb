package format

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/agbru/fibwhole/internal/wholenumber"
)

var printer = message.NewPrinter(language.English)

// FormatCount renders an integer with thousands separators.
func FormatCount[T ~int | ~int64 | ~uint64](n T) string {
	return printer.Sprintf("%d", n)
}

// Ellipsis joins the head and tail of a truncated value.
const Ellipsis = "..."

// TruncateValue renders w, keeping only the first and last keep characters
// when the rendering is longer than 2*keep plus the ellipsis. plain selects
// the separator-free form. The second result reports whether truncation
// happened.
func TruncateValue(w *wholenumber.WholeNumber, keep int, plain bool) (string, bool) {
	s := w.String()
	if plain {
		s = w.Digits()
	}
	if keep <= 0 || len(s) <= 2*keep+len(Ellipsis) {
		return s, false
	}
	var b strings.Builder
	b.Grow(2*keep + len(Ellipsis))
	b.WriteString(s[:keep])
	b.WriteString(Ellipsis)
	b.WriteString(s[len(s)-keep:])
	return b.String(), true
}
