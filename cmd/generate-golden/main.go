// Command generate-golden writes the Fibonacci golden file used by the
// calculator tests. Values come from a math/big oracle independent of the
// linked-list accumulators.
//
//	go run ./cmd/generate-golden -o internal/fibonacci/testdata/fibonacci_golden.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"
)

// goldenEntry is one record of the golden file.
type goldenEntry struct {
	N      uint64 `json:"n"`
	Value  string `json:"value"`
	Digits int    `json:"digits"`
}

var defaultIndices = "0,1,2,3,4,5,10,20,50,92,93,94,100,1000"

func main() {
	out := flag.String("o", "internal/fibonacci/testdata/fibonacci_golden.json", "Output file.")
	indices := flag.String("n", defaultIndices, "Comma-separated indices to record.")
	flag.Parse()

	ns, err := parseIndices(*indices)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate-golden: %v\n", err)
		os.Exit(1)
	}

	data, err := json.MarshalIndent(buildGolden(ns), "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate-golden: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, append(data, '\n'), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "generate-golden: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d entries to %s\n", len(ns), *out)
}

func parseIndices(s string) ([]uint64, error) {
	var ns []uint64
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid index %q: %w", field, err)
		}
		ns = append(ns, n)
	}
	if len(ns) == 0 {
		return nil, fmt.Errorf("no indices given")
	}
	return ns, nil
}

func buildGolden(ns []uint64) []goldenEntry {
	entries := make([]goldenEntry, 0, len(ns))
	for _, n := range ns {
		v := fibBig(n).String()
		entries = append(entries, goldenEntry{N: n, Value: v, Digits: len(v)})
	}
	return entries
}

// fibBig is the iterative oracle.
func fibBig(n uint64) *big.Int {
	a, b := big.NewInt(0), big.NewInt(1)
	for range n {
		a.Add(a, b)
		a, b = b, a
	}
	return a
}
