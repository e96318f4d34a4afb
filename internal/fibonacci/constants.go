package fibonacci

// ─────────────────────────────────────────────────────────────────────────────
// Loop Tuning Constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	// DefaultReportInterval is the number of sequence steps between progress
	// reports for the linear calculators. Reporting on every step would make
	// the callback dominate the cost of small additions.
	DefaultReportInterval = 1024

	// CancelCheckInterval is the number of sequence steps between context
	// cancellation checks in the linear calculators.
	CancelCheckInterval = 256

	// VerifyDigits is the number of trailing decimal digits compared by
	// VerifyLastDigits.
	VerifyDigits = 18
)

// ─────────────────────────────────────────────────────────────────────────────
// Size Estimation Constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	// FibonacciGrowthFactor is log2(phi), where phi ≈ 1.618 (golden ratio).
	// Used to estimate the bit length of F(n).
	FibonacciGrowthFactor = 0.69424

	// DecimalGrowthFactor is log10(phi). F(n) has about n*DecimalGrowthFactor
	// decimal digits.
	DecimalGrowthFactor = 0.20898764
)

// EstimateDigits returns an upper estimate of the decimal digit count of F(n).
func EstimateDigits(n uint64) int {
	return int(float64(n)*DecimalGrowthFactor) + 1
}

// EstimateGroups returns an upper estimate of the number of base-1000 digit
// groups needed to hold F(n).
func EstimateGroups(n uint64) int {
	return EstimateDigits(n)/3 + 1
}
