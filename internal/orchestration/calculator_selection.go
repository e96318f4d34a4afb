package orchestration

import (
	"github.com/agbru/fibwhole/internal/fibonacci"
)

// AllAlgorithms selects every registered calculator.
const AllAlgorithms = "all"

// GetCalculatorsToRun resolves an algorithm name to calculators. "all"
// returns every registered calculator in name order; an unknown name
// returns nil.
func GetCalculatorsToRun(algo string, factory fibonacci.CalculatorFactory) []fibonacci.Calculator {
	if algo == AllAlgorithms {
		keys := factory.List()
		calculators := make([]fibonacci.Calculator, 0, len(keys))
		for _, k := range keys {
			if calc, err := factory.Get(k); err == nil {
				calculators = append(calculators, calc)
			}
		}
		return calculators
	}
	if calc, err := factory.Get(algo); err == nil {
		return []fibonacci.Calculator{calc}
	}
	return nil
}
