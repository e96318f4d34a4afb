package fibonacci

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrUnknownAlgorithm is returned by a factory for an unregistered name.
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// CalculatorFactory creates calculators by name.
type CalculatorFactory interface {
	// Get returns the calculator registered under name.
	Get(name string) (Calculator, error)
	// List returns the registered names in sorted order.
	List() []string
	// GetAll returns every registered calculator keyed by name.
	GetAll() map[string]Calculator
	// Register adds a constructor under name, replacing any existing one.
	Register(name string, creator func() Calculator)
}

// DefaultFactory is a CalculatorFactory that caches one Calculator per name.
// It is safe for concurrent use.
type DefaultFactory struct {
	mu       sync.RWMutex
	creators map[string]func() Calculator
	cache    map[string]Calculator
}

var builtinCalculators = map[string]func() coreCalculator{
	"list":     func() coreCalculator { return &ListAccumulator{} },
	"big":      func() coreCalculator { return &BigIterative{} },
	"doubling": func() coreCalculator { return &FastDoubling{} },
}

// NewDefaultFactory returns a factory holding the built-in calculators.
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{
		creators: make(map[string]func() Calculator, len(builtinCalculators)),
		cache:    make(map[string]Calculator),
	}
	for name, core := range builtinCalculators {
		f.creators[name] = func() Calculator { return NewCalculator(core()) }
	}
	return f
}

// Register implements CalculatorFactory.
func (f *DefaultFactory) Register(name string, creator func() Calculator) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creators[name] = creator
	delete(f.cache, name)
}

// Get implements CalculatorFactory.
func (f *DefaultFactory) Get(name string) (Calculator, error) {
	f.mu.RLock()
	calc, ok := f.cache[name]
	f.mu.RUnlock()
	if ok {
		return calc, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if calc, ok := f.cache[name]; ok {
		return calc, nil
	}
	creator, ok := f.creators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	calc = creator()
	f.cache[name] = calc
	return calc, nil
}

// List implements CalculatorFactory.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.creators))
	for name := range f.creators {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// GetAll implements CalculatorFactory.
func (f *DefaultFactory) GetAll() map[string]Calculator {
	all := make(map[string]Calculator)
	for _, name := range f.List() {
		if calc, err := f.Get(name); err == nil {
			all[name] = calc
		}
	}
	return all
}
