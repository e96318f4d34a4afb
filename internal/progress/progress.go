// Package progress carries progress updates from calculators to whatever is
// displaying them. Calculators report through a ProgressCallback; a
// ProgressSubject fans each report out to its registered observers.
package progress

import (
	"sync"

	"github.com/rs/zerolog"
)

// ProgressUpdate is a single progress report from one calculator.
type ProgressUpdate struct {
	// CalculatorIndex identifies the calculator among those running.
	CalculatorIndex int
	// Value is the completed fraction, from 0.0 to 1.0.
	Value float64
}

// ProgressCallback receives the completed fraction of a calculation.
type ProgressCallback func(progress float64)

// ProgressObserver is notified of every update published by a subject.
type ProgressObserver interface {
	Update(calcIndex int, progress float64)
}

// ProgressSubject keeps the set of observers for a calculation.
type ProgressSubject struct {
	mu        sync.RWMutex
	observers []ProgressObserver
}

// NewProgressSubject returns a subject with no observers.
func NewProgressSubject() *ProgressSubject {
	return &ProgressSubject{}
}

// Register adds an observer. Nil observers are ignored.
func (s *ProgressSubject) Register(o ProgressObserver) {
	if o == nil {
		return
	}
	s.mu.Lock()
	s.observers = append(s.observers, o)
	s.mu.Unlock()
}

// Notify publishes an update to every registered observer.
func (s *ProgressSubject) Notify(calcIndex int, progress float64) {
	s.mu.RLock()
	observers := s.observers
	s.mu.RUnlock()
	for _, o := range observers {
		o.Update(calcIndex, progress)
	}
}

// Freeze snapshots the current observers into a callback bound to
// calcIndex. Observers registered afterwards are not notified by it.
func (s *ProgressSubject) Freeze(calcIndex int) ProgressCallback {
	s.mu.RLock()
	snapshot := make([]ProgressObserver, len(s.observers))
	copy(snapshot, s.observers)
	s.mu.RUnlock()

	return func(progress float64) {
		for _, o := range snapshot {
			o.Update(calcIndex, progress)
		}
	}
}

// ChannelObserver forwards updates onto a channel without blocking; updates
// are dropped when the channel is full.
type ChannelObserver struct {
	ch chan<- ProgressUpdate
}

// NewChannelObserver returns an observer writing to ch. A nil channel yields
// an observer that drops everything.
func NewChannelObserver(ch chan<- ProgressUpdate) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// Update implements ProgressObserver.
func (o *ChannelObserver) Update(calcIndex int, progress float64) {
	if o.ch == nil {
		return
	}
	select {
	case o.ch <- ProgressUpdate{CalculatorIndex: calcIndex, Value: progress}:
	default:
	}
}

// LoggingObserver writes updates to a zerolog logger at debug level, at
// most once per Step of progress.
type LoggingObserver struct {
	logger zerolog.Logger
	step   float64

	mu   sync.Mutex
	last map[int]float64
}

// NewLoggingObserver returns an observer that logs every step of progress.
func NewLoggingObserver(logger zerolog.Logger, step float64) *LoggingObserver {
	if step <= 0 {
		step = 0.1
	}
	return &LoggingObserver{logger: logger, step: step, last: make(map[int]float64)}
}

// Update implements ProgressObserver.
func (o *LoggingObserver) Update(calcIndex int, progress float64) {
	o.mu.Lock()
	last, seen := o.last[calcIndex]
	if seen && progress-last < o.step && progress < 1.0 {
		o.mu.Unlock()
		return
	}
	o.last[calcIndex] = progress
	o.mu.Unlock()

	o.logger.Debug().
		Int("calculator", calcIndex).
		Float64("progress", progress).
		Msg("calculation progress")
}

// NoOpObserver discards updates.
type NoOpObserver struct{}

// NewNoOpObserver returns a NoOpObserver.
func NewNoOpObserver() NoOpObserver { return NoOpObserver{} }

// Update implements ProgressObserver.
func (NoOpObserver) Update(int, float64) {}

// ReportStepProgress reports linear progress for step out of total, but only
// every interval steps and on the final step, so tight loops stay cheap.
func ReportStepProgress(report ProgressCallback, step, total, interval uint64) {
	if report == nil || total == 0 {
		return
	}
	if interval == 0 {
		interval = 1
	}
	if step != total && step%interval != 0 {
		return
	}
	report(float64(step) / float64(total))
}
