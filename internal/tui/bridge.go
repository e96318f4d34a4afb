package tui

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/fibwhole/internal/fibonacci"
	"github.com/agbru/fibwhole/internal/format"
	"github.com/agbru/fibwhole/internal/wholenumber"
)

const (
	// termSendInterval throttles TermMsg so that fast streams do not flood
	// the program's message queue.
	termSendInterval = 40 * time.Millisecond
	// pausePollInterval is how often a paused stream checks for resume.
	pausePollInterval = 50 * time.Millisecond
	// previewEdge is the number of characters kept at each end of a term in
	// the log.
	previewEdge = 16
)

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the stream goroutine can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe).
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// sender is the part of programRef the stream needs; tests substitute a
// recorder.
type sender interface {
	Send(msg tea.Msg)
}

// pauseGate lets the UI suspend the stream goroutine between terms.
type pauseGate struct {
	paused atomic.Bool
}

// Toggle flips the paused state and returns the new value.
func (g *pauseGate) Toggle() bool {
	for {
		old := g.paused.Load()
		if g.paused.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// Resume clears the paused state.
func (g *pauseGate) Resume() { g.paused.Store(false) }

// Wait blocks while the gate is paused or until ctx ends.
func (g *pauseGate) Wait(ctx context.Context) error {
	for g.paused.Load() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pausePollInterval):
		}
	}
	return nil
}

// streamRequest describes one run of the term stream.
type streamRequest struct {
	count      uint64
	opts       fibonacci.Options
	plain      bool
	generation uint64
}

// streamTerms generates F(1)..F(count) and reports sampled terms to out.
// The final term is always reported. It returns the StreamDoneMsg that
// closes the run.
func streamTerms(ctx context.Context, out sender, gate *pauseGate, req streamRequest) StreamDoneMsg {
	start := time.Now()
	done := StreamDoneMsg{Generation: req.generation}

	seq, err := fibonacci.NewSequence(req.opts)
	if err != nil {
		done.Err = err
		return done
	}

	var lastSend time.Time
	err = seq.Each(ctx, req.count, func(index uint64, term *wholenumber.WholeNumber) error {
		if err := gate.Wait(ctx); err != nil {
			return err
		}
		done.Index = index
		if index != req.count && time.Since(lastSend) < termSendInterval {
			return nil
		}
		lastSend = time.Now()
		out.Send(termMessage(req, index, term))
		return nil
	})

	done.Duration = time.Since(start)
	done.Err = err
	if err == nil && done.Index > 0 {
		done.Last = seq.Current()
	}
	return done
}

func termMessage(req streamRequest, index uint64, term *wholenumber.WholeNumber) TermMsg {
	preview, _ := format.TruncateValue(term, previewEdge, req.plain)
	return TermMsg{
		Generation: req.generation,
		Index:      index,
		Count:      req.count,
		Groups:     term.Len(),
		Digits:     term.DigitCount(),
		Preview:    preview,
	}
}

// startStreamCmd runs the stream in a tea.Cmd goroutine. Terms go through
// ref; the closing StreamDoneMsg is the command's result.
func startStreamCmd(ctx context.Context, ref *programRef, gate *pauseGate, req streamRequest) tea.Cmd {
	return func() tea.Msg {
		return streamTerms(ctx, ref, gate, req)
	}
}
