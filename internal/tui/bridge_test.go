package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/fibwhole/internal/digitlist"
	"github.com/agbru/fibwhole/internal/fibonacci"
)

type recordingSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (r *recordingSender) Send(msg tea.Msg) {
	r.mu.Lock()
	r.msgs = append(r.msgs, msg)
	r.mu.Unlock()
}

func (r *recordingSender) terms() []TermMsg {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []TermMsg
	for _, m := range r.msgs {
		if tm, ok := m.(TermMsg); ok {
			out = append(out, tm)
		}
	}
	return out
}

func TestProgramRef_NilProgramIsNoop(t *testing.T) {
	ref := &programRef{}
	ref.Send(TickMsg(time.Now()))
}

func TestStreamTerms_ReportsFinalTerm(t *testing.T) {
	out := &recordingSender{}
	done := streamTerms(context.Background(), out, &pauseGate{}, streamRequest{count: 100, generation: 3})

	if done.Err != nil {
		t.Fatalf("unexpected error: %v", done.Err)
	}
	if done.Index != 100 {
		t.Errorf("expected index 100, got %d", done.Index)
	}
	if done.Generation != 3 {
		t.Errorf("expected generation 3, got %d", done.Generation)
	}
	if got := done.Last.Digits(); got != "354224848179261915075" {
		t.Errorf("F(100) = %s", got)
	}

	terms := out.terms()
	if len(terms) == 0 {
		t.Fatal("expected at least one TermMsg")
	}
	last := terms[len(terms)-1]
	if last.Index != 100 || last.Count != 100 {
		t.Errorf("last TermMsg: index %d count %d", last.Index, last.Count)
	}
	if last.Digits != 21 || last.Groups != 7 {
		t.Errorf("last TermMsg: digits %d groups %d", last.Digits, last.Groups)
	}
	if !strings.HasPrefix(last.Preview, "354") {
		t.Errorf("unexpected preview %q", last.Preview)
	}
}

func TestStreamTerms_ZeroCount(t *testing.T) {
	out := &recordingSender{}
	done := streamTerms(context.Background(), out, &pauseGate{}, streamRequest{count: 0})

	if done.Err != nil || done.Index != 0 || done.Last != nil {
		t.Errorf("unexpected result %+v", done)
	}
	if len(out.terms()) != 0 {
		t.Error("expected no TermMsg for an empty stream")
	}
}

func TestStreamTerms_GroupCap(t *testing.T) {
	out := &recordingSender{}
	req := streamRequest{count: 1000, opts: fibonacci.Options{MaxGroups: 3}}
	done := streamTerms(context.Background(), out, &pauseGate{}, req)

	if !errors.Is(done.Err, digitlist.ErrAllocation) {
		t.Fatalf("expected ErrAllocation, got %v", done.Err)
	}
	if done.Last != nil {
		t.Error("expected no last term after a failed stream")
	}
	// F(44) is the last term that fits in three groups.
	if done.Index != 44 {
		t.Errorf("expected to stop after F(44), got F(%d)", done.Index)
	}
}

func TestStreamTerms_CancelledWhilePaused(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	gate := &pauseGate{}
	gate.Toggle()

	result := make(chan StreamDoneMsg, 1)
	go func() {
		result <- streamTerms(ctx, &recordingSender{}, gate, streamRequest{count: 10})
	}()

	time.Sleep(2 * pausePollInterval)
	cancel()

	select {
	case done := <-result:
		if !errors.Is(done.Err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", done.Err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("paused stream did not observe cancellation")
	}
}

func TestPauseGate_Toggle(t *testing.T) {
	g := &pauseGate{}
	if !g.Toggle() {
		t.Error("first toggle should pause")
	}
	if g.Toggle() {
		t.Error("second toggle should resume")
	}
	g.Toggle()
	g.Resume()
	if err := g.Wait(context.Background()); err != nil {
		t.Errorf("Wait after Resume: %v", err)
	}
}
