package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/fibwhole/internal/config"
	"github.com/agbru/fibwhole/internal/digitlist"
	apperrors "github.com/agbru/fibwhole/internal/errors"
	"github.com/agbru/fibwhole/internal/wholenumber"
)

func newTestModel(t *testing.T, cfg config.AppConfig) Model {
	t.Helper()
	m := NewModel(context.Background(), cfg, "v1.0.0")
	t.Cleanup(m.cancel)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return updated.(Model)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func TestNewModel_CountFallsBackToN(t *testing.T) {
	m := NewModel(context.Background(), config.AppConfig{N: 250}, "dev")
	defer m.cancel()
	if m.count != 250 {
		t.Errorf("expected count 250, got %d", m.count)
	}

	m = NewModel(context.Background(), config.AppConfig{N: 250, Count: 10}, "dev")
	defer m.cancel()
	if m.count != 10 {
		t.Errorf("expected count 10, got %d", m.count)
	}
}

func TestModel_ViewBeforeResize(t *testing.T) {
	m := NewModel(context.Background(), config.AppConfig{N: 10}, "dev")
	defer m.cancel()
	if got := m.View(); got != "Initializing..." {
		t.Errorf("unexpected view %q", got)
	}
}

func TestModel_TermMsgUpdatesPanels(t *testing.T) {
	m := newTestModel(t, config.AppConfig{N: 200})

	m, _ = update(t, m, TermMsg{Index: 50, Count: 200, Groups: 4, Digits: 11, Preview: "12,586,269,025"})
	if m.percent != 0.25 {
		t.Errorf("expected 25%% progress, got %f", m.percent)
	}
	if m.metrics.groups != 4 || m.metrics.digits != 11 {
		t.Errorf("metrics not updated: %+v", m.metrics)
	}
	view := m.View()
	if !strings.Contains(view, "12,586,269,025") {
		t.Error("expected the term preview in the log panel")
	}
	if !strings.Contains(view, "fibwhole monitor v1.0.0") {
		t.Error("expected the title in the header")
	}
}

func TestModel_StaleGenerationIgnored(t *testing.T) {
	m := newTestModel(t, config.AppConfig{N: 200})
	m.generation = 2

	m, _ = update(t, m, TermMsg{Generation: 1, Index: 100, Count: 200})
	if m.percent != 0 {
		t.Error("stale TermMsg should be ignored")
	}
	m, _ = update(t, m, StreamDoneMsg{Generation: 1, Index: 200})
	if m.done {
		t.Error("stale StreamDoneMsg should be ignored")
	}
}

func TestModel_StreamDone(t *testing.T) {
	f20 := wholenumber.MustNew(6765)
	tests := []struct {
		name     string
		verify   bool
		msg      StreamDoneMsg
		wantCode int
	}{
		{"success", false, StreamDoneMsg{Index: 20, Last: f20}, apperrors.ExitSuccess},
		{"verified", true, StreamDoneMsg{Index: 20, Last: f20}, apperrors.ExitSuccess},
		{"verification mismatch", true, StreamDoneMsg{Index: 21, Last: f20}, apperrors.ExitErrorGeneric},
		{"group cap", false, StreamDoneMsg{Index: 44, Err: &digitlist.OpError{Op: "push front", Err: digitlist.ErrAllocation}}, apperrors.ExitErrorConfig},
		{"cancelled", false, StreamDoneMsg{Index: 3, Err: context.Canceled}, apperrors.ExitErrorCanceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, config.AppConfig{N: 20, Verify: tt.verify})
			m, _ = update(t, m, tt.msg)

			if !m.done {
				t.Error("expected done")
			}
			if m.ExitCode() != tt.wantCode {
				t.Errorf("exit code: expected %d, got %d", tt.wantCode, m.ExitCode())
			}
			wantStatus := statusDone
			if tt.wantCode != apperrors.ExitSuccess {
				wantStatus = statusError
			}
			if m.header.status != wantStatus {
				t.Errorf("status: expected %s, got %s", wantStatus, m.header.status)
			}
		})
	}
}

func TestModel_PauseToggle(t *testing.T) {
	m := newTestModel(t, config.AppConfig{N: 20})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	if !m.paused || !m.gate.paused.Load() {
		t.Fatal("expected paused")
	}
	if m.header.status != statusPaused {
		t.Errorf("expected PAUSED, got %s", m.header.status)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	if m.paused || m.gate.paused.Load() {
		t.Error("expected resumed")
	}
}

func TestModel_QuitWhileRunning(t *testing.T) {
	m := newTestModel(t, config.AppConfig{N: 20})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if m.ExitCode() != apperrors.ExitErrorCanceled {
		t.Errorf("expected exit code %d, got %d", apperrors.ExitErrorCanceled, m.ExitCode())
	}
	if m.ctx.Err() == nil {
		t.Error("expected the stream context to be cancelled")
	}
}

func TestModel_ResetStartsNewGeneration(t *testing.T) {
	m := newTestModel(t, config.AppConfig{N: 20})
	m, _ = update(t, m, StreamDoneMsg{Index: 20, Last: wholenumber.MustNew(6765)})
	oldCtx := m.ctx

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if cmd == nil {
		t.Fatal("expected restart commands")
	}
	if m.generation != 1 {
		t.Errorf("expected generation 1, got %d", m.generation)
	}
	if m.done || m.percent != 0 {
		t.Error("expected a fresh run state")
	}
	if oldCtx.Err() == nil {
		t.Error("expected the previous stream context to be cancelled")
	}
}

func TestModel_ContextCancelled(t *testing.T) {
	m := newTestModel(t, config.AppConfig{N: 20})

	m, cmd := update(t, m, ContextCancelledMsg{Err: context.DeadlineExceeded})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if m.ExitCode() != apperrors.ExitErrorTimeout {
		t.Errorf("expected timeout exit code, got %d", m.ExitCode())
	}
}

func TestModel_HelpToggle(t *testing.T) {
	m := newTestModel(t, config.AppConfig{N: 20})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	if !m.help.ShowAll {
		t.Error("expected full help")
	}
	if !strings.Contains(m.View(), "page up") {
		t.Error("expected full help in the view")
	}
}

func TestModel_SampledStats(t *testing.T) {
	m := newTestModel(t, config.AppConfig{N: 20})

	m, cmd := update(t, m, TickMsg(time.Now()))
	if cmd == nil {
		t.Error("expected tick to schedule sampling")
	}
	m, _ = update(t, m, MemStatsMsg{Alloc: 2 << 20, HeapSys: 8 << 20, NumGC: 3, NumGoroutine: 5})
	m, _ = update(t, m, SysStatsMsg{CPUPercent: 42, MemPercent: 60})

	if m.metrics.alloc != 2<<20 || m.metrics.numGoroutine != 5 {
		t.Error("memory stats not applied")
	}
	if m.metrics.cpu.Last() != 42 || m.metrics.mem.Last() != 60 {
		t.Error("system stats not applied")
	}
}
