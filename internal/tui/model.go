// Package tui implements the dashboard mode: a bubbletea program that
// streams Fibonacci terms from the linked-list accumulators while showing
// term sizes, runtime memory and system load.
package tui

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibwhole/internal/config"
	apperrors "github.com/agbru/fibwhole/internal/errors"
	"github.com/agbru/fibwhole/internal/fibonacci"
	"github.com/agbru/fibwhole/internal/format"
	"github.com/agbru/fibwhole/internal/sysmon"
)

// Layout constants for the dashboard.
const (
	headerHeight          = 1
	progressHeight        = 1
	footerHeight          = 1
	minBodyHeight         = 6
	LogsPanelWidthPercent = 60
	tickInterval          = 500 * time.Millisecond
)

// LayoutManager holds terminal dimensions and provides layout calculations.
type LayoutManager struct {
	width  int
	height int
}

func (l LayoutManager) bodyHeight() int {
	return max(l.height-headerHeight-progressHeight-footerHeight, minBodyHeight)
}

func (l LayoutManager) logsWidth() int {
	return l.width * LogsPanelWidthPercent / 100
}

func (l LayoutManager) rightWidth() int {
	return l.width - l.logsWidth()
}

// Model is the root bubbletea model for the dashboard.
type Model struct {
	header   HeaderModel
	logs     LogsModel
	metrics  MetricsModel
	progress progress.Model
	help     help.Model
	keymap   KeyMap

	LayoutManager

	parentCtx  context.Context
	ctx        context.Context
	cancel     context.CancelFunc
	config     config.AppConfig
	count      uint64
	ref        *programRef
	gate       *pauseGate
	generation uint64
	percent    float64
	paused     bool
	done       bool
	exitCode   int
}

// NewModel creates a dashboard streaming F(1) through F(count), where count
// is cfg.Count when set and cfg.N otherwise.
func NewModel(parentCtx context.Context, cfg config.AppConfig, version string) Model {
	ctx, cancel := context.WithCancel(parentCtx)

	count := cfg.Count
	if count == 0 {
		count = cfg.N
	}

	bar := progress.New(progress.WithDefaultGradient())
	bar.ShowPercentage = true

	logs := NewLogsModel()
	logs.AddNote(fmt.Sprintf("streaming F(1)..F(%s)", format.FormatCount(count)))

	return Model{
		header:    NewHeaderModel(version),
		logs:      logs,
		metrics:   NewMetricsModel(),
		progress:  bar,
		help:      help.New(),
		keymap:    DefaultKeyMap(),
		parentCtx: parentCtx,
		ctx:       ctx,
		cancel:    cancel,
		config:    cfg,
		count:     count,
		ref:       &programRef{},
		gate:      &pauseGate{},
		exitCode:  apperrors.ExitSuccess,
	}
}

func (m Model) streamRequest() streamRequest {
	return streamRequest{
		count:      m.count,
		opts:       m.config.ToCalculationOptions(),
		plain:      m.config.Plain,
		generation: m.generation,
	}
}

// Init starts the stream and the refresh timer.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startStreamCmd(m.ctx, m.ref, m.gate, m.streamRequest()),
		watchContextCmd(m.parentCtx, m.generation),
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		return m, tea.Batch(tickCmd(), sampleMemStatsCmd(), sampleSysStatsCmd())

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)
		return m, nil

	case SysStatsMsg:
		m.metrics.UpdateSysStats(msg)
		return m, nil

	case TermMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.logs.AddTerm(msg)
		m.metrics.UpdateTerm(msg)
		if msg.Count > 0 {
			m.percent = float64(msg.Index) / float64(msg.Count)
		}
		return m, nil

	case StreamDoneMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.finish(msg)
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		if !m.done {
			m.exitCode = apperrors.ExitCodeFor(msg.Err)
		}
		m.done = true
		m.header.SetDone(true)
		return m, tea.Quit
	}

	return m, nil
}

// finish records the end of a stream and, when enabled, checks the last
// term's trailing digits.
func (m *Model) finish(msg StreamDoneMsg) {
	m.done = true
	m.logs.AddDone(msg)
	err := msg.Err
	if err == nil && msg.Last != nil && m.config.Verify {
		if err = fibonacci.VerifyLastDigits(msg.Index, msg.Last); err == nil {
			m.logs.AddNote(fmt.Sprintf("verified trailing digits of F(%s)", format.FormatCount(msg.Index)))
		} else {
			m.logs.add(logErrorStyle.Render(err.Error()))
		}
	}
	if err == nil {
		m.percent = 1
	}
	m.exitCode = apperrors.ExitCodeFor(err)
	m.header.SetDone(err != nil)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.cancel()
		if !m.done {
			m.exitCode = apperrors.ExitErrorCanceled
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		if m.done {
			return m, nil
		}
		m.paused = m.gate.Toggle()
		m.header.SetPaused(m.paused)
		return m, nil

	case key.Matches(msg, m.keymap.Reset):
		m.cancel()
		m.gate.Resume()
		m.generation++
		m.ctx, m.cancel = context.WithCancel(m.parentCtx)

		m.header.Reset()
		m.logs.Reset()
		m.logs.AddNote(fmt.Sprintf("restarted: F(1)..F(%s)", format.FormatCount(m.count)))
		m.metrics = NewMetricsModel()
		m.layoutPanels()
		m.percent = 0
		m.paused = false
		m.done = false
		m.exitCode = apperrors.ExitSuccess

		return m, tea.Batch(
			startStreamCmd(m.ctx, m.ref, m.gate, m.streamRequest()),
			watchContextCmd(m.parentCtx, m.generation),
		)

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keymap.Up):
		m.logs.Scroll(1)
	case key.Matches(msg, m.keymap.Down):
		m.logs.Scroll(-1)
	case key.Matches(msg, m.keymap.PageUp):
		m.logs.Scroll(m.logs.visibleRows())
	case key.Matches(msg, m.keymap.PageDown):
		m.logs.Scroll(-m.logs.visibleRows())
	}
	return m, nil
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.logs.SetSize(m.logsWidth(), m.bodyHeight())
	m.metrics.SetSize(m.rightWidth(), m.bodyHeight())
	m.progress.Width = max(m.width-4, 10)
	m.help.Width = m.width
}

// View renders the entire dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.logs.View(), m.metrics.View())
	bar := " " + m.progress.ViewAs(m.percent)
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, bar, m.help.View(m.keymap))
}

// ExitCode returns the process exit code for the session.
func (m Model) ExitCode() int { return m.exitCode }

// Run is the entry point for the dashboard mode. It returns the exit code.
func Run(ctx context.Context, cfg config.AppConfig, version string) int {
	initTUIStyles()

	model := NewModel(ctx, cfg, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	// Inject the program reference before running so the stream can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}
	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleMemStatsCmd reads runtime memory stats.
func sampleMemStatsCmd() tea.Cmd {
	return func() tea.Msg {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		return MemStatsMsg{
			Alloc:        ms.Alloc,
			HeapSys:      ms.HeapSys,
			NumGC:        ms.NumGC,
			PauseTotalNs: ms.PauseTotalNs,
			NumGoroutine: runtime.NumGoroutine(),
		}
	}
}

// sampleSysStatsCmd reads system-wide CPU and memory stats, giving up
// after one tick.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), tickInterval)
		defer cancel()
		s := sysmon.SampleContext(ctx)
		return SysStatsMsg{CPUPercent: s.CPUPercent, MemPercent: s.MemPercent}
	}
}

// watchContextCmd waits for cancellation of the parent context.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
