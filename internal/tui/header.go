package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibwhole/internal/format"
)

// Stream states shown on the right of the header.
const (
	statusRunning = "RUNNING"
	statusPaused  = "PAUSED"
	statusDone    = "DONE"
	statusError   = "ERROR"
)

// HeaderModel renders the top bar: title, version, elapsed time and status.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	status    string
	width     int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version string) HeaderModel {
	return HeaderModel{
		startTime: time.Now(),
		version:   version,
		status:    statusRunning,
	}
}

// SetDone freezes the elapsed timer and records the final status.
func (h *HeaderModel) SetDone(failed bool) {
	h.endTime = time.Now()
	h.status = statusDone
	if failed {
		h.status = statusError
	}
}

// SetPaused toggles the paused status while the stream runs.
func (h *HeaderModel) SetPaused(paused bool) {
	if !h.endTime.IsZero() {
		return
	}
	h.status = statusRunning
	if paused {
		h.status = statusPaused
	}
}

// Reset restarts the elapsed timer.
func (h *HeaderModel) Reset() {
	h.startTime = time.Now()
	h.endTime = time.Time{}
	h.status = statusRunning
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// Elapsed returns the running or frozen duration.
func (h HeaderModel) Elapsed() time.Duration {
	if !h.endTime.IsZero() {
		return h.endTime.Sub(h.startTime)
	}
	return time.Since(h.startTime)
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "fibwhole monitor"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	left := titleStyle.Render(titleText) +
		versionStyle.Render(" | ") +
		elapsedStyle.Render(fmt.Sprintf("Elapsed: %s", format.FormatExecutionDuration(h.Elapsed())))

	right := statusStyle(h.status).Render(h.status)

	gap := max(h.width-2-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return headerStyle.Width(h.width).Render(left + strings.Repeat(" ", gap) + right)
}

func statusStyle(status string) lipgloss.Style {
	switch status {
	case statusPaused:
		return statusPausedStyle
	case statusDone:
		return statusDoneStyle
	case statusError:
		return statusErrorStyle
	default:
		return statusRunningStyle
	}
}
