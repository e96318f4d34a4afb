package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/agbru/fibwhole/internal/format"
)

const historySize = 60

// MetricsModel displays runtime memory, system load and the growth of the
// streamed terms.
type MetricsModel struct {
	alloc        uint64
	heapSys      uint64
	numGC        uint32
	pauseTotalNs uint64
	numGoroutine int

	index      uint64
	groups     int
	digits     int
	rate       float64 // terms per second, smoothed
	lastIndex  uint64
	lastUpdate time.Time

	cpu    *sampleWindow
	mem    *sampleWindow
	growth *sampleWindow
	width  int
	height int
}

// NewMetricsModel creates a new metrics panel.
func NewMetricsModel() MetricsModel {
	return MetricsModel{
		lastUpdate: time.Now(),
		cpu:        newSampleWindow(historySize),
		mem:        newSampleWindow(historySize),
		growth:     newSampleWindow(historySize),
	}
}

// SetSize updates dimensions.
func (m *MetricsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// UpdateMemStats updates memory statistics.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.alloc = msg.Alloc
	m.heapSys = msg.HeapSys
	m.numGC = msg.NumGC
	m.pauseTotalNs = msg.PauseTotalNs
	m.numGoroutine = msg.NumGoroutine
}

// UpdateSysStats records a system load sample.
func (m *MetricsModel) UpdateSysStats(msg SysStatsMsg) {
	m.cpu.Push(msg.CPUPercent)
	m.mem.Push(msg.MemPercent)
}

// UpdateTerm records the size of the latest term and the stream rate.
func (m *MetricsModel) UpdateTerm(msg TermMsg) {
	now := time.Now()
	if dt := now.Sub(m.lastUpdate).Seconds(); dt > 0.05 && msg.Index > m.lastIndex {
		instant := float64(msg.Index-m.lastIndex) / dt
		if m.rate > 0 {
			m.rate = 0.7*m.rate + 0.3*instant
		} else {
			m.rate = instant
		}
		m.lastIndex = msg.Index
		m.lastUpdate = now
	}
	m.index = msg.Index
	m.groups = msg.Groups
	m.digits = msg.Digits
	m.growth.Push(float64(msg.Groups))
}

// View renders the metrics panel.
func (m MetricsModel) View() string {
	colWidth := max((m.width-6)/2, 0)
	pipe := metricLabelStyle.Render(" | ")

	top := fmt.Sprintf("  %s %s%s%s %s",
		metricLabelStyle.Render("Heap:"),
		metricValueStyle.Render(humanize.IBytes(m.alloc)+" / "+humanize.IBytes(m.heapSys)),
		pipe,
		metricLabelStyle.Render("GC:"),
		metricValueStyle.Render(fmt.Sprintf("%d (%.1fms)", m.numGC, float64(m.pauseTotalNs)/1e6)))

	rows := []string{
		top,
		formatMetricCol("Term:", "F("+format.FormatCount(m.index)+")", colWidth) +
			formatMetricCol("Rate:", fmt.Sprintf("%.0f terms/s", m.rate), colWidth),
		formatMetricCol("Digits:", format.FormatCount(m.digits), colWidth) +
			formatMetricCol("Groups:", format.FormatCount(m.groups), colWidth),
		formatMetricCol("Goroutines:", fmt.Sprintf("%d", m.numGoroutine), colWidth),
	}

	spark := max(m.width-20, 8)
	rows = append(rows,
		sparkRow("CPU", m.cpu.Last(), cpuSparklineStyle.Render(sparkline(m.cpu.Recent(spark), 100))),
		sparkRow("MEM", m.mem.Last(), memSparklineStyle.Render(sparkline(m.mem.Recent(spark), 100))),
		fmt.Sprintf(" %s %s",
			metricLabelStyle.Render(fmt.Sprintf("%-11s", "Growth")),
			groupsSparkStyle.Render(sparkline(m.growth.Recent(spark), 0))),
	)

	return panelStyle.
		Width(max(m.width-2, 0)).
		Height(max(m.height-2, 0)).
		Render(strings.Join(rows, "\n"))
}

func sparkRow(label string, last float64, spark string) string {
	return fmt.Sprintf(" %s %s %s",
		metricLabelStyle.Render(fmt.Sprintf("%-4s", label)),
		metricValueStyle.Render(fmt.Sprintf("%5.1f%%", last)),
		spark)
}

func formatMetricCol(label, value string, colWidth int) string {
	cell := fmt.Sprintf(" %s %s",
		metricLabelStyle.Render(fmt.Sprintf("%-11s", label)),
		metricValueStyle.Render(value))
	if visible := lipgloss.Width(cell); visible < colWidth {
		cell += strings.Repeat(" ", colWidth-visible)
	}
	return cell
}
