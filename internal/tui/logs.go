package tui

import (
	"fmt"
	"strings"

	"github.com/agbru/fibwhole/internal/format"
)

// maxLogLines bounds the term log. Older lines are dropped.
const maxLogLines = 500

// LogsModel is the scrollable term log. It follows the newest line until
// the user scrolls up.
type LogsModel struct {
	lines  []string
	offset int // lines hidden below the window, 0 when following
	width  int
	height int
}

// NewLogsModel creates an empty log.
func NewLogsModel() LogsModel {
	return LogsModel{}
}

// SetSize updates dimensions.
func (l *LogsModel) SetSize(w, h int) {
	l.width = w
	l.height = h
}

// Reset clears the log.
func (l *LogsModel) Reset() {
	l.lines = nil
	l.offset = 0
}

// AddTerm appends a streamed term.
func (l *LogsModel) AddTerm(msg TermMsg) {
	l.add(fmt.Sprintf("%s %s",
		logIndexStyle.Render(fmt.Sprintf("F(%s)", format.FormatCount(msg.Index))),
		logValueStyle.Render(msg.Preview)))
}

// AddDone appends the line closing a stream.
func (l *LogsModel) AddDone(msg StreamDoneMsg) {
	if msg.Err != nil {
		l.add(logErrorStyle.Render(fmt.Sprintf("stopped at F(%s): %v", format.FormatCount(msg.Index), msg.Err)))
		return
	}
	l.add(logSuccessStyle.Render(fmt.Sprintf("done: %s terms in %s",
		format.FormatCount(msg.Index), format.FormatExecutionDuration(msg.Duration))))
}

// AddNote appends a plain informational line.
func (l *LogsModel) AddNote(text string) {
	l.add(logSuccessStyle.Render(text))
}

func (l *LogsModel) add(line string) {
	l.lines = append(l.lines, line)
	if over := len(l.lines) - maxLogLines; over > 0 {
		l.lines = l.lines[over:]
	}
	if l.offset > 0 {
		l.offset = min(l.offset+1, l.maxOffset())
	}
}

// Scroll moves the window by delta lines; positive scrolls toward older
// lines.
func (l *LogsModel) Scroll(delta int) {
	l.offset = max(0, min(l.offset+delta, l.maxOffset()))
}

func (l *LogsModel) visibleRows() int {
	return max(l.height-2, 1)
}

func (l *LogsModel) maxOffset() int {
	return max(len(l.lines)-l.visibleRows(), 0)
}

// View renders the visible window inside a panel.
func (l LogsModel) View() string {
	rows := l.visibleRows()
	end := len(l.lines) - l.offset
	start := max(end-rows, 0)
	window := l.lines[start:end]

	var b strings.Builder
	for i, line := range window {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
	}
	return panelStyle.
		Width(max(l.width-2, 0)).
		Height(rows).
		Render(b.String())
}
