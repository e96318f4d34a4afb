package tui

// sparkLevels are the block elements used for sparklines, lowest first.
var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// sampleWindow keeps the most recent samples of a series in arrival order.
type sampleWindow struct {
	buf   []float64
	next  int
	full  bool
	limit int
}

func newSampleWindow(limit int) *sampleWindow {
	limit = max(limit, 1)
	return &sampleWindow{buf: make([]float64, limit), limit: limit}
}

// Push appends v, dropping the oldest sample once the window is full.
func (s *sampleWindow) Push(v float64) {
	s.buf[s.next] = v
	s.next++
	if s.next == s.limit {
		s.next = 0
		s.full = true
	}
}

// Len returns the number of samples held.
func (s *sampleWindow) Len() int {
	if s.full {
		return s.limit
	}
	return s.next
}

// Last returns the newest sample, or 0 when the window is empty.
func (s *sampleWindow) Last() float64 {
	if s.Len() == 0 {
		return 0
	}
	return s.buf[(s.next+s.limit-1)%s.limit]
}

// Recent returns up to n of the newest samples, oldest first.
func (s *sampleWindow) Recent(n int) []float64 {
	n = min(n, s.Len())
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	start := s.next - n + s.limit
	for i := range out {
		out[i] = s.buf[(start+i)%s.limit]
	}
	return out
}

// Reset drops every sample.
func (s *sampleWindow) Reset() {
	s.next = 0
	s.full = false
}

// sparkline renders values as block elements scaled against ceiling. Values
// outside [0, ceiling] are clamped. A ceiling of zero scales against the
// largest value, for series without a natural bound such as group counts.
func sparkline(values []float64, ceiling float64) string {
	if len(values) == 0 {
		return ""
	}
	if ceiling <= 0 {
		for _, v := range values {
			ceiling = max(ceiling, v)
		}
	}
	top := len(sparkLevels) - 1
	runes := make([]rune, len(values))
	for i, v := range values {
		level := 0
		if ceiling > 0 {
			level = int(min(max(v, 0), ceiling) / ceiling * float64(top))
		}
		runes[i] = sparkLevels[level]
	}
	return string(runes)
}
