package penopt

import "gonum.org/v1/gonum/floats"

// objectiveHistory is a bounded ring buffer holding the trailing W
// objective values consumed by non-monotone line search acceptance; it
// never grows past its configured window.
type objectiveHistory struct {
	window int
	buf    []float64
	filled int
	next   int
}

func newObjectiveHistory(window int) *objectiveHistory {
	if window < 1 {
		window = 1
	}
	return &objectiveHistory{window: window, buf: make([]float64, window)}
}

func (h *objectiveHistory) push(f float64) {
	h.buf[h.next] = f
	h.next = (h.next + 1) % h.window
	if h.filled < h.window {
		h.filled++
	}
}

// max returns the maximum objective value over the trailing window. Panics
// if called before any value has been pushed.
func (h *objectiveHistory) max() float64 {
	return floats.Max(h.buf[:h.filled])
}
