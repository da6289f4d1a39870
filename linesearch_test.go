package penopt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectiveHistoryRingBuffer(t *testing.T) {
	h := newObjectiveHistory(3)
	h.push(1)
	h.push(5)
	h.push(2)
	assert.Equal(t, 5.0, h.max())

	// A fourth push evicts the oldest (1), so the window no longer
	// contains it.
	h.push(-10)
	assert.Equal(t, 5.0, h.max())

	h.push(-20)
	h.push(-30)
	// Window now holds {-10, -20, -30}; the old 5 has rolled off.
	assert.Equal(t, -10.0, h.max())
}

func TestObjectiveHistoryWindowOfOneIsMonotone(t *testing.T) {
	h := newObjectiveHistory(1)
	h.push(10)
	assert.Equal(t, 10.0, h.max())
	h.push(3)
	assert.Equal(t, 3.0, h.max())
}

func TestObjectiveHistoryClampsWindowBelowOne(t *testing.T) {
	h := newObjectiveHistory(0)
	h.push(4)
	assert.Equal(t, 4.0, h.max())
}
