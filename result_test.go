package penopt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResultObjective(t *testing.T) {
	r := &Result{FValue: 1.5, PValue: 0.25}
	assert.InDelta(t, 1.75, r.Objective(), 1e-12)
}

func TestResultString(t *testing.T) {
	r := &Result{FValue: 1, PValue: 2, Status: Converged, Message: "ok"}
	s := r.String()
	assert.Contains(t, s, "Converged")
	assert.Contains(t, s, "ok")
}
