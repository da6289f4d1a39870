package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNopSinkDiscardsEvents(t *testing.T) {
	sink := Nop()
	assert.NotPanics(t, func() {
		sink.Emit(Event{Level: Warn, Iteration: 3, Note: "ignored"})
	})
}

func TestZapSinkRoutesLevels(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	sink := NewZapSink(zap.New(core))

	sink.Emit(Event{Level: Info, Iteration: 1, Objective: 2.5, Note: "step"})
	sink.Emit(Event{Level: Warn, Iteration: 2, Objective: 2.1, Note: "fallback"})

	entries := logs.All()
	assert.Len(t, entries, 2)
	assert.Equal(t, "step", entries[0].Message)
	assert.Equal(t, "info", entries[0].Level.String())
	assert.Equal(t, "fallback", entries[1].Message)
	assert.Equal(t, "warn", entries[1].Level.String())
}

func TestNewZapSinkNilLoggerDoesNotPanic(t *testing.T) {
	sink := NewZapSink(nil)
	assert.NotPanics(t, func() { sink.Emit(Event{Note: "x"}) })
}

func TestDescribePenaltiesSkipsWhenNotVerbose(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	sink := NewZapSink(zap.New(core))
	DescribePenalties(sink, false, []PenaltyDescription{{Index: 0, Kind: "lasso"}})
	assert.Len(t, logs.All(), 0)
}

func TestDescribePenaltiesLogsEachRow(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	sink := NewZapSink(zap.New(core))
	DescribePenalties(sink, true, []PenaltyDescription{
		{Index: 0, Kind: "lasso", Lambda: 0.3},
		{Index: 1, Kind: "ridge", Lambda: 0.5},
	})
	entries := logs.All()
	assert.Len(t, entries, 2)
	assert.Equal(t, "penalty configuration", entries[0].Message)
}
