// Package diagnostics implements the structured event stream optimizers
// emit (level, iteration, objective, grad-norm, step-size, note), routed
// through an injected sink rather than a process-wide log stream, so the
// optimizer core stays pure and testable.
package diagnostics

import (
	"strconv"

	"go.uber.org/zap"
)

// Level mirrors zap's severity levels at the granularity the optimizers
// actually use.
type Level int

const (
	Info Level = iota
	Warn
)

// Event is one structured diagnostic record.
type Event struct {
	Level     Level
	Iteration int
	Objective float64
	GradNorm  float64
	StepSize  float64
	Note      string
}

// Sink receives optimizer diagnostic events. Callers that want no output
// use Nop(); callers that want structured logs wrap a *zap.Logger with
// NewZapSink.
type Sink interface {
	Emit(e Event)
}

type nopSink struct{}

func (nopSink) Emit(Event) {}

// Nop returns a Sink that discards every event, preserving "core stays
// pure" for callers who pass no logger.
func Nop() Sink { return nopSink{} }

// zapSink adapts a *zap.Logger to the Sink interface.
type zapSink struct {
	logger *zap.Logger
}

// NewZapSink wraps logger as a diagnostics.Sink, grounded on
// theRebelliousNerd-codenerd's use of go.uber.org/zap for structured
// logging.
func NewZapSink(logger *zap.Logger) Sink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &zapSink{logger: logger}
}

func (s *zapSink) Emit(e Event) {
	fields := []zap.Field{
		zap.Int("iteration", e.Iteration),
		zap.Float64("objective", e.Objective),
		zap.Float64("grad_norm", e.GradNorm),
		zap.Float64("step_size", e.StepSize),
	}
	if e.Level == Warn {
		s.logger.Warn(e.Note, fields...)
		return
	}
	s.logger.Info(e.Note, fields...)
}

// PenaltyDescription is one row of the per-parameter penalty summary
// produced by DescribePenalties, supplementing the original's
// printPenaltyDetails.
type PenaltyDescription struct {
	Index  int
	Kind   string
	Lambda float64
	Theta  float64
	Weight float64
}

// DescribePenalties logs a per-parameter penalty/lambda/theta summary
// through sink when verbose is true, the structured-logging counterpart
// of simplified_interfaces_helper.h's printPenaltyDetails.
func DescribePenalties(sink Sink, verbose bool, rows []PenaltyDescription) {
	if !verbose {
		return
	}
	z, ok := sink.(*zapSink)
	if !ok {
		for _, r := range rows {
			sink.Emit(Event{
				Level: Info,
				Note:  "penalty[" + strconv.Itoa(r.Index) + "] = " + r.Kind,
			})
		}
		return
	}
	for _, r := range rows {
		z.logger.Info("penalty configuration",
			zap.Int("index", r.Index),
			zap.String("kind", r.Kind),
			zap.Float64("lambda", r.Lambda),
			zap.Float64("theta", r.Theta),
			zap.Float64("weight", r.Weight),
		)
	}
}
