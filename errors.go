package penopt

import (
	"errors"
	"fmt"
)

// Status is the coarse outcome of an optimizer run, reported on Result
// alongside the finer-grained sentinel error (grounded on
// btracey-opt's Status enumeration).
type Status int

const (
	Converged Status = iota
	MaxIters
	LineSearchFailed
	FitNonFinite
	SubproblemNoMinimum
	NotPosDefFallback
	InvalidTuning
	UnknownPenalty
)

func (s Status) String() string {
	switch s {
	case Converged:
		return "Converged"
	case MaxIters:
		return "MaxIters"
	case LineSearchFailed:
		return "LineSearchFailed"
	case FitNonFinite:
		return "FitNonFinite"
	case SubproblemNoMinimum:
		return "SubproblemNoMinimum"
	case NotPosDefFallback:
		return "NotPosDefFallback"
	case InvalidTuning:
		return "InvalidTuning"
	case UnknownPenalty:
		return "UnknownPenalty"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Sentinel errors for the optimizers' failure kinds. Callers errors.Is
// against these; Result.Status carries the coarser classification for
// reporting.
var (
	ErrInvalidTuning       = errors.New("penopt: invalid tuning")
	ErrFitNonFinite        = errors.New("penopt: fit function returned a non-finite value")
	ErrSubproblemNoMinimum = errors.New("penopt: coordinate subproblem has no finite minimum")
	ErrLineSearchFailed    = errors.New("penopt: line search failed to find an accepted step")
	ErrUnknownPenalty      = errors.New("penopt: unknown penalty kind")
)
