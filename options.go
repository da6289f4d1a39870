package penopt

import "fmt"

// LineSearchMode selects the ISTA acceptance rule.
type LineSearchMode int

const (
	Monotone LineSearchMode = iota
	NonMonotone
)

func (m LineSearchMode) String() string {
	if m == NonMonotone {
		return "non_monotone"
	}
	return "monotone"
}

// Options is the shared control/convergence bag consumed by both optimizers.
type Options struct {
	MaxOuterIters int
	MaxInnerIters int // coordinate descent only

	TolGrad  float64
	TolObj   float64
	TolInner float64 // coordinate descent only

	LineSearch       LineSearchMode
	NonMonotoneWindow int // W for non-monotone line search; 1 == monotone

	// ISTA step-size control.
	LInit float64
	LMin  float64
	LMax  float64
	Beta  float64 // backtracking growth factor, > 1
	Gamma float64 // post-acceptance shrink factor, in (0,1]

	CArmijo float64

	Verbose bool

	// MCPFallbackEpsilon overrides the positive-definiteness fallback
	// inflation constant used by MCP/SCAD's coordinate subproblem solver.
	// Zero means "use the penalty's own default"
	// (penalty.DefaultMCPFallbackEpsilon).
	MCPFallbackEpsilon float64

	// AllowNonConvexCD opts a caller into running coordinate descent with
	// MCP, which is less numerically stable under coordinate descent than
	// under ISTA. False by default; ISTA is always permitted regardless of
	// this flag.
	AllowNonConvexCD bool
}

// Default returns a reasonable options bag for typical fits, absent
// caller overrides.
func Default() *Options {
	return &Options{
		MaxOuterIters:     1000,
		MaxInnerIters:     100,
		TolGrad:           1e-6,
		TolObj:            1e-9,
		TolInner:          1e-8,
		LineSearch:        Monotone,
		NonMonotoneWindow: 1,
		LInit:             1.0,
		LMin:              1e-8,
		LMax:              1e10,
		Beta:              2.0,
		Gamma:             0.9,
		CArmijo:           1e-4,
		Verbose:           false,
	}
}

// Validate checks the options bag against its documented ranges, wrapping
// every failure in ErrInvalidTuning.
func (o *Options) Validate() error {
	if o.MaxOuterIters <= 0 {
		return fmt.Errorf("%w: MaxOuterIters must be positive, got %d", ErrInvalidTuning, o.MaxOuterIters)
	}
	if o.MaxInnerIters < 0 {
		return fmt.Errorf("%w: MaxInnerIters must be non-negative, got %d", ErrInvalidTuning, o.MaxInnerIters)
	}
	if o.TolGrad <= 0 {
		return fmt.Errorf("%w: TolGrad must be positive, got %g", ErrInvalidTuning, o.TolGrad)
	}
	if o.TolObj <= 0 {
		return fmt.Errorf("%w: TolObj must be positive, got %g", ErrInvalidTuning, o.TolObj)
	}
	if o.TolInner < 0 {
		return fmt.Errorf("%w: TolInner must be non-negative, got %g", ErrInvalidTuning, o.TolInner)
	}
	if o.LInit <= 0 {
		return fmt.Errorf("%w: LInit must be positive, got %g", ErrInvalidTuning, o.LInit)
	}
	if o.LMin <= 0 || o.LMin > o.LInit {
		return fmt.Errorf("%w: LMin must satisfy 0 < LMin <= LInit, got LMin=%g LInit=%g", ErrInvalidTuning, o.LMin, o.LInit)
	}
	if o.LMax < o.LInit {
		return fmt.Errorf("%w: LMax must be >= LInit, got LMax=%g LInit=%g", ErrInvalidTuning, o.LMax, o.LInit)
	}
	if o.Beta <= 1 {
		return fmt.Errorf("%w: Beta must be > 1, got %g", ErrInvalidTuning, o.Beta)
	}
	if o.Gamma <= 0 || o.Gamma > 1 {
		return fmt.Errorf("%w: Gamma must be in (0,1], got %g", ErrInvalidTuning, o.Gamma)
	}
	if o.CArmijo <= 0 || o.CArmijo >= 1 {
		return fmt.Errorf("%w: CArmijo must be in (0,1), got %g", ErrInvalidTuning, o.CArmijo)
	}
	if o.LineSearch == NonMonotone && o.NonMonotoneWindow < 1 {
		return fmt.Errorf("%w: NonMonotoneWindow must be >= 1, got %d", ErrInvalidTuning, o.NonMonotoneWindow)
	}
	if o.MCPFallbackEpsilon < 0 {
		return fmt.Errorf("%w: MCPFallbackEpsilon must be non-negative, got %g", ErrInvalidTuning, o.MCPFallbackEpsilon)
	}
	return nil
}

func (o *Options) effectiveWindow() int {
	if o.LineSearch == Monotone {
		return 1
	}
	if o.NonMonotoneWindow < 1 {
		return 1
	}
	return o.NonMonotoneWindow
}
