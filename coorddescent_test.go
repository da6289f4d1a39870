package penopt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"penopt/diagnostics"
	"penopt/penalty"
)

func relaxedCDOpts() *Options {
	o := Default()
	o.MaxOuterIters = 200
	o.MaxInnerIters = 200
	o.TolGrad = 1e-9
	o.TolObj = 1e-13
	o.TolInner = 1e-12
	return o
}

// Lasso soft-threshold, solved via coordinate descent instead of ISTA:
// the exact quadratic Hessian makes this a single outer iteration.
func TestCDLassoSoftThreshold(t *testing.T) {
	fn := &quadraticFn{target: []float64{1.0, 0.2, -0.5}}
	sel := penalty.Selection{Kind: penalty.Lasso, Lambda: []float64{0.3}}
	res, err := CoordinateDescent(fn, sel, []float64{0, 0, 0}, relaxedCDOpts(), nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.7, res.X[0], 1e-6)
	assert.InDelta(t, 0.0, res.X[1], 1e-6)
	assert.InDelta(t, -0.2, res.X[2], 1e-6)
}

// Ridge closed form under coordinate descent.
func TestCDRidgeClosedForm(t *testing.T) {
	fn := &quadraticFn{target: []float64{1.0, 0.2, -0.5}}
	sel := penalty.Selection{Kind: penalty.Ridge, Lambda: []float64{0.5}}
	res, err := CoordinateDescent(fn, sel, []float64{0, 0, 0}, relaxedCDOpts(), nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, res.X[0], 1e-6)
	assert.InDelta(t, 0.1, res.X[1], 1e-6)
	assert.InDelta(t, -0.25, res.X[2], 1e-6)
}

// MCP non-convex fallback triggers the NotPosDefFallback warning and
// still returns a finite minimizer, using a supplied Hessian H_11=0.1 that
// is deliberately too small relative to 1/theta to be convex.
func TestCDMCPFallbackTriggersWarning(t *testing.T) {
	fn := &quadraticFn{
		target:          []float64{0.4},
		hessianOverride: mat.NewSymDense(1, []float64{0.1}),
	}
	sel := penalty.Selection{Kind: penalty.MCP, Lambda: []float64{0.5}, Theta: []float64{3}}
	opts := relaxedCDOpts()
	opts.AllowNonConvexCD = true

	var sawFallback bool
	sink := cdCapturingSink(func(e diagnostics.Event) {
		if e.Level == diagnostics.Warn {
			sawFallback = true
		}
	})

	res, err := CoordinateDescent(fn, sel, []float64{0}, opts, sink)
	require.NoError(t, err)
	assert.True(t, sawFallback)
	assert.True(t, isFiniteScalar(res.X[0]))
}

// MCPFallbackEpsilon must actually reach the inflated Hessian diagonal in
// the SubproblemZ fallback branch: two runs that differ only in that
// option, both hitting the same non-positive-definite coordinate, must
// take different first outer steps (one outer iteration, one inner sweep).
func TestCDMCPFallbackEpsilonOverrideChangesResult(t *testing.T) {
	newFn := func() Function {
		return &quadraticFn{
			target:          []float64{2.0},
			hessianOverride: mat.NewSymDense(1, []float64{0.1}),
		}
	}
	sel := penalty.Selection{Kind: penalty.MCP, Lambda: []float64{0.5}, Theta: []float64{3}}

	small := relaxedCDOpts()
	small.AllowNonConvexCD = true
	small.MaxOuterIters = 1
	small.MaxInnerIters = 1
	small.MCPFallbackEpsilon = 0.001
	resSmall, err := CoordinateDescent(newFn(), sel, []float64{0}, small, nil)
	require.NoError(t, err)

	large := relaxedCDOpts()
	large.AllowNonConvexCD = true
	large.MaxOuterIters = 1
	large.MaxInnerIters = 1
	large.MCPFallbackEpsilon = 5.0
	resLarge, err := CoordinateDescent(newFn(), sel, []float64{0}, large, nil)
	require.NoError(t, err)

	assert.NotEqual(t, resSmall.X[0], resLarge.X[0])
}

func TestCD_MCPRequiresOptIn(t *testing.T) {
	fn := &quadraticFn{target: []float64{0.4}}
	sel := penalty.Selection{Kind: penalty.MCP, Lambda: []float64{0.5}, Theta: []float64{3}}
	_, err := CoordinateDescent(fn, sel, []float64{0}, Default(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidTuning))
}

// Upon convergence, the KKT conditions of the penalized quadratic
// subproblem hold at x* to tolerance tol_grad (checked here via the
// gradient of the smooth part alone, since x* sits at an unconstrained
// quadratic minimum for none/ridge).
func TestCDConvergesToStationaryPoint(t *testing.T) {
	fn := &quadraticFn{target: []float64{2, -3}}
	sel := penalty.Selection{Kind: penalty.None}
	res, err := CoordinateDescent(fn, sel, []float64{0, 0}, relaxedCDOpts(), nil)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, res.X[0], 1e-6)
	assert.InDelta(t, -3.0, res.X[1], 1e-6)
	assert.Equal(t, Converged, res.Status)
}

func TestCD_InvalidTuningFailsBeforeIteration(t *testing.T) {
	fn := &quadraticFn{target: []float64{1}}
	sel := penalty.Selection{Kind: penalty.Lasso, Lambda: []float64{-1}}
	_, err := CoordinateDescent(fn, sel, []float64{0}, Default(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, penalty.ErrInvalidTuning))
}

func TestCD_FitNonFiniteAborts(t *testing.T) {
	fn := &nonFiniteFn{}
	sel := penalty.Selection{Kind: penalty.None}
	_, err := CoordinateDescent(fn, sel, []float64{1}, Default(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFitNonFinite))
}

func TestCD_NilHessianIsFitNonFinite(t *testing.T) {
	fn := &nilHessianFn{}
	sel := penalty.Selection{Kind: penalty.None}
	res, err := CoordinateDescent(fn, sel, []float64{0, 0}, Default(), nil)
	require.Error(t, err)
	assert.Equal(t, FitNonFinite, res.Status)
}

type nilHessianFn struct{}

func (nilHessianFn) Value(x []float64) float64 {
	s := 0.0
	for _, xi := range x {
		s += xi * xi
	}
	return s
}

func (nilHessianFn) Gradient(x []float64) []float64 {
	g := make([]float64, len(x))
	for i, xi := range x {
		g[i] = 2 * xi
	}
	return g
}

func (nilHessianFn) Hessian(x []float64) *mat.SymDense { return nil }

type cdCapturingSink func(diagnostics.Event)

func (f cdCapturingSink) Emit(e diagnostics.Event) { f(e) }
