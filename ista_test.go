package penopt

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"penopt/diagnostics"
	"penopt/penalty"
)

func relaxedOpts() *Options {
	o := Default()
	o.MaxOuterIters = 5000
	o.TolGrad = 1e-10
	o.TolObj = 1e-14
	return o
}

func TestISTALassoSoftThreshold(t *testing.T) {
	fn := &quadraticFn{target: []float64{1.0, 0.2, -0.5}}
	sel := penalty.Selection{Kind: penalty.Lasso, Lambda: []float64{0.3}}
	res, err := ISTA(fn, sel, []float64{0, 0, 0}, relaxedOpts(), nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.7, res.X[0], 1e-6)
	assert.InDelta(t, 0.0, res.X[1], 1e-6)
	assert.InDelta(t, -0.2, res.X[2], 1e-6)
}

func TestISTARidgeClosedForm(t *testing.T) {
	fn := &quadraticFn{target: []float64{1.0, 0.2, -0.5}}
	sel := penalty.Selection{Kind: penalty.Ridge, Lambda: []float64{0.5}}
	res, err := ISTA(fn, sel, []float64{0, 0, 0}, relaxedOpts(), nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, res.X[0], 1e-5)
	assert.InDelta(t, 0.1, res.X[1], 1e-5)
	assert.InDelta(t, -0.25, res.X[2], 1e-5)
}

func TestISTAElasticNetDecomposition(t *testing.T) {
	fn := &quadraticFn{target: []float64{1.0, 0.2, -0.5}}
	sel := penalty.Selection{Kind: penalty.ElasticNet, Lambda: []float64{0.4}, Alpha: []float64{0.5}}
	res, err := ISTA(fn, sel, []float64{0, 0, 0}, relaxedOpts(), nil)
	require.NoError(t, err)
	for i, u := range []float64{1.0, 0.2, -0.5} {
		sign := 1.0
		if u < 0 {
			sign = -1.0
		}
		mag := u*sign - 0.2
		if mag < 0 {
			mag = 0
		}
		want := sign * mag / 1.4
		assert.InDelta(t, want, res.X[i], 1e-4)
	}
}

func TestISTAMCPIdentityBeyondThreshold(t *testing.T) {
	fn := &quadraticFn{target: []float64{5.0}}
	sel := penalty.Selection{Kind: penalty.MCP, Lambda: []float64{0.5}, Theta: []float64{3}}
	res, err := ISTA(fn, sel, []float64{0}, relaxedOpts(), nil)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, res.X[0], 1e-5)
}

// No penalty reduces to unregularized gradient descent, one step at L=1.
func TestISTANonePenaltyOneStep(t *testing.T) {
	fn := &quadraticFn{target: []float64{1, 2, 3}}
	sel := penalty.Selection{Kind: penalty.None}
	opts := Default()
	res, err := ISTA(fn, sel, []float64{0, 0, 0}, opts, nil)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.X[0], 1e-8)
	assert.InDelta(t, 2.0, res.X[1], 1e-8)
	assert.InDelta(t, 3.0, res.X[2], 1e-8)
}

// Under the monotone variant, ISTA's objective sequence is non-increasing.
func TestISTAMonotoneObjectiveSequence(t *testing.T) {
	fn := &quadraticFn{target: []float64{3, -2, 4}}
	sel := penalty.Selection{Kind: penalty.Lasso, Lambda: []float64{0.2}}
	opts := relaxedOpts()

	var last float64
	first := true
	var capturedErr error
	sink := capturingSink(func(e diagnostics.Event) {
		if !first {
			assert.LessOrEqual(t, e.Objective, last+1e-9)
		}
		last = e.Objective
		first = false
	})
	_, err := ISTA(fn, sel, []float64{10, -10, 10}, opts, sink)
	capturedErr = err
	require.NoError(t, capturedErr)
}

func TestISTAInvalidTuningFailsBeforeIteration(t *testing.T) {
	fn := &quadraticFn{target: []float64{1}}
	sel := penalty.Selection{Kind: penalty.Lasso, Lambda: []float64{-1}}
	_, err := ISTA(fn, sel, []float64{0}, Default(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, penalty.ErrInvalidTuning))
}

func TestISTAMaxItersReturnsBestSoFar(t *testing.T) {
	fn := &quadraticFn{target: []float64{100}}
	sel := penalty.Selection{Kind: penalty.None}
	opts := Default()
	opts.MaxOuterIters = 1
	opts.TolGrad = 0      // rejected by Validate; overridden on the next line
	opts.TolGrad = 1e-300 // unreachable, forces iteration cap
	res, err := ISTA(fn, sel, []float64{0}, opts, nil)
	require.NoError(t, err)
	assert.Equal(t, MaxIters, res.Status)
	assert.NotNil(t, res.X)
}

func TestISTAFitNonFiniteAborts(t *testing.T) {
	fn := &nonFiniteFn{}
	sel := penalty.Selection{Kind: penalty.None}
	res, err := ISTA(fn, sel, []float64{1}, Default(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFitNonFinite))
	assert.Equal(t, FitNonFinite, res.Status)
}

type nonFiniteFn struct{}

func (nonFiniteFn) Value(x []float64) float64       { return math.NaN() }
func (nonFiniteFn) Gradient(x []float64) []float64  { return []float64{0} }
func (nonFiniteFn) Hessian(x []float64) *mat.SymDense { return nil }

type capturingSink func(diagnostics.Event)

func (f capturingSink) Emit(e diagnostics.Event) { f(e) }
