// Package fitfn provides an example penopt.Function implementation: penalized
// least squares over a dense design matrix, with the predict/residual/
// standardize machinery built around the stateless value/gradient/hessian
// contract the optimizers consume.
package fitfn

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ErrDimensionMismatch is returned by NewLeastSquares when X and y disagree
// on sample count.
var ErrDimensionMismatch = errors.New("fitfn: X and y have different number of samples")

// LeastSquares implements penopt.Function for f(x) = 1/(2n) ||y - Xx||^2,
// the smooth collaborator the penalty catalogue regularizes. Hessian is
// exact and constant (X^T X / n) rather than a BFGS approximation, since it
// is cheap to form once for a dense design matrix.
type LeastSquares struct {
	x       *mat.Dense
	y       []float64
	n       int
	p       int
	hessian *mat.SymDense // cached; independent of the evaluation point
}

// NewLeastSquares builds a LeastSquares fit function over design matrix x
// (n samples by p features) and target y (length n).
func NewLeastSquares(x *mat.Dense, y []float64) (*LeastSquares, error) {
	n, p := x.Dims()
	if len(y) != n {
		return nil, fmt.Errorf("%w: X has %d rows, y has %d entries", ErrDimensionMismatch, n, len(y))
	}

	var xtx mat.Dense
	xtx.Mul(x.T(), x)
	hess := mat.NewSymDense(p, nil)
	for i := 0; i < p; i++ {
		for j := i; j < p; j++ {
			hess.SetSym(i, j, xtx.At(i, j)/float64(n))
		}
	}

	return &LeastSquares{x: x, y: append([]float64(nil), y...), n: n, p: p, hessian: hess}, nil
}

func (ls *LeastSquares) residuals(x []float64) []float64 {
	r := make([]float64, ls.n)
	for i := 0; i < ls.n; i++ {
		r[i] = ls.y[i] - floats.Dot(ls.x.RawRowView(i), x)
	}
	return r
}

// Value returns f(x) = 1/(2n) ||y - Xx||^2.
func (ls *LeastSquares) Value(x []float64) float64 {
	r := ls.residuals(x)
	return floats.Dot(r, r) / (2 * float64(ls.n))
}

// Gradient returns grad f(x) = -1/n X^T(y - Xx).
func (ls *LeastSquares) Gradient(x []float64) []float64 {
	r := ls.residuals(x)
	g := make([]float64, ls.p)
	col := make([]float64, ls.n)
	for j := 0; j < ls.p; j++ {
		mat.Col(col, j, ls.x)
		g[j] = -floats.Dot(col, r) / float64(ls.n)
	}
	return g
}

// Hessian returns the constant X^T X / n, exact for this quadratic f.
func (ls *LeastSquares) Hessian(x []float64) *mat.SymDense {
	return ls.hessian
}

// Predict returns X*coef for an arbitrary row-major design matrix.
func Predict(x *mat.Dense, coef []float64) []float64 {
	n, _ := x.Dims()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = floats.Dot(x.RawRowView(i), coef)
	}
	return out
}

// RSquared reports the coefficient of determination of predictions against
// observed y, grounded on aouyang1-go-forecaster's use of gonum/stat
// alongside mat/floats for the same family of problem.
func RSquared(yTrue, yPred []float64) float64 {
	mean := stat.Mean(yTrue, nil)

	diffRes := make([]float64, len(yTrue))
	floats.SubTo(diffRes, yTrue, yPred)
	ssRes := floats.Dot(diffRes, diffRes)

	diffMean := append([]float64(nil), yTrue...)
	floats.AddConst(-mean, diffMean)
	ssTot := floats.Dot(diffMean, diffMean)

	if ssTot == 0 {
		return 0
	}
	return 1 - ssRes/ssTot
}

// StandardizeFeatures centers and scales each column of x to zero mean and
// unit variance in place, returning the per-column means and standard
// deviations so callers can denormalize fitted coefficients.
func StandardizeFeatures(x *mat.Dense) (means, stds []float64) {
	n, p := x.Dims()
	means = make([]float64, p)
	stds = make([]float64, p)
	col := make([]float64, n)
	for j := 0; j < p; j++ {
		mat.Col(col, j, x)
		mean, std := stat.MeanStdDev(col, nil)
		if std < 1e-8 {
			std = 1
		}
		means[j], stds[j] = mean, std
		floats.AddConst(-mean, col)
		floats.Scale(1/std, col)
		x.SetCol(j, col)
	}
	return means, stds
}

// CenterTarget centers y to zero mean in place, returning the mean removed.
func CenterTarget(y []float64) float64 {
	mean := stat.Mean(y, nil)
	floats.AddConst(-mean, y)
	return mean
}

// DenormalizeWeights rescales coefficients fit on standardized features
// back to the original feature scale.
func DenormalizeWeights(weights, stds []float64) []float64 {
	out := append([]float64(nil), weights...)
	floats.Div(out, stds)
	return out
}

// DenormalizeIntercept recovers the intercept term dropped by centering.
func DenormalizeIntercept(weights, means, stds []float64, yMean float64) float64 {
	ratio := make([]float64, len(weights))
	floats.DivTo(ratio, means, stds)
	return yMean - floats.Dot(weights, ratio)
}

// MSE is the mean squared error between predicted and observed y.
func MSE(yTrue, yPred []float64) float64 {
	diff := make([]float64, len(yTrue))
	floats.SubTo(diff, yTrue, yPred)
	return floats.Dot(diff, diff) / float64(len(yTrue))
}

// MAE is the mean absolute error between predicted and observed y.
func MAE(yTrue, yPred []float64) float64 {
	diff := make([]float64, len(yTrue))
	floats.SubTo(diff, yTrue, yPred)
	return floats.Norm(diff, 1) / float64(len(yTrue))
}
