package penalty

import "math"

// lassoP is the L1 penalty: lambda_j * |x_j|.
type lassoP struct{}

func (lassoP) Kind() Kind { return Lasso }

func (lassoP) Value(xj float64, c Coord) float64 {
	return c.LambdaJ * math.Abs(xj)
}

func (lassoP) Gradient(xj float64, c Coord) float64 { return 0 }

// Prox is the classic soft-threshold operator, generalized to a per-step
// threshold t*lambda_j.
func (lassoP) Prox(uj, t float64, c Coord) float64 {
	return softThreshold(uj, t*c.LambdaJ)
}

// SubproblemZ solves the per-coordinate quadratic-plus-L1 subproblem in
// closed form: the unconstrained quadratic minimizer in terms of the new
// coordinate value w = xPrevJ+dJ+z is
//
//	u = a - (gJ+hdJ)/hjj,  a = xPrevJ+dJ
//
// and the penalized minimizer is softThreshold(u, lambda_j/hjj); z is the
// resulting displacement from a. Mirrors kshedden-statmodel's opt1d
// (quadratic approximation, hard-threshold-to-zero when the unconstrained
// optimum falls inside the penalty's flat region at zero).
func (lassoP) SubproblemZ(xPrevJ, dJ, gJ, hdJ, hjj float64, c Coord, warn func(string)) (float64, error) {
	if hjj <= 0 {
		return 0, errNoFiniteCandidate
	}
	a := xPrevJ + dJ
	u := a - (gJ+hdJ)/hjj
	w := softThreshold(u, c.LambdaJ/hjj)
	return w - a, nil
}
