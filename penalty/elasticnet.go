package penalty

import "math"

// elasticNetP is the additive composition alpha*lasso + (1-alpha)*ridge.
// ISTA consumes it split (Gradient handles the smooth ridge part, Prox
// handles the non-smooth lasso part); coordinate descent consumes it
// jointly through SubproblemZ, since the glmnet-style subproblem always
// solves the full per-coordinate penalty at once.
type elasticNetP struct{}

func (elasticNetP) Kind() Kind { return ElasticNet }

func (elasticNetP) Value(xj float64, c Coord) float64 {
	alphaLambda := c.Alpha * c.LambdaJ
	ridgeLambda := (1 - c.Alpha) * c.LambdaJ
	return alphaLambda*math.Abs(xj) + ridgeLambda*xj*xj
}

func (elasticNetP) Gradient(xj float64, c Coord) float64 {
	ridgeLambda := (1 - c.Alpha) * c.LambdaJ
	return 2 * ridgeLambda * xj
}

func (elasticNetP) Prox(uj, t float64, c Coord) float64 {
	alphaLambda := c.Alpha * c.LambdaJ
	return softThreshold(uj, t*alphaLambda)
}

// SubproblemZ is the standard glmnet coordinate update for elastic-net:
// soft-threshold the ridge-free quadratic minimizer by alpha*lambda_j,
// then rescale by the ridge curvature 2*(1-alpha)*lambda_j added to hjj.
func (elasticNetP) SubproblemZ(xPrevJ, dJ, gJ, hdJ, hjj float64, c Coord, warn func(string)) (float64, error) {
	alphaLambda := c.Alpha * c.LambdaJ
	ridgeLambda := (1 - c.Alpha) * c.LambdaJ
	denom := hjj + 2*ridgeLambda
	if denom <= 0 {
		return 0, errNoFiniteCandidate
	}
	a := xPrevJ + dJ
	uRaw := hjj*a - (gJ + hdJ)
	w := softThreshold(uRaw, alphaLambda) / denom
	return w - a, nil
}
