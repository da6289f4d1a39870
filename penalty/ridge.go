package penalty

// ridgeP is the smooth L2 penalty (1-alpha)*lambda_j*x_j^2, grounded
// verbatim on original_source/include/ista_ridge.h (penaltyRidge) and its
// glmnet per-parameter sibling glmnet_ridge.h (penaltyRidgeGlmnet). Both
// share the same tuning type as elastic-net in the original; a plain
// "ridge" Selection simply leaves Coord.Alpha at its zero value, which
// collapses (1-alpha) to 1.
type ridgeP struct{}

func (ridgeP) Kind() Kind { return Ridge }

func (ridgeP) Value(xj float64, c Coord) float64 {
	if c.Alpha == 1 {
		return 0
	}
	lambdaJ := (1 - c.Alpha) * c.LambdaJ
	return lambdaJ * xj * xj
}

func (ridgeP) Gradient(xj float64, c Coord) float64 {
	if c.Alpha == 1 {
		return 0
	}
	lambdaJ := (1 - c.Alpha) * c.LambdaJ
	return 2 * lambdaJ * xj
}

// Prox is the identity: ridge has no non-smooth part, so ISTA handles it
// entirely through Gradient.
func (ridgeP) Prox(uj, t float64, c Coord) float64 { return uj }

// SubproblemZ folds the ridge quadratic directly into the coordinate
// descent quadratic model, since ridge is smooth throughout.
func (ridgeP) SubproblemZ(xPrevJ, dJ, gJ, hdJ, hjj float64, c Coord, warn func(string)) (float64, error) {
	lambdaJ := (1 - c.Alpha) * c.LambdaJ
	denom := hjj + 2*lambdaJ
	if denom <= 0 {
		return 0, errNoFiniteCandidate
	}
	a := xPrevJ + dJ
	z := (-(gJ + hdJ) - 2*lambdaJ*a) / denom
	return z, nil
}
