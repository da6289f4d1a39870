package penalty

import "math"

// scadP is Fan & Li's smoothly-clipped-absolute-deviation penalty: linear
// on [0, lambda], a quadratic interpolation on [lambda, theta*lambda], and
// flat beyond.
type scadP struct{}

func (scadP) Kind() Kind { return SCAD }

func (scadP) Value(xj float64, c Coord) float64 {
	absX := math.Abs(xj)
	lambda := c.LambdaJ
	theta := c.Theta
	switch {
	case absX <= lambda:
		return lambda * absX
	case absX <= theta*lambda:
		return (2*theta*lambda*absX - xj*xj - lambda*lambda) / (2 * (theta - 1))
	default:
		return (theta + 1) * lambda * lambda / 2
	}
}

func (scadP) Gradient(xj float64, c Coord) float64 { return 0 }

// Prox is the standard SCAD thresholding operator (Fan & Li 2001;
// Breheny & Huang 2011): soft-threshold near zero, a rescaled linear
// shrinkage in the quadratic-interpolation region, identity beyond. When
// the interpolation region's local quadratic is not strictly convex at
// this step size (theta-1-t <= 0), candidates are compared directly
// instead of dividing by a non-positive denominator, mirroring the
// capped-L1/MCP region comparisons.
func (p scadP) Prox(uj, t float64, c Coord) float64 {
	if c.LambdaJ == 0 {
		return uj
	}
	lambda := c.LambdaJ
	theta := c.Theta
	absU := math.Abs(uj)

	switch {
	case absU <= lambda*(1+t):
		return softThreshold(uj, t*lambda)
	case absU <= theta*lambda:
		denom := theta - 1 - t
		if denom <= 0 {
			bound := math.Copysign(theta*lambda, uj)
			return bestProxCandidate(p, []float64{softThreshold(uj, t*lambda), uj, bound, 0}, uj, t, c)
		}
		return ((theta-1)*uj - math.Copysign(theta*t*lambda, uj)) / denom
	default:
		return uj
	}
}

// SubproblemZ mirrors MCP's three-region case analysis: a stationary
// candidate per region (the linear region contributes two
// sign-restricted candidates, the quadratic-interpolation region
// contributes two more, and the flat region contributes one), each
// clipped to its feasible range and compared by subproblem objective
// value. The quadratic-interpolation region's convexity condition is
// hjj > 1/(theta-1); when it fails the same positive-definiteness
// fallback as MCP (inflate hjj, emit a warning) applies before any
// candidate is computed.
func (scadP) SubproblemZ(xPrevJ, dJ, gJ, hdJ, hjj float64, c Coord, warn func(string)) (float64, error) {
	lambda := c.LambdaJ
	theta := c.Theta

	if lambda == 0 {
		if hjj == 0 {
			return 0, errNoFiniteCandidate
		}
		return -(gJ + hdJ) / hjj, nil
	}

	if hjj-1/(theta-1) <= 0 {
		if warn != nil {
			warn("scad: subproblem is not positive definite; inflating Hessian diagonal (consider the ista optimizer for scad)")
		}
		eps := c.Epsilon
		if eps <= 0 {
			eps = DefaultMCPFallbackEpsilon
		}
		hjj += 1/(theta-1) + eps
	}

	a := xPrevJ + dJ

	// Region 1 (linear, |w| <= lambda): w > 0 and w < 0 branches.
	zPos := -(gJ + hdJ + lambda) / hjj
	zPos = math.Max(zPos, -a)
	if a+zPos > lambda {
		zPos = lambda - a
	}

	zNeg := -(gJ + hdJ - lambda) / hjj
	zNeg = math.Min(zNeg, -a)
	if a+zNeg < -lambda {
		zNeg = -lambda - a
	}

	// Region 2 (quadratic interpolation, lambda < |w| <= theta*lambda).
	denom2 := hjj*(theta-1) - 1
	var zMidPos, zMidNeg float64
	if denom2 != 0 {
		zMidPos = (a - theta*lambda - (gJ+hdJ)*(theta-1)) / denom2
		if a+zMidPos <= lambda {
			zMidPos = lambda - a
		} else if a+zMidPos > theta*lambda {
			zMidPos = theta*lambda - a
		}

		zMidNeg = (a + theta*lambda - (gJ+hdJ)*(theta-1)) / denom2
		if a+zMidNeg >= -lambda {
			zMidNeg = -lambda - a
		} else if a+zMidNeg < -theta*lambda {
			zMidNeg = -theta*lambda - a
		}
	} else {
		zMidPos, zMidNeg = math.NaN(), math.NaN()
	}

	// Region 3 (flat, |w| > theta*lambda).
	z3 := -(gJ + hdJ) / hjj
	if a+z3 >= 0 {
		if a+z3 < theta*lambda {
			z3 = theta*lambda - a
		}
	} else {
		if a+z3 > -theta*lambda {
			z3 = -theta*lambda - a
		}
	}

	penaltyAt := func(probe float64) float64 {
		absProbe := math.Abs(probe)
		switch {
		case absProbe <= lambda:
			return lambda * absProbe
		case absProbe <= theta*lambda:
			return (2*theta*lambda*absProbe - probe*probe - lambda*lambda) / (2 * (theta - 1))
		default:
			return (theta + 1) * lambda * lambda / 2
		}
	}

	return bestSubproblemZ([]float64{zPos, zNeg, zMidPos, zMidNeg, z3}, gJ, hdJ, hjj, penaltyAt, xPrevJ, dJ)
}
