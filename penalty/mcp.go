package penalty

import "math"

// DefaultMCPFallbackEpsilon is the positive-definiteness-fallback
// inflation constant applied to the coordinate Hessian entry
// (H_jj += 1/theta + 0.001) when H_jj - 1/theta <= 0 (SCAD uses the same
// constant with 1/(theta-1)). penopt.Options.MCPFallbackEpsilon overrides it.
const DefaultMCPFallbackEpsilon = 0.001

// mcpP is the minimax concave penalty (Zhang, 2010):
//
//	p(x) = lambda*|x| - x^2/(2*theta)   if |x| <= theta*lambda
//	p(x) = theta*lambda^2/2             otherwise
type mcpP struct{}

func (mcpP) Kind() Kind { return MCP }

func (mcpP) Value(xj float64, c Coord) float64 {
	absX := math.Abs(xj)
	if absX <= c.Theta*c.LambdaJ {
		return c.LambdaJ*absX - absX*absX/(2*c.Theta)
	}
	return c.Theta * c.LambdaJ * c.LambdaJ / 2
}

func (mcpP) Gradient(xj float64, c Coord) float64 { return 0 }

// Prox implements the firm-threshold formula, comparing against the zero
// boundary candidate whenever the local quadratic (theta > t) condition
// fails.
func (p mcpP) Prox(uj, t float64, c Coord) float64 {
	if c.LambdaJ == 0 {
		return uj
	}
	theta := c.Theta
	if math.Abs(uj) > theta*c.LambdaJ {
		return uj
	}
	if theta <= t {
		// Non-convex region at this step size: compare the boundary
		// candidates directly instead of dividing by theta-t.
		return bestProxCandidate(p, []float64{0, uj}, uj, t, c)
	}
	firm := softThreshold(uj, t*c.LambdaJ) * theta / (theta - t)
	return bestProxCandidate(p, []float64{firm, 0}, uj, t, c)
}

// SubproblemZ is a direct transliteration of
// original_source/include/lesspar/glmnet_mcp.h's penaltyMcpGlmnet::getZ:
// three piecewise-region candidates (positive branch, negative branch,
// flat region), each clipped to its feasible region, compared by
// subproblem objective value. When the subproblem is not strictly convex
// (H_jj - 1/theta <= 0) the Hessian diagonal is inflated by 1/theta+eps
// and a warning is emitted, exactly as in the original.
func (mcpP) SubproblemZ(xPrevJ, dJ, gJ, hdJ, hjj float64, c Coord, warn func(string)) (float64, error) {
	lambda := c.LambdaJ
	theta := c.Theta

	if lambda == 0 {
		if hjj == 0 {
			return 0, errNoFiniteCandidate
		}
		return -(gJ + hdJ) / hjj, nil
	}

	if hjj-1/theta <= 0 {
		if warn != nil {
			warn("mcp: subproblem is not positive definite; inflating Hessian diagonal (consider the ista optimizer for mcp)")
		}
		eps := c.Epsilon
		if eps <= 0 {
			eps = DefaultMCPFallbackEpsilon
		}
		hjj += 1/theta + eps
	}

	a := xPrevJ + dJ
	denom := hjj*theta - 1.0

	// Case 1: positive branch, feasible while a+z <= theta*lambda.
	z1 := math.Max(-a, (-hdJ*theta+dJ-gJ*theta-theta*lambda+xPrevJ)/denom)
	if a+z1 > theta*lambda {
		z1 = theta*lambda - a
	}

	// Case 2: negative branch, feasible while a+z >= -theta*lambda.
	z2 := math.Min(-a, (-hdJ*theta+dJ+theta*lambda+xPrevJ-gJ*theta)/denom)
	if a+z2 < -theta*lambda {
		z2 = -theta*lambda - a
	}

	// Case 3: flat region, |a+z| > theta*lambda.
	z3 := -(gJ + hdJ) / hjj
	if a+z3 < 0 {
		if a+z3 > -theta*lambda {
			z3 = -theta*lambda - a
		}
	} else {
		if a+z3 < theta*lambda {
			z3 = theta*lambda - a
		}
	}

	penaltyAt := func(probe float64) float64 {
		absProbe := math.Abs(probe)
		if absProbe <= theta*lambda {
			return lambda*absProbe - absProbe*absProbe/(2*theta)
		}
		return theta * lambda * lambda / 2
	}
	return bestSubproblemZ([]float64{z1, z2, z3}, gJ, hdJ, hjj, penaltyAt, xPrevJ, dJ)
}
