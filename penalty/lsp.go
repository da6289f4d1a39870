package penalty

import "math"

// lspP is the log-sum penalty lambda_j * log(1 + |x|/theta), a smooth
// concave-in-|x| non-convex penalty.
type lspP struct{}

func (lspP) Kind() Kind { return LSP }

func (lspP) Value(xj float64, c Coord) float64 {
	return c.LambdaJ * math.Log(1+math.Abs(xj)/c.Theta)
}

func (lspP) Gradient(xj float64, c Coord) float64 { return 0 }

// Prox solves the two sign-restricted quadratics the firm-threshold form
// reduces to: for x > 0, (x-uj) + t*lambda_j/(theta+x) = 0 rearranges to
// x^2 + (theta-uj)x + (t*lambda_j - uj*theta) = 0; for x < 0, the mirror
// image. Zero is always a third candidate. The global minimizer is
// whichever finite, sign-feasible root (or zero) has the smallest
// objective.
func (p lspP) Prox(uj, t float64, c Coord) float64 {
	if c.LambdaJ == 0 {
		return uj
	}
	theta := c.Theta
	tl := t * c.LambdaJ

	cands := []float64{0}

	// Positive branch: x^2 + (theta-uj)x + (tl - uj*theta) = 0, keep x > 0.
	b := theta - uj
	cst := tl - uj*theta
	if disc := b*b - 4*cst; disc >= 0 {
		sq := math.Sqrt(disc)
		for _, root := range []float64{(-b + sq) / 2, (-b - sq) / 2} {
			if root > 0 {
				cands = append(cands, root)
			}
		}
	}

	// Negative branch: x^2 - (theta+uj)x + (uj*theta + tl) = 0, keep x < 0.
	b2 := -(theta + uj)
	cst2 := uj*theta + tl
	if disc2 := b2*b2 - 4*cst2; disc2 >= 0 {
		sq2 := math.Sqrt(disc2)
		for _, root := range []float64{(-b2 + sq2) / 2, (-b2 - sq2) / 2} {
			if root < 0 {
				cands = append(cands, root)
			}
		}
	}

	return bestProxCandidate(p, cands, uj, t, c)
}

// SubproblemZ reduces to the same prox operator evaluated at the
// quadratic model's unconstrained minimizer with step size 1/hjj: LSP has
// no smooth part, so completing the square in the coordinate subproblem
// gives exactly argmin 1/2(w-u)^2 + (1/hjj)*P(w), i.e. Prox(u, 1/hjj).
func (p lspP) SubproblemZ(xPrevJ, dJ, gJ, hdJ, hjj float64, c Coord, warn func(string)) (float64, error) {
	if hjj <= 0 {
		return 0, errNoFiniteCandidate
	}
	a := xPrevJ + dJ
	u := a - (gJ+hdJ)/hjj
	w := p.Prox(u, 1/hjj, c)
	return w - a, nil
}
