// Package penalty implements the catalogue of regularization penalties
// consumed by the optimizers in the penopt package: none, lasso, ridge,
// elastic-net, capped-L1, LSP, MCP, and SCAD.
//
// Each penalty is a stateless, immutable capability exposing a value, a
// smooth-part gradient, a non-smooth-part proximal operator, and a
// coordinate-descent subproblem solver. Callers never see the concrete
// per-kind type; they resolve a Selection into per-coordinate Coord values
// and dispatch through Get(Kind).
package penalty

import (
	"errors"
	"fmt"
	"math"
)

// ErrNoMinimum is returned by SubproblemZ when no finite candidate exists
// for the coordinate subproblem.
var ErrNoMinimum = errors.New("penalty: subproblem has no finite minimum")

var errNoFiniteCandidate = ErrNoMinimum

// Kind identifies a member of the penalty catalogue.
type Kind int

const (
	None Kind = iota
	Lasso
	Ridge
	ElasticNet
	CappedL1
	LSP
	MCP
	SCAD
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Lasso:
		return "lasso"
	case Ridge:
		return "ridge"
	case ElasticNet:
		return "elastic_net"
	case CappedL1:
		return "capped_l1"
	case LSP:
		return "lsp"
	case MCP:
		return "mcp"
	case SCAD:
		return "scad"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Coord holds the resolved, already-weighted tuning parameters for a single
// coordinate. LambdaJ is lambda*weight for that coordinate: a coordinate
// with LambdaJ == 0 is unpenalized and every penalty must return a zero
// value/gradient/prox-identity/step for it.
type Coord struct {
	LambdaJ float64 // lambda_j = lambda * weight_j
	Alpha   float64 // elastic-net mixing weight in [0,1]; ignored elsewhere
	Theta   float64 // capped-l1/lsp/mcp/scad shape parameter; ignored elsewhere
	Epsilon float64 // PD-fallback inflation constant (mcp/scad); <=0 means "use the kind's default"
}

// Penalty is the per-kind capability set. Every concrete kind implements
// the full interface; kinds for which an operation is not meaningful
// return the mathematically neutral value (zero value, zero gradient,
// identity prox) rather than a nil method, so optimizers never need to
// branch on kind to decide whether a call is safe.
type Penalty interface {
	Kind() Kind

	// Value returns the penalty contribution of one coordinate.
	Value(xj float64, c Coord) float64

	// Gradient returns the smooth-part derivative of the penalty at one
	// coordinate. Zero for penalties (or penalty components) with no
	// smooth part.
	Gradient(xj float64, c Coord) float64

	// Prox returns the coordinate-wise proximal operator of the
	// non-smooth part of the penalty: argmin_x 1/2(x-uj)^2 + t*P_ns(x).
	// Identity for penalties with no non-smooth part.
	Prox(uj, t float64, c Coord) float64

	// SubproblemZ solves the glmnet-style coordinate-descent inner
	// subproblem:
	//
	//   min_z  gj*z + hdj*z + 1/2*hjj*z^2 + P_j(xPrevJ + dJ + z)
	//
	// returning the global minimizer z. warn, if non-nil, is called with
	// a short diagnostic message whenever a stability fallback (e.g. the
	// positive-definiteness inflation used by MCP/SCAD) activates.
	SubproblemZ(xPrevJ, dJ, gJ, hdJ, hjj float64, c Coord, warn func(string)) (float64, error)
}

// Get returns the stateless Penalty implementation for kind. Panics on an
// unregistered kind: callers that accept kind strings from the outside
// world must go through ParsePenaltyKind first, which returns
// ErrUnknownPenalty instead of panicking.
func Get(k Kind) Penalty {
	switch k {
	case None:
		return noneP{}
	case Lasso:
		return lassoP{}
	case Ridge:
		return ridgeP{}
	case ElasticNet:
		return elasticNetP{}
	case CappedL1:
		return cappedL1P{}
	case LSP:
		return lspP{}
	case MCP:
		return mcpP{}
	case SCAD:
		return scadP{}
	default:
		panic(fmt.Sprintf("penalty: unregistered kind %d", int(k)))
	}
}

// Value returns the total penalty F-term: sum_j P_kind[j](x[j]; coords[j]).
func Value(x []float64, kinds []Kind, coords []Coord) float64 {
	total := 0.0
	for j, xj := range x {
		total += Get(kinds[j]).Value(xj, coords[j])
	}
	return total
}

// Gradient returns the smooth-part gradient vector.
func Gradient(x []float64, kinds []Kind, coords []Coord) []float64 {
	g := make([]float64, len(x))
	for j, xj := range x {
		g[j] = Get(kinds[j]).Gradient(xj, coords[j])
	}
	return g
}

// Prox applies the coordinate-separable non-smooth-part proximal operator.
func Prox(u []float64, t float64, kinds []Kind, coords []Coord) []float64 {
	x := make([]float64, len(u))
	for j, uj := range u {
		x[j] = Get(kinds[j]).Prox(uj, t, coords[j])
	}
	return x
}

func softThreshold(z, thresh float64) float64 {
	switch {
	case z > thresh:
		return z - thresh
	case z < -thresh:
		return z + thresh
	default:
		return 0
	}
}

// proxObjective evaluates 1/2*(x-uj)^2 + t*p.Value(x,c), the scalar
// objective a coordinate-wise prox operator minimizes.
func proxObjective(p Penalty, x, uj, t float64, c Coord) float64 {
	diff := x - uj
	return 0.5*diff*diff + t*p.Value(x, c)
}

// bestProxCandidate returns whichever candidate minimizes proxObjective,
// skipping non-finite candidates. Used by the non-convex penalties (capped
// L1, MCP, SCAD) whose prox contract requires comparing piecewise regions.
func bestProxCandidate(p Penalty, cands []float64, uj, t float64, c Coord) float64 {
	best := cands[0]
	bestVal := proxObjective(p, best, uj, t, c)
	for _, cand := range cands[1:] {
		if !isFinite(cand) {
			continue
		}
		v := proxObjective(p, cand, uj, t, c)
		if v < bestVal {
			bestVal = v
			best = cand
		}
	}
	return best
}

// subproblemValue evaluates the scalar glmnet-style coordinate subproblem:
// z*gJ + z*hdJ + 1/2*hjj*z^2 + penaltyAt(xPrevJ+dJ+z).
func subproblemValue(z, gJ, hdJ, hjj, penaltyAtProbe float64) float64 {
	return z*gJ + z*hdJ + 0.5*hjj*z*z + penaltyAtProbe
}

// bestSubproblemZ picks the candidate z minimizing the subproblem among
// finite candidates.
func bestSubproblemZ(cands []float64, gJ, hdJ, hjj float64, penaltyAt func(probe float64) float64, xPrevJ, dJ float64) (float64, error) {
	best := 0.0
	bestVal := 0.0
	found := false
	for _, z := range cands {
		if !isFinite(z) {
			continue
		}
		v := subproblemValue(z, gJ, hdJ, hjj, penaltyAt(xPrevJ+dJ+z))
		if !found || v < bestVal {
			found = true
			bestVal = v
			best = z
		}
	}
	if !found {
		return 0, ErrNoMinimum
	}
	return best, nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
