package penopt

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Function is the fit-function collaborator consumed by both optimizers.
// Implementations must be deterministic within one optimizer call; Hessian
// is only required by the coordinate-descent optimizer and may return nil
// for ISTA-only use (a BFGS approximation is an acceptable Hessian).
type Function interface {
	// Value returns f(x).
	Value(x []float64) float64

	// Gradient returns grad f(x), a length-len(x) vector.
	Gradient(x []float64) []float64

	// Hessian returns an approximation to grad^2 f(x) as a symmetric dense
	// matrix. Only called by the coordinate-descent optimizer.
	Hessian(x []float64) *mat.SymDense
}

// nonFiniteVec reports whether any entry of v is NaN or +/-Inf.
func nonFiniteVec(v []float64) bool {
	for _, vi := range v {
		if math.IsNaN(vi) || math.IsInf(vi, 0) {
			return true
		}
	}
	return false
}

func isFiniteScalar(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
