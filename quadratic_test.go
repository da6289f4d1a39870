package penopt

import "gonum.org/v1/gonum/mat"

// quadraticFn implements Function for f(x) = 1/2 ||x - target||^2, a
// shared fixture across the optimizer test suites. hessianOverride, when
// non-nil, is returned by Hessian instead of the identity, letting a test
// supply an artificially small diagonal to force the
// positive-definiteness fallback.
type quadraticFn struct {
	target          []float64
	hessianOverride *mat.SymDense
}

func (q *quadraticFn) Value(x []float64) float64 {
	s := 0.0
	for i, xi := range x {
		d := xi - q.target[i]
		s += d * d
	}
	return s / 2
}

func (q *quadraticFn) Gradient(x []float64) []float64 {
	g := make([]float64, len(x))
	for i, xi := range x {
		g[i] = xi - q.target[i]
	}
	return g
}

func (q *quadraticFn) Hessian(x []float64) *mat.SymDense {
	if q.hessianOverride != nil {
		return q.hessianOverride
	}
	n := len(x)
	data := make([]float64, n*n)
	for i := 0; i < n; i++ {
		data[i*n+i] = 1
	}
	return mat.NewSymDense(n, data)
}
