package penopt

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"penopt/diagnostics"
	"penopt/penalty"
)

// ISTA runs the proximal-gradient optimizer: at each step, gradient-descend
// on the smooth part (f plus any smooth penalty component) and apply the
// non-smooth penalty's proximal operator, with backtracking on the
// Lipschitz step-size estimate L and an optional non-monotone acceptance
// window.
func ISTA(fn Function, sel penalty.Selection, x0 []float64, opts *Options, sink diagnostics.Sink) (*Result, error) {
	if sink == nil {
		sink = diagnostics.Nop()
	}
	if opts == nil {
		opts = Default()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	resolved, err := sel.Resolve(len(x0))
	if err != nil {
		return nil, err
	}

	n := len(x0)
	x := make([]float64, n)
	copy(x, x0)

	objective := func(xx []float64) (float64, float64, bool) {
		fv := fn.Value(xx)
		pv := penalty.Value(xx, resolved.Kinds, resolved.Coords)
		if !isFiniteScalar(fv) || !isFiniteScalar(pv) {
			return fv, pv, false
		}
		return fv, pv, true
	}

	fVal, pVal, ok := objective(x)
	if !ok {
		return &Result{X: x, Status: FitNonFinite, Message: "initial f(x0) or P(x0) is non-finite"}, ErrFitNonFinite
	}

	hist := newObjectiveHistory(opts.effectiveWindow())
	hist.push(fVal + pVal)

	l := opts.LInit
	best := &Result{X: append([]float64(nil), x...), FValue: fVal, PValue: pVal, Status: MaxIters}

	xPrev := make([]float64, n)
	xCand := make([]float64, n)
	step := make([]float64, n)

	for outer := 1; outer <= opts.MaxOuterIters; outer++ {
		grad := fn.Gradient(x)
		if nonFiniteVec(grad) {
			best.Status = FitNonFinite
			best.Message = "gradient returned a non-finite value"
			return best, ErrFitNonFinite
		}
		smoothGrad := penalty.Gradient(x, resolved.Kinds, resolved.Coords)
		g := make([]float64, n)
		floats.AddTo(g, grad, smoothGrad)

		prevObjective := fVal + pVal
		accepted := false

		for {
			copy(step, x)
			floats.AddScaled(step, -1/l, g)
			copy(xCand, penalty.Prox(step, 1/l, resolved.Kinds, resolved.Coords))

			fNew, pNew, finite := objective(xCand)
			if !finite {
				best.Status = FitNonFinite
				best.Message = "candidate iterate produced a non-finite objective"
				return best, ErrFitNonFinite
			}

			diff := make([]float64, n)
			floats.SubTo(diff, xCand, x)
			sqNorm := floats.Dot(diff, diff)
			rhs := hist.max() + opts.CArmijo*floats.Dot(g, diff) + (l/2)*sqNorm

			if fNew+pNew <= rhs {
				copy(xPrev, x)
				copy(x, xCand)
				fVal, pVal = fNew, pNew
				accepted = true
				break
			}

			l *= opts.Beta
			if l > opts.LMax {
				best.Message = "line search saturated L_max without acceptance"
				best.Status = LineSearchFailed
				return best, ErrLineSearchFailed
			}
		}

		gradMap := make([]float64, n)
		floats.SubTo(gradMap, xPrev, x)
		floats.Scale(l, gradMap)
		gradMapNorm := floats.Norm(gradMap, math.Inf(1))

		sink.Emit(diagnostics.Event{
			Iteration: outer,
			Objective: fVal + pVal,
			GradNorm:  gradMapNorm,
			StepSize:  1 / l,
			Note:      "ista step accepted",
		})

		best = &Result{X: append([]float64(nil), x...), FValue: fVal, PValue: pVal, ItersOuter: outer, Status: Converged}

		hist.push(fVal + pVal)
		if accepted {
			l = math.Max(l*opts.Gamma, opts.LMin)
		}

		if gradMapNorm < opts.TolGrad {
			best.Message = "converged: gradient-mapping norm below tol_grad"
			return best, nil
		}
		objChange := math.Abs(prevObjective - (fVal + pVal))
		if objChange < opts.TolObj {
			best.Message = "converged: objective change below tol_obj"
			return best, nil
		}
	}

	best.Status = MaxIters
	best.Message = "reached max_outer_iters without meeting a convergence tolerance"
	return best, nil
}
