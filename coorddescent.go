package penopt

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"penopt/diagnostics"
	"penopt/penalty"
)

// lineSearchSMin is the smallest Armijo step fraction tried before
// coordinate descent's outer line search gives up; if no s succeeds by
// s_min, the optimizer aborts with LineSearchFailed.
const lineSearchSMin = 1e-10

// CoordinateDescent runs the glmnet-style optimizer: each outer iteration
// forms a quadratic model of f from the current gradient and Hessian,
// solves it coordinate-by-coordinate through the penalty's SubproblemZ
// contract, then accepts the resulting direction via an Armijo
// backtracking line search.
func CoordinateDescent(fn Function, sel penalty.Selection, x0 []float64, opts *Options, sink diagnostics.Sink) (*Result, error) {
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
	if !opts.AllowNonConvexCD {
		for _, k := range resolved.Kinds {
			if k == penalty.MCP {
				return nil, fmt.Errorf("%w: MCP under coordinate descent is opt-in; set Options.AllowNonConvexCD", ErrInvalidTuning)
			}
		}
	}
	if opts.MCPFallbackEpsilon > 0 {
		for j, k := range resolved.Kinds {
			if k == penalty.MCP || k == penalty.SCAD {
				resolved.Coords[j].Epsilon = opts.MCPFallbackEpsilon
			}
		}
	}

	n := len(x0)
	x := make([]float64, n)
	copy(x, x0)

	objective := func(xx []float64) (float64, float64, bool) {
		fv := fn.Value(xx)
		pv := penalty.Value(xx, resolved.Kinds, resolved.Coords)
		return fv, pv, isFiniteScalar(fv) && isFiniteScalar(pv)
	}

	fVal, pVal, ok := objective(x)
	if !ok {
		return &Result{X: x, Status: FitNonFinite, Message: "initial f(x0) or P(x0) is non-finite"}, ErrFitNonFinite
	}

	best := &Result{X: append([]float64(nil), x...), FValue: fVal, PValue: pVal, Status: MaxIters}
	totalInner := 0

	for outer := 1; outer <= opts.MaxOuterIters; outer++ {
		g := fn.Gradient(x)
		if nonFiniteVec(g) {
			best.Status = FitNonFinite
			best.Message = "gradient returned a non-finite value"
			return best, ErrFitNonFinite
		}
		hess := fn.Hessian(x)
		if hess == nil || hess.SymmetricDim() != n {
			best.Status = FitNonFinite
			best.Message = "hessian returned nil or mismatched dimension"
			return best, ErrFitNonFinite
		}

		d := make([]float64, n)
		hd := make([]float64, n)

		fellBack := false
		for inner := 1; inner <= maxInt(opts.MaxInnerIters, 1); inner++ {
			maxZ := 0.0
			for j := 0; j < n; j++ {
				hjj := hess.At(j, j)
				warned := false
				z, zerr := penalty.Get(resolved.Kinds[j]).SubproblemZ(
					x[j], d[j], g[j], hd[j], hjj, resolved.Coords[j],
					func(string) { warned = true },
				)
				if zerr != nil {
					best.Message = "coordinate subproblem has no finite minimum at coordinate " + fmt.Sprint(j)
					best.Status = SubproblemNoMinimum
					return best, ErrSubproblemNoMinimum
				}
				if warned {
					fellBack = true
				}
				if math.Abs(z) > maxZ {
					maxZ = math.Abs(z)
				}
				d[j] += z
				for i := 0; i < n; i++ {
					hd[i] += z * hess.At(i, j)
				}
			}
			totalInner++
			if maxZ < opts.TolInner {
				break
			}
		}

		if fellBack {
			sink.Emit(diagnostics.Event{
				Iteration: outer,
				Objective: fVal + pVal,
				Note:      "coordinate subproblem was not positive definite; Hessian diagonal inflated",
				Level:     diagnostics.Warn,
			})
		}

		gDotD := floats.Dot(g, d)
		s := 1.0
		accepted := false
		var fNew, pNew float64
		candidate := make([]float64, n)
		for s >= lineSearchSMin {
			for j := range x {
				candidate[j] = x[j] + s*d[j]
			}
			var finite bool
			fNew, pNew, finite = objective(candidate)
			if finite && fNew+pNew <= fVal+pVal+opts.CArmijo*s*gDotD {
				accepted = true
				break
			}
			s /= opts.Beta
		}

		if !accepted {
			best.Status = LineSearchFailed
			best.Message = "coordinate descent outer line search saturated s_min without acceptance"
			return best, ErrLineSearchFailed
		}

		prevObjective := fVal + pVal
		copy(x, candidate)
		fVal, pVal = fNew, pNew

		status := Converged
		if fellBack {
			status = NotPosDefFallback
		}
		best = &Result{
			X: append([]float64(nil), x...), FValue: fVal, PValue: pVal,
			ItersOuter: outer, ItersInner: totalInner, Status: status,
		}

		gradNorm := floats.Norm(g, math.Inf(1))
		sink.Emit(diagnostics.Event{
			Iteration: outer,
			Objective: fVal + pVal,
			GradNorm:  gradNorm,
			StepSize:  s,
			Note:      "coordinate descent outer step accepted",
		})

		if gradNorm < opts.TolGrad {
			best.Message = "converged: outer gradient norm below tol_grad"
			return best, nil
		}
		if math.Abs(prevObjective-(fVal+pVal)) < opts.TolObj {
			best.Message = "converged: objective change below tol_obj"
			return best, nil
		}
	}

	best.Status = MaxIters
	best.Message = "reached max_outer_iters without meeting a convergence tolerance"
	return best, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
