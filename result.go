package penopt

import "fmt"

// Result is the optimizer's output contract.
type Result struct {
	X          []float64
	FValue     float64 // f(x*)
	PValue     float64 // penalty at x*
	ItersOuter int
	ItersInner int // 0 for ISTA
	Status     Status
	Message    string
}

// Objective is F(x*) = FValue + PValue.
func (r *Result) Objective() float64 {
	return r.FValue + r.PValue
}

func (r *Result) String() string {
	return fmt.Sprintf("penopt.Result{status=%s, F=%g, outer=%d, inner=%d, %s}",
		r.Status, r.Objective(), r.ItersOuter, r.ItersInner, r.Message)
}
