package penalty

import (
	"errors"
	"fmt"
)

// ErrInvalidTuning is returned (wrapped with details) when a Selection
// fails validation: a negative lambda, an out-of-range alpha/theta, or a
// tuning vector whose length is neither 1 nor n.
var ErrInvalidTuning = errors.New("penalty: invalid tuning")

// ErrUnknownPenalty is returned by ParsePenaltyKind for an unrecognized
// name.
var ErrUnknownPenalty = errors.New("penalty: unknown kind")

// ParsePenaltyKind translates a string into a Kind, mirroring the
// original stringPenaltyToPenaltyType translator. Unknown names fail with
// ErrUnknownPenalty instead of aborting the process.
func ParsePenaltyKind(s string) (Kind, error) {
	switch s {
	case "none":
		return None, nil
	case "lasso":
		return Lasso, nil
	case "ridge":
		return Ridge, nil
	case "elastic_net", "elasticnet", "enet":
		return ElasticNet, nil
	case "capped_l1", "cappedl1", "cappedL1":
		return CappedL1, nil
	case "lsp":
		return LSP, nil
	case "mcp":
		return MCP, nil
	case "scad":
		return SCAD, nil
	default:
		return None, fmt.Errorf("%w: %q (supported: none, lasso, ridge, elastic_net, capped_l1, lsp, mcp, scad)", ErrUnknownPenalty, s)
	}
}

// BroadcastToN resizes a length-1 tuning vector to length n by repeating
// its single element, mirroring the original resizeVector helper. A
// vector of length n is returned unchanged. Any other length is an error.
// A nil vector broadcasts a caller-supplied default.
func BroadcastToN(vals []float64, n int, dflt float64) ([]float64, error) {
	if vals == nil {
		out := make([]float64, n)
		for i := range out {
			out[i] = dflt
		}
		return out, nil
	}
	switch len(vals) {
	case n:
		out := make([]float64, n)
		copy(out, vals)
		return out, nil
	case 1:
		out := make([]float64, n)
		for i := range out {
			out[i] = vals[0]
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: vector has length %d, want 1 or %d", ErrInvalidTuning, len(vals), n)
	}
}

func broadcastKinds(kind Kind, kinds []Kind, n int) ([]Kind, error) {
	if kinds == nil {
		out := make([]Kind, n)
		for i := range out {
			out[i] = kind
		}
		return out, nil
	}
	switch len(kinds) {
	case n:
		out := make([]Kind, n)
		copy(out, kinds)
		return out, nil
	case 1:
		out := make([]Kind, n)
		for i := range out {
			out[i] = kinds[0]
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: Kinds has length %d, want 1 or %d", ErrInvalidTuning, len(kinds), n)
	}
}

// Selection describes, for an n-parameter problem, which penalty kind
// applies to each coordinate and its tuning. Either set Kind alone (every
// coordinate shares one kind) or set Kinds for a mixed-penalty fit: a
// per-parameter vector of (kind, lambda_j, theta_j, w_j) rows.
// Lambda/Alpha/Theta/Weight each broadcast from length 1 to n.
type Selection struct {
	Kind   Kind
	Kinds  []Kind
	Lambda []float64
	Alpha  []float64
	Theta  []float64
	Weight []float64
}

// Resolved is the validated, per-coordinate expansion of a Selection.
type Resolved struct {
	Kinds  []Kind
	Coords []Coord
}

// Resolve validates and broadcasts the Selection to n coordinates.
func (s Selection) Resolve(n int) (*Resolved, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: n must be positive, got %d", ErrInvalidTuning, n)
	}

	kinds, err := broadcastKinds(s.Kind, s.Kinds, n)
	if err != nil {
		return nil, err
	}
	lambda, err := BroadcastToN(s.Lambda, n, 0)
	if err != nil {
		return nil, err
	}
	alpha, err := BroadcastToN(s.Alpha, n, 0)
	if err != nil {
		return nil, err
	}
	theta, err := BroadcastToN(s.Theta, n, 0)
	if err != nil {
		return nil, err
	}
	weight, err := BroadcastToN(s.Weight, n, 1)
	if err != nil {
		return nil, err
	}

	coords := make([]Coord, n)
	for j := 0; j < n; j++ {
		if lambda[j] < 0 {
			return nil, fmt.Errorf("%w: lambda[%d] = %g < 0", ErrInvalidTuning, j, lambda[j])
		}
		if weight[j] < 0 {
			return nil, fmt.Errorf("%w: weight[%d] = %g < 0", ErrInvalidTuning, j, weight[j])
		}

		c := Coord{LambdaJ: lambda[j] * weight[j]}

		switch kinds[j] {
		case ElasticNet:
			if alpha[j] < 0 || alpha[j] > 1 {
				return nil, fmt.Errorf("%w: alpha[%d] = %g not in [0,1]", ErrInvalidTuning, j, alpha[j])
			}
			c.Alpha = alpha[j]
		case CappedL1, LSP:
			if theta[j] <= 0 {
				return nil, fmt.Errorf("%w: theta[%d] = %g must be > 0", ErrInvalidTuning, j, theta[j])
			}
			c.Theta = theta[j]
		case MCP:
			if theta[j] <= 1 {
				return nil, fmt.Errorf("%w: theta[%d] = %g must be > 1", ErrInvalidTuning, j, theta[j])
			}
			c.Theta = theta[j]
		case SCAD:
			if theta[j] <= 2 {
				return nil, fmt.Errorf("%w: theta[%d] = %g must be > 2", ErrInvalidTuning, j, theta[j])
			}
			c.Theta = theta[j]
		case None, Lasso, Ridge:
			// no theta/alpha needed
		default:
			return nil, fmt.Errorf("%w: unregistered kind %v", ErrInvalidTuning, kinds[j])
		}

		coords[j] = c
	}

	return &Resolved{Kinds: kinds, Coords: coords}, nil
}
