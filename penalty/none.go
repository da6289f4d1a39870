package penalty

// noneP is the trivial penalty: F(x) = f(x), no regularization.
type noneP struct{}

func (noneP) Kind() Kind { return None }

func (noneP) Value(xj float64, c Coord) float64 { return 0 }

func (noneP) Gradient(xj float64, c Coord) float64 { return 0 }

func (noneP) Prox(uj, t float64, c Coord) float64 { return uj }

func (noneP) SubproblemZ(xPrevJ, dJ, gJ, hdJ, hjj float64, c Coord, warn func(string)) (float64, error) {
	if hjj == 0 {
		return 0, errNoFiniteCandidate
	}
	return -(gJ + hdJ) / hjj, nil
}
