package topsis

import (
	"math"
	"sort"
)

// Normalize rescales every criterion column to unit Euclidean length. An
// all-zero column is left all-zero so no NaN or Inf ever flows downstream.
func Normalize(m DecisionMatrix) DecisionMatrix {
	out := m.clone()
	for c := range out.Criteria {
		sumSq := 0.0
		for r := range out.Values {
			sumSq += out.Values[r][c] * out.Values[r][c]
		}
		norm := math.Sqrt(sumSq)
		if norm == 0 {
			continue
		}
		for r := range out.Values {
			out.Values[r][c] /= norm
		}
	}
	return out
}

// ApplyWeights multiplies each column by its weight, looked up by criterion
// key. The weight domain must equal the matrix criterion set exactly; any
// mismatch is a ConfigurationError, never silently patched.
func ApplyWeights(m DecisionMatrix, w Weights) (DecisionMatrix, error) {
	if len(w) == 0 {
		return DecisionMatrix{}, &ConfigurationError{Reason: "empty weights mapping"}
	}
	for key := range w {
		if !contains(m.Criteria, key) {
			return DecisionMatrix{}, &ConfigurationError{Reason: "weight for unknown criterion " + key}
		}
	}
	out := m.clone()
	for c, key := range out.Criteria {
		wv, ok := w[key]
		if !ok {
			return DecisionMatrix{}, &ConfigurationError{Reason: "missing weight for criterion " + key}
		}
		for r := range out.Values {
			out.Values[r][c] *= wv
		}
	}
	return out, nil
}

// Ideals derives the positive and negative ideal vectors from a weighted
// matrix: column max/min for benefit criteria, reversed for cost criteria.
func Ideals(m DecisionMatrix, cls Classification) (IdealVectors, error) {
	iv := IdealVectors{
		Positive: make([]float64, len(m.Criteria)),
		Negative: make([]float64, len(m.Criteria)),
	}
	for c, key := range m.Criteria {
		benefit, err := cls.isBenefit(key)
		if err != nil {
			return IdealVectors{}, err
		}
		lo, hi := m.Values[0][c], m.Values[0][c]
		for r := 1; r < len(m.Values); r++ {
			v := m.Values[r][c]
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		if benefit {
			iv.Positive[c], iv.Negative[c] = hi, lo
		} else {
			iv.Positive[c], iv.Negative[c] = lo, hi
		}
	}
	return iv, nil
}

// Closeness computes each route's closeness coefficient in [0,1]: the
// Euclidean distance to the negative ideal over the summed distances to both
// ideals. A route at zero distance from both ideals (all routes identical
// after weighting) gets 0.5 — a deliberate tie-break convention chosen here,
// not inherited from any reference method.
func Closeness(m DecisionMatrix, iv IdealVectors) []float64 {
	out := make([]float64, len(m.Values))
	for r, row := range m.Values {
		var dPos, dNeg float64
		for c, v := range row {
			dPos += (v - iv.Positive[c]) * (v - iv.Positive[c])
			dNeg += (v - iv.Negative[c]) * (v - iv.Negative[c])
		}
		dPos, dNeg = math.Sqrt(dPos), math.Sqrt(dNeg)
		if dPos+dNeg == 0 {
			out[r] = 0.5
			continue
		}
		out[r] = dNeg / (dPos + dNeg)
	}
	return out
}

// RankByCloseness orders routes by closeness descending and assigns each its
// own position in that order as the rank. The sort is stable so ties keep
// input order, which makes the ranking deterministic. Rank is always the
// route's position in the sorted sequence; positions of a sorted index array
// are never reused against the unsorted list.
func RankByCloseness(routes []string, closeness []float64) []RankedRoute {
	out := make([]RankedRoute, len(routes))
	for i, name := range routes {
		out[i] = RankedRoute{RouteName: name, Closeness: closeness[i]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Closeness > out[j].Closeness })
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
