// Package topsis ranks candidate waste-collection routes with a TOPSIS
// multi-criteria method: build a decision matrix, normalize it, weight it,
// and order routes by closeness to the ideal solutions.
package topsis

// Criterion column keys, in the fixed matrix column order.
const (
	CritDistance   = "distance_km"
	CritFuel       = "fuel_consumption"
	CritEfficiency = "collection_efficiency"
	CritRoad       = "road_condition"
)

// Columns returns the canonical criterion order used by every matrix.
func Columns() []string {
	return []string{CritDistance, CritFuel, CritEfficiency, CritRoad}
}

// ConfigurationError reports a caller-side contract violation (weight or
// classification sets not matching the matrix columns). Input noise is never
// a ConfigurationError; it degrades to documented defaults instead.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string { return "topsis: " + e.Reason }

// Candidate is one raw destination record as supplied by the data provider.
// String fields may be malformed or empty; the matrix builder substitutes
// defaults rather than failing.
type Candidate struct {
	Name          string
	RawDistance   string // e.g. "12.4 km", unit text ignored
	RoadCondition string // "N/M" score over max, e.g. "7/10"
}

// DecisionMatrix is an ordered set of route rows over an ordered set of
// criterion columns. Stages never mutate their input; each produces a fresh
// matrix so intermediate results stay valid.
type DecisionMatrix struct {
	Criteria []string    // column keys, canonical order
	Routes   []string    // row labels, input order
	Values   [][]float64 // len(Routes) rows x len(Criteria) columns
}

func (m DecisionMatrix) clone() DecisionMatrix {
	out := DecisionMatrix{
		Criteria: append([]string(nil), m.Criteria...),
		Routes:   append([]string(nil), m.Routes...),
		Values:   make([][]float64, len(m.Values)),
	}
	for i, row := range m.Values {
		out.Values[i] = append([]float64(nil), row...)
	}
	return out
}

// Weights maps criterion key to a positive importance weight. Its domain must
// equal the matrix criterion set exactly.
type Weights map[string]float64

// Classification partitions criteria into benefit (higher is better) and cost
// (lower is better) sets. Both slices are explicit so an accidental
// double-classification is representable and rejected.
type Classification struct {
	Benefit []string
	Cost    []string
}

// isBenefit resolves a column key against the partition. A key present in
// neither or both sets is a configuration error.
func (c Classification) isBenefit(key string) (bool, error) {
	inBenefit := contains(c.Benefit, key)
	inCost := contains(c.Cost, key)
	switch {
	case inBenefit && inCost:
		return false, &ConfigurationError{Reason: "criterion " + key + " classified as both benefit and cost"}
	case !inBenefit && !inCost:
		return false, &ConfigurationError{Reason: "criterion " + key + " is unclassified"}
	}
	return inBenefit, nil
}

func contains(list []string, key string) bool {
	for _, s := range list {
		if s == key {
			return true
		}
	}
	return false
}

// IdealVectors holds the per-criterion positive and negative ideal values
// taken from a weighted matrix.
type IdealVectors struct {
	Positive []float64
	Negative []float64
}

// RankedRoute is one entry of the final ranking.
type RankedRoute struct {
	RouteName string  `json:"route_name"`
	Closeness float64 `json:"closeness_coefficient"`
	Rank      int     `json:"rank"`
}

// Input is the full per-call engine input.
type Input struct {
	Candidates           []Candidate
	CollectionEfficiency float64  // percentage, 0-100
	Mileage              float64  // distance per fuel unit
	PetrolLeft           *float64 // percentage, 0-100; nil means unknown
}

// DefaultClassification is the benefit/cost split for the four route
// criteria: efficiency is the only benefit, everything else costs.
func DefaultClassification() Classification {
	return Classification{
		Benefit: []string{CritEfficiency},
		Cost:    []string{CritDistance, CritFuel, CritRoad},
	}
}

const defaultFuelWeight = 0.25

// DeriveWeights builds the weight profile for an input: fixed 0.25 for
// distance and road condition, efficiency/100 for collection efficiency, and
// petrol_left/100 for fuel. A missing or out-of-range petrol level falls back
// to 0.25 (petrol at 50%).
func DeriveWeights(in Input) Weights {
	fuel := defaultFuelWeight
	if in.PetrolLeft != nil && *in.PetrolLeft >= 0 && *in.PetrolLeft <= 100 {
		fuel = *in.PetrolLeft / 100
	}
	return Weights{
		CritDistance:   0.25,
		CritRoad:       0.25,
		CritEfficiency: in.CollectionEfficiency / 100,
		CritFuel:       fuel,
	}
}

// Rank runs the full pipeline with the derived weight profile and default
// classification.
func Rank(in Input) ([]RankedRoute, error) {
	return RankWith(in, DeriveWeights(in), DefaultClassification())
}

// RankWith runs build -> normalize -> weight -> ideals -> closeness -> rank
// with caller-supplied weights and classification. It is pure: identical
// inputs yield bitwise-identical output.
func RankWith(in Input, w Weights, cls Classification) ([]RankedRoute, error) {
	m := BuildMatrix(in.Candidates, in.CollectionEfficiency, in.Mileage)
	weighted, err := ApplyWeights(Normalize(m), w)
	if err != nil {
		return nil, err
	}
	ideals, err := Ideals(weighted, cls)
	if err != nil {
		return nil, err
	}
	return RankByCloseness(weighted.Routes, Closeness(weighted, ideals)), nil
}
