package topsis_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wastenav/internal/topsis"
)

const tol = 1e-9

func ptr(v float64) *float64 { return &v }

func TestBuildMatrix_ParsesNoisyFields(t *testing.T) {
	m := topsis.BuildMatrix([]topsis.Candidate{
		{Name: "North Tip", RawDistance: "12.4 km", RoadCondition: "8/10"},
		{Name: "South Tip", RawDistance: "abc", RoadCondition: "oops"},
		{Name: "East Tip", RawDistance: "", RoadCondition: "6/10"},
	}, 85, 10)

	require.Equal(t, topsis.Columns(), m.Criteria)
	require.Equal(t, []string{"North Tip", "South Tip", "East Tip"}, m.Routes)

	// row 0: parsed as-is, fuel = distance / mileage
	assert.InDelta(t, 12.4, m.Values[0][0], tol)
	assert.InDelta(t, 1.24, m.Values[0][1], tol)
	assert.InDelta(t, 85, m.Values[0][2], tol)
	assert.InDelta(t, 8, m.Values[0][3], tol)

	// row 1: both fields malformed, defaults substituted
	assert.InDelta(t, topsis.DefaultDistanceKm, m.Values[1][0], tol)
	assert.InDelta(t, 2.0, m.Values[1][1], tol)
	assert.InDelta(t, topsis.DefaultRoadScore, m.Values[1][3], tol)

	// row 2: absent distance defaults too
	assert.InDelta(t, topsis.DefaultDistanceKm, m.Values[2][0], tol)
}

func TestBuildMatrix_FallbackDivisorWhenMileageInvalid(t *testing.T) {
	m := topsis.BuildMatrix([]topsis.Candidate{{Name: "A", RawDistance: "30 km", RoadCondition: "5/10"}}, 50, 0)
	assert.InDelta(t, 3.0, m.Values[0][1], tol, "fuel should fall back to distance/10")
}

func TestBuildMatrix_EmptyInputUsesSyntheticRoutes(t *testing.T) {
	m := topsis.BuildMatrix(nil, 85, 10)
	require.Equal(t, []string{"Route A", "Route B", "Route C", "Route D"}, m.Routes)
	for r := range m.Values {
		assert.InDelta(t, 85.0, m.Values[r][2], tol, "efficiency is copied into every synthetic row")
	}
}

func TestNormalize_UnitColumns(t *testing.T) {
	m := topsis.BuildMatrix([]topsis.Candidate{
		{Name: "A", RawDistance: "10 km", RoadCondition: "8/10"},
		{Name: "B", RawDistance: "20 km", RoadCondition: "6/10"},
		{Name: "C", RawDistance: "30 km", RoadCondition: "9/10"},
	}, 85, 10)
	n := topsis.Normalize(m)

	for c := range n.Criteria {
		sumSq := 0.0
		for r := range n.Values {
			sumSq += n.Values[r][c] * n.Values[r][c]
		}
		assert.InDelta(t, 1.0, sumSq, tol, "column %s should have unit norm", n.Criteria[c])
	}
	// input untouched
	assert.InDelta(t, 10.0, m.Values[0][0], tol)
}

func TestNormalize_ZeroColumnStaysZero(t *testing.T) {
	m := topsis.DecisionMatrix{
		Criteria: topsis.Columns(),
		Routes:   []string{"A", "B"},
		Values:   [][]float64{{0, 1, 2, 3}, {0, 2, 3, 4}},
	}
	n := topsis.Normalize(m)
	for r := range n.Values {
		assert.Zero(t, n.Values[r][0])
		for _, v := range n.Values[r] {
			assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
		}
	}
}

func TestApplyWeights_MultipliesCells(t *testing.T) {
	m := topsis.Normalize(topsis.BuildMatrix(nil, 85, 10))
	w := topsis.Weights{
		topsis.CritDistance:   0.25,
		topsis.CritFuel:       0.5,
		topsis.CritEfficiency: 0.85,
		topsis.CritRoad:       0.25,
	}
	weighted, err := topsis.ApplyWeights(m, w)
	require.NoError(t, err)
	for r := range m.Values {
		for c, key := range m.Criteria {
			assert.InDelta(t, m.Values[r][c]*w[key], weighted.Values[r][c], tol)
		}
	}
}

func TestApplyWeights_ConfigurationErrors(t *testing.T) {
	m := topsis.Normalize(topsis.BuildMatrix(nil, 85, 10))

	missing := topsis.Weights{
		topsis.CritDistance:   0.25,
		topsis.CritFuel:       0.25,
		topsis.CritEfficiency: 0.85,
		// road_condition absent
	}
	_, err := topsis.ApplyWeights(m, missing)
	var cfgErr *topsis.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)

	extra := topsis.Weights{
		topsis.CritDistance:   0.25,
		topsis.CritFuel:       0.25,
		topsis.CritEfficiency: 0.85,
		topsis.CritRoad:       0.25,
		"tyre_wear":           0.1,
	}
	_, err = topsis.ApplyWeights(m, extra)
	require.ErrorAs(t, err, &cfgErr)

	_, err = topsis.ApplyWeights(m, topsis.Weights{})
	require.ErrorAs(t, err, &cfgErr)
}

func TestIdeals_BenefitAndCost(t *testing.T) {
	m := topsis.DecisionMatrix{
		Criteria: topsis.Columns(),
		Routes:   []string{"A", "B", "C"},
		Values: [][]float64{
			{1, 0.1, 80, 6},
			{3, 0.3, 90, 8},
			{2, 0.2, 85, 7},
		},
	}
	iv, err := topsis.Ideals(m, topsis.DefaultClassification())
	require.NoError(t, err)
	// cost columns: positive ideal is the minimum
	assert.Equal(t, []float64{1, 0.1, 90, 6}, iv.Positive)
	assert.Equal(t, []float64{3, 0.3, 80, 8}, iv.Negative)
}

func TestIdeals_UnclassifiedAndDoubleClassified(t *testing.T) {
	m := topsis.Normalize(topsis.BuildMatrix(nil, 85, 10))

	var cfgErr *topsis.ConfigurationError
	_, err := topsis.Ideals(m, topsis.Classification{
		Benefit: []string{topsis.CritEfficiency},
		Cost:    []string{topsis.CritFuel, topsis.CritRoad}, // distance unclassified
	})
	require.ErrorAs(t, err, &cfgErr)

	_, err = topsis.Ideals(m, topsis.Classification{
		Benefit: []string{topsis.CritEfficiency, topsis.CritDistance},
		Cost:    []string{topsis.CritDistance, topsis.CritFuel, topsis.CritRoad},
	})
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Reason, "both benefit and cost")
}

func TestCloseness_InRangeAndDegenerate(t *testing.T) {
	in := topsis.Input{
		Candidates: []topsis.Candidate{
			{Name: "A", RawDistance: "10 km", RoadCondition: "8/10"},
			{Name: "B", RawDistance: "25 km", RoadCondition: "6/10"},
			{Name: "C", RawDistance: "18 km", RoadCondition: "9/10"},
		},
		CollectionEfficiency: 85,
		Mileage:              10,
	}
	ranked, err := topsis.Rank(in)
	require.NoError(t, err)
	for _, rr := range ranked {
		assert.GreaterOrEqual(t, rr.Closeness, 0.0)
		assert.LessOrEqual(t, rr.Closeness, 1.0)
	}

	// identical rows: every route coincides with both ideals
	same := []topsis.Candidate{
		{Name: "A", RawDistance: "10 km", RoadCondition: "7/10"},
		{Name: "B", RawDistance: "10 km", RoadCondition: "7/10"},
	}
	ranked, err = topsis.Rank(topsis.Input{Candidates: same, CollectionEfficiency: 85, Mileage: 10})
	require.NoError(t, err)
	for _, rr := range ranked {
		assert.InDelta(t, 0.5, rr.Closeness, tol)
	}
	// ties keep input order
	assert.Equal(t, "A", ranked[0].RouteName)
	assert.Equal(t, "B", ranked[1].RouteName)
}

func TestRank_PermutationAndOrdering(t *testing.T) {
	in := topsis.Input{
		Candidates: []topsis.Candidate{
			{Name: "North", RawDistance: "40 km", RoadCondition: "4/10"},
			{Name: "South", RawDistance: "8 km", RoadCondition: "9/10"},
			{Name: "East", RawDistance: "22 km", RoadCondition: "7/10"},
			{Name: "West", RawDistance: "15 km", RoadCondition: "6/10"},
		},
		CollectionEfficiency: 70,
		Mileage:              12,
		PetrolLeft:           ptr(60),
	}
	ranked, err := topsis.Rank(in)
	require.NoError(t, err)
	require.Len(t, ranked, 4)

	seen := map[int]bool{}
	for i, rr := range ranked {
		assert.Equal(t, i+1, rr.Rank, "rank equals position in the sorted order")
		assert.False(t, seen[rr.Rank], "ranks must not repeat")
		seen[rr.Rank] = true
		if i > 0 {
			assert.GreaterOrEqual(t, ranked[i-1].Closeness, rr.Closeness)
		}
	}
}

func TestRank_Deterministic(t *testing.T) {
	in := topsis.Input{
		Candidates: []topsis.Candidate{
			{Name: "A", RawDistance: "13.7 km", RoadCondition: "8/10"},
			{Name: "B", RawDistance: "21.2 km", RoadCondition: "5/10"},
		},
		CollectionEfficiency: 64,
		Mileage:              9.5,
		PetrolLeft:           ptr(37),
	}
	first, err := topsis.Rank(in)
	require.NoError(t, err)
	second, err := topsis.Rank(in)
	require.NoError(t, err)
	require.Equal(t, first, second, "identical input must produce bitwise-identical output")
}

func TestRank_EmptyCandidateScenario(t *testing.T) {
	ranked, err := topsis.Rank(topsis.Input{
		CollectionEfficiency: 85,
		Mileage:              10,
		PetrolLeft:           ptr(50),
	})
	require.NoError(t, err)
	require.Len(t, ranked, 4)
	names := map[string]bool{}
	for _, rr := range ranked {
		names[rr.RouteName] = true
	}
	for _, want := range []string{"Route A", "Route B", "Route C", "Route D"} {
		assert.True(t, names[want], "missing synthetic route %s", want)
	}
}

func TestDeriveWeights(t *testing.T) {
	w := topsis.DeriveWeights(topsis.Input{CollectionEfficiency: 85, PetrolLeft: ptr(60)})
	assert.InDelta(t, 0.25, w[topsis.CritDistance], tol)
	assert.InDelta(t, 0.25, w[topsis.CritRoad], tol)
	assert.InDelta(t, 0.85, w[topsis.CritEfficiency], tol)
	assert.InDelta(t, 0.60, w[topsis.CritFuel], tol)

	// absent or out-of-range petrol falls back to 0.25
	w = topsis.DeriveWeights(topsis.Input{CollectionEfficiency: 85})
	assert.InDelta(t, 0.25, w[topsis.CritFuel], tol)
	w = topsis.DeriveWeights(topsis.Input{CollectionEfficiency: 85, PetrolLeft: ptr(140)})
	assert.InDelta(t, 0.25, w[topsis.CritFuel], tol)
}

func TestConfigurationErrorIsDistinct(t *testing.T) {
	_, err := topsis.RankWith(topsis.Input{CollectionEfficiency: 85, Mileage: 10},
		topsis.Weights{topsis.CritDistance: 0.25}, topsis.DefaultClassification())
	var cfgErr *topsis.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), "topsis:")
}
