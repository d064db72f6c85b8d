package topsis

import (
	"strconv"
	"strings"
)

// Default substitutions for noisy provider data.
const (
	DefaultDistanceKm = 20.0 // used when the raw distance is absent or unparsable
	DefaultRoadScore  = 7.0  // used when the "N/M" road condition is unparsable
	fallbackDivisor   = 10.0 // fuel divisor when mileage is not positive
)

// fallbackRoutes is the fixed synthetic matrix used when the provider returns
// no candidates, so the pipeline never sees an empty matrix. Fuel values
// assume the fallback mileage of 10 km per unit.
var fallbackRoutes = []struct {
	name     string
	distance float64
	fuel     float64
	road     float64
}{
	{"Route A", 12.5, 1.25, 8},
	{"Route B", 18.0, 1.80, 7},
	{"Route C", 22.5, 2.25, 6},
	{"Route D", 30.0, 3.00, 9},
}

// BuildMatrix converts raw candidates plus the global scalars into a numeric
// decision matrix with the canonical column order. Malformed fields never
// fail the build; they degrade to the documented defaults.
func BuildMatrix(cands []Candidate, efficiency, mileage float64) DecisionMatrix {
	m := DecisionMatrix{Criteria: Columns()}
	if len(cands) == 0 {
		for _, f := range fallbackRoutes {
			m.Routes = append(m.Routes, f.name)
			m.Values = append(m.Values, []float64{f.distance, f.fuel, efficiency, f.road})
		}
		return m
	}
	for _, c := range cands {
		dist := parseDistance(c.RawDistance)
		fuel := dist / fallbackDivisor
		if mileage > 0 {
			fuel = dist / mileage
		}
		road := parseRoadScore(c.RoadCondition)
		m.Routes = append(m.Routes, c.Name)
		m.Values = append(m.Values, []float64{dist, fuel, efficiency, road})
	}
	return m
}

// parseDistance extracts the leading numeric part of a raw distance string,
// ignoring any trailing unit text ("12.4 km" -> 12.4). Absent or unparsable
// values become DefaultDistanceKm.
func parseDistance(raw string) float64 {
	s := strings.TrimSpace(raw)
	i := 0
	for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '.') {
		i++
	}
	v, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return DefaultDistanceKm
	}
	return v
}

// parseRoadScore reads the numerator of an "N/M" score string. Anything that
// does not parse becomes DefaultRoadScore.
func parseRoadScore(raw string) float64 {
	num, _, _ := strings.Cut(strings.TrimSpace(raw), "/")
	v, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return DefaultRoadScore
	}
	return v
}
