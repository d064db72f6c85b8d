package model

// Request/response types for the waste-data and ranking endpoints.

// WasteDataRequest selects the region to generate data for.
type WasteDataRequest struct {
	State   string `json:"state"`
	Country string `json:"country"`
}

// WasteData is the enriched document produced by the upstream generative
// provider. Numeric-looking fields stay strings because the provider returns
// free-form values like "12.4 metric tons/year"; the ranking engine does its
// own tolerant parsing.
type WasteData struct {
	State                  string            `json:"state"`
	Country                string            `json:"country"`
	TotalWasteGenerated    string            `json:"total_waste_generated,omitempty"`
	WasteComposition       map[string]string `json:"waste_composition,omitempty"`
	RecyclingRate          string            `json:"recycling_rate,omitempty"`
	WasteManagementMethods map[string]string `json:"waste_management_methods,omitempty"`
	KeyChallenges          []string          `json:"key_challenges,omitempty"`
	Initiatives            []string          `json:"initiatives,omitempty"`
	DataYear               string            `json:"data_year,omitempty"`
	Coordinates            *Coordinates      `json:"coordinates,omitempty"`
}

// Coordinates anchors the state and its candidate landfill destinations.
type Coordinates struct {
	StateLat  string     `json:"state_lat"`
	StateLon  string     `json:"state_lon"`
	Landfills []Landfill `json:"landfills,omitempty"`
}

// Landfill is one candidate destination. Distance and RoadCondition are raw
// provider strings ("12.4 km", "7/10") and may be malformed or absent.
type Landfill struct {
	Name          string `json:"name"`
	Lat           string `json:"lat,omitempty"`
	Lon           string `json:"lon,omitempty"`
	Distance      string `json:"distance,omitempty"`
	RoadCondition string `json:"road_condition,omitempty"`
}

// RankRequest is the input of POST /v1/rank.
type RankRequest struct {
	Candidates           []CandidateIn `json:"candidates"`
	CollectionEfficiency float64       `json:"collection_efficiency"`
	Mileage              float64       `json:"mileage"`
	PetrolLeft           *float64      `json:"petrol_left,omitempty"`
}

// CandidateIn is one candidate route in a RankRequest.
type CandidateIn struct {
	Name          string `json:"name"`
	RawDistance   string `json:"raw_distance,omitempty"`
	RoadCondition string `json:"road_condition,omitempty"`
}

// RankedRouteOut is one entry of the ranking response, ordered by closeness
// descending.
type RankedRouteOut struct {
	RouteName string  `json:"route_name"`
	Closeness float64 `json:"closeness_coefficient"`
	Rank      int     `json:"rank"`
}

// RankResponse is the output of POST /v1/rank.
type RankResponse struct {
	RunID   string           `json:"runId"`
	Results []RankedRouteOut `json:"results"`
}

// WeightsConfig is the runtime-adjustable default weight profile served by
// the admin endpoint.
type WeightsConfig struct {
	Distance      float64 `json:"distance_km"`
	RoadCondition float64 `json:"road_condition"`
}
