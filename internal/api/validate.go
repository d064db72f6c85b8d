package api

import (
	"fmt"

	"wastenav/internal/model"
)

// validateRankRequest checks the structural contract of a rank request.
// Noisy candidate fields (distance, road condition) are deliberately not
// validated here; the engine substitutes defaults for those.
func validateRankRequest(req *model.RankRequest) error {
	if req.CollectionEfficiency < 0 || req.CollectionEfficiency > 100 {
		return fmt.Errorf("collection_efficiency must be in [0,100]")
	}
	if req.Mileage < 0 {
		return fmt.Errorf("mileage must be >= 0")
	}
	for i, c := range req.Candidates {
		if c.Name == "" {
			return fmt.Errorf("candidates[%d]: name is required", i)
		}
	}
	return nil
}

func validateWeightsConfig(cfg *model.WeightsConfig) error {
	if cfg.Distance <= 0 {
		return fmt.Errorf("distance_km weight must be > 0")
	}
	if cfg.RoadCondition <= 0 {
		return fmt.Errorf("road_condition weight must be > 0")
	}
	return nil
}
