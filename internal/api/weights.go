package api

import (
	"sync"

	"wastenav/internal/model"
	"wastenav/internal/topsis"
)

// WeightsStore holds the runtime-adjustable base weight profile for the
// distance and road-condition criteria. The efficiency and fuel weights are
// always derived per request, so only the two fixed weights are tunable.
type WeightsStore struct {
	mu  sync.Mutex
	cfg model.WeightsConfig
}

func NewWeightsStore() *WeightsStore {
	return &WeightsStore{cfg: model.WeightsConfig{Distance: 0.25, RoadCondition: 0.25}}
}

func (s *WeightsStore) Get() model.WeightsConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

func (s *WeightsStore) Set(cfg model.WeightsConfig) {
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
}

// WeightsFor merges the stored base profile with the per-request derived
// weights (efficiency/100, petrol_left/100 with its documented default).
func (s *WeightsStore) WeightsFor(in topsis.Input) topsis.Weights {
	base := s.Get()
	w := topsis.DeriveWeights(in)
	w[topsis.CritDistance] = base.Distance
	w[topsis.CritRoad] = base.RoadCondition
	return w
}
