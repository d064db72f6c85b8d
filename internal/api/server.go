// Package api implements HTTP handlers and helpers for the wastenav service.
package api

import (
	"context"
	"log"

	"wastenav/internal/config"
	"wastenav/internal/model"
	"wastenav/internal/provider"
)

// WasteDataProvider supplies enriched waste data for a region. The concrete
// implementation lives in internal/provider; tests substitute stubs.
type WasteDataProvider interface {
	WasteData(ctx context.Context, state, country string) (*model.WasteData, error)
}

type Server struct {
	Cfg      config.Config
	Provider WasteDataProvider
	Broker   EventBroker
	Weights  *WeightsStore
}

// NewServer wires the provider client, response cache, and event broker from
// config. With a Redis URL both the cache and the broker go through Redis;
// otherwise everything stays in-process.
func NewServer(cfg config.Config) (*Server, error) {
	var cache provider.Cache = provider.NewMemoryCache()
	var broker EventBroker = NewBroker()
	if cfg.RedisURL != "" {
		if rc, err := provider.NewRedisCache(cfg.RedisURL); err == nil {
			cache = rc
		} else {
			log.Printf("redis cache unavailable, using memory: %v", err)
		}
		if rb, err := NewRedisBroker(cfg.RedisURL); err == nil {
			broker = rb
		} else {
			log.Printf("redis broker unavailable, using memory: %v", err)
		}
	}
	return &Server{
		Cfg:      cfg,
		Provider: provider.New(cfg.Provider, cache),
		Broker:   broker,
		Weights:  NewWeightsStore(),
	}, nil
}
