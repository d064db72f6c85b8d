package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"

	"wastenav/internal/buildinfo"
	"wastenav/internal/metrics"
	"wastenav/internal/model"
	"wastenav/internal/provider"
	"wastenav/internal/topsis"
)

// WasteDataHandler handles POST /api/solid-waste-data: region in, enriched
// provider document out.
func (s *Server) WasteDataHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req model.WasteDataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error(), r.URL.Path)
		return
	}
	if req.State == "" || req.Country == "" {
		writeProblem(w, http.StatusBadRequest, "Missing fields", "both state and country are required", r.URL.Path)
		return
	}
	data, err := s.Provider.WasteData(r.Context(), req.State, req.Country)
	if err != nil {
		var perr *provider.ParseError
		if errors.As(err, &perr) {
			writeJSON(w, http.StatusInternalServerError, Problem{
				Type:        "about:blank",
				Title:       "Failed to parse provider response",
				Status:      http.StatusInternalServerError,
				Detail:      perr.Err.Error(),
				Instance:    r.URL.Path,
				RawResponse: perr.Raw,
			})
			return
		}
		writeProblem(w, http.StatusBadGateway, "Provider error", err.Error(), r.URL.Path)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// RankHandler handles POST /v1/rank: candidate routes plus scalars in,
// closeness-ordered ranking out.
func (s *Server) RankHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req model.RankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.Rankings.WithLabelValues("bad_request").Inc()
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error(), r.URL.Path)
		return
	}
	if err := validateRankRequest(&req); err != nil {
		metrics.Rankings.WithLabelValues("bad_request").Inc()
		writeProblem(w, http.StatusBadRequest, "Invalid rank request", err.Error(), r.URL.Path)
		return
	}

	in := topsis.Input{
		CollectionEfficiency: req.CollectionEfficiency,
		Mileage:              req.Mileage,
		PetrolLeft:           req.PetrolLeft,
	}
	for _, c := range req.Candidates {
		in.Candidates = append(in.Candidates, topsis.Candidate{
			Name:          c.Name,
			RawDistance:   c.RawDistance,
			RoadCondition: c.RoadCondition,
		})
	}

	ranked, err := topsis.RankWith(in, s.Weights.WeightsFor(in), topsis.DefaultClassification())
	if err != nil {
		var cfgErr *topsis.ConfigurationError
		if errors.As(err, &cfgErr) {
			metrics.Rankings.WithLabelValues("config_error").Inc()
			writeProblem(w, http.StatusUnprocessableEntity, "Ranking configuration error", cfgErr.Reason, r.URL.Path)
			return
		}
		metrics.Rankings.WithLabelValues("error").Inc()
		writeProblem(w, http.StatusInternalServerError, "Ranking failed", err.Error(), r.URL.Path)
		return
	}

	resp := model.RankResponse{RunID: uuid.New().String()}
	for _, rr := range ranked {
		resp.Results = append(resp.Results, model.RankedRouteOut{
			RouteName: rr.RouteName,
			Closeness: rr.Closeness,
			Rank:      rr.Rank,
		})
	}
	metrics.Rankings.WithLabelValues("ok").Inc()
	metrics.RankedRoutes.Observe(float64(len(resp.Results)))

	s.Broker.Publish(TopicRankings, Event{Type: "ranking.completed", Data: map[string]any{
		"runId":  resp.RunID,
		"routes": len(resp.Results),
		"best":   resp.Results[0].RouteName,
		"ts":     time.Now().UTC().Format(time.RFC3339),
	}})
	writeJSON(w, http.StatusOK, resp)
}

// WeightsConfigHandler handles GET/PUT /v1/admin/weights.
func (s *Server) WeightsConfigHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.Weights.Get())
	case http.MethodPut:
		var cfg model.WeightsConfig
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error(), r.URL.Path)
			return
		}
		if err := validateWeightsConfig(&cfg); err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid weights", err.Error(), r.URL.Path)
			return
		}
		s.Weights.Set(cfg)
		writeJSON(w, http.StatusOK, cfg)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) HealthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) ReadyHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// DebugHandler reports build info and the effective non-secret config.
func (s *Server) DebugHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"build": buildinfo.Info(),
		"time":  time.Now().UTC().Format(time.RFC3339),
		"config": map[string]any{
			"PORT":          s.Cfg.Port,
			"ALLOW_ORIGINS": s.Cfg.AllowOrigins,
			"RATE_RPS":      s.Cfg.RateRPS,
			"RATE_BURST":    s.Cfg.RateBurst,
			"PROVIDER":      s.Cfg.Provider.Model,
			"HAS_REDIS_URL": s.Cfg.RedisURL != "",
			"HAS_API_KEY":   s.Cfg.Provider.APIKey != "" || os.Getenv("GOOGLE_API_KEY") != "",
		},
	})
}
