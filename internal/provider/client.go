// Package provider talks to the upstream generative waste-data service. It
// owns all the free-form text handling (prompting, code-fence stripping,
// tolerant JSON decoding) so the ranking engine only ever sees typed fields.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"wastenav/internal/config"
	"wastenav/internal/metrics"
	"wastenav/internal/model"
)

// Client calls the Generative Language API and caches responses per region.
type Client struct {
	cfg   config.Provider
	http  *http.Client
	cache Cache
	ttl   time.Duration
}

// New builds a Client. cache may be nil to disable caching.
func New(cfg config.Provider, cache Cache) *Client {
	timeout := 30 * time.Second
	if cfg.TimeoutSec > 0 {
		timeout = time.Duration(cfg.TimeoutSec) * time.Second
	}
	ttl := 10 * time.Minute
	if cfg.CacheTTLSec > 0 {
		ttl = time.Duration(cfg.CacheTTLSec) * time.Second
	}
	return &Client{cfg: cfg, http: &http.Client{Timeout: timeout}, cache: cache, ttl: ttl}
}

// ParseError reports an upstream reply that was not valid JSON after fence
// stripping. Raw carries the stripped text for the error response body.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string { return "provider: parse reply: " + e.Err.Error() }
func (e *ParseError) Unwrap() error { return e.Err }

// generateContent request/response shapes (the subset we use).
type genRequest struct {
	Contents []genContent `json:"contents"`
}
type genContent struct {
	Parts []genPart `json:"parts"`
}
type genPart struct {
	Text string `json:"text"`
}
type genResponse struct {
	Candidates []struct {
		Content genContent `json:"content"`
	} `json:"candidates"`
}

// WasteData fetches (or serves from cache) the enriched waste document for a
// state/country pair.
func (c *Client) WasteData(ctx context.Context, state, country string) (*model.WasteData, error) {
	key := cacheKey(state, country)
	if c.cache != nil {
		if raw, ok := c.cache.Get(ctx, key); ok {
			var cached model.WasteData
			if err := json.Unmarshal(raw, &cached); err == nil {
				metrics.ProviderRequests.WithLabelValues("cache_hit").Inc()
				return &cached, nil
			}
		}
	}

	start := time.Now()
	data, err := c.generate(ctx, state, country)
	metrics.ProviderLatency.Observe(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.ProviderRequests.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.ProviderRequests.WithLabelValues("ok").Inc()

	if c.cache != nil {
		if raw, err := json.Marshal(data); err == nil {
			c.cache.Set(ctx, key, raw, c.ttl)
		}
	}
	return data, nil
}

func (c *Client) generate(ctx context.Context, state, country string) (*model.WasteData, error) {
	body, _ := json.Marshal(genRequest{
		Contents: []genContent{{Parts: []genPart{{Text: buildPrompt(state, country)}}}},
	})
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		strings.TrimSuffix(c.cfg.Endpoint, "/"), c.cfg.Model, c.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider: status %d", resp.StatusCode)
	}

	var gr genResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return nil, fmt.Errorf("provider: decode envelope: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("provider: empty reply")
	}

	text := StripFences(gr.Candidates[0].Content.Parts[0].Text)
	var data model.WasteData
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		return nil, &ParseError{Raw: text, Err: err}
	}
	return &data, nil
}

// StripFences removes the Markdown code fences models wrap JSON replies in.
// The prefix variants match what the upstream has been observed to emit.
func StripFences(s string) string {
	t := strings.TrimSpace(s)
	for _, prefix := range []string{"```json", "``` JSON", "```JSON", "```"} {
		if strings.HasPrefix(t, prefix) {
			t = strings.TrimPrefix(t, prefix)
			t = strings.TrimSuffix(strings.TrimSpace(t), "```")
			return strings.TrimSpace(t)
		}
	}
	return t
}

func cacheKey(state, country string) string {
	return "wastedata:" + strings.ToLower(state) + "|" + strings.ToLower(country)
}

func buildPrompt(state, country string) string {
	return fmt.Sprintf(`Generate detailed solid waste data for %s, %s.
Make sure to give precise latitude and longitude coordinates for the state and landfills it is mandatory.
For every landfill include the road distance from the state capital with a unit (e.g. "12.4 km")
and the road condition as a score out of ten (e.g. "7/10").
Return the response in the following JSON format:
{
    "state": "%s",
    "country": "%s",
    "total_waste_generated": "Total waste generated in metric tons/year",
    "waste_composition": {
        "organic": "Percentage of organic waste",
        "plastic": "Percentage of plastic waste",
        "paper": "Percentage of paper waste",
        "metal": "Percentage of metal waste",
        "glass": "Percentage of glass waste",
        "other": "Percentage of other waste"
    },
    "recycling_rate": "Recycling rate in percentage",
    "waste_management_methods": {
        "landfill": "Percentage of waste managed through landfill",
        "recycling": "Percentage of waste recycled",
        "composting": "Percentage of waste composted",
        "incineration": "Percentage of waste incinerated"
    },
    "key_challenges": ["Challenge 1", "Challenge 2"],
    "initiatives": ["Initiative 1", "Initiative 2"],
    "data_year": "Year of data, if available",
    "coordinates": {
        "state_lat": "Latitude of the state",
        "state_lon": "Longitude of the state",
        "landfills": [
            {
                "lat": "Latitude of landfill 1",
                "lon": "Longitude of landfill 1",
                "name": "Name of landfill 1",
                "distance": "Road distance to landfill 1",
                "road_condition": "Road condition score of landfill 1"
            }
        ]
    }
}`, state, country, state, country)
}
