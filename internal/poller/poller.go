// Package poller keeps the snapshot current. A long timer re-fetches
// the upstream planning feed and rebuilds the floor listings; a short
// timer re-derives statuses in place so the occupied/free boundary
// stays accurate between network round-trips.
package poller

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"epiroom-backend/config"
	"epiroom-backend/internal/floorplan"
	"epiroom-backend/internal/model"
	"epiroom-backend/internal/store"
)

// Service orchestrates the periodic fetch and refresh cycles.
type Service struct {
	cfg      *config.Config
	registry *floorplan.Registry
	snap     *store.Snapshot
	client   *http.Client

	// now is the reference clock, injectable so cycles are testable
	// without wall-clock dependence.
	now func() time.Time
}

// NewService creates and initializes a new poller service.
func NewService(cfg *config.Config, registry *floorplan.Registry, snap *store.Snapshot) *Service {
	var transport http.RoundTripper = &http.Transport{}
	if cfg.Upstream.HTTPProxy != "" {
		proxyURL, err := url.Parse(cfg.Upstream.HTTPProxy)
		if err != nil {
			log.Printf("Warning: invalid proxy URL %q: %v. Poller will not use a proxy.", cfg.Upstream.HTTPProxy, err)
		} else {
			transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
		}
	}

	return &Service{
		cfg:      cfg,
		registry: registry,
		snap:     snap,
		client: &http.Client{
			Transport: transport,
			Timeout:   time.Duration(cfg.Upstream.TimeoutSeconds) * time.Second,
		},
		now: time.Now,
	}
}

// Run starts both refresh loops and blocks until the context is
// canceled. Each tick is a fast synchronous computation; ticks are never
// queued or deduplicated.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Poller.Enabled {
		log.Println("Poller is disabled. Not starting.")
		return
	}
	log.Println("Starting poller service...")

	if err := s.FetchOnce(ctx); err != nil {
		log.Printf("Initial fetch failed: %v", err)
	}

	fetchTicker := time.NewTicker(s.cfg.Poller.FetchInterval)
	defer fetchTicker.Stop()
	refreshTicker := time.NewTicker(s.cfg.Poller.RefreshInterval)
	defer refreshTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Poller service shutting down.")
			return
		case <-fetchTicker.C:
			if err := s.FetchOnce(ctx); err != nil {
				log.Printf("Fetch cycle failed, keeping previous listings: %v", err)
			}
		case <-refreshTicker.C:
			s.snap.Reclassify(s.now())
		}
	}
}

// FetchOnce fetches today's planning feed, rebuilds the floor listings
// from scratch, and replaces the snapshot. On failure the previous
// snapshot is left untouched.
func (s *Service) FetchOnce(ctx context.Context) error {
	now := s.now()
	date := now.Format("2006-01-02")

	activities, err := s.fetchActivities(ctx, date, date)
	if err != nil {
		return err
	}

	listings := floorplan.Aggregate(activities, s.registry, now)
	s.snap.Replace(listings, now)
	log.Printf("Fetch cycle finished: %d activities across %d floors", len(activities), len(listings))
	return nil
}

// fetchActivities performs one GET against the upstream planning API for
// the given date range.
func (s *Service) fetchActivities(ctx context.Context, startDate, endDate string) ([]model.Activity, error) {
	u, err := url.Parse(s.cfg.Upstream.PlanningURL)
	if err != nil {
		return nil, fmt.Errorf("invalid planning URL: %w", err)
	}
	q := u.Query()
	q.Set("startDate", startDate)
	q.Set("endDate", endDate)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for key, value := range s.cfg.Upstream.Headers {
		req.Header.Set(key, value)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received non-200 status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var planning model.PlanningResponse
	if err := json.Unmarshal(body, &planning); err != nil {
		return nil, fmt.Errorf("failed to unmarshal planning response: %w", err)
	}

	return planning.Activities, nil
}
