// Package finder runs the food-finder flow: geocode a place, fetch nearby
// restaurants once, rank and page them, and filter them for the map.
package finder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"explorekit/internal/geo"
)

// ErrNoCandidates means the provider answered but found nothing nearby.
var ErrNoCandidates = errors.New("no food options found nearby")

// ProviderError wraps a failed provider call.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string { return "points of interest lookup failed: " + e.Err.Error() }

func (e *ProviderError) Unwrap() error { return e.Err }

type Options struct {
	SearchRadiusMeters int
	RankingCeilingKm   float64
}

type Service struct {
	geocoder geo.Geocoder
	provider geo.Provider
	opts     Options
	logger   *slog.Logger
}

func NewService(geocoder geo.Geocoder, provider geo.Provider, opts Options, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{geocoder: geocoder, provider: provider, opts: opts, logger: logger}
}

// Search looks up query and refreshes st.
//
// A geocoding failure returns an error and leaves st as it was. A provider
// failure or an empty answer resets st and returns ProviderError or
// ErrNoCandidates.
func (s *Service) Search(ctx context.Context, st *State, query string) error {
	loc, err := s.geocoder.Geocode(ctx, query)
	if err != nil {
		s.logger.Info("geocode failed", "query", query, "error", err)
		return fmt.Errorf("geocode %q: %w", query, err)
	}

	pois, err := s.provider.Nearby(ctx, loc.Coordinate, s.opts.SearchRadiusMeters)
	if err != nil {
		st.Reset(query)
		s.logger.Warn("provider failed", "query", query, "error", err)
		return &ProviderError{Err: err}
	}
	if len(pois) == 0 {
		st.Reset(query)
		return fmt.Errorf("%w within %dm of %q", ErrNoCandidates, s.opts.SearchRadiusMeters, query)
	}

	st.Apply(query, loc.DisplayName, loc.Coordinate, pois, s.opts.RankingCeilingKm)
	s.logger.Debug("search complete", "query", query, "candidates", len(pois), "ranked", len(st.Ranked))
	return nil
}
