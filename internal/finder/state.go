package finder

import (
	"explorekit/internal/calculator"
	"explorekit/internal/models"
	"explorekit/internal/pager"
)

// State is one user's finder session. It keeps the candidates returned by
// the last successful search so the view radius can change without another
// network round trip.
type State struct {
	Query      string
	Place      string
	Origin     *models.Coordinate
	Candidates []models.PointOfInterest
	Ranked     []models.RankedPOI
	Pager      pager.Pager
	ViewRadius float64
}

// NewState returns an empty state with the given initial view radius.
func NewState(viewRadius float64) *State {
	return &State{ViewRadius: calculator.ClampViewRadius(viewRadius), Pager: pager.New(0)}
}

// Apply installs a fresh search result, re-ranks it and returns to page 1.
func (s *State) Apply(query, place string, origin models.Coordinate, candidates []models.PointOfInterest, ceilingKm float64) {
	s.Query = query
	s.Place = place
	s.Origin = &origin
	s.Candidates = candidates
	s.Ranked = calculator.Rank(origin, candidates, ceilingKm)
	s.Pager = pager.New(len(s.Ranked))
}

// Reset clears results after a failed provider call so nothing stale is
// shown. The view radius is a user preference and is kept.
func (s *State) Reset(query string) {
	s.Query = query
	s.Place = ""
	s.Origin = nil
	s.Candidates = nil
	s.Ranked = nil
	s.Pager = pager.New(0)
}

// SetViewRadius clamps and stores the map radius and returns the value used.
func (s *State) SetViewRadius(meters float64) float64 {
	s.ViewRadius = calculator.ClampViewRadius(meters)
	return s.ViewRadius
}

// MapView is what a map renderer draws.
type MapView struct {
	Origin     models.Coordinate        `json:"origin"`
	RadiusM    float64                  `json:"radius_m"`
	Markers    []models.PointOfInterest `json:"markers"`
	Candidates int                      `json:"candidates"`
}

// Map returns the candidates inside the view radius. ok is false when no
// search has succeeded yet.
func (s *State) Map() (view MapView, ok bool) {
	if s.Origin == nil {
		return MapView{}, false
	}
	return MapView{
		Origin:     *s.Origin,
		RadiusM:    s.ViewRadius,
		Markers:    calculator.WithinRadius(*s.Origin, s.Candidates, s.ViewRadius),
		Candidates: len(s.Candidates),
	}, true
}

// Entry is one line of the ranked list with the fields users see.
type Entry struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	DistanceKm   float64           `json:"distance_km"`
	Cuisine      string            `json:"cuisine"`
	Address      string            `json:"address"`
	Phone        string            `json:"phone"`
	Website      string            `json:"website"`
	OpeningHours string            `json:"opening_hours"`
	Location     models.Coordinate `json:"location"`
}

func newEntry(p models.RankedPOI) Entry {
	address := p.Tag("addr:street", "N/A")
	if n := p.Tag("addr:housenumber", ""); n != "" {
		address += " " + n
	}
	return Entry{
		ID:           p.ID,
		Name:         p.Name(),
		DistanceKm:   p.DistanceKm,
		Cuisine:      p.Tag("cuisine", "N/A"),
		Address:      address,
		Phone:        p.Tag("phone", "N/A"),
		Website:      p.Tag("website", "N/A"),
		OpeningHours: p.Tag("opening_hours", "N/A"),
		Location:     p.Loc,
	}
}

// Listing is the current page of the ranked list.
type Listing struct {
	Query   string     `json:"query"`
	Place   string     `json:"place,omitempty"`
	Entries []Entry    `json:"entries"`
	Page    pager.Info `json:"page"`
}

func (s *State) Listing() Listing {
	page := pager.Slice(s.Ranked, s.Pager)
	entries := make([]Entry, len(page))
	for i, p := range page {
		entries[i] = newEntry(p)
	}
	return Listing{Query: s.Query, Place: s.Place, Entries: entries, Page: s.Pager.Info()}
}
