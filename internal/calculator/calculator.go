package calculator

import (
	"sort"

	"explorekit/internal/models"
)

const (
	// RankingCeilingKm is the default cut-off for the ranked list.
	RankingCeilingKm = 5.0

	MinViewRadius     = 100.0
	MaxViewRadius     = 5000.0
	DefaultViewRadius = 1000.0
	ViewRadiusStep    = 100.0
)

// Rank measures every candidate from origin, drops the ones further than
// ceilingKm and orders the rest nearest first. Candidates at equal distance
// keep their input order.
func Rank(origin models.Coordinate, pois []models.PointOfInterest, ceilingKm float64) []models.RankedPOI {
	ranked := make([]models.RankedPOI, 0, len(pois))
	for _, p := range pois {
		d := DistanceKm(origin, p.Loc)
		if d > ceilingKm {
			continue
		}
		ranked = append(ranked, models.RankedPOI{PointOfInterest: p, DistanceKm: d})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	})
	return ranked
}

// WithinRadius returns the candidates no further than radiusMeters from
// origin, in input order.
func WithinRadius(origin models.Coordinate, pois []models.PointOfInterest, radiusMeters float64) []models.PointOfInterest {
	var inside []models.PointOfInterest
	for _, p := range pois {
		if Haversine(origin, p.Loc) <= radiusMeters {
			inside = append(inside, p)
		}
	}
	return inside
}

// ClampViewRadius bounds a display radius to [MinViewRadius, MaxViewRadius].
func ClampViewRadius(meters float64) float64 {
	switch {
	case meters < MinViewRadius:
		return MinViewRadius
	case meters > MaxViewRadius:
		return MaxViewRadius
	}
	return meters
}
