package models

// Coordinate is a WGS84 point in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// PointOfInterest is a place reported by a provider. Tags carry whatever
// attributes the provider knows about it; any of them may be missing.
type PointOfInterest struct {
	ID   string            `json:"id"`
	Loc  Coordinate        `json:"location"`
	Tags map[string]string `json:"tags,omitempty"`
}

// Tag returns the tag value or fallback when the tag is absent or blank.
func (p PointOfInterest) Tag(key, fallback string) string {
	if v, ok := p.Tags[key]; ok && v != "" {
		return v
	}
	return fallback
}

// Name is the display name of the place.
func (p PointOfInterest) Name() string {
	return p.Tag("name", "Unknown")
}

type RankedPOI struct {
	PointOfInterest
	DistanceKm float64 `json:"distance_km"`
}
