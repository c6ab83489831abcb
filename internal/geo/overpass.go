package geo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"explorekit/internal/models"
)

// Overpass queries an Overpass API interpreter for amenities around a point.
type Overpass struct {
	endpoint   string
	userAgent  string
	amenity    string
	maxResults int
	httpClient *http.Client
}

func NewOverpass(endpoint, userAgent, amenity string, maxResults int, timeout time.Duration) *Overpass {
	return &Overpass{
		endpoint:   endpoint,
		userAgent:  userAgent,
		amenity:    amenity,
		maxResults: maxResults,
		httpClient: newHTTPClient(timeout),
	}
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	Type   string             `json:"type"`
	ID     int64              `json:"id"`
	Lat    *float64           `json:"lat"`
	Lon    *float64           `json:"lon"`
	Center *models.Coordinate `json:"center"`
	Tags   map[string]string  `json:"tags"`
}

// Query builds the Overpass QL for nodes, ways and relations tagged with
// the amenity. Ways and relations are reported by their center.
func (o *Overpass) Query(origin models.Coordinate, radiusMeters int) string {
	around := fmt.Sprintf("(around:%d,%s,%s)", radiusMeters,
		strconv.FormatFloat(origin.Lat, 'f', -1, 64),
		strconv.FormatFloat(origin.Lon, 'f', -1, 64))
	filter := fmt.Sprintf(`["amenity"=%q]`, o.amenity)

	var b strings.Builder
	b.WriteString("[out:json][timeout:25];\n(\n")
	for _, kind := range []string{"node", "way", "relation"} {
		b.WriteString("  " + kind + filter + around + ";\n")
	}
	b.WriteString(");\n")
	if o.maxResults > 0 {
		fmt.Fprintf(&b, "out center %d;", o.maxResults)
	} else {
		b.WriteString("out center;")
	}
	return b.String()
}

func (o *Overpass) Nearby(ctx context.Context, origin models.Coordinate, radiusMeters int) ([]models.PointOfInterest, error) {
	form := url.Values{}
	form.Set("data", o.Query(origin, radiusMeters))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var resp overpassResponse
	if err := doJSON(o.httpClient, req, o.userAgent, &resp); err != nil {
		return nil, err
	}

	pois := make([]models.PointOfInterest, 0, len(resp.Elements))
	for _, el := range resp.Elements {
		loc, ok := el.location()
		if !ok {
			continue
		}
		pois = append(pois, models.PointOfInterest{
			ID:   el.Type + "/" + strconv.FormatInt(el.ID, 10),
			Loc:  loc,
			Tags: el.Tags,
		})
	}
	return pois, nil
}

// location prefers the computed center over the element's own point.
func (el overpassElement) location() (models.Coordinate, bool) {
	if el.Center != nil {
		return *el.Center, true
	}
	if el.Lat != nil && el.Lon != nil {
		return models.Coordinate{Lat: *el.Lat, Lon: *el.Lon}, true
	}
	return models.Coordinate{}, false
}
