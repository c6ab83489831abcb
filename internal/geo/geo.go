// Package geo talks to the services the food finder depends on: a geocoder
// for free-text places and providers of nearby points of interest.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"explorekit/internal/models"
)

// ErrNotFound is returned when a geocoder has no match for the query.
var ErrNotFound = errors.New("location not found")

// Location is a geocoded place.
type Location struct {
	models.Coordinate
	DisplayName string `json:"display_name"`
}

type Geocoder interface {
	Geocode(ctx context.Context, query string) (Location, error)
}

// Provider lists points of interest within radiusMeters of origin. The
// returned points already carry a single resolved location each.
type Provider interface {
	Nearby(ctx context.Context, origin models.Coordinate, radiusMeters int) ([]models.PointOfInterest, error)
}

const maxResponseBytes = 8 << 20

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// doJSON sends req and decodes a 2xx JSON body into out.
func doJSON(client *http.Client, req *http.Request, userAgent string, out any) error {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", req.URL.Host, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status from %s: %s", req.URL.Host, resp.Status)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", req.URL.Host, err)
	}
	return nil
}
