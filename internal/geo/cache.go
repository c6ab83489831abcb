package geo

import (
	"context"
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"explorekit/internal/models"
)

// CachedGeocoder remembers successful lookups for a while. Misses are not
// cached so a corrected query is retried.
type CachedGeocoder struct {
	next  Geocoder
	cache *gocache.Cache
}

func NewCachedGeocoder(next Geocoder, ttl time.Duration) *CachedGeocoder {
	return &CachedGeocoder{next: next, cache: gocache.New(ttl, 2*ttl)}
}

func (c *CachedGeocoder) Geocode(ctx context.Context, query string) (Location, error) {
	key := strings.ToLower(strings.Join(strings.Fields(query), " "))
	if v, found := c.cache.Get(key); found {
		return v.(Location), nil
	}
	loc, err := c.next.Geocode(ctx, query)
	if err != nil {
		return Location{}, err
	}
	c.cache.SetDefault(key, loc)
	return loc, nil
}

// CachedProvider remembers provider answers per rounded origin and radius.
// Errors and empty answers are not cached.
type CachedProvider struct {
	next  Provider
	cache *gocache.Cache
}

func NewCachedProvider(next Provider, ttl time.Duration) *CachedProvider {
	return &CachedProvider{next: next, cache: gocache.New(ttl, 2*ttl)}
}

func (c *CachedProvider) Nearby(ctx context.Context, origin models.Coordinate, radiusMeters int) ([]models.PointOfInterest, error) {
	// Five decimals is roughly one meter.
	key := fmt.Sprintf("%.5f,%.5f,%d", origin.Lat, origin.Lon, radiusMeters)
	if v, found := c.cache.Get(key); found {
		return v.([]models.PointOfInterest), nil
	}
	pois, err := c.next.Nearby(ctx, origin, radiusMeters)
	if err != nil || len(pois) == 0 {
		return pois, err
	}
	c.cache.SetDefault(key, pois)
	return pois, nil
}
