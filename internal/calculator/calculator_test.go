package calculator

import (
	"math"
	"testing"

	"explorekit/internal/models"
)

var singapore = models.Coordinate{Lat: 1.3521, Lon: 103.8198}

// offsetNorth returns a point roughly km kilometers north of c.
func offsetNorth(c models.Coordinate, km float64) models.Coordinate {
	return models.Coordinate{Lat: c.Lat + km/(earthRadius/1000.0)*180/math.Pi, Lon: c.Lon}
}

func poi(id string, loc models.Coordinate) models.PointOfInterest {
	return models.PointOfInterest{ID: id, Loc: loc, Tags: map[string]string{"name": id}}
}

func TestHaversine(t *testing.T) {
	if d := Haversine(singapore, singapore); d != 0 {
		t.Errorf("expected zero distance, got %f", d)
	}

	// One degree of latitude is ~111.19 km on the mean-radius sphere
	d := Haversine(models.Coordinate{Lat: 0, Lon: 0}, models.Coordinate{Lat: 1, Lon: 0})
	if math.Abs(d-111195) > 1 {
		t.Errorf("expected ~111195m, got %f", d)
	}

	if got, want := DistanceKm(singapore, offsetNorth(singapore, 2)), 2.0; math.Abs(got-want) > 1e-6 {
		t.Errorf("expected %fkm, got %f", want, got)
	}
}

func TestRank_ExcludesBeyondCeiling(t *testing.T) {
	pois := []models.PointOfInterest{
		poi("far", offsetNorth(singapore, 6.2)),
		poi("near", offsetNorth(singapore, 1)),
	}

	ranked := Rank(singapore, pois, RankingCeilingKm)
	if len(ranked) != 1 || ranked[0].ID != "near" {
		t.Fatalf("expected only the near candidate, got %+v", ranked)
	}

	if inside := WithinRadius(singapore, pois, MaxViewRadius); len(inside) != 1 || inside[0].ID != "near" {
		t.Errorf("expected far candidate excluded from the view radius, got %+v", inside)
	}
}

func TestRank_SortedAndStable(t *testing.T) {
	pois := []models.PointOfInterest{
		poi("c", offsetNorth(singapore, 3)),
		poi("a1", offsetNorth(singapore, 0.5)),
		poi("b", offsetNorth(singapore, 2)),
		poi("a2", offsetNorth(singapore, 0.5)),
		poi("edge", offsetNorth(singapore, 4.999)),
	}

	ranked := Rank(singapore, pois, RankingCeilingKm)
	want := []string{"a1", "a2", "b", "c", "edge"}
	if len(ranked) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(ranked))
	}
	for i, id := range want {
		if ranked[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, ranked[i].ID)
		}
		if ranked[i].DistanceKm > RankingCeilingKm+1e-9 {
			t.Errorf("%s beyond ceiling: %f", ranked[i].ID, ranked[i].DistanceKm)
		}
		if i > 0 && ranked[i].DistanceKm < ranked[i-1].DistanceKm {
			t.Errorf("not sorted at %d", i)
		}
	}
}

func TestRank_Empty(t *testing.T) {
	if ranked := Rank(singapore, nil, RankingCeilingKm); len(ranked) != 0 {
		t.Errorf("expected empty ranking, got %d", len(ranked))
	}
}

func TestWithinRadius_KeepsInputOrder(t *testing.T) {
	pois := []models.PointOfInterest{
		poi("800m", offsetNorth(singapore, 0.8)),
		poi("300m", offsetNorth(singapore, 0.3)),
		poi("1500m", offsetNorth(singapore, 1.5)),
	}

	inside := WithinRadius(singapore, pois, 1000)
	if len(inside) != 2 || inside[0].ID != "800m" || inside[1].ID != "300m" {
		t.Errorf("unexpected view set: %+v", inside)
	}

	if inside := WithinRadius(singapore, pois, MinViewRadius); len(inside) != 0 {
		t.Errorf("expected nothing within 100m, got %d", len(inside))
	}
}

func TestClampViewRadius(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{50, MinViewRadius},
		{100, 100},
		{2500, 2500},
		{5000, 5000},
		{9000, MaxViewRadius},
	}
	for _, tt := range tests {
		if got := ClampViewRadius(tt.in); got != tt.want {
			t.Errorf("ClampViewRadius(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
