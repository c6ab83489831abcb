package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/olivere/elastic/v7"

	"explorekit/internal/models"
)

// Elastic serves points of interest from a self-hosted Elasticsearch index
// whose documents carry a geo_point "location" field.
type Elastic struct {
	Client *elastic.Client
	Index  string
	Size   int
}

type placeDoc struct {
	Name         string           `json:"name"`
	Address      string           `json:"address"`
	Phone        string           `json:"phone"`
	Cuisine      string           `json:"cuisine"`
	Website      string           `json:"website"`
	OpeningHours string           `json:"opening_hours"`
	Location     elastic.GeoPoint `json:"location"`
}

// NewElastic connects without sniffing so single-node and proxied
// deployments work.
func NewElastic(url, index string, size int) (*Elastic, error) {
	client, err := elastic.NewClient(
		elastic.SetURL(url),
		elastic.SetSniff(false),
		elastic.SetHealthcheck(false),
	)
	if err != nil {
		return nil, fmt.Errorf("create elastic client: %w", err)
	}
	return &Elastic{Client: client, Index: index, Size: size}, nil
}

func (es *Elastic) Nearby(ctx context.Context, origin models.Coordinate, radiusMeters int) ([]models.PointOfInterest, error) {
	within := elastic.NewGeoDistanceQuery("location").
		Lat(origin.Lat).
		Lon(origin.Lon).
		Distance(fmt.Sprintf("%dm", radiusMeters))

	searchResult, err := es.Client.Search().
		Index(es.Index).
		Query(elastic.NewBoolQuery().Filter(within)).
		SortBy(elastic.NewGeoDistanceSort("location").
			Point(origin.Lat, origin.Lon).
			Asc().
			Unit("km").
			DistanceType("arc").
			IgnoreUnmapped(true)).
		Size(es.Size).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", es.Index, err)
	}

	var pois []models.PointOfInterest
	for _, hit := range searchResult.Hits.Hits {
		var doc placeDoc
		if err := json.Unmarshal(hit.Source, &doc); err != nil {
			slog.Warn("skipping unreadable place", "index", es.Index, "id", hit.Id, "error", err)
			continue
		}
		pois = append(pois, doc.toPOI(hit.Id))
	}
	return pois, nil
}

func (d placeDoc) toPOI(id string) models.PointOfInterest {
	tags := make(map[string]string)
	for k, v := range map[string]string{
		"name":          d.Name,
		"addr:street":   d.Address,
		"phone":         d.Phone,
		"cuisine":       d.Cuisine,
		"website":       d.Website,
		"opening_hours": d.OpeningHours,
	} {
		if v != "" {
			tags[k] = v
		}
	}
	return models.PointOfInterest{
		ID:   id,
		Loc:  models.Coordinate{Lat: d.Location.Lat, Lon: d.Location.Lon},
		Tags: tags,
	}
}
