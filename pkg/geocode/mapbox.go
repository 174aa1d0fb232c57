package geocode

import (
	"context"
	"fmt"
	"strings"

	"github.com/manzanit0/mapboxgeo/pkg/mapbox"
)

func NewMapboxClient(c *mapbox.Client, dataset string) *mc {
	return &mc{c: c, dataset: dataset}
}

type mc struct {
	c       *mapbox.Client
	dataset string
}

var _ Client = (*mc)(nil)

func (c *mc) Geocode(ctx context.Context, query string) (*Location, error) {
	res, err := c.c.Lookup(ctx, c.dataset, query)
	if err != nil {
		return nil, err
	}

	return firstLocation(res)
}

func (c *mc) ReverseGeocode(ctx context.Context, lat, lon float64) (*Location, error) {
	res, err := c.c.ReverseLookup(ctx, c.dataset, lon, lat)
	if err != nil {
		return nil, err
	}

	return firstLocation(res)
}

// featureCollection holds the Mapbox members go.geojson does not know about.
type featureCollection struct {
	Features []struct {
		PlaceName string    `json:"place_name"`
		Center    []float64 `json:"center"`
		ID        string    `json:"id"`
		ShortCode string    `json:"short_code"`
		Text      string    `json:"text"`
		Context   []struct {
			ID        string `json:"id"`
			ShortCode string `json:"short_code"`
			Text      string `json:"text"`
		} `json:"context"`
	} `json:"features"`
}

func firstLocation(res *mapbox.Result) (*Location, error) {
	fc, err := res.FeatureCollection()
	if err != nil {
		return nil, err
	}

	if len(fc.Features) == 0 {
		return nil, ErrNotFound
	}

	var extra featureCollection
	if err := res.Decode(&extra); err != nil {
		return nil, fmt.Errorf("decode mapbox features: %w", err)
	}

	loc := &Location{}
	if g := fc.Features[0].Geometry; g != nil && g.IsPoint() && len(g.Point) == 2 {
		loc.Longitude, loc.Latitude = g.Point[0], g.Point[1]
	}

	if len(extra.Features) == 0 {
		return loc, nil
	}

	f := extra.Features[0]
	loc.Name = f.PlaceName
	if len(f.Center) == 2 && fc.Features[0].Geometry == nil {
		loc.Longitude, loc.Latitude = f.Center[0], f.Center[1]
	}

	// A country result carries its own code; anything smaller has it in the
	// context.
	if strings.HasPrefix(f.ID, "country.") {
		loc.Country, loc.CountryCode = f.Text, strings.ToUpper(f.ShortCode)
	}

	for _, c := range f.Context {
		if strings.HasPrefix(c.ID, "country.") {
			loc.Country, loc.CountryCode = c.Text, strings.ToUpper(c.ShortCode)
		}
	}

	return loc, nil
}
