package geocode

import (
	"context"
	"fmt"
	"strings"

	"github.com/codingsince1985/geo-golang"
	"github.com/codingsince1985/geo-golang/openstreetmap"
)

func NewOpenstreetmapClient() *oc {
	return &oc{geocoder: openstreetmap.Geocoder()}
}

type oc struct {
	geocoder geo.Geocoder
}

var _ Client = (*oc)(nil)

// Geocode ignores ctx: the underlying geocoder has its own timeout.
func (c *oc) Geocode(_ context.Context, query string) (*Location, error) {
	location, err := c.geocoder.Geocode(query)
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", query, err)
	}

	if location == nil {
		return nil, ErrNotFound
	}

	address, err := c.geocoder.ReverseGeocode(location.Lat, location.Lng)
	if err != nil {
		return nil, fmt.Errorf("reverse geocode %q: %w", query, err)
	}

	loc := &Location{Latitude: location.Lat, Longitude: location.Lng, Name: query}
	if address != nil {
		loc.Country = address.Country
		loc.CountryCode = strings.ToUpper(address.CountryCode)
	}

	return loc, nil
}

func (c *oc) ReverseGeocode(_ context.Context, lat, lon float64) (*Location, error) {
	address, err := c.geocoder.ReverseGeocode(lat, lon)
	if err != nil {
		return nil, fmt.Errorf("reverse geocode %f,%f: %w", lat, lon, err)
	}

	if address == nil {
		return nil, ErrNotFound
	}

	name := address.FormattedAddress
	if address.City != "" {
		name = fmt.Sprintf("%s, %s", address.City, address.Country)
	}

	return &Location{
		Latitude:    lat,
		Longitude:   lon,
		Name:        name,
		Country:     address.Country,
		CountryCode: strings.ToUpper(address.CountryCode),
	}, nil
}
