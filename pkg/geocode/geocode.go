// Package geocode hides which provider turns a place name into coordinates
// and back.
package geocode

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("no location found")

type Client interface {
	Geocode(ctx context.Context, query string) (*Location, error)
	ReverseGeocode(ctx context.Context, lat, lon float64) (*Location, error)
}

type Location struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Name        string  `json:"name"`
	Country     string  `json:"country,omitempty"`
	CountryCode string  `json:"country_code,omitempty"`
}
