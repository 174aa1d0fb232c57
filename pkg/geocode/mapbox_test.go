package geocode_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manzanit0/mapboxgeo/pkg/geocode"
	"github.com/manzanit0/mapboxgeo/pkg/mapbox"
)

type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(r *http.Request) (*http.Response, error) {
	return f(r)
}

func respondWith(status int, body string, seen *string) doerFunc {
	return func(r *http.Request) (*http.Response, error) {
		if seen != nil {
			*seen = r.URL.String()
		}

		return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader(body))}, nil
	}
}

const madrid = `{
  "type": "FeatureCollection",
  "query": ["madrid"],
  "features": [{
    "id": "place.8505969813128770",
    "type": "Feature",
    "place_name": "Madrid, Madrid, Spain",
    "properties": {},
    "center": [-3.70379, 40.416775],
    "geometry": {"type": "Point", "coordinates": [-3.70379, 40.416775]},
    "context": [
      {"id": "region.9491156515587980", "short_code": "ES-M", "text": "Madrid"},
      {"id": "country.8605848117814600", "short_code": "es", "text": "Spain"}
    ]
  }]
}`

const spain = `{
  "type": "FeatureCollection",
  "features": [{
    "id": "country.8605848117814600",
    "type": "Feature",
    "place_name": "Spain",
    "short_code": "es",
    "text": "Spain",
    "properties": {},
    "center": [-3.6, 40.2],
    "geometry": {"type": "Point", "coordinates": [-3.6, 40.2]}
  }]
}`

func TestMapboxClient(t *testing.T) {
	testCases := []struct {
		desc    string
		reverse bool
		status  int
		body    string
		want    *geocode.Location
		wantURL string
		wantErr func(error) bool
	}{
		{
			desc:    "when forward geocoding a city, the first feature is returned with its country",
			status:  http.StatusOK,
			body:    madrid,
			want:    &geocode.Location{Latitude: 40.416775, Longitude: -3.70379, Name: "Madrid, Madrid, Spain", Country: "Spain", CountryCode: "ES"},
			wantURL: "https://api.tiles.mapbox.com/v4/geocode/mapbox.places/madrid.json?access_token=pk.test",
		},
		{
			desc:    "when reverse geocoding, longitude goes first in the query",
			reverse: true,
			status:  http.StatusOK,
			body:    madrid,
			want:    &geocode.Location{Latitude: 40.416775, Longitude: -3.70379, Name: "Madrid, Madrid, Spain", Country: "Spain", CountryCode: "ES"},
			wantURL: "https://api.tiles.mapbox.com/v4/geocode/mapbox.places/-3.70379,40.416775.json?access_token=pk.test",
		},
		{
			desc:   "when the result is a country, its own short code is used",
			status: http.StatusOK,
			body:   spain,
			want:   &geocode.Location{Latitude: 40.2, Longitude: -3.6, Name: "Spain", Country: "Spain", CountryCode: "ES"},
		},
		{
			desc:    "when there are no features, not found is returned",
			status:  http.StatusOK,
			body:    `{"type":"FeatureCollection","features":[]}`,
			wantErr: func(err error) bool { return errors.Is(err, geocode.ErrNotFound) },
		},
		{
			desc:    "when mapbox rejects the request, the remote error is returned",
			status:  http.StatusUnauthorized,
			body:    `{"message":"Not Authorized - Invalid Token"}`,
			wantErr: func(err error) bool { return mapbox.IsKind(err, mapbox.KindRemote) },
		},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			var seen string
			mb := mapbox.NewClient(respondWith(tC.status, tC.body, &seen))
			mb.SetAccessToken("pk.test")
			c := geocode.NewMapboxClient(mb, mapbox.DatasetPlaces)

			var got *geocode.Location
			var err error
			if tC.reverse {
				got, err = c.ReverseGeocode(context.Background(), 40.416775, -3.70379)
			} else {
				got, err = c.Geocode(context.Background(), "madrid")
			}

			if tC.wantErr != nil {
				assert.Nil(t, got)
				assert.True(t, tC.wantErr(err), "unexpected error: %v", err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tC.want, got)
			if tC.wantURL != "" {
				assert.Equal(t, tC.wantURL, seen)
			}
		})
	}
}
