package mapbox_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manzanit0/mapboxgeo/pkg/mapbox"
)

const madridBody = `{
  "type": "FeatureCollection",
  "query": ["madrid"],
  "features": [
    {
      "id": "place.123",
      "type": "Feature",
      "place_name": "Madrid, Spain",
      "relevance": 1,
      "properties": {"wikidata": "Q2807"},
      "center": [-3.70379, 40.416775],
      "geometry": {"type": "Point", "coordinates": [-3.70379, 40.416775]},
      "context": [{"id": "country.8605848117814600", "short_code": "es", "text": "Spain"}]
    }
  ],
  "attribution": "NOTICE: (c) 2022 Mapbox and its suppliers."
}`

func TestResultFeatureCollection(t *testing.T) {
	d := &stubDoer{status: 200, body: madridBody}
	c := newClient(d)

	o := await(t, func(done mapbox.Callback) { c.Geocode(mapbox.DatasetPlaces, "madrid", done) })
	require.NoError(t, o.err)

	fc, err := o.res.FeatureCollection()
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)

	f := fc.Features[0]
	require.NotNil(t, f.Geometry)
	assert.True(t, f.Geometry.IsPoint())
	assert.InDelta(t, -3.70379, f.Geometry.Point[0], 1e-9)
	assert.InDelta(t, 40.416775, f.Geometry.Point[1], 1e-9)
	assert.Equal(t, "Q2807", f.PropertyMustString("wikidata", ""))
}

func TestResultMarshalsVerbatim(t *testing.T) {
	d := &stubDoer{status: 200, body: `{"type":"FeatureCollection","features":[]}`}
	c := newClient(d)

	o := await(t, func(done mapbox.Callback) { c.Geocode(mapbox.DatasetPlaces, "nowhere", done) })
	require.NoError(t, o.err)

	b, err := json.Marshal(map[string]interface{}{"result": o.res})
	require.NoError(t, err)
	assert.JSONEq(t, `{"result":{"type":"FeatureCollection","features":[]}}`, string(b))
}

func TestNilResult(t *testing.T) {
	var r *mapbox.Result

	assert.Nil(t, r.Bytes())
	assert.Equal(t, "", r.String())

	b, err := r.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}
