package mapbox

import (
	"encoding/json"
	"fmt"

	geojson "github.com/paulmach/go.geojson"
)

// Result is a response body exactly as Mapbox sent it.
type Result struct {
	raw json.RawMessage
}

func newResult(body []byte) (*Result, error) {
	if !json.Valid(body) {
		return nil, fmt.Errorf("invalid json body")
	}

	return &Result{raw: json.RawMessage(body)}, nil
}

// Bytes returns the untouched body.
func (r *Result) Bytes() []byte {
	if r == nil {
		return nil
	}

	return r.raw
}

func (r *Result) String() string {
	return string(r.Bytes())
}

// MarshalJSON lets a Result be embedded in other JSON documents verbatim.
func (r *Result) MarshalJSON() ([]byte, error) {
	if r == nil || len(r.raw) == 0 {
		return []byte("null"), nil
	}

	return r.raw, nil
}

// Decode unmarshals the body into v.
func (r *Result) Decode(v interface{}) error {
	return json.Unmarshal(r.Bytes(), v)
}

// FeatureCollection parses the body as GeoJSON. Mapbox-specific members
// such as "query" and "attribution" are dropped.
func (r *Result) FeatureCollection() (*geojson.FeatureCollection, error) {
	fc, err := geojson.UnmarshalFeatureCollection(r.Bytes())
	if err != nil {
		return nil, fmt.Errorf("unmarshal feature collection: %w", err)
	}

	return fc, nil
}
