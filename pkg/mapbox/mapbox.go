// Package mapbox is a small client for the Mapbox v4 geocoding API.
//
// A Client is configured once with SetAccessToken and, optionally,
// SetQueryParams, and then used for any number of lookups. Geocode and
// ReverseGeocode deliver their outcome to a Callback; Lookup and
// ReverseLookup are the blocking equivalents.
package mapbox

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
)

const BaseURL = "https://api.tiles.mapbox.com/v4/geocode/"

// Datasets served by Mapbox.
const (
	DatasetPlaces          = "mapbox.places"
	DatasetPlacesPermanent = "mapbox.places-permanent"
)

// Doer sends a request. *http.Client satisfies it.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Callback receives the outcome of an asynchronous lookup. Exactly one of
// its arguments is non-nil, and any error is a *Error.
type Callback func(res *Result, err error)

type Client struct {
	h       Doer
	baseURL string

	mu          sync.RWMutex
	accessToken string
	queryString string
}

func NewClient(h Doer) *Client {
	return &Client{h: h, baseURL: BaseURL}
}

// WithBaseURL points the client at a different host, e.g. a test server.
// The URL must end with a slash.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = u
	return c
}

func (c *Client) SetAccessToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.accessToken = token
}

// SetQueryParams replaces the parameters appended to every request. Values
// are sent as given, so they must already be URL safe.
func (c *Client) SetQueryParams(params map[string]string) {
	qs := buildQueryString(params)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.queryString = qs
}

func buildQueryString(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString("&")
		sb.WriteString(k)
		sb.WriteString("=")
		sb.WriteString(params[k])
	}

	return sb.String()
}

// Geocode looks up a free-form address. done is called exactly once, after
// Geocode has returned.
func (c *Client) Geocode(dataset, address string, done Callback) {
	c.dispatch(dataset, address, done)
}

// ReverseGeocode looks up the place at the given coordinates. done is
// called exactly once, after ReverseGeocode has returned.
func (c *Client) ReverseGeocode(dataset string, longitude, latitude float64, done Callback) {
	c.dispatch(dataset, JoinCoordinates(longitude, latitude), done)
}

func (c *Client) Lookup(ctx context.Context, dataset, address string) (*Result, error) {
	endpoint, err := c.endpoint(dataset, address)
	if err != nil {
		return nil, err
	}

	return c.get(ctx, endpoint)
}

func (c *Client) ReverseLookup(ctx context.Context, dataset string, longitude, latitude float64) (*Result, error) {
	return c.Lookup(ctx, dataset, JoinCoordinates(longitude, latitude))
}

// JoinCoordinates renders a "longitude,latitude" query. No range checks are
// made.
func JoinCoordinates(longitude, latitude float64) string {
	return strconv.FormatFloat(longitude, 'f', -1, 64) + "," + strconv.FormatFloat(latitude, 'f', -1, 64)
}

func (c *Client) dispatch(dataset, query string, done Callback) {
	// The endpoint is built now so that the config in effect at call time is
	// the one used.
	endpoint, err := c.endpoint(dataset, query)

	returned := make(chan struct{})
	defer close(returned)

	go func() {
		<-returned

		if err != nil {
			done(nil, err)
			return
		}

		done(c.get(context.Background(), endpoint))
	}()
}

func (c *Client) endpoint(dataset, query string) (string, error) {
	c.mu.RLock()
	token, qs := c.accessToken, c.queryString
	c.mu.RUnlock()

	if token == "" {
		return "", configError(ErrTokenMissing)
	}

	if dataset == "" {
		return "", configError(ErrDatasetMissing)
	}

	if query == "" {
		return "", configError(ErrQueryMissing)
	}

	return fmt.Sprintf("%s%s/%s.json?access_token=%s%s", c.baseURL, dataset, escapeQuery(query), token, qs), nil
}

// escapeQuery keeps the query a single path segment while leaving commas in
// coordinate pairs readable.
func escapeQuery(q string) string {
	escaped := (&url.URL{Path: q}).EscapedPath()
	return strings.ReplaceAll(escaped, "/", "%2F")
}

func (c *Client) get(ctx context.Context, endpoint string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: fmt.Errorf("build request: %w", err)}
	}

	res, err := c.h.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: err}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: fmt.Errorf("read body: %w", err)}
	}

	result, err := newResult(body)
	if err != nil {
		return nil, &Error{Kind: KindDecode, StatusCode: res.StatusCode, Err: err}
	}

	if res.StatusCode != http.StatusOK {
		return nil, &Error{Kind: KindRemote, StatusCode: res.StatusCode, Body: result}
	}

	return result, nil
}
