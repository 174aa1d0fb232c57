package main

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/manzanit0/mapboxgeo/cmd/api/lookups"
	"github.com/manzanit0/mapboxgeo/pkg/geocode"
	"github.com/manzanit0/mapboxgeo/pkg/mapbox"
)

const defaultLookupsLimit = 20

type server struct {
	mapbox   *mapbox.Client
	geocoder geocode.Client

	// lookups is nil when no database is configured.
	lookups lookups.Repository
}

func newRouter(s *server, middlewares ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(middlewares...)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	r.GET("/geocode/:dataset/:query", s.forwardGeocode)
	r.GET("/reverse/:dataset/:lng/:lat", s.reverseGeocode)
	r.GET("/locations", s.findLocation)
	r.GET("/lookups", s.listLookups)

	return r
}

type outcome struct {
	res *mapbox.Result
	err error
}

func await(call func(mapbox.Callback)) outcome {
	ch := make(chan outcome, 1)
	call(func(res *mapbox.Result, err error) {
		ch <- outcome{res: res, err: err}
	})

	return <-ch
}

func (s *server) forwardGeocode(c *gin.Context) {
	dataset, query := c.Param("dataset"), c.Param("query")

	o := await(func(done mapbox.Callback) { s.mapbox.Geocode(dataset, query, done) })
	s.respondMapbox(c, lookups.Lookup{Kind: lookups.KindForward, Dataset: dataset, Query: query}, o)
}

func (s *server) reverseGeocode(c *gin.Context) {
	dataset := c.Param("dataset")

	lng, err := strconv.ParseFloat(c.Param("lng"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "longitude must be a number"})
		return
	}

	lat, err := strconv.ParseFloat(c.Param("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "latitude must be a number"})
		return
	}

	o := await(func(done mapbox.Callback) { s.mapbox.ReverseGeocode(dataset, lng, lat, done) })
	s.respondMapbox(c, lookups.Lookup{Kind: lookups.KindReverse, Dataset: dataset, Query: mapbox.JoinCoordinates(lng, lat)}, o)
}

func (s *server) respondMapbox(c *gin.Context, l lookups.Lookup, o outcome) {
	defer func() {
		l.Status = c.Writer.Status()
		s.record(c, l)
	}()

	if o.err == nil {
		c.Data(http.StatusOK, "application/json", o.res.Bytes())
		return
	}

	var mErr *mapbox.Error
	if errors.As(o.err, &mErr) && mErr.Kind == mapbox.KindRemote {
		c.Data(mErr.StatusCode, "application/json", mErr.Body.Bytes())
		return
	}

	writeError(c, o.err)
}

func (s *server) findLocation(c *gin.Context) {
	ctx := c.Request.Context()
	l := lookups.Lookup{Kind: lookups.KindLocation}

	var loc *geocode.Location
	var err error

	if q := c.Query("q"); q != "" {
		l.Query = q
		loc, err = s.geocoder.Geocode(ctx, q)
	} else {
		lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
		lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
		if latErr != nil || lonErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "either q or numeric lat and lon are required"})
			return
		}

		l.Query = mapbox.JoinCoordinates(lon, lat)
		loc, err = s.geocoder.ReverseGeocode(ctx, lat, lon)
	}

	defer func() {
		l.Status = c.Writer.Status()
		s.record(c, l)
	}()

	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, loc)
}

func (s *server) listLookups(c *gin.Context) {
	if s.lookups == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "lookup history is disabled"})
		return
	}

	limit := defaultLookupsLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}

		limit = n
	}

	ls, err := s.lookups.ListRecent(c.Request.Context(), limit)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "list lookups", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to list lookups"})
		return
	}

	if ls == nil {
		ls = []lookups.Lookup{}
	}

	c.JSON(http.StatusOK, gin.H{"lookups": ls})
}

// record stores the lookup in the history. Failures are logged only: the
// history must never break a lookup.
func (s *server) record(c *gin.Context, l lookups.Lookup) {
	if s.lookups == nil {
		return
	}

	if err := s.lookups.Record(c.Request.Context(), l); err != nil {
		slog.ErrorContext(c.Request.Context(), "record lookup", "error", err.Error(), "kind", l.Kind)
	}
}

func writeError(c *gin.Context, err error) {
	c.JSON(errorStatus(err), gin.H{"error": err.Error()})
}

func errorStatus(err error) int {
	if errors.Is(err, geocode.ErrNotFound) {
		return http.StatusNotFound
	}

	var mErr *mapbox.Error
	if !errors.As(err, &mErr) {
		return http.StatusInternalServerError
	}

	switch mErr.Kind {
	case mapbox.KindConfig:
		// A missing token is our fault, not the caller's.
		if errors.Is(err, mapbox.ErrTokenMissing) {
			return http.StatusInternalServerError
		}

		return http.StatusBadRequest
	case mapbox.KindRemote:
		return mErr.StatusCode
	default:
		return http.StatusBadGateway
	}
}
