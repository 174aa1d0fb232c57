package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/manzanit0/mapboxgeo/pkg/env"
	"github.com/manzanit0/mapboxgeo/pkg/mapbox"
	"github.com/manzanit0/mapboxgeo/pkg/whttp"
)

type options struct {
	token   string
	dataset string
	params  map[string]string
	raw     bool

	// newDoer is swapped in tests.
	newDoer func() mapbox.Doer
}

func newRootCmd() *cobra.Command {
	return newRootCmdWithOptions(&options{
		newDoer: func() mapbox.Doer { return whttp.NewLoggingClient() },
	})
}

func newRootCmdWithOptions(o *options) *cobra.Command {
	root := &cobra.Command{
		Use:           "geocode",
		Short:         "Look up places with the Mapbox geocoding API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&o.token, "token", "", "mapbox access token (defaults to $MAPBOX_ACCESS_TOKEN)")
	root.PersistentFlags().StringVar(&o.dataset, "dataset", mapbox.DatasetPlaces, "mapbox dataset to query")
	root.PersistentFlags().StringToStringVar(&o.params, "param", nil, "extra query parameter as key=value, sent as is (repeatable)")
	root.PersistentFlags().BoolVar(&o.raw, "raw", false, "print the JSON response instead of a table")

	root.AddCommand(&cobra.Command{
		Use:   "forward <address...>",
		Short: "Geocode an address",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.client()
			if err != nil {
				return err
			}

			return run(cmd.OutOrStdout(), o.raw, func(done mapbox.Callback) {
				c.Geocode(o.dataset, strings.Join(args, " "), done)
			})
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "reverse <longitude> <latitude>",
		Short: "Reverse geocode a coordinate pair",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lng, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("parse longitude: %w", err)
			}

			lat, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("parse latitude: %w", err)
			}

			c, err := o.client()
			if err != nil {
				return err
			}

			return run(cmd.OutOrStdout(), o.raw, func(done mapbox.Callback) {
				c.ReverseGeocode(o.dataset, lng, lat, done)
			})
		},
	})

	return root
}

func (o *options) client() (*mapbox.Client, error) {
	token := o.token
	if token == "" {
		var err error
		if token, err = env.MapboxAccessToken(); err != nil {
			return nil, err
		}
	}

	c := mapbox.NewClient(o.newDoer())
	c.SetAccessToken(token)
	c.SetQueryParams(o.params)
	return c, nil
}

func run(w io.Writer, raw bool, lookup func(mapbox.Callback)) error {
	type outcome struct {
		res *mapbox.Result
		err error
	}

	ch := make(chan outcome, 1)
	lookup(func(res *mapbox.Result, err error) {
		ch <- outcome{res: res, err: err}
	})

	o := <-ch
	if o.err != nil {
		return o.err
	}

	if raw {
		_, err := fmt.Fprintln(w, o.res.String())
		return err
	}

	return renderTable(w, o.res)
}
