package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/manzanit0/mapboxgeo/pkg/mapbox"
)

type place struct {
	PlaceName string    `json:"place_name"`
	Center    []float64 `json:"center"`
	Relevance float64   `json:"relevance"`
}

func renderTable(w io.Writer, res *mapbox.Result) error {
	var body struct {
		Features []place `json:"features"`
	}
	if err := res.Decode(&body); err != nil {
		return fmt.Errorf("decode features: %w", err)
	}

	if len(body.Features) == 0 {
		_, err := fmt.Fprintln(w, "no places found ¯\\_(ツ)_/¯")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Place", "Longitude", "Latitude", "Relevance"})

	for _, p := range body.Features {
		lng, lat := "", ""
		if len(p.Center) == 2 {
			lng = strconv.FormatFloat(p.Center[0], 'f', -1, 64)
			lat = strconv.FormatFloat(p.Center[1], 'f', -1, 64)
		}

		table.Append([]string{p.PlaceName, lng, lat, fmt.Sprintf("%.2f", p.Relevance)})
	}

	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.Render()

	return nil
}
