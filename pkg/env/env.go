// package env contains simple getters for values that every executable in
// this repository reads from the environment the same way.
package env

import (
	"fmt"
	"os"
)

// MapboxAccessToken returns the public token used to talk to Mapbox.
func MapboxAccessToken() (string, error) {
	var token string
	if token = os.Getenv("MAPBOX_ACCESS_TOKEN"); token == "" {
		return "", fmt.Errorf("missing MAPBOX_ACCESS_TOKEN environment variable. Please check your environment.")
	}

	return token, nil
}

// Port returns the port to serve HTTP on, 8080 unless PORT says otherwise.
func Port() string {
	var port string
	if port = os.Getenv("PORT"); port == "" {
		port = "8080"
	}

	return port
}
