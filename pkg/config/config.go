// Package config loads the settings of the geocoding service from an optional
// config.yaml and MAPBOXGEO_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	ProviderMapbox        = "mapbox"
	ProviderOpenstreetmap = "openstreetmap"
)

type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Mapbox   MapboxConfig
	Geocoder GeocoderConfig
	Database DatabaseConfig
}

type ServerConfig struct {
	Port  int
	Debug bool
}

type LogConfig struct {
	Level string
}

type MapboxConfig struct {
	Token   string
	Dataset string
	// Params are appended verbatim to every Mapbox request.
	Params map[string]string
}

type GeocoderConfig struct {
	// Provider backs the /locations endpoint: mapbox or openstreetmap.
	Provider string
}

type DatabaseConfig struct {
	// URL is optional; lookups are not recorded without it.
	URL string
}

// Load reads the configuration. paths are searched for config.yaml in
// order; none of them has to contain one.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.debug", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("mapbox.token", "")
	v.SetDefault("mapbox.dataset", "mapbox.places")
	v.SetDefault("mapbox.params", map[string]string{})
	v.SetDefault("geocoder.provider", ProviderMapbox)
	v.SetDefault("database.url", "")

	v.SetEnvPrefix("MAPBOXGEO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Geocoder.Provider {
	case ProviderMapbox, ProviderOpenstreetmap:
	default:
		return fmt.Errorf("unknown geocoder provider %q", c.Geocoder.Provider)
	}

	return nil
}

// ServerAddr returns the address to listen on, e.g. ":8080".
func (c *Config) ServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
