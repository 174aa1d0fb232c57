package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v4/stdlib"

	"github.com/manzanit0/mapboxgeo/cmd/api/lookups"
	"github.com/manzanit0/mapboxgeo/pkg/config"
	"github.com/manzanit0/mapboxgeo/pkg/geocode"
	"github.com/manzanit0/mapboxgeo/pkg/logger"
	"github.com/manzanit0/mapboxgeo/pkg/mapbox"
	"github.com/manzanit0/mapboxgeo/pkg/middleware"
	"github.com/manzanit0/mapboxgeo/pkg/whttp"
)

const ServiceName = "api"

func main() {
	cfg, err := config.Load(".", "./config")
	if err != nil {
		panic(fmt.Errorf("load config: %w", err))
	}

	logger.InitGlobalSlog(ServiceName, cfg.Log.Level)

	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	mb := newMapboxClient(cfg.Mapbox)

	geocoder, err := newGeocoder(cfg, mb)
	if err != nil {
		panic(err)
	}

	s := &server{mapbox: mb, geocoder: geocoder}

	if cfg.Database.URL != "" {
		db, err := sql.Open("pgx", cfg.Database.URL)
		if err != nil {
			panic(fmt.Errorf("unable to open db conn: %w", err))
		}

		defer func() {
			err = db.Close()
			if err != nil {
				slog.Error("error closing db connection", "error", err.Error())
			}
		}()

		if err := db.Ping(); err != nil {
			panic(fmt.Errorf("unable to ping database: %w", err))
		}

		slog.Info("connected to the database successfully")

		repo := lookups.NewPgRepository(db)
		if err := repo.EnsureSchema(context.Background()); err != nil {
			panic(err)
		}

		s.lookups = repo
	} else {
		slog.Info("no database configured, lookup history disabled")
	}

	r := newRouter(s,
		middleware.TraceID(),
		middleware.Recovery(),
		middleware.Logger(cfg.Server.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{Addr: cfg.ServerAddr(), Handler: r}
	go func() {
		slog.Info(fmt.Sprintf("serving HTTP on %s", cfg.ServerAddr()))

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server shutdown abruptly", "error", err.Error())
		} else {
			slog.Info("server shutdown gracefully")
		}

		stop()
	}()

	// Listen for OS interrupt
	<-ctx.Done()
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err.Error())
	}

	slog.Info("server exited")
}

func newMapboxClient(cfg config.MapboxConfig) *mapbox.Client {
	if cfg.Token == "" {
		slog.Warn("no mapbox token configured, every mapbox lookup will fail")
	}

	c := mapbox.NewClient(whttp.NewLoggingClient())
	c.SetAccessToken(cfg.Token)
	c.SetQueryParams(cfg.Params)
	return c
}

func newGeocoder(cfg *config.Config, mb *mapbox.Client) (geocode.Client, error) {
	switch cfg.Geocoder.Provider {
	case config.ProviderMapbox:
		return geocode.NewMapboxClient(mb, cfg.Mapbox.Dataset), nil
	case config.ProviderOpenstreetmap:
		return geocode.NewOpenstreetmapClient(), nil
	default:
		return nil, fmt.Errorf("unknown geocoder provider %q", cfg.Geocoder.Provider)
	}
}
