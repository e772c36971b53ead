package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"trip-planner-service/internal/adapters/cache"
	"trip-planner-service/internal/adapters/places"
	"trip-planner-service/internal/adapters/repositories"
	"trip-planner-service/internal/adapters/weather"
	"trip-planner-service/internal/api"
	"trip-planner-service/internal/config"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/logging"
	"trip-planner-service/internal/platform/db"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"
	"trip-planner-service/internal/supervisor"
)

// main is the application composition root.
// It wires concrete adapters (SQL, OpenTripMap, OpenWeather, Redis, Badger) behind ports and starts the HTTP server.
func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("server stopped")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dialect, err := db.ParseDialect(cfg.Database.Driver)
	if err != nil {
		return err
	}
	conn, err := db.Open(ctx, dialect, cfg.DSN())
	if err != nil {
		return err
	}
	defer conn.Close()

	// Schema is created on startup for local runs; it is idempotent.
	if err := repositories.InitSchema(ctx, conn, dialect); err != nil {
		return err
	}

	source, details, closeCache, err := buildPlaces(ctx, cfg, conn, dialect)
	if err != nil {
		return err
	}
	defer closeCache()

	var weatherProvider ports.WeatherProvider
	if cfg.OpenWeather.APIKey != "" {
		w, err := weather.NewOpenWeatherClient(cfg.OpenWeather.APIKey, cfg.OpenWeather.BaseURL, cfg.OpenWeather.Timeout)
		if err != nil {
			return err
		}
		weatherProvider = w
	} else {
		logging.Info().Msg("OPENWEATHER_API_KEY not set; destination details will omit weather")
	}

	recommender := services.NewRecommender(source, loadFallback(cfg.Recommend.FallbackPath))
	recommender.LiveLimit = cfg.Recommend.LiveLimit
	recommender.FallbackLimit = cfg.Recommend.FallbackLimit
	recommender.FetchLimit = cfg.Recommend.FetchLimit

	router := api.NewRouter(api.Deps{
		Recommender:       recommender,
		Places:            source,
		Details:           details,
		Weather:           weatherProvider,
		Profiles:          repositories.NewSQLProfileRepository(conn, dialect),
		Trips:             repositories.NewSQLTripRepository(conn, dialect),
		Favorites:         repositories.NewSQLFavoriteRepository(conn, dialect),
		DefaultLocation:   domain.Coordinates{Lat: cfg.Recommend.DefaultLat, Lon: cfg.Recommend.DefaultLon},
		CORSOrigins:       cfg.Security.CORSOrigins,
		RateLimitRequests: cfg.Security.RateLimitRequests,
		RateLimitWindow:   cfg.Security.RateLimitWindow,
		SecureCookies:     cfg.Security.SecureCookies,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	tree := supervisor.NewTree("trip-planner", supervisor.TreeConfig{ShutdownTimeout: cfg.Server.ShutdownTimeout})
	tree.Add(supervisor.NewHTTPServerService(srv, cfg.Server.ShutdownTimeout))
	if cfg.Cache.Backend == "sql" {
		tree.Add(supervisor.NewCachePurgeService(cache.NewSQLCandidateCache(conn, dialect), cfg.Cache.PurgeInterval))
	}

	logging.Info().Str("addr", srv.Addr).Str("db", string(dialect)).Msg("server listening")

	// The tree's own per-service timeout bounds shutdown; the extra second
	// covers the supervisor's bookkeeping.
	if err := supervisor.Run(ctx, tree, cfg.Server.ShutdownTimeout+time.Second); err != nil {
		return err
	}
	logging.Info().Msg("server stopped")
	return nil
}

// buildPlaces wires the OpenTripMap client behind a circuit breaker and the
// configured candidate cache. Without an API key both returns are nil and
// recommendations are served from the fallback set.
func buildPlaces(
	ctx context.Context,
	cfg *config.Config,
	conn *sql.DB,
	dialect db.Dialect,
) (ports.CandidateSource, ports.DetailsProvider, func(), error) {
	noop := func() {}

	if cfg.OpenTripMap.APIKey == "" {
		logging.Warn().Msg("OPENTRIPMAP_API_KEY not set; recommendations use the fallback set")
		return nil, nil, noop, nil
	}

	client, err := places.NewOpenTripMapClient(cfg.OpenTripMap.APIKey, cfg.OpenTripMap.BaseURL, cfg.OpenTripMap.Timeout)
	if err != nil {
		return nil, nil, noop, err
	}
	client.SetRateLimit(cfg.OpenTripMap.RequestsPerSecond, int(cfg.OpenTripMap.RequestsPerSecond)+1)
	guarded := places.NewBreakerClient(client, places.BreakerSettings{
		ConsecutiveFailures: cfg.OpenTripMap.BreakerFailures,
		OpenTimeout:         cfg.OpenTripMap.BreakerOpenTimeout,
	})

	switch cfg.Cache.Backend {
	case "redis":
		rdb, err := cache.Connect(ctx, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
		if err != nil {
			return nil, nil, noop, err
		}
		logging.Info().Str("addr", cfg.Cache.RedisAddr).Dur("ttl", cfg.Cache.TTL).Msg("candidate cache: redis")
		src := cache.NewCachedCandidateSource(guarded, cache.NewRedisCandidateCache(rdb), cfg.Cache.TTL)
		return src, guarded, func() { rdb.Close() }, nil
	case "sql":
		logging.Info().Dur("ttl", cfg.Cache.TTL).Msg("candidate cache: sql")
		src := cache.NewCachedCandidateSource(guarded, cache.NewSQLCandidateCache(conn, dialect), cfg.Cache.TTL)
		return src, guarded, noop, nil
	case "badger":
		bdb, err := cache.OpenBadger(cfg.Cache.BadgerPath)
		if err != nil {
			return nil, nil, noop, err
		}
		logging.Info().Str("path", cfg.Cache.BadgerPath).Dur("ttl", cfg.Cache.TTL).Msg("candidate cache: badger")
		src := cache.NewCachedCandidateSource(guarded, cache.NewBadgerCandidateCache(bdb), cfg.Cache.TTL)
		return src, guarded, func() { bdb.Close() }, nil
	}

	return guarded, guarded, noop, nil
}

// loadFallback reads a custom fallback set. On any error the built-in set is used.
func loadFallback(path string) []domain.CandidateDestination {
	if path == "" {
		return nil
	}
	fallback, err := services.LoadFallbackFromFile(path)
	if err != nil {
		logging.Warn().Err(err).Str("path", path).Msg("using built-in fallback destinations")
		return nil
	}
	logging.Info().Int("count", len(fallback)).Str("path", path).Msg("fallback destinations loaded")
	return fallback
}
