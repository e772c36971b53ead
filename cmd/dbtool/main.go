package main

import (
	"context"
	"flag"
	"os"
	"time"
	"trip-planner-service/internal/adapters/cache"
	"trip-planner-service/internal/adapters/repositories"
	"trip-planner-service/internal/config"
	"trip-planner-service/internal/logging"
	"trip-planner-service/internal/platform/db"
	"trip-planner-service/internal/services"
)

type options struct {
	purge bool
}

// parseFlags reads the command line. Expired cache rows are purged unless
// -skip-purge is given.
func parseFlags(args []string) (options, error) {
	fs := flag.NewFlagSet("dbtool", flag.ContinueOnError)
	skipPurge := fs.Bool("skip-purge", false, "do not delete expired candidate cache rows")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return options{purge: !*skipPurge}, nil
}

// dbtool prepares the database outside the server: it creates the schema,
// checks the configured fallback file and purges expired candidate cache rows.
func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		logging.Fatal().Err(err).Msg("parse flags")
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("load config")
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	dialect, err := db.ParseDialect(cfg.Database.Driver)
	if err != nil {
		logging.Fatal().Err(err).Msg("parse driver")
	}

	conn, err := db.Open(ctx, dialect, cfg.DSN())
	if err != nil {
		logging.Fatal().Err(err).Msg("open database")
	}
	defer conn.Close()

	logging.Info().Str("db", string(dialect)).Msg("initializing database schema")
	if err := repositories.InitSchema(ctx, conn, dialect); err != nil {
		logging.Fatal().Err(err).Msg("schema initialization failed")
	}
	logging.Info().Msg("schema ready")

	if path := cfg.Recommend.FallbackPath; path != "" {
		fallback, err := services.LoadFallbackFromFile(path)
		if err != nil {
			logging.Fatal().Err(err).Str("path", path).Msg("fallback file is invalid")
		}
		logging.Info().Int("count", len(fallback)).Str("path", path).Msg("fallback file ok")
	}

	if opts.purge {
		n, err := cache.NewSQLCandidateCache(conn, dialect).PurgeExpired(ctx)
		if err != nil {
			logging.Fatal().Err(err).Msg("purge candidate cache failed")
		}
		logging.Info().Int64("rows", n).Msg("expired candidate cache rows purged")
	}
}
