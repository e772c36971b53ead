package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"trip-planner-service/internal/platform/db"
)

// InitSchema creates the tables used by the repositories and the SQL
// candidate cache. It is idempotent.
func InitSchema(ctx context.Context, conn *sql.DB, dialect db.Dialect) error {
	if conn == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range schemaStatements(dialect) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

func schemaStatements(dialect db.Dialect) []string {
	idCol := "id INTEGER PRIMARY KEY AUTOINCREMENT"
	boolType := "INTEGER"
	if dialect == db.Postgres {
		idCol = "id BIGSERIAL PRIMARY KEY"
		boolType = "BOOLEAN"
	}

	createProfilesQuery := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS personality_profiles (
		session_key TEXT PRIMARY KEY,
		crowd_preference TEXT NOT NULL,
		activity_level TEXT NOT NULL,
		distance_preference TEXT NOT NULL,
		budget_conscious %[1]s NOT NULL,
		nature_lover %[1]s NOT NULL,
		culture_enthusiast %[1]s NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);
	`, boolType)

	createTripsQuery := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS trips (
		%s,
		session_key TEXT NOT NULL,
		destination_id TEXT NOT NULL,
		destination_name TEXT NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		rating DOUBLE PRECISION,
		trip_date TIMESTAMP,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	);
	`, idCol)

	createFavoritesQuery := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS favorites (
		%s,
		session_key TEXT NOT NULL,
		destination_id TEXT NOT NULL,
		destination_name TEXT NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMP NOT NULL,
		UNIQUE (session_key, destination_id)
	);
	`, idCol)

	createCandidateCacheQuery := `
	CREATE TABLE IF NOT EXISTS candidate_cache (
		cache_key TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		expires_at TIMESTAMP NOT NULL
	);
	`

	createTripsIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_trips_session_created
	ON trips(session_key, created_at);
	`

	return []string{
		createProfilesQuery,
		createTripsQuery,
		createFavoritesQuery,
		createCandidateCacheQuery,
		createTripsIndexQuery,
	}
}
