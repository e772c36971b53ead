package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/db"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
)

// SQL-backed implementation of the ProfileRepository port.
type SQLProfileRepository struct {
	DB      *sql.DB
	Dialect db.Dialect
}

func NewSQLProfileRepository(conn *sql.DB, dialect db.Dialect) *SQLProfileRepository {
	return &SQLProfileRepository{DB: conn, Dialect: dialect}
}

func (s *SQLProfileRepository) UpsertProfile(
	ctx context.Context,
	sessionKey string,
	profile domain.PreferenceProfile,
) (err error) {
	defer obs.TimeStore(ctx, "profiles.Upsert")(&err)

	if s.DB == nil {
		return errors.New("sql profile repository: DB is nil")
	}
	if sessionKey == "" {
		return errors.New("upsert profile: session key is empty")
	}
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}

	now := time.Now().UTC()
	query := db.Rebind(s.Dialect, `
	INSERT INTO personality_profiles (
		session_key,
		crowd_preference,
		activity_level,
		distance_preference,
		budget_conscious,
		nature_lover,
		culture_enthusiast,
		created_at,
		updated_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (session_key) DO UPDATE
	SET crowd_preference = excluded.crowd_preference,
		activity_level = excluded.activity_level,
		distance_preference = excluded.distance_preference,
		budget_conscious = excluded.budget_conscious,
		nature_lover = excluded.nature_lover,
		culture_enthusiast = excluded.culture_enthusiast,
		updated_at = excluded.updated_at;
	`)

	_, err = s.DB.ExecContext(ctx, query,
		sessionKey,
		string(profile.Crowd),
		string(profile.Activity),
		string(profile.Distance),
		profile.BudgetConscious,
		profile.NatureLover,
		profile.CultureEnthusiast,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("upsert profile: exec: %w", err)
	}

	return nil
}

func (s *SQLProfileRepository) GetProfile(ctx context.Context, sessionKey string) (_ *domain.SavedProfile, err error) {
	defer obs.TimeStore(ctx, "profiles.Get")(&err)

	if s.DB == nil {
		return nil, errors.New("sql profile repository: DB is nil")
	}

	query := db.Rebind(s.Dialect, `
	SELECT
		crowd_preference,
		activity_level,
		distance_preference,
		budget_conscious,
		nature_lover,
		culture_enthusiast,
		created_at,
		updated_at
	FROM personality_profiles
	WHERE session_key = ?;
	`)

	var (
		crowd, activity, distance string
		out                       = &domain.SavedProfile{SessionKey: sessionKey}
	)
	err = s.DB.QueryRowContext(ctx, query, sessionKey).Scan(
		&crowd,
		&activity,
		&distance,
		&out.Profile.BudgetConscious,
		&out.Profile.NatureLover,
		&out.Profile.CultureEnthusiast,
		&out.CreatedAt,
		&out.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: scan row: %w", err)
	}

	out.Profile.Crowd = domain.CrowdPreference(crowd)
	out.Profile.Activity = domain.ActivityLevel(activity)
	out.Profile.Distance = domain.DistancePreference(distance)

	return out, nil
}
