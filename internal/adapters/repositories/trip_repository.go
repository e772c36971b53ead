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

// SQL-backed implementation of the TripRepository port.
type SQLTripRepository struct {
	DB      *sql.DB
	Dialect db.Dialect
}

func NewSQLTripRepository(conn *sql.DB, dialect db.Dialect) *SQLTripRepository {
	return &SQLTripRepository{DB: conn, Dialect: dialect}
}

func (s *SQLTripRepository) CreateTrip(ctx context.Context, trip *domain.Trip) (_ int64, err error) {
	defer obs.TimeStore(ctx, "trips.Create")(&err)

	if s.DB == nil {
		return 0, errors.New("sql trip repository: DB is nil")
	}
	if trip == nil {
		return 0, errors.New("create trip: trip is nil")
	}
	if trip.CreatedAt.IsZero() {
		trip.CreatedAt = time.Now().UTC()
	}

	query := db.Rebind(s.Dialect, `
	INSERT INTO trips (
		session_key,
		destination_id,
		destination_name,
		lat,
		lon,
		description,
		category,
		rating,
		trip_date,
		notes,
		created_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	RETURNING id;
	`)

	var rating sql.NullFloat64
	if trip.Rating != nil {
		rating = sql.NullFloat64{Float64: *trip.Rating, Valid: true}
	}
	var tripDate sql.NullTime
	if trip.TripDate != nil {
		tripDate = sql.NullTime{Time: trip.TripDate.UTC(), Valid: true}
	}

	var id int64
	err = s.DB.QueryRowContext(ctx, query,
		trip.SessionKey,
		trip.DestinationID,
		trip.DestinationName,
		trip.Location.Lat,
		trip.Location.Lon,
		trip.Description,
		trip.Category,
		rating,
		tripDate,
		trip.Notes,
		trip.CreatedAt.UTC(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create trip: insert: %w", err)
	}

	trip.ID = id
	return id, nil
}

// Return a session's trips, newest first.
func (s *SQLTripRepository) ListTrips(ctx context.Context, sessionKey string) (_ []*domain.Trip, err error) {
	defer obs.TimeStore(ctx, "trips.List")(&err)

	if s.DB == nil {
		return nil, errors.New("sql trip repository: DB is nil")
	}

	query := db.Rebind(s.Dialect, `
	SELECT
		id,
		destination_id,
		destination_name,
		lat,
		lon,
		description,
		category,
		rating,
		trip_date,
		notes,
		created_at
	FROM trips
	WHERE session_key = ?
	ORDER BY created_at DESC, id DESC;
	`)

	rows, err := s.DB.QueryContext(ctx, query, sessionKey)
	if err != nil {
		return nil, fmt.Errorf("list trips: query trips table: %w", err)
	}
	defer rows.Close()

	trips := make([]*domain.Trip, 0, 16)
	for rows.Next() {
		t := &domain.Trip{SessionKey: sessionKey}
		var rating sql.NullFloat64
		var tripDate sql.NullTime

		err := rows.Scan(
			&t.ID,
			&t.DestinationID,
			&t.DestinationName,
			&t.Location.Lat,
			&t.Location.Lon,
			&t.Description,
			&t.Category,
			&rating,
			&tripDate,
			&t.Notes,
			&t.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("list trips: scan row: %w", err)
		}
		if rating.Valid {
			r := rating.Float64
			t.Rating = &r
		}
		if tripDate.Valid {
			d := tripDate.Time
			t.TripDate = &d
		}
		trips = append(trips, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trips: row iteration: %w", err)
	}

	return trips, nil
}

func (s *SQLTripRepository) DeleteTrip(ctx context.Context, sessionKey string, id int64) (err error) {
	defer obs.TimeStore(ctx, "trips.Delete")(&err)

	if s.DB == nil {
		return errors.New("sql trip repository: DB is nil")
	}

	query := db.Rebind(s.Dialect, `DELETE FROM trips WHERE id = ? AND session_key = ?;`)

	res, err := s.DB.ExecContext(ctx, query, id, sessionKey)
	if err != nil {
		return fmt.Errorf("delete trip id=%d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete trip id=%d: rows affected: %w", id, err)
	}
	if n == 0 {
		return ports.ErrNotFound
	}

	return nil
}
