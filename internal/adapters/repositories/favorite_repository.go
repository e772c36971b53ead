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

// SQL-backed implementation of the FavoriteRepository port.
// (session_key, destination_id) is unique.
type SQLFavoriteRepository struct {
	DB      *sql.DB
	Dialect db.Dialect
}

func NewSQLFavoriteRepository(conn *sql.DB, dialect db.Dialect) *SQLFavoriteRepository {
	return &SQLFavoriteRepository{DB: conn, Dialect: dialect}
}

func (s *SQLFavoriteRepository) AddFavorite(ctx context.Context, fav *domain.Favorite) (_ int64, err error) {
	defer obs.TimeStore(ctx, "favorites.Add")(&err)

	if s.DB == nil {
		return 0, errors.New("sql favorite repository: DB is nil")
	}
	if fav == nil {
		return 0, errors.New("add favorite: favorite is nil")
	}
	if fav.CreatedAt.IsZero() {
		fav.CreatedAt = time.Now().UTC()
	}

	insert := db.Rebind(s.Dialect, `
	INSERT INTO favorites (
		session_key,
		destination_id,
		destination_name,
		lat,
		lon,
		created_at
	)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT (session_key, destination_id) DO NOTHING
	RETURNING id;
	`)

	var id int64
	err = s.DB.QueryRowContext(ctx, insert,
		fav.SessionKey,
		fav.DestinationID,
		fav.DestinationName,
		fav.Location.Lat,
		fav.Location.Lon,
		fav.CreatedAt.UTC(),
	).Scan(&id)
	if err == nil {
		fav.ID = id
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("add favorite: insert: %w", err)
	}

	// Conflict: the favorite already exists.
	lookup := db.Rebind(s.Dialect, `SELECT id FROM favorites WHERE session_key = ? AND destination_id = ?;`)
	if err := s.DB.QueryRowContext(ctx, lookup, fav.SessionKey, fav.DestinationID).Scan(&id); err != nil {
		return 0, fmt.Errorf("add favorite: lookup existing: %w", err)
	}

	fav.ID = id
	return id, nil
}

func (s *SQLFavoriteRepository) ListFavorites(ctx context.Context, sessionKey string) (_ []*domain.Favorite, err error) {
	defer obs.TimeStore(ctx, "favorites.List")(&err)

	if s.DB == nil {
		return nil, errors.New("sql favorite repository: DB is nil")
	}

	query := db.Rebind(s.Dialect, `
	SELECT
		id,
		destination_id,
		destination_name,
		lat,
		lon,
		created_at
	FROM favorites
	WHERE session_key = ?
	ORDER BY created_at DESC, id DESC;
	`)

	rows, err := s.DB.QueryContext(ctx, query, sessionKey)
	if err != nil {
		return nil, fmt.Errorf("list favorites: query favorites table: %w", err)
	}
	defer rows.Close()

	favs := make([]*domain.Favorite, 0, 16)
	for rows.Next() {
		f := &domain.Favorite{SessionKey: sessionKey}
		if err := rows.Scan(&f.ID, &f.DestinationID, &f.DestinationName, &f.Location.Lat, &f.Location.Lon, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("list favorites: scan row: %w", err)
		}
		favs = append(favs, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list favorites: row iteration: %w", err)
	}

	return favs, nil
}

func (s *SQLFavoriteRepository) RemoveFavorite(ctx context.Context, sessionKey string, destinationID string) (err error) {
	defer obs.TimeStore(ctx, "favorites.Remove")(&err)

	if s.DB == nil {
		return errors.New("sql favorite repository: DB is nil")
	}

	query := db.Rebind(s.Dialect, `DELETE FROM favorites WHERE session_key = ? AND destination_id = ?;`)

	res, err := s.DB.ExecContext(ctx, query, sessionKey, destinationID)
	if err != nil {
		return fmt.Errorf("remove favorite %q: %w", destinationID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove favorite %q: rows affected: %w", destinationID, err)
	}
	if n == 0 {
		return ports.ErrNotFound
	}

	return nil
}
