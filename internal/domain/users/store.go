package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/heart0018/OriginalProduct/internal/db"
	"github.com/jackc/pgx/v5"
)

type Store interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*User, error)
	FindOrCreateByGoogleID(ctx context.Context, googleID, region string) (*User, bool, error)
}

type Repository struct {
	db db.Querier
}

func NewRepository(q db.Querier) *Repository {
	return &Repository{db: q}
}

const userColumns = `id, google_id, region, created_at, updated_at`

func (r *Repository) GetByID(ctx context.Context, id int64) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, nil
}

func (r *Repository) GetByGoogleID(ctx context.Context, googleID string) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE google_id = $1`, googleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by google id: %w", err)
	}
	return u, nil
}

// FindOrCreateByGoogleID returns the user for googleID, creating it with
// region when missing. The boolean reports whether a row was inserted.
//
// Concurrent calls for the same googleID are safe: the UNIQUE(google_id)
// constraint lets exactly one INSERT win, and the others read the winner's
// row instead of failing.
func (r *Repository) FindOrCreateByGoogleID(ctx context.Context, googleID, region string) (*User, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	u, err := scanUser(r.db.QueryRow(ctx, `
		INSERT INTO users (google_id, region)
		VALUES ($1, $2)
		ON CONFLICT (google_id) DO NOTHING
		RETURNING `+userColumns, googleID, region))
	if err == nil {
		return u, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("insert user: %w", err)
	}

	// Row already existed (or a concurrent insert just won).
	u, err = scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE google_id = $1`, googleID))
	if err != nil {
		return nil, false, fmt.Errorf("load existing user: %w", err)
	}
	return u, false, nil
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.GoogleID, &u.Region, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
