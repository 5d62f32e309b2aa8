package cards

import (
	"context"
	"errors"
	"fmt"

	"github.com/heart0018/OriginalProduct/internal/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type Store interface {
	List(ctx context.Context, filter ListFilter) ([]Card, error)
	GetByID(ctx context.Context, id int64) (*Card, error)
	Create(ctx context.Context, card *Card) error
	AddReviewComments(ctx context.Context, cardID int64, comments []string) error
	ListAddresses(ctx context.Context) ([]AddressRow, error)
	UpdateRegion(ctx context.Context, id int64, region string) error
	CountByRegion(ctx context.Context) ([]RegionCount, error)
}

type Repository struct {
	db db.Querier
}

func NewRepository(q db.Querier) *Repository {
	return &Repository{db: q}
}

// List returns one page of cards, each with its review preview loaded.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]Card, error) {
	if filter.Limit <= 0 {
		return []Card{}, nil
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	query, args := buildListQuery(filter)

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying cards: %w", err)
	}
	defer rows.Close()

	cards := []Card{}
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning card row: %w", err)
		}
		cards = append(cards, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cards: %w", err)
	}

	return cards, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Card, error) {
	query := "SELECT" + cardColumns + "\n\t\tFROM cards c WHERE c.id = $1"

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	c, err := scanCard(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get card %d: %w", id, err)
	}
	return c, nil
}

// Create validates and inserts card. A place_id already used by another card
// yields ErrDuplicatePlaceID.
func (r *Repository) Create(ctx context.Context, card *Card) error {
	if err := card.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO cards (
			genre, title, rating, review_count, image_url, external_link,
			region, address, place_id, latitude, longitude
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := r.db.QueryRow(ctx, query,
		card.Genre,
		card.Title,
		card.Rating,
		card.ReviewCount,
		card.ImageURL,
		card.ExternalLink,
		card.Region,
		card.Address,
		card.PlaceID,
		card.Latitude,
		card.Longitude,
	).Scan(&card.ID, &card.CreatedAt, &card.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicatePlaceID
		}
		return fmt.Errorf("insert card: %w", err)
	}
	return nil
}

func (r *Repository) AddReviewComments(ctx context.Context, cardID int64, comments []string) error {
	if len(comments) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO review_comments (card_id, comment)
		SELECT $1, unnest($2::text[])
	`, cardID, comments)
	if err != nil {
		return fmt.Errorf("insert review comments for card %d: %w", cardID, err)
	}
	return nil
}

func (r *Repository) ListAddresses(ctx context.Context) ([]AddressRow, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, title, address, region
		FROM cards
		WHERE address IS NOT NULL
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("error querying card addresses: %w", err)
	}
	defer rows.Close()

	var out []AddressRow
	for rows.Next() {
		var a AddressRow
		if err := rows.Scan(&a.ID, &a.Title, &a.Address, &a.Region); err != nil {
			return nil, fmt.Errorf("error scanning card address: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *Repository) UpdateRegion(ctx context.Context, id int64, region string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `UPDATE cards SET region = $1, updated_at = NOW() WHERE id = $2`, region, id)
	if err != nil {
		return fmt.Errorf("update region of card %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) CountByRegion(ctx context.Context) ([]RegionCount, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT region, COUNT(*) FROM cards GROUP BY region`)
	if err != nil {
		return nil, fmt.Errorf("error counting cards by region: %w", err)
	}
	defer rows.Close()

	var out []RegionCount
	for rows.Next() {
		var rc RegionCount
		if err := rows.Scan(&rc.Region, &rc.Count); err != nil {
			return nil, fmt.Errorf("error scanning region count: %w", err)
		}
		out = append(out, rc)
	}
	return out, rows.Err()
}

func scanCard(row pgx.Row) (*Card, error) {
	var c Card
	err := row.Scan(
		&c.ID,
		&c.Genre,
		&c.Title,
		&c.Rating,
		&c.ReviewCount,
		&c.ImageURL,
		&c.ExternalLink,
		&c.Region,
		&c.Address,
		&c.PlaceID,
		&c.Latitude,
		&c.Longitude,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.ReviewComments,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
