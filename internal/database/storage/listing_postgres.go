package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/ShareBnB/internal/domain"
	"github.com/jmoiron/sqlx"
)

// ListingStorage owns all queries against the listings table.
type ListingStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewListingStorage(db *sqlx.DB, logger *slog.Logger) *ListingStorage {
	return &ListingStorage{db: db, logger: logger}
}

// Create inserts a listing and returns the stored row with its assigned id.
// A foreign key violation on the owner is reported as domain.ErrNotFound.
func (s *ListingStorage) Create(ctx context.Context, listing domain.Listing) (*domain.Listing, error) {
	start := time.Now()

	query := `
	INSERT INTO listings (title, description, location, price, username, image)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, title, description, location, price, username, image`

	var created domain.Listing
	err := s.db.GetContext(ctx, &created, query,
		listing.Title, listing.Description, listing.Location, listing.Price, listing.Username, listing.Image)
	if err != nil {
		if pqErr, ok := pqError(err); ok && pqErr.Code == pqForeignKeyViolation {
			return nil, fmt.Errorf("no user %s: %w", listing.Username, domain.ErrNotFound)
		}
		s.logger.Error("failed to insert listing", "title", listing.Title, "error", err)
		return nil, fmt.Errorf("insert listing: %w", err)
	}

	s.logger.Info("listing created",
		"id", created.ID,
		"username", created.Username,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &created, nil
}

// FindAll returns listings matching the filter, ordered by title ascending.
// Validating min against max price is the caller's job; the filter builder
// binds whatever bounds it is given.
func (s *ListingStorage) FindAll(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error) {
	start := time.Now()

	where, vals := buildListingFilter(filter)
	query := fmt.Sprintf(`
	SELECT id, title, description, location, price, username, image
	  FROM listings %s
	 ORDER BY title`, where)

	listings := []domain.Listing{}
	if err := s.db.SelectContext(ctx, &listings, query, vals...); err != nil {
		s.logger.Error("failed to search listings", "error", err)
		return nil, fmt.Errorf("search listings: %w", err)
	}

	s.logger.Info("listings search completed",
		"found", len(listings),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return listings, nil
}

// Get returns a single listing by id.
func (s *ListingStorage) Get(ctx context.Context, id int64) (*domain.Listing, error) {
	var listing domain.Listing
	query := `
	SELECT id, title, description, location, price, username, image
	  FROM listings WHERE id = $1`

	err := s.db.GetContext(ctx, &listing, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("no listing %d: %w", id, domain.ErrNotFound)
		}
		s.logger.Error("failed to select listing", "id", id, "error", err)
		return nil, fmt.Errorf("select listing: %w", err)
	}

	return &listing, nil
}

// Update applies a partial update and returns the updated row. Field names
// map straight onto column names here, unlike the user update.
func (s *ListingStorage) Update(ctx context.Context, id int64, upd domain.ListingUpdate) (*domain.Listing, error) {
	start := time.Now()

	var fields []UpdateField
	if upd.Title != nil {
		fields = append(fields, UpdateField{Column: "title", Value: *upd.Title})
	}
	if upd.Description != nil {
		fields = append(fields, UpdateField{Column: "description", Value: *upd.Description})
	}
	if upd.Location != nil {
		fields = append(fields, UpdateField{Column: "location", Value: *upd.Location})
	}
	if upd.Price != nil {
		fields = append(fields, UpdateField{Column: "price", Value: *upd.Price})
	}
	if upd.Image != nil {
		fields = append(fields, UpdateField{Column: "image", Value: *upd.Image})
	}

	setClause, vals, err := buildPartialUpdate(fields)
	if err != nil {
		return nil, err
	}
	vals = append(vals, id)

	query := fmt.Sprintf(`
	UPDATE listings SET %s
	WHERE id = $%d
	RETURNING id, title, description, location, price, username, image`, setClause, len(vals))

	var listing domain.Listing
	err = s.db.GetContext(ctx, &listing, query, vals...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("no listing %d: %w", id, domain.ErrNotFound)
		}
		s.logger.Error("failed to update listing", "id", id, "error", err)
		return nil, fmt.Errorf("update listing: %w", err)
	}

	s.logger.Info("listing updated",
		"id", id,
		"fields", len(fields),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &listing, nil
}

// Delete removes a listing. domain.ErrNotFound when no row matched.
func (s *ListingStorage) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		s.logger.Error("failed to delete listing", "id", id, "error", err)
		return fmt.Errorf("delete listing: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete listing rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("no listing %d: %w", id, domain.ErrNotFound)
	}

	s.logger.Info("listing deleted", "id", id)
	return nil
}
