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

// UserStorage owns all queries against the users, bookings and messages tables.
type UserStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewUserStorage(db *sqlx.DB, logger *slog.Logger) *UserStorage {
	return &UserStorage{db: db, logger: logger}
}

// Create inserts a new user row. The password hash must already be computed.
// A username or email collision is reported as domain.ErrConflict; the unique
// constraints decide, there is no pre-select.
func (s *UserStorage) Create(ctx context.Context, user domain.User) (*domain.User, error) {
	start := time.Now()

	query := `
	INSERT INTO users (username, password, first_name, last_name, email)
	VALUES (:username, :password, :first_name, :last_name, :email)
	`

	_, err := s.db.NamedExecContext(ctx, query, &user)
	if err != nil {
		if pqErr, ok := pqError(err); ok && pqErr.Code == pqUniqueViolation {
			s.logger.Warn("duplicate user", "username", user.Username, "constraint", pqErr.Constraint)
			return nil, fmt.Errorf("duplicate user %s: %w", user.Username, domain.ErrConflict)
		}
		s.logger.Error("failed to insert user", "username", user.Username, "error", err)
		return nil, fmt.Errorf("insert user: %w", err)
	}

	s.logger.Info("user created",
		"username", user.Username,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &user, nil
}

// GetByUsername returns the full user row including the password hash.
func (s *UserStorage) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	query := `SELECT username, password, first_name, last_name, email FROM users WHERE username = $1`

	err := s.db.GetContext(ctx, &user, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("no user %s: %w", username, domain.ErrNotFound)
		}
		s.logger.Error("failed to select user", "username", username, "error", err)
		return nil, fmt.Errorf("select user: %w", err)
	}

	return &user, nil
}

// Search returns users ordered by username, optionally filtered by a
// case-insensitive username substring.
func (s *UserStorage) Search(ctx context.Context, username string) ([]domain.User, error) {
	start := time.Now()

	where, vals := buildUserFilter(username)
	query := fmt.Sprintf(`
	SELECT username, first_name, last_name, email FROM users
	%s
	ORDER BY username`, where)

	users := []domain.User{}
	if err := s.db.SelectContext(ctx, &users, query, vals...); err != nil {
		s.logger.Error("failed to search users", "term", username, "error", err)
		return nil, fmt.Errorf("search users: %w", err)
	}

	s.logger.Info("users search completed",
		"term", username,
		"found", len(users),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return users, nil
}

// Update applies a partial update and returns the updated row. Only the
// supplied fields are translated into column assignments; an empty update is
// rejected by the builder with domain.ErrInvalidInput. A row that vanished
// between re-authentication and the update surfaces as domain.ErrNotFound.
func (s *UserStorage) Update(ctx context.Context, username string, upd domain.UserUpdate) (*domain.User, error) {
	start := time.Now()

	var fields []UpdateField
	if upd.FirstName != nil {
		fields = append(fields, UpdateField{Column: "first_name", Value: *upd.FirstName})
	}
	if upd.LastName != nil {
		fields = append(fields, UpdateField{Column: "last_name", Value: *upd.LastName})
	}
	if upd.Email != nil {
		fields = append(fields, UpdateField{Column: "email", Value: *upd.Email})
	}

	setClause, vals, err := buildPartialUpdate(fields)
	if err != nil {
		return nil, err
	}
	vals = append(vals, username)

	query := fmt.Sprintf(`
	UPDATE users SET %s
	WHERE username = $%d
	RETURNING username, password, first_name, last_name, email`, setClause, len(vals))

	var user domain.User
	err = s.db.GetContext(ctx, &user, query, vals...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("no user %s: %w", username, domain.ErrNotFound)
		}
		if pqErr, ok := pqError(err); ok && pqErr.Code == pqUniqueViolation {
			return nil, fmt.Errorf("duplicate email for %s: %w", username, domain.ErrConflict)
		}
		s.logger.Error("failed to update user", "username", username, "error", err)
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.logger.Info("user updated",
		"username", username,
		"fields", len(fields),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &user, nil
}

// Delete removes a user row. domain.ErrNotFound when no row matched.
func (s *UserStorage) Delete(ctx context.Context, username string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		s.logger.Error("failed to delete user", "username", username, "error", err)
		return fmt.Errorf("delete user: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("no user %s: %w", username, domain.ErrNotFound)
	}

	s.logger.Info("user deleted", "username", username)
	return nil
}

// ListingsByOwner returns the listings owned by a user, without owner and
// image columns, for embedding into a profile.
func (s *UserStorage) ListingsByOwner(ctx context.Context, username string) ([]domain.ListingSummary, error) {
	listings := []domain.ListingSummary{}
	query := `
	SELECT id, title, description, location, price FROM listings
	WHERE username = $1
	ORDER BY id`

	if err := s.db.SelectContext(ctx, &listings, query, username); err != nil {
		s.logger.Error("failed to select owned listings", "username", username, "error", err)
		return nil, fmt.Errorf("select owned listings: %w", err)
	}
	return listings, nil
}

// BookedListingIDs returns the ids of listings the user has booked,
// ascending by id.
func (s *UserStorage) BookedListingIDs(ctx context.Context, username string) ([]int64, error) {
	ids := []int64{}
	query := `SELECT listing_id FROM bookings WHERE username = $1 ORDER BY listing_id`

	if err := s.db.SelectContext(ctx, &ids, query, username); err != nil {
		s.logger.Error("failed to select booked listing ids", "username", username, "error", err)
		return nil, fmt.Errorf("select booked listing ids: %w", err)
	}
	return ids, nil
}

// InsertBooking records a booking as a single conditional insert. The
// primary key on (username, listing_id) makes a duplicate booking a no-op,
// reported as domain.ErrInvalidInput; a foreign key violation means the
// user or listing vanished and is reported as domain.ErrNotFound.
func (s *UserStorage) InsertBooking(ctx context.Context, username string, listingID int64) error {
	start := time.Now()

	query := `
	INSERT INTO bookings (username, listing_id)
	VALUES ($1, $2)
	ON CONFLICT (username, listing_id) DO NOTHING`

	res, err := s.db.ExecContext(ctx, query, username, listingID)
	if err != nil {
		if pqErr, ok := pqError(err); ok && pqErr.Code == pqForeignKeyViolation {
			s.logger.Warn("booking references missing row",
				"username", username,
				"listing_id", listingID,
				"constraint", pqErr.Constraint,
			)
			return fmt.Errorf("booking target missing: %w", domain.ErrNotFound)
		}
		s.logger.Error("failed to insert booking", "username", username, "listing_id", listingID, "error", err)
		return fmt.Errorf("insert booking: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert booking rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("listing %d already booked by %s: %w", listingID, username, domain.ErrInvalidInput)
	}

	s.logger.Info("booking created",
		"username", username,
		"listing_id", listingID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// DeleteBooking removes a booking. domain.ErrInvalidInput when the pair was
// never booked.
func (s *UserStorage) DeleteBooking(ctx context.Context, username string, listingID int64) error {
	query := `DELETE FROM bookings WHERE username = $1 AND listing_id = $2`

	res, err := s.db.ExecContext(ctx, query, username, listingID)
	if err != nil {
		s.logger.Error("failed to delete booking", "username", username, "listing_id", listingID, "error", err)
		return fmt.Errorf("delete booking: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete booking rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("listing %d not booked by %s: %w", listingID, username, domain.ErrInvalidInput)
	}

	s.logger.Info("booking deleted", "username", username, "listing_id", listingID)
	return nil
}

// BookedListings returns the full listings a user has booked, joined
// through the bookings table, ordered by listing id.
func (s *UserStorage) BookedListings(ctx context.Context, username string) ([]domain.Listing, error) {
	listings := []domain.Listing{}
	query := `
	SELECT l.id, l.title, l.description, l.location, l.price, l.username, l.image
	  FROM bookings AS b
	  JOIN listings AS l ON b.listing_id = l.id
	 WHERE b.username = $1
	 ORDER BY l.id`

	if err := s.db.SelectContext(ctx, &listings, query, username); err != nil {
		s.logger.Error("failed to select booked listings", "username", username, "error", err)
		return nil, fmt.Errorf("select booked listings: %w", err)
	}
	return listings, nil
}

// InsertMessage stores a message with a server-assigned timestamp and
// returns the stored row. The foreign keys stand in for existence checks;
// the violated constraint tells us which side is missing.
func (s *UserStorage) InsertMessage(ctx context.Context, from, to, text string) (*domain.Message, error) {
	start := time.Now()

	var msg domain.Message
	query := `
	INSERT INTO messages (from_user, to_user, text)
	VALUES ($1, $2, $3)
	RETURNING from_user, to_user, text, sent_time`

	err := s.db.GetContext(ctx, &msg, query, from, to, text)
	if err != nil {
		if pqErr, ok := pqError(err); ok && pqErr.Code == pqForeignKeyViolation {
			switch pqErr.Constraint {
			case "messages_from_user_fkey":
				return nil, fmt.Errorf("no user %s: %w", from, domain.ErrNotFound)
			case "messages_to_user_fkey":
				return nil, fmt.Errorf("no user %s: %w", to, domain.ErrNotFound)
			}
		}
		s.logger.Error("failed to insert message", "from", from, "to", to, "error", err)
		return nil, fmt.Errorf("insert message: %w", err)
	}

	s.logger.Info("message stored",
		"from", from,
		"to", to,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &msg, nil
}

// MessagesBetween returns every message exchanged between the two users in
// either direction, ordered by sent time ascending.
func (s *UserStorage) MessagesBetween(ctx context.Context, a, b string) ([]domain.Message, error) {
	messages := []domain.Message{}
	query := `
	SELECT from_user, to_user, text, sent_time
	  FROM messages
	 WHERE (to_user = $1 AND from_user = $2)
	    OR (from_user = $1 AND to_user = $2)
	 ORDER BY sent_time`

	if err := s.db.SelectContext(ctx, &messages, query, a, b); err != nil {
		s.logger.Error("failed to select conversation", "a", a, "b", b, "error", err)
		return nil, fmt.Errorf("select conversation: %w", err)
	}
	return messages, nil
}

// inboxRow is the per-direction aggregate used to build the inbox.
type inboxRow struct {
	SentTime time.Time `db:"sent_time"`
	ToUser   string    `db:"to_user"`
	FromUser string    `db:"from_user"`
}

// InboxUsers returns the distinct correspondents of a user, most recent
// exchange first. The query aggregates per (to, from) direction, so the
// same correspondent can appear twice; deduplication happens here,
// keeping the first (latest) occurrence.
func (s *UserStorage) InboxUsers(ctx context.Context, username string) ([]string, error) {
	start := time.Now()

	rows := []inboxRow{}
	query := `
	SELECT MAX(sent_time) AS sent_time, to_user, from_user
	  FROM messages
	 WHERE to_user = $1 OR from_user = $1
	 GROUP BY to_user, from_user
	 ORDER BY MAX(sent_time) DESC`

	if err := s.db.SelectContext(ctx, &rows, query, username); err != nil {
		s.logger.Error("failed to select inbox", "username", username, "error", err)
		return nil, fmt.Errorf("select inbox: %w", err)
	}

	seen := make(map[string]struct{}, len(rows))
	inbox := []string{}
	for _, r := range rows {
		other := r.FromUser
		if other == username {
			other = r.ToUser
		}
		if _, ok := seen[other]; ok {
			continue
		}
		seen[other] = struct{}{}
		inbox = append(inbox, other)
	}

	s.logger.Info("inbox built",
		"username", username,
		"correspondents", len(inbox),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return inbox, nil
}
