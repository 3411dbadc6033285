package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/ShareBnB/internal/auth"
	"github.com/GoArmGo/ShareBnB/internal/core/ports"
	"github.com/GoArmGo/ShareBnB/internal/domain"
	"github.com/GoArmGo/ShareBnB/internal/messaging/payloads"
)

// userInteractor implements UserUseCase.
type userInteractor struct {
	userStorage    ports.UserStorage
	listingStorage ports.ListingStorage
	hasher         *auth.PasswordHasher
	notifier       ports.MessageNotificationPublisher
	logger         *slog.Logger
}

func NewUserUseCase(
	userStorage ports.UserStorage,
	listingStorage ports.ListingStorage,
	hasher *auth.PasswordHasher,
	notifier ports.MessageNotificationPublisher,
	logger *slog.Logger,
) UserUseCase {
	return &userInteractor{
		userStorage:    userStorage,
		listingStorage: listingStorage,
		hasher:         hasher,
		notifier:       notifier,
		logger:         logger,
	}
}

func (uc *userInteractor) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("register %s: %w", input.Username, err)
	}

	created, err := uc.userStorage.Create(ctx, domain.User{
		Username:     input.Username,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("user registered", "username", created.Username)

	created.PasswordHash = ""
	return created, nil
}

func (uc *userInteractor) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := uc.userStorage.GetByUsername(ctx, username)
	if err != nil {
		// an unknown username reads the same as a wrong password
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("authenticate %s: %w", username, domain.ErrUnauthorized)
		}
		return nil, err
	}

	if err := uc.hasher.Verify(user.PasswordHash, password); err != nil {
		uc.logger.Warn("failed authentication attempt", "username", username)
		return nil, fmt.Errorf("authenticate %s: %w", username, domain.ErrUnauthorized)
	}

	user.PasswordHash = ""
	return user, nil
}

func (uc *userInteractor) Get(ctx context.Context, username string) (*domain.UserDetail, error) {
	user, err := uc.userStorage.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	listings, err := uc.userStorage.ListingsByOwner(ctx, username)
	if err != nil {
		return nil, err
	}

	bookings, err := uc.userStorage.BookedListingIDs(ctx, username)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &domain.UserDetail{
		User:     *user,
		Listings: listings,
		Bookings: bookings,
	}, nil
}

func (uc *userInteractor) Search(ctx context.Context, username string) ([]domain.User, error) {
	return uc.userStorage.Search(ctx, username)
}

// Update re-authenticates with the current password before touching the row.
// This is deliberate: there is no admin bypass, a mutation always proves the
// actor still holds the credential.
func (uc *userInteractor) Update(ctx context.Context, username string, upd domain.UserUpdate) (*domain.User, error) {
	if _, err := uc.Authenticate(ctx, username, upd.Password); err != nil {
		return nil, err
	}

	user, err := uc.userStorage.Update(ctx, username, upd)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (uc *userInteractor) Remove(ctx context.Context, username, currentPassword string) error {
	if _, err := uc.Authenticate(ctx, username, currentPassword); err != nil {
		return err
	}

	return uc.userStorage.Delete(ctx, username)
}

func (uc *userInteractor) BookListing(ctx context.Context, username string, listingID int64) (string, error) {
	listing, err := uc.listingStorage.Get(ctx, listingID)
	if err != nil {
		return "", err
	}

	if _, err := uc.userStorage.GetByUsername(ctx, username); err != nil {
		return "", err
	}

	if listing.Username == username {
		return "", fmt.Errorf("cannot book own listing %d: %w", listingID, domain.ErrInvalidInput)
	}

	// the primary key on bookings decides duplicates, no pre-check
	if err := uc.userStorage.InsertBooking(ctx, username, listingID); err != nil {
		return "", err
	}

	return listing.Title, nil
}

func (uc *userInteractor) UnbookListing(ctx context.Context, username string, listingID int64) (string, error) {
	listing, err := uc.listingStorage.Get(ctx, listingID)
	if err != nil {
		return "", err
	}

	if _, err := uc.userStorage.GetByUsername(ctx, username); err != nil {
		return "", err
	}

	if err := uc.userStorage.DeleteBooking(ctx, username, listingID); err != nil {
		return "", err
	}

	return listing.Title, nil
}

func (uc *userInteractor) Bookings(ctx context.Context, username string) ([]domain.Listing, error) {
	if _, err := uc.userStorage.GetByUsername(ctx, username); err != nil {
		return nil, err
	}

	return uc.userStorage.BookedListings(ctx, username)
}

func (uc *userInteractor) SendMessage(ctx context.Context, from, to, text string) (*domain.Message, error) {
	if from == to {
		return nil, fmt.Errorf("cannot message yourself: %w", domain.ErrInvalidInput)
	}

	msg, err := uc.userStorage.InsertMessage(ctx, from, to, text)
	if err != nil {
		return nil, err
	}

	// notification delivery is best effort, the message is already stored
	if err := uc.notifier.PublishMessageNotification(ctx, payloads.MessageNotificationPayload{
		FromUser: msg.FromUser,
		ToUser:   msg.ToUser,
		Text:     msg.Text,
		SentTime: msg.SentTime,
	}); err != nil {
		uc.logger.Warn("failed to publish message notification", "from", from, "to", to, "error", err)
	}

	return msg, nil
}

func (uc *userInteractor) Messages(ctx context.Context, username, otherUser string) ([]domain.Message, error) {
	if username == otherUser {
		return nil, fmt.Errorf("cannot message yourself: %w", domain.ErrInvalidInput)
	}

	if _, err := uc.userStorage.GetByUsername(ctx, username); err != nil {
		return nil, err
	}
	if _, err := uc.userStorage.GetByUsername(ctx, otherUser); err != nil {
		return nil, err
	}

	return uc.userStorage.MessagesBetween(ctx, username, otherUser)
}

func (uc *userInteractor) InboxUsers(ctx context.Context, username string) ([]string, error) {
	if _, err := uc.userStorage.GetByUsername(ctx, username); err != nil {
		return nil, err
	}

	return uc.userStorage.InboxUsers(ctx, username)
}
