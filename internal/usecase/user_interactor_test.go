package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/GoArmGo/ShareBnB/internal/auth"
	"github.com/GoArmGo/ShareBnB/internal/domain"
)

func newTestUserUseCase(t *testing.T) (UserUseCase, *fakeUserStorage, *fakeListingStorage, *fakePublisher) {
	t.Helper()

	users := newFakeUserStorage()
	listings := newFakeListingStorage()
	publisher := &fakePublisher{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	uc := NewUserUseCase(users, listings, auth.NewPasswordHasher(bcrypt.MinCost), publisher, logger)
	return uc, users, listings, publisher
}

func registerTestUser(t *testing.T, uc UserUseCase, username string) {
	t.Helper()

	_, err := uc.Register(context.Background(), RegisterInput{
		Username:  username,
		Password:  "secret123",
		FirstName: "Test",
		LastName:  "User",
		Email:     username + "@example.com",
	})
	require.NoError(t, err)
}

func TestRegister(t *testing.T) {
	uc, users, _, _ := newTestUserUseCase(t)
	ctx := context.Background()

	created, err := uc.Register(ctx, RegisterInput{
		Username:  "alice",
		Password:  "secret123",
		FirstName: "Alice",
		LastName:  "Aldridge",
		Email:     "alice@example.com",
	})
	require.NoError(t, err)
	require.Equal(t, "alice", created.Username)
	require.Empty(t, created.PasswordHash, "hash must not leave the usecase")

	stored := users.users["alice"]
	require.NotEqual(t, "secret123", stored.PasswordHash, "password must be stored hashed")
	require.NotEmpty(t, stored.PasswordHash)

	_, err = uc.Register(ctx, RegisterInput{Username: "alice", Password: "other", Email: "dup@example.com"})
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestAuthenticate(t *testing.T) {
	uc, _, _, _ := newTestUserUseCase(t)
	ctx := context.Background()
	registerTestUser(t, uc, "alice")

	user, err := uc.Authenticate(ctx, "alice", "secret123")
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
	require.Empty(t, user.PasswordHash)

	_, err = uc.Authenticate(ctx, "alice", "wrong-password")
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	// unknown username must be indistinguishable from a wrong password
	_, err = uc.Authenticate(ctx, "nobody", "secret123")
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	require.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateRequiresCurrentPassword(t *testing.T) {
	uc, _, _, _ := newTestUserUseCase(t)
	ctx := context.Background()
	registerTestUser(t, uc, "alice")

	newName := "Alicia"

	_, err := uc.Update(ctx, "alice", domain.UserUpdate{FirstName: &newName, Password: "wrong-password"})
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	updated, err := uc.Update(ctx, "alice", domain.UserUpdate{FirstName: &newName, Password: "secret123"})
	require.NoError(t, err)
	require.Equal(t, "Alicia", updated.FirstName)
	require.Empty(t, updated.PasswordHash)
}

func TestRemoveRequiresCurrentPassword(t *testing.T) {
	uc, users, _, _ := newTestUserUseCase(t)
	ctx := context.Background()
	registerTestUser(t, uc, "alice")

	err := uc.Remove(ctx, "alice", "wrong-password")
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	require.Contains(t, users.users, "alice")

	err = uc.Remove(ctx, "alice", "secret123")
	require.NoError(t, err)
	require.NotContains(t, users.users, "alice")
}

func TestBookListing(t *testing.T) {
	uc, _, listings, _ := newTestUserUseCase(t)
	ctx := context.Background()
	registerTestUser(t, uc, "alice")
	registerTestUser(t, uc, "bob")

	created, err := listings.Create(ctx, domain.Listing{Title: "Treehouse", Price: 100, Username: "bob"})
	require.NoError(t, err)

	title, err := uc.BookListing(ctx, "alice", created.ID)
	require.NoError(t, err)
	require.Equal(t, "Treehouse", title)

	// booking twice hits the uniqueness rule, not a pre-check
	_, err = uc.BookListing(ctx, "alice", created.ID)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.BookListing(ctx, "bob", created.ID)
	require.ErrorIs(t, err, domain.ErrInvalidInput, "owners cannot book their own listing")

	_, err = uc.BookListing(ctx, "alice", 9999)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUnbookListing(t *testing.T) {
	uc, _, listings, _ := newTestUserUseCase(t)
	ctx := context.Background()
	registerTestUser(t, uc, "alice")
	registerTestUser(t, uc, "bob")

	created, err := listings.Create(ctx, domain.Listing{Title: "Treehouse", Price: 100, Username: "bob"})
	require.NoError(t, err)

	_, err = uc.UnbookListing(ctx, "alice", created.ID)
	require.ErrorIs(t, err, domain.ErrInvalidInput, "cancelling a booking that does not exist")

	_, err = uc.BookListing(ctx, "alice", created.ID)
	require.NoError(t, err)

	title, err := uc.UnbookListing(ctx, "alice", created.ID)
	require.NoError(t, err)
	require.Equal(t, "Treehouse", title)

	ids, err := uc.Bookings(ctx, "alice")
	require.NoError(t, err)
	require.Empty(t, ids)
}

func TestSendMessage(t *testing.T) {
	uc, _, _, publisher := newTestUserUseCase(t)
	ctx := context.Background()
	registerTestUser(t, uc, "alice")
	registerTestUser(t, uc, "bob")

	_, err := uc.SendMessage(ctx, "alice", "alice", "hi me")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.SendMessage(ctx, "alice", "nobody", "hello?")
	require.ErrorIs(t, err, domain.ErrNotFound)

	msg, err := uc.SendMessage(ctx, "alice", "bob", "hi bob")
	require.NoError(t, err)
	require.Equal(t, "alice", msg.FromUser)
	require.Equal(t, "bob", msg.ToUser)
	require.False(t, msg.SentTime.IsZero(), "timestamp is assigned by the storage")

	require.Len(t, publisher.published, 1)
	require.Equal(t, "hi bob", publisher.published[0].Text)
}

func TestSendMessageSurvivesPublisherFailure(t *testing.T) {
	uc, users, _, publisher := newTestUserUseCase(t)
	ctx := context.Background()
	registerTestUser(t, uc, "alice")
	registerTestUser(t, uc, "bob")

	publisher.err = errors.New("broker down")

	msg, err := uc.SendMessage(ctx, "alice", "bob", "hi bob")
	require.NoError(t, err, "notification delivery is best effort")
	require.NotNil(t, msg)
	require.Len(t, users.messages, 1)
}

func TestMessagesOrderedBySentTime(t *testing.T) {
	uc, _, _, _ := newTestUserUseCase(t)
	ctx := context.Background()
	registerTestUser(t, uc, "alice")
	registerTestUser(t, uc, "bob")

	_, err := uc.SendMessage(ctx, "alice", "bob", "first")
	require.NoError(t, err)
	_, err = uc.SendMessage(ctx, "bob", "alice", "second")
	require.NoError(t, err)

	msgs, err := uc.Messages(ctx, "alice", "bob")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	require.Equal(t, "first", msgs[0].Text)
	require.Equal(t, "second", msgs[1].Text)

	_, err = uc.Messages(ctx, "alice", "alice")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Messages(ctx, "alice", "nobody")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInboxUsersNewestFirst(t *testing.T) {
	uc, _, _, _ := newTestUserUseCase(t)
	ctx := context.Background()
	registerTestUser(t, uc, "alice")
	registerTestUser(t, uc, "bob")
	registerTestUser(t, uc, "carol")

	_, err := uc.SendMessage(ctx, "alice", "bob", "hi bob")
	require.NoError(t, err)
	_, err = uc.SendMessage(ctx, "carol", "alice", "hi alice")
	require.NoError(t, err)

	inbox, err := uc.InboxUsers(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, []string{"carol", "bob"}, inbox)

	_, err = uc.InboxUsers(ctx, "nobody")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetProfile(t *testing.T) {
	uc, _, listings, _ := newTestUserUseCase(t)
	ctx := context.Background()
	registerTestUser(t, uc, "alice")
	registerTestUser(t, uc, "bob")

	created, err := listings.Create(ctx, domain.Listing{Title: "Treehouse", Price: 100, Username: "bob"})
	require.NoError(t, err)
	_, err = uc.BookListing(ctx, "alice", created.ID)
	require.NoError(t, err)

	detail, err := uc.Get(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "alice", detail.Username)
	require.Empty(t, detail.PasswordHash)
	require.Equal(t, []int64{created.ID}, detail.Bookings)

	_, err = uc.Get(ctx, "nobody")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
