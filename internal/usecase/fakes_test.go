package usecase

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/GoArmGo/ShareBnB/internal/domain"
	"github.com/GoArmGo/ShareBnB/internal/messaging/payloads"
)

// In-memory stand-ins for the postgres storages. They mirror the error
// contract of the real implementations so the interactors can be tested
// without a database.

type fakeUserStorage struct {
	users    map[string]domain.User
	bookings map[string]map[int64]bool
	messages []domain.Message
	clock    time.Time
}

func newFakeUserStorage() *fakeUserStorage {
	return &fakeUserStorage{
		users:    make(map[string]domain.User),
		bookings: make(map[string]map[int64]bool),
		clock:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakeUserStorage) Create(_ context.Context, user domain.User) (*domain.User, error) {
	if _, ok := f.users[user.Username]; ok {
		return nil, fmt.Errorf("duplicate user %s: %w", user.Username, domain.ErrConflict)
	}
	f.users[user.Username] = user
	out := user
	return &out, nil
}

func (f *fakeUserStorage) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, fmt.Errorf("no user %s: %w", username, domain.ErrNotFound)
	}
	out := user
	return &out, nil
}

func (f *fakeUserStorage) Search(_ context.Context, _ string) ([]domain.User, error) {
	users := make([]domain.User, 0, len(f.users))
	for _, u := range f.users {
		u.PasswordHash = ""
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (f *fakeUserStorage) Update(_ context.Context, username string, upd domain.UserUpdate) (*domain.User, error) {
	if upd.FirstName == nil && upd.LastName == nil && upd.Email == nil {
		return nil, fmt.Errorf("no fields to update: %w", domain.ErrInvalidInput)
	}
	user, ok := f.users[username]
	if !ok {
		return nil, fmt.Errorf("no user %s: %w", username, domain.ErrNotFound)
	}
	if upd.FirstName != nil {
		user.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		user.LastName = *upd.LastName
	}
	if upd.Email != nil {
		user.Email = *upd.Email
	}
	f.users[username] = user
	out := user
	return &out, nil
}

func (f *fakeUserStorage) Delete(_ context.Context, username string) error {
	if _, ok := f.users[username]; !ok {
		return fmt.Errorf("no user %s: %w", username, domain.ErrNotFound)
	}
	delete(f.users, username)
	return nil
}

func (f *fakeUserStorage) ListingsByOwner(_ context.Context, _ string) ([]domain.ListingSummary, error) {
	return []domain.ListingSummary{}, nil
}

func (f *fakeUserStorage) BookedListingIDs(_ context.Context, username string) ([]int64, error) {
	ids := []int64{}
	for id := range f.bookings[username] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (f *fakeUserStorage) InsertBooking(_ context.Context, username string, listingID int64) error {
	if _, ok := f.users[username]; !ok {
		return fmt.Errorf("booking target missing: %w", domain.ErrNotFound)
	}
	if f.bookings[username] == nil {
		f.bookings[username] = make(map[int64]bool)
	}
	if f.bookings[username][listingID] {
		return fmt.Errorf("listing %d already booked by %s: %w", listingID, username, domain.ErrInvalidInput)
	}
	f.bookings[username][listingID] = true
	return nil
}

func (f *fakeUserStorage) DeleteBooking(_ context.Context, username string, listingID int64) error {
	if !f.bookings[username][listingID] {
		return fmt.Errorf("listing %d not booked by %s: %w", listingID, username, domain.ErrInvalidInput)
	}
	delete(f.bookings[username], listingID)
	return nil
}

func (f *fakeUserStorage) BookedListings(_ context.Context, _ string) ([]domain.Listing, error) {
	return []domain.Listing{}, nil
}

func (f *fakeUserStorage) InsertMessage(_ context.Context, from, to, text string) (*domain.Message, error) {
	if _, ok := f.users[from]; !ok {
		return nil, fmt.Errorf("no user %s: %w", from, domain.ErrNotFound)
	}
	if _, ok := f.users[to]; !ok {
		return nil, fmt.Errorf("no user %s: %w", to, domain.ErrNotFound)
	}
	// monotonic server-assigned timestamps
	f.clock = f.clock.Add(time.Second)
	msg := domain.Message{FromUser: from, ToUser: to, Text: text, SentTime: f.clock}
	f.messages = append(f.messages, msg)
	out := msg
	return &out, nil
}

func (f *fakeUserStorage) MessagesBetween(_ context.Context, a, b string) ([]domain.Message, error) {
	msgs := []domain.Message{}
	for _, m := range f.messages {
		if (m.FromUser == a && m.ToUser == b) || (m.FromUser == b && m.ToUser == a) {
			msgs = append(msgs, m)
		}
	}
	sort.Slice(msgs, func(i, j int) bool { return msgs[i].SentTime.Before(msgs[j].SentTime) })
	return msgs, nil
}

func (f *fakeUserStorage) InboxUsers(_ context.Context, username string) ([]string, error) {
	latest := map[string]time.Time{}
	for _, m := range f.messages {
		var other string
		switch username {
		case m.FromUser:
			other = m.ToUser
		case m.ToUser:
			other = m.FromUser
		default:
			continue
		}
		if m.SentTime.After(latest[other]) {
			latest[other] = m.SentTime
		}
	}
	inbox := make([]string, 0, len(latest))
	for other := range latest {
		inbox = append(inbox, other)
	}
	sort.Slice(inbox, func(i, j int) bool { return latest[inbox[i]].After(latest[inbox[j]]) })
	return inbox, nil
}

type fakeListingStorage struct {
	listings map[int64]domain.Listing
	nextID   int64
}

func newFakeListingStorage() *fakeListingStorage {
	return &fakeListingStorage{listings: make(map[int64]domain.Listing), nextID: 1}
}

func (f *fakeListingStorage) Create(_ context.Context, listing domain.Listing) (*domain.Listing, error) {
	listing.ID = f.nextID
	f.nextID++
	f.listings[listing.ID] = listing
	out := listing
	return &out, nil
}

func (f *fakeListingStorage) FindAll(_ context.Context, filter domain.ListingFilter) ([]domain.Listing, error) {
	result := []domain.Listing{}
	for _, l := range f.listings {
		if filter.MinPrice != nil && l.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && l.Price > *filter.MaxPrice {
			continue
		}
		result = append(result, l)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Title < result[j].Title })
	return result, nil
}

func (f *fakeListingStorage) Get(_ context.Context, id int64) (*domain.Listing, error) {
	listing, ok := f.listings[id]
	if !ok {
		return nil, fmt.Errorf("no listing %d: %w", id, domain.ErrNotFound)
	}
	out := listing
	return &out, nil
}

func (f *fakeListingStorage) Update(_ context.Context, id int64, upd domain.ListingUpdate) (*domain.Listing, error) {
	listing, ok := f.listings[id]
	if !ok {
		return nil, fmt.Errorf("no listing %d: %w", id, domain.ErrNotFound)
	}
	if upd.Title != nil {
		listing.Title = *upd.Title
	}
	if upd.Description != nil {
		listing.Description = *upd.Description
	}
	if upd.Location != nil {
		listing.Location = *upd.Location
	}
	if upd.Price != nil {
		listing.Price = *upd.Price
	}
	if upd.Image != nil {
		listing.Image = *upd.Image
	}
	f.listings[id] = listing
	out := listing
	return &out, nil
}

func (f *fakeListingStorage) Delete(_ context.Context, id int64) error {
	if _, ok := f.listings[id]; !ok {
		return fmt.Errorf("no listing %d: %w", id, domain.ErrNotFound)
	}
	delete(f.listings, id)
	return nil
}

type fakePublisher struct {
	published []payloads.MessageNotificationPayload
	err       error
}

func (f *fakePublisher) PublishMessageNotification(_ context.Context, payload payloads.MessageNotificationPayload) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, payload)
	return nil
}

type fakeFileStorage struct {
	uploads []string
}

func (f *fakeFileStorage) UploadFile(_ context.Context, key string, reader io.Reader, _ string) (string, error) {
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return "", err
	}
	f.uploads = append(f.uploads, key)
	return "https://files.test/" + key, nil
}

func (f *fakeFileStorage) DeleteFile(_ context.Context, _ string) error {
	return nil
}
