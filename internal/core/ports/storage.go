package ports

import (
	"context"
	"io"

	"github.com/GoArmGo/ShareBnB/internal/domain"
)

// UserStorage определяет методы для взаимодействия с хранилищем пользователей,
// бронирований и сообщений.
type UserStorage interface {
	Create(ctx context.Context, user domain.User) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Search(ctx context.Context, username string) ([]domain.User, error)
	Update(ctx context.Context, username string, upd domain.UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, username string) error

	ListingsByOwner(ctx context.Context, username string) ([]domain.ListingSummary, error)
	BookedListingIDs(ctx context.Context, username string) ([]int64, error)
	InsertBooking(ctx context.Context, username string, listingID int64) error
	DeleteBooking(ctx context.Context, username string, listingID int64) error
	BookedListings(ctx context.Context, username string) ([]domain.Listing, error)

	InsertMessage(ctx context.Context, from, to, text string) (*domain.Message, error)
	MessagesBetween(ctx context.Context, a, b string) ([]domain.Message, error)
	InboxUsers(ctx context.Context, username string) ([]string, error)
}

// ListingStorage определяет методы для взаимодействия с хранилищем объявлений.
type ListingStorage interface {
	Create(ctx context.Context, listing domain.Listing) (*domain.Listing, error)
	FindAll(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error)
	Get(ctx context.Context, id int64) (*domain.Listing, error)
	Update(ctx context.Context, id int64, upd domain.ListingUpdate) (*domain.Listing, error)
	Delete(ctx context.Context, id int64) error
}

// FileStorage определяет интерфейс для работы с файловым хранилищем (AWS S3, MinIO).
type FileStorage interface {
	// UploadFile загружает файл в хранилище и возвращает его публичный URL.
	UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)

	// DeleteFile удаляет файл из хранилища по его ключу.
	DeleteFile(ctx context.Context, key string) error
}
