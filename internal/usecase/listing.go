package usecase

import (
	"context"
	"io"

	"github.com/GoArmGo/ShareBnB/internal/domain"
)

// ListingInput carries the fields of a listing creation request. Image is an
// optional photo stream; when nil the configured placeholder is used.
type ListingInput struct {
	Title            string
	Description      string
	Location         string
	Price            float64
	Image            io.Reader
	ImageContentType string
}

// ListingUseCase определяет интерфейс для бизнес-логики работы с объявлениями.
type ListingUseCase interface {
	// Create создает объявление от имени владельца, загружая фото в S3.
	Create(ctx context.Context, input ListingInput, owner string) (*domain.Listing, error)

	// FindAll возвращает объявления по фильтру, отсортированные по заголовку.
	// minPrice > maxPrice дает domain.ErrInvalidInput.
	FindAll(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error)

	// Get возвращает объявление по id.
	Get(ctx context.Context, id int64) (*domain.Listing, error)

	// Update применяет частичное обновление. Только владелец может менять
	// объявление; чужой актор получает domain.ErrForbidden.
	Update(ctx context.Context, id int64, actor string, upd domain.ListingUpdate) (*domain.Listing, error)

	// Remove удаляет объявление. Только владелец может удалять.
	Remove(ctx context.Context, id int64, actor string) error
}
