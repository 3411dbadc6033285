package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/ShareBnB/internal/core/ports"
	"github.com/GoArmGo/ShareBnB/internal/domain"
	"github.com/google/uuid"
)

// listingInteractor implements ListingUseCase.
type listingInteractor struct {
	listingStorage ports.ListingStorage
	fileStorage    ports.FileStorage
	defaultImage   string
	logger         *slog.Logger
}

func NewListingUseCase(
	listingStorage ports.ListingStorage,
	fileStorage ports.FileStorage,
	defaultImage string,
	logger *slog.Logger,
) ListingUseCase {
	return &listingInteractor{
		listingStorage: listingStorage,
		fileStorage:    fileStorage,
		defaultImage:   defaultImage,
		logger:         logger,
	}
}

func (uc *listingInteractor) Create(ctx context.Context, input ListingInput, owner string) (*domain.Listing, error) {
	if input.Price < 0 {
		return nil, fmt.Errorf("price must be non-negative: %w", domain.ErrInvalidInput)
	}

	imageURL := uc.defaultImage
	if input.Image != nil {
		key := fmt.Sprintf("listing-photos/%s", uuid.New().String())

		url, err := uc.fileStorage.UploadFile(ctx, key, input.Image, input.ImageContentType)
		if err != nil {
			return nil, fmt.Errorf("upload listing image: %w", err)
		}
		imageURL = url
		uc.logger.Info("listing image uploaded", "key", key, "owner", owner)
	}

	return uc.listingStorage.Create(ctx, domain.Listing{
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		Price:       input.Price,
		Username:    owner,
		Image:       imageURL,
	})
}

func (uc *listingInteractor) FindAll(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error) {
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		return nil, fmt.Errorf("min price cannot be greater than max price: %w", domain.ErrInvalidInput)
	}

	return uc.listingStorage.FindAll(ctx, filter)
}

func (uc *listingInteractor) Get(ctx context.Context, id int64) (*domain.Listing, error) {
	return uc.listingStorage.Get(ctx, id)
}

// Update reads the listing first to resolve the owner, authorizes the actor
// against it, and only then mutates. Never blind-mutate.
func (uc *listingInteractor) Update(ctx context.Context, id int64, actor string, upd domain.ListingUpdate) (*domain.Listing, error) {
	listing, err := uc.listingStorage.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if listing.Username != actor {
		return nil, fmt.Errorf("listing %d is not owned by %s: %w", id, actor, domain.ErrForbidden)
	}

	if upd.Price != nil && *upd.Price < 0 {
		return nil, fmt.Errorf("price must be non-negative: %w", domain.ErrInvalidInput)
	}

	return uc.listingStorage.Update(ctx, id, upd)
}

func (uc *listingInteractor) Remove(ctx context.Context, id int64, actor string) error {
	listing, err := uc.listingStorage.Get(ctx, id)
	if err != nil {
		return err
	}

	if listing.Username != actor {
		return fmt.Errorf("listing %d is not owned by %s: %w", id, actor, domain.ErrForbidden)
	}

	return uc.listingStorage.Delete(ctx, id)
}
