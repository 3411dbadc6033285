package usecase

import (
	"context"

	"github.com/GoArmGo/ShareBnB/internal/domain"
)

// RegisterInput carries the fields of a registration request. The plaintext
// password is hashed here and never reaches storage.
type RegisterInput struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// UserUseCase определяет интерфейс для бизнес-логики работы с пользователями,
// бронированиями и сообщениями.
type UserUseCase interface {
	// Register создает пользователя, хешируя пароль;
	// повторное имя или email дают domain.ErrConflict.
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)

	// Authenticate проверяет учетные данные и возвращает публичный профиль.
	// Неизвестное имя и неверный пароль неразличимы: domain.ErrUnauthorized.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)

	// Get возвращает профиль вместе с объявлениями пользователя и
	// идентификаторами его бронирований.
	Get(ctx context.Context, username string) (*domain.UserDetail, error)

	// Search возвращает пользователей по частичному совпадению имени.
	Search(ctx context.Context, username string) ([]domain.User, error)

	// Update применяет частичное обновление после повторной проверки
	// текущего пароля.
	Update(ctx context.Context, username string, upd domain.UserUpdate) (*domain.User, error)

	// Remove удаляет пользователя после повторной проверки пароля.
	Remove(ctx context.Context, username, currentPassword string) error

	// BookListing бронирует объявление и возвращает его заголовок.
	BookListing(ctx context.Context, username string, listingID int64) (string, error)

	// UnbookListing снимает бронь и возвращает заголовок объявления.
	UnbookListing(ctx context.Context, username string, listingID int64) (string, error)

	// Bookings возвращает объявления, забронированные пользователем.
	Bookings(ctx context.Context, username string) ([]domain.Listing, error)

	// SendMessage отправляет личное сообщение и возвращает сохраненную запись.
	SendMessage(ctx context.Context, from, to, text string) (*domain.Message, error)

	// Messages возвращает переписку двух пользователей по возрастанию времени.
	Messages(ctx context.Context, username, otherUser string) ([]domain.Message, error)

	// InboxUsers возвращает собеседников пользователя, сначала самые свежие.
	InboxUsers(ctx context.Context, username string) ([]string, error)
}
