package domain

// User представляет модель пользователя в системе.
// Соответствует таблице 'users' в базе данных.
type User struct {
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-" db:"password"`
	FirstName    string `json:"firstName" db:"first_name"`
	LastName     string `json:"lastName" db:"last_name"`
	Email        string `json:"email" db:"email"`
}

// UserDetail is the full profile returned for a single user:
// public fields plus owned listings and booked listing ids.
type UserDetail struct {
	User
	Listings []ListingSummary `json:"listings"`
	Bookings []int64          `json:"bookings"`
}

// UserUpdate carries the optional fields of a partial user update.
// Nil pointers mean "leave unchanged". Password is the CURRENT password,
// used only for re-authentication; it is never written by an update.
type UserUpdate struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Password  string  `json:"password"`
}
