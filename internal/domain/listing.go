package domain

// Listing представляет модель объявления в системе.
// Соответствует таблице 'listings' в базе данных.
type Listing struct {
	ID          int64   `json:"id" db:"id"`
	Title       string  `json:"title" db:"title"`
	Description string  `json:"description" db:"description"`
	Location    string  `json:"location" db:"location"`
	Price       float64 `json:"price" db:"price"`
	Username    string  `json:"username" db:"username"`
	Image       string  `json:"image" db:"image"`
}

// ListingSummary is the reduced shape embedded in a user profile
// (owned listings are shown without owner and image).
type ListingSummary struct {
	ID          int64   `json:"id" db:"id"`
	Title       string  `json:"title" db:"title"`
	Description string  `json:"description" db:"description"`
	Location    string  `json:"location" db:"location"`
	Price       float64 `json:"price" db:"price"`
}

// ListingFilter holds the optional search criteria for listings.
// Nil price bounds mean "no bound"; empty location means "no location filter".
type ListingFilter struct {
	MinPrice *float64
	MaxPrice *float64
	Location string
}

// ListingUpdate carries the optional fields of a partial listing update.
type ListingUpdate struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Location    *string  `json:"location"`
	Price       *float64 `json:"price"`
	Image       *string  `json:"image"`
}
