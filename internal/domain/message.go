package domain

import "time"

// Message представляет модель личного сообщения между пользователями.
// Соответствует таблице 'messages' в базе данных.
// Сообщения неизменяемы: они никогда не обновляются и не удаляются.
type Message struct {
	FromUser string    `json:"fromUser" db:"from_user"`
	ToUser   string    `json:"toUser" db:"to_user"`
	Text     string    `json:"text" db:"text"`
	SentTime time.Time `json:"sentTime" db:"sent_time"`
}

// Booking связывает пользователя с забронированным объявлением.
// Составной ключ (username, listing_id); записи либо существуют, либо нет.
type Booking struct {
	Username  string `json:"username" db:"username"`
	ListingID int64  `json:"listingId" db:"listing_id"`
}
