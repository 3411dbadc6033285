package payloads

import "time"

// MessageNotificationPayload представляет данные о новом личном сообщении,
// публикуемые в очередь уведомлений через RabbitMQ.
type MessageNotificationPayload struct {
	FromUser string    `json:"from_user"`
	ToUser   string    `json:"to_user"`
	Text     string    `json:"text"`
	SentTime time.Time `json:"sent_time"`
}
