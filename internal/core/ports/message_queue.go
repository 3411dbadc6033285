package ports

import (
	"context"

	"github.com/GoArmGo/ShareBnB/internal/messaging/payloads"
)

// MessageNotificationPublisher определяет методы для публикации уведомлений
// о новых сообщениях. Этот интерфейс используется сервером.
type MessageNotificationPublisher interface {
	PublishMessageNotification(ctx context.Context, payload payloads.MessageNotificationPayload) error
}

// MessageNotificationConsumer определяет методы для потребления уведомлений,
// используется воркером для получения задач из очереди.
type MessageNotificationConsumer interface {
	// StartConsumingMessageNotifications начинает прослушивание очереди,
	// вызывая обработчик для каждого полученного уведомления.
	StartConsumingMessageNotifications(ctx context.Context, handler func(context.Context, payloads.MessageNotificationPayload) error) error
}
