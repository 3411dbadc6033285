package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/ShareBnB/internal/core/ports"
	"github.com/GoArmGo/ShareBnB/internal/messaging/payloads"
)

// runWorker запускает потребителя очереди уведомлений и блокируется
// до отмены контекста. Сейчас доставка — это структурированный лог;
// сюда подключается email или push, когда они появятся.
func runWorker(
	ctx context.Context,
	logger *slog.Logger,
	notifyConsumer ports.MessageNotificationConsumer,
) error {
	logger.Info("worker started, waiting for notifications")

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	notificationHandler := func(ctx context.Context, payload payloads.MessageNotificationPayload) error {
		logger.Info("message notification",
			"from", payload.FromUser,
			"to", payload.ToUser,
			"sent_time", payload.SentTime,
		)
		return nil
	}

	err := notifyConsumer.StartConsumingMessageNotifications(workerCtx, notificationHandler)
	if err != nil {
		return fmt.Errorf("ошибка при запуске потребителя RabbitMQ: %w", err)
	}

	<-ctx.Done()

	logger.Info("worker stopped")
	return nil
}
