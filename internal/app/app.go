package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/GoArmGo/ShareBnB/internal/auth"
	"github.com/GoArmGo/ShareBnB/internal/config"
	"github.com/GoArmGo/ShareBnB/internal/core/ports"
	"github.com/GoArmGo/ShareBnB/internal/usecase"
	"github.com/jmoiron/sqlx"
)

type App struct {
	Config         *config.Config
	logger         *slog.Logger
	db             *sqlx.DB
	userUseCase    usecase.UserUseCase
	listingUseCase usecase.ListingUseCase
	tokens         *auth.TokenService
	notifyConsumer ports.MessageNotificationConsumer
}

func NewApp(cfg *config.Config,
	logger *slog.Logger,
	db *sqlx.DB,
	userUseCase usecase.UserUseCase,
	listingUseCase usecase.ListingUseCase,
	tokens *auth.TokenService,
	notifyConsumer ports.MessageNotificationConsumer) *App {
	return &App{
		Config:         cfg,
		logger:         logger,
		db:             db,
		userUseCase:    userUseCase,
		listingUseCase: listingUseCase,
		tokens:         tokens,
		notifyConsumer: notifyConsumer,
	}
}

// LoggerIns возвращает основной логгер приложения.
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

func (a *App) Run(ctx context.Context, mode *string) error {
	// канал для graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("starting", "mode", *mode)

	var err error

	switch *mode {
	case "server":
		err = runServer(ctx, a.Config, a.logger, a.userUseCase, a.listingUseCase, a.tokens)

	case "worker":
		err = runWorker(ctx, a.logger, a.notifyConsumer)

	default:
		err = fmt.Errorf("неизвестный режим: %s (используйте 'server' или 'worker')", *mode)
	}

	if err != nil {
		return err
	}

	// аккуратно закрываем ресурсы
	if closeErr := a.Shutdown(); closeErr != nil {
		log.Printf("[app] ошибка при завершении: %v", closeErr)
	}

	a.logger.Info("stopped")
	return nil
}

// Shutdown закрывает все ресурсы приложения.
func (a *App) Shutdown() error {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			return fmt.Errorf("ошибка закрытия БД: %w", err)
		}
	}

	if closer, ok := a.notifyConsumer.(interface{ Close() }); ok {
		closer.Close()
	}

	return nil
}
