package di

import (
	"github.com/GoArmGo/ShareBnB/internal/adapter/storage/minio"
	"github.com/GoArmGo/ShareBnB/internal/app"
	"github.com/GoArmGo/ShareBnB/internal/auth"
	"github.com/GoArmGo/ShareBnB/internal/config"
	"github.com/GoArmGo/ShareBnB/internal/database/client"
	"github.com/GoArmGo/ShareBnB/internal/database/storage"
	"github.com/GoArmGo/ShareBnB/internal/logger"
	"github.com/GoArmGo/ShareBnB/internal/rabbitmq"
	"github.com/GoArmGo/ShareBnB/internal/usecase"
)

// BuildApp инициализирует все зависимости и возвращает готовый объект App.
func BuildApp() (*app.App, error) {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	// 2. Инициализация PostgreSQL клиента (применяет миграции)
	dbClient, err := client.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}

	// 3. Инициализация хранилищ
	userStorage := storage.NewUserStorage(dbClient.DB, slogger)
	listingStorage := storage.NewListingStorage(dbClient.DB, slogger)

	// 4. Инициализация файлового хранилища (S3 / MinIO)
	fileStorage, err := minio.NewMinioClient(cfg)
	if err != nil {
		return nil, err
	}

	// 5. Инициализация RabbitMQ клиента (publisher и consumer)
	rabbitMQClient, err := rabbitmq.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	// 6. Аутентификация: хешер паролей и сервис токенов
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)

	// 7. Инициализация бизнес-логики (usecases)
	userUseCase := usecase.NewUserUseCase(userStorage, listingStorage, hasher, rabbitMQClient, slogger)
	listingUseCase := usecase.NewListingUseCase(listingStorage, fileStorage, cfg.DefaultListingImage, slogger)

	// 8. Сборка итогового приложения
	application := app.NewApp(
		cfg,
		slogger,
		dbClient.DB,
		userUseCase,
		listingUseCase,
		tokens,
		rabbitMQClient,
	)

	slogger.Info("container assembled")
	return application, nil
}
