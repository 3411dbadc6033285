package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/GoArmGo/ShareBnB/internal/auth"
	"github.com/GoArmGo/ShareBnB/internal/config"
	"github.com/GoArmGo/ShareBnB/internal/handler"
	"github.com/GoArmGo/ShareBnB/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// runServer запускает HTTP сервер и блокируется до отмены контекста.
func runServer(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	userUseCase usecase.UserUseCase,
	listingUseCase usecase.ListingUseCase,
	tokens *auth.TokenService,
) error {
	authHandler := handler.NewAuthHandler(userUseCase, tokens, logger)
	userHandler := handler.NewUserHandler(userUseCase, logger)
	listingHandler := handler.NewListingHandler(listingUseCase, logger)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(handler.RequestLogger(logger))

	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/token", authHandler.Token)

	// всё остальное доступно только аутентифицированным пользователям
	r.Group(func(r chi.Router) {
		r.Use(handler.Authenticator(tokens, logger))

		r.Route("/listings", func(r chi.Router) {
			r.Post("/", listingHandler.Create)
			r.Get("/", listingHandler.List)
			r.Get("/{id}", listingHandler.Get)
			r.Patch("/{id}", listingHandler.Update)
			r.Delete("/{id}", listingHandler.Delete)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.Search)

			r.Route("/{username}", func(r chi.Router) {
				r.Get("/", userHandler.Get)

				// мутации и личные данные — только для владельца аккаунта
				r.Group(func(r chi.Router) {
					r.Use(handler.RequireSameUser(logger))

					r.Patch("/", userHandler.Update)
					r.Delete("/", userHandler.Delete)

					r.Get("/bookings", userHandler.Bookings)
					r.Post("/bookings/{id}", userHandler.Book)
					r.Delete("/bookings/{id}", userHandler.Unbook)

					r.Get("/messages", userHandler.Inbox)
					r.Get("/messages/{otherUser}", userHandler.Conversation)
					r.Post("/messages/{otherUser}", userHandler.SendMessage)
				})
			})
		})
	})

	serverAddr := fmt.Sprintf(":%s", cfg.ServerPort)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server")

	ctxServer, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxServer); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
