package main

import (
	"context"

	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/pkg/errors"
	"github.com/sellerhub/storefront/internal/app"
	"github.com/sellerhub/storefront/internal/app/handlers"
	"github.com/sellerhub/storefront/internal/config"
	"github.com/sellerhub/storefront/internal/jwt-new/jwtmiddleware"
	"github.com/sellerhub/storefront/internal/lib/logger"
	"github.com/sellerhub/storefront/internal/lib/logger/handlers/urllog"
	"github.com/sellerhub/storefront/internal/service"
	"github.com/sellerhub/storefront/internal/storage"
)

func main() {
	// загрузка конфигурации
	cfg := config.MustLoad()

	// инициализация логгера, зависит от настройки окружения
	log := logger.SetupLogger(cfg.Env)
	log.Info("starting app", slog.String("env", cfg.Env))

	// загружаем объект приложения, конфигом и подключением к БД
	application, err := app.NewApp(log, cfg)
	if err != nil {
		log.Error("failed to initialize app", slog.Any("error", err))
		panic(errors.Wrap(err, "failed to initialize app"))
	}
	defer application.DB.Close()

	router := chi.NewRouter()
	// настройка middleware
	router.Use(middleware.RequestID)
	router.Use(urllog.CustomLoggerMiddleware(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	// витрина ходит в API с другого origin
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	// реализация слоев по работе с БД по каждому направлению
	userRepo := storage.NewUserRepository(application.DB)
	orderRepo := storage.NewOrderRepository(application.DB)

	tokenTTL := time.Duration(application.Config.JWT.TokenTTLHours) * time.Hour
	authService := service.NewAuthService(application.Logger, userRepo, tokenTTL)
	orderService := service.NewOrderService(application.Logger, orderRepo)
	adminService := service.NewAdminService(application.Logger, userRepo, orderRepo)

	// публичные ручки аутентификации
	router.Post("/api/register", handlers.RegisterHandler(application.Logger, authService))
	router.Post("/api/login", handlers.LoginHandler(application.Logger, authService))
	router.Post("/api/logout", handlers.LogoutHandler(application.Logger))

	// ручки, закрытые проверкой токена
	router.Group(func(r chi.Router) {
		jwtMW := jwtmiddleware.NewJWTMiddleware()
		r.Use(jwtMW)
		r.Get("/api/check-auth", handlers.CheckAuthHandler(application.Logger, authService))
		r.Post("/api/orders", handlers.CreateOrderHandler(application.Logger, orderService))
		r.Get("/api/orders", handlers.ListOrdersHandler(application.Logger, orderService))
	})

	// админские списки; отдельная группа, чтобы общий guard добавлялся в одном месте
	router.Group(func(r chi.Router) {
		r.Get("/api/admin/users", handlers.AdminUsersHandler(application.Logger, adminService))
		r.Get("/api/admin/orders", handlers.AdminOrdersHandler(application.Logger, adminService))
	})

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.Any("error", err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	stopSign := <-stop
	log.Info("received shutdown signal", slog.String("signal", stopSign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", slog.Any("error", err))
	}
	log.Info("server gracefully stopped")
}
