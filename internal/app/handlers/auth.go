package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sellerhub/storefront/internal/domain/models"
	"github.com/sellerhub/storefront/internal/jwt-new/jwtmiddleware"
	"github.com/sellerhub/storefront/internal/service"
)

// RegisterRequest представляет структуру запроса на регистрацию с тегами валидации
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest представляет структуру запроса на вход
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse представляет структуру ответа с JWT-токеном и профилем пользователя
type AuthResponse struct {
	Message string             `json:"message"`
	Token   string             `json:"token"`
	User    *models.PublicUser `json:"user"`
}

// CheckAuthResponse — ответ на проверку токена
type CheckAuthResponse struct {
	Authenticated bool               `json:"authenticated"`
	User          *models.PublicUser `json:"user"`
}

// MessageResponse — ответ, состоящий из одного сообщения
type MessageResponse struct {
	Message string `json:"message"`
}

var validate = validator.New()

// RegisterHandler – HTTP-обработчик для POST /api/register
func RegisterHandler(log *slog.Logger, authService service.AuthServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.RegisterHandler"
		logger := log.With(slog.String("op", op))

		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			writeError(w, http.StatusBadRequest, "all fields are required")
			return
		}

		// Валидация структуры запроса с использованием validator
		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request: validation error", slog.Any("error", err))
			writeError(w, http.StatusBadRequest, "all fields are required")
			return
		}

		token, user, err := authService.Register(r.Context(), req.Name, req.Username, req.Email, req.Phone, req.Password)
		if err != nil {
			if errors.Is(err, service.ErrUserExists) {
				writeError(w, http.StatusBadRequest, service.ErrUserExists.Error())
				return
			}
			logger.Error("registration failed", slog.Any("error", err))
			writeError(w, http.StatusInternalServerError, "server error during registration")
			return
		}

		writeJSON(w, http.StatusCreated, AuthResponse{
			Message: "User registered successfully",
			Token:   token,
			User:    user,
		})
	}
}

// LoginHandler – HTTP-обработчик для POST /api/login
func LoginHandler(log *slog.Logger, authService service.AuthServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.LoginHandler"
		logger := log.With(slog.String("op", op))

		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			writeError(w, http.StatusBadRequest, "username and password are required")
			return
		}

		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request: validation error", slog.Any("error", err))
			writeError(w, http.StatusBadRequest, "username and password are required")
			return
		}

		token, user, err := authService.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				writeError(w, http.StatusBadRequest, service.ErrInvalidCredentials.Error())
				return
			}
			logger.Error("login failed", slog.Any("error", err))
			writeError(w, http.StatusInternalServerError, "server error during login")
			return
		}

		writeJSON(w, http.StatusOK, AuthResponse{
			Message: "Login successful",
			Token:   token,
			User:    user,
		})
	}
}

// CheckAuthHandler обрабатывает GET /api/check-auth.
// Токен уже проверен JWT-middleware, профиль загружается заново по id из claims.
func CheckAuthHandler(log *slog.Logger, authService service.AuthServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CheckAuthHandler"
		logger := log.With(slog.String("op", op))

		identity, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("identity not found in context")
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		user, err := authService.CheckAuth(r.Context(), identity.UserID)
		if err != nil {
			logger.Error("failed to check auth", slog.Any("error", err))
			writeError(w, http.StatusInternalServerError, "server error")
			return
		}

		writeJSON(w, http.StatusOK, CheckAuthResponse{
			Authenticated: true,
			User:          user,
		})
	}
}

// LogoutHandler обрабатывает POST /api/logout.
// Сервер ничего не инвалидирует: клиент сам удаляет токен, ручка только подтверждает выход.
func LogoutHandler(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, MessageResponse{Message: "Logout successful"})
	}
}
