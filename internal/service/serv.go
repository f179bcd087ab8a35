package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sellerhub/storefront/internal/domain/models"
	security "github.com/sellerhub/storefront/internal/jwt-new"
	"github.com/sellerhub/storefront/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrUserExists — пользователь с таким логином или email уже зарегистрирован
	ErrUserExists = errors.New("user with this email or username already exists")
	// ErrInvalidCredentials — неверный логин или пароль, без уточнения что именно
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type AuthService struct {
	log      *slog.Logger
	userRepo storage.UserStorage
	tokenTTL time.Duration
}

func NewAuthService(log *slog.Logger, userRepo storage.UserStorage, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		log:      log,
		userRepo: userRepo,
		tokenTTL: tokenTTL,
	}
}

type AuthServiceInterface interface {
	Register(ctx context.Context, name, username, email, phone, password string) (string, *models.PublicUser, error)
	Login(ctx context.Context, username, password string) (string, *models.PublicUser, error)
	CheckAuth(ctx context.Context, userID string) (*models.PublicUser, error)
}

// Register регистрирует нового пользователя.
// Пароль хэшируется через bcrypt (автоматически добавляет соль), сразу выдается JWT-токен,
// чтобы после регистрации не требовался отдельный вход.
func (a *AuthService) Register(ctx context.Context, name, username, email, phone, password string) (string, *models.PublicUser, error) {
	const op = "auth.Register"
	logger := a.log.With(
		slog.String("op", op),
		slog.String("username", username),
	)
	logger.Info("registering user")

	// Проверяем, не занят ли логин или email
	_, err := a.userRepo.GetUserByUsernameOrEmail(ctx, username, email)
	if err == nil {
		logger.Warn("user already exists")
		return "", nil, ErrUserExists
	}
	if !errors.Is(err, storage.ErrUserNotFound) {
		logger.Error("failed to check existing user", slog.Any("error", err))
		return "", nil, fmt.Errorf("%s: failed to check existing user: %w", op, err)
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("failed to hash password", slog.Any("error", err))
		return "", nil, fmt.Errorf("%s: failed to hash password: %w", op, err)
	}

	newUser := &models.User{
		Name:     name,
		Username: username,
		Email:    email,
		Phone:    phone,
		PassHash: passHash,
	}
	user, err := a.userRepo.CreateUser(ctx, newUser)
	if err != nil {
		// Гонка между проверкой и вставкой: уникальные индексы БД — последний рубеж
		if errors.Is(err, storage.ErrUserExists) {
			logger.Warn("user already exists")
			return "", nil, ErrUserExists
		}
		logger.Error("failed to create user", slog.Any("error", err))
		return "", nil, fmt.Errorf("%s: failed to create user: %w", op, err)
	}

	token, err := security.NewToken(ctx, user, a.tokenTTL)
	if err != nil {
		logger.Error("failed to generate token", slog.Any("error", err))
		return "", nil, fmt.Errorf("%s: failed to generate token: %w", op, err)
	}

	logger.Info("user registered successfully", slog.String("userID", user.ID))
	return token, user.Public(), nil
}

// Login осуществляет аутентификацию пользователя.
// Неизвестный логин и неверный пароль дают одинаковую ошибку ErrInvalidCredentials.
func (a *AuthService) Login(ctx context.Context, username, password string) (string, *models.PublicUser, error) {
	const op = "auth.Login"
	logger := a.log.With(
		slog.String("op", op),
		slog.String("username", username),
	)
	logger.Info("checking user")

	user, err := a.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			logger.Warn("user not found")
			return "", nil, ErrInvalidCredentials
		}
		logger.Error("failed to get user", slog.Any("error", err))
		return "", nil, fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(password)); err != nil {
		logger.Warn("invalid password")
		return "", nil, ErrInvalidCredentials
	}

	token, err := security.NewToken(ctx, user, a.tokenTTL)
	if err != nil {
		logger.Error("failed to generate token", slog.Any("error", err))
		return "", nil, fmt.Errorf("%s: failed to generate token: %w", op, err)
	}

	logger.Info("user logged in successfully", slog.String("userID", user.ID))
	return token, user.Public(), nil
}

// CheckAuth возвращает публичный профиль пользователя по идентификатору из проверенного токена.
func (a *AuthService) CheckAuth(ctx context.Context, userID string) (*models.PublicUser, error) {
	const op = "auth.CheckAuth"

	user, err := a.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		a.log.Error("failed to get user by id", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get user: %w", op, err)
	}
	return user.Public(), nil
}
