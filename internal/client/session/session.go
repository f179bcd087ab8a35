package session

import (
	"encoding/json"
	"fmt"

	"github.com/sellerhub/storefront/internal/client/localstore"
	"github.com/sellerhub/storefront/internal/domain/models"
)

// Ключи локального хранилища, под которыми живёт сессия
const (
	tokenKey = "authToken"
	userKey  = "userData"
)

// Store хранит токен и профиль текущего пользователя в локальном хранилище.
// Никакой логики истечения на клиенте нет: токен считается живым, пока сервер его принимает.
type Store struct {
	store localstore.Store
}

func NewStore(store localstore.Store) *Store {
	return &Store{store: store}
}

// Save сохраняет токен и профиль после успешного входа или регистрации.
func (s *Store) Save(token string, user *models.PublicUser) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user data: %w", err)
	}
	if err := s.store.Set(tokenKey, token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	if err := s.store.Set(userKey, string(data)); err != nil {
		return fmt.Errorf("failed to save user data: %w", err)
	}
	return nil
}

// Token возвращает сохранённый токен, пустую строку — если его нет.
func (s *Store) Token() (string, error) {
	token, ok, err := s.store.Get(tokenKey)
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	if !ok {
		return "", nil
	}
	return token, nil
}

// CurrentUser возвращает профиль текущего пользователя, nil — если сессии нет.
func (s *Store) CurrentUser() (*models.PublicUser, error) {
	data, ok, err := s.store.Get(userKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read user data: %w", err)
	}
	if !ok {
		return nil, nil
	}
	user := &models.PublicUser{}
	if err := json.Unmarshal([]byte(data), user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user data: %w", err)
	}
	return user, nil
}

// IsAuthenticated сообщает, есть ли сохранённый токен.
func (s *Store) IsAuthenticated() bool {
	token, err := s.Token()
	return err == nil && token != ""
}

// Clear удаляет токен и профиль.
func (s *Store) Clear() error {
	if err := s.store.Delete(tokenKey); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	if err := s.store.Delete(userKey); err != nil {
		return fmt.Errorf("failed to delete user data: %w", err)
	}
	return nil
}
