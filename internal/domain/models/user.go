package models

import "time"

// User представляет пользователя магазина
type User struct {
	ID        string
	Name      string
	Username  string // уникальный логин
	Email     string // уникальный email
	Phone     string
	PassHash  []byte
	CreatedAt time.Time
}

// PublicUser — публичное представление пользователя, без хэша пароля
type PublicUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Public возвращает представление пользователя для отдачи наружу
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
		Email:    u.Email,
	}
}
