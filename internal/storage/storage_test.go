package storage_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/sellerhub/storefront/internal/domain/models"
	"github.com/sellerhub/storefront/internal/storage"
	"github.com/stretchr/testify/assert"
)

const userColumnsQuery = "SELECT id, name, username, email, phone, pass_hash, created_at FROM users WHERE username = $1"

func TestGetUserByUsername_Success(t *testing.T) {
	// Создаем sqlmock для эмуляции базы данных.
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewUserRepository(db)
	ctx := context.Background()
	now := time.Now()

	// Подготавливаем ожидаемые строки результата.
	rows := sqlmock.NewRows([]string{"id", "name", "username", "email", "phone", "pass_hash", "created_at"}).
		AddRow("u-1", "Test User", "testuser", "test@example.com", "1234567890", []byte("hashed-password"), now)

	mock.ExpectQuery(regexp.QuoteMeta(userColumnsQuery)).
		WithArgs("testuser").WillReturnRows(rows)

	user, err := repo.GetUserByUsername(ctx, "testuser")
	assert.NoError(t, err, "Expected no error when user is found")
	assert.Equal(t, "u-1", user.ID)
	assert.Equal(t, "Test User", user.Name)
	assert.Equal(t, "testuser", user.Username)
	assert.Equal(t, "test@example.com", user.Email)
	assert.Equal(t, []byte("hashed-password"), user.PassHash)

	// Проверяем, что все ожидания sqlmock выполнены.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByUsername_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewUserRepository(db)
	ctx := context.Background()

	// Эмулируем ситуацию, когда запрос возвращает 0 строк.
	rows := sqlmock.NewRows([]string{"id", "name", "username", "email", "phone", "pass_hash", "created_at"})
	mock.ExpectQuery(regexp.QuoteMeta(userColumnsQuery)).
		WithArgs("ghost").WillReturnRows(rows)

	user, err := repo.GetUserByUsername(ctx, "ghost")
	assert.Error(t, err)
	assert.Nil(t, user)
	assert.True(t, errors.Is(err, storage.ErrUserNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByUsernameOrEmail_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewUserRepository(db)
	ctx := context.Background()
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "name", "username", "email", "phone", "pass_hash", "created_at"}).
		AddRow("u-1", "Test User", "testuser", "test@example.com", "1234567890", []byte("hashed"), now)
	query := regexp.QuoteMeta("SELECT id, name, username, email, phone, pass_hash, created_at FROM users WHERE username = $1 OR email = $2")
	mock.ExpectQuery(query).WithArgs("other", "test@example.com").WillReturnRows(rows)

	user, err := repo.GetUserByUsernameOrEmail(ctx, "other", "test@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "testuser", user.Username)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewUserRepository(db)
	ctx := context.Background()
	now := time.Now()

	// id генерируется внутри репозитория, поэтому ожидаем любой аргумент.
	query := regexp.QuoteMeta("INSERT INTO users (id, name, username, email, phone, pass_hash) VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at")
	mock.ExpectQuery(query).
		WithArgs(sqlmock.AnyArg(), "Test User", "testuser", "test@example.com", "1234567890", []byte("hashed")).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	user := &models.User{
		Name:     "Test User",
		Username: "testuser",
		Email:    "test@example.com",
		Phone:    "1234567890",
		PassHash: []byte("hashed"),
	}
	created, err := repo.CreateUser(ctx, user)
	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, now, created.CreatedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewUserRepository(db)
	ctx := context.Background()

	// Эмулируем нарушение уникального индекса username/email.
	query := regexp.QuoteMeta("INSERT INTO users (id, name, username, email, phone, pass_hash) VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at")
	mock.ExpectQuery(query).
		WithArgs(sqlmock.AnyArg(), "Test User", "testuser", "test@example.com", "1234567890", []byte("hashed")).
		WillReturnError(&pq.Error{Code: "23505"})

	user := &models.User{
		Name:     "Test User",
		Username: "testuser",
		Email:    "test@example.com",
		Phone:    "1234567890",
		PassHash: []byte("hashed"),
	}
	created, err := repo.CreateUser(ctx, user)
	assert.Error(t, err)
	assert.Nil(t, created)
	assert.True(t, errors.Is(err, storage.ErrUserExists))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListUsers_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewUserRepository(db)
	ctx := context.Background()
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "name", "username", "email", "phone", "pass_hash", "created_at"}).
		AddRow("u-2", "Second", "second", "second@example.com", "222", []byte("h2"), now).
		AddRow("u-1", "First", "first", "first@example.com", "111", []byte("h1"), now.Add(-time.Hour))
	query := regexp.QuoteMeta("SELECT id, name, username, email, phone, pass_hash, created_at FROM users ORDER BY created_at DESC")
	mock.ExpectQuery(query).WillReturnRows(rows)

	users, err := repo.ListUsers(ctx)
	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "second", users[0].Username)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrder_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderRepository(db)
	ctx := context.Background()
	now := time.Now()

	// id — сгенерированный uuid, items — сериализованный jsonb.
	query := regexp.QuoteMeta(`INSERT INTO orders (id, user_id, username, email, items, subtotal, tax, shipping, total, status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING created_at`)
	mock.ExpectQuery(query).
		WithArgs(sqlmock.AnyArg(), "u-1", "testuser", "test@example.com", sqlmock.AnyArg(),
			299.0, 29.9, 10.0, 338.9, models.StatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	order := &models.Order{
		UserID:   "u-1",
		Username: "testuser",
		Email:    "test@example.com",
		Items: []models.OrderItem{
			{Name: "Tablet Pro", Price: "$299", Quantity: 1, Image: "tablet.png"},
		},
		Subtotal: 299.0,
		Tax:      29.9,
		Shipping: 10.0,
		Total:    338.9,
	}
	created, err := repo.CreateOrder(ctx, order)
	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.StatusPending, created.Status)
	assert.Equal(t, now, created.CreatedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrdersByUserID_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderRepository(db)
	ctx := context.Background()
	now := time.Now()

	items := []byte(`[{"name":"Tablet Pro","price":"$299","quantity":2,"image":"tablet.png"}]`)
	rows := sqlmock.NewRows([]string{"id", "user_id", "username", "email", "items", "subtotal", "tax", "shipping", "total", "status", "created_at"}).
		AddRow("o-1", "u-1", "testuser", "test@example.com", items, 598.0, 59.8, 10.0, 667.8, "pending", now)
	query := `
		SELECT id, user_id, username, email, items, subtotal, tax, shipping, total, status, created_at
		FROM orders
		WHERE user_id = \$1
		ORDER BY created_at DESC`
	mock.ExpectQuery(query).WithArgs("u-1").WillReturnRows(rows)

	orders, err := repo.GetOrdersByUserID(ctx, "u-1")
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, "o-1", orders[0].ID)
	assert.Equal(t, "pending", orders[0].Status)
	assert.Len(t, orders[0].Items, 1)
	assert.Equal(t, "Tablet Pro", orders[0].Items[0].Name)
	assert.Equal(t, 2, orders[0].Items[0].Quantity)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrdersByUserID_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderRepository(db)
	ctx := context.Background()

	query := `
		SELECT id, user_id, username, email, items, subtotal, tax, shipping, total, status, created_at
		FROM orders
		WHERE user_id = \$1
		ORDER BY created_at DESC`
	expectedErr := errors.New("query error")
	mock.ExpectQuery(query).WithArgs("u-1").WillReturnError(expectedErr)

	orders, err := repo.GetOrdersByUserID(ctx, "u-1")
	assert.Error(t, err)
	assert.Nil(t, orders)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListOrders_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderRepository(db)
	ctx := context.Background()
	now := time.Now()

	items := []byte(`[{"name":"Camera X","price":"$499","quantity":1,"image":"camera.png"}]`)
	rows := sqlmock.NewRows([]string{"id", "user_id", "username", "email", "items", "subtotal", "tax", "shipping", "total", "status", "created_at"}).
		AddRow("o-2", "u-2", "second", "second@example.com", items, 499.0, 49.9, 10.0, 558.9, "pending", now).
		AddRow("o-1", "u-1", "first", "first@example.com", items, 499.0, 49.9, 10.0, 558.9, "shipped", now.Add(-time.Hour))
	query := `
		SELECT id, user_id, username, email, items, subtotal, tax, shipping, total, status, created_at
		FROM orders
		ORDER BY created_at DESC`
	mock.ExpectQuery(query).WillReturnRows(rows)

	orders, err := repo.ListOrders(ctx)
	assert.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.Equal(t, "o-2", orders[0].ID)
	assert.Equal(t, "shipped", orders[1].Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}
