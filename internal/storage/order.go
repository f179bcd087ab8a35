package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/sellerhub/storefront/internal/domain/models"
)

// OrderStorage описывает методы для работы с заказами.
type OrderStorage interface {
	// CreateOrder сохраняет новый заказ и возвращает его с заполненными id и created_at.
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	// GetOrdersByUserID возвращает заказы пользователя, сначала новые.
	GetOrdersByUserID(ctx context.Context, userID string) ([]*models.Order, error)
	// ListOrders возвращает все заказы, сначала новые.
	ListOrders(ctx context.Context) ([]*models.Order, error)
}

// orderRepository — конкретная реализация OrderStorage.
type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт новый репозиторий заказов.
func NewOrderRepository(db *sql.DB) OrderStorage {
	return &orderRepository{db: db}
}

// CreateOrder вставляет новый заказ, позиции сериализуются в jsonb-колонку items.
func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order items: %w", err)
	}

	id := uuid.NewString()
	query := `INSERT INTO orders (id, user_id, username, email, items, subtotal, tax, shipping, total, status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING created_at`
	row := r.db.QueryRowContext(ctx, query,
		id, order.UserID, order.Username, order.Email, items,
		order.Subtotal, order.Tax, order.Shipping, order.Total, models.StatusPending,
	)
	if err := row.Scan(&order.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	order.ID = id
	order.Status = models.StatusPending
	return order, nil
}

// GetOrdersByUserID возвращает список заказов конкретного пользователя.
func (r *orderRepository) GetOrdersByUserID(ctx context.Context, userID string) ([]*models.Order, error) {
	query := `
		SELECT id, user_id, username, email, items, subtotal, tax, shipping, total, status, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

// ListOrders возвращает все заказы магазина (админский список).
func (r *orderRepository) ListOrders(ctx context.Context) ([]*models.Order, error) {
	query := `
		SELECT id, user_id, username, email, items, subtotal, tax, shipping, total, status, created_at
		FROM orders
		ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func scanOrders(rows *sql.Rows) ([]*models.Order, error) {
	var orders []*models.Order
	for rows.Next() {
		order := &models.Order{}
		var items []byte
		if err := rows.Scan(&order.ID, &order.UserID, &order.Username, &order.Email, &items,
			&order.Subtotal, &order.Tax, &order.Shipping, &order.Total, &order.Status, &order.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(items, &order.Items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal order items: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}
