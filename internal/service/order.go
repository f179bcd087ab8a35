package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sellerhub/storefront/internal/domain/models"
	"github.com/sellerhub/storefront/internal/jwt-new/jwtmiddleware"
	"github.com/sellerhub/storefront/internal/storage"
)

// ErrEmptyOrder — попытка оформить заказ с пустой корзиной
var ErrEmptyOrder = errors.New("cart is empty")

// OrderInput — данные заказа, приходящие от клиента.
// Суммы принимаются как есть, сервер их не пересчитывает.
type OrderInput struct {
	Items    []models.OrderItem
	Subtotal float64
	Tax      float64
	Shipping float64
	Total    float64
}

// OrderSummary — краткое представление созданного заказа для ответа клиенту.
type OrderSummary struct {
	ID        string    `json:"id"`
	Total     float64   `json:"total"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// OrderService определяет интерфейс для работы с заказами.
type OrderService interface {
	CreateOrder(ctx context.Context, identity jwtmiddleware.Identity, input OrderInput) (*OrderSummary, error)
	ListOrders(ctx context.Context, userID string) ([]*models.Order, error)
}

type orderService struct {
	log       *slog.Logger
	orderRepo storage.OrderStorage
}

func NewOrderService(log *slog.Logger, orderRepo storage.OrderStorage) OrderService {
	return &orderService{
		log:       log,
		orderRepo: orderRepo,
	}
}

// CreateOrder сохраняет заказ от имени аутентифицированного пользователя.
// Логин и email дублируются в заказ из identity на момент оформления.
func (s *orderService) CreateOrder(ctx context.Context, identity jwtmiddleware.Identity, input OrderInput) (*OrderSummary, error) {
	const op = "service.OrderService.CreateOrder"
	logger := s.log.With(slog.String("op", op), slog.String("userID", identity.UserID))
	logger.Info("creating order", slog.Int("items", len(input.Items)))

	if len(input.Items) == 0 {
		logger.Warn("empty order rejected")
		return nil, ErrEmptyOrder
	}

	order := &models.Order{
		UserID:   identity.UserID,
		Username: identity.Username,
		Email:    identity.Email,
		Items:    input.Items,
		Subtotal: input.Subtotal,
		Tax:      input.Tax,
		Shipping: input.Shipping,
		Total:    input.Total,
	}

	created, err := s.orderRepo.CreateOrder(ctx, order)
	if err != nil {
		logger.Error("failed to create order", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to create order: %w", op, err)
	}

	logger.Info("order created successfully", slog.String("orderID", created.ID))
	return &OrderSummary{
		ID:        created.ID,
		Total:     created.Total,
		Status:    created.Status,
		CreatedAt: created.CreatedAt,
	}, nil
}

// ListOrders возвращает заказы пользователя, сначала новые.
func (s *orderService) ListOrders(ctx context.Context, userID string) ([]*models.Order, error) {
	const op = "service.OrderService.ListOrders"

	orders, err := s.orderRepo.GetOrdersByUserID(ctx, userID)
	if err != nil {
		s.log.Error("failed to get orders", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get orders: %w", op, err)
	}
	return orders, nil
}
