package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sellerhub/storefront/internal/domain/models"
	"github.com/sellerhub/storefront/internal/storage"
)

// AdminService отдаёт полные списки пользователей и заказов.
// Маршруты, которые его используют, пока не закрыты аутентификацией.
type AdminService interface {
	ListUsers(ctx context.Context) ([]*models.PublicUser, error)
	ListOrders(ctx context.Context) ([]*models.Order, error)
}

type adminService struct {
	log       *slog.Logger
	userRepo  storage.UserStorage
	orderRepo storage.OrderStorage
}

func NewAdminService(log *slog.Logger, userRepo storage.UserStorage, orderRepo storage.OrderStorage) AdminService {
	return &adminService{
		log:       log,
		userRepo:  userRepo,
		orderRepo: orderRepo,
	}
}

// ListUsers возвращает всех пользователей без хэшей паролей, сначала новые.
func (s *adminService) ListUsers(ctx context.Context) ([]*models.PublicUser, error) {
	const op = "service.AdminService.ListUsers"

	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		s.log.Error("failed to list users", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to list users: %w", op, err)
	}

	public := make([]*models.PublicUser, 0, len(users))
	for _, u := range users {
		public = append(public, u.Public())
	}
	return public, nil
}

// ListOrders возвращает все заказы магазина, сначала новые.
func (s *adminService) ListOrders(ctx context.Context) ([]*models.Order, error) {
	const op = "service.AdminService.ListOrders"

	orders, err := s.orderRepo.ListOrders(ctx)
	if err != nil {
		s.log.Error("failed to list orders", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to list orders: %w", op, err)
	}
	return orders, nil
}
