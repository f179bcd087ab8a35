package handlers

import (
	"log/slog"
	"net/http"

	"github.com/sellerhub/storefront/internal/domain/models"
	"github.com/sellerhub/storefront/internal/service"
)

// AdminUsersResponse — полный список пользователей.
type AdminUsersResponse struct {
	Users []*models.PublicUser `json:"users"`
}

// AdminOrdersResponse — полный список заказов.
type AdminOrdersResponse struct {
	Orders []*models.Order `json:"orders"`
}

// AdminUsersHandler обрабатывает GET /api/admin/users.
func AdminUsersHandler(log *slog.Logger, adminService service.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.AdminUsersHandler"
		logger := log.With(slog.String("op", op))

		users, err := adminService.ListUsers(r.Context())
		if err != nil {
			logger.Error("failed to list users", slog.Any("error", err))
			writeError(w, http.StatusInternalServerError, "server error")
			return
		}
		if users == nil {
			users = []*models.PublicUser{}
		}

		writeJSON(w, http.StatusOK, AdminUsersResponse{Users: users})
	}
}

// AdminOrdersHandler обрабатывает GET /api/admin/orders.
func AdminOrdersHandler(log *slog.Logger, adminService service.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.AdminOrdersHandler"
		logger := log.With(slog.String("op", op))

		orders, err := adminService.ListOrders(r.Context())
		if err != nil {
			logger.Error("failed to list orders", slog.Any("error", err))
			writeError(w, http.StatusInternalServerError, "server error")
			return
		}
		if orders == nil {
			orders = []*models.Order{}
		}

		writeJSON(w, http.StatusOK, AdminOrdersResponse{Orders: orders})
	}
}
