package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sellerhub/storefront/internal/domain/models"
	"github.com/sellerhub/storefront/internal/jwt-new/jwtmiddleware"
	"github.com/sellerhub/storefront/internal/service"
)

// CreateOrderRequest — входной JSON на оформление заказа.
// Суммы приходят посчитанными на клиенте и принимаются как есть.
type CreateOrderRequest struct {
	Items    []models.OrderItem `json:"items"`
	Subtotal float64            `json:"subtotal"`
	Tax      float64            `json:"tax"`
	Shipping float64            `json:"shipping"`
	Total    float64            `json:"total"`
}

// CreateOrderResponse — ответ при успешном оформлении.
type CreateOrderResponse struct {
	Message string                `json:"message"`
	Order   *service.OrderSummary `json:"order"`
}

// ListOrdersResponse — список заказов пользователя.
type ListOrdersResponse struct {
	Orders []*models.Order `json:"orders"`
}

// CreateOrderHandler обрабатывает POST /api/orders.
func CreateOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateOrderHandler"
		logger := log.With(slog.String("op", op))

		var req CreateOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}

		// Извлекаем identity из контекста (установленного JWT middleware)
		identity, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("identity not found in context")
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		summary, err := orderService.CreateOrder(r.Context(), identity, service.OrderInput{
			Items:    req.Items,
			Subtotal: req.Subtotal,
			Tax:      req.Tax,
			Shipping: req.Shipping,
			Total:    req.Total,
		})
		if err != nil {
			if errors.Is(err, service.ErrEmptyOrder) {
				writeError(w, http.StatusBadRequest, service.ErrEmptyOrder.Error())
				return
			}
			logger.Error("failed to create order", slog.Any("error", err))
			writeError(w, http.StatusInternalServerError, "server error during order creation")
			return
		}

		writeJSON(w, http.StatusCreated, CreateOrderResponse{
			Message: "Order created successfully",
			Order:   summary,
		})
	}
}

// ListOrdersHandler обрабатывает GET /api/orders.
func ListOrdersHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListOrdersHandler"
		logger := log.With(slog.String("op", op))

		identity, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("identity not found in context")
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		orders, err := orderService.ListOrders(r.Context(), identity.UserID)
		if err != nil {
			logger.Error("failed to list orders", slog.Any("error", err))
			writeError(w, http.StatusInternalServerError, "server error")
			return
		}
		if orders == nil {
			orders = []*models.Order{}
		}

		writeJSON(w, http.StatusOK, ListOrdersResponse{Orders: orders})
	}
}
