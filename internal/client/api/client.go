package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sellerhub/storefront/internal/client/cart"
	"github.com/sellerhub/storefront/internal/client/session"
	"github.com/sellerhub/storefront/internal/domain/models"
)

// Client оборачивает все сетевые вызовы витрины к REST API.
// Токен хранится в session.Store и автоматически подставляется в защищённые запросы.
type Client struct {
	log     *slog.Logger
	baseURL string
	http    *http.Client
	session *session.Store
	cart    *cart.Cart
}

func NewClient(log *slog.Logger, baseURL string, session *session.Store, cart *cart.Cart) *Client {
	return &Client{
		log:     log,
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		session: session,
		cart:    cart,
	}
}

// RegisterForm — данные формы регистрации.
type RegisterForm struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// OrderPayload — данные заказа, отправляемые на сервер.
// Суммы считает клиент, сервер им доверяет.
type OrderPayload struct {
	Items    []models.OrderItem `json:"items"`
	Subtotal float64            `json:"subtotal"`
	Tax      float64            `json:"tax"`
	Shipping float64            `json:"shipping"`
	Total    float64            `json:"total"`
}

// OrderSummary — краткое описание созданного заказа из ответа сервера.
type OrderSummary struct {
	ID        string    `json:"id"`
	Total     float64   `json:"total"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type authResponse struct {
	Message string             `json:"message"`
	Token   string             `json:"token"`
	User    *models.PublicUser `json:"user"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// decodeError извлекает сообщение об ошибке из тела ответа.
func decodeError(resp *http.Response, fallback string) error {
	var body errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return fmt.Errorf("%s", body.Error)
	}
	return fmt.Errorf("%s", fallback)
}

func (c *Client) postJSON(ctx context.Context, path string, payload any, token string) (*http.Response, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return c.http.Do(req)
}

func (c *Client) getJSON(ctx context.Context, path, token string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return c.http.Do(req)
}

// Register регистрирует пользователя и сохраняет полученную сессию.
func (c *Client) Register(ctx context.Context, form RegisterForm) (*models.PublicUser, error) {
	const op = "api.Register"
	logger := c.log.With(slog.String("op", op), slog.String("username", form.Username))
	logger.Info("starting registration")

	resp, err := c.postJSON(ctx, "/register", form, "")
	if err != nil {
		logger.Error("registration request failed", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("%s: %w", op, decodeError(resp, "registration failed"))
	}

	var body authResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%s: failed to decode response: %w", op, err)
	}
	if err := c.session.Save(body.Token, body.User); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("registration successful")
	return body.User, nil
}

// Login выполняет вход и сохраняет полученную сессию.
func (c *Client) Login(ctx context.Context, username, password string) (*models.PublicUser, error) {
	const op = "api.Login"
	logger := c.log.With(slog.String("op", op), slog.String("username", username))
	logger.Info("starting login")

	resp, err := c.postJSON(ctx, "/login", map[string]string{
		"username": username,
		"password": password,
	}, "")
	if err != nil {
		logger.Error("login request failed", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %w", op, decodeError(resp, "login failed"))
	}

	var body authResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%s: failed to decode response: %w", op, err)
	}
	if err := c.session.Save(body.Token, body.User); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("login successful")
	return body.User, nil
}

// VerifyToken проверяет сохранённый токен на сервере.
// Если сервер токен не принимает, локальная сессия молча очищается.
func (c *Client) VerifyToken(ctx context.Context) (bool, error) {
	const op = "api.VerifyToken"
	logger := c.log.With(slog.String("op", op))

	token, err := c.session.Token()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if token == "" {
		logger.Info("no token to verify")
		return false, nil
	}

	resp, err := c.getJSON(ctx, "/check-auth", token)
	if err != nil {
		logger.Error("token verification request failed", slog.Any("error", err))
		return false, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Info("token rejected, clearing session", slog.Int("status", resp.StatusCode))
		if err := c.session.Clear(); err != nil {
			return false, fmt.Errorf("%s: %w", op, err)
		}
		return false, nil
	}

	var body struct {
		Authenticated bool `json:"authenticated"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, fmt.Errorf("%s: failed to decode response: %w", op, err)
	}
	return body.Authenticated, nil
}

// Logout уведомляет сервер и очищает локальную сессию и корзину.
// Серверный вызов best-effort: состояние чистится даже при его неудаче.
func (c *Client) Logout(ctx context.Context) error {
	const op = "api.Logout"
	logger := c.log.With(slog.String("op", op))
	logger.Info("logging out")

	token, err := c.session.Token()
	if err == nil && token != "" {
		resp, postErr := c.postJSON(ctx, "/logout", struct{}{}, token)
		if postErr != nil {
			logger.Warn("logout request failed", slog.Any("error", postErr))
		} else {
			resp.Body.Close()
		}
	}

	if err := c.session.Clear(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := c.cart.Clear(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("logout complete")
	return nil
}

// CreateOrder оформляет заказ от имени текущего пользователя.
func (c *Client) CreateOrder(ctx context.Context, payload OrderPayload) (*OrderSummary, error) {
	const op = "api.CreateOrder"
	logger := c.log.With(slog.String("op", op))
	logger.Info("creating order", slog.Int("items", len(payload.Items)))

	token, err := c.session.Token()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if token == "" {
		return nil, fmt.Errorf("%s: not authenticated", op)
	}

	resp, err := c.postJSON(ctx, "/orders", payload, token)
	if err != nil {
		logger.Error("order request failed", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("%s: %w", op, decodeError(resp, "order creation failed"))
	}

	var body struct {
		Message string        `json:"message"`
		Order   *OrderSummary `json:"order"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%s: failed to decode response: %w", op, err)
	}

	logger.Info("order created", slog.String("orderID", body.Order.ID))
	return body.Order, nil
}

// ListOrders возвращает заказы текущего пользователя.
func (c *Client) ListOrders(ctx context.Context) ([]*models.Order, error) {
	const op = "api.ListOrders"
	logger := c.log.With(slog.String("op", op))
	logger.Info("fetching orders")

	token, err := c.session.Token()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if token == "" {
		return nil, fmt.Errorf("%s: not authenticated", op)
	}

	resp, err := c.getJSON(ctx, "/orders", token)
	if err != nil {
		logger.Error("orders request failed", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %w", op, decodeError(resp, "failed to fetch orders"))
	}

	var body struct {
		Orders []*models.Order `json:"orders"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%s: failed to decode response: %w", op, err)
	}

	logger.Info("orders fetched", slog.Int("count", len(body.Orders)))
	return body.Orders, nil
}
