package cart

import (
	"encoding/json"
	"fmt"

	"github.com/sellerhub/storefront/internal/client/localstore"
	"github.com/sellerhub/storefront/internal/domain/models"
)

// Ключ локального хранилища, под которым живёт корзина
const cartKey = "cart"

// Cart — корзина покупателя поверх локального хранилища.
// Каждая мутация сразу сохраняет корзину целиком.
type Cart struct {
	store localstore.Store
}

func New(store localstore.Store) *Cart {
	return &Cart{store: store}
}

// Items возвращает текущие позиции корзины в порядке добавления.
func (c *Cart) Items() ([]models.OrderItem, error) {
	data, ok, err := c.store.Get(cartKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}
	if !ok {
		return []models.OrderItem{}, nil
	}
	var items []models.OrderItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart: %w", err)
	}
	return items, nil
}

// Add добавляет товар в корзину.
// Если товар с таким названием уже есть, увеличивается количество, иначе добавляется новая позиция.
func (c *Cart) Add(name, price, image string) error {
	items, err := c.Items()
	if err != nil {
		return err
	}

	found := false
	for i := range items {
		if items[i].Name == name {
			items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		items = append(items, models.OrderItem{
			Name:     name,
			Price:    price,
			Quantity: 1,
			Image:    image,
		})
	}

	return c.save(items)
}

// Clear опустошает корзину.
func (c *Cart) Clear() error {
	if err := c.store.Delete(cartKey); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (c *Cart) save(items []models.OrderItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}
	if err := c.store.Set(cartKey, string(data)); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}
