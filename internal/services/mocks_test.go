package services

import (
	"time"

	"roti_pos/internal/catalog"
	"roti_pos/internal/models"
	"roti_pos/internal/redis"

	"gorm.io/gorm"
)

type mockCartStore struct {
	carts   map[string]*catalog.Cart
	saveErr error
	getErr  error
}

func newMockCartStore() *mockCartStore {
	return &mockCartStore{carts: make(map[string]*catalog.Cart)}
}

func cloneCart(cart *catalog.Cart) *catalog.Cart {
	clone := *cart
	clone.Lines = make([]catalog.Line, len(cart.Lines))
	copy(clone.Lines, cart.Lines)
	return &clone
}

func (m *mockCartStore) SaveCart(cartID string, cart *catalog.Cart) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.carts[cartID] = cloneCart(cart)
	return nil
}

func (m *mockCartStore) GetCart(cartID string) (*catalog.Cart, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	cart, ok := m.carts[cartID]
	if !ok {
		return nil, redis.ErrCartNotFound
	}
	return cloneCart(cart), nil
}

func (m *mockCartStore) DeleteCart(cartID string) error {
	delete(m.carts, cartID)
	return nil
}

type recordedUpdate struct {
	id     uint
	fields map[string]interface{}
}

type mockOrderRepo struct {
	created []*models.Order

	createErr  error
	createHook func()

	sinceOrders []models.Order
	sinceErr    error
	sinceCalls  int

	updates    []recordedUpdate
	updateErr  error
	updateHook func(id uint)

	deleted    []uint
	deleteErr  error
	deleteHook func(id uint)
}

func (m *mockOrderRepo) Create(order *models.Order) error {
	if m.createHook != nil {
		m.createHook()
	}
	if m.createErr != nil {
		return m.createErr
	}
	order.ID = uint(len(m.created) + 1)
	m.created = append(m.created, order)
	return nil
}

func (m *mockOrderRepo) GetByID(id uint) (*models.Order, error) {
	for i := range m.sinceOrders {
		if m.sinceOrders[i].ID == id {
			return &m.sinceOrders[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOrderRepo) GetSince(since time.Time) ([]models.Order, error) {
	m.sinceCalls++
	if m.sinceErr != nil {
		return nil, m.sinceErr
	}
	orders := make([]models.Order, len(m.sinceOrders))
	copy(orders, m.sinceOrders)
	return orders, nil
}

func (m *mockOrderRepo) UpdateFields(id uint, fields map[string]interface{}) error {
	if m.updateHook != nil {
		m.updateHook(id)
	}
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updates = append(m.updates, recordedUpdate{id: id, fields: fields})
	return nil
}

func (m *mockOrderRepo) Delete(id uint) error {
	if m.deleteHook != nil {
		m.deleteHook(id)
	}
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockOrderRepo) GetAll() ([]models.Order, error) {
	return m.sinceOrders, nil
}

type recordNotifier struct {
	successes []string
	failures  []string
}

func (n *recordNotifier) Success(msg string) {
	n.successes = append(n.successes, msg)
}

func (n *recordNotifier) Error(msg string) {
	n.failures = append(n.failures, msg)
}
