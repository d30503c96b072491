package services

import (
	"fmt"
	"sync"
	"time"

	"roti_pos/internal/apperr"
	"roti_pos/internal/models"
	"roti_pos/internal/repository"
)

type BrowserService interface {
	Load(date time.Time) ([]models.Order, error)
	View(f Filters) []models.Order
	GetOrder(id uint) (*models.Order, error)
	UpdateField(id uint, field, value string) error
	DeleteOrder(id uint) error
	Reset() ([]models.Order, error)
}

// browserService keeps an in-memory cache of one day's orders plus a map of
// per-order in-flight operations. A second update or delete against an order
// with an operation outstanding is rejected, not queued.
type browserService struct {
	repo     repository.OrderRepository
	notifier Notifier

	mu       sync.Mutex
	cache    []models.Order
	inflight map[uint]string
}

func NewBrowserService(repo repository.OrderRepository, notifier Notifier) BrowserService {
	return &browserService{
		repo:     repo,
		notifier: notifier,
		inflight: make(map[uint]string),
	}
}

// Load fetches every order created at or after the given date's midnight,
// newest first, and replaces the cache wholesale. On failure the previous
// cache stays in place.
func (s *browserService) Load(date time.Time) ([]models.Order, error) {
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	orders, err := s.repo.GetSince(startOfDay)
	if err != nil {
		s.notifier.Error("failed to fetch orders")
		return nil, apperr.NewPersistence("fetch orders", err)
	}

	s.mu.Lock()
	s.cache = orders
	s.mu.Unlock()
	return orders, nil
}

// GetOrder fetches a single order with its items straight from the store.
func (s *browserService) GetOrder(id uint) (*models.Order, error) {
	order, err := s.repo.GetByID(id)
	if err != nil {
		return nil, apperr.NewPersistence("fetch order", err)
	}
	return order, nil
}

// View applies the filters to the cached list without touching the service.
func (s *browserService) View(f Filters) []models.Order {
	s.mu.Lock()
	snapshot := make([]models.Order, len(s.cache))
	copy(snapshot, s.cache)
	s.mu.Unlock()

	return ApplyFilters(snapshot, f)
}

func (s *browserService) acquire(id uint, op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if current, busy := s.inflight[id]; busy {
		return apperr.NewConflict(fmt.Sprintf("%s already in progress for order %d", current, id))
	}
	s.inflight[id] = op
	return nil
}

func (s *browserService) release(id uint) {
	s.mu.Lock()
	delete(s.inflight, id)
	s.mu.Unlock()
}

// UpdateField issues a point update for one of the two mutable order fields
// and patches the cached entry on success. On failure the cache is left
// unchanged so the UI keeps the last-known-good value.
func (s *browserService) UpdateField(id uint, field, value string) error {
	column, ok := models.OrderColumnFor(field)
	if !ok {
		return apperr.NewValidation("field is not editable")
	}
	switch field {
	case "orderType":
		if !models.ValidOrderType(value) {
			return apperr.NewValidation("invalid order type")
		}
	case "paymentMethod":
		if !models.ValidPaymentMethod(value) {
			return apperr.NewValidation("invalid payment method")
		}
	}

	if err := s.acquire(id, "update"); err != nil {
		return err
	}
	defer s.release(id)

	if err := s.repo.UpdateFields(id, map[string]interface{}{column: value}); err != nil {
		s.notifier.Error("failed to update order " + field)
		return apperr.NewPersistence("update order", err)
	}

	s.mu.Lock()
	for i := range s.cache {
		if s.cache[i].ID == id {
			if field == "orderType" {
				s.cache[i].OrderType = value
			} else {
				s.cache[i].PaymentMethod = value
			}
			break
		}
	}
	s.mu.Unlock()

	s.notifier.Success("order " + field + " updated")
	return nil
}

// DeleteOrder removes the order from the store and, on success, from the
// cache. Failures leave the cache intact.
func (s *browserService) DeleteOrder(id uint) error {
	if err := s.acquire(id, "delete"); err != nil {
		return err
	}
	defer s.release(id)

	if err := s.repo.Delete(id); err != nil {
		s.notifier.Error("failed to delete order")
		return apperr.NewPersistence("delete order", err)
	}

	s.mu.Lock()
	kept := s.cache[:0:0]
	for _, o := range s.cache {
		if o.ID != id {
			kept = append(kept, o)
		}
	}
	s.cache = kept
	s.mu.Unlock()

	s.notifier.Success("order deleted")
	return nil
}

// Reset restores the default view: the current day's orders.
func (s *browserService) Reset() ([]models.Order, error) {
	return s.Load(time.Now())
}
