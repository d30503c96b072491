package services

import (
	"log"
	"sync"
	"time"

	"roti_pos/internal/apperr"
	"roti_pos/internal/catalog"
	"roti_pos/internal/models"
	"roti_pos/internal/repository"

	"github.com/google/uuid"
)

// CartStore persists order-entry sessions between requests.
type CartStore interface {
	SaveCart(cartID string, cart *catalog.Cart) error
	GetCart(cartID string) (*catalog.Cart, error)
	DeleteCart(cartID string) error
}

type ComposerService interface {
	CreateCart() (string, *catalog.Cart, error)
	GetCart(cartID string) (*catalog.Cart, error)
	ToggleSelect(cartID string, index int) (*catalog.Cart, error)
	SetItemField(cartID string, index int, field string, value float64) (*catalog.Cart, error)
	Increment(cartID string, index int, field string) (*catalog.Cart, error)
	Decrement(cartID string, index int, field string) (*catalog.Cart, error)
	SetMeta(cartID string, orderType, paymentMethod, note *string) (*catalog.Cart, error)
	Submit(cartID string) (*models.Order, error)
}

// composerService holds the submit guard in process: a map of cart session
// ids with a submission outstanding. Guarding here instead of a flag inside
// the stored session makes the check-and-set atomic and means a failed round
// trip can never strand a stale marker in the store.
type composerService struct {
	carts    CartStore
	orders   repository.OrderRepository
	notifier Notifier

	mu         sync.Mutex
	submitting map[string]bool
}

func NewComposerService(carts CartStore, orders repository.OrderRepository, notifier Notifier) ComposerService {
	return &composerService{
		carts:      carts,
		orders:     orders,
		notifier:   notifier,
		submitting: make(map[string]bool),
	}
}

func (s *composerService) CreateCart() (string, *catalog.Cart, error) {
	cartID := uuid.NewString()
	cart := catalog.NewCart()
	if err := s.carts.SaveCart(cartID, cart); err != nil {
		return "", nil, apperr.NewPersistence("create cart session", err)
	}
	return cartID, cart, nil
}

func (s *composerService) GetCart(cartID string) (*catalog.Cart, error) {
	return s.carts.GetCart(cartID)
}

// mutate loads the session, applies the edit and stores the session back.
// Failed edits leave the stored session untouched.
func (s *composerService) mutate(cartID string, edit func(*catalog.Cart) error) (*catalog.Cart, error) {
	cart, err := s.carts.GetCart(cartID)
	if err != nil {
		return nil, err
	}
	if err := edit(cart); err != nil {
		return nil, err
	}
	cart.UpdatedAt = time.Now()
	if err := s.carts.SaveCart(cartID, cart); err != nil {
		return nil, apperr.NewPersistence("save cart session", err)
	}
	return cart, nil
}

func (s *composerService) ToggleSelect(cartID string, index int) (*catalog.Cart, error) {
	return s.mutate(cartID, func(c *catalog.Cart) error {
		return c.ToggleSelect(index)
	})
}

func (s *composerService) SetItemField(cartID string, index int, field string, value float64) (*catalog.Cart, error) {
	return s.mutate(cartID, func(c *catalog.Cart) error {
		switch field {
		case "quantity":
			return c.SetQuantity(index, int(value))
		case "price":
			return c.SetPrice(index, value)
		}
		return apperr.NewValidation("field must be quantity or price")
	})
}

func (s *composerService) Increment(cartID string, index int, field string) (*catalog.Cart, error) {
	return s.mutate(cartID, func(c *catalog.Cart) error {
		return c.Increment(index, field)
	})
}

func (s *composerService) Decrement(cartID string, index int, field string) (*catalog.Cart, error) {
	return s.mutate(cartID, func(c *catalog.Cart) error {
		return c.Decrement(index, field)
	})
}

func (s *composerService) SetMeta(cartID string, orderType, paymentMethod, note *string) (*catalog.Cart, error) {
	return s.mutate(cartID, func(c *catalog.Cart) error {
		if orderType != nil {
			if *orderType != "" && !models.ValidOrderType(*orderType) {
				return apperr.NewValidation("invalid order type")
			}
			c.OrderType = *orderType
		}
		if paymentMethod != nil {
			if *paymentMethod != "" && !models.ValidPaymentMethod(*paymentMethod) {
				return apperr.NewValidation("invalid payment method")
			}
			c.PaymentMethod = *paymentMethod
		}
		if note != nil {
			c.Note = *note
		}
		return nil
	})
}

func (s *composerService) beginSubmit(cartID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting[cartID] {
		return apperr.NewConflict("order submission already in progress")
	}
	s.submitting[cartID] = true
	return nil
}

func (s *composerService) endSubmit(cartID string) {
	s.mu.Lock()
	delete(s.submitting, cartID)
	s.mu.Unlock()
}

// Submit validates the session and persists the order. On success the session
// is reset to the default catalog; on failure the stored session keeps the
// entered state so the user can retry without re-entering data. Nothing is
// written to the session store before the insert, so a failed insert leaves
// the session exactly as it was.
func (s *composerService) Submit(cartID string) (*models.Order, error) {
	if err := s.beginSubmit(cartID); err != nil {
		return nil, err
	}
	defer s.endSubmit(cartID)

	cart, err := s.carts.GetCart(cartID)
	if err != nil {
		return nil, err
	}

	if err := cart.Validate(); err != nil {
		s.notifier.Error(err.Error())
		return nil, err
	}

	order := buildOrder(cart)
	if err := s.orders.Create(order); err != nil {
		s.notifier.Error("failed to save order: " + err.Error())
		return nil, apperr.NewPersistence("save order", err)
	}

	cart.Reset()
	if err := s.carts.SaveCart(cartID, cart); err != nil {
		// The order is already persisted. A session still holding the
		// entered state would invite a duplicate submit, so drop it and let
		// the client start a fresh one.
		log.Printf("failed to reset cart session %s: %v", cartID, err)
		if delErr := s.carts.DeleteCart(cartID); delErr != nil {
			log.Printf("failed to drop cart session %s: %v", cartID, delErr)
		}
	}

	s.notifier.Success("order saved")
	return order, nil
}

func buildOrder(cart *catalog.Cart) *models.Order {
	selected := cart.SelectedLines()
	items := make([]models.OrderItem, 0, len(selected))
	var total float64
	for i, l := range selected {
		items = append(items, models.OrderItem{
			Position: i,
			Name:     l.Name,
			Quantity: l.Quantity,
			Price:    l.Price,
			Total:    l.Total(),
		})
		total += l.Total()
	}

	return &models.Order{
		Items:         items,
		PaymentMethod: cart.PaymentMethod,
		OrderType:     cart.OrderType,
		Note:          cart.Note,
		Total:         total,
		CreatedAt:     time.Now(),
	}
}
