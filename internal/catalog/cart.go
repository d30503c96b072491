package catalog

import (
	"fmt"
	"time"

	"roti_pos/internal/apperr"
)

const (
	QuantityStep = 1
	PriceStep    = 5
)

// Cart is one order-entry session. It is serialized as JSON into the session
// store between requests.
type Cart struct {
	Lines         []Line    `json:"lines"`
	OrderType     string    `json:"orderType"`
	PaymentMethod string    `json:"paymentMethod"`
	Note          string    `json:"note"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func NewCart() *Cart {
	now := time.Now()
	return &Cart{
		Lines:     DefaultMenu(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (c *Cart) line(index int) (*Line, error) {
	if index < 0 || index >= len(c.Lines) {
		return nil, apperr.NewValidation(fmt.Sprintf("item index %d out of range", index))
	}
	return &c.Lines[index], nil
}

// ToggleSelect flips a line between unselected (quantity 0) and selected.
// Selecting starts at quantity 1; deselecting discards the quantity.
func (c *Cart) ToggleSelect(index int) error {
	l, err := c.line(index)
	if err != nil {
		return err
	}
	if l.Selected() {
		l.Quantity = 0
	} else {
		l.Quantity = 1
	}
	return nil
}

// SetQuantity clamps to integers >= 0. Selection follows from the quantity,
// so the selected/quantity coupling holds by construction.
func (c *Cart) SetQuantity(index, value int) error {
	l, err := c.line(index)
	if err != nil {
		return err
	}
	if value < 0 {
		value = 0
	}
	l.Quantity = value
	return nil
}

func (c *Cart) SetPrice(index int, value float64) error {
	l, err := c.line(index)
	if err != nil {
		return err
	}
	if value < 0 {
		value = 0
	}
	l.Price = value
	return nil
}

func (c *Cart) Increment(index int, field string) error {
	l, err := c.line(index)
	if err != nil {
		return err
	}
	switch field {
	case "quantity":
		l.Quantity += QuantityStep
	case "price":
		l.Price += PriceStep
	default:
		return apperr.NewValidation("field must be quantity or price")
	}
	return nil
}

func (c *Cart) Decrement(index int, field string) error {
	l, err := c.line(index)
	if err != nil {
		return err
	}
	switch field {
	case "quantity":
		if l.Quantity > 0 {
			l.Quantity -= QuantityStep
		}
	case "price":
		if l.Price >= PriceStep {
			l.Price -= PriceStep
		}
	default:
		return apperr.NewValidation("field must be quantity or price")
	}
	return nil
}

// Total is recomputed from the lines on every call, never stored.
func (c *Cart) Total() float64 {
	var total float64
	for _, l := range c.Lines {
		if l.Selected() {
			total += l.Total()
		}
	}
	return total
}

func (c *Cart) SelectedLines() []Line {
	var selected []Line
	for _, l := range c.Lines {
		if l.Selected() {
			selected = append(selected, l)
		}
	}
	return selected
}

// Validate checks the submission preconditions in a fixed order: order type,
// then payment method, then at least one selected item.
func (c *Cart) Validate() error {
	if c.OrderType == "" {
		return apperr.NewValidation("order type required")
	}
	if c.PaymentMethod == "" {
		return apperr.NewValidation("payment method required")
	}
	if len(c.SelectedLines()) == 0 {
		return apperr.NewValidation("no items selected")
	}
	return nil
}

// Reset restores the default catalog and clears the order meta fields.
func (c *Cart) Reset() {
	c.Lines = DefaultMenu()
	c.OrderType = ""
	c.PaymentMethod = ""
	c.Note = ""
	c.UpdatedAt = time.Now()
}
