package models

import (
	"strings"
	"time"
)

type Order struct {
	ID            uint        `json:"id" gorm:"primaryKey"`
	Items         []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	PaymentMethod string      `json:"paymentMethod" gorm:"not null"` // cash, pending, online
	OrderType     string      `json:"orderType" gorm:"not null"`     // delivery, pickup
	Note          string      `json:"note" gorm:"type:text"`
	Total         float64     `json:"total" gorm:"not null"`
	CreatedAt     time.Time   `json:"createdAt"`
}

type OrderType string

const (
	OrderDelivery OrderType = "delivery"
	OrderPickup   OrderType = "pickup"
)

type PaymentMethod string

const (
	PaymentCash    PaymentMethod = "cash"
	PaymentPending PaymentMethod = "pending"
	PaymentOnline  PaymentMethod = "online"
)

// FilterAll is the sentinel select value meaning "no filter".
const FilterAll = "All"

func ValidOrderType(value string) bool {
	switch OrderType(value) {
	case OrderDelivery, OrderPickup:
		return true
	}
	return false
}

func ValidPaymentMethod(value string) bool {
	switch PaymentMethod(value) {
	case PaymentCash, PaymentPending, PaymentOnline:
		return true
	}
	return false
}

// Only payment method and order type may change after an order is created.
// Items, total and createdAt are immutable.
func OrderColumnFor(field string) (string, bool) {
	switch field {
	case "orderType":
		return "order_type", true
	case "paymentMethod":
		return "payment_method", true
	}
	return "", false
}

// ItemNames joins the line item names for list rendering.
func (o *Order) ItemNames() string {
	names := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		names = append(names, item.Name)
	}
	return strings.Join(names, ", ")
}

func (o *Order) CreatedAtDisplay() string {
	return o.CreatedAt.Format("2006-01-02 15:04")
}
