package services

import (
	"strings"
	"time"

	"roti_pos/internal/models"
)

// Filters holds the browser's filter fields. Empty values and the "All"
// sentinel on the select filters mean "no filter on this dimension".
type Filters struct {
	Name          string
	Date          string // YYYY-MM-DD
	OrderType     string
	PaymentMethod string
	Note          string
}

// ApplyFilters is a pure function over an order list. Filters compose with
// logical AND. Name matches any item-name substring case-insensitively, the
// date filter compares calendar-day equality, order type and payment method
// are exact matches, note is a case-insensitive substring match.
func ApplyFilters(orders []models.Order, f Filters) []models.Order {
	filtered := orders

	if f.Name != "" {
		name := strings.ToLower(f.Name)
		filtered = keep(filtered, func(o models.Order) bool {
			for _, item := range o.Items {
				if strings.Contains(strings.ToLower(item.Name), name) {
					return true
				}
			}
			return false
		})
	}

	if f.Date != "" {
		if day, err := time.ParseInLocation("2006-01-02", f.Date, time.Local); err == nil {
			filtered = keep(filtered, func(o models.Order) bool {
				return sameDay(o.CreatedAt, day)
			})
		}
	}

	if f.OrderType != "" && f.OrderType != models.FilterAll {
		filtered = keep(filtered, func(o models.Order) bool {
			return o.OrderType == f.OrderType
		})
	}

	if f.PaymentMethod != "" && f.PaymentMethod != models.FilterAll {
		filtered = keep(filtered, func(o models.Order) bool {
			return o.PaymentMethod == f.PaymentMethod
		})
	}

	if f.Note != "" {
		note := strings.ToLower(f.Note)
		filtered = keep(filtered, func(o models.Order) bool {
			return strings.Contains(strings.ToLower(o.Note), note)
		})
	}

	return filtered
}

func keep(orders []models.Order, match func(models.Order) bool) []models.Order {
	kept := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if match(o) {
			kept = append(kept, o)
		}
	}
	return kept
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
