package models

type OrderItem struct {
	ID       uint    `json:"-" gorm:"primaryKey"`
	OrderID  uint    `json:"-" gorm:"not null;index"`
	Position int     `json:"-" gorm:"not null"`
	Name     string  `json:"name" gorm:"not null"`
	Quantity int     `json:"quantity" gorm:"not null"`
	Price    float64 `json:"price" gorm:"not null"`
	Total    float64 `json:"total" gorm:"not null"` // Quantity * Price at submission time
}
