package repository

import (
	"roti_pos/internal/models"
	"time"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	GetSince(since time.Time) ([]models.Order, error)
	UpdateFields(id uint, fields map[string]interface{}) error
	Delete(id uint) error
	GetAll() ([]models.Order, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func withItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

func (r *orderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := withItems(r.db).First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetSince loads all orders created at or after the given instant, newest
// first.
func (r *orderRepository) GetSince(since time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := withItems(r.db).
		Where("created_at >= ?", since).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// UpdateFields patches only the given columns. Callers restrict the map to
// the mutable fields (order_type, payment_method).
func (r *orderRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *orderRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Order{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *orderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	err := withItems(r.db).Order("created_at DESC").Find(&orders).Error
	return orders, err
}
