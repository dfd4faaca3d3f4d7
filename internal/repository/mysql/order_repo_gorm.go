package mysql

import (
	"errors"
	"log"

	"bloomora/internal/domain"
	"bloomora/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) Save(order *domain.Order) error {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	result := r.db.Create(order)
	if result.Error != nil {
		log.Printf("order save error: %v", result.Error)
		return result.Error
	}
	return nil
}

func (r *orderRepo) Update(order *domain.Order) error {
	result := r.db.Model(&domain.Order{ID: order.ID}).Updates(map[string]any{
		"customer_id":          order.CustomerID,
		"delivery_date":        order.DeliveryDate,
		"products":             order.Products,
		"total_value":          order.TotalValue,
		"status":               order.Status,
		"advance_amount":       order.AdvanceAmount,
		"special_instructions": order.SpecialInstructions,
		"updated_at":           order.UpdatedAt,
		"updated_by":           order.UpdatedBy,
	})
	if result.Error != nil {
		log.Printf("order update error: %v", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *orderRepo) Delete(id string) error {
	result := r.db.Delete(&domain.Order{}, "id = ?", id)
	if result.Error != nil {
		log.Printf("order delete error: %v", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *orderRepo) FindByID(id string) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("order FindByID error: %v", err)
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) FindAll() ([]domain.Order, error) {
	var out []domain.Order
	if err := r.db.Order("order_date DESC").Find(&out).Error; err != nil {
		log.Printf("order FindAll error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) FindByCustomerID(customerID string) ([]domain.Order, error) {
	var out []domain.Order
	if err := r.db.Where("customer_id = ?", customerID).Order("order_date DESC").Find(&out).Error; err != nil {
		log.Printf("order FindByCustomerID error: %v", err)
		return nil, err
	}
	return out, nil
}
