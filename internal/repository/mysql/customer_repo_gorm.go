package mysql

import (
	"errors"
	"log"

	"bloomora/internal/domain"
	"bloomora/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) repository.CustomerRepository {
	return &customerRepo{db: db}
}

func (r *customerRepo) Save(customer *domain.Customer) error {
	if customer.ID == "" {
		customer.ID = uuid.NewString()
	}
	result := r.db.Create(customer)
	if result.Error != nil {
		log.Printf("customer save error: %v", result.Error)
		return result.Error
	}
	return nil
}

func (r *customerRepo) Update(customer *domain.Customer) error {
	result := r.db.Model(&domain.Customer{ID: customer.ID}).Updates(map[string]any{
		"full_name":   customer.FullName,
		"phone":       customer.Phone,
		"email":       customer.Email,
		"address":     customer.Address,
		"preferences": customer.Preferences,
		"updated_at":  customer.UpdatedAt,
		"updated_by":  customer.UpdatedBy,
	})
	if result.Error != nil {
		log.Printf("customer update error: %v", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *customerRepo) Delete(id string) error {
	result := r.db.Delete(&domain.Customer{}, "id = ?", id)
	if result.Error != nil {
		log.Printf("customer delete error: %v", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *customerRepo) FindByID(id string) (*domain.Customer, error) {
	var c domain.Customer
	if err := r.db.First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("customer FindByID error: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *customerRepo) FindAll() ([]domain.Customer, error) {
	var out []domain.Customer
	if err := r.db.Order("full_name ASC").Find(&out).Error; err != nil {
		log.Printf("customer FindAll error: %v", err)
		return nil, err
	}
	return out, nil
}
