package repository

import (
	"bloomora/internal/domain"
)

type OrderRepository interface {
	Save(order *domain.Order) error
	Update(order *domain.Order) error
	Delete(id string) error
	FindByID(id string) (*domain.Order, error)
	FindAll() ([]domain.Order, error)
	FindByCustomerID(customerID string) ([]domain.Order, error)
}
