package repository

import (
	"bloomora/internal/domain"
)

type CustomerRepository interface {
	Save(customer *domain.Customer) error
	Update(customer *domain.Customer) error
	Delete(id string) error
	FindByID(id string) (*domain.Customer, error)
	FindAll() ([]domain.Customer, error)
}
