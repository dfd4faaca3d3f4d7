package services

import (
	"context"
	"errors"
	"log"
	"time"

	"bloomora/internal/domain"
	"bloomora/internal/infra"
	rabbit "bloomora/internal/infra/rabbitmq"
	"bloomora/internal/ledger"
	"bloomora/internal/repository"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrMissingName      = errors.New("full name is required")
	ErrMissingPhone     = errors.New("phone is required")
)

type CustomerService struct {
	repo      repository.CustomerRepository
	publisher rabbit.PublisherInterface
	actors    infra.ActorProvider
	feed      infra.ChangeAnnouncer
}

func NewCustomerService(r repository.CustomerRepository, pub rabbit.PublisherInterface, actors infra.ActorProvider, feed infra.ChangeAnnouncer) *CustomerService {
	return &CustomerService{
		repo:      r,
		publisher: pub,
		actors:    actors,
		feed:      feed,
	}
}

func (s *CustomerService) Create(ctx context.Context, customer *domain.Customer) error {
	if customer.FullName == "" {
		return ErrMissingName
	}
	if customer.Phone == "" {
		return ErrMissingPhone
	}

	actor := s.actors.CurrentActor(ctx)
	now := time.Now()
	customer.CreatedAt = now
	customer.CreatedBy = actor
	customer.UpdatedAt = now
	customer.UpdatedBy = actor

	if err := s.repo.Save(customer); err != nil {
		return err
	}

	s.feed.Announce(ctx, infra.CustomersCollection)
	go s.publishCustomerEvent(context.Background(), domain.EventCustomerCreated, *customer, actor)

	return nil
}

func (s *CustomerService) Update(ctx context.Context, id string, changes domain.Customer) (*domain.Customer, error) {
	existing, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrCustomerNotFound
	}
	if changes.FullName == "" {
		return nil, ErrMissingName
	}
	if changes.Phone == "" {
		return nil, ErrMissingPhone
	}

	actor := s.actors.CurrentActor(ctx)
	existing.FullName = changes.FullName
	existing.Phone = changes.Phone
	existing.Email = changes.Email
	existing.Address = changes.Address
	existing.Preferences = changes.Preferences
	existing.UpdatedAt = time.Now()
	existing.UpdatedBy = actor

	if err := s.repo.Update(existing); err != nil {
		return nil, err
	}

	s.feed.Announce(ctx, infra.CustomersCollection)
	go s.publishCustomerEvent(context.Background(), domain.EventCustomerUpdated, *existing, actor)

	return existing, nil
}

// Delete removes a customer permanently. Orders referencing the customer are
// left in place and render the Unknown sentinel from then on.
func (s *CustomerService) Delete(ctx context.Context, id string) error {
	existing, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrCustomerNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.feed.Announce(ctx, infra.CustomersCollection)
	return nil
}

func (s *CustomerService) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	c, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCustomerNotFound
	}
	return c, nil
}

// List returns all customers, optionally narrowed by a case-insensitive
// substring search over name, phone and email.
func (s *CustomerService) List(ctx context.Context, query string) ([]domain.Customer, error) {
	customers, err := s.repo.FindAll()
	if err != nil {
		return nil, err
	}
	return ledger.SearchCustomers(customers, query), nil
}

func (s *CustomerService) publishCustomerEvent(ctx context.Context, action string, customer domain.Customer, actor string) {
	evt := domain.CustomerEvent{
		Action:   action,
		Customer: customer,
		Actor:    actor,
	}
	if err := s.publisher.Publish(ctx, action, evt); err != nil {
		log.Printf("failed to publish %s event: %v", action, err)
	}
}
