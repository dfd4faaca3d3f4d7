package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"bloomora/internal/domain"
	"bloomora/internal/infra"
	rabbit "bloomora/internal/infra/rabbitmq"
	"bloomora/internal/ledger"
	"bloomora/internal/repository"

	"github.com/go-redis/redis/v8"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrInvalidStatus   = errors.New("invalid order status")
	ErrNegativeTotal   = errors.New("total value must not be negative")
	ErrInvalidAdvance  = errors.New("advance amount must be between 0 and the total value")
	ErrMissingProducts = errors.New("products description is required")
)

type OrderService struct {
	repo        repository.OrderRepository
	customers   repository.CustomerRepository
	publisher   rabbit.PublisherInterface
	actors      infra.ActorProvider
	feed        infra.ChangeAnnouncer
	redisClient *redis.Client
}

func NewOrderService(r repository.OrderRepository, c repository.CustomerRepository, pub rabbit.PublisherInterface, actors infra.ActorProvider, feed infra.ChangeAnnouncer) *OrderService {
	return &OrderService{
		repo:      r,
		customers: c,
		publisher: pub,
		actors:    actors,
		feed:      feed,
	}
}

func (s *OrderService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

func validateOrder(o *domain.Order) error {
	if !domain.ValidStatus(o.Status) {
		return ErrInvalidStatus
	}
	if o.TotalValue < 0 {
		return ErrNegativeTotal
	}
	if o.Products == "" {
		return ErrMissingProducts
	}
	if o.Status == domain.StatusAdvanceTaken {
		if o.AdvanceAmount < 0 || o.AdvanceAmount > o.TotalValue {
			return ErrInvalidAdvance
		}
	} else {
		// advance is meaningful only under Advance Taken
		o.AdvanceAmount = 0
	}
	return nil
}

// Create stores a new order. The display code and creation timestamp are
// assigned here; the referenced customer must exist at creation time.
func (s *OrderService) Create(ctx context.Context, order *domain.Order) error {
	if err := validateOrder(order); err != nil {
		return err
	}

	customer, err := s.customers.FindByID(order.CustomerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return ErrCustomerNotFound
	}

	actor := s.actors.CurrentActor(ctx)
	now := time.Now()
	order.OrderCode = generateOrderCode(now)
	order.OrderDate = now
	order.CreatedAt = now
	order.CreatedBy = actor
	order.UpdatedAt = now
	order.UpdatedBy = actor

	if err := s.repo.Save(order); err != nil {
		return err
	}

	s.feed.Announce(ctx, infra.OrdersCollection)
	go s.publishOrderEvent(context.Background(), domain.EventOrderCreated, *order, customer.FullName, actor)

	return nil
}

// Update applies changes to an existing order. ID, display code and creation
// timestamp are immutable; status transitions are unconstrained.
func (s *OrderService) Update(ctx context.Context, id string, changes domain.Order) (*domain.Order, error) {
	existing, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrOrderNotFound
	}

	existing.CustomerID = changes.CustomerID
	existing.DeliveryDate = changes.DeliveryDate
	existing.Products = changes.Products
	existing.TotalValue = changes.TotalValue
	existing.Status = changes.Status
	existing.AdvanceAmount = changes.AdvanceAmount
	existing.SpecialInstructions = changes.SpecialInstructions

	if err := validateOrder(existing); err != nil {
		return nil, err
	}

	actor := s.actors.CurrentActor(ctx)
	existing.UpdatedAt = time.Now()
	existing.UpdatedBy = actor

	if err := s.repo.Update(existing); err != nil {
		return nil, err
	}

	s.feed.Announce(ctx, infra.OrdersCollection)
	name, nameErr := s.resolveCustomerName(ctx, existing.CustomerID)
	if nameErr != nil {
		name = ledger.UnknownCustomer
	}
	go s.publishOrderEvent(context.Background(), domain.EventOrderUpdated, *existing, name, actor)

	return existing, nil
}

// Delete removes an order permanently. No history is retained.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	existing, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrOrderNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.feed.Announce(ctx, infra.OrdersCollection)
	return nil
}

func (s *OrderService) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	o, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

// List returns orders most-recent-first, optionally narrowed by a
// case-insensitive substring search over order code and customer name.
func (s *OrderService) List(ctx context.Context, query string) ([]domain.Order, error) {
	orders, err := s.repo.FindAll()
	if err != nil {
		return nil, err
	}
	if query == "" {
		return orders, nil
	}
	customers, err := s.customers.FindAll()
	if err != nil {
		return nil, err
	}
	return ledger.SearchOrders(orders, ledger.CustomerIndex(customers), query), nil
}

type UpcomingDelivery struct {
	Order        domain.Order `json:"order"`
	CustomerName string       `json:"customerName"`
}

type Dashboard struct {
	Stats              ledger.Stats       `json:"stats"`
	UpcomingDeliveries []UpcomingDelivery `json:"upcomingDeliveries"`
}

// GetDashboard aggregates payment statistics over orders created inside the
// optional inclusive date range, plus the next deliveries still to be made.
func (s *OrderService) GetDashboard(ctx context.Context, from, to time.Time) (*Dashboard, error) {
	orders, err := s.repo.FindAll()
	if err != nil {
		return nil, err
	}
	customers, err := s.customers.FindAll()
	if err != nil {
		return nil, err
	}
	idx := ledger.CustomerIndex(customers)

	working := ledger.FilterByDateRange(orders, from, to)
	upcoming := ledger.UpcomingDeliveries(working, time.Now(), ledger.UpcomingWindow)

	deliveries := make([]UpcomingDelivery, 0, len(upcoming))
	for _, o := range upcoming {
		deliveries = append(deliveries, UpcomingDelivery{
			Order:        o,
			CustomerName: ledger.ResolveName(idx, o.CustomerID),
		})
	}

	return &Dashboard{
		Stats:              ledger.Aggregate(working),
		UpcomingDeliveries: deliveries,
	}, nil
}

// resolveCustomerName looks the name up through a short-lived Redis cache so
// repeated event publishing does not hammer the customer table.
func (s *OrderService) resolveCustomerName(ctx context.Context, customerID string) (string, error) {
	cacheKey := "customer:name:" + customerID

	if s.redisClient != nil {
		if cached, err := s.redisClient.Get(ctx, cacheKey).Result(); err == nil {
			return cached, nil
		}
	}

	customer, err := s.customers.FindByID(customerID)
	if err != nil {
		return "", err
	}
	if customer == nil {
		return ledger.UnknownCustomer, nil
	}

	if s.redisClient != nil {
		s.redisClient.Set(ctx, cacheKey, customer.FullName, time.Minute)
	}

	return customer.FullName, nil
}

func (s *OrderService) publishOrderEvent(ctx context.Context, action string, order domain.Order, customerName, actor string) {
	evt := domain.OrderEvent{
		Action:       action,
		Order:        order,
		CustomerName: customerName,
		Actor:        actor,
	}
	if err := s.publisher.Publish(ctx, action, evt); err != nil {
		log.Printf("failed to publish %s event: %v", action, err)
	}
}

// generateOrderCode derives the human-facing display id from the creation
// instant, e.g. PT-4821.
func generateOrderCode(t time.Time) string {
	return fmt.Sprintf("PT-%04d", t.UnixMilli()%10000)
}
