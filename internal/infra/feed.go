package infra

import (
	"context"
	"errors"
	"log"
	"sync/atomic"

	"bloomora/internal/domain"
	"bloomora/internal/repository"

	"github.com/go-redis/redis/v8"
)

const (
	OrdersCollection    = "orders"
	CustomersCollection = "customers"
)

// ChangeFeed delivers materialized collection snapshots to subscribers.
// Writers announce a change after a successful write; each subscriber reloads
// the collection and receives the full list. The two collections have
// independent streams with no transactional relation between them.
type ChangeFeed struct {
	rdb *redis.Client
}

func NewChangeFeed(rdb *redis.Client) *ChangeFeed {
	return &ChangeFeed{rdb: rdb}
}

func channelFor(collection string) string {
	return "changes:" + collection
}

// Announce signals that a collection changed. Failures are logged only; a
// missed announcement degrades to a stale view, never to a failed write.
func (f *ChangeFeed) Announce(ctx context.Context, collection string) {
	if f == nil || f.rdb == nil {
		return
	}
	if err := f.rdb.Publish(ctx, channelFor(collection), "changed").Err(); err != nil {
		log.Printf("failed to announce change on %s: %v", collection, err)
	}
}

// SubscribeOrders delivers the current order list immediately and again after
// every announced change. Load failures go to onError and the stream stays
// live; a closed pub/sub stream ends the subscription without retry. The
// returned func cancels the subscription.
func (f *ChangeFeed) SubscribeOrders(ctx context.Context, repo repository.OrderRepository, onChange func([]domain.Order), onError func(error)) func() {
	return f.run(ctx, OrdersCollection, onError, func() error {
		orders, err := repo.FindAll()
		if err != nil {
			return err
		}
		onChange(orders)
		return nil
	})
}

// SubscribeCustomers mirrors SubscribeOrders for the customer collection.
func (f *ChangeFeed) SubscribeCustomers(ctx context.Context, repo repository.CustomerRepository, onChange func([]domain.Customer), onError func(error)) func() {
	return f.run(ctx, CustomersCollection, onError, func() error {
		customers, err := repo.FindAll()
		if err != nil {
			return err
		}
		onChange(customers)
		return nil
	})
}

func (f *ChangeFeed) run(ctx context.Context, collection string, onError func(error), load func() error) func() {
	pubsub := f.rdb.Subscribe(ctx, channelFor(collection))
	var cancelled atomic.Bool
	deliver := func() {
		if err := load(); err != nil {
			onError(err)
		}
	}
	go func() {
		deliver()
		for range pubsub.Channel() {
			deliver()
		}
		if !cancelled.Load() {
			onError(errors.New(collection + " subscription closed"))
		}
	}()
	return func() {
		cancelled.Store(true)
		_ = pubsub.Close()
	}
}
