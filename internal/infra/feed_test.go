package infra

import (
	"context"
	"errors"
	"testing"
	"time"

	"bloomora/internal/domain"
	"bloomora/internal/mocks"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
)

func newTestFeed(t *testing.T) *ChangeFeed {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewChangeFeed(rdb)
}

func waitFor[T any](t *testing.T, ch <-chan T, what string) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
		panic("unreachable")
	}
}

func TestChangeFeedDeliversInitialSnapshot(t *testing.T) {
	feed := newTestFeed(t)
	repo := new(mocks.MockOrderRepository)
	repo.On("FindAll").Return([]domain.Order{{ID: "o1"}}, nil)

	snapshots := make(chan []domain.Order, 4)
	unsubscribe := feed.SubscribeOrders(context.Background(), repo,
		func(orders []domain.Order) { snapshots <- orders },
		func(err error) { t.Errorf("unexpected subscription error: %v", err) },
	)
	defer unsubscribe()

	got := waitFor(t, snapshots, "initial snapshot")
	assert.Len(t, got, 1)
	assert.Equal(t, "o1", got[0].ID)
}

func TestChangeFeedReloadsOnAnnounce(t *testing.T) {
	feed := newTestFeed(t)
	repo := new(mocks.MockOrderRepository)
	repo.On("FindAll").Return([]domain.Order{{ID: "o1"}}, nil)

	snapshots := make(chan []domain.Order, 4)
	unsubscribe := feed.SubscribeOrders(context.Background(), repo,
		func(orders []domain.Order) { snapshots <- orders },
		func(err error) { t.Errorf("unexpected subscription error: %v", err) },
	)
	defer unsubscribe()

	waitFor(t, snapshots, "initial snapshot")

	// the pub/sub registration races the announce; give it a moment
	time.Sleep(100 * time.Millisecond)
	feed.Announce(context.Background(), OrdersCollection)

	waitFor(t, snapshots, "snapshot after announce")
	repo.AssertNumberOfCalls(t, "FindAll", 2)
}

func TestChangeFeedReportsLoadFailures(t *testing.T) {
	feed := newTestFeed(t)
	repo := new(mocks.MockOrderRepository)
	repo.On("FindAll").Return(nil, errors.New("database gone"))

	errs := make(chan error, 4)
	unsubscribe := feed.SubscribeOrders(context.Background(), repo,
		func(orders []domain.Order) { t.Error("unexpected snapshot") },
		func(err error) { errs <- err },
	)
	defer unsubscribe()

	err := waitFor(t, errs, "load failure")
	assert.Contains(t, err.Error(), "database gone")
}

func TestChangeFeedUnsubscribeIsQuiet(t *testing.T) {
	feed := newTestFeed(t)
	repo := new(mocks.MockCustomerRepository)
	repo.On("FindAll").Return([]domain.Customer{}, nil)

	snapshots := make(chan []domain.Customer, 4)
	errs := make(chan error, 4)
	unsubscribe := feed.SubscribeCustomers(context.Background(), repo,
		func(customers []domain.Customer) { snapshots <- customers },
		func(err error) { errs <- err },
	)

	waitFor(t, snapshots, "initial snapshot")
	unsubscribe()

	select {
	case err := <-errs:
		t.Errorf("unexpected error after unsubscribe: %v", err)
	case <-time.After(300 * time.Millisecond):
	}
}
