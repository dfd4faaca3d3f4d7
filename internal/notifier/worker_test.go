package notifier

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"bloomora/internal/domain"
	"bloomora/internal/mocks"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type stubSource struct {
	deliveries chan amqp.Delivery
}

func (s *stubSource) Deliveries() (<-chan amqp.Delivery, error) {
	return s.deliveries, nil
}

func TestWorkerDeliversOrderEvents(t *testing.T) {
	sink := new(mocks.MockSink)
	sink.On("Notify", mock.MatchedBy(func(msg string) bool {
		return len(msg) > 0
	})).Return()

	source := &stubSource{deliveries: make(chan amqp.Delivery, 2)}
	worker := NewWorker(source, sink)

	body, _ := json.Marshal(domain.OrderEvent{
		Action:       domain.EventOrderCreated,
		Order:        domain.Order{OrderCode: "PT-1001", Products: "Lilies", Status: domain.StatusCOD},
		CustomerName: "Eleanor Vance",
	})
	source.deliveries <- amqp.Delivery{RoutingKey: domain.EventOrderCreated, Body: body}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	err := worker.Run(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	sink.AssertNumberOfCalls(t, "Notify", 1)
}

func TestWorkerDropsMalformedPayloads(t *testing.T) {
	sink := new(mocks.MockSink)

	source := &stubSource{deliveries: make(chan amqp.Delivery, 2)}
	worker := NewWorker(source, sink)

	source.deliveries <- amqp.Delivery{RoutingKey: domain.EventOrderCreated, Body: []byte("{not json")}
	source.deliveries <- amqp.Delivery{RoutingKey: "billing.unknown", Body: []byte("{}")}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	_ = worker.Run(ctx)

	sink.AssertNotCalled(t, "Notify", mock.Anything)
}

func TestWorkerStopsWhenStreamCloses(t *testing.T) {
	sink := new(mocks.MockSink)
	source := &stubSource{deliveries: make(chan amqp.Delivery)}
	worker := NewWorker(source, sink)

	close(source.deliveries)

	err := worker.Run(context.Background())
	assert.NoError(t, err)
}

func TestWorkerHandlesCustomerEvents(t *testing.T) {
	sink := new(mocks.MockSink)
	sink.On("Notify", mock.Anything).Return()

	source := &stubSource{deliveries: make(chan amqp.Delivery, 1)}
	worker := NewWorker(source, sink)

	body, _ := json.Marshal(domain.CustomerEvent{
		Action:   domain.EventCustomerUpdated,
		Customer: domain.Customer{FullName: "Eleanor Vance", Phone: "555-0101"},
		Actor:    "staff@bloomora.example",
	})
	source.deliveries <- amqp.Delivery{RoutingKey: domain.EventCustomerUpdated, Body: body}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	_ = worker.Run(ctx)

	sink.AssertNumberOfCalls(t, "Notify", 1)
}
