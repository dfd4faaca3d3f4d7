// Package notifier consumes post-commit events from the message bus and
// pushes human-readable notifications to the Telegram sink. It runs fully
// decoupled from the write path: a write never waits on, or fails because
// of, anything in here.
package notifier

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"bloomora/internal/domain"
	"bloomora/internal/infra/telegram"

	"github.com/streadway/amqp"
)

type DeliverySource interface {
	Deliveries() (<-chan amqp.Delivery, error)
}

type Worker struct {
	source DeliverySource
	sink   telegram.SinkInterface
}

func NewWorker(source DeliverySource, sink telegram.SinkInterface) *Worker {
	return &Worker{source: source, sink: sink}
}

// Run drains the event queue until the context is cancelled or the stream
// closes. Malformed payloads are dropped with a log line.
func (w *Worker) Run(ctx context.Context) error {
	deliveries, err := w.source.Deliveries()
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				log.Printf("notifier: delivery stream closed")
				return nil
			}
			w.handle(d)
		}
	}
}

func (w *Worker) handle(d amqp.Delivery) {
	switch {
	case strings.HasPrefix(d.RoutingKey, "order."):
		var evt domain.OrderEvent
		if err := json.Unmarshal(d.Body, &evt); err != nil {
			log.Printf("notifier: dropping malformed order event: %v", err)
			return
		}
		w.sink.Notify(FormatOrderMessage(evt))
	case strings.HasPrefix(d.RoutingKey, "customer."):
		var evt domain.CustomerEvent
		if err := json.Unmarshal(d.Body, &evt); err != nil {
			log.Printf("notifier: dropping malformed customer event: %v", err)
			return
		}
		w.sink.Notify(FormatCustomerMessage(evt))
	default:
		log.Printf("notifier: ignoring unexpected routing key %q", d.RoutingKey)
	}
}
