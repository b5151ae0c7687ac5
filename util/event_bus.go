// api/util/event_bus.go

package util

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	logger "github.com/farrowscore/api/logging"
	"github.com/farrowscore/api/model"
)

type EventType string

const (
	EventPaymentCompleted EventType = "payment.completed"
	EventPaymentFailed    EventType = "payment.failed"
	EventCacheCleared     EventType = "cache.cleared"
)

// PaymentEvent is published when a transaction leaves pending.
type PaymentEvent struct {
	Transaction model.Transaction
	From        model.TransactionStatus
}

type CacheClearedEvent struct {
	Keys int
}

type Event struct {
	Type       EventType
	OccurredAt time.Time
	Payload    interface{}
}

type EventHandler func(context.Context, Event) error

// EventBus delivers each event to its subscribers on background goroutines.
// Handler failures are logged against the event type and never reach the
// publisher.
type EventBus struct {
	mu          sync.RWMutex
	subscribers map[EventType][]EventHandler
	inflight    sync.WaitGroup
}

func NewEventBus() *EventBus {
	return &EventBus{subscribers: make(map[EventType][]EventHandler)}
}

func (eb *EventBus) Subscribe(eventType EventType, handler EventHandler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.subscribers[eventType] = append(eb.subscribers[eventType], handler)
}

// Publish hands payload to every subscriber of eventType. Handlers get a
// context detached from the publisher's cancellation.
func (eb *EventBus) Publish(ctx context.Context, eventType EventType, payload interface{}) {
	eb.mu.RLock()
	handlers := append([]EventHandler(nil), eb.subscribers[eventType]...)
	eb.mu.RUnlock()

	event := Event{Type: eventType, OccurredAt: time.Now().UTC(), Payload: payload}
	hctx := context.WithoutCancel(ctx)

	for _, handler := range handlers {
		eb.inflight.Add(1)
		go func(h EventHandler) {
			defer eb.inflight.Done()
			if err := h(hctx, event); err != nil {
				logger.Error("Event handler failed", zap.String("eventType", string(eventType)), zap.Error(err))
			}
		}(handler)
	}
}

// Drain waits for running deliveries, giving up when ctx is done.
func (eb *EventBus) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		eb.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
