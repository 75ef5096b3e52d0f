// Package events publishes order lifecycle notifications.
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rinsh4dd/e-com/internal/models"
)

const (
	TypeOrderPlaced        = "order.placed"
	TypeOrderStatusChanged = "order.status_changed"
)

// Event is anything that can be published. Key groups events of one user.
type Event interface {
	Type() string
	Key() string
}

type OrderPlaced struct {
	UserID models.ID    `json:"userId"`
	Order  models.Order `json:"order"`
}

func (OrderPlaced) Type() string  { return TypeOrderPlaced }
func (e OrderPlaced) Key() string { return e.UserID.String() }

type OrderStatusChanged struct {
	UserID  models.ID          `json:"userId"`
	OrderID int64              `json:"orderId"`
	From    models.OrderStatus `json:"from"`
	To      models.OrderStatus `json:"to"`
	// Actor is "admin" or "customer".
	Actor string `json:"actor"`
}

func (OrderStatusChanged) Type() string  { return TypeOrderStatusChanged }
func (e OrderStatusChanged) Key() string { return e.UserID.String() }

// Envelope is the wire form of an event.
type Envelope struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Data       json.RawMessage `json:"data"`
}

func Wrap(ev Event, now time.Time) (Envelope, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		ID:         uuid.NewString(),
		Type:       ev.Type(),
		OccurredAt: now.UTC(),
		Data:       data,
	}, nil
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close()
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close()                               {}

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
	// Err, when set, is returned by Publish after recording.
	Err error
}

func (r *Recorder) Publish(_ context.Context, ev Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return r.Err
}

func (r *Recorder) Close() {}

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}
