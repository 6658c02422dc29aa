// Package audit defines the append-only change trail written alongside mutations.
package audit

import (
	"context"
	"time"
)

// Action names a recorded mutation.
type Action string

const (
	ActionBatchReceived  Action = "batch_received"
	ActionOrderCreated   Action = "order_created"
	ActionOrderDelivered Action = "order_delivered"
	ActionPriceChanged   Action = "price_changed"
)

// Entry is one audit record. Changes holds a JSON document describing the
// mutation; large payloads may be stored compressed by the recorder.
type Entry struct {
	ID       int64
	Entity   string
	EntityID int64
	Action   Action
	Changes  map[string]any
	ActorID  int64
	At       time.Time
}

// Recorder persists audit entries. Implementations must participate in the
// caller's transaction so the trail never drifts from the mutation it describes.
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}

// Nop is a Recorder that discards entries. Used in tests.
type Nop struct{}

func (Nop) Record(context.Context, Entry) error { return nil }
