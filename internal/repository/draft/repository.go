package draft

import (
	"context"
	"encoding/json"
)

// Slot is the key the order wizard saves its draft under.
const Slot = "commande_brouillon"

// Repository persists one opaque draft payload per (session, slot).
type Repository interface {
	// Load returns the stored payload; ok is false when the slot is empty.
	Load(ctx context.Context, session, slot string) (payload json.RawMessage, ok bool, err error)
	Save(ctx context.Context, session, slot string, payload json.RawMessage) error
	Clear(ctx context.Context, session, slot string) error
}
