package draft

import (
	"context"
	"encoding/json"
	"sync"
)

type slotKey struct {
	session string
	slot    string
}

type memoryRepo struct {
	mu    sync.RWMutex
	slots map[slotKey]json.RawMessage
}

// NewMemory returns a Repository kept in process memory.
func NewMemory() Repository {
	return &memoryRepo{slots: map[slotKey]json.RawMessage{}}
}

func (r *memoryRepo) Load(_ context.Context, session, slot string) (json.RawMessage, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	payload, ok := r.slots[slotKey{session, slot}]
	if !ok {
		return nil, false, nil
	}
	return append(json.RawMessage(nil), payload...), true, nil
}

func (r *memoryRepo) Save(_ context.Context, session, slot string, payload json.RawMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots[slotKey{session, slot}] = append(json.RawMessage(nil), payload...)
	return nil
}

func (r *memoryRepo) Clear(_ context.Context, session, slot string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.slots, slotKey{session, slot})
	return nil
}
