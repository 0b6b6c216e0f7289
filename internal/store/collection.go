package store

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"orderdesk/internal/domain"

	"go.uber.org/zap"
)

// Collection is an in-memory, mutex-guarded list of entities of one kind.
// Ids come from a monotonic counter so a deleted id is never reissued.
type Collection[T any] struct {
	mu       sync.RWMutex
	name     string
	idFormat string
	items    []T
	next     int
	getID    func(T) string
	setID    func(*T, string)
	logger   *zap.Logger
}

func newCollection[T any](name, idFormat string, getID func(T) string, setID func(*T, string), logger *zap.Logger) *Collection[T] {
	return &Collection[T]{
		name:     name,
		idFormat: idFormat,
		getID:    getID,
		setID:    setID,
		logger:   logger,
	}
}

// load replaces the contents with items and restarts the counter after the highest seeded id.
func (c *Collection[T]) load(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make([]T, 0, len(items))
	c.next = 0
	for _, item := range items {
		c.items = append(c.items, clone(item))
		if n := trailingNumber(c.getID(item)); n > c.next {
			c.next = n
		}
	}
}

// List returns a copy of every entity in insertion order.
func (c *Collection[T]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, clone(item))
	}
	return out
}

// Len returns the number of stored entities.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Get returns the entity with the given id or domain.ErrNotFound.
func (c *Collection[T]) Get(id string) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	idx := c.indexOf(id)
	if idx < 0 {
		var zero T
		return zero, domain.ErrNotFound
	}
	return clone(c.items[idx]), nil
}

// Create assigns the next id to item and appends it.
func (c *Collection[T]) Create(item T) T {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.next++
	id := fmt.Sprintf(c.idFormat, c.next)
	c.setID(&item, id)
	c.items = append(c.items, clone(item))
	c.logger.Debug("store: create", zap.String("collection", c.name), zap.String("id", id), zap.Int("count", len(c.items)))
	return clone(item)
}

// Update shallow-merges patch over the stored entity: top-level keys present in
// patch replace the stored values wholesale, nested objects included. The id is preserved.
func (c *Collection[T]) Update(id string, patch map[string]json.RawMessage) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	idx := c.indexOf(id)
	if idx < 0 {
		c.logger.Debug("store: update not found", zap.String("collection", c.name), zap.String("id", id))
		return zero, domain.ErrNotFound
	}
	merged, err := merge(c.items[idx], patch)
	if err != nil {
		return zero, err
	}
	c.setID(&merged, id)
	c.items[idx] = merged
	c.logger.Debug("store: update", zap.String("collection", c.name), zap.String("id", id), zap.Int("fields", len(patch)))
	return clone(merged), nil
}

// Replace swaps the stored entity carrying the same id.
func (c *Collection[T]) Replace(item T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.indexOf(c.getID(item))
	if idx < 0 {
		var zero T
		return zero, domain.ErrNotFound
	}
	c.items[idx] = clone(item)
	return clone(item), nil
}

// Delete removes and returns the entity. Nothing cascades to other collections.
func (c *Collection[T]) Delete(id string) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.indexOf(id)
	if idx < 0 {
		var zero T
		return zero, domain.ErrNotFound
	}
	removed := c.items[idx]
	c.items = append(c.items[:idx], c.items[idx+1:]...)
	c.logger.Debug("store: delete", zap.String("collection", c.name), zap.String("id", id), zap.Int("count", len(c.items)))
	return removed, nil
}

func (c *Collection[T]) indexOf(id string) int {
	for i, item := range c.items {
		if c.getID(item) == id {
			return i
		}
	}
	return -1
}

func merge[T any](current T, patch map[string]json.RawMessage) (T, error) {
	var out T
	raw, err := json.Marshal(current)
	if err != nil {
		return out, err
	}
	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return out, err
	}
	for k, v := range patch {
		doc[k] = v
	}
	merged, err := json.Marshal(doc)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(merged, &out); err != nil {
		return out, domain.Invalid(fmt.Sprintf("invalid patch: %v", err))
	}
	return out, nil
}

// clone deep-copies v through its JSON form so callers never share maps or slices with the store.
func clone[T any](v T) T {
	raw, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return v
	}
	return out
}

func trailingNumber(id string) int {
	end := len(id)
	start := end
	for start > 0 && id[start-1] >= '0' && id[start-1] <= '9' {
		start--
	}
	n, err := strconv.Atoi(strings.TrimLeft(id[start:end], "0"))
	if err != nil {
		return 0
	}
	return n
}
