package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// KV is the persistence capability every collection is built on: get, set and
// delete of opaque byte values with read-your-writes consistency inside one
// process. No cross-process concurrency guarantee is made.
type KV interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

// Collection persists a slice of JSON-serializable records under a single key.
// Every mutation is a full-collection read-modify-write executed to completion
// before the caller regains control.
type Collection[T any] struct {
	kv  KV
	key string
}

func NewCollection[T any](kv KV, key string) *Collection[T] {
	return &Collection[T]{kv: kv, key: key}
}

// Load returns the stored records, or an empty slice when the key is absent.
func (c *Collection[T]) Load() ([]T, error) {
	raw, ok, err := c.kv.Get(c.key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c.key, err)
	}
	if !ok || len(raw) == 0 {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.key, err)
	}
	return items, nil
}

// Save replaces the stored records.
func (c *Collection[T]) Save(items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	if err := c.kv.Set(c.key, raw); err != nil {
		return fmt.Errorf("save %s: %w", c.key, err)
	}
	return nil
}

// NewID generates a unique record id with the given prefix, e.g. "TEN-1a2b3c4d".
func NewID(prefix string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	if prefix == "" {
		return id
	}
	return prefix + "-" + id
}

// Now returns the timestamp used for created_at/updated_at stamps.
func Now() time.Time {
	return time.Now().UTC()
}
