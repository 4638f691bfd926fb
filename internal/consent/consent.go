// Package consent persists the visitor's cookie-banner decision.
package consent

import (
	"context"
	"sync"
)

// Key is the storage key holding the decision.
const Key = "cookieConsent"

// State is the stored decision.
type State string

const (
	Unset    State = ""
	Accepted State = "accepted"
	Declined State = "declined"
)

// ParseState maps a stored value to a State. Unknown values count as Unset.
func ParseState(v string) State {
	switch State(v) {
	case Accepted:
		return Accepted
	case Declined:
		return Declined
	default:
		return Unset
	}
}

// Store is a client-scoped key-value store holding single string values.
// Get returns "" for absent keys.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Read loads the decision. Read errors are reported as Unset together with
// the error so callers can still render the banner.
func Read(ctx context.Context, s Store) (State, error) {
	if s == nil {
		return Unset, nil
	}
	v, err := s.Get(ctx, Key)
	if err != nil {
		return Unset, err
	}
	return ParseState(v), nil
}

// Write persists a decision. Writing Unset is a no-op.
func Write(ctx context.Context, s Store, st State) error {
	if s == nil || st == Unset {
		return nil
	}
	return s.Set(ctx, Key, string(st))
}

// MemoryStore keeps values in memory, like a browser's local storage.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore returns a store preloaded with values.
func NewMemoryStore(values map[string]string) *MemoryStore {
	m := &MemoryStore{values: map[string]string{}}
	for k, v := range values {
		m.values[k] = v
	}
	return m
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key], nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = map[string]string{}
	}
	m.values[key] = value
	return nil
}

// Tee writes to every store and reads from the first one.
type Tee []Store

func (t Tee) Get(ctx context.Context, key string) (string, error) {
	if len(t) == 0 {
		return "", nil
	}
	return t[0].Get(ctx, key)
}

func (t Tee) Set(ctx context.Context, key, value string) error {
	for _, s := range t {
		if err := s.Set(ctx, key, value); err != nil {
			return err
		}
	}
	return nil
}
