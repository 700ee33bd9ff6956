package state

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// MemoryStore implements Store using an in-memory map.
// This is the default backend: fast, no persistence, all state lost on exit.
type MemoryStore struct {
	// mu guards the records and locks maps.
	mu sync.RWMutex

	// records maps access-point id to its current record.
	records map[string]*AccessPoint

	// locks holds one mutex per id; Update serializes on it so the
	// read-evaluate-mutate sequence for one id is a single critical
	// section without blocking other ids.
	locks map[string]*sync.Mutex

	logger *slog.Logger
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(logger *slog.Logger) *MemoryStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemoryStore{
		records: make(map[string]*AccessPoint),
		locks:   make(map[string]*sync.Mutex),
		logger:  logger.With("component", "state.memory"),
	}
}

// Add inserts or replaces the record for ap.ID.
func (m *MemoryStore) Add(ctx context.Context, ap *AccessPoint) error {
	if ap == nil {
		return fmt.Errorf("access point cannot be nil")
	}
	if ap.ID == "" {
		return fmt.Errorf("access point id cannot be empty")
	}

	m.mu.Lock()
	m.records[ap.ID] = ap.Clone()
	if _, ok := m.locks[ap.ID]; !ok {
		m.locks[ap.ID] = &sync.Mutex{}
	}
	m.mu.Unlock()

	m.logger.Info("state added",
		"ap_id", ap.ID,
		"channel", ap.Channel,
		"power_db", ap.PowerDB,
	)
	return nil
}

// Get returns a copy of the current record for id.
func (m *MemoryStore) Get(ctx context.Context, id string) (*AccessPoint, error) {
	if id == "" {
		return nil, fmt.Errorf("access point id cannot be empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	ap, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("%q: %w", id, ErrNotFound)
	}
	return ap.Clone(), nil
}

// Update runs fn against the record for id inside the per-id critical section.
func (m *MemoryStore) Update(ctx context.Context, id string, fn func(ap *AccessPoint) error) error {
	if id == "" {
		return fmt.Errorf("access point id cannot be empty")
	}

	m.mu.RLock()
	keyLock, ok := m.locks[id]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%q: %w", id, ErrNotFound)
	}

	keyLock.Lock()
	defer keyLock.Unlock()

	// Re-read under the key lock: Add may have replaced the record since.
	m.mu.RLock()
	ap, ok := m.records[id]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%q: %w", id, ErrNotFound)
	}

	working := ap.Clone()
	if err := fn(working); err != nil {
		return err
	}

	m.mu.Lock()
	m.records[id] = working
	m.mu.Unlock()
	return nil
}

// List returns copies of all records.
func (m *MemoryStore) List(ctx context.Context) ([]*AccessPoint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	aps := make([]*AccessPoint, 0, len(m.records))
	for _, ap := range m.records {
		aps = append(aps, ap.Clone())
	}
	return aps, nil
}

// Size returns the current number of stored records.
// This is useful for monitoring and testing.
func (m *MemoryStore) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// Close releases resources. The memory store holds none.
func (m *MemoryStore) Close() error {
	return nil
}
