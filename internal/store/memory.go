package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/defycont/SIFIDE2025-v1.0/internal/domain"
)

// MemoryStore implements Store interface with in-memory storage
type MemoryStore struct {
	mu        sync.RWMutex
	taxpayers map[string]*domain.TaxpayerData
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{taxpayers: make(map[string]*domain.TaxpayerData)}
}

// clone copies a bundle so callers never share state with the store.
func clone(data *domain.TaxpayerData) *domain.TaxpayerData {
	c := *data
	if data.HistoricalLosses != nil {
		c.HistoricalLosses = append([]domain.HistoricalLoss(nil), data.HistoricalLosses...)
	}
	if data.LastSaved != nil {
		saved := *data.LastSaved
		c.LastSaved = &saved
	}
	return &c
}

func (m *MemoryStore) Get(ctx context.Context, rfc string) (*domain.TaxpayerData, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.taxpayers[domain.NormalizeRFC(rfc)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, rfc)
	}
	return clone(data), nil
}

func (m *MemoryStore) Save(ctx context.Context, data *domain.TaxpayerData) error {
	if data.Config.RFC == "" {
		return fmt.Errorf("cannot save a taxpayer without RFC")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	saved := nowFunc().UTC()
	data.LastSaved = &saved
	m.taxpayers[domain.NormalizeRFC(data.Config.RFC)] = clone(data)
	return nil
}

func (m *MemoryStore) List(ctx context.Context) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make([]Entry, 0, len(m.taxpayers))
	for _, data := range m.taxpayers {
		entries = append(entries, entryFor(data))
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].RFC < entries[j].RFC })
	return entries, nil
}

func (m *MemoryStore) Delete(ctx context.Context, rfc string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := domain.NormalizeRFC(rfc)
	if _, ok := m.taxpayers[key]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, rfc)
	}
	delete(m.taxpayers, key)
	return nil
}
