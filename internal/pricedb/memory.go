package pricedb

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore keeps quotes and history in maps. Used for offline runs and tests.
type MemoryStore struct {
	mu      sync.Mutex
	quotes  map[string]Quote
	history map[string][]PricePoint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		quotes:  make(map[string]Quote),
		history: make(map[string][]PricePoint),
	}
}

func (m *MemoryStore) Quotes(_ context.Context) ([]Quote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Quote, 0, len(m.quotes))
	for _, q := range m.quotes {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out, nil
}

func (m *MemoryStore) History(_ context.Context, symbol string, days int) ([]PricePoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	since := time.Now().AddDate(0, 0, -days)
	var out []PricePoint
	for _, p := range m.history[symbol] {
		if !p.Time.Before(since) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MemoryStore) UpsertQuote(_ context.Context, q Quote) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quotes[q.Symbol] = q
	return nil
}

func (m *MemoryStore) RecordPrice(_ context.Context, symbol string, price float64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history[symbol] = append(m.history[symbol], PricePoint{Time: at, Price: price})
	return nil
}

// Delete removes a quote and its history. Not part of the Database interface.
func (m *MemoryStore) Delete(symbol string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.quotes, symbol)
	delete(m.history, symbol)
}

func (m *MemoryStore) Close() error { return nil }
