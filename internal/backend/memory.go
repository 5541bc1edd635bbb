package backend

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"haven-data/internal/domain"
)

// Memory is a map-backed Client for local development and tests.
// It reproduces the two pieces of store-side behavior the mutations rely
// on: generated primary keys and the houses->beds ON DELETE CASCADE.
type Memory struct {
	mu    sync.RWMutex
	rows  map[string]map[string]domain.Row
	order map[string][]string
}

func NewMemory() *Memory {
	return &Memory{
		rows:  map[string]map[string]domain.Row{},
		order: map[string][]string{},
	}
}

func (m *Memory) Select(_ context.Context, collection string, filter Filter) ([]domain.Row, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []domain.Row{}
	for _, id := range m.order[collection] {
		row := m.rows[collection][id]
		if matches(row, filter) {
			out = append(out, cloneRow(row))
		}
	}
	return out, nil
}

func (m *Memory) Insert(_ context.Context, collection string, rows []domain.Row) ([]domain.Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.rows[collection] == nil {
		m.rows[collection] = map[string]domain.Row{}
	}

	idCol := IDColumn(collection)
	out := make([]domain.Row, 0, len(rows))
	for _, r := range rows {
		row := cloneRow(r)
		id, _ := row[idCol].(string)
		if id == "" {
			id = uuid.NewString()
			row[idCol] = id
		}
		if _, exists := m.rows[collection][id]; exists {
			return nil, fmt.Errorf("duplicate key in %s: %s", collection, id)
		}
		m.rows[collection][id] = row
		m.order[collection] = append(m.order[collection], id)
		out = append(out, cloneRow(row))
	}
	return out, nil
}

func (m *Memory) Update(_ context.Context, collection string, filter Filter, fields domain.Row) ([]domain.Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []domain.Row{}
	for _, id := range m.order[collection] {
		row := m.rows[collection][id]
		if !matches(row, filter) {
			continue
		}
		for k, v := range fields {
			row[k] = v
		}
		out = append(out, cloneRow(row))
	}
	return out, nil
}

func (m *Memory) Delete(_ context.Context, collection string, filter Filter) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := m.deleteLocked(collection, filter)

	// Emulate the schema's ON DELETE CASCADE from houses to beds.
	if collection == Houses {
		for _, houseID := range removed {
			m.deleteLocked(Beds, Filter{"house_id": houseID})
		}
	}
	return nil
}

func (m *Memory) deleteLocked(collection string, filter Filter) []string {
	var removed []string
	kept := m.order[collection][:0]
	for _, id := range m.order[collection] {
		if matches(m.rows[collection][id], filter) {
			delete(m.rows[collection], id)
			removed = append(removed, id)
		} else {
			kept = append(kept, id)
		}
	}
	m.order[collection] = kept
	return removed
}

func matches(row domain.Row, filter Filter) bool {
	for k, want := range filter {
		got := row[k]
		if want == nil {
			if got != nil {
				return false
			}
			continue
		}
		if got == nil {
			return false
		}
		if fmt.Sprintf("%v", got) != fmt.Sprintf("%v", want) {
			return false
		}
	}
	return true
}

func cloneRow(r domain.Row) domain.Row {
	out := make(domain.Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
