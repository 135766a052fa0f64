// Package memstore is an in-memory core.Store used when no database is configured and in tests.
package memstore

import (
	"context"
	"fmt"
	"sync"

	"grid-supply/internal/core"
)

// Store keeps every collection in slices guarded by a single RWMutex.
// Reads return deep copies so callers can never mutate stored state.
type Store struct {
	mu        sync.RWMutex
	materials []core.Material
	suppliers []core.Supplier
	inventory []core.InventoryRecord
	projects  []core.Project
	entries   []core.ForecastEntry
	orders    []core.ProcurementOrder
}

var _ core.Store = (*Store)(nil)

// New returns a store holding a copy of seed.
func New(seed core.Seed) *Store {
	s := &Store{
		materials: append([]core.Material{}, seed.Materials...),
		suppliers: append([]core.Supplier{}, seed.Suppliers...),
		inventory: append([]core.InventoryRecord{}, seed.Inventory...),
		projects:  make([]core.Project, 0, len(seed.Projects)),
		entries:   make([]core.ForecastEntry, 0, len(seed.ForecastEntries)),
		orders:    make([]core.ProcurementOrder, 0, len(seed.ProcurementOrders)),
	}
	for _, p := range seed.Projects {
		s.projects = append(s.projects, p.Clone())
	}
	for _, e := range seed.ForecastEntries {
		s.entries = append(s.entries, e.Clone())
	}
	for _, o := range seed.ProcurementOrders {
		s.orders = append(s.orders, o.Clone())
	}
	return s
}

// NewSeeded returns a store holding the standard reference data.
func NewSeeded() *Store {
	return New(core.SeedData())
}

func (s *Store) Materials(ctx context.Context) ([]core.Material, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Material{}, s.materials...), nil
}

func (s *Store) Material(ctx context.Context, id string) (*core.Material, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.materials {
		if m.ID == id {
			out := m
			return &out, nil
		}
	}
	return nil, nil
}

func (s *Store) Suppliers(ctx context.Context) ([]core.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Supplier{}, s.suppliers...), nil
}

func (s *Store) Supplier(ctx context.Context, id string) (*core.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sp := range s.suppliers {
		if sp.ID == id {
			out := sp
			return &out, nil
		}
	}
	return nil, nil
}

func (s *Store) InventoryRecords(ctx context.Context) ([]core.InventoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.InventoryRecord{}, s.inventory...), nil
}

func (s *Store) Projects(ctx context.Context) ([]core.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, p.Clone())
	}
	return out, nil
}

func (s *Store) Project(ctx context.Context, id string) (*core.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.projectIndex(id); i >= 0 {
		out := s.projects[i].Clone()
		return &out, nil
	}
	return nil, nil
}

func (s *Store) ForecastEntries(ctx context.Context) ([]core.ForecastEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.ForecastEntry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.Clone())
	}
	return out, nil
}

func (s *Store) ProcurementOrders(ctx context.Context) ([]core.ProcurementOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.ProcurementOrder, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o.Clone())
	}
	return out, nil
}

func (s *Store) CreateProject(ctx context.Context, p core.Project) (*core.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p = p.Clone()
	p.ID = core.SequenceID("PRJ", len(s.projects)+1)
	s.projects = append(s.projects, p)
	out := p.Clone()
	return &out, nil
}

func (s *Store) UpdateProject(ctx context.Context, id string, fn func(*core.Project) error) (*core.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.projectIndex(id)
	if i < 0 {
		return nil, fmt.Errorf("project %s: %w", id, core.ErrNotFound)
	}
	p := s.projects[i].Clone()
	if err := fn(&p); err != nil {
		return nil, err
	}
	p.ID = id
	s.projects[i] = p
	out := p.Clone()
	return &out, nil
}

func (s *Store) RecordForecastBatch(ctx context.Context, batch core.ForecastBatch) (*core.RecordedBatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := &core.RecordedBatch{
		ForecastID: batch.ForecastID,
		ProjectID:  batch.ProjectID,
		Entries:    make([]core.ForecastEntry, 0, len(batch.Lines)),
	}
	if rec.ForecastID == "" {
		rec.ForecastID = core.SequenceID("FC", len(s.entries)+1)
	}
	if rec.ProjectID == "" {
		rec.ProjectID = core.SequenceID("PRJ", len(s.projects)+1)
	}
	for i, l := range batch.Lines {
		e := core.ForecastEntry{
			ID:            core.ForecastEntryID(rec.ForecastID, i+1),
			ProjectID:     rec.ProjectID,
			MaterialID:    l.MaterialID,
			Month:         batch.Month,
			ForecastedQty: l.Quantity,
			Confidence:    batch.Confidence,
		}
		s.entries = append(s.entries, e)
		rec.Entries = append(rec.Entries, e.Clone())
	}
	return rec, nil
}

func (s *Store) UpdateForecastEntry(ctx context.Context, id string, fn func(*core.ForecastEntry) error) (*core.ForecastEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].ID != id {
			continue
		}
		e := s.entries[i].Clone()
		if err := fn(&e); err != nil {
			return nil, err
		}
		e.ID = id
		s.entries[i] = e
		out := e.Clone()
		return &out, nil
	}
	return nil, fmt.Errorf("forecast entry %s: %w", id, core.ErrNotFound)
}

func (s *Store) CreateProcurementOrder(ctx context.Context, o core.ProcurementOrder) (*core.ProcurementOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o = o.Clone()
	o.ID = core.SequenceID("PO", len(s.orders)+1)
	s.orders = append(s.orders, o)
	out := o.Clone()
	return &out, nil
}

func (s *Store) UpdateProcurementOrder(ctx context.Context, id string, fn func(*core.ProcurementOrder) error) (*core.ProcurementOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID != id {
			continue
		}
		o := s.orders[i].Clone()
		if err := fn(&o); err != nil {
			return nil, err
		}
		o.ID = id
		s.orders[i] = o
		out := o.Clone()
		return &out, nil
	}
	return nil, fmt.Errorf("procurement order %s: %w", id, core.ErrNotFound)
}

func (s *Store) projectIndex(id string) int {
	for i := range s.projects {
		if s.projects[i].ID == id {
			return i
		}
	}
	return -1
}
