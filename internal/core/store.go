package core

import (
	"context"
	"fmt"
)

// Store is the reference data repository behind every service.
//
// Read methods return copies in a stable order (by ID, append order for forecasts and orders).
// Single-record reads return (nil, nil) when the record does not exist.
// Mutations allocate IDs and append atomically: concurrent creates never reuse a sequence number.
type Store interface {
	Materials(ctx context.Context) ([]Material, error)
	Material(ctx context.Context, id string) (*Material, error)
	Suppliers(ctx context.Context) ([]Supplier, error)
	Supplier(ctx context.Context, id string) (*Supplier, error)
	InventoryRecords(ctx context.Context) ([]InventoryRecord, error)
	Projects(ctx context.Context) ([]Project, error)
	Project(ctx context.Context, id string) (*Project, error)
	ForecastEntries(ctx context.Context) ([]ForecastEntry, error)
	ProcurementOrders(ctx context.Context) ([]ProcurementOrder, error)

	// CreateProject assigns the next PRJ ID to p and stores it.
	CreateProject(ctx context.Context, p Project) (*Project, error)
	// UpdateProject loads the project, applies fn and saves the result. Returns ErrNotFound if missing.
	UpdateProject(ctx context.Context, id string, fn func(*Project) error) (*Project, error)

	// RecordForecastBatch appends one entry per line, allocating FC and PRJ IDs when empty.
	RecordForecastBatch(ctx context.Context, batch ForecastBatch) (*RecordedBatch, error)
	// UpdateForecastEntry loads the entry, applies fn and saves the result. Returns ErrNotFound if missing.
	UpdateForecastEntry(ctx context.Context, id string, fn func(*ForecastEntry) error) (*ForecastEntry, error)

	// CreateProcurementOrder assigns the next PO ID to o and stores it.
	CreateProcurementOrder(ctx context.Context, o ProcurementOrder) (*ProcurementOrder, error)
	// UpdateProcurementOrder loads the order, applies fn and saves the result. Returns ErrNotFound if missing.
	UpdateProcurementOrder(ctx context.Context, id string, fn func(*ProcurementOrder) error) (*ProcurementOrder, error)
}

// SequenceID formats a prefixed, zero-padded sequence number (PRJ005, FC009, PO006).
func SequenceID(prefix string, n int) string {
	return fmt.Sprintf("%s%03d", prefix, n)
}

// ForecastEntryID names the n-th (1-based) entry of a recorded forecast.
func ForecastEntryID(forecastID string, n int) string {
	return fmt.Sprintf("%s-%d", forecastID, n)
}

// Seed is the full set of collections a store starts from.
type Seed struct {
	Materials         []Material
	Suppliers         []Supplier
	Inventory         []InventoryRecord
	Projects          []Project
	ForecastEntries   []ForecastEntry
	ProcurementOrders []ProcurementOrder
}
