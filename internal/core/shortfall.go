package core

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Shortfall is the gap between what a material needs (safety stock plus open forecast demand)
// and what is on hand or on the way.
type Shortfall struct {
	MaterialID       string          `json:"material_id"`
	MaterialName     string          `json:"material_name"`
	Unit             string          `json:"unit"`
	SafetyStock      decimal.Decimal `json:"safety_stock"`
	FutureDemand     decimal.Decimal `json:"future_demand"`
	TotalNeeded      decimal.Decimal `json:"total_needed"`
	TotalAvailable   decimal.Decimal `json:"total_available"`
	Shortfall        decimal.Decimal `json:"shortfall"`
	RecommendedOrder decimal.Decimal `json:"recommended_order"`
	EstimatedCost    decimal.Decimal `json:"estimated_cost"`
	SupplierID       string          `json:"supplier_id"`
	LeadTimeDays     int             `json:"lead_time_days"`
}

// CalculateShortfall computes the shortfall of one material. inv may be nil, in which case
// nothing is on hand. Only unrealized entries of the material count as future demand.
func CalculateShortfall(m Material, inv *InventoryRecord, entries []ForecastEntry, buffer decimal.Decimal) Shortfall {
	demand := decimal.Zero
	for _, e := range entries {
		if e.MaterialID == m.ID && !e.Realized() {
			demand = demand.Add(e.ForecastedQty)
		}
	}
	available := decimal.Zero
	if inv != nil {
		available = inv.CurrentStock.Add(inv.InTransit)
	}
	needed := m.SafetyStock.Add(demand)

	gap := needed.Sub(available)
	if !gap.IsPositive() {
		gap = decimal.Zero
	}
	order := gap.Mul(buffer).Ceil()

	return Shortfall{
		MaterialID:       m.ID,
		MaterialName:     m.Name,
		Unit:             m.Unit,
		SafetyStock:      m.SafetyStock,
		FutureDemand:     demand,
		TotalNeeded:      needed,
		TotalAvailable:   available,
		Shortfall:        gap,
		RecommendedOrder: order,
		EstimatedCost:    order.Mul(m.CostPerUnit),
		SupplierID:       m.SupplierID,
		LeadTimeDays:     m.LeadTimeDays,
	}
}

// ShortfallService lists materials that will run short of their safety stock.
type ShortfallService interface {
	// Shortfalls returns every material with a positive shortfall, in material order.
	Shortfalls(ctx context.Context) ([]Shortfall, error)
	// MaterialShortfall computes the shortfall of a single material. Returns ErrNotFound if unknown.
	MaterialShortfall(ctx context.Context, materialID string) (*Shortfall, error)
}

type shortfallService struct {
	store  Store
	buffer decimal.Decimal
}

func NewShortfallService(store Store, policy Policy) ShortfallService {
	return &shortfallService{store: store, buffer: policy.ShortfallBuffer}
}

func (s *shortfallService) Shortfalls(ctx context.Context) ([]Shortfall, error) {
	materials, inventory, entries, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := []Shortfall{}
	for _, m := range materials {
		sf := CalculateShortfall(m, inventory[m.ID], entries, s.buffer)
		if sf.Shortfall.IsPositive() {
			out = append(out, sf)
		}
	}
	return out, nil
}

func (s *shortfallService) MaterialShortfall(ctx context.Context, materialID string) (*Shortfall, error) {
	m, err := s.store.Material(ctx, materialID)
	if err != nil {
		return nil, fmt.Errorf("failed to load material %s: %w", materialID, err)
	}
	if m == nil {
		return nil, fmt.Errorf("material %s: %w", materialID, ErrNotFound)
	}
	_, inventory, entries, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	sf := CalculateShortfall(*m, inventory[m.ID], entries, s.buffer)
	return &sf, nil
}

func (s *shortfallService) load(ctx context.Context) ([]Material, map[string]*InventoryRecord, []ForecastEntry, error) {
	materials, err := s.store.Materials(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load materials: %w", err)
	}
	records, err := s.store.InventoryRecords(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load inventory: %w", err)
	}
	entries, err := s.store.ForecastEntries(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load forecast entries: %w", err)
	}
	inventory := make(map[string]*InventoryRecord, len(records))
	for i := range records {
		inventory[records[i].MaterialID] = &records[i]
	}
	return materials, inventory, entries, nil
}
