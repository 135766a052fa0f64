package core

import (
	"github.com/shopspring/decimal"
)

// Material is an immutable entry of the material master.
type Material struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Unit         string          `json:"unit"`
	CostPerUnit  decimal.Decimal `json:"cost_per_unit"`
	LeadTimeDays int             `json:"lead_time_days"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
	SafetyStock  decimal.Decimal `json:"safety_stock"`
	SupplierID   string          `json:"supplier_id"`
}

// Supplier is a vendor of one material category.
type Supplier struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Rating         decimal.Decimal `json:"rating"`
	OnTimeDelivery decimal.Decimal `json:"on_time_delivery"`
	QualityScore   decimal.Decimal `json:"quality_score"`
	AvgLeadTime    int             `json:"avg_lead_time"`
	ContactEmail   string          `json:"contact_email"`
	ContactPhone   string          `json:"contact_phone"`
}

// InventoryRecord holds the stock position of a single material.
type InventoryRecord struct {
	MaterialID   string          `json:"material_id"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	Reserved     decimal.Decimal `json:"reserved"`
	InTransit    decimal.Decimal `json:"in_transit"`
	LastUpdated  string          `json:"last_updated"` // YYYY-MM-DD
}

// Available returns the unreserved part of the current stock.
func (r InventoryRecord) Available() decimal.Decimal {
	return r.CurrentStock.Sub(r.Reserved)
}

// StockStatus is derived from available stock and the material thresholds. It is never stored.
type StockStatus string

const (
	StockCritical StockStatus = "Critical"
	StockLow      StockStatus = "Low"
	StockGood     StockStatus = "Good"
)

// ClassifyStock applies the threshold rule: Critical at or below safety stock,
// Low at or below the reorder level, Good otherwise.
func ClassifyStock(available, safetyStock, reorderLevel decimal.Decimal) StockStatus {
	switch {
	case available.LessThanOrEqual(safetyStock):
		return StockCritical
	case available.LessThanOrEqual(reorderLevel):
		return StockLow
	default:
		return StockGood
	}
}

// MaterialSummary is a read view of a material joined with its inventory record.
type MaterialSummary struct {
	Material
	CurrentStock   decimal.Decimal `json:"current_stock"`
	Reserved       decimal.Decimal `json:"reserved"`
	Available      decimal.Decimal `json:"available"`
	InTransit      decimal.Decimal `json:"in_transit"`
	LastUpdated    string          `json:"last_updated,omitempty"`
	AvailableStock decimal.Decimal `json:"available_stock"` // = Available + InTransit
	Status         StockStatus     `json:"status"`
	HasInventory   bool            `json:"has_inventory"`
}

// summarizeMaterial joins m with inv (nil when the material has no inventory record).
func summarizeMaterial(m Material, inv *InventoryRecord) MaterialSummary {
	s := MaterialSummary{Material: m}
	if inv != nil {
		s.HasInventory = true
		s.CurrentStock = inv.CurrentStock
		s.Reserved = inv.Reserved
		s.Available = inv.Available()
		s.InTransit = inv.InTransit
		s.LastUpdated = inv.LastUpdated
	}
	s.AvailableStock = s.Available.Add(s.InTransit)
	s.Status = ClassifyStock(s.AvailableStock, m.SafetyStock, m.ReorderLevel)
	return s
}
