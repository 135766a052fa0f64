package app

import (
	"grid-supply/internal/core"

	"github.com/shopspring/decimal"
)

// CreateProjectRequest is the input for creating a new project.
type CreateProjectRequest struct {
	Name                 string                     `json:"name"`
	Region               string                     `json:"region"`
	Location             string                     `json:"location"`
	Budget               decimal.Decimal            `json:"budget"`
	Priority             string                     `json:"priority"`
	ProjectType          core.ProjectType           `json:"project_type"`
	TowerType            string                     `json:"tower_type"`
	SubstationType       string                     `json:"substation_type"`
	LineLength           decimal.Decimal            `json:"line_length"`
	StartDate            string                     `json:"start_date"`
	EndDate              string                     `json:"end_date"`
	MaterialRequirements []core.MaterialRequirement `json:"material_requirements"`
}

// UpdateProjectRequest carries a partial project update. Absent fields are left untouched.
type UpdateProjectRequest struct {
	Name                 *string                    `json:"name"`
	Region               *string                    `json:"region"`
	Location             *string                    `json:"location"`
	Budget               *decimal.Decimal           `json:"budget"`
	Status               *string                    `json:"status"`
	Completion           *decimal.Decimal           `json:"completion"`
	Priority             *string                    `json:"priority"`
	LineLength           *decimal.Decimal           `json:"line_length"`
	StartDate            *string                    `json:"start_date"`
	EndDate              *string                    `json:"end_date"`
	MaterialRequirements []core.MaterialRequirement `json:"material_requirements"`
}

// RecordActualRequest is the realized quantity of a forecast entry.
type RecordActualRequest struct {
	ActualQty decimal.Decimal `json:"actual_qty"`
}

// CreateProcurementOrderRequest is the input for placing a procurement order.
type CreateProcurementOrderRequest struct {
	MaterialID    string           `json:"material_id"`
	SupplierID    string           `json:"supplier_id"`
	Quantity      decimal.Decimal  `json:"quantity"`
	UnitCost      *decimal.Decimal `json:"unit_cost"` // nil means "use material cost"
	ExpectedDate  string           `json:"expected_date"`
	ProjectID     string           `json:"project_id"`
	TriggerReason string           `json:"trigger_reason"`
}

// AdvanceOrderRequest names the status an order moves to.
type AdvanceOrderRequest struct {
	Status string `json:"status"`
}
