package app

import (
	"grid-supply/internal/core"

	"github.com/shopspring/decimal"
)

// HealthResult is returned by Health.
type HealthResult struct {
	Status        string `json:"status"`
	Store         string `json:"store"`
	ForecastModel string `json:"forecast_model"` // ready, not_ready, unreachable or disabled
}

// MaterialListResult is returned by ListMaterials.
type MaterialListResult struct {
	Materials []core.MaterialSummary `json:"materials"`
}

// ShortfallListResult is returned by ListShortfalls.
type ShortfallListResult struct {
	Shortfalls         []core.Shortfall `json:"shortfalls"`
	TotalEstimatedCost decimal.Decimal  `json:"total_estimated_cost"`
}

// ShortfallResult is returned by GetMaterialShortfall.
type ShortfallResult struct {
	Shortfall *core.Shortfall `json:"shortfall"`
}

// SupplierListResult is returned by ListSuppliers.
type SupplierListResult struct {
	Suppliers []core.Supplier `json:"suppliers"`
}

// ProjectListResult is returned by ListProjects.
type ProjectListResult struct {
	Projects []core.ProjectSummary `json:"projects"`
}

// ProjectResult is returned by single-project operations.
type ProjectResult struct {
	Project *core.ProjectDetail `json:"project"`
}

// FulfillmentResult is returned by GetProjectFulfillment.
type FulfillmentResult struct {
	ProjectID   string          `json:"project_id"`
	Fulfillment decimal.Decimal `json:"fulfillment"`
}

// ForecastListResult is returned by ListForecasts.
type ForecastListResult struct {
	Entries []core.ForecastEntryView `json:"entries"`
}

// AccuracyResult is returned by GetForecastAccuracy.
type AccuracyResult struct {
	Accuracy decimal.Decimal `json:"accuracy"`
	Realized int             `json:"realized"`
	Total    int             `json:"total"`
}

// ForecastEntryResult is returned by RecordForecastActual.
type ForecastEntryResult struct {
	Entry *core.ForecastEntry `json:"entry"`
}

// ProcurementOrderListResult is returned by ListProcurementOrders.
type ProcurementOrderListResult struct {
	Orders []core.ProcurementOrderView `json:"orders"`
}

// ProcurementOrderResult is returned by procurement order operations.
type ProcurementOrderResult struct {
	Order *core.ProcurementOrder `json:"order"`
}
