package core

import (
	"github.com/shopspring/decimal"
)

// ForecastEntry is one forecasted material quantity for a project and month.
// ActualQty stays nil until the demand is realized and is set at most once.
type ForecastEntry struct {
	ID            string           `json:"id"`
	ProjectID     string           `json:"project_id"`
	MaterialID    string           `json:"material_id"`
	Month         string           `json:"month"` // YYYY-MM
	ForecastedQty decimal.Decimal  `json:"forecasted_qty"`
	ActualQty     *decimal.Decimal `json:"actual_qty"`
	Confidence    decimal.Decimal  `json:"confidence"`
	Accuracy      *decimal.Decimal `json:"accuracy"`
}

// Realized reports whether an actual quantity has been recorded.
func (e ForecastEntry) Realized() bool {
	return e.ActualQty != nil
}

// Clone returns a copy of e that shares no pointers with it.
func (e ForecastEntry) Clone() ForecastEntry {
	out := e
	if e.ActualQty != nil {
		v := *e.ActualQty
		out.ActualQty = &v
	}
	if e.Accuracy != nil {
		v := *e.Accuracy
		out.Accuracy = &v
	}
	return out
}

// ForecastFilter narrows ForecastEntry listings. Empty fields match everything.
type ForecastFilter struct {
	ProjectID  string
	MaterialID string
	Month      string
}

func (f ForecastFilter) matches(e ForecastEntry) bool {
	if f.ProjectID != "" && e.ProjectID != f.ProjectID {
		return false
	}
	if f.MaterialID != "" && e.MaterialID != f.MaterialID {
		return false
	}
	if f.Month != "" && e.Month != f.Month {
		return false
	}
	return true
}

// ForecastEntryView is a forecast entry joined with material and project names.
type ForecastEntryView struct {
	ForecastEntry
	MaterialName string `json:"material_name,omitempty"`
	ProjectName  string `json:"project_name,omitempty"`
}

// ForecastRequest describes a project for which material demand should be forecast.
// Budget is expressed in crores; LineLength in kilometres.
type ForecastRequest struct {
	ProjectID           string           `json:"project_id,omitempty" jsonschema:"description=Existing project ID; a new PRJ ID is allocated when empty"`
	ProjectName         string           `json:"project_name,omitempty" jsonschema:"description=Defaults to Untitled project"`
	Region              string           `json:"region,omitempty"`
	Location            string           `json:"location,omitempty"`
	ProjectType         ProjectType      `json:"project_type" jsonschema:"required,enum=Tower,enum=Substation,enum=Both"`
	ProjectCategory     string           `json:"project_category,omitempty"`
	TowerType           string           `json:"tower_type,omitempty"`
	SubstationType      string           `json:"substation_type,omitempty"`
	Budget              *decimal.Decimal `json:"budget,omitempty" jsonschema:"type=number,description=Budget in crores"`
	LineLength          *decimal.Decimal `json:"line_length,omitempty" jsonschema:"type=number,description=Transmission line length in km"`
	Terrain             string           `json:"terrain,omitempty"`
	DistanceFromStorage *decimal.Decimal `json:"distance_from_storage,omitempty" jsonschema:"type=number,description=Distance from storage unit in km"`
	StartDate           string           `json:"start_date,omitempty"`
	EndDate             string           `json:"end_date,omitempty"`
}

// ForecastLine is one priced material line of a forecast.
type ForecastLine struct {
	MaterialID string          `json:"material_id"`
	Name       string          `json:"name"`
	Quantity   decimal.Decimal `json:"quantity"`
	Unit       string          `json:"unit"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	TotalCost  decimal.Decimal `json:"total_cost"`
}

// Forecast is a priced bill of materials for a project.
type Forecast struct {
	ForecastID  string          `json:"forecast_id"`
	ProjectID   string          `json:"project_id"`
	ProjectName string          `json:"project_name"`
	Materials   []ForecastLine  `json:"materials"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Taxes       decimal.Decimal `json:"taxes"`
	Total       decimal.Decimal `json:"total"`
	Confidence  decimal.Decimal `json:"confidence"`
	GeneratedAt string          `json:"generated_at"`
}

// ForecastSource tells whether a forecast came from the prediction service or the local heuristic.
type ForecastSource string

const (
	SourceRemote    ForecastSource = "remote"
	SourceHeuristic ForecastSource = "heuristic"
)

// ForecastResult is the outcome of GenerateForecast.
type ForecastResult struct {
	Source          ForecastSource  `json:"source"`
	Forecast        Forecast        `json:"forecast"`
	RecordedEntries []ForecastEntry `json:"recorded_entries"`
}

// ForecastBatch is a set of forecast lines to append to the history in one step.
// Empty ForecastID or ProjectID are allocated by the store.
type ForecastBatch struct {
	ForecastID string
	ProjectID  string
	Month      string
	Confidence decimal.Decimal
	Lines      []BatchLine
}

// BatchLine is a material quantity inside a ForecastBatch.
type BatchLine struct {
	MaterialID string
	Quantity   decimal.Decimal
}

// RecordedBatch reports the identifiers assigned when a ForecastBatch was stored.
type RecordedBatch struct {
	ForecastID string
	ProjectID  string
	Entries    []ForecastEntry
}
