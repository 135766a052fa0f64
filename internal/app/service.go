package app

import (
	"context"

	"grid-supply/internal/core"

	"github.com/invopop/jsonschema"
)

// ApplicationService is the single interface all adapters (CLI, Web) call.
// It decouples presentation from business logic. Implementations must contain
// no fmt.Println, no ANSI codes, and no display logic of any kind.
type ApplicationService interface {
	// Health reports the store in use and whether the forecast model is reachable.
	Health(ctx context.Context) (*HealthResult, error)

	// GetDashboardStats returns the headline dashboard counters.
	GetDashboardStats(ctx context.Context) (*core.DashboardStats, error)

	// GetAnalytics returns the aggregate inventory, project, forecast and delivery metrics.
	GetAnalytics(ctx context.Context) (*core.AnalyticsReport, error)

	// ListMaterials returns every material joined with its stock position and status.
	ListMaterials(ctx context.Context) (*MaterialListResult, error)

	// ListShortfalls returns every material whose stock cannot cover safety stock plus open demand.
	ListShortfalls(ctx context.Context) (*ShortfallListResult, error)

	// GetMaterialShortfall returns the shortfall position of one material, zero when covered.
	GetMaterialShortfall(ctx context.Context, materialID string) (*ShortfallResult, error)

	// ListSuppliers returns all suppliers.
	ListSuppliers(ctx context.Context) (*SupplierListResult, error)

	// ListProjects returns all projects with their fulfillment percentage.
	ListProjects(ctx context.Context) (*ProjectListResult, error)

	// GetProject returns one project with its requirements joined to material names.
	// Returns core.ErrNotFound if the project does not exist.
	GetProject(ctx context.Context, id string) (*ProjectResult, error)

	// CreateProject stores a new project in Planning status.
	CreateProject(ctx context.Context, req CreateProjectRequest) (*ProjectResult, error)

	// UpdateProject merges the supplied fields into an existing project.
	UpdateProject(ctx context.Context, id string, req UpdateProjectRequest) (*ProjectResult, error)

	// GetProjectFulfillment returns allocated over required quantity for a project.
	// Unknown projects report 100.
	GetProjectFulfillment(ctx context.Context, id string) (*FulfillmentResult, error)

	// ListForecasts returns forecast entries matching the filter.
	ListForecasts(ctx context.Context, filter core.ForecastFilter) (*ForecastListResult, error)

	// GetForecastAccuracy returns the mean accuracy over realized forecast entries.
	GetForecastAccuracy(ctx context.Context) (*AccuracyResult, error)

	// GenerateForecast prices the material demand of a project and records it as forecast entries.
	GenerateForecast(ctx context.Context, req core.ForecastRequest) (*core.ForecastResult, error)

	// ForecastRequestSchema returns the JSON schema of the GenerateForecast input.
	ForecastRequestSchema() *jsonschema.Schema

	// RecordForecastActual sets the realized quantity of a forecast entry. It can only be set once.
	RecordForecastActual(ctx context.Context, entryID string, req RecordActualRequest) (*ForecastEntryResult, error)

	// ListProcurementOrders returns all procurement orders joined with material and supplier names.
	ListProcurementOrders(ctx context.Context) (*ProcurementOrderListResult, error)

	// CreateProcurementOrder places a new Pending order.
	CreateProcurementOrder(ctx context.Context, req CreateProcurementOrderRequest) (*ProcurementOrderResult, error)

	// AdvanceProcurementOrder moves an order forward through Pending, Approved, In Transit, Delivered.
	AdvanceProcurementOrder(ctx context.Context, id string, req AdvanceOrderRequest) (*ProcurementOrderResult, error)
}
