package app

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"grid-supply/internal/core"

	"github.com/invopop/jsonschema"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ModelStatus is implemented by predictors that can report whether their model is loaded.
type ModelStatus interface {
	ModelReady(ctx context.Context) (bool, error)
}

type appService struct {
	store       core.Store
	storeName   string
	model       ModelStatus
	derivation  core.DerivationService
	shortfalls  core.ShortfallService
	forecasts   core.ForecastService
	projects    core.ProjectService
	procurement core.ProcurementService
	schema      *jsonschema.Schema
}

// NewAppService wires the core services over store. predictor may be nil, in which case every
// forecast uses the heuristic. now may be nil for wall-clock time.
func NewAppService(
	store core.Store,
	storeName string,
	predictor core.Predictor,
	policy core.Policy,
	logger *zap.Logger,
	now func() time.Time,
) ApplicationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	model, _ := predictor.(ModelStatus)
	return &appService{
		store:       store,
		storeName:   storeName,
		model:       model,
		derivation:  core.NewDerivationService(store, policy, now),
		shortfalls:  core.NewShortfallService(store, policy),
		forecasts:   core.NewForecastService(store, predictor, policy, logger.Named("forecast"), now),
		projects:    core.NewProjectService(store, logger.Named("projects")),
		procurement: core.NewProcurementService(store, logger.Named("procurement"), now),
		schema:      forecastRequestSchema(),
	}
}

func forecastRequestSchema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		DoNotReference: true,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t == reflect.TypeOf(decimal.Decimal{}) {
				return &jsonschema.Schema{Type: "number"}
			}
			return nil
		},
	}
	return r.Reflect(&core.ForecastRequest{})
}

// Health reports the store in use and the forecast model state. It never fails on model errors.
func (s *appService) Health(ctx context.Context) (*HealthResult, error) {
	res := &HealthResult{Status: "ok", Store: s.storeName, ForecastModel: "disabled"}
	if s.model == nil {
		return res, nil
	}
	ready, err := s.model.ModelReady(ctx)
	switch {
	case err != nil:
		res.ForecastModel = "unreachable"
	case ready:
		res.ForecastModel = "ready"
	default:
		res.ForecastModel = "not_ready"
	}
	return res, nil
}

func (s *appService) GetDashboardStats(ctx context.Context) (*core.DashboardStats, error) {
	return s.derivation.DashboardStats(ctx)
}

func (s *appService) GetAnalytics(ctx context.Context) (*core.AnalyticsReport, error) {
	return s.derivation.AnalyticsReport(ctx)
}

func (s *appService) ListMaterials(ctx context.Context) (*MaterialListResult, error) {
	materials, err := s.derivation.MaterialsSummary(ctx)
	if err != nil {
		return nil, err
	}
	return &MaterialListResult{Materials: materials}, nil
}

// ListShortfalls also totals the estimated cost of every recommended order.
func (s *appService) ListShortfalls(ctx context.Context) (*ShortfallListResult, error) {
	shortfalls, err := s.shortfalls.Shortfalls(ctx)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	for _, sf := range shortfalls {
		total = total.Add(sf.EstimatedCost)
	}
	return &ShortfallListResult{Shortfalls: shortfalls, TotalEstimatedCost: total}, nil
}

func (s *appService) GetMaterialShortfall(ctx context.Context, materialID string) (*ShortfallResult, error) {
	sf, err := s.shortfalls.MaterialShortfall(ctx, materialID)
	if err != nil {
		return nil, err
	}
	return &ShortfallResult{Shortfall: sf}, nil
}

func (s *appService) ListSuppliers(ctx context.Context) (*SupplierListResult, error) {
	suppliers, err := s.derivation.Suppliers(ctx)
	if err != nil {
		return nil, err
	}
	return &SupplierListResult{Suppliers: suppliers}, nil
}

func (s *appService) ListProjects(ctx context.Context) (*ProjectListResult, error) {
	projects, err := s.derivation.ProjectsSummary(ctx)
	if err != nil {
		return nil, err
	}
	return &ProjectListResult{Projects: projects}, nil
}

func (s *appService) GetProject(ctx context.Context, id string) (*ProjectResult, error) {
	detail, err := s.derivation.ProjectDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, fmt.Errorf("project %s: %w", id, core.ErrNotFound)
	}
	return &ProjectResult{Project: detail}, nil
}

func (s *appService) CreateProject(ctx context.Context, req CreateProjectRequest) (*ProjectResult, error) {
	p, err := s.projects.CreateProject(ctx, core.ProjectInput{
		Name:                 req.Name,
		Region:               req.Region,
		Location:             req.Location,
		Budget:               req.Budget,
		Priority:             req.Priority,
		ProjectType:          req.ProjectType,
		TowerType:            req.TowerType,
		SubstationType:       req.SubstationType,
		LineLength:           req.LineLength,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		MaterialRequirements: req.MaterialRequirements,
	})
	if err != nil {
		return nil, err
	}
	return s.GetProject(ctx, p.ID)
}

func (s *appService) UpdateProject(ctx context.Context, id string, req UpdateProjectRequest) (*ProjectResult, error) {
	p, err := s.projects.UpdateProject(ctx, id, core.ProjectPatch{
		Name:                 req.Name,
		Region:               req.Region,
		Location:             req.Location,
		Budget:               req.Budget,
		Status:               req.Status,
		Completion:           req.Completion,
		Priority:             req.Priority,
		LineLength:           req.LineLength,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		MaterialRequirements: req.MaterialRequirements,
	})
	if err != nil {
		return nil, err
	}
	return s.GetProject(ctx, p.ID)
}

func (s *appService) GetProjectFulfillment(ctx context.Context, id string) (*FulfillmentResult, error) {
	f, err := s.derivation.ProjectFulfillment(ctx, id)
	if err != nil {
		return nil, err
	}
	return &FulfillmentResult{ProjectID: id, Fulfillment: f}, nil
}

func (s *appService) ListForecasts(ctx context.Context, filter core.ForecastFilter) (*ForecastListResult, error) {
	entries, err := s.derivation.Forecasts(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ForecastListResult{Entries: entries}, nil
}

func (s *appService) GetForecastAccuracy(ctx context.Context) (*AccuracyResult, error) {
	accuracy, err := s.derivation.ForecastAccuracy(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := s.store.ForecastEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load forecast entries: %w", err)
	}
	realized := 0
	for _, e := range entries {
		if e.Realized() {
			realized++
		}
	}
	return &AccuracyResult{Accuracy: accuracy, Realized: realized, Total: len(entries)}, nil
}

func (s *appService) GenerateForecast(ctx context.Context, req core.ForecastRequest) (*core.ForecastResult, error) {
	return s.forecasts.GenerateForecast(ctx, req)
}

func (s *appService) ForecastRequestSchema() *jsonschema.Schema {
	return s.schema
}

func (s *appService) RecordForecastActual(ctx context.Context, entryID string, req RecordActualRequest) (*ForecastEntryResult, error) {
	e, err := s.forecasts.RecordForecastActual(ctx, entryID, req.ActualQty)
	if err != nil {
		return nil, err
	}
	return &ForecastEntryResult{Entry: e}, nil
}

func (s *appService) ListProcurementOrders(ctx context.Context) (*ProcurementOrderListResult, error) {
	orders, err := s.derivation.ProcurementOrders(ctx)
	if err != nil {
		return nil, err
	}
	return &ProcurementOrderListResult{Orders: orders}, nil
}

func (s *appService) CreateProcurementOrder(ctx context.Context, req CreateProcurementOrderRequest) (*ProcurementOrderResult, error) {
	o, err := s.procurement.CreateOrder(ctx, core.ProcurementOrderInput{
		MaterialID:    req.MaterialID,
		SupplierID:    req.SupplierID,
		Quantity:      req.Quantity,
		UnitCost:      req.UnitCost,
		ExpectedDate:  req.ExpectedDate,
		ProjectID:     req.ProjectID,
		TriggerReason: req.TriggerReason,
	})
	if err != nil {
		return nil, err
	}
	return &ProcurementOrderResult{Order: o}, nil
}

func (s *appService) AdvanceProcurementOrder(ctx context.Context, id string, req AdvanceOrderRequest) (*ProcurementOrderResult, error) {
	o, err := s.procurement.AdvanceOrder(ctx, id, req.Status)
	if err != nil {
		return nil, err
	}
	return &ProcurementOrderResult{Order: o}, nil
}
