package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"grid-supply/internal/app"
	"grid-supply/internal/core"
	"grid-supply/internal/memstore"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2025, 11, 28, 10, 0, 0, 0, time.UTC)
}

type statusPredictor struct {
	ready bool
	err   error
}

func (p statusPredictor) Predict(ctx context.Context, req core.PredictionRequest) (*core.Prediction, error) {
	return nil, errors.New("model offline")
}

func (p statusPredictor) ModelReady(ctx context.Context) (bool, error) {
	return p.ready, p.err
}

func newApp(t *testing.T, predictor core.Predictor) app.ApplicationService {
	t.Helper()
	return app.NewAppService(memstore.NewSeeded(), "memory", predictor, core.DefaultPolicy(), nil, fixedNow)
}

func TestHealth(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name      string
		predictor core.Predictor
		want      string
	}{
		{"no predictor", nil, "disabled"},
		{"ready", statusPredictor{ready: true}, "ready"},
		{"loading", statusPredictor{ready: false}, "not_ready"},
		{"down", statusPredictor{err: errors.New("refused")}, "unreachable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := newApp(t, tt.predictor).Health(ctx)
			require.NoError(t, err)
			assert.Equal(t, "ok", h.Status)
			assert.Equal(t, "memory", h.Store)
			assert.Equal(t, tt.want, h.ForecastModel)
		})
	}
}

func TestGetProject_NotFound(t *testing.T) {
	_, err := newApp(t, nil).GetProject(context.Background(), "PRJ404")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestCreateAndUpdateProject(t *testing.T) {
	ctx := context.Background()
	svc := newApp(t, nil)

	created, err := svc.CreateProject(ctx, app.CreateProjectRequest{
		Name:        "Raipur Substation",
		Region:      "Central",
		Location:    "Chhattisgarh",
		Budget:      decimal.NewFromInt(900000000),
		Priority:    "High",
		ProjectType: core.ProjectTypeSubstation,
		StartDate:   "2026-01-01",
		EndDate:     "2026-12-31",
		MaterialRequirements: []core.MaterialRequirement{
			{MaterialID: "MAT008", Quantity: decimal.NewFromInt(8), Allocated: decimal.NewFromInt(2), Pending: decimal.NewFromInt(6)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "PRJ005", created.Project.ID)
	assert.Equal(t, core.ProjectPlanning, created.Project.Status)
	assert.Equal(t, "25", created.Project.Fulfillment.String())
	require.Len(t, created.Project.Materials, 1)
	assert.NotEmpty(t, created.Project.Materials[0].MaterialName)

	status := core.ProjectInProgress
	completion := decimal.NewFromInt(10)
	updated, err := svc.UpdateProject(ctx, "PRJ005", app.UpdateProjectRequest{Status: &status, Completion: &completion})
	require.NoError(t, err)
	assert.Equal(t, core.ProjectInProgress, updated.Project.Status)
	assert.True(t, completion.Equal(updated.Project.Completion))
	assert.Equal(t, "Raipur Substation", updated.Project.Name)
}

func TestListShortfalls_Totals(t *testing.T) {
	ctx := context.Background()
	svc := newApp(t, nil)

	res, err := svc.ListShortfalls(ctx)
	require.NoError(t, err)
	assert.Empty(t, res.Shortfalls)
	assert.True(t, res.TotalEstimatedCost.IsZero())

	_, err = svc.GenerateForecast(ctx, core.ForecastRequest{ProjectName: "Tower Line", ProjectType: core.ProjectTypeTower})
	require.NoError(t, err)

	res, err = svc.ListShortfalls(ctx)
	require.NoError(t, err)
	require.Len(t, res.Shortfalls, 4)

	sum := decimal.Zero
	for _, sf := range res.Shortfalls {
		assert.True(t, sf.Shortfall.IsPositive())
		sum = sum.Add(sf.EstimatedCost)
	}
	assert.True(t, sum.Equal(res.TotalEstimatedCost))
}

func TestGetMaterialShortfall(t *testing.T) {
	ctx := context.Background()
	svc := newApp(t, nil)

	res, err := svc.GetMaterialShortfall(ctx, "MAT001")
	require.NoError(t, err)
	assert.True(t, res.Shortfall.Shortfall.IsZero())
	assert.Equal(t, "58", res.Shortfall.TotalNeeded.String())
	assert.Equal(t, "75", res.Shortfall.TotalAvailable.String())

	length := decimal.NewFromInt(100)
	_, err = svc.GenerateForecast(ctx, core.ForecastRequest{ProjectName: "Tower Line", ProjectType: core.ProjectTypeTower, LineLength: &length})
	require.NoError(t, err)

	res, err = svc.GetMaterialShortfall(ctx, "MAT001")
	require.NoError(t, err)
	assert.Equal(t, "83", res.Shortfall.Shortfall.String())
	assert.Equal(t, "92", res.Shortfall.RecommendedOrder.String())

	_, err = svc.GetMaterialShortfall(ctx, "MAT404")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestGenerateForecast_FallsBackAndRecords(t *testing.T) {
	ctx := context.Background()
	svc := newApp(t, statusPredictor{ready: true})

	res, err := svc.GenerateForecast(ctx, core.ForecastRequest{
		ProjectName: "Tower Line",
		ProjectType: core.ProjectTypeTower,
	})
	require.NoError(t, err)
	assert.Equal(t, core.SourceHeuristic, res.Source)
	assert.Equal(t, "FC009", res.Forecast.ForecastID)

	list, err := svc.ListForecasts(ctx, core.ForecastFilter{ProjectID: res.Forecast.ProjectID})
	require.NoError(t, err)
	assert.Len(t, list.Entries, 4)

	acc, err := svc.GetForecastAccuracy(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12, acc.Total)
	assert.Equal(t, "95.7", acc.Accuracy.String())
}

func TestRecordForecastActual_Once(t *testing.T) {
	ctx := context.Background()
	svc := newApp(t, nil)

	res, err := svc.RecordForecastActual(ctx, "FC007", app.RecordActualRequest{ActualQty: decimal.NewFromInt(25)})
	require.NoError(t, err)
	require.NotNil(t, res.Entry.Accuracy)
	assert.Equal(t, "88", res.Entry.Accuracy.String())

	_, err = svc.RecordForecastActual(ctx, "FC007", app.RecordActualRequest{ActualQty: decimal.NewFromInt(30)})
	assert.ErrorIs(t, err, core.ErrActualAlreadyRecorded)
}

func TestProcurementOrderLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newApp(t, nil)

	created, err := svc.CreateProcurementOrder(ctx, app.CreateProcurementOrderRequest{
		MaterialID: "MAT012",
		SupplierID: "SUP006",
		Quantity:   decimal.NewFromInt(2800),
	})
	require.NoError(t, err)
	assert.Equal(t, "PO006", created.Order.ID)
	assert.Equal(t, core.OrderPending, created.Order.Status)

	advanced, err := svc.AdvanceProcurementOrder(ctx, "PO006", app.AdvanceOrderRequest{Status: core.OrderApproved})
	require.NoError(t, err)
	assert.Equal(t, core.OrderApproved, advanced.Order.Status)

	_, err = svc.AdvanceProcurementOrder(ctx, "PO006", app.AdvanceOrderRequest{Status: core.OrderPending})
	assert.ErrorIs(t, err, core.ErrInvalidTransition)

	list, err := svc.ListProcurementOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, list.Orders, 6)
}

func TestForecastRequestSchema(t *testing.T) {
	schema := newApp(t, nil).ForecastRequestSchema()
	require.NotNil(t, schema)
	assert.Contains(t, schema.Required, "project_type")
	assert.NotContains(t, schema.Required, "project_name")

	budget, ok := schema.Properties.Get("budget")
	require.True(t, ok)
	assert.Equal(t, "number", budget.Type)
}
