package core_test

import (
	"context"
	"errors"
	"testing"

	"grid-supply/internal/core"
	"grid-supply/internal/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPredictor returns a canned prediction or error and records the last request.
type stubPredictor struct {
	prediction *core.Prediction
	err        error
	calls      int
	last       core.PredictionRequest
}

func (p *stubPredictor) Predict(ctx context.Context, req core.PredictionRequest) (*core.Prediction, error) {
	p.calls++
	p.last = req
	return p.prediction, p.err
}

func TestHeuristicLines(t *testing.T) {
	tests := []struct {
		name        string
		projectType core.ProjectType
		length      string
		ids         []string
		quantities  []string
	}{
		{
			name:        "tower",
			projectType: core.ProjectTypeTower,
			length:      "100",
			ids:         []string{"MAT001", "MAT004", "MAT006", "MAT012"},
			quantities:  []string{"100", "300000", "3000", "6000"},
		},
		{
			name:        "substation",
			projectType: core.ProjectTypeSubstation,
			length:      "100",
			ids:         []string{"MAT008", "MAT010", "MAT006"},
			quantities:  []string{"8", "4", "500"},
		},
		{
			name:        "both concatenates without merging",
			projectType: core.ProjectTypeBoth,
			length:      "100",
			ids:         []string{"MAT001", "MAT004", "MAT006", "MAT012", "MAT008", "MAT010", "MAT006"},
			quantities:  []string{"100", "300000", "3000", "6000", "8", "4", "500"},
		},
		{
			name:        "missing length uses default",
			projectType: core.ProjectTypeTower,
			length:      "0",
			ids:         []string{"MAT001", "MAT004", "MAT006", "MAT012"},
			quantities:  []string{"100", "300000", "3000", "6000"},
		},
		{
			name:        "fractional length rounds up",
			projectType: core.ProjectTypeTower,
			length:      "10.1",
			ids:         []string{"MAT001", "MAT004", "MAT006", "MAT012"},
			quantities:  []string{"11", "30300", "312", "624"}, // 26 towers
		},
		{
			name:        "unknown type",
			projectType: core.ProjectType("Pipeline"),
			length:      "100",
			ids:         []string{},
			quantities:  []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := core.HeuristicLines(tt.projectType, d(tt.length), d("100"))
			require.Len(t, lines, len(tt.ids))
			for i, l := range lines {
				assert.Equal(t, tt.ids[i], l.MaterialID)
				assertDecimal(t, tt.quantities[i], l.Quantity, l.MaterialID)
				assert.True(t, l.TotalCost.Equal(l.Quantity.Mul(l.UnitCost)))
			}
		})
	}
}

func TestGenerateForecastFallsBackToHeuristic(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewSeeded()
	predictor := &stubPredictor{err: errors.New("connection refused")}
	svc := core.NewForecastService(store, predictor, core.DefaultPolicy(), nil, fixedNow)

	res, err := svc.GenerateForecast(ctx, core.ForecastRequest{
		ProjectName: "Mumbai Ring",
		ProjectType: core.ProjectTypeTower,
		LineLength:  dptr("100"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, predictor.calls)
	assert.Equal(t, core.SourceHeuristic, res.Source)

	f := res.Forecast
	assert.Equal(t, "FC009", f.ForecastID)
	assert.Equal(t, "PRJ005", f.ProjectID)
	assertDecimal(t, "94", f.Confidence)
	// 100*850000 + 300000*450 + 3000*1200 + 6000*850
	assertDecimal(t, "228700000", f.Subtotal)
	assertDecimal(t, "41166000", f.Taxes)
	assertDecimal(t, "269866000", f.Total)

	require.Len(t, res.RecordedEntries, 4)
	for i, e := range res.RecordedEntries {
		assert.Equal(t, core.ForecastEntryID("FC009", i+1), e.ID)
		assert.Equal(t, "PRJ005", e.ProjectID)
		assert.Equal(t, "2025-11", e.Month)
		assert.Nil(t, e.ActualQty)
		assertDecimal(t, "94", e.Confidence)
	}

	entries, err := store.ForecastEntries(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 12)
}

func TestGenerateForecastWithoutPredictor(t *testing.T) {
	svc := core.NewForecastService(memstore.NewSeeded(), nil, core.DefaultPolicy(), nil, fixedNow)

	res, err := svc.GenerateForecast(context.Background(), core.ForecastRequest{
		ProjectID:   "PRJ003",
		ProjectName: "Bangalore Extension",
		ProjectType: core.ProjectTypeBoth,
	})
	require.NoError(t, err)
	assert.Equal(t, core.SourceHeuristic, res.Source)
	assert.Equal(t, "PRJ003", res.Forecast.ProjectID)
	assert.Len(t, res.Forecast.Materials, 7)
	assert.Len(t, res.RecordedEntries, 7)
}

func TestGenerateForecastUsesRemotePrediction(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewSeeded()
	predictor := &stubPredictor{prediction: &core.Prediction{
		ForecastID:  "remote-7",
		GeneratedAt: "2025-11-28T09:00:00Z",
		ModelReady:  true,
		Outputs: []core.PredictionOutput{
			{Label: "Steel Towers", Value: d("12.345"), Unit: "units"},
			{Label: "Conductors", Value: d("1000")},
			{Label: "Mystery", Value: d("2")},
			{Value: d("1")},
		},
	}}
	svc := core.NewForecastService(store, predictor, core.DefaultPolicy(), nil, fixedNow)

	res, err := svc.GenerateForecast(ctx, core.ForecastRequest{
		ProjectName:    "Chennai Link",
		Region:         "South",
		Location:       "Tamil Nadu",
		ProjectType:    core.ProjectTypeTower,
		TowerType:      "Type A - 765kV",
		Budget:         dptr("250"),
		LineLength:     dptr("320"),
		SubstationType: "765kV GIS",
	})
	require.NoError(t, err)
	assert.Equal(t, core.SourceRemote, res.Source)

	f := res.Forecast
	assert.Equal(t, "remote-7", f.ForecastID)
	assert.Equal(t, "2025-11-28T09:00:00Z", f.GeneratedAt)
	assertDecimal(t, "94", f.Confidence)
	require.Len(t, f.Materials, 4)

	assert.Equal(t, "ML-1", f.Materials[0].MaterialID)
	assertDecimal(t, "12.35", f.Materials[0].Quantity)
	assertDecimal(t, "850000", f.Materials[0].UnitCost)
	assertDecimal(t, "10497500", f.Materials[0].TotalCost)
	assert.Equal(t, "units", f.Materials[0].Unit)

	assert.Equal(t, "Units", f.Materials[1].Unit)
	assertDecimal(t, "450", f.Materials[1].UnitCost)
	assertDecimal(t, "150000", f.Materials[2].UnitCost) // 50000 * 3
	assert.Equal(t, "Output 4", f.Materials[3].Name)
	assertDecimal(t, "200000", f.Materials[3].UnitCost)

	require.Len(t, res.RecordedEntries, 4)
	assert.Equal(t, "remote-7-1", res.RecordedEntries[0].ID)
	assert.Equal(t, "ML-1", res.RecordedEntries[0].MaterialID)

	feat := predictor.last.Features
	assert.Equal(t, "Tower", feat.ProjectCategoryMain)
	assert.Equal(t, "Type A - 765kV", feat.ProjectType)
	assertDecimal(t, "25000", feat.BudgetLakhs)
	assert.Equal(t, "Tamil Nadu", feat.State)
	assert.Equal(t, "Mixed", feat.Terrain)
	assertDecimal(t, "50", feat.DistanceFromStorage)
	assertDecimal(t, "320", feat.LineLengthKm)
	assert.Equal(t, "South", predictor.last.Metadata["region"])
}

func TestGenerateForecastRemoteNotReady(t *testing.T) {
	predictor := &stubPredictor{prediction: &core.Prediction{ModelReady: false}}
	svc := core.NewForecastService(memstore.NewSeeded(), predictor, core.DefaultPolicy(), nil, fixedNow)

	res, err := svc.GenerateForecast(context.Background(), core.ForecastRequest{ProjectName: "Empty", ProjectType: core.ProjectTypeTower})
	require.NoError(t, err)
	assert.Equal(t, core.SourceRemote, res.Source)
	assertDecimal(t, "80", res.Forecast.Confidence)
	assert.Equal(t, "FC009", res.Forecast.ForecastID)
	assert.Empty(t, res.Forecast.Materials)
	assert.True(t, res.Forecast.Total.IsZero())

	feat := predictor.last.Features
	assert.Equal(t, "Tower", feat.ProjectType)
	assert.Equal(t, "Unknown", feat.State)
	assertDecimal(t, "100", feat.LineLengthKm)
	assertDecimal(t, "0", feat.BudgetLakhs)
}

func TestGenerateForecastDefaultsNonPositiveFeatures(t *testing.T) {
	predictor := &stubPredictor{err: errors.New("connection refused")}
	svc := core.NewForecastService(memstore.NewSeeded(), predictor, core.DefaultPolicy(), nil, fixedNow)
	length, distance := d("-5"), d("-2")

	res, err := svc.GenerateForecast(context.Background(), core.ForecastRequest{
		ProjectName:         "Negative Line",
		ProjectType:         core.ProjectTypeTower,
		LineLength:          &length,
		DistanceFromStorage: &distance,
	})
	require.NoError(t, err)
	assert.Equal(t, core.SourceHeuristic, res.Source)

	feat := predictor.last.Features
	assertDecimal(t, "100", feat.LineLengthKm)
	assertDecimal(t, core.DefaultPolicy().DefaultDistanceFromStorage.String(), feat.DistanceFromStorage)
	// heuristic uses the same default length: 250 towers, 12 insulators each
	assertDecimal(t, "3000", res.Forecast.Materials[2].Quantity)
}

func TestGenerateForecastWithoutName(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewSeeded()
	svc := core.NewForecastService(store, nil, core.DefaultPolicy(), nil, fixedNow)
	length := d("100")

	res, err := svc.GenerateForecast(ctx, core.ForecastRequest{ProjectType: core.ProjectTypeTower, LineLength: &length})
	require.NoError(t, err)
	assert.Equal(t, "Untitled project", res.Forecast.ProjectName)
	assert.Len(t, res.Forecast.Materials, 4)
	assert.Len(t, res.RecordedEntries, 4)

	entries, err := store.ForecastEntries(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 12)
}

func TestRecordForecastActual(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewSeeded()
	svc := core.NewForecastService(store, nil, core.DefaultPolicy(), nil, fixedNow)
	derivation := core.NewDerivationService(store, core.DefaultPolicy(), fixedNow)

	e, err := svc.RecordForecastActual(ctx, "FC007", d("25"))
	require.NoError(t, err)
	require.NotNil(t, e.ActualQty)
	assertDecimal(t, "25", *e.ActualQty)
	assertDecimal(t, "88", *e.Accuracy) // 1 - 3/25

	_, err = svc.RecordForecastActual(ctx, "FC007", d("26"))
	assert.ErrorIs(t, err, core.ErrActualAlreadyRecorded)

	_, err = svc.RecordForecastActual(ctx, "FC001", d("1"))
	assert.ErrorIs(t, err, core.ErrActualAlreadyRecorded)

	_, err = svc.RecordForecastActual(ctx, "FC999", d("1"))
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = svc.RecordForecastActual(ctx, "FC008", d("-1"))
	assert.ErrorIs(t, err, core.ErrValidation)

	// (574.1198... + 88) / 7
	acc, err := derivation.ForecastAccuracy(ctx)
	require.NoError(t, err)
	assertDecimal(t, "94.6", acc)
}
