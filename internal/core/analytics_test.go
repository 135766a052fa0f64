package core_test

import (
	"context"
	"testing"

	"grid-supply/internal/core"
	"grid-supply/internal/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsReportOnSeed(t *testing.T) {
	svc, _ := newDerivation(t)

	r, err := svc.AnalyticsReport(context.Background())
	require.NoError(t, err)

	assertDecimal(t, "35.7", r.InventoryHealth)
	assert.Equal(t, 0, r.CriticalMaterials)
	assertDecimal(t, "152005000", r.TotalInventoryValue)
	assertDecimal(t, "50", r.AvgProjectCompletion)
	assert.Equal(t, 2, r.AtRiskProjects)
	assert.Equal(t, 2, r.OnTrackProjects)
	assertDecimal(t, "95.7", r.ForecastAccuracy)
	assert.Equal(t, 6, r.AccurateForecasts)
	assert.Equal(t, 2, r.ActiveOrders)
	assert.Equal(t, 0, r.DeliveredOrders)
	assertDecimal(t, "90", r.OnTimeDelivery)
	assertDecimal(t, "30", r.AvgDeliveryDays)
	assertDecimal(t, "22.9", r.BudgetUtilization)
	assertDecimal(t, "68", r.OverallHealth) // (35.7 + 95.7 + 90 + 50) / 4

	require.Len(t, r.RegionStats, 3)
	assert.Equal(t, "West", r.RegionStats[0].Region)
	assert.Equal(t, 1, r.RegionStats[0].Projects)
	assert.Equal(t, 0, r.RegionStats[0].AtRisk)
	assertDecimal(t, "65", r.RegionStats[0].AvgCompletion)
	assert.Equal(t, "North", r.RegionStats[1].Region)
	assert.Equal(t, 1, r.RegionStats[1].AtRisk)
	assert.Equal(t, "South", r.RegionStats[2].Region)
	assert.Equal(t, 2, r.RegionStats[2].Projects)
	assertDecimal(t, "46.5", r.RegionStats[2].AvgCompletion)
	assert.Equal(t, 1, r.RegionStats[2].AtRisk)

	require.Len(t, r.TopMaterialsByValue, 6)
	top := make([]string, 0, 6)
	for _, m := range r.TopMaterialsByValue {
		top = append(top, m.MaterialID)
	}
	assert.Equal(t, []string{"MAT001", "MAT002", "MAT011", "MAT010", "MAT003", "MAT009"}, top)
}

func TestAnalyticsDeliveredOrders(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewSeeded()
	procurement := core.NewProcurementService(store, nil, fixedNow)
	svc := core.NewDerivationService(store, core.DefaultPolicy(), fixedNow)

	// PO003 was ordered 2025-11-10, delivered 2025-11-28: 18 days.
	_, err := procurement.AdvanceOrder(ctx, "PO003", core.OrderDelivered)
	require.NoError(t, err)

	r, err := svc.AnalyticsReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, r.DeliveredOrders)
	assert.Equal(t, 1, r.ActiveOrders)
	assertDecimal(t, "18", r.AvgDeliveryDays)
	assertDecimal(t, "100", r.OnTimeDelivery)
}

func TestAnalyticsEmptyCollections(t *testing.T) {
	svc := core.NewDerivationService(memstore.New(core.Seed{}), core.DefaultPolicy(), fixedNow)

	r, err := svc.AnalyticsReport(context.Background())
	require.NoError(t, err)
	assert.True(t, r.InventoryHealth.IsZero())
	assert.True(t, r.BudgetUtilization.IsZero())
	assert.True(t, r.AvgProjectCompletion.IsZero())
	assertDecimal(t, "94.5", r.ForecastAccuracy)
	assert.Empty(t, r.RegionStats)
	assert.Empty(t, r.TopMaterialsByValue)
}
