package core

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Fallbacks used while no order has been delivered.
var (
	defaultOnTimeDelivery  = decimal.NewFromInt(90)
	defaultAvgDeliveryDays = decimal.NewFromInt(30)
	onTimeDeliveryDays     = 30
	accurateVariancePct    = decimal.NewFromInt(10)
)

// AnalyticsReport aggregates supply-chain health metrics across all collections.
type AnalyticsReport struct {
	InventoryHealth      decimal.Decimal `json:"inventory_health"` // % of materials in Good status
	CriticalMaterials    int             `json:"critical_materials"`
	TotalInventoryValue  decimal.Decimal `json:"total_inventory_value"`
	AvgProjectCompletion decimal.Decimal `json:"avg_project_completion"`
	AtRiskProjects       int             `json:"at_risk_projects"`
	OnTrackProjects      int             `json:"on_track_projects"`
	ForecastAccuracy     decimal.Decimal `json:"forecast_accuracy"`
	AccurateForecasts    int             `json:"accurate_forecasts"` // realized with < 10% variance
	ActiveOrders         int             `json:"active_orders"`      // In Transit
	DeliveredOrders      int             `json:"delivered_orders"`
	AvgDeliveryDays      decimal.Decimal `json:"avg_delivery_days"`
	OnTimeDelivery       decimal.Decimal `json:"on_time_delivery"`
	BudgetUtilization    decimal.Decimal `json:"budget_utilization"`
	OverallHealth        decimal.Decimal `json:"overall_health"`
	RegionStats          []RegionStat    `json:"region_stats"`
	TopMaterialsByValue  []MaterialValue `json:"top_materials_by_value"`
}

// RegionStat summarizes the projects of one region.
type RegionStat struct {
	Region        string          `json:"region"`
	Projects      int             `json:"projects"`
	AvgCompletion decimal.Decimal `json:"avg_completion"`
	AtRisk        int             `json:"at_risk"`
}

// MaterialValue is the stock value of one material.
type MaterialValue struct {
	MaterialID string          `json:"material_id"`
	Name       string          `json:"name"`
	Status     StockStatus     `json:"status"`
	Value      decimal.Decimal `json:"value"`
}

func (s *derivationService) AnalyticsReport(ctx context.Context) (*AnalyticsReport, error) {
	var (
		summaries []MaterialSummary
		projects  []Project
		entries   []ForecastEntry
		orders    []ProcurementOrder
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summaries, err = s.MaterialsSummary(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		if projects, err = s.store.Projects(gctx); err != nil {
			return fmt.Errorf("failed to load projects: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if entries, err = s.store.ForecastEntries(gctx); err != nil {
			return fmt.Errorf("failed to load forecast entries: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if orders, err = s.store.ProcurementOrders(gctx); err != nil {
			return fmt.Errorf("failed to load procurement orders: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return BuildAnalyticsReport(summaries, projects, entries, orders, s.policy), nil
}

// BuildAnalyticsReport computes the report from already loaded collections.
func BuildAnalyticsReport(summaries []MaterialSummary, projects []Project, entries []ForecastEntry, orders []ProcurementOrder, policy Policy) *AnalyticsReport {
	r := &AnalyticsReport{
		TotalInventoryValue:  decimal.Zero,
		AvgProjectCompletion: decimal.Zero,
		RegionStats:          []RegionStat{},
	}

	good := 0
	values := make([]MaterialValue, 0, len(summaries))
	for _, m := range summaries {
		switch m.Status {
		case StockGood:
			good++
		case StockCritical:
			r.CriticalMaterials++
		}
		v := m.CurrentStock.Mul(m.CostPerUnit)
		r.TotalInventoryValue = r.TotalInventoryValue.Add(v)
		values = append(values, MaterialValue{MaterialID: m.ID, Name: m.Name, Status: m.Status, Value: v})
	}
	r.InventoryHealth = percentOf(decimal.NewFromInt(int64(good)), decimal.NewFromInt(int64(len(summaries))))

	sort.SliceStable(values, func(i, j int) bool { return values[i].Value.GreaterThan(values[j].Value) })
	if len(values) > policy.TopMaterialsByValue {
		values = values[:policy.TopMaterialsByValue]
	}
	r.TopMaterialsByValue = values

	totalBudget := decimal.Zero
	completion := decimal.Zero
	regionIdx := map[string]int{}
	regionCompletion := []decimal.Decimal{}
	for _, p := range projects {
		totalBudget = totalBudget.Add(p.Budget)
		completion = completion.Add(p.Completion)
		atRisk := p.Completion.LessThan(policy.AtRiskCompletionThreshold)
		if atRisk {
			r.AtRiskProjects++
		} else if p.Completion.LessThan(hundred) {
			r.OnTrackProjects++
		}

		i, ok := regionIdx[p.Region]
		if !ok {
			i = len(r.RegionStats)
			regionIdx[p.Region] = i
			r.RegionStats = append(r.RegionStats, RegionStat{Region: p.Region})
			regionCompletion = append(regionCompletion, decimal.Zero)
		}
		r.RegionStats[i].Projects++
		regionCompletion[i] = regionCompletion[i].Add(p.Completion)
		if atRisk {
			r.RegionStats[i].AtRisk++
		}
	}
	if len(projects) > 0 {
		r.AvgProjectCompletion = completion.Div(decimal.NewFromInt(int64(len(projects)))).Round(1)
	}
	for i := range r.RegionStats {
		r.RegionStats[i].AvgCompletion = regionCompletion[i].Div(decimal.NewFromInt(int64(r.RegionStats[i].Projects))).Round(1)
	}

	r.ForecastAccuracy = ComputeForecastAccuracy(entries, policy.DefaultAccuracy)
	for _, e := range entries {
		if !e.Realized() || e.ForecastedQty.IsZero() {
			continue
		}
		variance := e.ForecastedQty.Sub(*e.ActualQty).Div(e.ForecastedQty).Mul(hundred).Abs()
		if variance.LessThan(accurateVariancePct) {
			r.AccurateForecasts++
		}
	}

	spent := decimal.Zero
	totalDays, onTime := 0, 0
	for _, o := range orders {
		spent = spent.Add(o.TotalCost)
		switch o.Status {
		case OrderInTransit:
			r.ActiveOrders++
		case OrderDelivered:
			r.DeliveredOrders++
			days := deliveryDays(o)
			totalDays += days
			if days <= onTimeDeliveryDays {
				onTime++
			}
		}
	}
	r.AvgDeliveryDays = defaultAvgDeliveryDays
	r.OnTimeDelivery = defaultOnTimeDelivery
	if r.DeliveredOrders > 0 {
		delivered := decimal.NewFromInt(int64(r.DeliveredOrders))
		r.AvgDeliveryDays = decimal.NewFromInt(int64(totalDays)).Div(delivered).Round(0)
		r.OnTimeDelivery = percentOf(decimal.NewFromInt(int64(onTime)), delivered)
	}
	r.BudgetUtilization = percentOf(spent, totalBudget)

	r.OverallHealth = r.InventoryHealth.
		Add(r.ForecastAccuracy).
		Add(r.OnTimeDelivery).
		Add(r.AvgProjectCompletion).
		Div(decimal.NewFromInt(4)).
		Round(0)
	return r
}

// deliveryDays is the number of days between ordering and delivery.
// Orders with unparseable dates count as the standard 30 days.
func deliveryDays(o ProcurementOrder) int {
	if o.ActualDate == nil {
		return onTimeDeliveryDays
	}
	ordered, err := time.Parse(time.DateOnly, o.OrderDate)
	if err != nil {
		return onTimeDeliveryDays
	}
	delivered, err := time.Parse(time.DateOnly, *o.ActualDate)
	if err != nil {
		return onTimeDeliveryDays
	}
	return int(delivered.Sub(ordered).Hours() / 24)
}
