package core

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

var hundred = decimal.NewFromInt(100)

// DerivationService computes read-only views over the reference data.
// Missing references never fail a read: they fall back to neutral defaults.
type DerivationService interface {
	// ForecastAccuracy is the mean per-entry accuracy over realized forecasts, rounded to one place.
	ForecastAccuracy(ctx context.Context) (decimal.Decimal, error)
	// ProjectFulfillment is the allocated share of a project's required quantity, in percent.
	// Unknown projects and projects without requirements report 100.
	ProjectFulfillment(ctx context.Context, projectID string) (decimal.Decimal, error)
	MaterialsSummary(ctx context.Context) ([]MaterialSummary, error)
	DashboardStats(ctx context.Context) (*DashboardStats, error)
	ProjectsSummary(ctx context.Context) ([]ProjectSummary, error)
	// ProjectDetail returns (nil, nil) for an unknown project.
	ProjectDetail(ctx context.Context, projectID string) (*ProjectDetail, error)
	ProcurementOrders(ctx context.Context) ([]ProcurementOrderView, error)
	Suppliers(ctx context.Context) ([]Supplier, error)
	Forecasts(ctx context.Context, filter ForecastFilter) ([]ForecastEntryView, error)
	AnalyticsReport(ctx context.Context) (*AnalyticsReport, error)
}

// DashboardStats are the headline figures of the supply-chain dashboard.
type DashboardStats struct {
	ActiveProjects   int             `json:"active_projects"`
	TotalMaterials   int             `json:"total_materials"`
	MonthlySpend     decimal.Decimal `json:"monthly_spend"`
	ForecastAccuracy decimal.Decimal `json:"forecast_accuracy"`
	AtRiskMaterials  int             `json:"at_risk_materials"`
	CriticalProjects int             `json:"critical_projects"`
	PendingOrders    int             `json:"pending_orders"`
	LastUpdated      time.Time       `json:"last_updated"`
}

type derivationService struct {
	store  Store
	policy Policy
	now    func() time.Time
}

// NewDerivationService returns a DerivationService over store. now may be nil, in which case time.Now is used.
func NewDerivationService(store Store, policy Policy, now func() time.Time) DerivationService {
	if now == nil {
		now = time.Now
	}
	return &derivationService{store: store, policy: policy, now: now}
}

// ComputeForecastAccuracy averages max(0, (1 - |forecast-actual|/actual) * 100) over realized entries.
// A realized entry with an actual of zero contributes 0. With no realized entries it returns fallback.
func ComputeForecastAccuracy(entries []ForecastEntry, fallback decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	count := 0
	for _, e := range entries {
		if !e.Realized() {
			continue
		}
		count++
		sum = sum.Add(entryAccuracy(e.ForecastedQty, *e.ActualQty))
	}
	if count == 0 {
		return fallback
	}
	return sum.Div(decimal.NewFromInt(int64(count))).Round(1)
}

// entryAccuracy is the unrounded accuracy of one realized forecast, clamped at 0.
func entryAccuracy(forecast, actual decimal.Decimal) decimal.Decimal {
	if !actual.IsPositive() {
		return decimal.Zero
	}
	acc := decimal.NewFromInt(1).Sub(forecast.Sub(actual).Abs().Div(actual)).Mul(hundred)
	if acc.IsNegative() {
		return decimal.Zero
	}
	return acc
}

// ComputeFulfillment returns Σallocated / Σquantity × 100 rounded to one place.
// A nil project, no requirements or a zero total quantity yield 100.
func ComputeFulfillment(p *Project) decimal.Decimal {
	if p == nil || len(p.MaterialRequirements) == 0 {
		return hundred
	}
	required, allocated := decimal.Zero, decimal.Zero
	for _, r := range p.MaterialRequirements {
		required = required.Add(r.Quantity)
		allocated = allocated.Add(r.Allocated)
	}
	if required.IsZero() {
		return hundred
	}
	return allocated.Div(required).Mul(hundred).Round(1)
}

// percentOf returns part/whole × 100 rounded to one place, or zero when whole is zero.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(1)
}

func (s *derivationService) ForecastAccuracy(ctx context.Context) (decimal.Decimal, error) {
	entries, err := s.store.ForecastEntries(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load forecast entries: %w", err)
	}
	return ComputeForecastAccuracy(entries, s.policy.DefaultAccuracy), nil
}

func (s *derivationService) ProjectFulfillment(ctx context.Context, projectID string) (decimal.Decimal, error) {
	p, err := s.store.Project(ctx, projectID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load project %s: %w", projectID, err)
	}
	return ComputeFulfillment(p), nil
}

func (s *derivationService) MaterialsSummary(ctx context.Context) ([]MaterialSummary, error) {
	var (
		materials []Material
		inventory []InventoryRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		materials, err = s.store.Materials(gctx)
		if err != nil {
			return fmt.Errorf("failed to load materials: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		inventory, err = s.store.InventoryRecords(gctx)
		if err != nil {
			return fmt.Errorf("failed to load inventory: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return joinInventory(materials, inventory), nil
}

func joinInventory(materials []Material, inventory []InventoryRecord) []MaterialSummary {
	byMaterial := make(map[string]*InventoryRecord, len(inventory))
	for i := range inventory {
		byMaterial[inventory[i].MaterialID] = &inventory[i]
	}
	out := make([]MaterialSummary, 0, len(materials))
	for _, m := range materials {
		out = append(out, summarizeMaterial(m, byMaterial[m.ID]))
	}
	return out
}

func (s *derivationService) DashboardStats(ctx context.Context) (*DashboardStats, error) {
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
		projects, err = s.store.Projects(gctx)
		if err != nil {
			return fmt.Errorf("failed to load projects: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		entries, err = s.store.ForecastEntries(gctx)
		if err != nil {
			return fmt.Errorf("failed to load forecast entries: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		orders, err = s.store.ProcurementOrders(gctx)
		if err != nil {
			return fmt.Errorf("failed to load procurement orders: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := s.now()
	stats := &DashboardStats{
		TotalMaterials:   len(summaries),
		MonthlySpend:     decimal.Zero,
		ForecastAccuracy: ComputeForecastAccuracy(entries, s.policy.DefaultAccuracy),
		LastUpdated:      now,
	}
	for _, m := range summaries {
		if m.Status != StockGood {
			stats.AtRiskMaterials++
		}
	}
	for i := range projects {
		if projects[i].Status == ProjectInProgress {
			stats.ActiveProjects++
		}
		if ComputeFulfillment(&projects[i]).LessThan(s.policy.CriticalFulfillment) {
			stats.CriticalProjects++
		}
	}
	month := now.Format("2006-01")
	for _, o := range orders {
		if o.Open() {
			stats.PendingOrders++
		}
		if len(o.OrderDate) >= 7 && o.OrderDate[:7] == month {
			stats.MonthlySpend = stats.MonthlySpend.Add(o.TotalCost)
		}
	}
	return stats, nil
}

func (s *derivationService) ProjectsSummary(ctx context.Context) ([]ProjectSummary, error) {
	projects, err := s.store.Projects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	out := make([]ProjectSummary, 0, len(projects))
	for i := range projects {
		out = append(out, ProjectSummary{Project: projects[i], Fulfillment: ComputeFulfillment(&projects[i])})
	}
	return out, nil
}

func (s *derivationService) ProjectDetail(ctx context.Context, projectID string) (*ProjectDetail, error) {
	p, err := s.store.Project(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load project %s: %w", projectID, err)
	}
	if p == nil {
		return nil, nil
	}
	materials, err := s.materialIndex(ctx)
	if err != nil {
		return nil, err
	}
	detail := &ProjectDetail{
		ProjectSummary: ProjectSummary{Project: *p, Fulfillment: ComputeFulfillment(p)},
		Materials:      make([]RequirementView, 0, len(p.MaterialRequirements)),
	}
	for _, r := range p.MaterialRequirements {
		v := RequirementView{MaterialRequirement: r}
		if m, ok := materials[r.MaterialID]; ok {
			v.MaterialName = m.Name
			v.Unit = m.Unit
		}
		detail.Materials = append(detail.Materials, v)
	}
	return detail, nil
}

func (s *derivationService) ProcurementOrders(ctx context.Context) ([]ProcurementOrderView, error) {
	orders, err := s.store.ProcurementOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load procurement orders: %w", err)
	}
	materials, err := s.materialIndex(ctx)
	if err != nil {
		return nil, err
	}
	suppliers, err := s.store.Suppliers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load suppliers: %w", err)
	}
	supplierNames := make(map[string]string, len(suppliers))
	for _, sp := range suppliers {
		supplierNames[sp.ID] = sp.Name
	}

	out := make([]ProcurementOrderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, ProcurementOrderView{
			ProcurementOrder: o,
			MaterialName:     materials[o.MaterialID].Name,
			SupplierName:     supplierNames[o.SupplierID],
		})
	}
	return out, nil
}

func (s *derivationService) Suppliers(ctx context.Context) ([]Supplier, error) {
	suppliers, err := s.store.Suppliers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load suppliers: %w", err)
	}
	return suppliers, nil
}

func (s *derivationService) Forecasts(ctx context.Context, filter ForecastFilter) ([]ForecastEntryView, error) {
	entries, err := s.store.ForecastEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load forecast entries: %w", err)
	}
	materials, err := s.materialIndex(ctx)
	if err != nil {
		return nil, err
	}
	projects, err := s.store.Projects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	projectNames := make(map[string]string, len(projects))
	for _, p := range projects {
		projectNames[p.ID] = p.Name
	}

	out := make([]ForecastEntryView, 0, len(entries))
	for _, e := range entries {
		if !filter.matches(e) {
			continue
		}
		out = append(out, ForecastEntryView{
			ForecastEntry: e,
			MaterialName:  materials[e.MaterialID].Name,
			ProjectName:   projectNames[e.ProjectID],
		})
	}
	return out, nil
}

func (s *derivationService) materialIndex(ctx context.Context) (map[string]Material, error) {
	materials, err := s.store.Materials(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load materials: %w", err)
	}
	idx := make(map[string]Material, len(materials))
	for _, m := range materials {
		idx[m.ID] = m
	}
	return idx, nil
}
