package cli

import (
	"fmt"
	"io"
	"strings"

	"grid-supply/internal/app"
	"grid-supply/internal/core"
)

func rule(w io.Writer, ch string, width int) {
	fmt.Fprintln(w, strings.Repeat(ch, width))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func printStats(w io.Writer, s *core.DashboardStats) {
	fmt.Fprintln(w)
	rule(w, "=", 50)
	fmt.Fprintf(w, "  %-46s\n", "DASHBOARD")
	fmt.Fprintf(w, "  As of : %s\n", s.LastUpdated.Format("2006-01-02 15:04"))
	rule(w, "=", 50)
	fmt.Fprintf(w, "  %-32s %14d\n", "Active projects", s.ActiveProjects)
	fmt.Fprintf(w, "  %-32s %14d\n", "Materials", s.TotalMaterials)
	fmt.Fprintf(w, "  %-32s %14s\n", "Spend this month", s.MonthlySpend.StringFixed(2))
	fmt.Fprintf(w, "  %-32s %13s%%\n", "Forecast accuracy", s.ForecastAccuracy.StringFixed(1))
	fmt.Fprintf(w, "  %-32s %14d\n", "At-risk materials", s.AtRiskMaterials)
	fmt.Fprintf(w, "  %-32s %14d\n", "Critical projects", s.CriticalProjects)
	fmt.Fprintf(w, "  %-32s %14d\n", "Pending orders", s.PendingOrders)
	rule(w, "=", 50)
}

func printMaterials(w io.Writer, materials []core.MaterialSummary) {
	fmt.Fprintln(w)
	rule(w, "=", 92)
	fmt.Fprintf(w, "  %-88s\n", "MATERIALS")
	rule(w, "=", 92)
	if len(materials) == 0 {
		fmt.Fprintln(w, "  No materials found.")
		rule(w, "=", 92)
		return
	}
	fmt.Fprintf(w, "  %-7s %-32s %10s %10s %10s %-8s %-8s\n",
		"ID", "NAME", "STOCK", "AVAILABLE", "IN TRANS", "UNIT", "STATUS")
	rule(w, "-", 92)
	for _, m := range materials {
		fmt.Fprintf(w, "  %-7s %-32s %10s %10s %10s %-8s %-8s\n",
			m.ID, truncate(m.Name, 32), m.CurrentStock, m.Available, m.InTransit, m.Unit, m.Status)
	}
	rule(w, "=", 92)
}

func printShortfalls(w io.Writer, result *app.ShortfallListResult) {
	fmt.Fprintln(w)
	rule(w, "=", 96)
	fmt.Fprintf(w, "  %-92s\n", "SHORTFALLS")
	rule(w, "=", 96)
	if len(result.Shortfalls) == 0 {
		fmt.Fprintln(w, "  No shortfalls: stock covers safety stock and open forecasts.")
		rule(w, "=", 96)
		return
	}
	fmt.Fprintf(w, "  %-7s %-30s %10s %10s %10s %10s %13s\n",
		"ID", "NAME", "NEEDED", "AVAILABLE", "SHORTFALL", "ORDER", "EST. COST")
	rule(w, "-", 96)
	for _, s := range result.Shortfalls {
		fmt.Fprintf(w, "  %-7s %-30s %10s %10s %10s %10s %13s\n",
			s.MaterialID, truncate(s.MaterialName, 30), s.TotalNeeded, s.TotalAvailable,
			s.Shortfall, s.RecommendedOrder, s.EstimatedCost.StringFixed(2))
	}
	rule(w, "-", 96)
	fmt.Fprintf(w, "  %-81s %13s\n", "TOTAL", result.TotalEstimatedCost.StringFixed(2))
	rule(w, "=", 96)
}

func printMaterialShortfall(w io.Writer, s *core.Shortfall) {
	fmt.Fprintf(w, "%s %s\n", s.MaterialID, s.MaterialName)
	fmt.Fprintf(w, "  Safety stock    : %s %s\n", s.SafetyStock, s.Unit)
	fmt.Fprintf(w, "  Open demand     : %s %s\n", s.FutureDemand, s.Unit)
	fmt.Fprintf(w, "  Available       : %s %s\n", s.TotalAvailable, s.Unit)
	fmt.Fprintf(w, "  Shortfall       : %s %s\n", s.Shortfall, s.Unit)
	if s.RecommendedOrder.IsPositive() {
		fmt.Fprintf(w, "  Recommended PO  : %s %s from %s (%s)\n",
			s.RecommendedOrder, s.Unit, s.SupplierID, s.EstimatedCost.StringFixed(2))
	}
}

func printProjects(w io.Writer, projects []core.ProjectSummary) {
	fmt.Fprintln(w)
	rule(w, "=", 88)
	fmt.Fprintf(w, "  %-84s\n", "PROJECTS")
	rule(w, "=", 88)
	if len(projects) == 0 {
		fmt.Fprintln(w, "  No projects found.")
		rule(w, "=", 88)
		return
	}
	fmt.Fprintf(w, "  %-7s %-30s %-8s %-12s %10s %12s\n",
		"ID", "NAME", "REGION", "STATUS", "COMPLETE", "FULFILLED")
	rule(w, "-", 88)
	for _, p := range projects {
		fmt.Fprintf(w, "  %-7s %-30s %-8s %-12s %9s%% %11s%%\n",
			p.ID, truncate(p.Name, 30), p.Region, p.Status, p.Completion.StringFixed(0), p.Fulfillment.StringFixed(1))
	}
	rule(w, "=", 88)
}

func printForecast(w io.Writer, result *core.ForecastResult) {
	f := result.Forecast
	fmt.Fprintln(w)
	rule(w, "=", 96)
	fmt.Fprintf(w, "  FORECAST %s for %s (%s)\n", f.ForecastID, f.ProjectName, f.ProjectID)
	fmt.Fprintf(w, "  Source     : %s\n", result.Source)
	fmt.Fprintf(w, "  Confidence : %s%%\n", f.Confidence)
	rule(w, "=", 96)
	fmt.Fprintf(w, "  %-7s %-36s %12s %-8s %12s %14s\n", "ID", "MATERIAL", "QTY", "UNIT", "UNIT COST", "TOTAL")
	rule(w, "-", 96)
	for _, l := range f.Materials {
		fmt.Fprintf(w, "  %-7s %-36s %12s %-8s %12s %14s\n",
			l.MaterialID, truncate(l.Name, 36), l.Quantity, l.Unit, l.UnitCost.StringFixed(2), l.TotalCost.StringFixed(2))
	}
	rule(w, "-", 96)
	fmt.Fprintf(w, "  %-79s %14s\n", "SUBTOTAL", f.Subtotal.StringFixed(2))
	fmt.Fprintf(w, "  %-79s %14s\n", "TAXES", f.Taxes.StringFixed(2))
	fmt.Fprintf(w, "  %-79s %14s\n", "TOTAL", f.Total.StringFixed(2))
	rule(w, "=", 96)
	fmt.Fprintf(w, "  Recorded %d forecast entries.\n", len(result.RecordedEntries))
}
