package db

import (
	"context"
	"fmt"

	"grid-supply/internal/core"

	"github.com/jackc/pgx/v5"
)

// Restore replaces every table's contents with seed in a single transaction.
func (s *Store) Restore(ctx context.Context, seed core.Seed) error {
	return s.withWriteTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			TRUNCATE procurement_orders, forecast_entries, project_requirements, projects,
				inventory, materials, suppliers
			RESTART IDENTITY`); err != nil {
			return fmt.Errorf("failed to clear tables: %w", err)
		}

		for _, sp := range seed.Suppliers {
			if _, err := tx.Exec(ctx, `
				INSERT INTO suppliers (id, name, category, rating, on_time_delivery, quality_score,
					avg_lead_time, contact_email, contact_phone)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
				sp.ID, sp.Name, sp.Category, sp.Rating, sp.OnTimeDelivery, sp.QualityScore,
				sp.AvgLeadTime, sp.ContactEmail, sp.ContactPhone,
			); err != nil {
				return fmt.Errorf("failed to insert supplier %s: %w", sp.ID, err)
			}
		}

		for _, m := range seed.Materials {
			if _, err := tx.Exec(ctx, `
				INSERT INTO materials (id, name, category, unit, cost_per_unit, lead_time_days,
					reorder_level, safety_stock, supplier_id)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
				m.ID, m.Name, m.Category, m.Unit, m.CostPerUnit, m.LeadTimeDays,
				m.ReorderLevel, m.SafetyStock, m.SupplierID,
			); err != nil {
				return fmt.Errorf("failed to insert material %s: %w", m.ID, err)
			}
		}

		for _, r := range seed.Inventory {
			if r.Available().IsNegative() {
				return fmt.Errorf("inventory for %s reserves more than current stock: %w", r.MaterialID, core.ErrValidation)
			}
			if _, err := tx.Exec(ctx, `
				INSERT INTO inventory (material_id, current_stock, reserved, in_transit, last_updated)
				VALUES ($1, $2, $3, $4, $5)`,
				r.MaterialID, r.CurrentStock, r.Reserved, r.InTransit, r.LastUpdated,
			); err != nil {
				return fmt.Errorf("failed to insert inventory for %s: %w", r.MaterialID, err)
			}
		}

		for _, p := range seed.Projects {
			if err := insertProject(ctx, tx, p); err != nil {
				return err
			}
		}
		for _, e := range seed.ForecastEntries {
			if err := insertForecastEntry(ctx, tx, e); err != nil {
				return err
			}
		}
		for _, o := range seed.ProcurementOrders {
			if err := insertOrder(ctx, tx, o); err != nil {
				return err
			}
		}
		return nil
	})
}
