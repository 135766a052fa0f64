package db

import (
	"context"
	"errors"
	"fmt"

	"grid-supply/internal/core"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// writeLockID serializes ID allocation across every writer sharing the database.
const writeLockID = 7462840

// Store implements core.Store on PostgreSQL. Every mutation runs in a transaction that
// first takes a transaction-scoped advisory lock, so sequence allocation and insert are atomic.
type Store struct {
	pool *pgxpool.Pool
}

var _ core.Store = (*Store)(nil)

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const materialColumns = `id, name, category, unit, cost_per_unit, lead_time_days, reorder_level, safety_stock, supplier_id`

func scanMaterial(row pgx.Row) (core.Material, error) {
	var m core.Material
	err := row.Scan(&m.ID, &m.Name, &m.Category, &m.Unit, &m.CostPerUnit, &m.LeadTimeDays,
		&m.ReorderLevel, &m.SafetyStock, &m.SupplierID)
	return m, err
}

func (s *Store) Materials(ctx context.Context) ([]core.Material, error) {
	rows, err := s.pool.Query(ctx, "SELECT "+materialColumns+" FROM materials ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query materials: %w", err)
	}
	defer rows.Close()

	var out []core.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan material: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) Material(ctx context.Context, id string) (*core.Material, error) {
	m, err := scanMaterial(s.pool.QueryRow(ctx, "SELECT "+materialColumns+" FROM materials WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get material %s: %w", id, err)
	}
	return &m, nil
}

const supplierColumns = `id, name, category, rating, on_time_delivery, quality_score, avg_lead_time, contact_email, contact_phone`

func scanSupplier(row pgx.Row) (core.Supplier, error) {
	var sp core.Supplier
	err := row.Scan(&sp.ID, &sp.Name, &sp.Category, &sp.Rating, &sp.OnTimeDelivery, &sp.QualityScore,
		&sp.AvgLeadTime, &sp.ContactEmail, &sp.ContactPhone)
	return sp, err
}

func (s *Store) Suppliers(ctx context.Context) ([]core.Supplier, error) {
	rows, err := s.pool.Query(ctx, "SELECT "+supplierColumns+" FROM suppliers ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query suppliers: %w", err)
	}
	defer rows.Close()

	var out []core.Supplier
	for rows.Next() {
		sp, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan supplier: %w", err)
		}
		out = append(out, sp)
	}
	return out, rows.Err()
}

func (s *Store) Supplier(ctx context.Context, id string) (*core.Supplier, error) {
	sp, err := scanSupplier(s.pool.QueryRow(ctx, "SELECT "+supplierColumns+" FROM suppliers WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get supplier %s: %w", id, err)
	}
	return &sp, nil
}

func (s *Store) InventoryRecords(ctx context.Context) ([]core.InventoryRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT material_id, current_stock, reserved, in_transit, to_char(last_updated, 'YYYY-MM-DD')
		FROM inventory
		ORDER BY material_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer rows.Close()

	var out []core.InventoryRecord
	for rows.Next() {
		var r core.InventoryRecord
		if err := rows.Scan(&r.MaterialID, &r.CurrentStock, &r.Reserved, &r.InTransit, &r.LastUpdated); err != nil {
			return nil, fmt.Errorf("failed to scan inventory record: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const projectColumns = `id, name, region, location, budget, status, completion, priority, project_type,
	tower_type, substation_type, line_length,
	to_char(start_date, 'YYYY-MM-DD'), to_char(end_date, 'YYYY-MM-DD')`

func scanProject(row pgx.Row) (core.Project, error) {
	var p core.Project
	err := row.Scan(&p.ID, &p.Name, &p.Region, &p.Location, &p.Budget, &p.Status, &p.Completion,
		&p.Priority, &p.ProjectType, &p.TowerType, &p.SubstationType, &p.LineLength,
		&p.StartDate, &p.EndDate)
	return p, err
}

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func loadRequirements(ctx context.Context, q querier, projectIDs []string) (map[string][]core.MaterialRequirement, error) {
	rows, err := q.Query(ctx, `
		SELECT project_id, material_id, quantity, allocated, pending
		FROM project_requirements
		WHERE project_id = ANY($1)
		ORDER BY project_id, position`, projectIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query project requirements: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]core.MaterialRequirement)
	for rows.Next() {
		var projectID string
		var r core.MaterialRequirement
		if err := rows.Scan(&projectID, &r.MaterialID, &r.Quantity, &r.Allocated, &r.Pending); err != nil {
			return nil, fmt.Errorf("failed to scan project requirement: %w", err)
		}
		out[projectID] = append(out[projectID], r)
	}
	return out, rows.Err()
}

func (s *Store) Projects(ctx context.Context) ([]core.Project, error) {
	rows, err := s.pool.Query(ctx, "SELECT "+projectColumns+" FROM projects ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	var out []core.Project
	var ids []string
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		out = append(out, p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	reqs, err := loadRequirements(ctx, s.pool, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].MaterialRequirements = reqs[out[i].ID]
	}
	return out, nil
}

func (s *Store) Project(ctx context.Context, id string) (*core.Project, error) {
	p, err := getProject(ctx, s.pool, id, false)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project %s: %w", id, err)
	}
	return p, nil
}

func getProject(ctx context.Context, q querier, id string, forUpdate bool) (*core.Project, error) {
	query := "SELECT " + projectColumns + " FROM projects WHERE id = $1"
	if forUpdate {
		query += " FOR UPDATE"
	}
	p, err := scanProject(q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	reqs, err := loadRequirements(ctx, q, []string{id})
	if err != nil {
		return nil, err
	}
	p.MaterialRequirements = reqs[id]
	return &p, nil
}

const forecastColumns = `id, project_id, material_id, month, forecasted_qty, actual_qty, confidence, accuracy`

func scanForecastEntry(row pgx.Row) (core.ForecastEntry, error) {
	var e core.ForecastEntry
	var actual, accuracy decimal.NullDecimal
	if err := row.Scan(&e.ID, &e.ProjectID, &e.MaterialID, &e.Month, &e.ForecastedQty, &actual,
		&e.Confidence, &accuracy); err != nil {
		return e, err
	}
	if actual.Valid {
		e.ActualQty = &actual.Decimal
	}
	if accuracy.Valid {
		e.Accuracy = &accuracy.Decimal
	}
	return e, nil
}

func (s *Store) ForecastEntries(ctx context.Context) ([]core.ForecastEntry, error) {
	rows, err := s.pool.Query(ctx, "SELECT "+forecastColumns+" FROM forecast_entries ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("failed to query forecast entries: %w", err)
	}
	defer rows.Close()

	var out []core.ForecastEntry
	for rows.Next() {
		e, err := scanForecastEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan forecast entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

const orderColumns = `id, material_id, supplier_id, quantity, unit_cost, total_cost,
	to_char(order_date, 'YYYY-MM-DD'), to_char(expected_date, 'YYYY-MM-DD'), to_char(actual_date, 'YYYY-MM-DD'),
	status, project_id, trigger_reason`

func scanOrder(row pgx.Row) (core.ProcurementOrder, error) {
	var o core.ProcurementOrder
	err := row.Scan(&o.ID, &o.MaterialID, &o.SupplierID, &o.Quantity, &o.UnitCost, &o.TotalCost,
		&o.OrderDate, &o.ExpectedDate, &o.ActualDate, &o.Status, &o.ProjectID, &o.TriggerReason)
	return o, err
}

func (s *Store) ProcurementOrders(ctx context.Context) ([]core.ProcurementOrder, error) {
	rows, err := s.pool.Query(ctx, "SELECT "+orderColumns+" FROM procurement_orders ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("failed to query procurement orders: %w", err)
	}
	defer rows.Close()

	var out []core.ProcurementOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan procurement order: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// withWriteTx runs fn inside a transaction holding the write lock.
func (s *Store) withWriteTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", writeLockID); err != nil {
		return fmt.Errorf("failed to take write lock: %w", err)
	}
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func nextSequence(ctx context.Context, tx pgx.Tx, table string) (int, error) {
	var n int
	if err := tx.QueryRow(ctx, "SELECT count(*) FROM "+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n + 1, nil
}

func (s *Store) CreateProject(ctx context.Context, p core.Project) (*core.Project, error) {
	p = p.Clone()
	err := s.withWriteTx(ctx, func(tx pgx.Tx) error {
		n, err := nextSequence(ctx, tx, "projects")
		if err != nil {
			return err
		}
		p.ID = core.SequenceID("PRJ", n)
		return insertProject(ctx, tx, p)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func insertProject(ctx context.Context, tx pgx.Tx, p core.Project) error {
	if _, err := tx.Exec(ctx, `
		INSERT INTO projects (id, name, region, location, budget, status, completion, priority, project_type,
			tower_type, substation_type, line_length, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		p.ID, p.Name, p.Region, p.Location, p.Budget, p.Status, p.Completion, p.Priority, string(p.ProjectType),
		p.TowerType, p.SubstationType, p.LineLength, p.StartDate, p.EndDate,
	); err != nil {
		return fmt.Errorf("failed to insert project %s: %w", p.ID, err)
	}
	return insertRequirements(ctx, tx, p)
}

func insertRequirements(ctx context.Context, tx pgx.Tx, p core.Project) error {
	for i, r := range p.MaterialRequirements {
		if _, err := tx.Exec(ctx, `
			INSERT INTO project_requirements (project_id, position, material_id, quantity, allocated, pending)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			p.ID, i, r.MaterialID, r.Quantity, r.Allocated, r.Pending,
		); err != nil {
			return fmt.Errorf("failed to insert requirement %d of project %s: %w", i, p.ID, err)
		}
	}
	return nil
}

func (s *Store) UpdateProject(ctx context.Context, id string, fn func(*core.Project) error) (*core.Project, error) {
	var out *core.Project
	err := s.withWriteTx(ctx, func(tx pgx.Tx) error {
		p, err := getProject(ctx, tx, id, true)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("project %s: %w", id, core.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to load project %s: %w", id, err)
		}
		if err := fn(p); err != nil {
			return err
		}
		p.ID = id

		if _, err := tx.Exec(ctx, `
			UPDATE projects SET name = $2, region = $3, location = $4, budget = $5, status = $6,
				completion = $7, priority = $8, project_type = $9, tower_type = $10, substation_type = $11,
				line_length = $12, start_date = $13, end_date = $14
			WHERE id = $1`,
			p.ID, p.Name, p.Region, p.Location, p.Budget, p.Status, p.Completion, p.Priority,
			string(p.ProjectType), p.TowerType, p.SubstationType, p.LineLength, p.StartDate, p.EndDate,
		); err != nil {
			return fmt.Errorf("failed to update project %s: %w", id, err)
		}
		if _, err := tx.Exec(ctx, "DELETE FROM project_requirements WHERE project_id = $1", id); err != nil {
			return fmt.Errorf("failed to clear requirements of project %s: %w", id, err)
		}
		if err := insertRequirements(ctx, tx, *p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) RecordForecastBatch(ctx context.Context, batch core.ForecastBatch) (*core.RecordedBatch, error) {
	rec := &core.RecordedBatch{
		ForecastID: batch.ForecastID,
		ProjectID:  batch.ProjectID,
		Entries:    make([]core.ForecastEntry, 0, len(batch.Lines)),
	}
	err := s.withWriteTx(ctx, func(tx pgx.Tx) error {
		if rec.ForecastID == "" {
			n, err := nextSequence(ctx, tx, "forecast_entries")
			if err != nil {
				return err
			}
			rec.ForecastID = core.SequenceID("FC", n)
		}
		if rec.ProjectID == "" {
			n, err := nextSequence(ctx, tx, "projects")
			if err != nil {
				return err
			}
			rec.ProjectID = core.SequenceID("PRJ", n)
		}

		for i, l := range batch.Lines {
			e := core.ForecastEntry{
				ID:            core.ForecastEntryID(rec.ForecastID, i+1),
				ProjectID:     rec.ProjectID,
				MaterialID:    l.MaterialID,
				Month:         batch.Month,
				ForecastedQty: l.Quantity,
				Confidence:    batch.Confidence,
			}
			if err := insertForecastEntry(ctx, tx, e); err != nil {
				return err
			}
			rec.Entries = append(rec.Entries, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func insertForecastEntry(ctx context.Context, tx pgx.Tx, e core.ForecastEntry) error {
	if _, err := tx.Exec(ctx, `
		INSERT INTO forecast_entries (id, project_id, material_id, month, forecasted_qty, actual_qty, confidence, accuracy)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.ProjectID, e.MaterialID, e.Month, e.ForecastedQty, nullDecimal(e.ActualQty), e.Confidence,
		nullDecimal(e.Accuracy),
	); err != nil {
		return fmt.Errorf("failed to insert forecast entry %s: %w", e.ID, err)
	}
	return nil
}

func (s *Store) UpdateForecastEntry(ctx context.Context, id string, fn func(*core.ForecastEntry) error) (*core.ForecastEntry, error) {
	var out *core.ForecastEntry
	err := s.withWriteTx(ctx, func(tx pgx.Tx) error {
		e, err := scanForecastEntry(tx.QueryRow(ctx,
			"SELECT "+forecastColumns+" FROM forecast_entries WHERE id = $1 FOR UPDATE", id))
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("forecast entry %s: %w", id, core.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to load forecast entry %s: %w", id, err)
		}
		if err := fn(&e); err != nil {
			return err
		}
		e.ID = id

		if _, err := tx.Exec(ctx, `
			UPDATE forecast_entries SET project_id = $2, material_id = $3, month = $4, forecasted_qty = $5,
				actual_qty = $6, confidence = $7, accuracy = $8
			WHERE id = $1`,
			e.ID, e.ProjectID, e.MaterialID, e.Month, e.ForecastedQty, nullDecimal(e.ActualQty), e.Confidence,
			nullDecimal(e.Accuracy),
		); err != nil {
			return fmt.Errorf("failed to update forecast entry %s: %w", id, err)
		}
		out = &e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) CreateProcurementOrder(ctx context.Context, o core.ProcurementOrder) (*core.ProcurementOrder, error) {
	o = o.Clone()
	err := s.withWriteTx(ctx, func(tx pgx.Tx) error {
		n, err := nextSequence(ctx, tx, "procurement_orders")
		if err != nil {
			return err
		}
		o.ID = core.SequenceID("PO", n)
		return insertOrder(ctx, tx, o)
	})
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func insertOrder(ctx context.Context, tx pgx.Tx, o core.ProcurementOrder) error {
	if _, err := tx.Exec(ctx, `
		INSERT INTO procurement_orders (id, material_id, supplier_id, quantity, unit_cost, total_cost,
			order_date, expected_date, actual_date, status, project_id, trigger_reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		o.ID, o.MaterialID, o.SupplierID, o.Quantity, o.UnitCost, o.TotalCost,
		o.OrderDate, o.ExpectedDate, o.ActualDate, o.Status, o.ProjectID, o.TriggerReason,
	); err != nil {
		return fmt.Errorf("failed to insert procurement order %s: %w", o.ID, err)
	}
	return nil
}

func (s *Store) UpdateProcurementOrder(ctx context.Context, id string, fn func(*core.ProcurementOrder) error) (*core.ProcurementOrder, error) {
	var out *core.ProcurementOrder
	err := s.withWriteTx(ctx, func(tx pgx.Tx) error {
		o, err := scanOrder(tx.QueryRow(ctx,
			"SELECT "+orderColumns+" FROM procurement_orders WHERE id = $1 FOR UPDATE", id))
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("procurement order %s: %w", id, core.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to load procurement order %s: %w", id, err)
		}
		if err := fn(&o); err != nil {
			return err
		}
		o.ID = id

		if _, err := tx.Exec(ctx, `
			UPDATE procurement_orders SET material_id = $2, supplier_id = $3, quantity = $4, unit_cost = $5,
				total_cost = $6, order_date = $7, expected_date = $8, actual_date = $9, status = $10,
				project_id = $11, trigger_reason = $12
			WHERE id = $1`,
			o.ID, o.MaterialID, o.SupplierID, o.Quantity, o.UnitCost, o.TotalCost,
			o.OrderDate, o.ExpectedDate, o.ActualDate, o.Status, o.ProjectID, o.TriggerReason,
		); err != nil {
			return fmt.Errorf("failed to update procurement order %s: %w", id, err)
		}
		out = &o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
