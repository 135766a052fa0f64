package core

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ProcurementService places procurement orders and moves them through their lifecycle.
type ProcurementService interface {
	// CreateOrder places a Pending order dated today. The material and supplier must exist.
	CreateOrder(ctx context.Context, input ProcurementOrderInput) (*ProcurementOrder, error)
	// AdvanceOrder moves an order forward to status. Delivered stamps the actual date.
	AdvanceOrder(ctx context.Context, id, status string) (*ProcurementOrder, error)
}

type procurementService struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

func NewProcurementService(store Store, logger *zap.Logger, now func() time.Time) ProcurementService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &procurementService{store: store, logger: logger, now: now}
}

func (s *procurementService) CreateOrder(ctx context.Context, input ProcurementOrderInput) (*ProcurementOrder, error) {
	if !input.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	if input.UnitCost != nil && input.UnitCost.IsNegative() {
		return nil, fmt.Errorf("%w: unit_cost cannot be negative", ErrValidation)
	}
	if input.ExpectedDate != "" {
		if _, err := time.Parse(time.DateOnly, input.ExpectedDate); err != nil {
			return nil, fmt.Errorf("%w: expected_date must be YYYY-MM-DD", ErrValidation)
		}
	}

	material, err := s.store.Material(ctx, input.MaterialID)
	if err != nil {
		return nil, fmt.Errorf("failed to load material %s: %w", input.MaterialID, err)
	}
	if material == nil {
		return nil, fmt.Errorf("material %s: %w", input.MaterialID, ErrNotFound)
	}
	supplierID := input.SupplierID
	if supplierID == "" {
		supplierID = material.SupplierID
	}
	supplier, err := s.store.Supplier(ctx, supplierID)
	if err != nil {
		return nil, fmt.Errorf("failed to load supplier %s: %w", supplierID, err)
	}
	if supplier == nil {
		return nil, fmt.Errorf("supplier %s: %w", supplierID, ErrNotFound)
	}

	unitCost := material.CostPerUnit
	if input.UnitCost != nil {
		unitCost = *input.UnitCost
	}
	today := s.now()
	expected := input.ExpectedDate
	if expected == "" {
		expected = today.AddDate(0, 0, material.LeadTimeDays).Format(time.DateOnly)
	}

	order, err := s.store.CreateProcurementOrder(ctx, ProcurementOrder{
		MaterialID:    material.ID,
		SupplierID:    supplier.ID,
		Quantity:      input.Quantity,
		UnitCost:      unitCost,
		TotalCost:     input.Quantity.Mul(unitCost),
		OrderDate:     today.Format(time.DateOnly),
		ExpectedDate:  expected,
		Status:        OrderPending,
		ProjectID:     input.ProjectID,
		TriggerReason: input.TriggerReason,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create procurement order: %w", err)
	}
	s.logger.Info("procurement order created",
		zap.String("order_id", order.ID),
		zap.String("material_id", order.MaterialID),
		zap.String("total_cost", order.TotalCost.String()),
	)
	return order, nil
}

func (s *procurementService) AdvanceOrder(ctx context.Context, id, status string) (*ProcurementOrder, error) {
	if _, ok := orderStatusRank[status]; !ok {
		return nil, fmt.Errorf("%w: unknown order status %q", ErrValidation, status)
	}
	order, err := s.store.UpdateProcurementOrder(ctx, id, func(o *ProcurementOrder) error {
		if err := CheckOrderTransition(o.Status, status); err != nil {
			return err
		}
		o.Status = status
		if status == OrderDelivered {
			d := s.now().Format(time.DateOnly)
			o.ActualDate = &d
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to advance procurement order %s: %w", id, err)
	}
	s.logger.Info("procurement order advanced", zap.String("order_id", order.ID), zap.String("status", order.Status))
	return order, nil
}
