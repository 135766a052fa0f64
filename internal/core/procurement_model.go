package core

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Procurement order statuses, in lifecycle order.
const (
	OrderPending   = "Pending"
	OrderApproved  = "Approved"
	OrderInTransit = "In Transit"
	OrderDelivered = "Delivered"
)

var orderStatusRank = map[string]int{
	OrderPending:   0,
	OrderApproved:  1,
	OrderInTransit: 2,
	OrderDelivered: 3,
}

// ProcurementOrder is a purchase of a material from a supplier.
type ProcurementOrder struct {
	ID            string          `json:"id"`
	MaterialID    string          `json:"material_id"`
	SupplierID    string          `json:"supplier_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	OrderDate     string          `json:"order_date"`    // YYYY-MM-DD
	ExpectedDate  string          `json:"expected_date"` // YYYY-MM-DD
	ActualDate    *string         `json:"actual_date"`
	Status        string          `json:"status"`
	ProjectID     string          `json:"project_id,omitempty"`
	TriggerReason string          `json:"trigger_reason,omitempty"`
}

// Clone returns a copy of o that shares no pointers with it.
func (o ProcurementOrder) Clone() ProcurementOrder {
	out := o
	if o.ActualDate != nil {
		v := *o.ActualDate
		out.ActualDate = &v
	}
	return out
}

// Open reports whether the order still awaits shipment (Pending or Approved).
func (o ProcurementOrder) Open() bool {
	return o.Status == OrderPending || o.Status == OrderApproved
}

// CheckOrderTransition validates a forward-only status change.
func CheckOrderTransition(from, to string) error {
	toRank, ok := orderStatusRank[to]
	if !ok {
		return fmt.Errorf("%w: unknown order status %q", ErrValidation, to)
	}
	fromRank, ok := orderStatusRank[from]
	if !ok {
		return fmt.Errorf("%w: order has unknown status %q", ErrInvalidTransition, from)
	}
	if toRank <= fromRank {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// ProcurementOrderInput holds the fields required to place a procurement order.
type ProcurementOrderInput struct {
	MaterialID    string
	SupplierID    string
	Quantity      decimal.Decimal
	UnitCost      *decimal.Decimal // defaults to the material's cost per unit
	ExpectedDate  string
	ProjectID     string
	TriggerReason string
}

// ProcurementOrderView is an order joined with material and supplier names.
type ProcurementOrderView struct {
	ProcurementOrder
	MaterialName string `json:"material_name,omitempty"`
	SupplierName string `json:"supplier_name,omitempty"`
}
