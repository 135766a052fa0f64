package core_test

import (
	"context"
	"testing"

	"grid-supply/internal/core"
	"grid-supply/internal/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProcurementOrder(t *testing.T) {
	ctx := context.Background()
	svc := core.NewProcurementService(memstore.NewSeeded(), nil, fixedNow)

	o, err := svc.CreateOrder(ctx, core.ProcurementOrderInput{
		MaterialID:    "MAT012",
		SupplierID:    "SUP006",
		Quantity:      d("2800"),
		ProjectID:     "PRJ004",
		TriggerReason: "Shortfall",
	})
	require.NoError(t, err)
	assert.Equal(t, "PO006", o.ID)
	assert.Equal(t, core.OrderPending, o.Status)
	assert.Equal(t, "2025-11-28", o.OrderDate)
	assert.Equal(t, "2025-12-13", o.ExpectedDate) // 15 day lead time
	assertDecimal(t, "850", o.UnitCost)
	assertDecimal(t, "2380000", o.TotalCost)
	assert.Nil(t, o.ActualDate)

	custom := d("800")
	o, err = svc.CreateOrder(ctx, core.ProcurementOrderInput{
		MaterialID:   "MAT012",
		SupplierID:   "SUP006",
		Quantity:     d("10"),
		UnitCost:     &custom,
		ExpectedDate: "2026-01-15",
	})
	require.NoError(t, err)
	assert.Equal(t, "PO007", o.ID)
	assert.Equal(t, "2026-01-15", o.ExpectedDate)
	assertDecimal(t, "8000", o.TotalCost)
}

func TestCreateProcurementOrderDefaultsSupplier(t *testing.T) {
	svc := core.NewProcurementService(memstore.NewSeeded(), nil, fixedNow)

	o, err := svc.CreateOrder(context.Background(), core.ProcurementOrderInput{MaterialID: "MAT001", Quantity: d("5")})
	require.NoError(t, err)
	assert.Equal(t, "SUP001", o.SupplierID)
	assertDecimal(t, "4250000", o.TotalCost)
	assert.Equal(t, "2026-01-12", o.ExpectedDate) // 45 day lead time
}

func TestCreateProcurementOrderRejects(t *testing.T) {
	ctx := context.Background()
	svc := core.NewProcurementService(memstore.NewSeeded(), nil, fixedNow)
	negative := d("-1")

	tests := []struct {
		name  string
		input core.ProcurementOrderInput
		want  error
	}{
		{name: "zero quantity", input: core.ProcurementOrderInput{MaterialID: "MAT001", SupplierID: "SUP001", Quantity: d("0")}, want: core.ErrValidation},
		{name: "negative cost", input: core.ProcurementOrderInput{MaterialID: "MAT001", SupplierID: "SUP001", Quantity: d("1"), UnitCost: &negative}, want: core.ErrValidation},
		{name: "bad date", input: core.ProcurementOrderInput{MaterialID: "MAT001", SupplierID: "SUP001", Quantity: d("1"), ExpectedDate: "30/12/2025"}, want: core.ErrValidation},
		{name: "unknown material", input: core.ProcurementOrderInput{MaterialID: "MAT404", SupplierID: "SUP001", Quantity: d("1")}, want: core.ErrNotFound},
		{name: "unknown supplier", input: core.ProcurementOrderInput{MaterialID: "MAT001", SupplierID: "SUP404", Quantity: d("1")}, want: core.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateOrder(ctx, tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCheckOrderTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     error
	}{
		{core.OrderPending, core.OrderApproved, nil},
		{core.OrderPending, core.OrderDelivered, nil},
		{core.OrderApproved, core.OrderInTransit, nil},
		{core.OrderInTransit, core.OrderDelivered, nil},
		{core.OrderApproved, core.OrderPending, core.ErrInvalidTransition},
		{core.OrderDelivered, core.OrderInTransit, core.ErrInvalidTransition},
		{core.OrderPending, core.OrderPending, core.ErrInvalidTransition},
		{core.OrderPending, "Cancelled", core.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			err := core.CheckOrderTransition(tt.from, tt.to)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAdvanceOrder(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewSeeded()
	svc := core.NewProcurementService(store, nil, fixedNow)

	o, err := svc.AdvanceOrder(ctx, "PO005", core.OrderInTransit)
	require.NoError(t, err)
	assert.Equal(t, core.OrderInTransit, o.Status)
	assert.Nil(t, o.ActualDate)

	o, err = svc.AdvanceOrder(ctx, "PO005", core.OrderDelivered)
	require.NoError(t, err)
	require.NotNil(t, o.ActualDate)
	assert.Equal(t, "2025-11-28", *o.ActualDate)

	_, err = svc.AdvanceOrder(ctx, "PO005", core.OrderApproved)
	assert.ErrorIs(t, err, core.ErrInvalidTransition)

	_, err = svc.AdvanceOrder(ctx, "PO404", core.OrderApproved)
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = svc.AdvanceOrder(ctx, "PO001", "Lost")
	assert.ErrorIs(t, err, core.ErrValidation)

	orders, err := store.ProcurementOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.OrderDelivered, orders[4].Status)
}
