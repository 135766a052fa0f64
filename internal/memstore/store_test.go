package memstore_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"grid-supply/internal/core"
	"grid-supply/internal/memstore"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeededCollections(t *testing.T) {
	ctx := context.Background()
	s := memstore.NewSeeded()

	materials, err := s.Materials(ctx)
	require.NoError(t, err)
	assert.Len(t, materials, 14)

	suppliers, err := s.Suppliers(ctx)
	require.NoError(t, err)
	assert.Len(t, suppliers, 6)

	entries, err := s.ForecastEntries(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 8)

	orders, err := s.ProcurementOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 5)

	m, err := s.Material(ctx, "MAT404")
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestReadsReturnCopies(t *testing.T) {
	ctx := context.Background()
	s := memstore.NewSeeded()

	p, err := s.Project(ctx, "PRJ001")
	require.NoError(t, err)
	p.Name = "changed"
	p.MaterialRequirements[0].Allocated = decimal.NewFromInt(999)

	again, err := s.Project(ctx, "PRJ001")
	require.NoError(t, err)
	assert.Equal(t, "765kV Transmission Line - Mumbai-Pune", again.Name)
	assert.True(t, again.MaterialRequirements[0].Allocated.Equal(decimal.NewFromInt(30)))
}

func TestRecordForecastBatchAllocatesIDs(t *testing.T) {
	ctx := context.Background()
	s := memstore.NewSeeded()

	rec, err := s.RecordForecastBatch(ctx, core.ForecastBatch{
		Month:      "2025-11",
		Confidence: decimal.NewFromInt(94),
		Lines: []core.BatchLine{
			{MaterialID: "MAT001", Quantity: decimal.NewFromInt(100)},
			{MaterialID: "MAT004", Quantity: decimal.NewFromInt(300000)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "FC009", rec.ForecastID)
	assert.Equal(t, "PRJ005", rec.ProjectID)
	require.Len(t, rec.Entries, 2)
	assert.Equal(t, "FC009-1", rec.Entries[0].ID)
	assert.Equal(t, "FC009-2", rec.Entries[1].ID)
	assert.Nil(t, rec.Entries[0].ActualQty)

	entries, err := s.ForecastEntries(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 10)

	// Remote IDs are kept as given.
	rec, err = s.RecordForecastBatch(ctx, core.ForecastBatch{ForecastID: "ext-42", ProjectID: "PRJ002", Month: "2025-11"})
	require.NoError(t, err)
	assert.Equal(t, "ext-42", rec.ForecastID)
	assert.Equal(t, "PRJ002", rec.ProjectID)
	assert.Empty(t, rec.Entries)
}

func TestUpdateMissingRecords(t *testing.T) {
	ctx := context.Background()
	s := memstore.NewSeeded()
	noop := func(*core.Project) error { return nil }

	_, err := s.UpdateProject(ctx, "PRJ999", noop)
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = s.UpdateForecastEntry(ctx, "FC999", func(*core.ForecastEntry) error { return nil })
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = s.UpdateProcurementOrder(ctx, "PO999", func(*core.ProcurementOrder) error { return nil })
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestUpdateCallbackErrorLeavesRecordUntouched(t *testing.T) {
	ctx := context.Background()
	s := memstore.NewSeeded()
	boom := fmt.Errorf("boom")

	_, err := s.UpdateProject(ctx, "PRJ001", func(p *core.Project) error {
		p.Name = "half-applied"
		return boom
	})
	require.ErrorIs(t, err, boom)

	p, err := s.Project(ctx, "PRJ001")
	require.NoError(t, err)
	assert.NotEqual(t, "half-applied", p.Name)
}

func TestConcurrentCreatesNeverReuseIDs(t *testing.T) {
	ctx := context.Background()
	s := memstore.NewSeeded()

	const n = 50
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			o, err := s.CreateProcurementOrder(ctx, core.ProcurementOrder{MaterialID: "MAT001", Status: core.OrderPending})
			if err == nil {
				ids <- o.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
	assert.True(t, seen["PO006"])
	assert.True(t, seen[core.SequenceID("PO", 5+n)])
}
