package core_test

import (
	"context"
	"testing"

	"grid-supply/internal/core"
	"grid-supply/internal/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProjectInput() core.ProjectInput {
	return core.ProjectInput{
		Name:        "400kV Line - Jaipur-Ajmer",
		Region:      "North",
		Location:    "Rajasthan",
		Budget:      d("54000000"),
		Priority:    "Medium",
		ProjectType: core.ProjectTypeTower,
		TowerType:   "Type B - 400kV",
		LineLength:  d("130"),
		StartDate:   "2026-01-05",
		EndDate:     "2027-03-31",
		MaterialRequirements: []core.MaterialRequirement{
			{MaterialID: "MAT002", Quantity: d("40"), Allocated: d("10"), Pending: d("30")},
		},
	}
}

func TestCreateProject(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewSeeded()
	svc := core.NewProjectService(store, nil)

	p, err := svc.CreateProject(ctx, validProjectInput())
	require.NoError(t, err)
	assert.Equal(t, "PRJ005", p.ID)
	assert.Equal(t, core.ProjectPlanning, p.Status)
	assert.True(t, p.Completion.IsZero())

	p2, err := svc.CreateProject(ctx, validProjectInput())
	require.NoError(t, err)
	assert.Equal(t, "PRJ006", p2.ID)

	stored, err := store.Project(ctx, "PRJ005")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Rajasthan", stored.Location)
}

func TestCreateProjectValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*core.ProjectInput)
	}{
		{name: "missing name", mutate: func(in *core.ProjectInput) { in.Name = " " }},
		{name: "unknown type", mutate: func(in *core.ProjectInput) { in.ProjectType = "Pipeline" }},
		{name: "negative budget", mutate: func(in *core.ProjectInput) { in.Budget = d("-1") }},
		{name: "malformed start date", mutate: func(in *core.ProjectInput) { in.StartDate = "not-a-date" }},
		{name: "missing end date", mutate: func(in *core.ProjectInput) { in.EndDate = "" }},
		{name: "end before start", mutate: func(in *core.ProjectInput) { in.EndDate = "2025-12-31" }},
		{
			name: "allocated plus pending differs from quantity",
			mutate: func(in *core.ProjectInput) {
				in.MaterialRequirements[0].Pending = d("29")
			},
		},
		{
			name: "negative requirement",
			mutate: func(in *core.ProjectInput) {
				in.MaterialRequirements[0] = core.MaterialRequirement{MaterialID: "MAT002", Quantity: d("0"), Allocated: d("-5"), Pending: d("5")}
			},
		},
		{
			name: "requirement without material",
			mutate: func(in *core.ProjectInput) {
				in.MaterialRequirements[0].MaterialID = ""
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memstore.NewSeeded()
			svc := core.NewProjectService(store, nil)
			in := validProjectInput()
			tt.mutate(&in)

			_, err := svc.CreateProject(context.Background(), in)
			assert.ErrorIs(t, err, core.ErrValidation)

			projects, err := store.Projects(context.Background())
			require.NoError(t, err)
			assert.Len(t, projects, 4)
		})
	}
}

func TestUpdateProject(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewSeeded()
	svc := core.NewProjectService(store, nil)

	status := core.ProjectCompleted
	completion := d("100")
	p, err := svc.UpdateProject(ctx, "PRJ004", core.ProjectPatch{Status: &status, Completion: &completion})
	require.NoError(t, err)
	assert.Equal(t, core.ProjectCompleted, p.Status)
	assertDecimal(t, "100", p.Completion)
	assert.Equal(t, "765kV HVDC Link - Chennai-Hyderabad", p.Name, "untouched fields survive")
	assert.Len(t, p.MaterialRequirements, 5)

	reqs := []core.MaterialRequirement{{MaterialID: "MAT001", Quantity: d("75"), Allocated: d("75"), Pending: d("0")}}
	p, err = svc.UpdateProject(ctx, "PRJ004", core.ProjectPatch{MaterialRequirements: reqs})
	require.NoError(t, err)
	assert.Len(t, p.MaterialRequirements, 1)

	_, err = svc.UpdateProject(ctx, "PRJ404", core.ProjectPatch{Status: &status})
	assert.ErrorIs(t, err, core.ErrNotFound)

	bad := "Abandoned"
	_, err = svc.UpdateProject(ctx, "PRJ001", core.ProjectPatch{Status: &bad})
	assert.ErrorIs(t, err, core.ErrValidation)

	over := d("120")
	_, err = svc.UpdateProject(ctx, "PRJ001", core.ProjectPatch{Completion: &over})
	assert.ErrorIs(t, err, core.ErrValidation)

	badDate := "31/12/2026"
	_, err = svc.UpdateProject(ctx, "PRJ001", core.ProjectPatch{EndDate: &badDate})
	assert.ErrorIs(t, err, core.ErrValidation)

	early := "2000-01-01"
	_, err = svc.UpdateProject(ctx, "PRJ001", core.ProjectPatch{EndDate: &early})
	assert.ErrorIs(t, err, core.ErrValidation)
	unchanged, err := store.Project(ctx, "PRJ001")
	require.NoError(t, err)
	assert.NotEqual(t, early, unchanged.EndDate)

	broken := []core.MaterialRequirement{{MaterialID: "MAT001", Quantity: d("10"), Allocated: d("1"), Pending: d("1")}}
	_, err = svc.UpdateProject(ctx, "PRJ001", core.ProjectPatch{MaterialRequirements: broken})
	assert.ErrorIs(t, err, core.ErrValidation)
}
