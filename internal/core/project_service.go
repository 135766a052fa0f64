package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProjectService creates and updates projects. Reads go through DerivationService.
type ProjectService interface {
	// CreateProject stores a new project in Planning status with 0% completion.
	CreateProject(ctx context.Context, input ProjectInput) (*Project, error)
	// UpdateProject merges the non-nil patch fields into an existing project.
	UpdateProject(ctx context.Context, id string, patch ProjectPatch) (*Project, error)
}

type projectService struct {
	store  Store
	logger *zap.Logger
}

func NewProjectService(store Store, logger *zap.Logger) ProjectService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &projectService{store: store, logger: logger}
}

func (s *projectService) CreateProject(ctx context.Context, input ProjectInput) (*Project, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	switch input.ProjectType {
	case ProjectTypeTower, ProjectTypeSubstation, ProjectTypeBoth:
	default:
		return nil, fmt.Errorf("%w: project_type must be Tower, Substation or Both", ErrValidation)
	}
	if input.Budget.IsNegative() || input.LineLength.IsNegative() {
		return nil, fmt.Errorf("%w: budget and line_length cannot be negative", ErrValidation)
	}
	if err := validateProjectDates(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}
	if err := ValidateRequirements(input.MaterialRequirements); err != nil {
		return nil, err
	}

	p := Project{
		Name:                 input.Name,
		Region:               input.Region,
		Location:             input.Location,
		Budget:               input.Budget,
		Status:               ProjectPlanning,
		Completion:           decimal.Zero,
		Priority:             input.Priority,
		ProjectType:          input.ProjectType,
		TowerType:            input.TowerType,
		SubstationType:       input.SubstationType,
		LineLength:           input.LineLength,
		StartDate:            input.StartDate,
		EndDate:              input.EndDate,
		MaterialRequirements: append([]MaterialRequirement{}, input.MaterialRequirements...),
	}
	created, err := s.store.CreateProject(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	s.logger.Info("project created", zap.String("project_id", created.ID), zap.String("name", created.Name))
	return created, nil
}

func (s *projectService) UpdateProject(ctx context.Context, id string, patch ProjectPatch) (*Project, error) {
	if patch.Status != nil && !validProjectStatus(*patch.Status) {
		return nil, fmt.Errorf("%w: unknown project status %q", ErrValidation, *patch.Status)
	}
	if patch.Completion != nil && (patch.Completion.IsNegative() || patch.Completion.GreaterThan(hundred)) {
		return nil, fmt.Errorf("%w: completion must be between 0 and 100", ErrValidation)
	}
	if patch.MaterialRequirements != nil {
		if err := ValidateRequirements(patch.MaterialRequirements); err != nil {
			return nil, err
		}
	}
	for field, v := range map[string]*string{"start_date": patch.StartDate, "end_date": patch.EndDate} {
		if v != nil {
			if _, err := time.Parse(time.DateOnly, *v); err != nil {
				return nil, fmt.Errorf("%w: %s must be YYYY-MM-DD", ErrValidation, field)
			}
		}
	}

	updated, err := s.store.UpdateProject(ctx, id, func(p *Project) error {
		patch.apply(p)
		return validateProjectDates(p.StartDate, p.EndDate)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update project %s: %w", id, err)
	}
	s.logger.Info("project updated", zap.String("project_id", updated.ID))
	return updated, nil
}

// validateProjectDates requires both dates as YYYY-MM-DD with the end not before the start.
func validateProjectDates(start, end string) error {
	s, err := time.Parse(time.DateOnly, start)
	if err != nil {
		return fmt.Errorf("%w: start_date must be YYYY-MM-DD", ErrValidation)
	}
	e, err := time.Parse(time.DateOnly, end)
	if err != nil {
		return fmt.Errorf("%w: end_date must be YYYY-MM-DD", ErrValidation)
	}
	if e.Before(s) {
		return fmt.Errorf("%w: end_date cannot be before start_date", ErrValidation)
	}
	return nil
}
