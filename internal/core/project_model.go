package core

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Project statuses.
const (
	ProjectPlanning   = "Planning"
	ProjectInProgress = "In Progress"
	ProjectCompleted  = "Completed"
)

// ProjectType selects which heuristic rules apply when forecasting material demand.
type ProjectType string

const (
	ProjectTypeTower      ProjectType = "Tower"
	ProjectTypeSubstation ProjectType = "Substation"
	ProjectTypeBoth       ProjectType = "Both"
)

// IncludesTower reports whether transmission-line (tower) materials are needed.
func (t ProjectType) IncludesTower() bool {
	return t == ProjectTypeTower || t == ProjectTypeBoth
}

// IncludesSubstation reports whether substation equipment is needed.
func (t ProjectType) IncludesSubstation() bool {
	return t == ProjectTypeSubstation || t == ProjectTypeBoth
}

// MaterialRequirement is one line of a project's bill of materials.
// Allocated + Pending must equal Quantity.
type MaterialRequirement struct {
	MaterialID string          `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Allocated  decimal.Decimal `json:"allocated"`
	Pending    decimal.Decimal `json:"pending"`
}

// Project is a grid construction project with its material requirements.
type Project struct {
	ID                   string                `json:"id"`
	Name                 string                `json:"name"`
	Region               string                `json:"region"`
	Location             string                `json:"location"`
	Budget               decimal.Decimal       `json:"budget"`
	Status               string                `json:"status"`
	Completion           decimal.Decimal       `json:"completion"`
	Priority             string                `json:"priority"`
	ProjectType          ProjectType           `json:"project_type"`
	TowerType            string                `json:"tower_type,omitempty"`
	SubstationType       string                `json:"substation_type,omitempty"`
	LineLength           decimal.Decimal       `json:"line_length"`
	StartDate            string                `json:"start_date"` // YYYY-MM-DD
	EndDate              string                `json:"end_date"`   // YYYY-MM-DD
	MaterialRequirements []MaterialRequirement `json:"material_requirements"`
}

// Clone returns a copy of p that shares no slices with it.
func (p Project) Clone() Project {
	out := p
	if p.MaterialRequirements != nil {
		out.MaterialRequirements = append([]MaterialRequirement(nil), p.MaterialRequirements...)
	}
	return out
}

// ProjectInput holds the fields required to create a project.
// Status and Completion are not accepted: new projects always start in Planning at 0%.
type ProjectInput struct {
	Name                 string
	Region               string
	Location             string
	Budget               decimal.Decimal
	Priority             string
	ProjectType          ProjectType
	TowerType            string
	SubstationType       string
	LineLength           decimal.Decimal
	StartDate            string
	EndDate              string
	MaterialRequirements []MaterialRequirement
}

// ProjectPatch carries a partial project update. Nil fields are left untouched.
type ProjectPatch struct {
	Name                 *string
	Region               *string
	Location             *string
	Budget               *decimal.Decimal
	Status               *string
	Completion           *decimal.Decimal
	Priority             *string
	LineLength           *decimal.Decimal
	StartDate            *string
	EndDate              *string
	MaterialRequirements []MaterialRequirement // nil = unchanged
}

// apply merges the patch into p.
func (pp ProjectPatch) apply(p *Project) {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Region != nil {
		p.Region = *pp.Region
	}
	if pp.Location != nil {
		p.Location = *pp.Location
	}
	if pp.Budget != nil {
		p.Budget = *pp.Budget
	}
	if pp.Status != nil {
		p.Status = *pp.Status
	}
	if pp.Completion != nil {
		p.Completion = *pp.Completion
	}
	if pp.Priority != nil {
		p.Priority = *pp.Priority
	}
	if pp.LineLength != nil {
		p.LineLength = *pp.LineLength
	}
	if pp.StartDate != nil {
		p.StartDate = *pp.StartDate
	}
	if pp.EndDate != nil {
		p.EndDate = *pp.EndDate
	}
	if pp.MaterialRequirements != nil {
		p.MaterialRequirements = append([]MaterialRequirement(nil), pp.MaterialRequirements...)
	}
}

// ValidateRequirements checks that every requirement is non-negative and that
// allocated plus pending equals the required quantity.
func ValidateRequirements(reqs []MaterialRequirement) error {
	for i, r := range reqs {
		if r.MaterialID == "" {
			return fmt.Errorf("%w: requirement %d: material_id is required", ErrValidation, i+1)
		}
		if r.Quantity.IsNegative() || r.Allocated.IsNegative() || r.Pending.IsNegative() {
			return fmt.Errorf("%w: requirement %d (%s): quantities cannot be negative", ErrValidation, i+1, r.MaterialID)
		}
		if !r.Allocated.Add(r.Pending).Equal(r.Quantity) {
			return fmt.Errorf("%w: requirement %d (%s): allocated %s + pending %s != quantity %s",
				ErrValidation, i+1, r.MaterialID, r.Allocated, r.Pending, r.Quantity)
		}
	}
	return nil
}

func validProjectStatus(s string) bool {
	switch s {
	case ProjectPlanning, ProjectInProgress, ProjectCompleted:
		return true
	}
	return false
}

// ProjectSummary is a project plus its computed fulfillment percentage.
type ProjectSummary struct {
	Project
	Fulfillment decimal.Decimal `json:"fulfillment"`
}

// RequirementView is a requirement joined with material master data.
type RequirementView struct {
	MaterialRequirement
	MaterialName string `json:"material_name,omitempty"`
	Unit         string `json:"unit,omitempty"`
}

// ProjectDetail is the single-project read view.
type ProjectDetail struct {
	ProjectSummary
	Materials []RequirementView `json:"materials"`
}
