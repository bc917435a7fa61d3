// Package types provides type definitions for structured data used throughout the forge system.
package types

import "fmt"

// FundingStage is the founder's current funding round.
type FundingStage string

// Funding stage values accepted by the profile form and the generation schemas.
const (
	StagePreSeed    FundingStage = "pre-seed"
	StageSeed       FundingStage = "seed"
	StagePreSeriesA FundingStage = "pre-series-a"
	StageSeriesAUp  FundingStage = "series-a+"
)

// RunwayUnit qualifies the runway figure. Months is the historical default
// and the unit every generation prompt assumes.
type RunwayUnit string

// Runway units.
const (
	RunwayHours  RunwayUnit = "hours"
	RunwayDays   RunwayUnit = "days"
	RunwayMonths RunwayUnit = "months"
	RunwayYears  RunwayUnit = "years"
)

// FounderProfile is the structured context about the requesting founder.
// It is created once with zero values, mutated by the profile form, and read
// (never mutated) by every downstream generation request.
type FounderProfile struct {
	ExperienceYears int          `json:"experience_years" validate:"min=0"`
	TeamSize        int          `json:"team_size" validate:"min=1"`
	RunwayMonths    int          `json:"runway_months" validate:"min=1"`
	RunwayUnit      RunwayUnit   `json:"runway_unit,omitempty"`
	TechStack       []string     `json:"tech_stack"`
	Location        string       `json:"location"`
	FundingStage    FundingStage `json:"funding_stage"`
}

// NewFounderProfile returns a profile with form defaults. Team size and
// runway start at their minimums rather than zero so a freshly created
// profile is already valid.
func NewFounderProfile() *FounderProfile {
	return &FounderProfile{
		ExperienceYears: 0,
		TeamSize:        1,
		RunwayMonths:    1,
		RunwayUnit:      RunwayMonths,
		TechStack:       []string{},
		FundingStage:    StagePreSeed,
	}
}

// Clamp forces numeric fields up to their minimums and defaults the runway
// unit. Invalid form input never produces a profile below the floor.
func (p *FounderProfile) Clamp() {
	if p.ExperienceYears < 0 {
		p.ExperienceYears = 0
	}
	if p.TeamSize < 1 {
		p.TeamSize = 1
	}
	if p.RunwayMonths < 1 {
		p.RunwayMonths = 1
	}
	if p.RunwayUnit == "" {
		p.RunwayUnit = RunwayMonths
	}
}

// SetExperienceYears writes the experience field, clamping to zero.
func (p *FounderProfile) SetExperienceYears(v int) {
	if v < 0 {
		v = 0
	}
	p.ExperienceYears = v
}

// SetTeamSize writes the team size, clamping to one.
func (p *FounderProfile) SetTeamSize(v int) {
	if v < 1 {
		v = 1
	}
	p.TeamSize = v
}

// SetRunwayMonths writes the runway figure, clamping to one.
func (p *FounderProfile) SetRunwayMonths(v int) {
	if v < 1 {
		v = 1
	}
	p.RunwayMonths = v
}

// AddTechTag appends a tag to the stack, preserving insertion order and
// rejecting duplicates and empty strings.
func (p *FounderProfile) AddTechTag(tag string) bool {
	if tag == "" {
		return false
	}
	for _, existing := range p.TechStack {
		if existing == tag {
			return false
		}
	}
	p.TechStack = append(p.TechStack, tag)
	return true
}

// RemoveTechTag removes the tag at the given index, preserving the order of
// the remaining tags.
func (p *FounderProfile) RemoveTechTag(index int) {
	if index < 0 || index >= len(p.TechStack) {
		return
	}
	p.TechStack = append(p.TechStack[:index], p.TechStack[index+1:]...)
}

// Snapshot returns a deep copy for embedding into generated artifacts, so
// later form edits cannot mutate a result that already shipped.
func (p *FounderProfile) Snapshot() FounderProfile {
	out := *p
	out.TechStack = make([]string, len(p.TechStack))
	copy(out.TechStack, p.TechStack)
	return out
}

// Validate checks enum fields; numeric fields are handled by Clamp.
func (p *FounderProfile) Validate() error {
	switch p.FundingStage {
	case StagePreSeed, StageSeed, StagePreSeriesA, StageSeriesAUp:
	default:
		return fmt.Errorf("invalid funding stage: %q", p.FundingStage)
	}
	switch p.RunwayUnit {
	case "", RunwayHours, RunwayDays, RunwayMonths, RunwayYears:
	default:
		return fmt.Errorf("invalid runway unit: %q", p.RunwayUnit)
	}
	return nil
}
