package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/forge-ai/forge/internal/types"
)

// profileFlags collects the founder profile flags shared by the generation
// commands.
type profileFlags struct {
	experienceYears int
	teamSize        int
	runwayMonths    int
	runwayUnit      string
	techStack       []string
	location        string
	fundingStage    string
}

func (f *profileFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.experienceYears, "experience-years", 0, "Years of relevant experience")
	cmd.Flags().IntVar(&f.teamSize, "team-size", 1, "Current team size")
	cmd.Flags().IntVar(&f.runwayMonths, "runway", 1, "Remaining runway")
	cmd.Flags().StringVar(&f.runwayUnit, "runway-unit", "months", "Runway unit (hours, days, months, years)")
	cmd.Flags().StringSliceVar(&f.techStack, "tech", nil, "Tech stack tags (repeatable or comma-separated)")
	cmd.Flags().StringVar(&f.location, "location", "", "Founder location")
	cmd.Flags().StringVar(&f.fundingStage, "stage", "pre-seed", "Funding stage (pre-seed, seed, pre-series-a, series-a+)")
}

// profile builds a clamped, validated FounderProfile from the flag values.
func (f *profileFlags) profile() (*types.FounderProfile, error) {
	p := types.NewFounderProfile()
	p.SetExperienceYears(f.experienceYears)
	p.SetTeamSize(f.teamSize)
	p.SetRunwayMonths(f.runwayMonths)
	p.RunwayUnit = types.RunwayUnit(f.runwayUnit)
	p.Location = f.location
	if f.fundingStage != "" {
		p.FundingStage = types.FundingStage(f.fundingStage)
	}
	for _, tag := range f.techStack {
		p.AddTechTag(strings.TrimSpace(tag))
	}
	p.Clamp()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// parsePriority validates a --priority flag value.
func parsePriority(value string) (types.Priority, error) {
	switch p := types.Priority(value); p {
	case types.PriorityUrgent, types.PriorityHigh, types.PriorityMedium, types.PriorityLow:
		return p, nil
	default:
		return "", fmt.Errorf("invalid priority %q (want urgent, high, medium, or low)", value)
	}
}
