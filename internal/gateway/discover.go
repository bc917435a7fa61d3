package gateway

import (
	"context"

	"github.com/forge-ai/forge/internal/llm"
	"github.com/forge-ai/forge/internal/prompts"
	"github.com/forge-ai/forge/internal/schemas"
	"github.com/forge-ai/forge/internal/types"
)

const opDiscover = "scan the sector"

// Discover scans a sector for problems viable for the given founder. The
// result never carries more than types.MaxDiscoveredProblems entries; an
// over-producing model is truncated, not failed.
func (g *Gateway) Discover(ctx context.Context, sector string, profile types.FounderProfile) (*types.DiscoveryResult, error) {
	pj, err := profileJSON(profile)
	if err != nil {
		return nil, err
	}

	system := prompts.Format(prompts.MustGet(promptFile, "discover-system"), map[string]string{
		"Profile": pj,
	})
	user := prompts.Format(prompts.MustGet(promptFile, "discover-user"), map[string]string{
		"Sector": sector,
	})

	raw, err := g.client.GenerateStructured(ctx, system, user, discoverySchema(), llm.TierStandard)
	if err != nil {
		return nil, classify(opDiscover, err)
	}

	var result types.DiscoveryResult
	if err := decode(opDiscover, schemas.Discovery, []byte(raw), &result); err != nil {
		return nil, err
	}
	result.Truncate()
	return &result, nil
}
