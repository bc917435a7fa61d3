// Package gateway is the single entry point to the generation API. It builds
// prompts from embedded templates, requests schema-constrained JSON, verifies
// every upstream payload against the embedded JSON Schemas, and decodes into
// typed results. Callers never see raw model output.
package gateway

import (
	"encoding/json"
	"fmt"

	"github.com/forge-ai/forge/internal/llm"
	"github.com/forge-ai/forge/internal/types"
)

// promptFile is the embedded template file holding every gateway prompt.
const promptFile = "forge.json"

// Gateway wraps an LLM client with the four generation operations. It is
// stateless and safe for concurrent use; all session state lives in the
// orchestrator.
type Gateway struct {
	client llm.Client
}

// New creates a gateway backed by the given LLM client.
func New(client llm.Client) *Gateway {
	return &Gateway{client: client}
}

// profileJSON serializes a profile snapshot for prompt interpolation.
func profileJSON(profile types.FounderProfile) (string, error) {
	data, err := json.Marshal(profile)
	if err != nil {
		return "", fmt.Errorf("failed to serialize founder profile: %w", err)
	}
	return string(data), nil
}
