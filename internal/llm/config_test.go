package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, "gemini-2.5-pro", cfg.GetModel(TierAdvanced))
	assert.Equal(t, "gemini-2.5-flash", cfg.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.GetModel(TierLite))
}

func TestConfig_GetModel_Fallback(t *testing.T) {
	cfg := &Config{
		Provider: ProviderGemini,
		Models:   map[ModelTier]string{TierLite: "gemini-2.5-flash-lite"},
	}
	// Missing tiers fall back through standard to lite.
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.GetModel(TierAdvanced))

	empty := &Config{Provider: ProviderGemini, Models: map[ModelTier]string{}}
	assert.Equal(t, "", empty.GetModel(TierAdvanced))
}

func TestConfig_WithModel(t *testing.T) {
	cfg := DefaultConfig()
	custom := cfg.WithModel(TierAdvanced, "gemini-exp")

	assert.Equal(t, "gemini-exp", custom.GetModel(TierAdvanced))
	assert.Equal(t, "gemini-2.5-pro", cfg.GetModel(TierAdvanced), "original unchanged")
}

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain json", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  {\"a\":1}\n", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJSONBlock(tt.in))
		})
	}
}
