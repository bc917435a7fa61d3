package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/forge-ai/forge/internal/llm"
	"github.com/forge-ai/forge/internal/prompts"
	"github.com/forge-ai/forge/internal/types"
)

const opChat = "get a response"

// Chat sends a free-text question with prior turns inlined into the system
// instruction. No response schema applies; the reply is plain text.
func (g *Gateway) Chat(ctx context.Context, message string, history []types.Message) (string, error) {
	system := prompts.Format(prompts.MustGet(promptFile, "chat-system"), map[string]string{
		"History": formatHistory(history),
	})

	reply, err := g.client.GenerateContent(ctx, system, message, llm.TierLite)
	if err != nil {
		return "", classify(opChat, err)
	}
	return strings.TrimSpace(reply), nil
}

// formatHistory renders prior turns one per line, role-prefixed, for prompt
// interpolation.
func formatHistory(history []types.Message) string {
	if len(history) == 0 {
		return "(no prior messages)"
	}
	var sb strings.Builder
	for _, msg := range history {
		fmt.Fprintf(&sb, "%s: %s\n", msg.Role, msg.Content)
	}
	return strings.TrimRight(sb.String(), "\n")
}
