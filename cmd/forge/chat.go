package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/forge-ai/forge/internal/apiclient"
	"github.com/forge-ai/forge/internal/config"
	"github.com/forge-ai/forge/internal/conversation"
	"github.com/forge-ai/forge/internal/gateway"
	"github.com/forge-ai/forge/internal/llm"
	"github.com/forge-ai/forge/internal/types"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the co-pilot in a terminal REPL",
	Long: `Starts an interactive chat session over the conversation store.

With FORGE_API_URL and FORGE_TOKEN set, messages are written through the
backend and the session survives across machines. Without them, or when the
backend reports its database unavailable, the session is local-only.

Commands inside the REPL: /new, /list, /switch N, /clear, /delete, /quit.`,
	RunE: runChat,
}

var (
	chatAPIKey string
	chatAPIURL string
	chatToken  string
)

func init() {
	chatCmd.Flags().StringVar(&chatAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	chatCmd.Flags().StringVar(&chatAPIURL, "api-url", "", "Backend base URL (overrides FORGE_API_URL env var)")
	chatCmd.Flags().StringVar(&chatToken, "token", "", "Backend bearer token (overrides FORGE_TOKEN env var)")

	rootCmd.AddCommand(chatCmd)
}

func runChat(_ *cobra.Command, _ []string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	if chatAPIKey != "" {
		cfg.APIKey = chatAPIKey
	}
	if chatAPIURL != "" {
		cfg.APIURL = chatAPIURL
	}
	if chatToken != "" {
		cfg.Token = chatToken
	}
	merged := cfg.MergeWithDefaults(config.Config{})
	if err := merged.Validate(); err != nil {
		return err
	}
	if merged.APIKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	ctx := context.Background()
	client, err := llm.NewClient(ctx, nil, merged.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()
	gw := gateway.New(client)

	store, err := openChatStore(ctx, merged)
	if err != nil {
		return err
	}

	if store.Current() == nil {
		if _, err := store.NewConversation(ctx); err != nil {
			return err
		}
	}

	fmt.Fprintln(os.Stdout, "Forge chat. Type a message, or /quit to leave.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(os.Stdout, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "/") {
			done, err := runChatCommand(ctx, store, line)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if done {
				return nil
			}
			continue
		}

		current := store.Current()
		var history []types.Message
		if current != nil {
			history = current.Messages
		}
		if _, err := store.AddMessage(ctx, "", types.RoleUser, line); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		reply, err := gw.Chat(ctx, line, history)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		if _, err := store.AddMessage(ctx, "", types.RoleAssistant, reply); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		fmt.Fprintf(os.Stdout, "%s\n", reply)
	}
}

// openChatStore picks authenticated or local-only mode. An authenticated
// backend that reports 503 degrades to local-only instead of failing.
func openChatStore(ctx context.Context, cfg config.Config) (*conversation.Store, error) {
	statePath := conversation.StatePath(cfg.StateDir, conversation.GuestUser)

	if cfg.APIURL == "" || cfg.Token == "" {
		fmt.Fprintln(os.Stdout, "Running local-only; set FORGE_API_URL and FORGE_TOKEN to sync.")
		return conversation.NewStore(statePath)
	}

	backend := apiclient.New(cfg.APIURL, apiclient.WithToken(cfg.Token))
	remote, err := backend.ListConversations(ctx)
	if err != nil {
		if apiclient.IsDegraded(err) {
			fmt.Fprintln(os.Stdout, "Backend database unavailable; running local-only.")
			return conversation.NewStore(statePath)
		}
		return nil, fmt.Errorf("failed to reach backend: %w", err)
	}

	// Authenticated mode: the backend owns persistence and the session picks
	// up where the server-side history left off.
	return conversation.NewStore("",
		conversation.WithBackend(backend),
		conversation.WithConversations(remote))
}

func runChatCommand(ctx context.Context, store *conversation.Store, line string) (quit bool, err error) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/quit", "/exit":
		return true, nil
	case "/new":
		_, err := store.NewConversation(ctx)
		return false, err
	case "/list":
		for i, conv := range store.Conversations() {
			marker := " "
			if current := store.Current(); current != nil && current.ID == conv.ID {
				marker = "*"
			}
			fmt.Fprintf(os.Stdout, "%s %d. %s (%d messages)\n", marker, i+1, conv.Title, len(conv.Messages))
		}
		return false, nil
	case "/switch":
		if len(fields) < 2 {
			return false, fmt.Errorf("usage: /switch N")
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return false, fmt.Errorf("usage: /switch N")
		}
		conversations := store.Conversations()
		if n < 1 || n > len(conversations) {
			return false, fmt.Errorf("conversation %d out of range", n)
		}
		return false, store.SwitchConversation(conversations[n-1].ID)
	case "/clear":
		return false, store.Clear()
	case "/delete":
		current := store.Current()
		if current == nil {
			return false, nil
		}
		return false, store.DeleteConversation(ctx, current.ID)
	default:
		return false, fmt.Errorf("unknown command %s", fields[0])
	}
}
