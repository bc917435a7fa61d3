package conversation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/forge-ai/forge/internal/types"
)

// GuestUser keys the state file when no authenticated user is present.
const GuestUser = "guest"

// StatePath returns the conversation state file for a user inside dir.
// An empty userID falls back to the guest file.
func StatePath(dir, userID string) string {
	if userID == "" {
		userID = GuestUser
	}
	return filepath.Join(dir, userID+".json")
}

// state is the on-disk shape of a store.
type state struct {
	CurrentID     string               `json:"current_id"`
	Conversations []types.Conversation `json:"conversations"`
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read conversation state: %w", err)
	}

	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("failed to parse conversation state %s: %w", s.path, err)
	}

	s.conversations = make([]*types.Conversation, 0, len(st.Conversations))
	for i := range st.Conversations {
		conv := st.Conversations[i]
		s.conversations = append(s.conversations, &conv)
	}
	s.currentID = st.CurrentID
	return nil
}

// save writes the store to its state file. Callers hold the mutex. A store
// without a path is in-memory only and save is a no-op.
func (s *Store) save() error {
	if s.path == "" {
		return nil
	}

	st := state{
		CurrentID:     s.currentID,
		Conversations: make([]types.Conversation, 0, len(s.conversations)),
	}
	for _, conv := range s.conversations {
		st.Conversations = append(st.Conversations, *conv)
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize conversation state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write conversation state: %w", err)
	}
	return nil
}
