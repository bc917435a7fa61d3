// Package conversation owns the chat transcript: an ordered,
// most-recent-first list of conversations, one of which is current. The
// store is the sole mutator of conversations and messages; other packages
// read snapshots.
package conversation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/forge-ai/forge/internal/types"
)

// DefaultTitle is the title of a conversation before its first user message.
const DefaultTitle = "New Conversation"

// ErrNotFound is returned when a conversation id does not exist.
var ErrNotFound = fmt.Errorf("conversation not found")

// Backend is the remote half of an authenticated store. Message writes go
// through it and the canonical server message replaces the optimistic local
// one. Implemented by apiclient.Client.
type Backend interface {
	CreateConversation(ctx context.Context, title string) (*types.Conversation, error)
	AddMessage(ctx context.Context, conversationID string, role types.MessageRole, content string) (*types.Message, error)
	DeleteConversation(ctx context.Context, conversationID string) error
}

// Store holds the conversation list. Safe for concurrent use. With a nil
// backend all state is local; with a persist path it survives restarts.
type Store struct {
	mu            sync.Mutex
	conversations []*types.Conversation
	currentID     string

	backend Backend
	path    string
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithBackend routes message writes through a remote backend.
func WithBackend(b Backend) Option {
	return func(s *Store) { s.backend = b }
}

// WithClock overrides the timestamp clock.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithConversations seeds the store with an existing list, newest first,
// making the head current. Used to adopt server-side history when an
// authenticated session starts.
func WithConversations(convs []types.Conversation) Option {
	return func(s *Store) {
		s.conversations = make([]*types.Conversation, 0, len(convs))
		for i := range convs {
			conv := convs[i]
			s.conversations = append(s.conversations, &conv)
		}
		if len(s.conversations) > 0 {
			s.currentID = s.conversations[0].ID
		}
	}
}

// NewStore creates a store persisting to path, or fully in-memory when path
// is empty. An existing state file is loaded; a corrupt one is an error.
func NewStore(path string, opts ...Option) (*Store, error) {
	s := &Store{
		path: path,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if path != "" {
		if err := s.load(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// NewConversation creates an empty conversation, prepends it, and makes it
// current.
func (s *Store) NewConversation(ctx context.Context) (*types.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, err := s.newConversationLocked(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot(conv), s.save()
}

func (s *Store) newConversationLocked(ctx context.Context) (*types.Conversation, error) {
	now := s.now()
	conv := &types.Conversation{
		ID:        uuid.NewString(),
		Title:     DefaultTitle,
		Messages:  []types.Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if s.backend != nil {
		remote, err := s.backend.CreateConversation(ctx, DefaultTitle)
		if err != nil {
			return nil, err
		}
		conv.ID = remote.ID
		if !remote.CreatedAt.IsZero() {
			conv.CreatedAt = remote.CreatedAt
			conv.UpdatedAt = remote.CreatedAt
		}
	}
	s.conversations = append([]*types.Conversation{conv}, s.conversations...)
	s.currentID = conv.ID
	return conv, nil
}

// AddMessage appends a message to the targeted conversation, or the current
// one when conversationID is empty. A store with no conversations creates
// one first. The created message is returned; with a backend, that message
// carries the server-assigned id and timestamp. Backend failures roll the
// optimistic append back and are returned.
func (s *Store) AddMessage(ctx context.Context, conversationID string, role types.MessageRole, content string) (*types.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var conv *types.Conversation
	if conversationID == "" {
		if len(s.conversations) == 0 {
			created, err := s.newConversationLocked(ctx)
			if err != nil {
				return nil, err
			}
			conv = created
		} else {
			conv = s.findLocked(s.currentID)
		}
	} else {
		conv = s.findLocked(conversationID)
	}
	if conv == nil {
		return nil, ErrNotFound
	}

	msg := types.Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		CreatedAt: s.now(),
	}
	conv.Messages = append(conv.Messages, msg)

	if s.backend != nil {
		canonical, err := s.backend.AddMessage(ctx, conv.ID, role, content)
		if err != nil {
			conv.Messages = conv.Messages[:len(conv.Messages)-1]
			return nil, err
		}
		conv.Messages[len(conv.Messages)-1] = *canonical
		msg = *canonical
	}

	if role == types.RoleUser && conv.Title == DefaultTitle {
		conv.Title = types.DeriveTitle(content)
	}
	conv.UpdatedAt = s.now()

	if err := s.save(); err != nil {
		return nil, err
	}
	return &msg, nil
}

// SwitchConversation changes which conversation is current. Neither
// conversation is mutated.
func (s *Store) SwitchConversation(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findLocked(id) == nil {
		return ErrNotFound
	}
	s.currentID = id
	return s.save()
}

// Clear empties the current conversation's messages and resets its title,
// preserving its id and position in the list.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv := s.findLocked(s.currentID)
	if conv == nil {
		return nil
	}
	conv.Messages = []types.Message{}
	conv.Title = DefaultTitle
	conv.UpdatedAt = s.now()
	return s.save()
}

// DeleteConversation removes a conversation. Deleting the current one falls
// back to the new head of the list, or a fresh conversation when none
// remain.
func (s *Store) DeleteConversation(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := -1
	for i, conv := range s.conversations {
		if conv.ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return ErrNotFound
	}

	if s.backend != nil {
		if err := s.backend.DeleteConversation(ctx, id); err != nil {
			return err
		}
	}

	s.conversations = append(s.conversations[:index], s.conversations[index+1:]...)
	if s.currentID == id {
		if len(s.conversations) > 0 {
			s.currentID = s.conversations[0].ID
		} else {
			if _, err := s.newConversationLocked(ctx); err != nil {
				return err
			}
		}
	}
	return s.save()
}

// Current returns a snapshot of the current conversation, or nil.
func (s *Store) Current() *types.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv := s.findLocked(s.currentID)
	if conv == nil {
		return nil
	}
	return snapshot(conv)
}

// Conversations returns snapshots of every conversation, most recent first.
func (s *Store) Conversations() []types.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.Conversation, 0, len(s.conversations))
	for _, conv := range s.conversations {
		out = append(out, *snapshot(conv))
	}
	return out
}

func (s *Store) findLocked(id string) *types.Conversation {
	for _, conv := range s.conversations {
		if conv.ID == id {
			return conv
		}
	}
	return nil
}

func snapshot(conv *types.Conversation) *types.Conversation {
	out := *conv
	out.Messages = make([]types.Message, len(conv.Messages))
	copy(out.Messages, conv.Messages)
	return &out
}
