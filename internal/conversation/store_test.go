package conversation

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forge-ai/forge/internal/types"
)

func newMemStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	s, err := NewStore("", opts...)
	require.NoError(t, err)
	return s
}

func TestNewConversation_PrependedAndCurrent(t *testing.T) {
	s := newMemStore(t)
	ctx := context.Background()

	first, err := s.NewConversation(ctx)
	require.NoError(t, err)
	second, err := s.NewConversation(ctx)
	require.NoError(t, err)

	list := s.Conversations()
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
	assert.Equal(t, second.ID, s.Current().ID)
	assert.Equal(t, DefaultTitle, second.Title)
}

func TestAddMessage_DerivesTitleFromFirstUserMessage(t *testing.T) {
	s := newMemStore(t)
	ctx := context.Background()

	long := strings.Repeat("A", 80)
	_, err := s.AddMessage(ctx, "", types.RoleUser, long)
	require.NoError(t, err)

	assert.Equal(t, strings.Repeat("A", 50)+"...", s.Current().Title)
}

func TestAddMessage_ShortTitleNotTruncated(t *testing.T) {
	s := newMemStore(t)

	_, err := s.AddMessage(context.Background(), "", types.RoleUser, "short question")
	require.NoError(t, err)
	assert.Equal(t, "short question", s.Current().Title)
}

func TestAddMessage_AssistantFirstLeavesDefaultTitle(t *testing.T) {
	s := newMemStore(t)

	_, err := s.AddMessage(context.Background(), "", types.RoleAssistant, "welcome aboard")
	require.NoError(t, err)
	assert.Equal(t, DefaultTitle, s.Current().Title)
}

func TestAddMessage_TitleSetOnce(t *testing.T) {
	s := newMemStore(t)
	ctx := context.Background()

	_, err := s.AddMessage(ctx, "", types.RoleUser, "first")
	require.NoError(t, err)
	_, err = s.AddMessage(ctx, "", types.RoleUser, "second")
	require.NoError(t, err)

	assert.Equal(t, "first", s.Current().Title)
}

func TestAddMessage_AppendOrder(t *testing.T) {
	s := newMemStore(t)
	ctx := context.Background()

	for _, content := range []string{"one", "two", "three"} {
		_, err := s.AddMessage(ctx, "", types.RoleUser, content)
		require.NoError(t, err)
	}

	msgs := s.Current().Messages
	require.Len(t, msgs, 3)
	assert.Equal(t, "one", msgs[0].Content)
	assert.Equal(t, "three", msgs[2].Content)
}

func TestAddMessage_TargetedConversation(t *testing.T) {
	s := newMemStore(t)
	ctx := context.Background()

	first, err := s.NewConversation(ctx)
	require.NoError(t, err)
	_, err = s.NewConversation(ctx)
	require.NoError(t, err)

	_, err = s.AddMessage(ctx, first.ID, types.RoleUser, "to the old one")
	require.NoError(t, err)

	list := s.Conversations()
	assert.Len(t, list[1].Messages, 1)
	assert.Empty(t, list[0].Messages)
}

func TestAddMessage_UnknownConversation(t *testing.T) {
	s := newMemStore(t)
	_, err := s.AddMessage(context.Background(), "nope", types.RoleUser, "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSwitchConversation(t *testing.T) {
	s := newMemStore(t)
	ctx := context.Background()

	first, err := s.NewConversation(ctx)
	require.NoError(t, err)
	_, err = s.NewConversation(ctx)
	require.NoError(t, err)

	require.NoError(t, s.SwitchConversation(first.ID))
	assert.Equal(t, first.ID, s.Current().ID)

	assert.ErrorIs(t, s.SwitchConversation("nope"), ErrNotFound)
}

func TestClear_PreservesIDAndPosition(t *testing.T) {
	s := newMemStore(t)
	ctx := context.Background()

	older, err := s.NewConversation(ctx)
	require.NoError(t, err)
	_, err = s.AddMessage(ctx, "", types.RoleUser, "hello there")
	require.NoError(t, err)
	_, err = s.NewConversation(ctx)
	require.NoError(t, err)
	require.NoError(t, s.SwitchConversation(older.ID))

	require.NoError(t, s.Clear())

	current := s.Current()
	assert.Equal(t, older.ID, current.ID)
	assert.Empty(t, current.Messages)
	assert.Equal(t, DefaultTitle, current.Title)
	// still second in the list
	assert.Equal(t, older.ID, s.Conversations()[1].ID)
}

func TestDeleteConversation_CurrentFallsBackToHead(t *testing.T) {
	s := newMemStore(t)
	ctx := context.Background()

	_, err := s.NewConversation(ctx)
	require.NoError(t, err)
	second, err := s.NewConversation(ctx)
	require.NoError(t, err)
	head, err := s.NewConversation(ctx)
	require.NoError(t, err)

	require.NoError(t, s.SwitchConversation(second.ID))
	require.NoError(t, s.DeleteConversation(ctx, second.ID))

	assert.Equal(t, head.ID, s.Current().ID)
	assert.Len(t, s.Conversations(), 2)
}

func TestDeleteConversation_LastCreatesFresh(t *testing.T) {
	s := newMemStore(t)
	ctx := context.Background()

	only, err := s.NewConversation(ctx)
	require.NoError(t, err)
	require.NoError(t, s.DeleteConversation(ctx, only.ID))

	list := s.Conversations()
	require.Len(t, list, 1)
	assert.NotEqual(t, only.ID, list[0].ID)
	assert.Equal(t, list[0].ID, s.Current().ID)
}

func TestPersistence_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guest.json")
	ctx := context.Background()

	s, err := NewStore(path)
	require.NoError(t, err)
	_, err = s.AddMessage(ctx, "", types.RoleUser, "persist me")
	require.NoError(t, err)
	currentID := s.Current().ID

	reloaded, err := NewStore(path)
	require.NoError(t, err)

	require.NotNil(t, reloaded.Current())
	assert.Equal(t, currentID, reloaded.Current().ID)
	assert.Equal(t, "persist me", reloaded.Current().Messages[0].Content)
	assert.Equal(t, "persist me", reloaded.Current().Title)
}

func TestStatePath(t *testing.T) {
	assert.Equal(t, filepath.Join("dir", "guest.json"), StatePath("dir", ""))
	assert.Equal(t, filepath.Join("dir", "u1.json"), StatePath("dir", "u1"))
}

// fakeBackend records calls and can fail message writes.
type fakeBackend struct {
	addErr    error
	deleted   []string
	canonical types.Message
}

func (f *fakeBackend) CreateConversation(ctx context.Context, title string) (*types.Conversation, error) {
	return &types.Conversation{ID: "srv-conv-1", Title: title, CreatedAt: time.Now()}, nil
}

func (f *fakeBackend) AddMessage(ctx context.Context, conversationID string, role types.MessageRole, content string) (*types.Message, error) {
	if f.addErr != nil {
		return nil, f.addErr
	}
	f.canonical = types.Message{ID: "srv-msg-1", Role: role, Content: content, CreatedAt: time.Now()}
	return &f.canonical, nil
}

func (f *fakeBackend) DeleteConversation(ctx context.Context, conversationID string) error {
	f.deleted = append(f.deleted, conversationID)
	return nil
}

func TestBackend_CanonicalMessageReplacesOptimistic(t *testing.T) {
	backend := &fakeBackend{}
	s := newMemStore(t, WithBackend(backend))

	msg, err := s.AddMessage(context.Background(), "", types.RoleUser, "hello")
	require.NoError(t, err)

	assert.Equal(t, "srv-msg-1", msg.ID)
	assert.Equal(t, "srv-msg-1", s.Current().Messages[0].ID)
	assert.Equal(t, "srv-conv-1", s.Current().ID)
}

func TestBackend_WriteFailureSurfacesAndRollsBack(t *testing.T) {
	backend := &fakeBackend{}
	s := newMemStore(t, WithBackend(backend))
	ctx := context.Background()

	_, err := s.AddMessage(ctx, "", types.RoleUser, "first")
	require.NoError(t, err)

	backend.addErr = errors.New("server on fire")
	_, err = s.AddMessage(ctx, "", types.RoleUser, "second")
	require.Error(t, err)

	assert.Len(t, s.Current().Messages, 1)
}

func TestBackend_DeletePropagates(t *testing.T) {
	backend := &fakeBackend{}
	s := newMemStore(t, WithBackend(backend))
	ctx := context.Background()

	conv, err := s.NewConversation(ctx)
	require.NoError(t, err)
	require.NoError(t, s.DeleteConversation(ctx, conv.ID))

	assert.Equal(t, []string{conv.ID}, backend.deleted)
}

func TestWithConversations_SeedsHistory(t *testing.T) {
	seeded := []types.Conversation{
		{ID: "conv-new", Title: "Pricing experiments", Messages: []types.Message{
			{Role: types.RoleUser, Content: "how should I price the beta?"},
			{Role: types.RoleAssistant, Content: "anchor on value, not cost"},
		}},
		{ID: "conv-old", Title: "Churn deep dive", Messages: []types.Message{}},
	}
	s := newMemStore(t, WithConversations(seeded))

	require.Len(t, s.Conversations(), 2)
	current := s.Current()
	require.NotNil(t, current)
	assert.Equal(t, "conv-new", current.ID)
	assert.Len(t, current.Messages, 2)

	// appends land in the seeded current conversation
	_, err := s.AddMessage(context.Background(), "", types.RoleUser, "what about annual plans?")
	require.NoError(t, err)
	assert.Len(t, s.Current().Messages, 3)
	assert.Equal(t, "Pricing experiments", s.Current().Title)
}
