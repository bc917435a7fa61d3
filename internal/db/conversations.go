package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateConversation inserts an empty conversation for a user.
func (db *DB) CreateConversation(ctx context.Context, userID uuid.UUID, title string) (*Conversation, error) {
	var conv Conversation
	err := db.pool.QueryRow(ctx,
		`INSERT INTO conversations (user_id, title)
		 VALUES ($1, $2)
		 RETURNING id, user_id, title, created_at, updated_at`,
		userID, title,
	).Scan(&conv.ID, &conv.UserID, &conv.Title, &conv.CreatedAt, &conv.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	conv.Messages = []Message{}
	return &conv, nil
}

// ListConversations returns a user's conversations newest first, each with
// its messages nested in creation order.
func (db *DB) ListConversations(ctx context.Context, userID uuid.UUID) ([]Conversation, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, title, created_at, updated_at
		 FROM conversations WHERE user_id = $1
		 ORDER BY updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer rows.Close()

	conversations := []Conversation{}
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var conv Conversation
		if err := rows.Scan(&conv.ID, &conv.UserID, &conv.Title, &conv.CreatedAt, &conv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		conv.Messages = []Message{}
		index[conv.ID] = len(conversations)
		conversations = append(conversations, conv)
	}
	if len(conversations) == 0 {
		return conversations, nil
	}

	msgRows, err := db.pool.Query(ctx,
		`SELECT m.id, m.conversation_id, m.role, m.content, m.created_at
		 FROM messages m
		 JOIN conversations c ON c.id = m.conversation_id
		 WHERE c.user_id = $1
		 ORDER BY m.created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer msgRows.Close()

	for msgRows.Next() {
		var msg Message
		if err := msgRows.Scan(&msg.ID, &msg.ConversationID, &msg.Role, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		if i, ok := index[msg.ConversationID]; ok {
			conversations[i].Messages = append(conversations[i].Messages, msg)
		}
	}
	return conversations, nil
}

// AddMessage appends a message to a conversation the user owns and touches
// the conversation's updated_at. A foreign or missing conversation yields
// ErrNotFound.
func (db *DB) AddMessage(ctx context.Context, userID, conversationID uuid.UUID, role, content string) (*Message, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var owner uuid.UUID
	err = tx.QueryRow(ctx,
		`SELECT user_id FROM conversations WHERE id = $1`,
		conversationID,
	).Scan(&owner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to check conversation: %w", err)
	}
	if owner != userID {
		return nil, ErrNotFound
	}

	var msg Message
	err = tx.QueryRow(ctx,
		`INSERT INTO messages (conversation_id, role, content)
		 VALUES ($1, $2, $3)
		 RETURNING id, conversation_id, role, content, created_at`,
		conversationID, role, content,
	).Scan(&msg.ID, &msg.ConversationID, &msg.Role, &msg.Content, &msg.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to add message: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE conversations SET updated_at = NOW() WHERE id = $1`,
		conversationID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to touch conversation: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return &msg, nil
}

// DeleteConversation removes a conversation the user owns along with its
// messages (via cascade). A foreign or missing conversation yields
// ErrNotFound.
func (db *DB) DeleteConversation(ctx context.Context, userID, conversationID uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM conversations WHERE id = $1 AND user_id = $2`,
		conversationID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
