package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/forge-ai/forge/internal/db"
	"github.com/forge-ai/forge/internal/server/middleware"
)

// handleListConversations returns the caller's conversations newest first,
// messages nested in creation order.
func (s *Server) handleListConversations(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	conversations, err := s.store.ListConversations(r.Context(), userID)
	if err != nil {
		log.Printf("list conversations failed: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list conversations")
		return
	}
	s.jsonResponse(w, http.StatusOK, conversations)
}

// handleCreateConversation creates an empty conversation for the caller.
func (s *Server) handleCreateConversation(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Title string `json:"title"`
	}
	// Body is optional; a missing or empty title gets the default.
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Title == "" {
		req.Title = "New Conversation"
	}

	conv, err := s.store.CreateConversation(r.Context(), userID, req.Title)
	if err != nil {
		log.Printf("create conversation failed: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to create conversation")
		return
	}
	s.jsonResponse(w, http.StatusCreated, conv)
}

// handleAddMessage appends a message to a conversation the caller owns and
// touches its updated timestamp.
func (s *Server) handleAddMessage(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	conversationID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		notFound := &ErrConversationNotFound{}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	var req struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Role != "user" && req.Role != "assistant" {
		valErr := &ErrValidation{Field: "role", Message: "must be user or assistant"}
		s.errorResponse(w, HTTPStatus(valErr), valErr.Error())
		return
	}
	if req.Content == "" {
		valErr := &ErrValidation{Field: "content", Message: "required"}
		s.errorResponse(w, HTTPStatus(valErr), valErr.Error())
		return
	}

	msg, err := s.store.AddMessage(r.Context(), userID, conversationID, req.Role, req.Content)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			notFound := &ErrConversationNotFound{}
			s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
			return
		}
		log.Printf("add message failed: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to add message")
		return
	}
	s.jsonResponse(w, http.StatusCreated, msg)
}

// handleDeleteConversation removes a conversation the caller owns. Deleting
// a conversation that does not exist (or is not theirs) is a no-op success.
func (s *Server) handleDeleteConversation(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	conversationID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Conversation deleted"})
		return
	}

	if err := s.store.DeleteConversation(r.Context(), userID, conversationID); err != nil && !errors.Is(err, db.ErrNotFound) {
		log.Printf("delete conversation failed: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to delete conversation")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Conversation deleted"})
}
