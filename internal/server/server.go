package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/forge-ai/forge/internal/config"
	"github.com/forge-ai/forge/internal/db"
	"github.com/forge-ai/forge/internal/server/middleware"
	"github.com/forge-ai/forge/internal/server/ratelimit"
)

// Store is the persistence surface the handlers need. Satisfied by *db.DB;
// faked in tests.
type Store interface {
	CreateUser(ctx context.Context, email, name, passwordHash string) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	CreateConversation(ctx context.Context, userID uuid.UUID, title string) (*db.Conversation, error)
	ListConversations(ctx context.Context, userID uuid.UUID) ([]db.Conversation, error)
	AddMessage(ctx context.Context, userID, conversationID uuid.UUID, role, content string) (*db.Message, error)
	DeleteConversation(ctx context.Context, userID, conversationID uuid.UUID) error
}

// Server represents the HTTP server. With a nil store it runs in degraded
// mode: every data route answers 503 and clients fall back to local-only
// operation.
type Server struct {
	httpServer  *http.Server
	store       Store
	database    *db.DB
	sessions    *SessionStore
	passwords   *config.PasswordConfig
	rateLimiter *ratelimit.Limiter
	authHandler *AuthHandler
	corsOrigin  string
}

// Config holds server configuration
type Config struct {
	Port        int
	DatabaseURL string
	CORSOrigin  string
}

// New creates a new server instance. An empty DatabaseURL is not an error;
// the server starts degraded.
func New(cfg Config) (*Server, error) {
	s := &Server{
		sessions:   NewSessionStore(),
		corsOrigin: cfg.CORSOrigin,
	}
	if s.corsOrigin == "" {
		s.corsOrigin = config.DefaultCORSOrigin
	}

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		s.database = database
		s.store = database
	} else {
		log.Println("DATABASE_URL not set, starting in degraded mode: data routes will answer 503")
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.passwords = passwordConfig
	s.authHandler = NewAuthHandler(s.store, passwordConfig, s.sessions)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler builds the full middleware-wrapped route tree. Exposed so tests
// can drive the server through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	mux.Handle("POST /api/auth/register", s.withStore(http.HandlerFunc(s.authHandler.Register)))
	mux.Handle("POST /api/auth/login", s.withStore(http.HandlerFunc(s.authHandler.Login)))
	mux.HandleFunc("POST /api/auth/logout", s.authHandler.Logout)

	protect := middleware.AuthMiddleware(s.sessions)
	mux.Handle("GET /api/conversations", s.withStore(protect(http.HandlerFunc(s.handleListConversations))))
	mux.Handle("POST /api/conversations", s.withStore(protect(http.HandlerFunc(s.handleCreateConversation))))
	mux.Handle("POST /api/conversations/{id}/messages", s.withStore(protect(http.HandlerFunc(s.handleAddMessage))))
	mux.Handle("DELETE /api/conversations/{id}", s.withStore(protect(http.HandlerFunc(s.handleDeleteConversation))))

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.database != nil {
		s.database.Close()
	}
	log.Println("Server stopped")
	return nil
}

// withStore rejects data routes with 503 when no database is configured.
// Runs before auth so degraded mode is visible to unauthenticated clients.
func (s *Server) withStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.store == nil {
			err := &ErrDatabaseUnavailable{}
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withCORS adds CORS headers for the configured frontend origin.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.corsOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		if !allowed {
			s.setRateLimitHeaders(w, info)
			s.rateLimitResponse(w, info)
			return
		}

		s.setRateLimitHeaders(w, info)
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status, flagging degraded mode.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	status := map[string]string{"status": "ok"}
	if s.store == nil {
		status["database"] = "unavailable"
	}
	s.jsonResponse(w, http.StatusOK, status)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// For MVP, this uses the IP address from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
