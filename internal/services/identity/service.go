package identity

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/yatishgautam00/spy-game-local/internal/dependencies/clock"
	"github.com/yatishgautam00/spy-game-local/internal/model"
	"github.com/yatishgautam00/spy-game-local/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrEmailExists        = errors.New("email already registered")
)

// Session represents an authenticated session
type Session struct {
	Token     string
	UserID    model.UserID
	User      model.User
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Service handles account registration and session management
type Service struct {
	storage storage.Storage
	clock   clock.Clock

	mu       sync.RWMutex
	sessions map[string]*Session

	sessionDuration time.Duration
}

// Config holds configuration for the identity service
type Config struct {
	SessionDuration time.Duration
}

// DefaultConfig returns default identity configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
	}
}

// New creates a new identity service
func New(storage storage.Storage, clock clock.Clock, cfg Config) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		storage:         storage,
		clock:           clock,
		sessions:        make(map[string]*Session),
		sessionDuration: cfg.SessionDuration,
	}
}

// Register creates a user account and session. Emails are matched
// case-insensitively.
func (s *Service) Register(ctx context.Context, email, password, displayName string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	_, err := s.storage.GetCredentialsByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailExists
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	userID := model.UserID(s.generateID("u_"))
	now := s.clock.Now()

	user := &model.User{
		ID:          userID,
		DisplayName: displayName,
		Email:       email,
		CreatedAt:   now,
	}

	creds := &model.Credentials{
		UserID:       userID,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	if err := s.storage.SaveCredentials(ctx, creds); err != nil {
		return nil, err
	}

	return s.createSession(user)
}

// Login authenticates a user and creates a session
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	creds, err := s.storage.GetCredentialsByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.storage.GetUser(ctx, creds.UserID)
	if err != nil {
		return nil, err
	}

	return s.createSession(user)
}

// ValidateSession checks if a session token is valid and returns the session
func (s *Service) ValidateSession(token string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidSession
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrInvalidSession
	}

	return session, nil
}

// InvalidateSession removes a session
func (s *Service) InvalidateSession(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// GetUser returns the user for a session token
func (s *Service) GetUser(token string) (*model.User, error) {
	session, err := s.ValidateSession(token)
	if err != nil {
		return nil, err
	}
	return &session.User, nil
}

// createSession creates a new session for a user
func (s *Service) createSession(user *model.User) (*Session, error) {
	token := s.generateID("sess_")
	now := s.clock.Now()

	session := &Session{
		Token:     token,
		UserID:    user.ID,
		User:      *user,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	s.mu.Lock()
	s.sessions[token] = session
	s.mu.Unlock()

	return session, nil
}

// generateID generates a random ID with a prefix
func (s *Service) generateID(prefix string) string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return prefix + base64.RawURLEncoding.EncodeToString(b)
}

// CleanExpiredSessions removes expired sessions (call periodically)
func (s *Service) CleanExpiredSessions() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}
