// Package auth provides mock authentication. Credentials are never checked:
// login and signup fabricate a user and open a session for it.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"taskboard/internal/models"
	"taskboard/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("name, email and password are required")
	ErrUnauthorized       = errors.New("unauthorized")
)

const sessionKeyPrefix = "taskboard_session:"

const avatarBackground = "3b82f6"

// Config tunes the session lifetime and token signing.
type Config struct {
	Secret string
	TTL    time.Duration
	// Admins lists emails that receive the admin role.
	Admins []string
}

// Session is handed to the client after login or signup.
type Session struct {
	Token     string      `json:"token"`
	User      models.User `json:"user"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

type record struct {
	User      models.User `json:"user"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// Service issues and resolves sessions stored in a key-value backend.
type Service struct {
	backend storage.Backend
	secret  []byte
	ttl     time.Duration
	admins  map[string]struct{}
	logger  *slog.Logger
	now     func() time.Time
}

// NewService validates cfg and builds the service.
func NewService(backend storage.Backend, cfg Config, logger *slog.Logger) (*Service, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("auth secret must not be empty")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	if logger == nil {
		logger = slog.Default()
	}

	admins := make(map[string]struct{}, len(cfg.Admins))
	for _, email := range cfg.Admins {
		if email = normalizeEmail(email); email != "" {
			admins[email] = struct{}{}
		}
	}
	return &Service{
		backend: backend,
		secret:  []byte(cfg.Secret),
		ttl:     cfg.TTL,
		admins:  admins,
		logger:  logger,
		now:     time.Now,
	}, nil
}

// Login opens a session for email. The display name is the email's local part.
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return Session{}, ErrInvalidCredentials
	}
	name, _, _ := strings.Cut(email, "@")
	return s.issue(ctx, s.fabricate(name, email))
}

// Signup opens a session for a user with the given name.
func (s *Service) Signup(ctx context.Context, name, email, password string) (Session, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return Session{}, ErrInvalidCredentials
	}
	return s.issue(ctx, s.fabricate(name, email))
}

// Authenticate resolves the user behind token.
func (s *Service) Authenticate(ctx context.Context, token string) (models.User, error) {
	claims, err := s.parse(token)
	if err != nil {
		return models.User{}, err
	}

	raw, ok, err := s.backend.Get(ctx, sessionKeyPrefix+claims.ID)
	if err != nil {
		return models.User{}, fmt.Errorf("read session: %w", err)
	}
	if !ok {
		return models.User{}, fmt.Errorf("session ended: %w", ErrUnauthorized)
	}

	var rec record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		s.logger.Warn("session unreadable, discarding", "session_id", claims.ID, "error", err)
		_ = storage.Delete(ctx, s.backend, sessionKeyPrefix+claims.ID)
		return models.User{}, fmt.Errorf("session unreadable: %w", ErrUnauthorized)
	}
	if !s.now().Before(rec.ExpiresAt) {
		_ = storage.Delete(ctx, s.backend, sessionKeyPrefix+claims.ID)
		return models.User{}, fmt.Errorf("session expired: %w", ErrUnauthorized)
	}
	return rec.User, nil
}

// Logout removes the session behind token.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return err
	}
	if err := storage.Delete(ctx, s.backend, sessionKeyPrefix+claims.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	s.logger.Debug("session closed", "session_id", claims.ID, "user_id", claims.Subject)
	return nil
}

func (s *Service) fabricate(name, email string) models.User {
	role := models.RoleUser
	if _, ok := s.admins[normalizeEmail(email)]; ok {
		role = models.RoleAdmin
	}
	return models.User{
		ID:     UserID(email),
		Name:   name,
		Email:  email,
		Avatar: models.AvatarURL(name, avatarBackground),
		Role:   role,
	}
}

// UserID derives a stable user id from an email address.
func UserID(email string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+normalizeEmail(email))).String()
}

func (s *Service) issue(ctx context.Context, user models.User) (Session, error) {
	now := s.now()
	sid := uuid.NewString()
	expires := now.Add(s.ttl)

	raw, err := json.Marshal(record{User: user, ExpiresAt: expires})
	if err != nil {
		return Session{}, fmt.Errorf("encode session: %w", err)
	}
	if err := storage.Set(ctx, s.backend, sessionKeyPrefix+sid, string(raw)); err != nil {
		return Session{}, fmt.Errorf("store session: %w", err)
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        sid,
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}).SignedString(s.secret)
	if err != nil {
		return Session{}, fmt.Errorf("sign token: %w", err)
	}

	s.logger.Info("session opened", "user_id", user.ID, "role", string(user.Role))
	return Session{Token: token, User: user, ExpiresAt: expires}, nil
}

func (s *Service) parse(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if claims.ID == "" {
		return nil, fmt.Errorf("token without session: %w", ErrUnauthorized)
	}
	return claims, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
