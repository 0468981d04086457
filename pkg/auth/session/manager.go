package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fairwayev/quotedesk-backend/pkg/config"
	redisclient "github.com/fairwayev/quotedesk-backend/pkg/redis"
)

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
	Del(ctx context.Context, keys ...string) error
}

type sessionKeyer interface {
	SessionKey(sessionID string) string
}

// Manager tracks active staff sessions in Redis so a logout revokes the
// token before its JWT expiry.
type Manager struct {
	store sessionStore
	keyer sessionKeyer
	ttl   time.Duration
}

// AccessSessionChecker exposes the read-only surface needed by middleware.
type AccessSessionChecker interface {
	HasSession(ctx context.Context, sessionID string) (bool, error)
}

// NewManager constructs a session manager backed by Redis.
func NewManager(client *redisclient.Client, cfg config.JWTConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	ttl := cfg.AccessTokenTTL()
	if ttl <= 0 {
		return nil, fmt.Errorf("access token ttl must be positive")
	}

	return &Manager{
		store: client,
		keyer: client,
		ttl:   ttl,
	}, nil
}

// Start records a session for the provided session id.
func (m *Manager) Start(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return fmt.Errorf("session id is required")
	}
	return m.store.Set(ctx, m.keyer.SessionKey(sessionID), "1", m.ttl)
}

// HasSession reports whether the session id is still active.
func (m *Manager) HasSession(ctx context.Context, sessionID string) (bool, error) {
	if strings.TrimSpace(sessionID) == "" {
		return false, nil
	}
	return m.store.Exists(ctx, m.keyer.SessionKey(sessionID))
}

// Revoke ends the session immediately.
func (m *Manager) Revoke(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return nil
	}
	return m.store.Del(ctx, m.keyer.SessionKey(sessionID))
}
