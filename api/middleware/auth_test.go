package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgAuth "github.com/fairwayev/quotedesk-backend/pkg/auth"
	"github.com/fairwayev/quotedesk-backend/pkg/config"
	"github.com/fairwayev/quotedesk-backend/pkg/logger"
)

type stubSessionChecker struct {
	has func(ctx context.Context, sessionID string) (bool, error)
}

func (s *stubSessionChecker) HasSession(ctx context.Context, sessionID string) (bool, error) {
	return s.has(ctx, sessionID)
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "quotedesk-test",
		ExpirationMinutes: 60,
	}
}

func testMWLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "middleware-test", Output: io.Discard})
}

func mintToken(t *testing.T, cfg config.JWTConfig) (string, string) {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg, time.Now(), pkgAuth.AccessTokenPayload{StaffName: "mara"})
	require.NoError(t, err)
	claims, err := pkgAuth.ParseAccessToken(cfg, token)
	require.NoError(t, err)
	return token, claims.ID
}

func authProtected(cfg config.JWTConfig, checker *stubSessionChecker, captured *context.Context) http.HandlerFunc {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if captured != nil {
			*captured = r.Context()
		}
		w.WriteHeader(http.StatusNoContent)
	})
	return Auth(cfg, checker, testMWLogger())(next).ServeHTTP
}

func TestAuthAllowsActiveSession(t *testing.T) {
	cfg := testJWTConfig()
	token, sessionID := mintToken(t, cfg)

	checker := &stubSessionChecker{
		has: func(ctx context.Context, got string) (bool, error) {
			assert.Equal(t, sessionID, got)
			return true, nil
		},
	}

	var ctx context.Context
	req := httptest.NewRequest(http.MethodGet, "/api/quotes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	authProtected(cfg, checker, &ctx)(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "mara", StaffNameFromContext(ctx))
	assert.Equal(t, sessionID, SessionIDFromContext(ctx))
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	cfg := testJWTConfig()

	req := httptest.NewRequest(http.MethodGet, "/api/quotes", nil)
	rec := httptest.NewRecorder()

	authProtected(cfg, nil, nil)(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsGarbageToken(t *testing.T) {
	cfg := testJWTConfig()

	req := httptest.NewRequest(http.MethodGet, "/api/quotes", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	rec := httptest.NewRecorder()

	authProtected(cfg, nil, nil)(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsRevokedSession(t *testing.T) {
	cfg := testJWTConfig()
	token, _ := mintToken(t, cfg)

	checker := &stubSessionChecker{
		has: func(ctx context.Context, sessionID string) (bool, error) {
			return false, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/quotes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	authProtected(cfg, checker, nil)(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	token, _ := mintToken(t, cfg)

	other := cfg
	other.Secret = "different-secret"

	req := httptest.NewRequest(http.MethodGet, "/api/quotes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	authProtected(other, nil, nil)(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
