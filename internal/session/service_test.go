package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairwayev/quotedesk-backend/pkg/auth"
	"github.com/fairwayev/quotedesk-backend/pkg/config"
	pkgerrors "github.com/fairwayev/quotedesk-backend/pkg/errors"
	"github.com/fairwayev/quotedesk-backend/pkg/security"
)

type fakeSessions struct {
	started []string
	revoked []string
	err     error
}

func (f *fakeSessions) Start(ctx context.Context, sessionID string) error {
	if f.err != nil {
		return f.err
	}
	f.started = append(f.started, sessionID)
	return nil
}

func (f *fakeSessions) Revoke(ctx context.Context, sessionID string) error {
	if f.err != nil {
		return f.err
	}
	f.revoked = append(f.revoked, sessionID)
	return nil
}

func testConfigs(t *testing.T, secret string) (config.StaffConfig, config.JWTConfig) {
	t.Helper()

	staffCfg := config.StaffConfig{
		ArgonMemoryKB:    8 * 1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
	hash, err := security.HashSecret(secret, staffCfg)
	require.NoError(t, err)
	staffCfg.SecretHash = hash

	jwtCfg := config.JWTConfig{
		Secret:            "test-signing-secret",
		Issuer:            "quotedesk-test",
		ExpirationMinutes: 60,
	}
	return staffCfg, jwtCfg
}

func TestLoginExchangesSecretForToken(t *testing.T) {
	staffCfg, jwtCfg := testConfigs(t, "open-sesame")
	sessions := &fakeSessions{}
	svc, err := NewService(sessions, staffCfg, jwtCfg)
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), LoginRequest{Name: "jordan", Secret: "open-sesame"})
	require.NoError(t, err)
	assert.Equal(t, "jordan", resp.StaffName)
	require.NotEmpty(t, resp.AccessToken)

	claims, err := auth.ParseAccessToken(jwtCfg, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "jordan", claims.StaffName)
	require.Len(t, sessions.started, 1)
	assert.Equal(t, claims.ID, sessions.started[0])
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestLoginRejectsWrongSecret(t *testing.T) {
	staffCfg, jwtCfg := testConfigs(t, "open-sesame")
	svc, err := NewService(&fakeSessions{}, staffCfg, jwtCfg)
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{Name: "jordan", Secret: "wrong"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))
}

func TestLoginRejectsBlankFields(t *testing.T) {
	staffCfg, jwtCfg := testConfigs(t, "open-sesame")
	svc, err := NewService(&fakeSessions{}, staffCfg, jwtCfg)
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{Secret: "open-sesame"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))

	_, err = svc.Login(context.Background(), LoginRequest{Name: "jordan"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))
}

func TestLogoutRevokesSession(t *testing.T) {
	staffCfg, jwtCfg := testConfigs(t, "open-sesame")
	sessions := &fakeSessions{}
	svc, err := NewService(sessions, staffCfg, jwtCfg)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), "some-jti"))
	assert.Equal(t, []string{"some-jti"}, sessions.revoked)

	err = svc.Logout(context.Background(), "")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}
