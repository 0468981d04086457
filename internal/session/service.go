// Package session implements the staff credential gate: a single shared
// secret exchanged for a short-lived access token backed by a revocable redis
// session.
package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fairwayev/quotedesk-backend/pkg/auth"
	"github.com/fairwayev/quotedesk-backend/pkg/config"
	pkgerrors "github.com/fairwayev/quotedesk-backend/pkg/errors"
	"github.com/fairwayev/quotedesk-backend/pkg/security"
)

const invalidSecretMessage = "invalid access secret"

type sessionManager interface {
	Start(ctx context.Context, sessionID string) error
	Revoke(ctx context.Context, sessionID string) error
}

// LoginRequest carries the staff login payload.
type LoginRequest struct {
	Name   string `json:"name" validate:"required"`
	Secret string `json:"secret" validate:"required"`
}

// LoginResponse returns the bearer token for subsequent staff calls.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	StaffName   string `json:"staffName"`
}

// Service defines the behavior needed by the auth controller.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, sessionID string) error
}

type service struct {
	sessions sessionManager
	staffCfg config.StaffConfig
	jwtCfg   config.JWTConfig
}

// NewService constructs the credential gate service.
func NewService(sessions sessionManager, staffCfg config.StaffConfig, jwtCfg config.JWTConfig) (Service, error) {
	if sessions == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	if staffCfg.SecretHash == "" {
		return nil, fmt.Errorf("staff secret hash is required")
	}
	return &service{
		sessions: sessions,
		staffCfg: staffCfg,
		jwtCfg:   jwtCfg,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || req.Secret == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidSecretMessage)
	}

	ok, err := security.VerifySecret(req.Secret, s.staffCfg.SecretHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify access secret")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidSecretMessage)
	}

	token, err := auth.MintAccessToken(s.jwtCfg, time.Now(), auth.AccessTokenPayload{StaffName: name})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	claims, err := auth.ParseAccessToken(s.jwtCfg, token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "read access token id")
	}
	if err := s.sessions.Start(ctx, claims.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "start session")
	}

	return &LoginResponse{AccessToken: token, StaffName: name}, nil
}

func (s *service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id required")
	}
	if err := s.sessions.Revoke(ctx, sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}
