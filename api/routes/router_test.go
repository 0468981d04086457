package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairwayev/quotedesk-backend/internal/catalog"
	"github.com/fairwayev/quotedesk-backend/internal/export"
	"github.com/fairwayev/quotedesk-backend/internal/ledger"
	"github.com/fairwayev/quotedesk-backend/internal/lifecycle"
	"github.com/fairwayev/quotedesk-backend/internal/quote"
	sessionsvc "github.com/fairwayev/quotedesk-backend/internal/session"
	"github.com/fairwayev/quotedesk-backend/internal/template"
	pkgAuth "github.com/fairwayev/quotedesk-backend/pkg/auth"
	"github.com/fairwayev/quotedesk-backend/pkg/config"
	"github.com/fairwayev/quotedesk-backend/pkg/db/models"
	"github.com/fairwayev/quotedesk-backend/pkg/enums"
	pkgerrors "github.com/fairwayev/quotedesk-backend/pkg/errors"
	"github.com/fairwayev/quotedesk-backend/pkg/logger"
	"github.com/fairwayev/quotedesk-backend/pkg/types"
)

type fakeStore struct{}

func (fakeStore) List(ctx context.Context) ([]models.QuoteDocument, enums.StoreSource, error) {
	return nil, enums.StoreSourceLocal, nil
}

func (fakeStore) Get(ctx context.Context, id uuid.UUID) (*models.QuoteDocument, enums.StoreSource, error) {
	return nil, enums.StoreSourceLocal, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
}

type fakeLifecycle struct{}

func (fakeLifecycle) Submit(ctx context.Context, input lifecycle.SubmitInput) (*lifecycle.SubmitResult, error) {
	return &lifecycle.SubmitResult{
		Quote:       &models.QuoteDocument{ID: uuid.New()},
		Source:      enums.StoreSourceLocal,
		QuoteStored: true,
	}, nil
}

func (fakeLifecycle) Edit(ctx context.Context, id uuid.UUID, patch quote.EditPatch) (*models.QuoteDocument, enums.StoreSource, error) {
	return nil, enums.StoreSourceLocal, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
}

func (fakeLifecycle) Approve(ctx context.Context, id uuid.UUID) (*models.QuoteDocument, enums.StoreSource, error) {
	return nil, enums.StoreSourceLocal, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
}

func (fakeLifecycle) Reject(ctx context.Context, id uuid.UUID) (*models.QuoteDocument, enums.StoreSource, error) {
	return nil, enums.StoreSourceLocal, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
}

func (fakeLifecycle) DeleteQuote(ctx context.Context, id uuid.UUID) (enums.StoreSource, error) {
	return enums.StoreSourceLocal, nil
}

func (fakeLifecycle) DeleteOrder(ctx context.Context, id uuid.UUID) (int64, error) { return 1, nil }

func (fakeLifecycle) BatchDeleteOrders(ctx context.Context, ids []uuid.UUID) (int64, error) {
	return int64(len(ids)), nil
}

func (fakeLifecycle) ClearOrders(ctx context.Context) (int64, error) { return 0, nil }

type fakeExporter struct{}

func (fakeExporter) ExportQuote(ctx context.Context, id uuid.UUID, format enums.ExportFormat) (*export.Artifact, error) {
	return &export.Artifact{Name: "quote_Q.png", ContentType: "image/png", Data: []byte("png")}, nil
}

func (fakeExporter) ExportOrder(ctx context.Context, id uuid.UUID, format enums.ExportFormat) (*export.Artifact, error) {
	return &export.Artifact{Name: "quote_Q.png", ContentType: "image/png", Data: []byte("png")}, nil
}

type fakeHistory struct {
	ledger.Service
}

func (fakeHistory) List(ctx context.Context, filter ledger.Filter) ([]models.Order, error) {
	return nil, nil
}

type fakeCatalog struct{}

func (fakeCatalog) Snapshot() (catalog.Snapshot, bool) {
	return catalog.Snapshot{FetchedAt: time.Now()}, true
}

type fakeAuth struct{}

func (fakeAuth) Login(ctx context.Context, req sessionsvc.LoginRequest) (*sessionsvc.LoginResponse, error) {
	return &sessionsvc.LoginResponse{AccessToken: "token", StaffName: req.Name}, nil
}

func (fakeAuth) Logout(ctx context.Context, sessionID string) error { return nil }

type fakeTemplates struct{}

func (fakeTemplates) Current(ctx context.Context) (*models.QuoteTemplate, error) {
	return &models.QuoteTemplate{ID: 1, ValidityDays: 30}, nil
}

func (fakeTemplates) Snapshot(ctx context.Context) (types.TemplateSnapshot, error) {
	return types.TemplateSnapshot{ValidityDays: 30}, nil
}

func (fakeTemplates) Update(ctx context.Context, patch template.UpdatePatch) (*models.QuoteTemplate, error) {
	return &models.QuoteTemplate{ID: 1, ValidityDays: 30}, nil
}

type openSessions struct{}

func (openSessions) HasSession(ctx context.Context, sessionID string) (bool, error) {
	return true, nil
}

func testRouter(t *testing.T) (http.Handler, config.JWTConfig) {
	t.Helper()
	jwtCfg := config.JWTConfig{Secret: "router-secret", Issuer: "quotedesk-test", ExpirationMinutes: 60}
	cfg := &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: jwtCfg,
	}
	logg := logger.New(logger.Options{ServiceName: "router-test", Output: io.Discard})

	handler := NewRouter(Deps{
		Config:    cfg,
		Logger:    logg,
		Sessions:  openSessions{},
		Auth:      fakeAuth{},
		Store:     fakeStore{},
		Lifecycle: fakeLifecycle{},
		History:   fakeHistory{},
		Exporter:  fakeExporter{},
		Catalog:   fakeCatalog{},
		Template:  fakeTemplates{},
	})
	return handler, jwtCfg
}

func staffToken(t *testing.T, cfg config.JWTConfig) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg, time.Now(), pkgAuth.AccessTokenPayload{StaffName: "mara"})
	require.NoError(t, err)
	return token
}

func TestRouterHealthIsPublic(t *testing.T) {
	handler, _ := testRouter(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test", rec.Header().Get("X-QuoteDesk-Env"))
}

func TestRouterCatalogIsPublic(t *testing.T) {
	handler, _ := testRouter(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/catalog", nil))

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterStaffRoutesRequireToken(t *testing.T) {
	handler, jwtCfg := testRouter(t)

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/quotes"},
		{http.MethodGet, "/api/orders"},
		{http.MethodGet, "/api/template"},
		{http.MethodGet, "/api/catalog/export.csv"},
		{http.MethodDelete, "/api/orders"},
	}

	for _, route := range protected {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(route.method, route.path, nil))
		assert.Equalf(t, http.StatusUnauthorized, rec.Code, "%s %s without token", route.method, route.path)

		rec = httptest.NewRecorder()
		req := httptest.NewRequest(route.method, route.path, nil)
		req.Header.Set("Authorization", "Bearer "+staffToken(t, jwtCfg))
		handler.ServeHTTP(rec, req)
		assert.Equalf(t, http.StatusOK, rec.Code, "%s %s with token", route.method, route.path)
	}
}

func TestRouterSubmitIsPublicButReplayProtectedOnlyWithRedis(t *testing.T) {
	handler, _ := testRouter(t)

	// No redis wired in this test router, so submit passes straight through.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/quotes/submit", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code, "empty body fails validation, not auth")
}

func TestRouterLoginReachesService(t *testing.T) {
	handler, _ := testRouter(t)

	body := `{"name":"mara","secret":"hunter2"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "token")
}

func TestRouterUnknownRouteIs404(t *testing.T) {
	handler, _ := testRouter(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
}
