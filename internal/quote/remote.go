package quote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fairwayev/quotedesk-backend/pkg/config"
	"github.com/fairwayev/quotedesk-backend/pkg/db/models"
	"github.com/fairwayev/quotedesk-backend/pkg/enums"
	pkgerrors "github.com/fairwayev/quotedesk-backend/pkg/errors"
)

const remoteBodyReadLimit int64 = 2048

// remoteEnvelope is the response shape of the upstream quote service.
type remoteEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// RemoteStore talks to the upstream quote service over its REST surface.
// Every failure is mapped into the error taxonomy so the store can decide
// whether the local mirror takes over.
type RemoteStore struct {
	httpClient *http.Client
	baseURL    string
}

// RemoteOption configures optional client behavior.
type RemoteOption func(*RemoteStore)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) RemoteOption {
	return func(r *RemoteStore) {
		if client != nil {
			r.httpClient = client
		}
	}
}

// NewRemoteStore builds a client for the upstream quote service. Returns nil
// when no base URL is configured; the store then runs mirror-only.
func NewRemoteStore(cfg config.RemoteConfig, opts ...RemoteOption) *RemoteStore {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		return nil
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	client := &RemoteStore{
		baseURL:    strings.TrimRight(base, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client
}

// List fetches every quote currently in review.
func (r *RemoteStore) List(ctx context.Context) ([]models.QuoteDocument, error) {
	data, err := r.do(ctx, http.MethodGet, "/quotes", nil)
	if err != nil {
		return nil, err
	}
	var docs []models.QuoteDocument
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeRemoteUnavailable, err, "decode quote list")
	}
	return docs, nil
}

// Get fetches a single quote by id.
func (r *RemoteStore) Get(ctx context.Context, id uuid.UUID) (*models.QuoteDocument, error) {
	data, err := r.do(ctx, http.MethodGet, "/quotes/"+id.String(), nil)
	if err != nil {
		return nil, err
	}
	var doc models.QuoteDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeRemoteUnavailable, err, "decode quote")
	}
	return &doc, nil
}

// Create submits a new quote to the review queue.
func (r *RemoteStore) Create(ctx context.Context, doc *models.QuoteDocument) error {
	_, err := r.do(ctx, http.MethodPost, "/quotes/submit", doc)
	return err
}

// Update replaces the stored quote with the edited document.
func (r *RemoteStore) Update(ctx context.Context, doc *models.QuoteDocument) error {
	_, err := r.do(ctx, http.MethodPut, "/quotes/"+doc.ID.String(), doc)
	return err
}

// SetStatus advances the stored quote to the given status.
func (r *RemoteStore) SetStatus(ctx context.Context, id uuid.UUID, status enums.QuoteStatus) error {
	payload := map[string]any{"status": status}
	_, err := r.do(ctx, http.MethodPut, "/quotes/"+id.String()+"/status", payload)
	return err
}

// Delete withdraws the quote from the review queue.
func (r *RemoteStore) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.do(ctx, http.MethodDelete, "/quotes/"+id.String(), nil)
	return err
}

func (r *RemoteStore) do(ctx context.Context, method, path string, payload any) (json.RawMessage, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal quote payload")
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build quote request")
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeRemoteUnavailable, err, "quote service unreachable")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found upstream")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, remoteBodyReadLimit))
		return nil, pkgerrors.Wrap(
			pkgerrors.CodeRemoteUnavailable,
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))),
			"quote service returned an error",
		)
	}

	var envelope remoteEnvelope
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&envelope); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeRemoteUnavailable, err, "decode quote envelope")
	}
	if !envelope.Success {
		return nil, pkgerrors.New(pkgerrors.CodeRemoteUnavailable, remoteMessage(envelope.Message))
	}
	return envelope.Data, nil
}

func remoteMessage(msg string) string {
	if msg == "" {
		return "quote service reported failure"
	}
	return msg
}
