// Package catalog serves the read-only product catalog the selection UI
// browses. The upstream JSON document is fetched on a schedule and held as an
// in-memory snapshot; quotes never read it after selection time.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fairwayev/quotedesk-backend/pkg/config"
	pkgerrors "github.com/fairwayev/quotedesk-backend/pkg/errors"
)

// Category is a catalog grouping.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Product is a purchasable catalog entry. Prices here are the live prices;
// a quote keeps its own snapshot of whatever was selected.
type Product struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Type        string          `json:"type"`
	Stock       int             `json:"stock"`
}

// Snapshot is one consistent fetch of the catalog document.
type Snapshot struct {
	Categories []Category `json:"categories"`
	Products   []Product  `json:"products"`
	FetchedAt  time.Time  `json:"fetchedAt"`
}

// Provider fetches and caches the catalog document.
type Provider struct {
	url        string
	httpClient *http.Client

	mu   sync.RWMutex
	snap *Snapshot
}

// NewProvider builds a catalog provider for the configured document URL.
func NewProvider(cfg config.CatalogConfig) (*Provider, error) {
	url := strings.TrimSpace(cfg.URL)
	if url == "" {
		return nil, fmt.Errorf("catalog url required")
	}

	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Provider{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Refresh fetches the catalog document and replaces the cached snapshot. The
// previous snapshot stays in place on any failure.
func (p *Provider) Refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build catalog request")
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch catalog")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("catalog fetch returned status %d", resp.StatusCode))
	}

	var snap Snapshot
	if err := json.NewDecoder(io.LimitReader(resp.Body, 8<<20)).Decode(&snap); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode catalog document")
	}
	snap.FetchedAt = time.Now()

	p.mu.Lock()
	p.snap = &snap
	p.mu.Unlock()
	return nil
}

// Snapshot returns the cached catalog. The second return is false before the
// first successful refresh.
func (p *Provider) Snapshot() (Snapshot, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.snap == nil {
		return Snapshot{}, false
	}
	return *p.snap, true
}
