package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fairwayev/quotedesk-backend/pkg/config"
	"github.com/fairwayev/quotedesk-backend/pkg/enums"
	pkgerrors "github.com/fairwayev/quotedesk-backend/pkg/errors"
)

// Renderer turns a view model into a raster or paginated PDF artifact.
type Renderer interface {
	Render(ctx context.Context, view *ViewModel, format enums.ExportFormat) ([]byte, error)
}

// HTTPRenderer talks to the external rendering service.
type HTTPRenderer struct {
	httpClient *http.Client
	baseURL    string
	scale      int
	background string
}

// NewHTTPRenderer builds the production renderer client.
func NewHTTPRenderer(cfg config.RendererConfig) (*HTTPRenderer, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		return nil, fmt.Errorf("renderer base url required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	scale := cfg.Scale
	if scale <= 0 {
		scale = 2
	}
	background := cfg.Background
	if background == "" {
		background = "#ffffff"
	}

	return &HTTPRenderer{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(base, "/"),
		scale:      scale,
		background: background,
	}, nil
}

type renderRequest struct {
	View       *ViewModel `json:"view"`
	Format     string     `json:"format"`
	Scale      int        `json:"scale"`
	Background string     `json:"background"`
}

// Render posts the view to the rendering service and returns the artifact
// bytes. Every failure maps to EXPORT_FAILED; no partial artifact is kept.
func (r *HTTPRenderer) Render(ctx context.Context, view *ViewModel, format enums.ExportFormat) ([]byte, error) {
	payload, err := json.Marshal(renderRequest{
		View:       view,
		Format:     format.String(),
		Scale:      r.scale,
		Background: r.background,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeExportFailed, err, "marshal render request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/render", bytes.NewReader(payload))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeExportFailed, err, "build render request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", format.ContentType())

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeExportFailed, err, "renderer unreachable")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, pkgerrors.Wrap(
			pkgerrors.CodeExportFailed,
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))),
			"renderer returned an error",
		)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeExportFailed, err, "read artifact")
	}
	if len(data) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeExportFailed, "renderer produced an empty artifact")
	}
	return data, nil
}
