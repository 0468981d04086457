// Package export builds exportable representations of quotes and archived
// orders and drives the external rendering service.
package export

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fairwayev/quotedesk-backend/internal/ledger"
	"github.com/fairwayev/quotedesk-backend/pkg/db/models"
	"github.com/fairwayev/quotedesk-backend/pkg/enums"
	pkgerrors "github.com/fairwayev/quotedesk-backend/pkg/errors"
	"github.com/fairwayev/quotedesk-backend/pkg/logger"
	"github.com/fairwayev/quotedesk-backend/pkg/metrics"
)

type quoteStore interface {
	Get(ctx context.Context, id uuid.UUID) (*models.QuoteDocument, enums.StoreSource, error)
	SetStatus(ctx context.Context, id uuid.UUID, status enums.QuoteStatus) (*models.QuoteDocument, enums.StoreSource, error)
}

// Artifact is a finished export ready for download.
type Artifact struct {
	Name        string
	ContentType string
	Data        []byte
}

// Coordinator runs the export pipeline: load the document, resolve its image
// refs under the bounded wait, render, and on the finalize path archive the
// quote as completed.
type Coordinator struct {
	store     quoteStore
	history   ledger.Service
	renderer  Renderer
	loader    ImageLoader
	imageWait time.Duration
	metrics   *metrics.StoreMetrics
	logg      *logger.Logger
}

// NewCoordinator builds the export coordinator.
func NewCoordinator(store quoteStore, history ledger.Service, renderer Renderer, loader ImageLoader, imageWait time.Duration, m *metrics.StoreMetrics, logg *logger.Logger) (*Coordinator, error) {
	if store == nil {
		return nil, fmt.Errorf("quote store required")
	}
	if history == nil {
		return nil, fmt.Errorf("order history required")
	}
	if renderer == nil {
		return nil, fmt.Errorf("renderer required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if imageWait <= 0 {
		imageWait = 5 * time.Second
	}
	return &Coordinator{
		store:     store,
		history:   history,
		renderer:  renderer,
		loader:    loader,
		imageWait: imageWait,
		metrics:   m,
		logg:      logg,
	}, nil
}

// ExportQuote exports a quote from the review queue. An approved quote is
// archived as completed once its artifact exists; a render failure changes
// nothing.
func (c *Coordinator) ExportQuote(ctx context.Context, id uuid.UUID, format enums.ExportFormat) (*Artifact, error) {
	ctx = c.logg.WithQuoteID(ctx, id.String())

	doc, _, err := c.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	artifact, err := c.render(ctx, FromQuote(doc), format)
	if err != nil {
		c.metrics.IncExport(format.String(), "failure")
		return nil, err
	}

	if doc.Status == enums.QuoteStatusApproved {
		if _, _, err := c.store.SetStatus(ctx, id, enums.QuoteStatusCompleted); err != nil {
			// The artifact is already produced; losing the archive step must
			// not fail the download.
			c.logg.Warn(c.logg.WithField(ctx, "reason", err.Error()), "quote export succeeded but completion was not recorded")
		}
	}

	c.metrics.IncExport(format.String(), "success")
	return artifact, nil
}

// ExportOrder re-exports an archived history entry. Nothing is mutated; the
// view is rebuilt from the frozen order and must come out identical on every
// call.
func (c *Coordinator) ExportOrder(ctx context.Context, id uuid.UUID, format enums.ExportFormat) (*Artifact, error) {
	ctx = c.logg.WithOrderID(ctx, id.String())

	order, err := c.history.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	artifact, err := c.render(ctx, FromOrder(order), format)
	if err != nil {
		c.metrics.IncExport(format.String(), "failure")
		return nil, err
	}
	c.metrics.IncExport(format.String(), "success")
	return artifact, nil
}

// BuildView exposes the deterministic view model used for rendering.
func (c *Coordinator) BuildView(input ViewInput) *ViewModel {
	return BuildViewModel(input)
}

func (c *Coordinator) render(ctx context.Context, input ViewInput, format enums.ExportFormat) (*Artifact, error) {
	if !format.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unsupported export format").
			WithDetails(map[string]any{"format": format})
	}

	view := BuildViewModel(input)

	refs := make([]string, 0, len(view.Lines))
	for _, line := range view.Lines {
		refs = append(refs, line.ImageRef)
	}
	states := resolveImages(ctx, c.loader, refs, c.imageWait)
	for i := range view.Lines {
		if view.Lines[i].ImageRef == "" {
			continue
		}
		view.Lines[i].ImageState = states[view.Lines[i].ImageRef]
	}

	data, err := c.renderer.Render(ctx, view, format)
	if err != nil {
		if pkgerrors.IsCode(err, pkgerrors.CodeExportFailed) {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeExportFailed, err, "render document")
	}

	return &Artifact{
		Name:        ArtifactName("quote", input.QuoteNumber, format.Extension()),
		ContentType: format.ContentType(),
		Data:        data,
	}, nil
}
