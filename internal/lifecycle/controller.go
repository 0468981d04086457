// Package lifecycle orchestrates the multi-step quote operations: submission
// into both the review queue and the order history, edits, approval
// decisions, and explicit history deletion.
package lifecycle

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fairwayev/quotedesk-backend/internal/ledger"
	"github.com/fairwayev/quotedesk-backend/internal/quote"
	"github.com/fairwayev/quotedesk-backend/internal/template"
	"github.com/fairwayev/quotedesk-backend/pkg/db/models"
	"github.com/fairwayev/quotedesk-backend/pkg/enums"
	"github.com/fairwayev/quotedesk-backend/pkg/logger"
	"github.com/fairwayev/quotedesk-backend/pkg/types"
)

type quoteStore interface {
	Create(ctx context.Context, doc *models.QuoteDocument) (enums.StoreSource, error)
	Update(ctx context.Context, id uuid.UUID, patch quote.EditPatch) (*models.QuoteDocument, enums.StoreSource, error)
	SetStatus(ctx context.Context, id uuid.UUID, status enums.QuoteStatus) (*models.QuoteDocument, enums.StoreSource, error)
	Delete(ctx context.Context, id uuid.UUID) (enums.StoreSource, error)
}

type snapshotter interface {
	Snapshot(ctx context.Context) (types.TemplateSnapshot, error)
}

// Controller wires the quote store, the order history and the template into
// the buyer- and staff-facing operations.
type Controller struct {
	store     quoteStore
	history   ledger.Service
	templates snapshotter
	logg      *logger.Logger
}

// NewController builds the lifecycle controller.
func NewController(store quoteStore, history ledger.Service, templates template.Service, logg *logger.Logger) (*Controller, error) {
	if store == nil {
		return nil, fmt.Errorf("quote store required")
	}
	if history == nil {
		return nil, fmt.Errorf("order history required")
	}
	if templates == nil {
		return nil, fmt.Errorf("template service required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Controller{
		store:     store,
		history:   history,
		templates: templates,
		logg:      logg,
	}, nil
}

// SubmitInput is the buyer's selection at generation time.
type SubmitInput struct {
	Items        []types.LineItem
	CustomerInfo string
}

// SubmitResult reports both halves of a submission. QuoteStored is false when
// the review queue could not be written at all; the history entry still
// exists in that case.
type SubmitResult struct {
	Quote       *models.QuoteDocument
	Order       *models.Order
	Source      enums.StoreSource
	QuoteStored bool
}

// Submit builds a pending quote and writes it to the review queue and the
// order history. The history append is attempted even when the queue write
// fails outright: the buyer-facing flow must not be blocked by backend
// unavailability, so history is best-effort-durable and local.
func (c *Controller) Submit(ctx context.Context, input SubmitInput) (*SubmitResult, error) {
	snapshot, err := c.templates.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := quote.NewFromSelection(input.Items, snapshot, input.CustomerInfo)
	if err != nil {
		return nil, err
	}
	ctx = c.logg.WithQuoteID(ctx, doc.ID.String())

	result := &SubmitResult{Quote: doc, QuoteStored: true}
	result.Source, err = c.store.Create(ctx, doc)
	if err != nil {
		result.QuoteStored = false
		result.Source = enums.StoreSourceLocal
		c.logg.Warn(c.logg.WithField(ctx, "reason", err.Error()), "review queue write failed, keeping history entry")
	}

	order, err := c.history.Append(ctx, doc)
	if err != nil {
		if !result.QuoteStored {
			return nil, err
		}
		c.logg.Error(ctx, "history append failed after queue write", err)
		return nil, err
	}
	result.Order = order
	return result, nil
}

// Edit applies a patch to a pending quote.
func (c *Controller) Edit(ctx context.Context, id uuid.UUID, patch quote.EditPatch) (*models.QuoteDocument, enums.StoreSource, error) {
	return c.store.Update(ctx, id, patch)
}

// Approve moves a pending quote to approved.
func (c *Controller) Approve(ctx context.Context, id uuid.UUID) (*models.QuoteDocument, enums.StoreSource, error) {
	return c.store.SetStatus(ctx, id, enums.QuoteStatusApproved)
}

// Reject moves a pending quote to rejected.
func (c *Controller) Reject(ctx context.Context, id uuid.UUID) (*models.QuoteDocument, enums.StoreSource, error) {
	return c.store.SetStatus(ctx, id, enums.QuoteStatusRejected)
}

// DeleteQuote withdraws a quote from the review queue. The order history is
// deliberately untouched; a withdrawn quote keeps its historical record.
func (c *Controller) DeleteQuote(ctx context.Context, id uuid.UUID) (enums.StoreSource, error) {
	return c.store.Delete(ctx, id)
}

// DeleteOrder removes a single history entry and reports the removed count.
func (c *Controller) DeleteOrder(ctx context.Context, id uuid.UUID) (int64, error) {
	return c.history.Remove(ctx, id)
}

// BatchDeleteOrders removes the given history entries and reports how many
// actually existed.
func (c *Controller) BatchDeleteOrders(ctx context.Context, ids []uuid.UUID) (int64, error) {
	return c.history.RemoveMany(ctx, ids)
}

// ClearOrders wipes the order history.
func (c *Controller) ClearOrders(ctx context.Context) (int64, error) {
	return c.history.Clear(ctx)
}
