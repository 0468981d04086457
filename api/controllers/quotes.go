package controllers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fairwayev/quotedesk-backend/api/responses"
	"github.com/fairwayev/quotedesk-backend/api/validators"
	"github.com/fairwayev/quotedesk-backend/internal/export"
	"github.com/fairwayev/quotedesk-backend/internal/lifecycle"
	"github.com/fairwayev/quotedesk-backend/internal/quote"
	"github.com/fairwayev/quotedesk-backend/pkg/db/models"
	"github.com/fairwayev/quotedesk-backend/pkg/enums"
	pkgerrors "github.com/fairwayev/quotedesk-backend/pkg/errors"
	"github.com/fairwayev/quotedesk-backend/pkg/logger"
	"github.com/fairwayev/quotedesk-backend/pkg/types"
)

// QuoteReader is the read side of the review queue.
type QuoteReader interface {
	List(ctx context.Context) ([]models.QuoteDocument, enums.StoreSource, error)
	Get(ctx context.Context, id uuid.UUID) (*models.QuoteDocument, enums.StoreSource, error)
}

// LifecycleService drives quote mutations through the lifecycle controller.
type LifecycleService interface {
	Submit(ctx context.Context, input lifecycle.SubmitInput) (*lifecycle.SubmitResult, error)
	Edit(ctx context.Context, id uuid.UUID, patch quote.EditPatch) (*models.QuoteDocument, enums.StoreSource, error)
	Approve(ctx context.Context, id uuid.UUID) (*models.QuoteDocument, enums.StoreSource, error)
	Reject(ctx context.Context, id uuid.UUID) (*models.QuoteDocument, enums.StoreSource, error)
	DeleteQuote(ctx context.Context, id uuid.UUID) (enums.StoreSource, error)
}

// QuoteExporter renders a quote into a downloadable artifact.
type QuoteExporter interface {
	ExportQuote(ctx context.Context, id uuid.UUID, format enums.ExportFormat) (*export.Artifact, error)
}

type submitQuoteRequest struct {
	Items        []types.LineItem `json:"items" validate:"required,min=1"`
	CustomerInfo string           `json:"customerInfo" validate:"max=500"`
}

type updateQuoteRequest struct {
	Items    *[]types.LineItem `json:"items,omitempty"`
	Discount *decimal.Decimal  `json:"discount,omitempty"`
	Remarks  *string           `json:"remarks,omitempty"`
}

type quoteStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

// SubmitQuote handles the buyer-facing generation flow.
func SubmitQuote(svc LifecycleService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "lifecycle service unavailable"))
			return
		}

		var body submitQuoteRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Submit(r.Context(), lifecycle.SubmitInput{
			Items:        body.Items,
			CustomerInfo: body.CustomerInfo,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSourced(w, map[string]any{
			"quote":  result.Quote,
			"order":  result.Order,
			"queued": result.QuoteStored,
		}, result.Source)
	}
}

// QuoteList returns the review queue, tagged with the side that served it.
func QuoteList(store QuoteReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote store unavailable"))
			return
		}

		quotes, source, err := store.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSourced(w, map[string]any{"quotes": quotes}, source)
	}
}

func QuoteDetail(store QuoteReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote store unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "quoteId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		doc, source, err := store.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSourced(w, doc, source)
	}
}

// QuoteUpdate applies a staff edit. Only pending quotes accept edits.
func QuoteUpdate(svc LifecycleService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "lifecycle service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "quoteId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateQuoteRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		patch := quote.EditPatch{
			Items:    body.Items,
			Discount: body.Discount,
			Remarks:  body.Remarks,
		}
		if patch.IsEmpty() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "empty edit"))
			return
		}

		doc, source, err := svc.Edit(r.Context(), id, patch)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSourced(w, doc, source)
	}
}

// QuoteStatus moves a pending quote to approved or rejected.
func QuoteStatus(svc LifecycleService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "lifecycle service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "quoteId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body quoteStatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var doc *models.QuoteDocument
		var source enums.StoreSource
		switch enums.QuoteStatus(body.Status) {
		case enums.QuoteStatusApproved:
			doc, source, err = svc.Approve(r.Context(), id)
		case enums.QuoteStatusRejected:
			doc, source, err = svc.Reject(r.Context(), id)
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSourced(w, doc, source)
	}
}

// QuoteDelete removes a quote from the review queue. History is untouched.
func QuoteDelete(svc LifecycleService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "lifecycle service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "quoteId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		source, err := svc.DeleteQuote(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSourced(w, map[string]string{"id": id.String()}, source)
	}
}

// QuoteExport renders the quote and streams the artifact back as a download.
func QuoteExport(exporter QuoteExporter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if exporter == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "exporter unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "quoteId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		format, err := validators.ParseExportFormat(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		artifact, err := exporter.ExportQuote(r.Context(), id, format)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeAttachment(w, artifact.ContentType, artifact.Name, artifact.Data)
	}
}

func writeAttachment(w http.ResponseWriter, contentType, name string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
