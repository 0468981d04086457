package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fairwayev/quotedesk-backend/api/responses"
	"github.com/fairwayev/quotedesk-backend/api/validators"
	"github.com/fairwayev/quotedesk-backend/internal/export"
	"github.com/fairwayev/quotedesk-backend/internal/ledger"
	"github.com/fairwayev/quotedesk-backend/pkg/enums"
	pkgerrors "github.com/fairwayev/quotedesk-backend/pkg/errors"
	"github.com/fairwayev/quotedesk-backend/pkg/logger"
)

// OrderRemover is the destructive side of the history ledger.
type OrderRemover interface {
	DeleteOrder(ctx context.Context, id uuid.UUID) (int64, error)
	BatchDeleteOrders(ctx context.Context, ids []uuid.UUID) (int64, error)
	ClearOrders(ctx context.Context) (int64, error)
}

// OrderExporter re-renders an archived order into a downloadable artifact.
type OrderExporter interface {
	ExportOrder(ctx context.Context, id uuid.UUID, format enums.ExportFormat) (*export.Artifact, error)
}

type batchDeleteRequest struct {
	IDs []uuid.UUID `json:"ids" validate:"required,min=1"`
}

// OrderList returns history entries newest-first, with the aggregate stats
// the dashboard header shows.
func OrderList(history ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if history == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order history unavailable"))
			return
		}

		filter, err := buildOrderFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orders, err := history.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders"))
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"orders": orders,
			"stats":  ledger.Aggregate(orders),
		})
	}
}

// OrderExportCSV streams the filtered history as a spreadsheet-friendly CSV.
func OrderExportCSV(history ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if history == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order history unavailable"))
			return
		}

		filter, err := buildOrderFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orders, err := history.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders"))
			return
		}

		name := export.CSVListName("orders", time.Now())
		writeAttachment(w, "text/csv; charset=utf-8", name, export.OrdersCSV(orders))
	}
}

// OrderExportArtifact re-renders an archived order. The output is built from
// the frozen entry alone, so repeated exports are byte-identical.
func OrderExportArtifact(exporter OrderExporter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if exporter == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "exporter unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		format, err := validators.ParseExportFormat(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		artifact, err := exporter.ExportOrder(r.Context(), id, format)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeAttachment(w, artifact.ContentType, artifact.Name, artifact.Data)
	}
}

func OrderDelete(remover OrderRemover, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if remover == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order history unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		removed, err := remover.DeleteOrder(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order"))
			return
		}
		if removed == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "order not found"))
			return
		}

		responses.WriteSuccess(w, map[string]any{"removed": removed})
	}
}

func OrderBatchDelete(remover OrderRemover, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if remover == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order history unavailable"))
			return
		}

		var body batchDeleteRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		removed, err := remover.BatchDeleteOrders(r.Context(), body.IDs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "batch delete orders"))
			return
		}

		responses.WriteSuccess(w, map[string]any{"removed": removed})
	}
}

func OrderClear(remover OrderRemover, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if remover == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order history unavailable"))
			return
		}

		removed, err := remover.ClearOrders(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear orders"))
			return
		}

		responses.WriteSuccess(w, map[string]any{"removed": removed})
	}
}

func buildOrderFilter(r *http.Request) (ledger.Filter, error) {
	bucket, err := validators.ParseDateBucket(r)
	if err != nil {
		return ledger.Filter{}, err
	}
	return ledger.Filter{
		Bucket: bucket,
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
	}, nil
}
