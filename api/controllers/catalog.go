package controllers

import (
	"net/http"
	"time"

	"github.com/fairwayev/quotedesk-backend/api/responses"
	"github.com/fairwayev/quotedesk-backend/internal/catalog"
	"github.com/fairwayev/quotedesk-backend/internal/export"
	pkgerrors "github.com/fairwayev/quotedesk-backend/pkg/errors"
	"github.com/fairwayev/quotedesk-backend/pkg/logger"
)

// CatalogSource serves the latest product snapshot from memory.
type CatalogSource interface {
	Snapshot() (catalog.Snapshot, bool)
}

// Catalog returns the product selection data backing the buyer UI.
func Catalog(source CatalogSource, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if source == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		snapshot, ok := source.Snapshot()
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "catalog not loaded yet"))
			return
		}

		responses.WriteSuccess(w, snapshot)
	}
}

// CatalogExportCSV downloads the current price list as CSV.
func CatalogExportCSV(source CatalogSource, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if source == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		snapshot, ok := source.Snapshot()
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "catalog not loaded yet"))
			return
		}

		name := export.CSVListName("prices", time.Now())
		writeAttachment(w, "text/csv; charset=utf-8", name, export.PriceListCSV(snapshot.Products))
	}
}
