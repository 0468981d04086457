package validators

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fairwayev/quotedesk-backend/pkg/enums"
	pkgerrors "github.com/fairwayev/quotedesk-backend/pkg/errors"
)

// ParseUUIDParam reads a chi URL parameter as a UUID.
func ParseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "missing path parameter").WithDetails(map[string]any{"param": name})
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "path parameter must be a uuid").WithDetails(map[string]any{"param": name})
	}
	return id, nil
}

// ParseDateBucket reads the `range` query parameter, defaulting to all time.
func ParseDateBucket(r *http.Request) (enums.DateBucket, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("range"))
	bucket, err := enums.ParseDateBucket(raw)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "unknown range filter").WithDetails(map[string]any{"range": raw})
	}
	return bucket, nil
}

// ParseExportFormat reads the `format` query parameter, defaulting to image.
func ParseExportFormat(r *http.Request) (enums.ExportFormat, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("format"))
	if raw == "" {
		return enums.ExportFormatImage, nil
	}
	format, err := enums.ParseExportFormat(raw)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "unknown export format").WithDetails(map[string]any{"format": raw})
	}
	return format, nil
}
