package controllers

import (
	"net/http"

	"github.com/fairwayev/quotedesk-backend/api/responses"
	"github.com/fairwayev/quotedesk-backend/api/validators"
	"github.com/fairwayev/quotedesk-backend/internal/template"
	pkgerrors "github.com/fairwayev/quotedesk-backend/pkg/errors"
	"github.com/fairwayev/quotedesk-backend/pkg/logger"
)

type templateUpdateRequest struct {
	CompanyName    *string `json:"companyName,omitempty" validate:"omitempty,max=200"`
	CompanyPhone   *string `json:"companyPhone,omitempty" validate:"omitempty,max=50"`
	CompanyAddress *string `json:"companyAddress,omitempty" validate:"omitempty,max=500"`
	ValidityDays   *int    `json:"validityDays,omitempty" validate:"omitempty,gt=0"`
}

// TemplateGet returns the current presentation template.
func TemplateGet(svc template.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "template service unavailable"))
			return
		}

		current, err := svc.Current(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, current)
	}
}

// TemplateUpdate applies a partial template edit. Existing quotes keep the
// snapshot taken at their creation.
func TemplateUpdate(svc template.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "template service unavailable"))
			return
		}

		var body templateUpdateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.Update(r.Context(), template.UpdatePatch{
			CompanyName:    body.CompanyName,
			CompanyPhone:   body.CompanyPhone,
			CompanyAddress: body.CompanyAddress,
			ValidityDays:   body.ValidityDays,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}
