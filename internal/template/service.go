// Package template manages the single editable presentation template that
// new quotes snapshot at creation time.
package template

import (
	"context"
	"fmt"
	"strings"

	"github.com/fairwayev/quotedesk-backend/pkg/db"
	"github.com/fairwayev/quotedesk-backend/pkg/db/models"
	pkgerrors "github.com/fairwayev/quotedesk-backend/pkg/errors"
	"github.com/fairwayev/quotedesk-backend/pkg/types"
)

// UpdatePatch carries a partial template edit. Nil fields are left unchanged.
type UpdatePatch struct {
	CompanyName    *string
	CompanyPhone   *string
	CompanyAddress *string
	ValidityDays   *int
}

// Service reads and updates the presentation template.
type Service interface {
	Current(ctx context.Context) (*models.QuoteTemplate, error)
	Snapshot(ctx context.Context) (types.TemplateSnapshot, error)
	Update(ctx context.Context, patch UpdatePatch) (*models.QuoteTemplate, error)
}

type service struct {
	repo Repository
}

// NewService builds the template service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("template repository required")
	}
	return &service{repo: repo}, nil
}

// Current returns the template row, falling back to defaults when the seed
// row is missing.
func (s *service) Current(ctx context.Context) (*models.QuoteTemplate, error) {
	tmpl, err := s.repo.Get(ctx)
	if err != nil {
		if db.IsNotFound(err) {
			return &models.QuoteTemplate{ID: templateRowID, ValidityDays: 30}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load template")
	}
	return tmpl, nil
}

// Snapshot freezes the current template for embedding into a new quote.
func (s *service) Snapshot(ctx context.Context) (types.TemplateSnapshot, error) {
	tmpl, err := s.Current(ctx)
	if err != nil {
		return types.TemplateSnapshot{}, err
	}
	return types.TemplateSnapshot{
		CompanyName:    tmpl.CompanyName,
		CompanyPhone:   tmpl.CompanyPhone,
		CompanyAddress: tmpl.CompanyAddress,
		ValidityDays:   tmpl.ValidityDays,
	}, nil
}

func (s *service) Update(ctx context.Context, patch UpdatePatch) (*models.QuoteTemplate, error) {
	tmpl, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}

	if patch.CompanyName != nil {
		tmpl.CompanyName = strings.TrimSpace(*patch.CompanyName)
	}
	if patch.CompanyPhone != nil {
		tmpl.CompanyPhone = strings.TrimSpace(*patch.CompanyPhone)
	}
	if patch.CompanyAddress != nil {
		tmpl.CompanyAddress = strings.TrimSpace(*patch.CompanyAddress)
	}
	if patch.ValidityDays != nil {
		if *patch.ValidityDays <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "validity days must be positive")
		}
		tmpl.ValidityDays = *patch.ValidityDays
	}

	if err := s.repo.Save(ctx, tmpl); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save template")
	}
	return tmpl, nil
}
