package template

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fairwayev/quotedesk-backend/pkg/db/models"
)

// templateRowID is the primary key of the only template row.
const templateRowID = 1

// Repository defines persistence operations for the presentation template.
type Repository interface {
	Get(ctx context.Context) (*models.QuoteTemplate, error)
	Save(ctx context.Context, tmpl *models.QuoteTemplate) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a template repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Get(ctx context.Context) (*models.QuoteTemplate, error) {
	var tmpl models.QuoteTemplate
	err := r.db.WithContext(ctx).
		Where("id = ?", templateRowID).
		First(&tmpl).Error
	if err != nil {
		return nil, err
	}
	return &tmpl, nil
}

func (r *repository) Save(ctx context.Context, tmpl *models.QuoteTemplate) error {
	tmpl.ID = templateRowID
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
		Create(tmpl).Error
}
