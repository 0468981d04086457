package quote

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fairwayev/quotedesk-backend/pkg/db/models"
	"github.com/fairwayev/quotedesk-backend/pkg/enums"
)

// Mirror defines persistence operations for the local quote mirror that backs
// the store when the remote service is unreachable.
type Mirror interface {
	WithTx(tx *gorm.DB) Mirror
	List(ctx context.Context) ([]models.QuoteDocument, error)
	Find(ctx context.Context, id uuid.UUID) (*models.QuoteDocument, error)
	Create(ctx context.Context, doc *models.QuoteDocument) (*models.QuoteDocument, error)
	Save(ctx context.Context, doc *models.QuoteDocument) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.QuoteStatus) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type mirror struct {
	db *gorm.DB
}

// NewMirror builds a quote mirror bound to the provided DB.
func NewMirror(db *gorm.DB) Mirror {
	return &mirror{db: db}
}

func (m *mirror) WithTx(tx *gorm.DB) Mirror {
	if tx == nil {
		return m
	}
	return &mirror{db: tx}
}

func (m *mirror) List(ctx context.Context) ([]models.QuoteDocument, error) {
	var docs []models.QuoteDocument
	err := m.db.WithContext(ctx).
		Order("create_time DESC").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (m *mirror) Find(ctx context.Context, id uuid.UUID) (*models.QuoteDocument, error) {
	var doc models.QuoteDocument
	err := m.db.WithContext(ctx).
		Where("id = ?", id).
		First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (m *mirror) Create(ctx context.Context, doc *models.QuoteDocument) (*models.QuoteDocument, error) {
	if err := m.db.WithContext(ctx).Create(doc).Error; err != nil {
		return nil, err
	}
	return doc, nil
}

// Save upserts by id. A quote that was served by the remote store may not be
// in the mirror yet when an edit falls back here.
func (m *mirror) Save(ctx context.Context, doc *models.QuoteDocument) error {
	return m.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
		Create(doc).Error
}

func (m *mirror) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.QuoteStatus) (int64, error) {
	res := m.db.WithContext(ctx).
		Model(&models.QuoteDocument{}).
		Where("id = ?", id).
		Update("status", status)
	return res.RowsAffected, res.Error
}

func (m *mirror) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := m.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.QuoteDocument{})
	return res.RowsAffected, res.Error
}
