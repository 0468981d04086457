package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fairwayev/quotedesk-backend/pkg/db/models"
)

// Repository defines persistence operations for the order history table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Append(ctx context.Context, order *models.Order) (*models.Order, error)
	List(ctx context.Context, filter Filter) ([]models.Order, error)
	Find(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Remove(ctx context.Context, id uuid.UUID) (int64, error)
	RemoveMany(ctx context.Context, ids []uuid.UUID) (int64, error)
	Clear(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an order history repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// Append inserts the order at the head of the ledger. The sequence number is
// taken inside the caller's transaction so concurrent appends cannot collide.
func (r *repository) Append(ctx context.Context, order *models.Order) (*models.Order, error) {
	var maxSeq int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("COALESCE(MAX(seq), 0)").
		Scan(&maxSeq).Error
	if err != nil {
		return nil, err
	}

	order.Seq = maxSeq + 1
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) List(ctx context.Context, filter Filter) ([]models.Order, error) {
	query := r.db.WithContext(ctx).Model(&models.Order{})

	if cutoff, ok := filter.CutoffAt(time.Now()); ok {
		query = query.Where("create_time >= ?", cutoff)
	}
	if search := filter.NormalizedSearch(); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("LOWER(quote_number) LIKE ? OR LOWER(customer_info) LIKE ?", pattern, pattern)
	}

	var orders []models.Order
	if err := query.Order("seq DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) Find(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) Remove(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Order{})
	return res.RowsAffected, res.Error
}

func (r *repository) RemoveMany(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&models.Order{})
	return res.RowsAffected, res.Error
}

func (r *repository) Clear(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&models.Order{})
	return res.RowsAffected, res.Error
}
