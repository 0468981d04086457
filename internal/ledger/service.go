package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fairwayev/quotedesk-backend/pkg/db/models"
	pkgerrors "github.com/fairwayev/quotedesk-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service is the append-only order history: quotes frozen at the moment the
// buyer generated them. Entries never change after the append; removal is
// whole-entry and explicit.
type Service interface {
	Append(ctx context.Context, doc *models.QuoteDocument) (*models.Order, error)
	List(ctx context.Context, filter Filter) ([]models.Order, error)
	Find(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Remove(ctx context.Context, id uuid.UUID) (int64, error)
	RemoveMany(ctx context.Context, ids []uuid.UUID) (int64, error)
	Clear(ctx context.Context) (int64, error)
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds the order history service.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

// Freeze copies the quote into an immutable history entry.
func Freeze(doc *models.QuoteDocument) *models.Order {
	return &models.Order{
		ID:           doc.ID,
		QuoteNumber:  doc.QuoteNumber,
		Items:        append(doc.Items[:0:0], doc.Items...),
		ProductCount: doc.ProductCount,
		Subtotal:     doc.Subtotal,
		Discount:     doc.Discount,
		Tax:          doc.Tax,
		Total:        doc.Total,
		Template:     doc.Template,
		CustomerInfo: doc.CustomerInfo,
		CreateTime:   doc.CreateTime,
	}
}

func (s *service) Append(ctx context.Context, doc *models.QuoteDocument) (*models.Order, error) {
	if doc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quote document required")
	}

	order := Freeze(doc)
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := s.repo.WithTx(tx).Append(ctx, order)
		return err
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append order")
	}
	return order, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]models.Order, error) {
	orders, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return orders, nil
}

func (s *service) Find(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.Find(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (s *service) Remove(ctx context.Context, id uuid.UUID) (int64, error) {
	count, err := s.repo.Remove(ctx, id)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove order")
	}
	return count, nil
}

func (s *service) RemoveMany(ctx context.Context, ids []uuid.UUID) (int64, error) {
	count, err := s.repo.RemoveMany(ctx, ids)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove orders")
	}
	return count, nil
}

func (s *service) Clear(ctx context.Context) (int64, error) {
	count, err := s.repo.Clear(ctx)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear orders")
	}
	return count, nil
}

// Aggregate summarizes an already-filtered order slice. TodayCount compares
// each create time against now, both truncated to the local calendar day.
func Aggregate(orders []models.Order) Summary {
	summary := Summary{
		Count:       len(orders),
		TotalAmount: decimal.Zero,
	}

	now := time.Now()
	todayYear, todayMonth, todayDay := now.Date()
	for _, order := range orders {
		summary.TotalAmount = summary.TotalAmount.Add(order.Total)
		year, month, day := order.CreateTime.In(now.Location()).Date()
		if year == todayYear && month == todayMonth && day == todayDay {
			summary.TodayCount++
		}
	}
	return summary
}
