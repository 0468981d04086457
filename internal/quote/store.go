package quote

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fairwayev/quotedesk-backend/pkg/db"
	"github.com/fairwayev/quotedesk-backend/pkg/db/models"
	"github.com/fairwayev/quotedesk-backend/pkg/enums"
	pkgerrors "github.com/fairwayev/quotedesk-backend/pkg/errors"
	"github.com/fairwayev/quotedesk-backend/pkg/logger"
	"github.com/fairwayev/quotedesk-backend/pkg/metrics"
)

// Remote is the upstream quote service surface the store forwards to.
type Remote interface {
	List(ctx context.Context) ([]models.QuoteDocument, error)
	Get(ctx context.Context, id uuid.UUID) (*models.QuoteDocument, error)
	Create(ctx context.Context, doc *models.QuoteDocument) error
	Update(ctx context.Context, doc *models.QuoteDocument) error
	SetStatus(ctx context.Context, id uuid.UUID, status enums.QuoteStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Store is the single entry point for quotes in review. Operations go to the
// remote service first; when it is unreachable, or does not know the id, the
// local mirror serves the request and its outcome is what the caller sees.
// The two sides are never reconciled with each other; every response carries
// the source that actually served it.
type Store struct {
	remote  Remote
	mirror  Mirror
	metrics *metrics.StoreMetrics
	logg    *logger.Logger
}

// NewStore builds the quote store. A nil remote runs the store mirror-only.
func NewStore(remote Remote, mirror Mirror, m *metrics.StoreMetrics, logg *logger.Logger) (*Store, error) {
	if mirror == nil {
		return nil, fmt.Errorf("quote mirror required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if rs, ok := remote.(*RemoteStore); ok && rs == nil {
		remote = nil
	}
	return &Store{
		remote:  remote,
		mirror:  mirror,
		metrics: m,
		logg:    logg,
	}, nil
}

// List returns every quote in review, newest first.
func (s *Store) List(ctx context.Context) ([]models.QuoteDocument, enums.StoreSource, error) {
	if s.remote != nil {
		docs, err := s.remote.List(ctx)
		if err == nil {
			s.metrics.IncRead(enums.StoreSourceRemote.String())
			return docs, enums.StoreSourceRemote, nil
		}
		if !s.fallBack(ctx, "list quotes", err) {
			return nil, enums.StoreSourceRemote, err
		}
	}

	docs, err := s.mirror.List(ctx)
	if err != nil {
		return nil, enums.StoreSourceLocal, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list mirrored quotes")
	}
	s.metrics.IncRead(enums.StoreSourceLocal.String())
	return docs, enums.StoreSourceLocal, nil
}

// Get returns the quote with the given id.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*models.QuoteDocument, enums.StoreSource, error) {
	ctx = s.logg.WithQuoteID(ctx, id.String())

	if s.remote != nil {
		doc, err := s.remote.Get(ctx, id)
		if err == nil {
			s.metrics.IncRead(enums.StoreSourceRemote.String())
			return doc, enums.StoreSourceRemote, nil
		}
		if !s.fallBack(ctx, "get quote", err) {
			return nil, enums.StoreSourceRemote, err
		}
	}

	doc, err := s.mirror.Find(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, enums.StoreSourceLocal, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
		}
		return nil, enums.StoreSourceLocal, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load mirrored quote")
	}
	s.metrics.IncRead(enums.StoreSourceLocal.String())
	return doc, enums.StoreSourceLocal, nil
}

// Create persists a newly built quote into the review queue.
func (s *Store) Create(ctx context.Context, doc *models.QuoteDocument) (enums.StoreSource, error) {
	ctx = s.logg.WithQuoteID(ctx, doc.ID.String())

	if s.remote != nil {
		err := s.remote.Create(ctx, doc)
		if err == nil {
			return enums.StoreSourceRemote, nil
		}
		if !s.fallBack(ctx, "create quote", err) {
			return enums.StoreSourceRemote, err
		}
	}

	if _, err := s.mirror.Create(ctx, doc); err != nil {
		return enums.StoreSourceLocal, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mirror quote create")
	}
	return enums.StoreSourceLocal, nil
}

// Update applies an edit to a pending quote and persists the result. The
// money fields are recomputed as a unit before anything is written.
func (s *Store) Update(ctx context.Context, id uuid.UUID, patch EditPatch) (*models.QuoteDocument, enums.StoreSource, error) {
	ctx = s.logg.WithQuoteID(ctx, id.String())

	doc, _, err := s.Get(ctx, id)
	if err != nil {
		return nil, enums.StoreSourceLocal, err
	}
	if err := ApplyEdit(doc, patch); err != nil {
		return nil, enums.StoreSourceLocal, err
	}

	if s.remote != nil {
		err := s.remote.Update(ctx, doc)
		if err == nil {
			return doc, enums.StoreSourceRemote, nil
		}
		if !s.fallBack(ctx, "update quote", err) {
			return nil, enums.StoreSourceRemote, err
		}
	}

	if err := s.mirror.Save(ctx, doc); err != nil {
		return nil, enums.StoreSourceLocal, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mirror quote update")
	}
	return doc, enums.StoreSourceLocal, nil
}

// SetStatus advances the quote through the approval state machine. Invalid
// transitions are rejected before either side is touched.
func (s *Store) SetStatus(ctx context.Context, id uuid.UUID, status enums.QuoteStatus) (*models.QuoteDocument, enums.StoreSource, error) {
	ctx = s.logg.WithQuoteID(ctx, id.String())

	doc, _, err := s.Get(ctx, id)
	if err != nil {
		return nil, enums.StoreSourceLocal, err
	}
	if !doc.Status.CanTransitionTo(status) {
		return nil, enums.StoreSourceLocal, pkgerrors.New(pkgerrors.CodeInvalidTransition, "status transition not allowed").
			WithDetails(map[string]any{"from": doc.Status, "to": status})
	}

	if s.remote != nil {
		err := s.remote.SetStatus(ctx, id, status)
		if err == nil {
			doc.Status = status
			return doc, enums.StoreSourceRemote, nil
		}
		if !s.fallBack(ctx, "set quote status", err) {
			return nil, enums.StoreSourceRemote, err
		}
	}

	rows, err := s.mirror.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, enums.StoreSourceLocal, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mirror status update")
	}
	if rows == 0 {
		return nil, enums.StoreSourceLocal, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
	}
	doc.Status = status
	return doc, enums.StoreSourceLocal, nil
}

// Delete withdraws a quote from the review queue.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) (enums.StoreSource, error) {
	ctx = s.logg.WithQuoteID(ctx, id.String())

	if s.remote != nil {
		err := s.remote.Delete(ctx, id)
		if err == nil {
			return enums.StoreSourceRemote, nil
		}
		if !s.fallBack(ctx, "delete quote", err) {
			return enums.StoreSourceRemote, err
		}
	}

	rows, err := s.mirror.Delete(ctx, id)
	if err != nil {
		return enums.StoreSourceLocal, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mirror quote delete")
	}
	if rows == 0 {
		return enums.StoreSourceLocal, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
	}
	return enums.StoreSourceLocal, nil
}

// fallBack reports whether the mirror should take over after a remote error.
// Availability failures always fall through; so does an upstream miss, since
// quotes created during an outage exist only in the mirror.
func (s *Store) fallBack(ctx context.Context, op string, err error) bool {
	if !pkgerrors.IsCode(err, pkgerrors.CodeRemoteUnavailable) && !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		return false
	}
	s.metrics.IncFallback()
	s.logg.Warn(s.logg.WithFields(ctx, map[string]any{"op": op, "reason": err.Error()}), "quote service unavailable, serving from mirror")
	return true
}
