package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairwayev/quotedesk-backend/internal/export"
	"github.com/fairwayev/quotedesk-backend/internal/ledger"
	"github.com/fairwayev/quotedesk-backend/pkg/db/models"
	"github.com/fairwayev/quotedesk-backend/pkg/enums"
)

type stubHistory struct {
	ledger.Service
	list func(ctx context.Context, filter ledger.Filter) ([]models.Order, error)
}

func (s *stubHistory) List(ctx context.Context, filter ledger.Filter) ([]models.Order, error) {
	return s.list(ctx, filter)
}

type stubRemover struct {
	deleteOrder func(ctx context.Context, id uuid.UUID) (int64, error)
	batchDelete func(ctx context.Context, ids []uuid.UUID) (int64, error)
	clear       func(ctx context.Context) (int64, error)
}

func (s *stubRemover) DeleteOrder(ctx context.Context, id uuid.UUID) (int64, error) {
	return s.deleteOrder(ctx, id)
}

func (s *stubRemover) BatchDeleteOrders(ctx context.Context, ids []uuid.UUID) (int64, error) {
	return s.batchDelete(ctx, ids)
}

func (s *stubRemover) ClearOrders(ctx context.Context) (int64, error) {
	return s.clear(ctx)
}

type stubOrderExporter struct {
	exportOrder func(ctx context.Context, id uuid.UUID, format enums.ExportFormat) (*export.Artifact, error)
}

func (s *stubOrderExporter) ExportOrder(ctx context.Context, id uuid.UUID, format enums.ExportFormat) (*export.Artifact, error) {
	return s.exportOrder(ctx, id, format)
}

func testOrder(total int64) models.Order {
	return models.Order{
		ID:          uuid.New(),
		Seq:         1,
		QuoteNumber: "Q20250902-000001",
		Total:       decimal.NewFromInt(total),
		CreateTime:  time.Now(),
	}
}

func TestOrderListReturnsStats(t *testing.T) {
	history := &stubHistory{
		list: func(ctx context.Context, filter ledger.Filter) ([]models.Order, error) {
			assert.Equal(t, enums.DateBucketToday, filter.Bucket)
			assert.Equal(t, "EV", filter.Search)
			return []models.Order{testOrder(11300), testOrder(5650)}, nil
		},
	}

	rec := doRequest(OrderList(history, testLogger()), http.MethodGet, "/orders?range=today&search=EV", "/orders", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	payload := decodeEnvelope(t, rec)
	data := payload["data"].(map[string]any)
	stats := data["stats"].(map[string]any)
	assert.EqualValues(t, 2, stats["count"])
	assert.Equal(t, "16950", stats["totalAmount"])
	assert.EqualValues(t, 2, stats["todayCount"])
}

func TestOrderListRejectsUnknownRange(t *testing.T) {
	history := &stubHistory{}

	rec := doRequest(OrderList(history, testLogger()), http.MethodGet, "/orders?range=yesterday", "/orders", nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderExportCSVDownload(t *testing.T) {
	history := &stubHistory{
		list: func(ctx context.Context, filter ledger.Filter) ([]models.Order, error) {
			return []models.Order{testOrder(11300)}, nil
		},
	}

	rec := doRequest(OrderExportCSV(history, testLogger()), http.MethodGet, "/orders/export.csv", "/orders/export.csv", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "orders_")
	// UTF-8 BOM leads the payload so spreadsheet apps pick the right charset.
	body := rec.Body.Bytes()
	require.True(t, len(body) > 3)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, body[:3])
}

func TestOrderExportArtifactIdempotent(t *testing.T) {
	calls := 0
	exporter := &stubOrderExporter{
		exportOrder: func(ctx context.Context, id uuid.UUID, format enums.ExportFormat) (*export.Artifact, error) {
			calls++
			return &export.Artifact{
				Name:        "quote_Q20250902-000001.png",
				ContentType: "image/png",
				Data:        []byte("png-bytes"),
			}, nil
		},
	}

	path := "/orders/" + uuid.NewString() + "/export"
	first := doRequest(OrderExportArtifact(exporter, testLogger()), http.MethodPost, path, "/orders/{orderId}/export", nil)
	second := doRequest(OrderExportArtifact(exporter, testLogger()), http.MethodPost, path, "/orders/{orderId}/export", nil)

	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, first.Body.Bytes(), second.Body.Bytes())
	assert.Equal(t, 2, calls)
}

func TestOrderDeleteNotFound(t *testing.T) {
	remover := &stubRemover{
		deleteOrder: func(ctx context.Context, id uuid.UUID) (int64, error) {
			return 0, nil
		},
	}

	rec := doRequest(OrderDelete(remover, testLogger()), http.MethodDelete, "/orders/"+uuid.NewString(), "/orders/{orderId}", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrderDeleteSuccess(t *testing.T) {
	remover := &stubRemover{
		deleteOrder: func(ctx context.Context, id uuid.UUID) (int64, error) {
			return 1, nil
		},
	}

	rec := doRequest(OrderDelete(remover, testLogger()), http.MethodDelete, "/orders/"+uuid.NewString(), "/orders/{orderId}", nil)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestOrderBatchDelete(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New()}
	remover := &stubRemover{
		batchDelete: func(ctx context.Context, got []uuid.UUID) (int64, error) {
			assert.Equal(t, ids, got)
			return 2, nil
		},
	}

	body, _ := json.Marshal(map[string]any{"ids": ids})
	rec := doRequest(OrderBatchDelete(remover, testLogger()), http.MethodPost, "/orders/batch-delete", "/orders/batch-delete", body)

	require.Equal(t, http.StatusOK, rec.Code)
	payload := decodeEnvelope(t, rec)
	data := payload["data"].(map[string]any)
	assert.EqualValues(t, 2, data["removed"])
}

func TestOrderBatchDeleteEmptyIDs(t *testing.T) {
	remover := &stubRemover{}

	rec := doRequest(OrderBatchDelete(remover, testLogger()), http.MethodPost, "/orders/batch-delete", "/orders/batch-delete", []byte(`{"ids":[]}`))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderClear(t *testing.T) {
	remover := &stubRemover{
		clear: func(ctx context.Context) (int64, error) {
			return 7, nil
		},
	}

	rec := doRequest(OrderClear(remover, testLogger()), http.MethodDelete, "/orders", "/orders", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	payload := decodeEnvelope(t, rec)
	data := payload["data"].(map[string]any)
	assert.EqualValues(t, 7, data["removed"])
}
