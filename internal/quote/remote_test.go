package quote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairwayev/quotedesk-backend/pkg/config"
	"github.com/fairwayev/quotedesk-backend/pkg/enums"
	pkgerrors "github.com/fairwayev/quotedesk-backend/pkg/errors"
)

func newRemoteUnderTest(t *testing.T, handler http.Handler) *RemoteStore {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	remote := NewRemoteStore(config.RemoteConfig{BaseURL: server.URL, Timeout: 2 * time.Second})
	require.NotNil(t, remote)
	return remote
}

func TestNewRemoteStoreDisabledWithoutBaseURL(t *testing.T) {
	assert.Nil(t, NewRemoteStore(config.RemoteConfig{}))
	assert.Nil(t, NewRemoteStore(config.RemoteConfig{BaseURL: "   "}))
}

func TestRemoteListDecodesEnvelope(t *testing.T) {
	doc := pendingDoc(t)
	remote := newRemoteUnderTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/quotes", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": []any{doc}})
	}))

	docs, err := remote.List(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, doc.ID, docs[0].ID)
	assert.True(t, docs[0].Total.Equal(doc.Total))
}

func TestRemoteCreatePostsToSubmit(t *testing.T) {
	doc := pendingDoc(t)
	var gotPath string
	remote := newRemoteUnderTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))

	require.NoError(t, remote.Create(context.Background(), doc))
	assert.Equal(t, "POST /quotes/submit", gotPath)
}

func TestRemoteSetStatusPutsStatusPayload(t *testing.T) {
	id := uuid.New()
	var gotBody map[string]string
	remote := newRemoteUnderTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/quotes/"+id.String()+"/status", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))

	require.NoError(t, remote.SetStatus(context.Background(), id, enums.QuoteStatusApproved))
	assert.Equal(t, "approved", gotBody["status"])
}

func TestRemoteMapsNotFound(t *testing.T) {
	remote := newRemoteUnderTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := remote.Get(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestRemoteMapsServerErrorToUnavailable(t *testing.T) {
	remote := newRemoteUnderTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))

	_, err := remote.List(context.Background())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeRemoteUnavailable))
}

func TestRemoteMapsFailureEnvelopeToUnavailable(t *testing.T) {
	remote := newRemoteUnderTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "maintenance"})
	}))

	err := remote.Delete(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeRemoteUnavailable))
	assert.Contains(t, err.Error(), "maintenance")
}

func TestRemoteMapsNetworkErrorToUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	remote := NewRemoteStore(config.RemoteConfig{BaseURL: server.URL, Timeout: 2 * time.Second})
	server.Close()

	_, err := remote.List(context.Background())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeRemoteUnavailable))
}
