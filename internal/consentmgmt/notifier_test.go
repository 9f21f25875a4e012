package consentmgmt

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyStatusPostsNormalizedStatus(t *testing.T) {
	var gotPath, gotStatus string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		var update statusUpdate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&update))
		gotStatus = update.Status
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := NewNotifier(srv.URL, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	n.NotifyStatus(context.Background(), "consent-1", " FINALISED ")

	assert.Equal(t, "/operations/consent-1/status", gotPath)
	assert.Equal(t, "finalised", gotStatus)
}

func TestNotifyStatusSwallowsFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	n := NewNotifier(srv.URL, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	// Must not panic or propagate anything.
	n.NotifyStatus(context.Background(), "consent-1", "FAILED")

	unreachable := NewNotifier("http://127.0.0.1:1", nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	unreachable.NotifyStatus(context.Background(), "consent-1", "FAILED")
}

func TestNotifyStatusDisabledWithoutBaseURL(t *testing.T) {
	n := NewNotifier("", nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	n.NotifyStatus(context.Background(), "consent-1", "FINALISED")
}
