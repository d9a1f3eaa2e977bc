package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/cvelab/collatzmgr/internal/errors"
)

func TestLocalBackend_Compute(t *testing.T) {
	b := NewLocalBackend()

	sequence, err := b.Compute(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 16, 8, 4, 2, 1}, sequence)
}

func TestLocalBackend_InvalidInput(t *testing.T) {
	b := NewLocalBackend()

	_, err := b.Compute(context.Background(), 0)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidInput))
}

func TestRemoteBackend_Compute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/collatz", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("number"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"number": 5, "sequence": [5, 16, 8, 4, 2, 1]}`))
	}))
	defer server.Close()

	b := NewRemoteBackend(server.URL, time.Second)
	sequence, err := b.Compute(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 16, 8, 4, 2, 1}, sequence)
}

func TestRemoteBackend_RemoteErrorCarriesServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "Number must be positive"}`))
	}))
	defer server.Close()

	b := NewRemoteBackend(server.URL, time.Second)
	_, err := b.Compute(context.Background(), -3)
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeRemote, appErr.Type)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
	assert.Contains(t, appErr.Message, "Number must be positive")
	assert.Equal(t, -3, appErr.Number)
}

func TestRemoteBackend_InternalServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Internal server error"}`))
	}))
	defer server.Close()

	b := NewRemoteBackend(server.URL, time.Second)
	_, err := b.Compute(context.Background(), 7)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeRemote))
}

func TestRemoteBackend_DecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	}))
	defer server.Close()

	b := NewRemoteBackend(server.URL, time.Second)
	_, err := b.Compute(context.Background(), 7)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeDecode))
}

func TestRemoteBackend_EmptySequenceIsDecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"number": 7, "sequence": []}`))
	}))
	defer server.Close()

	b := NewRemoteBackend(server.URL, time.Second)
	_, err := b.Compute(context.Background(), 7)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeDecode))
}

func TestRemoteBackend_ConnectionRefused(t *testing.T) {
	b := NewRemoteBackend("http://127.0.0.1:1", 200*time.Millisecond)
	_, err := b.Compute(context.Background(), 7)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeRemote))
}

func TestRemoteBackend_ContextCancellation(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	b := NewRemoteBackend(server.URL, 0)

	done := make(chan error, 1)
	go func() {
		_, err := b.Compute(ctx, 7)
		done <- err
	}()

	<-started
	cancel()

	select {
	case err := <-done:
		require.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Compute did not return after context cancellation")
	}
}
