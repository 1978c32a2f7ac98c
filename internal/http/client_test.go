package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		assert.Equal(t, "https://example.com/music", r.Header.Get("Referer"))
		w.Write([]byte("payload"))
	}))
	defer server.Close()

	client := NewClient("test-agent", "https://example.com/music")
	body, err := client.Get(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, "payload", string(body))
}

func TestGetNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient("test-agent", "")
	_, err := client.Get(context.Background(), server.URL)

	var nerr *NetworkError
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, http.StatusNotFound, nerr.StatusCode)
}

func TestNetworkErrorRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  *NetworkError
		want bool
	}{
		{"server error", &NetworkError{StatusCode: 503}, true},
		{"internal error", &NetworkError{StatusCode: 500}, true},
		{"not found", &NetworkError{StatusCode: 404}, false},
		{"forbidden", &NetworkError{StatusCode: 403}, false},
		{"timeout", &NetworkError{Err: timeoutError{}}, true},
		{"other transport error", &NetworkError{Err: errors.New("connection refused")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Retryable())
		})
	}
}

type timeoutError struct{}

func (timeoutError) Error() string   { return "timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestDownloadFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("audio bytes"))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "track.wav")
	client := NewClient("test-agent", "")

	written, err := client.DownloadFile(context.Background(), server.URL, dest)
	require.NoError(t, err)
	assert.Equal(t, int64(len("audio bytes")), written)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "audio bytes", string(data))

	// The temp file must never survive a successful download.
	_, err = os.Stat(dest + ".part")
	assert.True(t, os.IsNotExist(err))
}

func TestDownloadFileFailureLeavesNothing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "track.wav")
	client := NewClient("test-agent", "")

	_, err := client.DownloadFile(context.Background(), server.URL, dest)
	require.Error(t, err)

	_, err = os.Stat(dest)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(dest + ".part")
	assert.True(t, os.IsNotExist(err))
}
