package discovery

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFetch_Success verifies the body is returned and the User-Agent sent
func TestFetch_Success(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<a class="x" href="/a">Başlık</a>`))
	}))
	defer server.Close()

	body, err := NewFetcher().Fetch(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, "Mozilla/5.0", gotUA)
	assert.Equal(t, `<a class="x" href="/a">Başlık</a>`, body)
}

// TestFetch_CustomUserAgent verifies WithUserAgent
func TestFetch_CustomUserAgent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer server.Close()

	_, err := NewFetcher(WithUserAgent("newscards-test")).Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "newscards-test", gotUA)

	// An empty override keeps the default
	_, err = NewFetcher(WithUserAgent("")).Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, DefaultUserAgent, gotUA)
}

// TestFetch_DecodesDeclaredCharset verifies non-UTF-8 pages are decoded
func TestFetch_DecodesDeclaredCharset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=windows-1254")
		// "başlığı" in windows-1254
		w.Write([]byte("ba\xfel\xfd\xf0\xfd"))
	}))
	defer server.Close()

	body, err := NewFetcher().Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "başlığı", body)
}

// TestFetch_HTTPError verifies non-2xx responses become StatusError
func TestFetch_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	body, err := NewFetcher().Fetch(context.Background(), server.URL)
	require.Error(t, err)
	assert.Empty(t, body)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Equal(t, server.URL, statusErr.URL)
	assert.Contains(t, err.Error(), "404")
}

// TestFetch_TransportError verifies connection failures are reported
func TestFetch_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewFetcher().Fetch(context.Background(), url)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch URL")
}

// TestFetch_InvalidURL verifies request construction errors
func TestFetch_InvalidURL(t *testing.T) {
	_, err := NewFetcher().Fetch(context.Background(), "://missing-scheme")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create request")
}

// TestFetch_Cancelled verifies the context aborts the request
func TestFetch_Cancelled(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFetcher().Fetch(ctx, server.URL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

// TestFetch_Timeout verifies WithTimeout bounds a slow request
func TestFetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	_, err := NewFetcher(WithTimeout(50*time.Millisecond)).Fetch(context.Background(), server.URL)
	require.Error(t, err)
}
