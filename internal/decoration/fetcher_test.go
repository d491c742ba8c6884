package decoration

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFetcher_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"url":"https://i.waifu.pics/abc.png"}`)
	}))
	defer server.Close()

	f := NewFetcher(server.URL, time.Second)
	assert.Equal(t, "https://i.waifu.pics/abc.png", f.Fetch(context.Background()))
}

func TestFetcher_Fetch_Fallback(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}},
		{"malformed json", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"url":`)
		}},
		{"missing url", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"message":"rate limited"}`)
		}},
		{"empty url", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"url":""}`)
		}},
		{"non-string url", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"url":42}`)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			f := NewFetcher(server.URL, time.Second)
			assert.Equal(t, FallbackURL, f.Fetch(context.Background()))
		})
	}
}

func TestFetcher_Fetch_Timeout(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	f := NewFetcher(server.URL, 100*time.Millisecond)
	start := time.Now()
	url := f.Fetch(context.Background())
	elapsed := time.Since(start)

	assert.Equal(t, "https://i.imgur.com/3ZQ3Z5b.png", url)
	assert.Less(t, elapsed, 5*time.Second)
	assert.Equal(t, int32(1), calls.Load(), "fetch must not retry")
}

func TestFetcher_Fetch_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := server.URL
	server.Close()

	f := NewFetcher(endpoint, time.Second)
	assert.Equal(t, FallbackURL, f.Fetch(context.Background()))
}

func TestFetcher_Fetch_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"url":"https://i.waifu.pics/abc.png"}`)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewFetcher(server.URL, time.Second)
	assert.Equal(t, FallbackURL, f.Fetch(ctx))
}

func TestNewFetcher_Defaults(t *testing.T) {
	f := NewFetcher("", 0)
	assert.Equal(t, DefaultEndpoint, f.endpoint)
	assert.Equal(t, DefaultTimeout, f.timeout)
	assert.Equal(t, DefaultTimeout, f.client.Timeout)
}
