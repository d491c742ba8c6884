package decoration

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

const (
	DefaultEndpoint = "https://api.waifu.pics/sfw/waifu"
	DefaultTimeout  = 8 * time.Second
	FallbackURL     = "https://i.imgur.com/3ZQ3Z5b.png"

	maxBodySize = 64 << 10
)

// Fetcher asks an image API for a random picture URL
type Fetcher struct {
	endpoint string
	timeout  time.Duration
	client   *http.Client
}

func NewFetcher(endpoint string, timeout time.Duration) *Fetcher {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		endpoint: endpoint,
		timeout:  timeout,
		client:   httpClient(timeout),
	}
}

// Fetch makes a single attempt and returns [FallbackURL] on any failure
func (f *Fetcher) Fetch(ctx context.Context) string {
	url, err := f.fetch(ctx)
	if err != nil {
		slog.Debug("decorative image unavailable, using fallback", "endpoint", f.endpoint, "error", err)
		return FallbackURL
	}
	return url
}

func (f *Fetcher) fetch(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			slog.Error("failed to close response body", "url", f.endpoint, "err", err)
		}
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("received non-OK status code: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", err
	}
	if !gjson.ValidBytes(data) {
		return "", fmt.Errorf("malformed JSON response")
	}
	url := gjson.GetBytes(data, "url")
	if url.Type != gjson.String || url.String() == "" {
		return "", fmt.Errorf("image url not found in the response")
	}

	return url.String(), nil
}
