package itinerary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"viaggio/internal/model"
)

// DefaultSource is the document path used when none is configured.
const DefaultSource = "italy.json"

// Fetcher reads an itinerary document from a file path or an HTTP(S) URL.
type Fetcher struct {
	httpClient *http.Client
}

// NewFetcher creates a fetcher whose HTTP requests give up after timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Fetcher{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves and decodes the document at source.
func (f *Fetcher) Fetch(ctx context.Context, source string) (*model.Document, error) {
	if source == "" {
		source = DefaultSource
	}

	var body io.ReadCloser
	if isURL(source) {
		rc, err := f.get(ctx, source)
		if err != nil {
			return nil, err
		}
		body = rc
	} else {
		file, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("failed to open document: %w", err)
		}
		body = file
	}
	defer body.Close()

	var doc model.Document
	if err := json.NewDecoder(body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("JSON decode error: %w", err)
	}
	return &doc, nil
}

func (f *Fetcher) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}

	// Non-2xx response
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch error: status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
