package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPStorage reads documents from a static HTTP origin, such as the CDN the
// storefront is deployed to. It cannot write.
type HTTPStorage struct {
	baseURL string
	client  *http.Client
}

// NewHTTPStorage creates a read-only storage rooted at baseURL. A nil client
// uses a client with a 15 second timeout.
func NewHTTPStorage(baseURL string, client *http.Client) (*HTTPStorage, error) {
	if baseURL == "" {
		return nil, newStorageError(codeInvalid, "HTTP storage base URL is required")
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTPStorage{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
	}, nil
}

func (s *HTTPStorage) Put(ctx context.Context, key string, content io.Reader, contentType string) (string, error) {
	return "", ErrReadOnly
}

func (s *HTTPStorage) Delete(ctx context.Context, key string) error {
	return ErrReadOnly
}

func (s *HTTPStorage) URL(key string) string {
	return s.baseURL + "/" + strings.TrimPrefix(key, "/")
}

func (s *HTTPStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	resp, err := s.do(ctx, http.MethodGet, key)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, s.statusError(key, resp.StatusCode)
	}
	return resp.Body, nil
}

func (s *HTTPStorage) Exists(ctx context.Context, key string) (bool, error) {
	resp, err := s.do(ctx, http.MethodHead, key)
	if err != nil {
		return false, err
	}
	resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return true, nil
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	default:
		return false, s.statusError(key, resp.StatusCode)
	}
}

func (s *HTTPStorage) do(ctx context.Context, method, key string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, s.URL(key), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", key, err)
	}
	return resp, nil
}

func (s *HTTPStorage) statusError(key string, status int) error {
	if status == http.StatusNotFound {
		return ErrFileNotFound(key)
	}
	return fmt.Errorf("failed to fetch %s: unexpected status %d", key, status)
}
