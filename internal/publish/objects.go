package publish

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
)

// ObjectStore stores opaque blobs under slash-separated keys.
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
}

// OpenObjectStore picks a store from its target: an http(s) URL selects
// HTTPObjectStore, anything else is a directory for DirStore.
func OpenObjectStore(target, token string) (ObjectStore, error) {
	switch {
	case target == "":
		return nil, fmt.Errorf("%w: object store", ErrNoTarget)
	case isURL(target):
		return NewHTTPObjectStore(target, token), nil
	default:
		return &DirStore{Root: target}, nil
	}
}

// DirStore writes objects as files below Root.
type DirStore struct {
	Root string
}

// Put writes body to Root/key, creating parent directories.
func (s *DirStore) Put(_ context.Context, key string, body []byte, _ string) error {
	clean := path.Clean("/" + key)[1:]
	if clean == "" || clean != key {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	dest := filepath.Join(s.Root, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
		return fmt.Errorf("creating directory for %s: %w", key, err)
	}
	if err := os.WriteFile(dest, body, 0o644); err != nil { // #nosec G306 -- published content is public
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// HTTPObjectStore PUTs objects to {baseURL}/{key} with a bearer token.
type HTTPObjectStore struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewHTTPObjectStore creates an HTTP object store client.
func NewHTTPObjectStore(baseURL, token string) *HTTPObjectStore {
	return &HTTPObjectStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{},
	}
}

// Put uploads body to key.
func (s *HTTPObjectStore) Put(ctx context.Context, key string, body []byte, contentType string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.baseURL+"/"+key, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	defer resp.Body.Close()
	return checkStatus("put object "+key, resp)
}

// checkStatus accepts any 2xx response.
func checkStatus(op string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	return &statusError{op: op, status: resp.StatusCode, body: strings.TrimSpace(string(body))}
}

func isURL(target string) bool {
	return strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://")
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

// Compile-time interface checks.
var (
	_ ObjectStore = (*DirStore)(nil)
	_ ObjectStore = (*HTTPObjectStore)(nil)
)
