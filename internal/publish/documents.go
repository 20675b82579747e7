package publish

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// DocumentStore stores JSON records by collection and id.
type DocumentStore interface {
	PutRecord(ctx context.Context, collection, id string, record any) error
	Close() error
}

// OpenDocumentStore picks a store from its target: an http(s) URL selects
// HTTPDocumentStore, anything else is a SQLite database path.
func OpenDocumentStore(target, token string) (DocumentStore, error) {
	switch {
	case target == "":
		return nil, fmt.Errorf("%w: document store", ErrNoTarget)
	case isURL(target):
		return NewHTTPDocumentStore(target, token), nil
	default:
		return NewSQLiteStore(target)
	}
}

// SQLiteStore keeps records in a local SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore opens or creates the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &SQLiteStore{db: db, now: time.Now}
	if err := s.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) init() error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := s.db.Exec(p); err != nil {
			return fmt.Errorf("pragma failed: %w", err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS records (
			collection TEXT NOT NULL,
			id TEXT NOT NULL,
			body TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			PRIMARY KEY (collection, id)
		);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("schema creation failed: %w", err)
	}
	return nil
}

// PutRecord inserts or replaces one record.
func (s *SQLiteStore) PutRecord(ctx context.Context, collection, id string, record any) error {
	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO records (collection, id, body, updated_at) VALUES (?, ?, ?, ?)",
		collection, id, string(body), s.now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("put record %s/%s: %w", collection, id, err)
	}
	return nil
}

// GetRecord returns the raw JSON of a record, or false if it does not exist.
func (s *SQLiteStore) GetRecord(ctx context.Context, collection, id string) (json.RawMessage, bool, error) {
	var body string
	err := s.db.QueryRowContext(ctx,
		"SELECT body FROM records WHERE collection = ? AND id = ?", collection, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get record %s/%s: %w", collection, id, err)
	}
	return json.RawMessage(body), true, nil
}

// Count returns the number of records in collection.
func (s *SQLiteStore) Count(ctx context.Context, collection string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM records WHERE collection = ?", collection).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, err)
	}
	return n, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// HTTPDocumentStore writes records to a key-value HTTP API as
// PUT {baseURL}/kv/{collection}/{id} with body {"value": record}.
type HTTPDocumentStore struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewHTTPDocumentStore creates an HTTP document store client.
func NewHTTPDocumentStore(baseURL, token string) *HTTPDocumentStore {
	return &HTTPDocumentStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{},
	}
}

type recordRequest struct {
	Value any `json:"value"`
}

// PutRecord stores record under collection/id.
func (s *HTTPDocumentStore) PutRecord(ctx context.Context, collection, id string, record any) error {
	body, err := json.Marshal(recordRequest{Value: record})
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	u := s.baseURL + "/kv/" + url.PathEscape(collection) + "/" + url.PathEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("put record: %w", err)
	}
	defer resp.Body.Close()
	return checkStatus("put record "+collection+"/"+id, resp)
}

// Close releases idle connections.
func (s *HTTPDocumentStore) Close() error {
	s.httpClient.CloseIdleConnections()
	return nil
}

// Compile-time interface checks.
var (
	_ DocumentStore = (*SQLiteStore)(nil)
	_ DocumentStore = (*HTTPDocumentStore)(nil)
)
