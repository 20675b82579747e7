package main

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// envConfig holds configuration from environment variables.
type envConfig struct {
	BooksDir         string // QUICKBOOK_BOOKS_DIR: books directory
	Renderer         string // QUICKBOOK_RENDERER: pandoc binary
	ObjectStore      string // QUICKBOOK_OBJECT_STORE: directory or http(s) URL
	ObjectStoreToken string // QUICKBOOK_OBJECT_STORE_TOKEN: bearer token
	DocStore         string // QUICKBOOK_DOC_STORE: sqlite file or http(s) URL
	DocStoreToken    string // QUICKBOOK_DOC_STORE_TOKEN: bearer token
	DateFormat       string // QUICKBOOK_DATE_FORMAT: status timestamp format
}

// knownEnvVars lists valid QUICKBOOK_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"QUICKBOOK_BOOKS_DIR":          true,
	"QUICKBOOK_RENDERER":           true,
	"QUICKBOOK_OBJECT_STORE":       true,
	"QUICKBOOK_OBJECT_STORE_TOKEN": true,
	"QUICKBOOK_DOC_STORE":          true,
	"QUICKBOOK_DOC_STORE_TOKEN":    true,
	"QUICKBOOK_DATE_FORMAT":        true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	return &envConfig{
		BooksDir:         os.Getenv("QUICKBOOK_BOOKS_DIR"),
		Renderer:         os.Getenv("QUICKBOOK_RENDERER"),
		ObjectStore:      os.Getenv("QUICKBOOK_OBJECT_STORE"),
		ObjectStoreToken: os.Getenv("QUICKBOOK_OBJECT_STORE_TOKEN"),
		DocStore:         os.Getenv("QUICKBOOK_DOC_STORE"),
		DocStoreToken:    os.Getenv("QUICKBOOK_DOC_STORE_TOKEN"),
		DateFormat:       os.Getenv("QUICKBOOK_DATE_FORMAT"),
	}
}

// warnUnknownEnvVars logs warnings for unrecognized QUICKBOOK_* variables.
// Helps catch typos like QUICKBOOK_DOCSTORE instead of QUICKBOOK_DOC_STORE.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "QUICKBOOK_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig fills flag values the user left unset.
// Priority: CLI flags > env vars > defaults.
func applyEnvConfig(env *envConfig, f *commonFlags) {
	if env.BooksDir != "" && f.booksDir == "" {
		f.booksDir = env.BooksDir
	}
}

// hasPublishTarget reports whether any store is configured.
func (e *envConfig) hasPublishTarget() bool {
	return e.ObjectStore != "" || e.DocStore != ""
}
