package main

// Notes:
// - Tests use t.Setenv() which prevents t.Parallel().

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv("QUICKBOOK_BOOKS_DIR", "/srv/books")
	t.Setenv("QUICKBOOK_RENDERER", "/opt/pandoc")
	t.Setenv("QUICKBOOK_OBJECT_STORE", "https://cdn.example.com")
	t.Setenv("QUICKBOOK_OBJECT_STORE_TOKEN", "obj-token")
	t.Setenv("QUICKBOOK_DOC_STORE", "records.db")
	t.Setenv("QUICKBOOK_DOC_STORE_TOKEN", "doc-token")
	t.Setenv("QUICKBOOK_DATE_FORMAT", "long")

	cfg := loadEnvConfig()

	want := envConfig{
		BooksDir:         "/srv/books",
		Renderer:         "/opt/pandoc",
		ObjectStore:      "https://cdn.example.com",
		ObjectStoreToken: "obj-token",
		DocStore:         "records.db",
		DocStoreToken:    "doc-token",
		DateFormat:       "long",
	}
	if *cfg != want {
		t.Errorf("loadEnvConfig() = %+v, want %+v", *cfg, want)
	}
	if !cfg.hasPublishTarget() {
		t.Error("hasPublishTarget() = false")
	}
}

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("QUICKBOOK_DOCSTORE", "typo")
	t.Setenv("QUICKBOOK_BOOKS_DIR", "books")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)

	if !strings.Contains(buf.String(), "QUICKBOOK_DOCSTORE") {
		t.Errorf("expected warning for QUICKBOOK_DOCSTORE, got %q", buf.String())
	}
	if strings.Contains(buf.String(), "QUICKBOOK_BOOKS_DIR") {
		t.Errorf("known variable reported as unknown: %q", buf.String())
	}
}

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		env  string
		flag string
		want string
	}{
		{"env fills empty flag", "/srv/books", "", "/srv/books"},
		{"flag wins over env", "/srv/books", "local", "local"},
		{"neither set", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := commonFlags{booksDir: tt.flag}
			applyEnvConfig(&envConfig{BooksDir: tt.env}, &f)
			if f.booksDir != tt.want {
				t.Errorf("booksDir = %q, want %q", f.booksDir, tt.want)
			}
		})
	}
}
