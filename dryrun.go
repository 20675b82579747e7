package quickbook

import (
	"context"
	"log/slog"
)

// dryRunObjects logs object writes instead of performing them.
type dryRunObjects struct {
	logger *slog.Logger
}

func (d *dryRunObjects) Put(_ context.Context, key string, body []byte, contentType string) error {
	d.logger.Info("dry run: would upload object", "key", key, "bytes", len(body), "type", contentType)
	return nil
}

// dryRunDocuments logs record writes instead of performing them.
type dryRunDocuments struct {
	logger *slog.Logger
}

func (d *dryRunDocuments) PutRecord(_ context.Context, collection, id string, _ any) error {
	d.logger.Info("dry run: would store record", "collection", collection, "id", id)
	return nil
}

func (d *dryRunDocuments) Close() error { return nil }
