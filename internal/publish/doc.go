// Package publish uploads a processed book: chapter pages, extracted images
// and chunk files go to an object store, book and chapter records to a
// document store. Every single write is retried under one RetryPolicy;
// exhausting it aborts the upload.
//
// Object keys:
//
//	books/<slug>/chapters/<file>
//	books/<slug>/images/<file>
//	books/<slug>/chunks/<id>.tex
//
// Document collections:
//
//	books     keyed by the book id
//	chapters  keyed by <book id>#<position>
package publish
