// Package chunker extracts typed, size-bounded retrieval chunks from raw
// LaTeX source.
//
// Extraction runs two passes over one tokenized source. The environment
// pass claims theorem-like blocks in type priority order; the section pass
// then claims section blocks, splitting large ones on paragraph boundaries.
// Both passes share an Allocator, so no two chunks ever cover the same
// source bytes, and a single order counter, so environment chunks always
// precede section chunks in output order.
//
// Constructs that fail to tokenize (unterminated environments, unbalanced
// arguments) yield no candidates and are silently omitted.
package chunker
