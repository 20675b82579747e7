// Package quickbook turns a LaTeX book manuscript into reader chapters and
// retrieval chunks, and publishes both.
//
// # Quick Start
//
//	svc := quickbook.NewService(
//	    quickbook.WithBooksDir("books"),
//	    quickbook.WithLogger(slog.Default()),
//	)
//	if _, err := svc.Init("real-analysis"); err != nil {
//	    log.Fatal(err)
//	}
//	// copy the manuscript to books/real-analysis/source/, then:
//	if _, err := svc.Process(ctx, "real-analysis"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Stages
//
// Each stage reads what the previous one wrote below the book directory:
//
//  1. Convert normalizes the source (breqn, alignat and custom macros),
//     records its title and author, and renders it to HTML with pandoc.
//  2. Split detects chapter headings in the HTML, writes one page per
//     chapter and the manifest.
//  3. Chunk extracts typed, non-overlapping spans (theorems, proofs,
//     sections...) from the raw source for a retrieval index.
//  4. Upload stores chapter pages, images and chunk files in an object
//     store and the book and chapter records in a document store.
//
// # Layout
//
//	books/<slug>/
//	├── book.yaml
//	├── manifest.json
//	├── source/     manuscript, normalized copy, metadata.json
//	├── html/       rendered document and extracted media
//	├── chapters/   chapter-01.html ...
//	└── chunks/     <id>.tex, summary.json, report.html
//
// A book may also carry assets/styles/<name>.css to override the embedded
// chapter stylesheets.
//
// # Dry Run
//
// WithDryRun makes every stage log the files and uploads it would write
// without touching the disk or the network. Rendering is skipped.
package quickbook
