// Package latex implements the LaTeX-facing stages of the book pipeline:
//   - a linear-scan tokenizer producing command and environment events
//   - balanced argument reading for commands found by the tokenizer
//   - normalization of nonstandard macros before external rendering
//   - title/author metadata extraction
//
// Nothing in this package validates markup. Malformed or unterminated
// constructs produce no events and pass through normalization unchanged.
package latex
