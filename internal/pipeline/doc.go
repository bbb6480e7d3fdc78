// Package pipeline orchestrates batch runs over a capture directory: file
// discovery and ordering, per-file processing for the three operations
// (colors, stills, video), progress reporting, cancellation, and summary
// stats.
//
// One call to Run handles one batch. Cancellation is cooperative: the
// context is polled once per file, before decoding; a cancelled video run
// additionally terminates the encoder process immediately.
package pipeline
