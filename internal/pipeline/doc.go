// Package pipeline runs the image audit: discover candidate files, decide
// each one's outcome against the size target, optionally write the smaller
// candidates back in place, and fold the records into a report.
//
// Files:
//   - discover.go: recursive, sorted scan filtered by image extension
//   - decide.go:   per-file outcome ladder (ImageRecord, Decide)
//   - runner.go:   sequential batch loop, write mode, interrupt handling
//   - stats.go:    Report aggregation (totals, outcome counts, top savings)
//   - report.go:   deterministic text rendering of a Report
package pipeline
