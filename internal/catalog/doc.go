// Package catalog loads and validates the storefront product file.
//
// Load turns the file into a generic JSON value (numbers kept as
// json.Number so integers can be told apart from fractions) and reports
// fatal problems as typed errors: ErrFileNotFound, *DecodeError for
// non-UTF-8 input and *SyntaxError with a 1-based line and column.
// Validate runs the per-record battery and returns the findings split into
// blocking errors and advisory warnings.
package catalog
