// Package sanitizer normalizes user supplied room data before validation and
// storage.
//
// All functions are idempotent. Invalid input is handled by returning an
// empty string rather than an error, leaving rejection to the validator.
//
// Normalization includes:
//   - Names: collapse whitespace, trim leading/trailing spaces
//   - Room ids: replace unsupported characters with single dashes
//   - Slices: remove duplicates and empty values after normalization
package sanitizer
