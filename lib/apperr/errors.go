// Package apperr holds the sentinel errors shared across the service
// boundary. Store and provider errors are wrapped with one of these before
// they leave lib/, so handlers only ever match on this taxonomy.
package apperr

import "errors"

var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
	ErrSummaryGeneration = errors.New("summary generation failed")
	ErrStoreWrite        = errors.New("store write failed")
)
