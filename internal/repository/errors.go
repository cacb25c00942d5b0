package repository

import "errors"

var (
	// ErrRecordNotFound indicates the operation record was not found
	ErrRecordNotFound = errors.New("operation record not found")

	// ErrNilSnapshot indicates a record was appended without a buffer snapshot
	ErrNilSnapshot = errors.New("operation record has nil snapshot")
)
