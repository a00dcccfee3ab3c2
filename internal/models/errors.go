package models

import "errors"

var (
	// ErrNotFound is returned when a requested resource is not found.
	// Child-record operations also return it when the parent order does
	// not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict is returned when a write violates a store-level
	// constraint (unique key, foreign key, check).
	ErrConflict = errors.New("request conflicts with existing data")
)
