// Package repository contains data access layer abstractions.
// Implementations live in subpackages (sqlstore) inside this directory.
package repository

import "errors"

// Store-level constraint failures. Implementations wrap the driver error with one of
// these so callers can use errors.Is while the original error stays in the chain.
var (
	ErrForeignKeyViolation = errors.New("foreign key violation")
	ErrNotNullViolation    = errors.New("not null violation")
)

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
