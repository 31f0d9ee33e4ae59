package service

import (
	"database/sql"
	"errors"
	"strings"

	"reviewapi/internal/repository"
)

var (
	ErrInvalidID          = errors.New("id must be a positive integer")
	ErrNotFound           = errors.New("record not found")
	ErrFirstNameRequired  = errors.New("first_name is required")
	ErrLastNameRequired   = errors.New("last_name is required")
	ErrNameRequired       = errors.New("name is required")
	ErrExportsUnavailable = errors.New("review exports are not configured")
)

const defaultPageLimit = 10

// ListResult is the service-level DTO for paginated records.
type ListResult[T any] struct {
	Items []T `json:"data"`
	Total int `json:"total"`
}

// pageQuery applies the default limit and clamps a negative offset.
func pageQuery(limit, offset int) repository.PageQuery {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return repository.PageQuery{Limit: limit, Offset: offset}
}

// notFound maps sql.ErrNoRows to ErrNotFound and leaves other errors alone.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
