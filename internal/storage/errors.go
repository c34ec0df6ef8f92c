package storage

import "errors"

var (
	// ErrDuplicate is returned when an article's link is already stored.
	// Collection treats it as expected and counts it, never as a failure.
	ErrDuplicate = errors.New("article link already exists")

	// ErrReferential is returned when a prediction or query log references
	// an article that does not exist.
	ErrReferential = errors.New("referenced article does not exist")

	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")
)
