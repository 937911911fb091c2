package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a document id that is not in the catalog.
	ErrNotFound = errors.New("not found")
	// ErrDataSource signals a missing, unreadable or malformed catalog source.
	ErrDataSource = errors.New("catalog data source error")
	// ErrDuplicateID signals two catalog records sharing one id.
	ErrDuplicateID = errors.New("duplicate document id")
)

// SourceError wraps ErrDataSource with the source location and the underlying cause.
type SourceError struct {
	Location string
	Err      error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrDataSource.Error(), e.Location, e.Err)
}

// Unwrap exposes both ErrDataSource and the cause to errors.Is / errors.As.
func (e *SourceError) Unwrap() []error { return []error{ErrDataSource, e.Err} }

// NewSourceError creates a data source error for the given location.
func NewSourceError(location string, err error) error {
	return &SourceError{Location: location, Err: err}
}
