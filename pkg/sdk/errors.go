package docshelf

import "github.com/kailas-cloud/docshelf/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound    = domain.ErrNotFound
	ErrDataSource  = domain.ErrDataSource
	ErrDuplicateID = domain.ErrDuplicateID
)
