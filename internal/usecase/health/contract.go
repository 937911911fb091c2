package health

import "context"

// CatalogState reports whether the catalog index is built.
type CatalogState interface {
	Ready() bool
}

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}
