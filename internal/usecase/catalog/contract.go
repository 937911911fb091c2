package catalog

import (
	"context"
	"time"

	domdoc "github.com/kailas-cloud/docshelf/internal/domain/document"
)

// Loader reads every catalog record from the backing source, in source order.
type Loader interface {
	Load(ctx context.Context) ([]domdoc.Document, error)
}

// Recorder observes index builds and queries (metrics hook).
type Recorder interface {
	IndexBuilt(documents int, duration time.Duration, err error)
	Queried(kind string, results int)
}

type nopRecorder struct{}

func (nopRecorder) IndexBuilt(int, time.Duration, error) {}
func (nopRecorder) Queried(string, int)                  {}
