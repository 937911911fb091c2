package catalog

import (
	"context"

	"github.com/kailas-cloud/docshelf/internal/domain"
	domdoc "github.com/kailas-cloud/docshelf/internal/domain/document"
)

// Repo implements usecase/catalog.Loader over a Source.
type Repo struct {
	source Source
}

// New creates a catalog repository.
func New(src Source) *Repo {
	return &Repo{source: src}
}

// Load reads and decodes every record in source order.
// Records are not validated. Any read or decode failure is a *domain.SourceError.
func (r *Repo) Load(ctx context.Context) ([]domdoc.Document, error) {
	data, err := r.source.Read(ctx)
	if err != nil {
		return nil, domain.NewSourceError(r.source.Location(), err)
	}

	records, err := decodeRecords(data, r.source.Format())
	if err != nil {
		return nil, domain.NewSourceError(r.source.Location(), err)
	}

	docs := make([]domdoc.Document, len(records))
	for i := range records {
		docs[i] = records[i].toDomain()
	}
	return docs, nil
}

// Location names the underlying source for logs.
func (r *Repo) Location() string { return r.source.Location() }
