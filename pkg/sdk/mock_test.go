package docshelf

import (
	"context"

	domdoc "github.com/kailas-cloud/docshelf/internal/domain/document"
	"github.com/kailas-cloud/docshelf/internal/domain/search/query"
	healthuc "github.com/kailas-cloud/docshelf/internal/usecase/health"
)

// --- catalogUseCase mock ---

type mockCatalogUC struct {
	allFn         func(ctx context.Context) ([]domdoc.Document, error)
	filterFn      func(ctx context.Context, q query.Query) ([]domdoc.Document, error)
	findFn        func(ctx context.Context, id string) (domdoc.Document, error)
	categoriesFn  func(ctx context.Context) ([]string, error)
	fingerprintFn func(ctx context.Context) (string, error)
}

func (m *mockCatalogUC) All(ctx context.Context) ([]domdoc.Document, error) {
	return m.allFn(ctx)
}

func (m *mockCatalogUC) Filter(ctx context.Context, q query.Query) ([]domdoc.Document, error) {
	return m.filterFn(ctx, q)
}

func (m *mockCatalogUC) FindByID(ctx context.Context, id string) (domdoc.Document, error) {
	return m.findFn(ctx, id)
}

func (m *mockCatalogUC) Categories(ctx context.Context) ([]string, error) {
	return m.categoriesFn(ctx)
}

func (m *mockCatalogUC) Fingerprint(ctx context.Context) (string, error) {
	return m.fingerprintFn(ctx)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report { return m.report }

func newTestShelf(catalog catalogUseCase) *Shelf {
	return &Shelf{catalog: catalog, obs: &observer{}}
}
