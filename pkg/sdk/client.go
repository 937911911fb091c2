package docshelf

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docshelf/internal/db"
	dbValkey "github.com/kailas-cloud/docshelf/internal/db/valkey"
	domdoc "github.com/kailas-cloud/docshelf/internal/domain/document"
	"github.com/kailas-cloud/docshelf/internal/domain/search/query"
	catalogrepo "github.com/kailas-cloud/docshelf/internal/repository/catalog"
	cataloguc "github.com/kailas-cloud/docshelf/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/docshelf/internal/usecase/health"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interface so tests can substitute the catalog.
type catalogUseCase interface {
	All(ctx context.Context) ([]domdoc.Document, error)
	Filter(ctx context.Context, q query.Query) ([]domdoc.Document, error)
	FindByID(ctx context.Context, id string) (domdoc.Document, error)
	Categories(ctx context.Context) ([]string, error)
	Fingerprint(ctx context.Context) (string, error)
}

// Shelf is the docshelf SDK entry point. Safe for concurrent use.
type Shelf struct {
	store     db.Store
	catalog   catalogUseCase
	healthSvc healthUseCase
	obs       *observer
}

// Open reads the catalog and returns a ready Shelf.
// The provided context bounds the database readiness check and the catalog read.
func Open(ctx context.Context, opts ...Option) (*Shelf, error) {
	cfg := &shelfConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	source, store, err := createSource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	svc := cataloguc.New(catalogrepo.New(source)).WithCollation(cfg.collation)
	if cfg.rejectDuplicates {
		svc = svc.WithDuplicatePolicy(cataloguc.DuplicatesReject)
	}
	if cfg.logger != nil {
		svc = svc.WithLogger(zap.New(newSlogCore(cfg.logger)).Named("catalog"))
	}

	start := time.Now()
	err = svc.Warm(ctx)
	obs.observe("open", start, 0, err)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("docshelf: open catalog: %w", err)
	}

	return wireShelf(store, svc, obs), nil
}

func createSource(ctx context.Context, cfg *shelfConfig) (catalogrepo.Source, db.Store, error) {
	switch cfg.source {
	case "file":
		if cfg.path == "" {
			return nil, nil, errors.New("docshelf: catalog path required")
		}
		return catalogrepo.NewFileSource(cfg.path), nil, nil
	case "valkey":
		s, err := dbValkey.NewStore(dbValkey.Config{
			Addrs:      cfg.addrs,
			Password:   cfg.password,
			Standalone: cfg.standalone,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("docshelf: create valkey store: %w", err)
		}
		if err := s.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			s.Close()
			return nil, nil, fmt.Errorf("docshelf: database not ready: %w", err)
		}
		key := cfg.key
		if key == "" {
			key = DefaultKey
		}
		return catalogrepo.NewKVSource(s, key), s, nil
	case "":
		return nil, nil, errors.New("docshelf: catalog source required (use WithFile or WithValkey)")
	default:
		return nil, nil, fmt.Errorf("docshelf: unknown source %q", cfg.source)
	}
}

func wireShelf(store db.Store, svc *cataloguc.Service, obs *observer) *Shelf {
	// A nil *valkey.Store must not reach health as a non-nil interface.
	var pinger healthuc.DBPinger
	if store != nil {
		pinger = store
	}
	return &Shelf{
		store:     store,
		catalog:   svc,
		healthSvc: healthuc.New(svc, pinger),
		obs:       obs,
	}
}

// Close releases all resources.
func (s *Shelf) Close() {
	if s.store != nil {
		s.store.Close()
	}
}

// All returns every document in catalog order.
func (s *Shelf) All(ctx context.Context) (_ []Document, err error) {
	start := time.Now()
	var docs []domdoc.Document
	defer func() { s.obs.observe("all", start, len(docs), err) }()

	docs, err = s.catalog.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("all: %w", err)
	}
	return docsFromDomain(docs), nil
}

// Search returns documents whose title, category, product family or tags contain term
// and whose category equals category, both case-insensitively. Empty values match everything.
// The result is never nil.
func (s *Shelf) Search(ctx context.Context, term, category string) (_ []Document, err error) {
	start := time.Now()
	var docs []domdoc.Document
	defer func() { s.obs.observe("search", start, len(docs), err) }()

	docs, err = s.catalog.Filter(ctx, query.New(term, category))
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return docsFromDomain(docs), nil
}

// Get returns the document with the given id. A miss wraps ErrNotFound.
func (s *Shelf) Get(ctx context.Context, id string) (_ Document, err error) {
	start := time.Now()
	defer func() { s.obs.observe("get", start, 1, err) }()

	doc, err := s.catalog.FindByID(ctx, id)
	if err != nil {
		return Document{}, fmt.Errorf("get %q: %w", id, err)
	}
	return docFromDomain(&doc), nil
}

// Categories returns the distinct categories in title collation order.
func (s *Shelf) Categories(ctx context.Context) (_ []string, err error) {
	start := time.Now()
	var cats []string
	defer func() { s.obs.observe("categories", start, len(cats), err) }()

	cats, err = s.catalog.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}
	return cats, nil
}

// Fingerprint identifies the loaded catalog contents; equal catalogs share a fingerprint.
func (s *Shelf) Fingerprint(ctx context.Context) (string, error) {
	fp, err := s.catalog.Fingerprint(ctx)
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	return fp, nil
}
