package catalog

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docshelf/internal/domain"
	domdoc "github.com/kailas-cloud/docshelf/internal/domain/document"
	"github.com/kailas-cloud/docshelf/internal/domain/search/query"
)

// DuplicatePolicy controls what an index build does with repeated ids.
type DuplicatePolicy string

const (
	// DuplicatesWarn logs repeated ids and keeps every record; lookups return the first.
	DuplicatesWarn DuplicatePolicy = "warn"
	// DuplicatesReject fails the build with domain.ErrDuplicateID.
	DuplicatesReject DuplicatePolicy = "reject"
)

// Query kinds reported to the Recorder.
const (
	QueryAll        = "all"
	QueryFilter     = "filter"
	QueryLookup     = "lookup"
	QueryCategories = "categories"
)

// Service owns the lazily built catalog index. The first caller triggers the
// single load; concurrent callers wait for it. A failed build is not retried.
type Service struct {
	loader     Loader
	collation  string
	duplicates DuplicatePolicy
	logger     *zap.Logger
	recorder   Recorder

	once  sync.Once
	index *Index
	err   error
	ready atomic.Bool
}

// New creates a catalog service over loader.
func New(loader Loader) *Service {
	return &Service{
		loader:     loader,
		collation:  domdoc.DefaultCollation,
		duplicates: DuplicatesWarn,
		logger:     zap.NewNop(),
		recorder:   nopRecorder{},
	}
}

// WithCollation sets the BCP 47 tag used to order titles.
func (s *Service) WithCollation(tag string) *Service {
	if tag != "" {
		s.collation = tag
	}
	return s
}

// WithDuplicatePolicy sets the handling of repeated ids.
func (s *Service) WithDuplicatePolicy(p DuplicatePolicy) *Service {
	if p != "" {
		s.duplicates = p
	}
	return s
}

// WithLogger sets the build logger.
func (s *Service) WithLogger(l *zap.Logger) *Service {
	if l != nil {
		s.logger = l
	}
	return s
}

// WithRecorder sets the metrics recorder.
func (s *Service) WithRecorder(r Recorder) *Service {
	if r != nil {
		s.recorder = r
	}
	return s
}

// Index returns the built index, building it on first use.
// Cancellation of the first caller's context does not abort the build.
func (s *Service) Index(ctx context.Context) (*Index, error) {
	s.once.Do(func() {
		s.index, s.err = s.build(context.WithoutCancel(ctx))
		if s.err == nil {
			s.ready.Store(true)
		}
	})
	return s.index, s.err
}

// Warm builds the index eagerly; call at startup to fail fast.
func (s *Service) Warm(ctx context.Context) error {
	_, err := s.Index(ctx)
	return err
}

// Ready reports whether the index has been built successfully.
func (s *Service) Ready() bool { return s.ready.Load() }

// All returns every document in catalog order.
func (s *Service) All(ctx context.Context) ([]domdoc.Document, error) {
	ix, err := s.Index(ctx)
	if err != nil {
		return nil, err
	}
	docs := ix.All()
	s.recorder.Queried(QueryAll, len(docs))
	return docs, nil
}

// Filter returns the documents matching q in catalog order. No match is an empty slice.
func (s *Service) Filter(ctx context.Context, q query.Query) ([]domdoc.Document, error) {
	ix, err := s.Index(ctx)
	if err != nil {
		return nil, err
	}
	docs := ix.Filter(q)
	kind := QueryFilter
	if q.IsEmpty() {
		kind = QueryAll
	}
	s.recorder.Queried(kind, len(docs))
	return docs, nil
}

// FindByID returns the document with the given id or an error wrapping domain.ErrNotFound.
func (s *Service) FindByID(ctx context.Context, id string) (domdoc.Document, error) {
	ix, err := s.Index(ctx)
	if err != nil {
		return domdoc.Document{}, err
	}
	doc, ok := ix.Find(id)
	if !ok {
		s.recorder.Queried(QueryLookup, 0)
		return domdoc.Document{}, fmt.Errorf("document %q: %w", id, domain.ErrNotFound)
	}
	s.recorder.Queried(QueryLookup, 1)
	return doc, nil
}

// Categories returns the distinct categories in collation order.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	ix, err := s.Index(ctx)
	if err != nil {
		return nil, err
	}
	cats := ix.Categories()
	s.recorder.Queried(QueryCategories, len(cats))
	return cats, nil
}

// Fingerprint returns the content fingerprint of the index.
func (s *Service) Fingerprint(ctx context.Context) (string, error) {
	ix, err := s.Index(ctx)
	if err != nil {
		return "", err
	}
	return ix.Fingerprint(), nil
}

func (s *Service) build(ctx context.Context) (ix *Index, err error) {
	start := time.Now()
	location := s.location()
	defer func() {
		n := 0
		if ix != nil {
			n = ix.Len()
		}
		s.recorder.IndexBuilt(n, time.Since(start), err)
	}()

	titles, err := domdoc.NewTitleCollator(s.collation)
	if err != nil {
		return nil, fmt.Errorf("catalog collation: %w", err)
	}

	docs, err := s.loader.Load(ctx)
	if err != nil {
		s.logger.Error("catalog load failed", zap.String("source", location), zap.Error(err))
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	domdoc.Sort(docs, titles)

	if dups, counts := duplicateIDs(docs); len(dups) > 0 {
		if s.duplicates == DuplicatesReject {
			return nil, domain.NewSourceError(location,
				fmt.Errorf("%w: %q appears %d times", domain.ErrDuplicateID, dups[0], counts[dups[0]]))
		}
		for _, id := range dups {
			s.logger.Warn("duplicate document id, lookups return the first record",
				zap.String("id", id),
				zap.Int("occurrences", counts[id]),
			)
		}
	}

	ix = newIndex(docs, titles)
	s.logger.Info("catalog index built",
		zap.String("source", location),
		zap.Int("documents", ix.Len()),
		zap.Int("categories", len(ix.categorySet)),
		zap.String("fingerprint", ix.Fingerprint()),
		zap.Duration("duration", time.Since(start)),
	)
	return ix, nil
}

func (s *Service) location() string {
	if l, ok := s.loader.(interface{ Location() string }); ok {
		return l.Location()
	}
	return "unknown"
}
