package catalog

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kailas-cloud/docshelf/internal/domain"
	domdoc "github.com/kailas-cloud/docshelf/internal/domain/document"
	"github.com/kailas-cloud/docshelf/internal/domain/search/query"
)

// --- Mocks ---

type countingLoader struct {
	docs  []domdoc.Document
	err   error
	calls atomic.Int32
	delay time.Duration
}

func (l *countingLoader) Load(_ context.Context) ([]domdoc.Document, error) {
	l.calls.Add(1)
	if l.delay > 0 {
		time.Sleep(l.delay)
	}
	if l.err != nil {
		return nil, l.err
	}
	out := make([]domdoc.Document, len(l.docs))
	copy(out, l.docs)
	return out, nil
}

func (l *countingLoader) Location() string { return "test://fixture" }

type mockRecorder struct {
	mu      sync.Mutex
	builds  int
	lastErr error
	queries map[string]int
}

func (r *mockRecorder) IndexBuilt(_ int, _ time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builds++
	r.lastErr = err
}

func (r *mockRecorder) Queried(kind string, _ int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.queries == nil {
		r.queries = make(map[string]int)
	}
	r.queries[kind]++
}

func intPtr(v int) *int { return &v }

func doc(id, title, category, family string, order *int, tags ...string) domdoc.Document {
	return domdoc.Reconstruct(domdoc.Params{
		ID:            id,
		Title:         title,
		Category:      category,
		ProductFamily: family,
		PDFURL:        "/pdfs/" + id + ".pdf",
		Tags:          tags,
		Order:         order,
	})
}

func fixture() []domdoc.Document {
	return []domdoc.Document{
		doc("aurora-install-guide", "Aurora installation guide", "Aurora", "Aurora", nil, "install"),
		doc("micra-portfolio-brochure-av2-vr2", "Micra portfolio brochure AV2 / VR2", "Micra", "Micra", intPtr(2), "brochure"),
		doc("micra-vr2-technical-specifications", "Micra VR2 technical specifications", "Micra", "Micra VR2", nil, "brochure"),
		doc("data-dictionary", "Data dictionary", "Data", "Platform", intPtr(1), "dictionary", "reference"),
		doc("aurora-technical-manual", "Aurora technical manual", "aurora", "Aurora", intPtr(2)),
		doc("micra-av2-technical-specifications", "Micra AV2 technical specifications", "Micra", "Micra AV2", nil),
	}
}

func ids(docs []domdoc.Document) []string {
	out := make([]string, len(docs))
	for i := range docs {
		out[i] = docs[i].ID()
	}
	return out
}

func newFixtureService() (*Service, *countingLoader) {
	l := &countingLoader{docs: fixture()}
	return New(l), l
}

// isSubsequence reports whether sub appears in all in the same relative order.
func isSubsequence(sub, all []string) bool {
	j := 0
	for i := 0; i < len(all) && j < len(sub); i++ {
		if all[i] == sub[j] {
			j++
		}
	}
	return j == len(sub)
}

// --- Load ---

func TestAll_LoadsOnce(t *testing.T) {
	svc, l := newFixtureService()
	ctx := context.Background()

	first, err := svc.All(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for range 5 {
		again, err := svc.All(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Join(ids(again), ",") != strings.Join(ids(first), ",") {
			t.Fatal("All() is not stable across calls")
		}
	}
	if _, err := svc.Filter(ctx, query.New("micra", "")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.FindByID(ctx, "data-dictionary"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := l.calls.Load(); got != 1 {
		t.Errorf("loader called %d times, want 1", got)
	}
}

func TestIndex_ConcurrentFirstAccess(t *testing.T) {
	l := &countingLoader{docs: fixture(), delay: 20 * time.Millisecond}
	svc := New(l)

	var wg sync.WaitGroup
	lens := make([]int, 16)
	for i := range lens {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			docs, err := svc.All(context.Background())
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			lens[i] = len(docs)
		}(i)
	}
	wg.Wait()

	if got := l.calls.Load(); got != 1 {
		t.Errorf("loader called %d times, want 1", got)
	}
	for i, n := range lens {
		if n != len(fixture()) {
			t.Errorf("reader %d saw %d docs, want %d", i, n, len(fixture()))
		}
	}
}

func TestIndex_LoadFailureIsSticky(t *testing.T) {
	srcErr := domain.NewSourceError("test://fixture", errors.New("boom"))
	l := &countingLoader{err: srcErr}
	rec := &mockRecorder{}
	svc := New(l).WithRecorder(rec)

	err := svc.Warm(context.Background())
	if !errors.Is(err, domain.ErrDataSource) {
		t.Fatalf("expected ErrDataSource, got %v", err)
	}
	if _, err := svc.All(context.Background()); !errors.Is(err, domain.ErrDataSource) {
		t.Errorf("expected ErrDataSource on second call, got %v", err)
	}
	if _, err := svc.FindByID(context.Background(), "x"); errors.Is(err, domain.ErrNotFound) {
		t.Error("load failure must not be reported as not found")
	}
	if l.calls.Load() != 1 {
		t.Errorf("loader called %d times, want 1", l.calls.Load())
	}
	if svc.Ready() {
		t.Error("Ready() should be false after a failed build")
	}
	if rec.builds != 1 || rec.lastErr == nil {
		t.Errorf("recorder builds=%d lastErr=%v", rec.builds, rec.lastErr)
	}
}

func TestIndex_CanceledFirstCallerStillBuilds(t *testing.T) {
	svc, _ := newFixtureService()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := svc.Warm(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !svc.Ready() {
		t.Error("expected Ready() after build")
	}
}

// --- Ordering ---

func TestAll_TotalOrdering(t *testing.T) {
	svc, _ := newFixtureService()
	docs, err := svc.All(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"data-dictionary",
		"aurora-technical-manual",
		"micra-portfolio-brochure-av2-vr2",
		"aurora-install-guide",
		"micra-av2-technical-specifications",
		"micra-vr2-technical-specifications",
	}
	got := ids(docs)
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("order:\n got  %v\n want %v", got, want)
	}

	titles, _ := domdoc.NewTitleCollator("")
	for i := 1; i < len(docs); i++ {
		a, b := docs[i-1], docs[i]
		if a.EffectiveOrder() > b.EffectiveOrder() {
			t.Errorf("%s before %s violates order", a.ID(), b.ID())
		}
		if a.EffectiveOrder() == b.EffectiveOrder() && titles.CompareString(a.Title(), b.Title()) > 0 {
			t.Errorf("%s before %s violates title order", a.ID(), b.ID())
		}
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	svc, _ := newFixtureService()
	first, _ := svc.All(context.Background())
	first[0] = domdoc.Reconstruct(domdoc.Params{ID: "mutated"})

	again, _ := svc.All(context.Background())
	if again[0].ID() == "mutated" {
		t.Error("caller mutation leaked into the index")
	}
}

// --- Filter ---

func TestFilter_Properties(t *testing.T) {
	svc, _ := newFixtureService()
	ctx := context.Background()
	all, _ := svc.All(ctx)
	allIDs := ids(all)

	inputs := []struct{ term, category string }{
		{"", ""}, {"technical", ""}, {"TECHNICAL", ""}, {"brochure", ""},
		{"", "Micra"}, {"", "micra"}, {"", "AURORA"}, {"vr2", "Micra"},
		{"dictionary", "Data"}, {"nonexistentquery12345", ""}, {"  technical  ", "  Micra  "},
	}

	for _, in := range inputs {
		q := query.New(in.term, in.category)
		got, err := svc.Filter(ctx, q)
		if err != nil {
			t.Fatalf("Filter(%q, %q): %v", in.term, in.category, err)
		}
		if got == nil {
			t.Errorf("Filter(%q, %q) returned nil, want empty slice", in.term, in.category)
		}
		if !isSubsequence(ids(got), allIDs) {
			t.Errorf("Filter(%q, %q) = %v is not an ordered subsequence of All", in.term, in.category, ids(got))
		}
		for i := range got {
			d := got[i]
			if q.Category() != "" && strings.ToLower(d.Category()) != q.Category() {
				t.Errorf("Filter(%q, %q) returned %s with category %q", in.term, in.category, d.ID(), d.Category())
			}
			if q.Term() != "" && !strings.Contains(query.Haystack(&d), q.Term()) {
				t.Errorf("Filter(%q, %q) returned %s without term", in.term, in.category, d.ID())
			}
		}
	}
}

func TestFilter_Examples(t *testing.T) {
	svc, _ := newFixtureService()
	ctx := context.Background()

	tests := []struct {
		name     string
		term     string
		category string
		want     []string
	}{
		{"empty equals all", "", "", []string{
			"data-dictionary", "aurora-technical-manual", "micra-portfolio-brochure-av2-vr2",
			"aurora-install-guide", "micra-av2-technical-specifications", "micra-vr2-technical-specifications",
		}},
		{"term", "technical", "", []string{
			"aurora-technical-manual", "micra-av2-technical-specifications", "micra-vr2-technical-specifications",
		}},
		{"tag", "brochure", "", []string{
			"micra-portfolio-brochure-av2-vr2", "micra-vr2-technical-specifications",
		}},
		{"category mixed casing in data", "", "aurora", []string{
			"aurora-technical-manual", "aurora-install-guide",
		}},
		{"AND", "vr2", "Micra", []string{
			"micra-portfolio-brochure-av2-vr2", "micra-vr2-technical-specifications",
		}},
		{"whitespace", "  technical  ", "  Micra  ", []string{
			"micra-av2-technical-specifications", "micra-vr2-technical-specifications",
		}},
		{"no match", "nonexistentquery12345", "", []string{}},
		{"partial category", "", "Mic", []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.Filter(ctx, query.New(tc.term, tc.category))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if strings.Join(ids(got), ",") != strings.Join(tc.want, ",") {
				t.Errorf("got %v, want %v", ids(got), tc.want)
			}
		})
	}
}

func TestFilter_CaseInsensitiveEquivalence(t *testing.T) {
	svc, _ := newFixtureService()
	ctx := context.Background()

	upper, _ := svc.Filter(ctx, query.New("TECHNICAL", "MICRA"))
	lower, _ := svc.Filter(ctx, query.New("technical", "micra"))
	if strings.Join(ids(upper), ",") != strings.Join(ids(lower), ",") {
		t.Errorf("case changed results: %v vs %v", ids(upper), ids(lower))
	}
}

// --- Lookup ---

func TestFindByID(t *testing.T) {
	svc, _ := newFixtureService()
	ctx := context.Background()

	d, err := svc.FindByID(ctx, "micra-vr2-technical-specifications")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Title() != "Micra VR2 technical specifications" || d.Category() != "Micra" {
		t.Errorf("unexpected document %q/%q", d.Title(), d.Category())
	}

	_, err = svc.FindByID(ctx, "missing-id")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestScenario_MicraSpecs(t *testing.T) {
	svc, _ := newFixtureService()
	ctx := context.Background()
	const id = "micra-vr2-technical-specifications"

	brochures, _ := svc.Filter(ctx, query.New("brochure", ""))
	if !contains(ids(brochures), id) {
		t.Errorf("filter(brochure) should include %s", id)
	}
	aurora, _ := svc.Filter(ctx, query.New("", "aurora"))
	if contains(ids(aurora), id) {
		t.Errorf("filter(category=aurora) should exclude %s", id)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// --- Duplicates ---

func TestDuplicates_WarnKeepsFirstInIndexOrder(t *testing.T) {
	l := &countingLoader{docs: []domdoc.Document{
		doc("dup", "Second by title", "Micra", "Micra", nil),
		doc("dup", "First by order", "Micra", "Micra", intPtr(1)),
		doc("other", "Other", "Micra", "Micra", nil),
	}}
	svc := New(l)

	all, err := svc.All(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("warn policy must keep all records, got %d", len(all))
	}
	d, err := svc.FindByID(context.Background(), "dup")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Title() != "First by order" {
		t.Errorf("FindByID(dup) = %q, want first record in index order", d.Title())
	}
}

func TestDuplicates_Reject(t *testing.T) {
	l := &countingLoader{docs: []domdoc.Document{
		doc("dup", "A", "Micra", "Micra", nil),
		doc("dup", "B", "Micra", "Micra", nil),
	}}
	svc := New(l).WithDuplicatePolicy(DuplicatesReject)

	err := svc.Warm(context.Background())
	if !errors.Is(err, domain.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if !errors.Is(err, domain.ErrDataSource) {
		t.Errorf("expected ErrDataSource, got %v", err)
	}
}

// --- Categories & fingerprint ---

func TestCategories(t *testing.T) {
	svc, _ := newFixtureService()
	cats, err := svc.Categories(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"aurora", "Data", "Micra"}
	if strings.Join(cats, ",") != strings.Join(want, ",") {
		t.Errorf("Categories() = %v, want %v", cats, want)
	}
}

func TestFingerprint(t *testing.T) {
	a, _ := newFixtureService()
	b, _ := newFixtureService()
	fa, err := a.Fingerprint(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fb, _ := b.Fingerprint(context.Background())
	if fa == "" || fa != fb {
		t.Errorf("equal catalogs must share a fingerprint: %q vs %q", fa, fb)
	}

	docs := fixture()
	docs[0] = doc("aurora-install-guide", "Aurora installation guide v2", "Aurora", "Aurora", nil, "install")
	c := New(&countingLoader{docs: docs})
	fc, _ := c.Fingerprint(context.Background())
	if fc == fa {
		t.Error("changed catalog must change the fingerprint")
	}
}

func TestRecorder_QueryKinds(t *testing.T) {
	rec := &mockRecorder{}
	svc := New(&countingLoader{docs: fixture()}).WithRecorder(rec)
	ctx := context.Background()

	_, _ = svc.Filter(ctx, query.New("", ""))
	_, _ = svc.Filter(ctx, query.New("micra", ""))
	_, _ = svc.FindByID(ctx, "missing")
	_, _ = svc.Categories(ctx)

	if rec.builds != 1 {
		t.Errorf("builds = %d, want 1", rec.builds)
	}
	for _, kind := range []string{QueryAll, QueryFilter, QueryLookup, QueryCategories} {
		if rec.queries[kind] != 1 {
			t.Errorf("queries[%s] = %d, want 1", kind, rec.queries[kind])
		}
	}
}

func TestWithCollation_Invalid(t *testing.T) {
	svc := New(&countingLoader{docs: fixture()}).WithCollation("!!invalid!!")
	if err := svc.Warm(context.Background()); err == nil {
		t.Fatal("expected error for invalid collation")
	}
}

func TestFingerprint_FieldBoundaries(t *testing.T) {
	withDesc := func(id, desc string, tags ...string) domdoc.Document {
		return domdoc.Reconstruct(domdoc.Params{ID: id, Title: "T", Category: "C", Description: desc, Tags: tags})
	}

	tests := []struct {
		name string
		a, b []domdoc.Document
	}{
		{
			"tag split on NUL",
			[]domdoc.Document{withDesc("x", "", "a\x00b")},
			[]domdoc.Document{withDesc("x", "", "a", "b")},
		},
		{
			"empty tag vs no tags",
			[]domdoc.Document{withDesc("x", "", "")},
			[]domdoc.Document{withDesc("x", "")},
		},
		{
			"record separator inside description",
			[]domdoc.Document{withDesc("x", "d\x00\x1e")},
			[]domdoc.Document{withDesc("x", "d"), withDesc("", "")},
		},
		{
			"order marker inside description",
			[]domdoc.Document{withDesc("x", "\x001\x1f7")},
			[]domdoc.Document{domdoc.Reconstruct(domdoc.Params{
				ID: "x", Title: "T", Category: "C", Tags: []string{"1"}, Order: intPtr(7),
			})},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if fingerprint(tc.a) == fingerprint(tc.b) {
				t.Errorf("distinct catalogs share fingerprint %q", fingerprint(tc.a))
			}
		})
	}
}
