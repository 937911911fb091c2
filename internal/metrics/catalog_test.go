package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCatalogRecorder_IndexBuilt(t *testing.T) {
	RegisterCatalogMetrics()
	RegisterCatalogMetrics() // idempotent

	var rec CatalogRecorder
	okBefore := testutil.ToFloat64(CatalogLoadsTotal.WithLabelValues("ok"))
	errBefore := testutil.ToFloat64(CatalogLoadsTotal.WithLabelValues("error"))

	rec.IndexBuilt(42, 15*time.Millisecond, nil)
	if got := testutil.ToFloat64(CatalogDocuments); got != 42 {
		t.Errorf("documents = %v, want 42", got)
	}
	if got := testutil.ToFloat64(CatalogLoadsTotal.WithLabelValues("ok")) - okBefore; got != 1 {
		t.Errorf("ok loads delta = %v, want 1", got)
	}

	rec.IndexBuilt(0, time.Millisecond, errors.New("boom"))
	if got := testutil.ToFloat64(CatalogLoadsTotal.WithLabelValues("error")) - errBefore; got != 1 {
		t.Errorf("error loads delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(CatalogDocuments); got != 42 {
		t.Errorf("failed build changed documents gauge to %v", got)
	}
	if testutil.CollectAndCount(CatalogLoadDuration) != 1 {
		t.Error("expected load duration histogram to be collected")
	}
}

func TestCatalogRecorder_Queried(t *testing.T) {
	var rec CatalogRecorder
	before := testutil.ToFloat64(CatalogQueriesTotal.WithLabelValues("filter"))

	rec.Queried("filter", 3)
	rec.Queried("filter", 0)
	rec.Queried("lookup", 1)

	if got := testutil.ToFloat64(CatalogQueriesTotal.WithLabelValues("filter")) - before; got != 2 {
		t.Errorf("filter queries delta = %v, want 2", got)
	}
	if testutil.CollectAndCount(CatalogQueryResults) < 2 {
		t.Error("expected query result series for filter and lookup")
	}
}
