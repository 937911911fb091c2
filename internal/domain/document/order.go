package document

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultCollation is the language tag used for title ordering when none is configured.
const DefaultCollation = "en"

// TitleComparer compares two titles, returning <0, 0 or >0.
// *collate.Collator satisfies it.
type TitleComparer interface {
	CompareString(a, b string) int
}

// NewTitleCollator returns a locale-aware comparer for the given BCP 47 tag.
// The returned collator is not safe for concurrent use.
func NewTitleCollator(tag string) (*collate.Collator, error) {
	if tag == "" {
		tag = DefaultCollation
	}
	t, err := language.Parse(tag)
	if err != nil {
		return nil, fmt.Errorf("parse collation %q: %w", tag, err)
	}
	return collate.New(t), nil
}

// EffectiveOrder returns the explicit order, or math.MaxInt when the record has none.
func (d *Document) EffectiveOrder() int {
	if d.hasOrder {
		return d.order
	}
	return math.MaxInt
}

// Compare returns the catalog ordering: effective order ascending, then title by titles.
func Compare(titles TitleComparer) func(a, b Document) int {
	return func(a, b Document) int {
		if c := cmp.Compare(a.EffectiveOrder(), b.EffectiveOrder()); c != 0 {
			return c
		}
		return titles.CompareString(a.title, b.title)
	}
}

// Sort orders docs in place. Records equal under Compare keep their input order.
func Sort(docs []Document, titles TitleComparer) {
	slices.SortStableFunc(docs, Compare(titles))
}
