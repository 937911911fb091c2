package query

import (
	"strings"

	domdoc "github.com/kailas-cloud/docshelf/internal/domain/document"
)

// Query is a normalized catalog filter: a free-text term and a category.
// Empty parts impose no constraint.
type Query struct {
	term     string
	category string
}

// New trims and lower-cases both parts. Whitespace-only input counts as absent.
func New(term, category string) Query {
	return Query{
		term:     normalize(term),
		category: normalize(category),
	}
}

// Term returns the normalized search term.
func (q Query) Term() string { return q.term }

// Category returns the normalized category.
func (q Query) Category() string { return q.category }

// IsEmpty reports whether the query constrains nothing.
func (q Query) IsEmpty() bool { return q.term == "" && q.category == "" }

// Matches reports whether doc satisfies both the category and the term constraint.
func (q Query) Matches(doc *domdoc.Document) bool {
	return q.MatchFields(strings.ToLower(doc.Category()), Haystack(doc))
}

// MatchFields is Matches over precomputed lower-cased category and haystack.
func (q Query) MatchFields(lowerCategory, haystack string) bool {
	if q.category != "" && lowerCategory != q.category {
		return false
	}
	if q.term == "" {
		return true
	}
	return strings.Contains(haystack, q.term)
}

// Haystack joins title, category, product family and tags with spaces, lower-cased.
// Description is display-only and not searched.
func Haystack(doc *domdoc.Document) string {
	tags := doc.Tags()
	parts := make([]string, 0, 3+len(tags))
	parts = append(parts, doc.Title(), doc.Category(), doc.ProductFamily())
	parts = append(parts, tags...)
	return strings.ToLower(strings.Join(parts, " "))
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
