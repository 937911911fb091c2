package catalog

import (
	"encoding/binary"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	domdoc "github.com/kailas-cloud/docshelf/internal/domain/document"
	"github.com/kailas-cloud/docshelf/internal/domain/search/query"
)

// Index is the immutable, ordered catalog. Safe for concurrent readers.
type Index struct {
	docs        []domdoc.Document
	categories  []string // lower-cased, parallel to docs
	haystacks   []string // parallel to docs
	byID        map[string]int
	categorySet []string
	fingerprint string
}

// newIndex takes ownership of docs, which must already be sorted.
// For duplicate ids the first position wins.
func newIndex(docs []domdoc.Document, titles domdoc.TitleComparer) *Index {
	ix := &Index{
		docs:       docs,
		categories: make([]string, len(docs)),
		haystacks:  make([]string, len(docs)),
		byID:       make(map[string]int, len(docs)),
	}

	seen := make(map[string]struct{})
	for i := range docs {
		d := &docs[i]
		lc := strings.ToLower(d.Category())
		ix.categories[i] = lc
		ix.haystacks[i] = query.Haystack(d)
		if _, ok := ix.byID[d.ID()]; !ok {
			ix.byID[d.ID()] = i
		}
		if _, ok := seen[lc]; !ok && lc != "" {
			seen[lc] = struct{}{}
			ix.categorySet = append(ix.categorySet, d.Category())
		}
	}
	slices.SortStableFunc(ix.categorySet, titles.CompareString)
	ix.fingerprint = fingerprint(docs)
	return ix
}

// Len returns the number of records.
func (ix *Index) Len() int { return len(ix.docs) }

// All returns every record in index order. The slice is a copy and never nil.
func (ix *Index) All() []domdoc.Document {
	out := make([]domdoc.Document, len(ix.docs))
	copy(out, ix.docs)
	return out
}

// Filter returns the records matching q, in index order. Never nil.
func (ix *Index) Filter(q query.Query) []domdoc.Document {
	if q.IsEmpty() {
		return ix.All()
	}
	out := make([]domdoc.Document, 0)
	for i := range ix.docs {
		if q.MatchFields(ix.categories[i], ix.haystacks[i]) {
			out = append(out, ix.docs[i])
		}
	}
	return out
}

// Find returns the record with the given id.
func (ix *Index) Find(id string) (domdoc.Document, bool) {
	i, ok := ix.byID[id]
	if !ok {
		return domdoc.Document{}, false
	}
	return ix.docs[i], true
}

// Categories returns the distinct categories (first-seen casing) in collation order.
func (ix *Index) Categories() []string {
	return slices.Clone(ix.categorySet)
}

// Fingerprint identifies the index contents; equal catalogs share a fingerprint.
func (ix *Index) Fingerprint() string { return ix.fingerprint }

// duplicateIDs returns ids occurring more than once with their counts, in index order.
func duplicateIDs(docs []domdoc.Document) ([]string, map[string]int) {
	counts := make(map[string]int, len(docs))
	var dups []string
	for i := range docs {
		id := docs[i].ID()
		counts[id]++
		if counts[id] == 2 {
			dups = append(dups, id)
		}
	}
	return dups, counts
}

// fingerprint hashes every record field behind a length prefix, so field
// contents can never be mistaken for framing.
func fingerprint(docs []domdoc.Document) string {
	h := xxhash.New()
	var buf []byte
	writeString := func(v string) {
		buf = binary.AppendUvarint(buf[:0], uint64(len(v)))
		_, _ = h.Write(buf)
		_, _ = h.WriteString(v)
	}
	writeInt := func(v int64) {
		buf = binary.AppendVarint(buf[:0], v)
		_, _ = h.Write(buf)
	}

	writeInt(int64(len(docs)))
	for i := range docs {
		p := docs[i].Params()
		for _, f := range []string{p.ID, p.Title, p.Category, p.ProductFamily, p.PDFURL, p.Description} {
			writeString(f)
		}
		writeInt(int64(len(p.Tags)))
		for _, tag := range p.Tags {
			writeString(tag)
		}
		if p.Order != nil {
			writeInt(1)
			writeInt(int64(*p.Order))
		} else {
			writeInt(0)
		}
	}
	return strconv.FormatUint(h.Sum64(), 16)
}
