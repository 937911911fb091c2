package document

import "slices"

// Params carries the raw field values of a catalog record.
// Order is nil when the record has no explicit position.
type Params struct {
	ID            string
	Title         string
	Category      string
	ProductFamily string
	PDFURL        string
	Description   string
	Tags          []string
	Order         *int
}

// Document is a product documentation record (immutable value object).
type Document struct {
	id            string
	title         string
	category      string
	productFamily string
	pdfURL        string
	description   string
	tags          []string
	order         int
	hasOrder      bool
}

// Reconstruct creates a Document without validation (storage hydration).
// Records missing required fields are kept as-is.
func Reconstruct(p Params) Document {
	d := Document{
		id:            p.ID,
		title:         p.Title,
		category:      p.Category,
		productFamily: p.ProductFamily,
		pdfURL:        p.PDFURL,
		description:   p.Description,
		tags:          slices.Clone(p.Tags),
	}
	if p.Order != nil {
		d.order = *p.Order
		d.hasOrder = true
	}
	return d
}

// ID returns the document identifier.
func (d *Document) ID() string { return d.id }

// Title returns the human-readable name.
func (d *Document) Title() string { return d.title }

// Category returns the document category.
func (d *Document) Category() string { return d.category }

// ProductFamily returns the product family the document belongs to.
func (d *Document) ProductFamily() string { return d.productFamily }

// PDFURL returns the link to the PDF asset. It is never interpreted.
func (d *Document) PDFURL() string { return d.pdfURL }

// Description returns the optional description ("" when absent).
func (d *Document) Description() string { return d.description }

// Tags returns a copy of the tags.
func (d *Document) Tags() []string { return slices.Clone(d.tags) }

// Order returns the explicit sort position and whether one was set.
func (d *Document) Order() (int, bool) { return d.order, d.hasOrder }

// Params returns the field values, suitable for re-encoding.
func (d *Document) Params() Params {
	p := Params{
		ID:            d.id,
		Title:         d.title,
		Category:      d.category,
		ProductFamily: d.productFamily,
		PDFURL:        d.pdfURL,
		Description:   d.description,
		Tags:          slices.Clone(d.tags),
	}
	if d.hasOrder {
		o := d.order
		p.Order = &o
	}
	return p
}
