package docshelf

import domdoc "github.com/kailas-cloud/docshelf/internal/domain/document"

// Document is a product documentation record.
// Optional fields are empty (or nil Order) when the catalog omits them.
type Document struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Category      string   `json:"category"`
	ProductFamily string   `json:"product_family"`
	PDFURL        string   `json:"pdf_url"`
	Description   string   `json:"description,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Order         *int     `json:"order,omitempty"`
}

func docFromDomain(d *domdoc.Document) Document {
	p := d.Params()
	return Document{
		ID:            p.ID,
		Title:         p.Title,
		Category:      p.Category,
		ProductFamily: p.ProductFamily,
		PDFURL:        p.PDFURL,
		Description:   p.Description,
		Tags:          p.Tags,
		Order:         p.Order,
	}
}

func docsFromDomain(docs []domdoc.Document) []Document {
	out := make([]Document, len(docs))
	for i := range docs {
		out[i] = docFromDomain(&docs[i])
	}
	return out
}
