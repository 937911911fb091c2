package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"

	domdoc "github.com/kailas-cloud/docshelf/internal/domain/document"
)

var errNotArray = errors.New("catalog must be an array of records")

// recordDTO is the on-disk shape of a catalog record.
type recordDTO struct {
	ID            string   `json:"id" yaml:"id"`
	Title         string   `json:"title" yaml:"title"`
	Category      string   `json:"category" yaml:"category"`
	ProductFamily string   `json:"product_family" yaml:"product_family"`
	PDFURL        string   `json:"pdf_url" yaml:"pdf_url"`
	Description   string   `json:"description,omitempty" yaml:"description,omitempty"`
	Tags          []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Order         position `json:"order,omitempty" yaml:"order,omitempty"`
}

// maxSafeOrder bounds order values to integers a float64 represents exactly.
const maxSafeOrder = 1<<53 - 1

// position is a record's explicit sort order. Any number notation with a whole
// value decodes (2, 2.0, 2e0); null or a missing key leaves it unset.
type position struct {
	value int
	set   bool
}

func (p *position) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("order: %w", err)
	}
	return p.setWhole(f)
}

func (p *position) UnmarshalYAML(node *yaml.Node) error {
	if node.ShortTag() == "!!null" {
		return nil
	}
	var f float64
	if err := node.Decode(&f); err != nil {
		return fmt.Errorf("order: %w", err)
	}
	return p.setWhole(f)
}

func (p *position) setWhole(f float64) error {
	if f != math.Trunc(f) || math.Abs(f) > maxSafeOrder {
		return fmt.Errorf("order must be a whole number, got %v", f)
	}
	p.value, p.set = int(f), true
	return nil
}

func (p position) ptr() *int {
	if !p.set {
		return nil
	}
	v := p.value
	return &v
}

func (r *recordDTO) toDomain() domdoc.Document {
	return domdoc.Reconstruct(domdoc.Params{
		ID:            r.ID,
		Title:         r.Title,
		Category:      r.Category,
		ProductFamily: r.ProductFamily,
		PDFURL:        r.PDFURL,
		Description:   r.Description,
		Tags:          r.Tags,
		Order:         r.Order.ptr(),
	})
}

// decodeRecords parses raw catalog bytes. A null or empty document is rejected;
// an empty array is a valid, empty catalog.
func decodeRecords(data []byte, f Format) ([]recordDTO, error) {
	var records []recordDTO
	switch f {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	}
	if records == nil {
		return nil, errNotArray
	}
	return records, nil
}
