package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// mockGetter implements db.KVGetter for tests.
type mockGetter struct {
	data  map[string][]byte
	err   error
	calls int
}

func (m *mockGetter) Get(_ context.Context, key string) ([]byte, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.data[key], nil
}

// writeFile writes content into a temp dir and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

const catalogJSON = `[
  {
    "id": "micra-vr2-technical-specifications",
    "title": "Micra VR2 technical specifications",
    "category": "Micra",
    "product_family": "Micra VR2",
    "pdf_url": "/pdfs/micra-vr2-technical-specifications.pdf",
    "tags": ["brochure", "specs"],
    "order": 2
  },
  {
    "id": "aurora-install-guide",
    "title": "Aurora installation guide",
    "category": "Aurora",
    "product_family": "Aurora",
    "pdf_url": "/pdfs/aurora-install-guide.pdf",
    "description": "Step-by-step installation"
  },
  {
    "id": "incomplete",
    "title": "Record without category"
  }
]`

const catalogYAML = `
- id: data-dictionary
  title: Data dictionary
  category: Data
  product_family: Platform
  pdf_url: /pdfs/data-dictionary.pdf
  tags: [dictionary, reference]
  order: 1
- id: data-export
  title: Export formats
  category: Data
  product_family: Platform
  pdf_url: /pdfs/data-export.pdf
`
