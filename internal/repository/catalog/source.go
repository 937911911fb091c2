package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kailas-cloud/docshelf/internal/db"
)

// Format is the encoding of the raw catalog bytes.
type Format string

const (
	// FormatJSON is a JSON array of records.
	FormatJSON Format = "json"
	// FormatYAML is a YAML sequence of records.
	FormatYAML Format = "yaml"
)

// Source yields the raw catalog document.
type Source interface {
	Read(ctx context.Context) ([]byte, error)
	Location() string
	Format() Format
}

// FileSource reads the catalog from a local file. The format follows the extension:
// .yaml and .yml are YAML, everything else is JSON.
type FileSource struct {
	path string
}

// NewFileSource creates a file-backed source.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Read returns the file contents.
func (s *FileSource) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Clean(s.path))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

// Location returns the file path.
func (s *FileSource) Location() string { return s.path }

// Format reports the encoding derived from the file extension.
func (s *FileSource) Format() Format {
	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// KVSource reads a JSON catalog stored under a single key.
type KVSource struct {
	getter db.KVGetter
	key    string
}

// NewKVSource creates a key-value backed source.
func NewKVSource(getter db.KVGetter, key string) *KVSource {
	return &KVSource{getter: getter, key: key}
}

// Read fetches the value stored at the key.
func (s *KVSource) Read(ctx context.Context) ([]byte, error) {
	data, err := s.getter.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.key, err)
	}
	return data, nil
}

// Location returns a kv:// pseudo URL naming the key.
func (s *KVSource) Location() string { return "kv://" + s.key }

// Format is always JSON for key-value sources.
func (s *KVSource) Format() Format { return FormatJSON }
