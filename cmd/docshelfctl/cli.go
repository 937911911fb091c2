package main

import (
	"context"
	"io"

	"github.com/alecthomas/kong"

	docshelf "github.com/kailas-cloud/docshelf/pkg/sdk"
)

// Catalog is the read side of the SDK used by the commands.
type Catalog interface {
	All(ctx context.Context) ([]docshelf.Document, error)
	Search(ctx context.Context, term, category string) ([]docshelf.Document, error)
	Get(ctx context.Context, id string) (docshelf.Document, error)
	Categories(ctx context.Context) ([]string, error)
	Fingerprint(ctx context.Context) (string, error)
}

var _ Catalog = (*docshelf.Shelf)(nil)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Catalog Catalog
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Version kong.VersionFlag `help:"Print version and exit"`

	File             string `short:"f" env:"DOCSHELF_FILE" default:"docs-data/docs.json" help:"Catalog file (.json, .yaml, .yml)"`
	Valkey           string `env:"DOCSHELF_VALKEY" help:"Valkey address; reads the catalog from --key instead of --file"`
	Password         string `env:"DOCSHELF_VALKEY_PASSWORD" help:"Valkey password"`
	Key              string `default:"docshelf:catalog" help:"Valkey key holding the catalog JSON"`
	Collation        string `default:"en" help:"BCP 47 tag used to order titles"`
	RejectDuplicates bool   `help:"Fail when two records share an id"`

	Check      CheckCmd      `cmd:"" help:"Load the catalog and report a summary"`
	List       ListCmd       `cmd:"" help:"List documents in catalog order"`
	Get        GetCmd        `cmd:"" help:"Print one document as JSON"`
	Categories CategoriesCmd `cmd:"" help:"List distinct categories"`
}

func (c *CLI) options() []docshelf.Option {
	opts := []docshelf.Option{docshelf.WithCollation(c.Collation)}
	if c.Valkey != "" {
		opts = append(opts, docshelf.WithValkey(c.Valkey, c.Password, c.Key), docshelf.WithStandalone())
	} else {
		opts = append(opts, docshelf.WithFile(c.File))
	}
	if c.RejectDuplicates {
		opts = append(opts, docshelf.WithRejectDuplicates())
	}
	return opts
}

// CheckCmd is the "check" subcommand.
type CheckCmd struct{}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Query    string `short:"q" help:"Free-text term matched against title, category, product family and tags"`
	Category string `short:"c" help:"Exact category, case-insensitive"`
	JSON     bool   `help:"Print a JSON array instead of a table"`
}

// GetCmd is the "get" subcommand.
type GetCmd struct {
	ID string `arg:"" help:"Document id"`
}

// CategoriesCmd is the "categories" subcommand.
type CategoriesCmd struct{}
