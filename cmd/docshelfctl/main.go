package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/kailas-cloud/docshelf/internal/version"
	docshelf "github.com/kailas-cloud/docshelf/pkg/sdk"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Catalog is opened from the global flags unless set before calling Run().
	Catalog Catalog

	shelf *docshelf.Shelf
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close releases the opened catalog.
func (m *Main) Close() {
	if m.shelf != nil {
		m.shelf.Close()
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docshelfctl"),
		kong.Description("Inspect and validate a docshelf product documentation catalog"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars{"version": version.String()},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docshelfctl --help' to see available commands")
	}

	switch args[0] {
	case "help", "--help", "-h", "--version":
		_, _ = parser.Parse(args[:1])
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if m.Catalog == nil {
		shelf, err := docshelf.Open(ctx, cli.options()...)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: point --file (or DOCSHELF_FILE) at a JSON or YAML catalog, or use --valkey")
			return err
		}
		m.shelf = shelf
		m.Catalog = shelf
		defer m.Close()
	}
	deps.Catalog = m.Catalog

	return kongCtx.Run(deps)
}
