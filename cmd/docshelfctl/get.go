package main

import (
	"encoding/json"
	"errors"
	"fmt"

	docshelf "github.com/kailas-cloud/docshelf/pkg/sdk"
)

// Run executes the get command.
func (c *GetCmd) Run(deps *Dependencies) error {
	doc, err := deps.Catalog.Get(deps.Ctx, c.ID)
	if errors.Is(err, docshelf.ErrNotFound) {
		fmt.Fprintf(deps.Stderr, "No document with id %q. Use 'docshelfctl list' to see ids.\n", c.ID)
		return err
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
