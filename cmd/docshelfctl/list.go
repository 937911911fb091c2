package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	docs, err := deps.Catalog.Search(deps.Ctx, c.Query, c.Category)
	if err != nil {
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(docs)
	}

	if len(docs) == 0 {
		fmt.Fprintln(deps.Stdout, "No documents found.")
		return nil
	}

	tw := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	for _, d := range docs {
		order := "-"
		if d.Order != nil {
			order = fmt.Sprint(*d.Order)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", order, d.ID, d.Category, d.Title)
	}
	return tw.Flush()
}
