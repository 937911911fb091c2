package main

import "fmt"

// Run executes the check command.
func (c *CheckCmd) Run(deps *Dependencies) error {
	docs, err := deps.Catalog.All(deps.Ctx)
	if err != nil {
		return err
	}
	cats, err := deps.Catalog.Categories(deps.Ctx)
	if err != nil {
		return err
	}
	fp, err := deps.Catalog.Fingerprint(deps.Ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "ok: %d documents, %d categories, fingerprint %s\n", len(docs), len(cats), fp)
	return nil
}
