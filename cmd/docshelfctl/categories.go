package main

import "fmt"

// Run executes the categories command.
func (c *CategoriesCmd) Run(deps *Dependencies) error {
	cats, err := deps.Catalog.Categories(deps.Ctx)
	if err != nil {
		return err
	}
	for _, cat := range cats {
		fmt.Fprintln(deps.Stdout, cat)
	}
	return nil
}
