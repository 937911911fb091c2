// Package docshelf embeds the docshelf product documentation catalog in a Go program.
//
// The catalog is read once from a JSON or YAML file, or from a Valkey key,
// ordered by explicit position and then title, and served from memory.
//
//	shelf, err := docshelf.Open(ctx, docshelf.WithFile("docs-data/docs.json"))
//	if err != nil {
//	    return err
//	}
//	defer shelf.Close()
//
//	docs, _ := shelf.Search(ctx, "vr2", "Micra")
//	doc, err := shelf.Get(ctx, "micra-vr2-technical-specifications")
//	if errors.Is(err, docshelf.ErrNotFound) {
//	    // ...
//	}
package docshelf
