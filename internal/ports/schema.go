package ports

import "schema205/internal/types"

// SchemaLoaderPort reads schema files and locates the files a schema
// references.
type SchemaLoaderPort interface {
	// LoadSchema decodes a schema file, keeping object and element order.
	LoadSchema(path string) (types.Schema, error)

	// ResolveReference maps a referenced schema identifier to the path of
	// its file, searching next to the referencing file. A missing file is
	// reported with CodeNotFound.
	ResolveReference(fromPath string, identifier string) (string, error)
}

// SchemaFinderPort discovers schema files below a directory.
type SchemaFinderPort interface {
	FindSchemas(root string, pattern string) ([]string, error)
}
