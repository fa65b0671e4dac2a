package core

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/btree"

	"schema205/internal/ports"
	"schema205/internal/types"
)

// fundamentalTypes maps the schema's Data Type objects to C++ primitives.
var fundamentalTypes = map[string]string{
	"Integer": "int",
	"String":  "std::string",
	"Numeric": "double",
	"Boolean": "bool",
}

// Origin is one schema file of a catalog and the names it exports.
type Origin struct {
	Schema  string
	Path    string
	Exports []string
	// Objects keeps the decoded objects so element types can be searched
	// across the closure.
	Objects []types.Object
}

type CatalogOptions struct {
	// StrictReferences turns a name exported by two imported files into an
	// error instead of a warning.
	StrictReferences bool
}

// Catalog records which schema file exports which name for one
// translation. The local schema is always origin 0. A catalog is read-only
// once built.
type Catalog struct {
	origins    []Origin
	index      btree.Map[string, int]
	primitives map[string]string
}

// BuildCatalog loads every schema transitively referenced by schema,
// breadth first in listed order, and indexes their exported names. Names
// seen first win, so local names shadow imports.
func BuildCatalog(ctx context.Context, loader ports.SchemaLoaderPort, schema types.Schema, opts CatalogOptions) (*Catalog, error) {
	c := &Catalog{primitives: map[string]string{}}
	visited := map[string]bool{schema.Path: true}
	queue := []types.Schema{schema}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if err := c.add(ctx, current, opts); err != nil {
			return nil, err
		}
		for _, ref := range current.References() {
			path, err := loader.ResolveReference(current.Path, ref)
			if err != nil {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeNotFound).
					WithMsg("missing schema file " + ref + " referenced by " + current.Name).
					WithCause(err)
			}
			if visited[path] {
				continue
			}
			visited[path] = true
			loaded, err := loader.LoadSchema(path)
			if err != nil {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeNotFound).
					WithMsg("missing schema file " + ref + " referenced by " + current.Name).
					WithCause(err)
			}
			if loaded.Path != "" {
				visited[loaded.Path] = true
			}
			queue = append(queue, loaded)
		}
	}
	log.Ctx(ctx).Debug().
		Str("schema", schema.Name).
		Int("origins", len(c.origins)).
		Int("names", c.index.Len()).
		Msg("reference catalog built")
	return c, nil
}

func (c *Catalog) add(ctx context.Context, schema types.Schema, opts CatalogOptions) error {
	idx := len(c.origins)
	origin := Origin{Schema: schema.Name, Path: schema.Path, Objects: schema.Objects}
	for _, obj := range schema.Objects {
		if obj.Type == types.ObjectTypeDataType {
			primitive, ok := fundamentalTypes[obj.Name]
			if !ok {
				log.Ctx(ctx).Debug().Str("schema", schema.Name).Str("type", obj.Name).Msg("data type has no primitive mapping")
				continue
			}
			c.primitives[obj.Name] = primitive
			continue
		}
		if !obj.Type.IsExported() {
			continue
		}
		origin.Exports = append(origin.Exports, obj.Name)
		prev, exists := c.index.Get(obj.Name)
		if !exists {
			c.index.Set(obj.Name, idx)
			continue
		}
		if prev == idx {
			continue
		}
		if prev == 0 {
			log.Ctx(ctx).Debug().
				Str("name", obj.Name).
				Str("import", schema.Name).
				Msg("local name shadows imported name")
			continue
		}
		if opts.StrictReferences {
			return errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg("ambiguous reference: " + obj.Name + " is exported by both " +
					c.origins[prev].Schema + " and " + schema.Name)
		}
		log.Ctx(ctx).Warn().
			Str("name", obj.Name).
			Str("kept", c.origins[prev].Schema).
			Str("ignored", schema.Name).
			Msg("name exported by more than one referenced schema")
	}
	c.origins = append(c.origins, origin)
	return nil
}

// Origins returns the catalog's files, local schema first.
func (c *Catalog) Origins() []Origin {
	return append([]Origin(nil), c.origins...)
}

// Local is the schema under translation.
func (c *Catalog) Local() Origin {
	return c.origins[0]
}

// OriginOf reports which schema exports name.
func (c *Catalog) OriginOf(name string) (string, bool) {
	idx, ok := c.index.Get(name)
	if !ok {
		return "", false
	}
	return c.origins[idx].Schema, true
}

// IsLocal reports whether name is exported by the schema under translation.
func (c *Catalog) IsLocal(name string) bool {
	idx, ok := c.index.Get(name)
	return ok && idx == 0
}

// Primitive maps a fundamental schema type to its C++ primitive.
func (c *Catalog) Primitive(name string) (string, bool) {
	p, ok := c.primitives[name]
	return p, ok
}

// Object finds the exported object behind name.
func (c *Catalog) Object(name string) (types.Object, bool) {
	idx, ok := c.index.Get(name)
	if !ok {
		return types.Object{}, false
	}
	for _, obj := range c.origins[idx].Objects {
		if obj.Name == name {
			return obj, true
		}
	}
	return types.Object{}, false
}

// Entry is one indexed name for listing.
type Entry struct {
	Name   string
	Origin string
}

// Entries lists every exported name in lexical order with its origin.
func (c *Catalog) Entries() []Entry {
	entries := make([]Entry, 0, c.index.Len())
	c.index.Scan(func(name string, idx int) bool {
		entries = append(entries, Entry{Name: name, Origin: c.origins[idx].Schema})
		return true
	})
	return entries
}
