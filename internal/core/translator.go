package core

import (
	"context"

	"github.com/rs/zerolog/log"

	"schema205/internal/ports"
	"schema205/internal/types"
)

type TranslateOptions struct {
	Container        string
	RootBaseClass    string
	StrictReferences bool
	// SchemaVersion is a PEP 440 specifier the schema's Version must
	// satisfy; empty accepts any version.
	SchemaVersion string
}

// Translation holds everything produced for one schema file. It is owned by
// a single goroutine.
type Translation struct {
	Schema          types.Schema
	Catalog         *Catalog
	Declarations    Declarations
	Implementations Implementations
}

// Translator runs the whole pipeline for one schema: catalog, declaration
// tree, implementation tree, then the extension passes.
type Translator struct {
	loader     ports.SchemaLoaderPort
	extensions ports.ExtensionPort
	opts       TranslateOptions
}

// NewTranslator builds a Translator. extensions may be nil to skip plugin
// passes.
func NewTranslator(loader ports.SchemaLoaderPort, extensions ports.ExtensionPort, opts TranslateOptions) Translator {
	return Translator{loader: loader, extensions: extensions, opts: opts}
}

func (t Translator) Translate(ctx context.Context, schema types.Schema) (Translation, error) {
	logger := log.Ctx(ctx).With().Str("schema", schema.Name).Logger()
	ctx = logger.WithContext(ctx)

	if err := CheckSchemaVersion(ctx, schema, t.opts.SchemaVersion); err != nil {
		return Translation{}, err
	}
	catalog, err := BuildCatalog(ctx, t.loader, schema, CatalogOptions{StrictReferences: t.opts.StrictReferences})
	if err != nil {
		return Translation{}, err
	}

	decls, err := NewDeclarationBuilder(catalog, schema, DeclarationOptions{
		Container:     t.opts.Container,
		RootBaseClass: t.opts.RootBaseClass,
	}).Build(ctx, NewPreamble())
	if err != nil {
		return Translation{}, err
	}
	impls, err := NewImplementationBuilder(catalog, schema).Build(ctx, decls, NewPreamble())
	if err != nil {
		return Translation{}, err
	}

	if t.extensions != nil {
		if err := t.extensions.Apply(ctx, decls.Root(), impls.Root()); err != nil {
			return Translation{}, err
		}
	}
	logger.Debug().Msg("translation complete")
	return Translation{
		Schema:          schema,
		Catalog:         catalog,
		Declarations:    decls,
		Implementations: impls,
	}, nil
}
