package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"schema205/internal/core"
	"schema205/internal/plugins"
)

// Generate translates one schema file, or every schema below a directory,
// and writes a header and source per schema.
func (s Service) Generate(ctx context.Context, req GenerateRequest) (GenerateResult, error) {
	req = applyGenerateDefaults(req, DefaultSettings())
	schemaPath := strings.TrimSpace(req.SchemaPath)
	schemaDir := strings.TrimSpace(req.SchemaDir)
	if schemaPath == "" && schemaDir == "" {
		return GenerateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("schema file or schema directory is required")
	}
	if schemaPath != "" && schemaDir != "" {
		return GenerateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("schema file and schema directory are mutually exclusive")
	}

	paths := []string{schemaPath}
	if schemaDir != "" {
		found, err := s.SchemaFinder.FindSchemas(schemaDir, req.Pattern)
		if err != nil {
			return GenerateResult{}, err
		}
		if len(found) == 0 {
			return GenerateResult{}, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("no schema files match " + req.Pattern + " in " + schemaDir)
		}
		paths = found
	}

	translator, err := s.translator(req)
	if err != nil {
		return GenerateResult{}, err
	}
	units, err := s.generateAll(ctx, translator, paths, req)
	if err != nil {
		return GenerateResult{}, err
	}
	return GenerateResult{OutputDir: req.OutputDir, Units: units}, nil
}

func (s Service) translator(req GenerateRequest) (core.Translator, error) {
	registry := s.Plugins
	if registry == nil {
		registry = plugins.NewRegistry()
	}
	selected, err := registry.Select(req.Plugins)
	if err != nil {
		return core.Translator{}, err
	}
	return core.NewTranslator(s.SchemaLoader, plugins.NewLoader(selected), core.TranslateOptions{
		Container:        req.Container,
		RootBaseClass:    req.RootBaseClass,
		StrictReferences: req.StrictReferences,
		SchemaVersion:    req.SchemaVersion,
	}), nil
}

// generateAll translates independent files concurrently, up to
// req.Parallelism at a time. Each translation owns its catalog and trees.
// The first failure cancels the rest.
func (s Service) generateAll(ctx context.Context, translator core.Translator, paths []string, req GenerateRequest) ([]GeneratedUnit, error) {
	output := s.Output(req.OutputDir)
	units := make([]GeneratedUnit, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(req.Parallelism)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			schema, err := s.SchemaLoader.LoadSchema(path)
			if err != nil {
				return err
			}
			translation, err := translator.Translate(gctx, schema)
			if err != nil {
				return err
			}
			files, err := output.WriteUnit(translation.Render())
			if err != nil {
				return err
			}
			units[i] = GeneratedUnit{Schema: schema.Name, Files: files}
			log.Ctx(gctx).Info().Str("schema", schema.Name).Strs("files", files).Msg("schema generated")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return units, nil
}
