package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"schema205/internal/core"
	"schema205/internal/types"
)

// References builds the reference catalog of one schema and lists every
// name it can see, with the file that exports it.
func (s Service) References(ctx context.Context, req ReferencesRequest) (ReferencesResult, error) {
	schemaPath := strings.TrimSpace(req.SchemaPath)
	if schemaPath == "" {
		return ReferencesResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("schema file is required")
	}
	schema, err := s.SchemaLoader.LoadSchema(schemaPath)
	if err != nil {
		return ReferencesResult{}, err
	}
	catalog, err := core.BuildCatalog(ctx, s.SchemaLoader, schema, core.CatalogOptions{StrictReferences: req.StrictReferences})
	if err != nil {
		return ReferencesResult{}, err
	}
	result := ReferencesResult{Schema: schema.Name}
	for _, origin := range catalog.Origins() {
		result.Origins = append(result.Origins, origin.Schema)
	}
	for _, entry := range catalog.Entries() {
		result.Entries = append(result.Entries, ReferenceEntry{Name: entry.Name, Origin: entry.Origin})
	}
	return result, nil
}

// ListPlugins reports the registered plugins grouped by role, in
// registration order within a role.
func (s Service) ListPlugins() PluginsResult {
	var result PluginsResult
	if s.Plugins == nil {
		return result
	}
	for _, role := range types.ExtensibleRoles {
		for _, p := range s.Plugins.ForRole(role) {
			result.Plugins = append(result.Plugins, PluginInfo{Name: p.Name(), Role: role})
		}
	}
	return result
}
