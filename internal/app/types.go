package app

import "schema205/internal/types"

type GenerateRequest struct {
	// SchemaPath translates a single file. Exactly one of SchemaPath and
	// SchemaDir is set.
	SchemaPath string
	SchemaDir  string
	Pattern    string
	OutputDir  string

	Container        string
	RootBaseClass    string
	Plugins          []string
	StrictReferences bool
	SchemaVersion    string
	Parallelism      int
}

type GeneratedUnit struct {
	Schema string
	Files  []string
}

type GenerateResult struct {
	OutputDir string
	Units     []GeneratedUnit
}

type ReferencesRequest struct {
	SchemaPath       string
	StrictReferences bool
}

type ReferenceEntry struct {
	Name   string
	Origin string
}

type ReferencesResult struct {
	Schema  string
	Origins []string
	Entries []ReferenceEntry
}

type PluginInfo struct {
	Name string
	Role types.BaseRole
}

type PluginsResult struct {
	Plugins []PluginInfo
}
