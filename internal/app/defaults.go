package app

import (
	"schema205/internal/adapters"
	"schema205/internal/core"
)

// Defaults are the fallbacks used when neither flags nor config set a
// value.
type Defaults struct {
	Container     string
	RootBaseClass string
	Pattern       string
	OutputDir     string
	Parallelism   int
}

func DefaultSettings() Defaults {
	return Defaults{
		Container:     "tk205",
		RootBaseClass: core.DefaultRootBaseClass,
		Pattern:       adapters.DefaultSchemaPattern,
		OutputDir:     "build/generated",
		Parallelism:   1,
	}
}

// applyGenerateDefaults fills unset request fields. Container is left
// alone: an empty container is a valid choice.
func applyGenerateDefaults(req GenerateRequest, defaults Defaults) GenerateRequest {
	if req.RootBaseClass == "" {
		req.RootBaseClass = defaults.RootBaseClass
	}
	if req.Pattern == "" {
		req.Pattern = defaults.Pattern
	}
	if req.OutputDir == "" {
		req.OutputDir = defaults.OutputDir
	}
	if req.Parallelism < 1 {
		req.Parallelism = defaults.Parallelism
	}
	return req
}
