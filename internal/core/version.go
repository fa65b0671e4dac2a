package core

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"
	"github.com/rs/zerolog/log"

	"schema205/internal/types"
)

// CheckSchemaVersion validates the Version of a schema's Meta object
// against a PEP 440 specifier set such as ">=1.0,<2". An empty constraint
// accepts every schema.
func CheckSchemaVersion(ctx context.Context, schema types.Schema, constraint string) error {
	constraint = strings.TrimSpace(constraint)
	if constraint == "" {
		return nil
	}
	specs, err := pep440.NewSpecifiers(constraint)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid schema version constraint: " + constraint).
			WithCause(err)
	}
	meta, ok := schema.Meta()
	if !ok || strings.TrimSpace(meta.Meta.Version) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("schema " + schema.Name + " declares no version but " + constraint + " is required")
	}
	version, err := pep440.Parse(strings.TrimSpace(meta.Meta.Version))
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("schema " + schema.Name + " has an invalid version: " + meta.Meta.Version).
			WithCause(err)
	}
	if !specs.Check(version) {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("schema " + schema.Name + " version " + meta.Meta.Version + " does not satisfy " + constraint)
	}
	log.Ctx(ctx).Debug().Str("schema", schema.Name).Str("version", meta.Meta.Version).Msg("schema version accepted")
	return nil
}
