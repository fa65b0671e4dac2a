package plugins

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"schema205/internal/nodes"
	"schema205/internal/ports"
)

// Loader runs the plugins of a registry over a translation's trees.
type Loader struct {
	registry *Registry
}

var _ ports.ExtensionPort = Loader{}

func NewLoader(registry *Registry) Loader {
	return Loader{registry: registry}
}

// Apply invokes every matching plugin once per target. Targets are
// collected before any plugin runs, so structs a plugin appends are not
// visited. After each call the loader checks the call only appended.
func (l Loader) Apply(ctx context.Context, declarations nodes.Declaration, implementations nodes.Implementation) error {
	if l.registry == nil {
		return nil
	}
	var structs []*nodes.Struct
	nodes.Walk(declarations, func(d nodes.Declaration) bool {
		if s, ok := d.(*nodes.Struct); ok {
			structs = append(structs, s)
			return false
		}
		return true
	})
	for _, s := range structs {
		for _, p := range l.registry.ForRole(s.Role) {
			snap := nodes.SnapshotDeclarations(declarations)
			if err := p.ExtendDeclarations(s, nodes.NewAppender(s)); err != nil {
				return pluginError(p, s, err)
			}
			if err := snap.Verify(); err != nil {
				return pluginError(p, s, err)
			}
			log.Ctx(ctx).Debug().Str("plugin", p.Name()).Str("struct", s.Name()).Msg("declarations extended")
		}
	}

	if implementations == nil {
		return nil
	}
	for _, def := range nodes.FunctionDefinitions(implementations) {
		owner := def.Owner()
		if owner == nil {
			continue
		}
		for _, p := range l.registry.ForRole(owner.Role) {
			snap := nodes.SnapshotImplementations(implementations)
			if err := p.ExtendImplementations(owner, nodes.NewImplAppender(def)); err != nil {
				return pluginError(p, owner, err)
			}
			if err := snap.Verify(); err != nil {
				return pluginError(p, owner, err)
			}
		}
	}
	return nil
}

func pluginError(p Plugin, s *nodes.Struct, err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("plugin " + p.Name() + " failed on " + s.Name()).
		WithCause(err)
}
