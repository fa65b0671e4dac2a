// Package plugins extends generated structs by base role. Plugins register
// themselves from init functions and may only append nodes.
package plugins

import (
	"sort"
	"sync"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"schema205/internal/nodes"
	"schema205/internal/types"
)

// Plugin adds declarations and implementations to structs of one role.
type Plugin interface {
	Name() string
	Role() types.BaseRole
	// ExtendDeclarations is called once per struct of the plugin's role.
	ExtendDeclarations(target *nodes.Struct, appender nodes.Appender) error
	// ExtendImplementations is called once per member function definition
	// owned by a struct of the plugin's role.
	ExtendImplementations(owner *nodes.Struct, appender nodes.ImplAppender) error
}

// Registry holds plugins per role in registration order. It is written
// during start-up and read-only afterwards.
type Registry struct {
	mu      sync.RWMutex
	byRole  map[types.BaseRole][]Plugin
	byName  map[string]Plugin
	ordered []string
}

func NewRegistry() *Registry {
	return &Registry{
		byRole: map[types.BaseRole][]Plugin{},
		byName: map[string]Plugin{},
	}
}

// Register adds p. Names are unique and the role must be extensible.
func (r *Registry) Register(p Plugin) error {
	if p == nil || p.Name() == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("plugin must have a name")
	}
	if !p.Role().Extensible() {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("plugin " + p.Name() + " targets role " + p.Role().String() + " which cannot be extended")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byName[p.Name()]; exists {
		return errbuilder.New().
			WithCode(errbuilder.CodeAlreadyExists).
			WithMsg("plugin " + p.Name() + " is already registered")
	}
	r.byName[p.Name()] = p
	r.byRole[p.Role()] = append(r.byRole[p.Role()], p)
	r.ordered = append(r.ordered, p.Name())
	return nil
}

// ForRole lists the plugins of role in registration order.
func (r *Registry) ForRole(role types.BaseRole) []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Plugin(nil), r.byRole[role]...)
}

// Names lists every registered plugin name, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := append([]string(nil), r.ordered...)
	sort.Strings(names)
	return names
}

// Select builds a registry holding only the named plugins. An empty list
// selects everything.
func (r *Registry) Select(names []string) (*Registry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(names) == 0 {
		names = r.ordered
	}
	selected := NewRegistry()
	for _, name := range names {
		p, ok := r.byName[name]
		if !ok {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("unknown plugin: " + name)
		}
		if err := selected.Register(p); err != nil {
			return nil, err
		}
	}
	return selected, nil
}

var defaultRegistry = NewRegistry()

// Register adds p to the process-wide registry. It is meant for init
// functions and panics on an invalid or duplicate plugin.
func Register(p Plugin) {
	if err := defaultRegistry.Register(p); err != nil {
		panic(err)
	}
}

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}
