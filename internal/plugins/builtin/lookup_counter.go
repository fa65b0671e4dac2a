// Package builtin holds the plugins compiled into schema205. Import it for
// its side effects.
package builtin

import (
	"schema205/internal/nodes"
	"schema205/internal/plugins"
	"schema205/internal/types"
)

func init() {
	plugins.Register(LookupCounterEnum{})
}

// LookupCounterEnum gives lookup-variable structs the same positional
// counter enum grid variables carry, so result slots can be addressed by
// name.
type LookupCounterEnum struct{}

func (LookupCounterEnum) Name() string         { return "lookup-counter-enum" }
func (LookupCounterEnum) Role() types.BaseRole { return types.RoleLookupVariables }

func (LookupCounterEnum) ExtendDeclarations(target *nodes.Struct, appender nodes.Appender) error {
	var members []string
	for _, de := range nodes.DataElements(target) {
		members = append(members, de.Name())
	}
	return appender.Append(nodes.NewCounterEnum(nil, members))
}

func (LookupCounterEnum) ExtendImplementations(*nodes.Struct, nodes.ImplAppender) error {
	return nil
}
