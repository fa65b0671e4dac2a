package types

import "strings"

// BaseRole is the inheritance role a generated struct plays. Plugins are
// registered against the extensible roles.
type BaseRole int

const (
	RoleNone BaseRole = iota
	RoleRoot
	RoleGridVariables
	RoleLookupVariables
	RolePerformanceMap
)

// ExtensibleRoles lists the roles a plugin may extend.
var ExtensibleRoles = []BaseRole{
	RoleGridVariables,
	RoleLookupVariables,
	RolePerformanceMap,
}

func (r BaseRole) String() string {
	switch r {
	case RoleNone:
		return "none"
	case RoleRoot:
		return "root"
	case RoleGridVariables:
		return "grid-variables"
	case RoleLookupVariables:
		return "lookup-variables"
	case RolePerformanceMap:
		return "performance-map"
	default:
		return "unknown"
	}
}

// Extensible reports whether plugins may be registered for the role.
func (r BaseRole) Extensible() bool {
	for _, role := range ExtensibleRoles {
		if r == role {
			return true
		}
	}
	return false
}

// ParseBaseRole maps a role name (as printed by String) back to the role.
func ParseBaseRole(value string) (BaseRole, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "root":
		return RoleRoot, true
	case "grid-variables":
		return RoleGridVariables, true
	case "lookup-variables":
		return RoleLookupVariables, true
	case "performance-map":
		return RolePerformanceMap, true
	case "none", "":
		return RoleNone, true
	default:
		return RoleNone, false
	}
}

// RoleForObjectType gives the role implied by a group's object type. The
// root role is assigned separately from the schema's Root Data Group.
func RoleForObjectType(t ObjectType) BaseRole {
	switch t {
	case ObjectTypeGridVariables:
		return RoleGridVariables
	case ObjectTypeLookupVariables:
		return RoleLookupVariables
	case ObjectTypePerformanceMap:
		return RolePerformanceMap
	default:
		return RoleNone
	}
}
