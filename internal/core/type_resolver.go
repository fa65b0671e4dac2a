package core

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"schema205/internal/shared"
	"schema205/internal/types"
)

var (
	groupRefPattern  = regexp.MustCompile(`^\{(.*)\}$`)
	enumRefPattern   = regexp.MustCompile(`^<(.*)>$`)
	nestedPattern    = regexp.MustCompile(`^(\w+)\(\s*(\w+)\s*=\s*(\w+)\s*\)$`)
	selectorPattern  = regexp.MustCompile(`^\s*(\w+)\s*\((.*)\)\s*$`)
)

// TypeResolver parses Data Type expressions into type descriptors,
// qualifying referenced names through the catalog.
type TypeResolver struct {
	catalog *Catalog
	schema  types.Schema
}

func NewTypeResolver(catalog *Catalog, schema types.Schema) TypeResolver {
	return TypeResolver{catalog: catalog, schema: schema}
}

// Resolve returns the descriptor for one element of group. Any expression
// that cannot be resolved is an error; there is no fallback type.
func (r TypeResolver) Resolve(group types.Object, element types.DataElement) (types.TypeDescriptor, error) {
	raw := strings.TrimSpace(element.DataType)
	switch {
	case raw == "":
		return types.TypeDescriptor{}, r.unknownType(group, element, "missing data type")
	case strings.HasPrefix(raw, "(") && strings.HasSuffix(raw, ")"):
		return r.resolveSelector(group, element, raw)
	}
	desc, ok := r.resolveExpression(raw)
	if !ok {
		return types.TypeDescriptor{}, r.unknownType(group, element, "unknown type")
	}
	return desc, nil
}

func (r TypeResolver) resolveExpression(expr string) (types.TypeDescriptor, bool) {
	raw := strings.TrimSpace(expr)
	expr = firstAlternative(raw)
	if strings.HasPrefix(expr, "[") && strings.HasSuffix(expr, "]") {
		elem, ok := r.resolveExpression(expr[1 : len(expr)-1])
		if !ok {
			return types.TypeDescriptor{}, false
		}
		return types.TypeDescriptor{Kind: types.TypeKindArray, Raw: raw, Elem: &elem}, true
	}
	desc, ok := r.resolveSimple(expr)
	if ok {
		desc.Raw = raw
	}
	return desc, ok
}

// firstAlternative keeps the part of a "/"-joined alternative such as
// "[Numeric]/Null" before the first top-level slash.
func firstAlternative(expr string) string {
	depth := 0
	for i, c := range expr {
		switch c {
		case '[', '{', '<', '(':
			depth++
		case ']', '}', '>', ')':
			depth--
		case '/':
			if depth == 0 {
				return strings.TrimSpace(expr[:i])
			}
		}
	}
	return expr
}

func referenceName(expr string) string {
	if m := groupRefPattern.FindStringSubmatch(expr); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := enumRefPattern.FindStringSubmatch(expr); m != nil {
		return strings.TrimSpace(m[1])
	}
	return expr
}

// resolveSimple handles Name, {Name}, <Name> and Name(key=value). A
// "/"-joined alternative such as "Numeric/Null" resolves its first
// alternative only. A nested reference needs a non-empty key and value.
func (r TypeResolver) resolveSimple(expr string) (types.TypeDescriptor, bool) {
	raw := expr
	name := referenceName(firstAlternative(expr))
	if strings.ContainsAny(name, "(){}<>[]/=") {
		m := nestedPattern.FindStringSubmatch(name)
		if m == nil {
			return types.TypeDescriptor{}, false
		}
		origin, ok := r.catalog.OriginOf(m[1])
		if !ok {
			return types.TypeDescriptor{}, false
		}
		return types.TypeDescriptor{
			Kind:     types.TypeKindNested,
			Raw:      raw,
			Name:     m[1],
			Origin:   origin,
			SubKey:   m[2],
			SubValue: m[3],
		}, true
	}
	if origin, ok := r.catalog.OriginOf(name); ok {
		return types.TypeDescriptor{
			Kind:   types.TypeKindSimple,
			Raw:    raw,
			Name:   shared.Namespace(origin) + "::" + name,
			Origin: origin,
		}, true
	}
	if primitive, ok := r.catalog.Primitive(name); ok {
		return types.TypeDescriptor{Kind: types.TypeKindSimple, Raw: raw, Name: primitive}, true
	}
	return types.TypeDescriptor{}, false
}

// resolveSelector zips the types of "(T1, T2)" with the enumerators of a
// "key(E1, E2)" constraint, in order.
func (r TypeResolver) resolveSelector(group types.Object, element types.DataElement, raw string) (types.TypeDescriptor, error) {
	var key string
	var enumerators []string
	for _, constraint := range element.Constraints {
		if m := selectorPattern.FindStringSubmatch(constraint); m != nil {
			key = m[1]
			enumerators = splitList(m[2])
			break
		}
	}
	if key == "" {
		return types.TypeDescriptor{}, r.malformedSelector(group, element, "no selector constraint of the form key(E1, E2, ...)")
	}
	choices := splitList(raw[1 : len(raw)-1])
	if len(enumerators) == 0 || len(choices) == 0 {
		return types.TypeDescriptor{}, r.malformedSelector(group, element, "empty selector list")
	}
	if len(enumerators) != len(choices) {
		return types.TypeDescriptor{}, r.malformedSelector(group, element,
			fmt.Sprintf("%d enumerators for %d types", len(enumerators), len(choices)))
	}

	keyType, ok := r.discriminantType(group, key)
	if !ok {
		return types.TypeDescriptor{}, r.malformedSelector(group, element, "no element named "+key+" selects the type")
	}
	keyDesc, ok := r.resolveSimple(keyType)
	if !ok {
		return types.TypeDescriptor{}, r.unknownType(group, element, "unknown selector key type "+keyType)
	}

	desc := types.TypeDescriptor{
		Kind: types.TypeKindSelector,
		Raw:  raw,
		Name: "std::unique_ptr<" + SelectorBase(element.Name) + ">",
		Key:  key,
	}
	for i, choice := range choices {
		choiceDesc, ok := r.resolveSimple(choice)
		if !ok {
			return types.TypeDescriptor{}, r.unknownType(group, element, "unknown selector type "+choice)
		}
		desc.Cases = append(desc.Cases, types.SelectorCase{
			Enumerator: keyDesc.CppType() + "::" + enumerators[i],
			Type:       choiceDesc.CppType(),
		})
	}
	return desc, nil
}

// discriminantType finds the Data Type of the element named key, looking
// in the same group first, then in the rest of the schema and its
// references. Decoration such as braces is stripped.
func (r TypeResolver) discriminantType(group types.Object, key string) (string, bool) {
	candidates := [][]types.Object{{group}, r.schema.Objects}
	for _, origin := range r.catalog.Origins() {
		candidates = append(candidates, origin.Objects)
	}
	for _, objects := range candidates {
		for _, obj := range objects {
			for _, de := range obj.DataElements {
				if de.Name == key && de.DataType != "" {
					return strings.Map(func(c rune) rune {
						if unicode.IsLetter(c) || unicode.IsDigit(c) {
							return c
						}
						return -1
					}, de.DataType), true
				}
			}
		}
	}
	return "", false
}

// SelectorBase is the polymorphic base class of a selector member, e.g.
// "heat_source" -> "HeatSourceBase".
func SelectorBase(element string) string {
	return shared.PascalCase(element) + "Base"
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (r TypeResolver) unknownType(group types.Object, element types.DataElement, reason string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("%s: %s.%s has type %q in %s", reason, group.Name, element.Name, element.DataType, r.location()))
}

func (r TypeResolver) malformedSelector(group types.Object, element types.DataElement, reason string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("malformed selector %s.%s in %s: %s", group.Name, element.Name, r.location(), reason))
}

func (r TypeResolver) location() string {
	if r.schema.Path != "" {
		return r.schema.Path
	}
	return r.schema.Name
}
