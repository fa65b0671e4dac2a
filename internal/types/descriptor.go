package types

// TypeKind discriminates the shapes a Data Type expression can resolve to.
type TypeKind int

const (
	TypeKindSimple TypeKind = iota
	TypeKindArray
	TypeKindSelector
	TypeKindNested
)

func (k TypeKind) String() string {
	switch k {
	case TypeKindSimple:
		return "simple"
	case TypeKindArray:
		return "array"
	case TypeKindSelector:
		return "selector"
	case TypeKindNested:
		return "nested"
	default:
		return "unknown"
	}
}

// SelectorCase pairs one discriminant enumerator with the concrete type it
// selects.
type SelectorCase struct {
	// Enumerator is the qualified enumerator, e.g. "rs0001_ns::Kind::VALUE_A".
	Enumerator string
	// Type is the qualified concrete type, e.g. "rs0001_ns::EnumA".
	Type string
}

// TypeDescriptor is the resolved shape of a Data Element's type string.
type TypeDescriptor struct {
	Kind TypeKind
	// Raw is the type expression as written in the schema.
	Raw string
	// Name is the target type text for Simple, Selector and Nested
	// descriptors. Array descriptors leave it empty and render through Elem.
	Name string
	// Origin is the schema that exports the referenced name; empty for
	// fundamental types.
	Origin string
	Elem   *TypeDescriptor

	// Key is the name of the sibling element whose value selects a case.
	Key   string
	Cases []SelectorCase

	// SubKey and SubValue carry the fixed sub-selection of a Nested
	// reference, e.g. "RS_ID" and "RS0005" for {ASHRAE205(RS_ID=RS0005)}.
	SubKey   string
	SubValue string
}

// CppType renders the descriptor as a C++ type.
func (d TypeDescriptor) CppType() string {
	if d.Kind == TypeKindArray && d.Elem != nil {
		return "std::vector<" + d.Elem.CppType() + ">"
	}
	return d.Name
}

// InnerType is the element type of an array descriptor, or the type itself
// otherwise. Lookup-struct projections and performance overloads use it.
func (d TypeDescriptor) InnerType() string {
	if d.Kind == TypeKindArray && d.Elem != nil {
		return d.Elem.CppType()
	}
	return d.CppType()
}

// IsOwningPointer reports whether the member is a polymorphic owning
// pointer constructed through a factory.
func (d TypeDescriptor) IsOwningPointer() bool {
	return d.Kind == TypeKindSelector
}
