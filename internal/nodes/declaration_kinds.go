package nodes

import (
	"fmt"
	"strconv"
	"strings"

	"schema205/internal/types"
)

// Namespace scopes its children.
type Namespace struct {
	DeclBase
}

func NewNamespace(parent Declaration, name string) *Namespace {
	n := &Namespace{DeclBase: NewDeclBase(name)}
	attach(parent, n)
	return n
}

func (n *Namespace) Signature() string { return "namespace " + n.name }

func (n *Namespace) Render() string {
	ind := indent(n)
	var sb strings.Builder
	fmt.Fprintf(&sb, "%snamespace %s {\n", ind, n.name)
	renderChildren(&sb, n.children)
	sb.WriteString(ind + "}")
	return sb.String()
}

// Typedef aliases a String Type to its target type.
type Typedef struct {
	DeclBase
	Target string
}

func NewTypedef(parent Declaration, name, target string) *Typedef {
	t := &Typedef{DeclBase: NewDeclBase(name), Target: target}
	attach(parent, t)
	return t
}

func (t *Typedef) Signature() string { return "typedef " + t.Target + " " + t.name }

func (t *Typedef) Render() string {
	return fmt.Sprintf("%stypedef %s %s;", indent(t), t.Target, t.name)
}

// UnknownEnumerator is appended to every generated enumeration.
const UnknownEnumerator = "UNKNOWN"

// Enumeration is an enum class plus its {Name}_info metadata map. The
// UNKNOWN sentinel is always the last enumerator.
type Enumeration struct {
	DeclBase
	enumerators []types.Enumerator
}

func NewEnumeration(parent Declaration, name string, enumerators []types.Enumerator) *Enumeration {
	e := &Enumeration{DeclBase: NewDeclBase(name)}
	e.enumerators = append(e.enumerators, enumerators...)
	e.enumerators = append(e.enumerators, types.Enumerator{
		Value:       UnknownEnumerator,
		DisplayText: "None",
		Description: "None",
	})
	attach(parent, e)
	return e
}

// Values lists the enumerator names including the UNKNOWN sentinel.
func (e *Enumeration) Values() []string {
	out := make([]string, 0, len(e.enumerators))
	for _, en := range e.enumerators {
		out = append(out, en.Value)
	}
	return out
}

func (e *Enumeration) Signature() string { return "enum class " + e.name }

func (e *Enumeration) Render() string {
	ind := indent(e)
	var sb strings.Builder
	fmt.Fprintf(&sb, "%senum class %s {\n", ind, e.name)
	for i, en := range e.enumerators {
		sep := ","
		if i == len(e.enumerators)-1 {
			sep = ""
		}
		fmt.Fprintf(&sb, "%s\t%s%s\n", ind, en.Value, sep)
	}
	fmt.Fprintf(&sb, "%s};\n", ind)
	fmt.Fprintf(&sb, "%sconst static std::unordered_map<%s, enum_info> %s_info {\n", ind, e.name, e.name)
	for i, en := range e.enumerators {
		sep := ","
		if i == len(e.enumerators)-1 {
			sep = ""
		}
		display := en.DisplayText
		if display == "" {
			display = en.Value
		}
		fmt.Fprintf(&sb, "%s\t{%s::%s, {%s, %s, %s}}%s\n", ind, e.name, en.Value,
			strconv.Quote(en.Value), strconv.Quote(display), strconv.Quote(en.Description), sep)
	}
	fmt.Fprintf(&sb, "%s};", ind)
	return sb.String()
}

// EnumSerialization maps an enumeration to and from its JSON strings.
// UNKNOWN is listed first so unrecognised input falls back to it.
type EnumSerialization struct {
	DeclBase
	values []string
}

func NewEnumSerialization(parent Declaration, enum *Enumeration) *EnumSerialization {
	values := []string{UnknownEnumerator}
	for _, v := range enum.Values() {
		if v != UnknownEnumerator {
			values = append(values, v)
		}
	}
	s := &EnumSerialization{DeclBase: NewDeclBase(enum.Name()), values: values}
	attach(parent, s)
	return s
}

func (s *EnumSerialization) Values() []string {
	return append([]string(nil), s.values...)
}

func (s *EnumSerialization) Signature() string { return "NLOHMANN_JSON_SERIALIZE_ENUM " + s.name }

func (s *EnumSerialization) Render() string {
	ind := indent(s)
	var sb strings.Builder
	fmt.Fprintf(&sb, "%sNLOHMANN_JSON_SERIALIZE_ENUM(%s, {\n", ind, s.name)
	for _, v := range s.values {
		fmt.Fprintf(&sb, "%s\t{%s::%s, %s},\n", ind, s.name, v, strconv.Quote(v))
	}
	fmt.Fprintf(&sb, "%s})", ind)
	return sb.String()
}

// Struct is a class or struct declaration. Lookup structs additionally
// render a structure-of-arrays projection named {Name}Struct.
type Struct struct {
	DeclBase
	Keyword    string
	Superclass string
	Role       types.BaseRole
	lookup     bool
}

func NewStruct(parent Declaration, name, superclass string, role types.BaseRole) *Struct {
	s := &Struct{DeclBase: NewDeclBase(name), Keyword: "class", Superclass: superclass, Role: role}
	attach(parent, s)
	return s
}

func NewLookupStruct(parent Declaration, name, superclass string) *Struct {
	s := &Struct{
		DeclBase:   NewDeclBase(name),
		Keyword:    "struct",
		Superclass: superclass,
		Role:       types.RoleLookupVariables,
		lookup:     true,
	}
	attach(parent, s)
	return s
}

func (s *Struct) IsLookup() bool { return s.lookup }

// ProjectionName is the name of a lookup struct's structure-of-arrays
// projection.
func (s *Struct) ProjectionName() string { return s.name + "Struct" }

func (s *Struct) Signature() string { return s.Keyword + " " + s.name }

func (s *Struct) Render() string {
	ind := indent(s)
	var sb strings.Builder
	header := s.Keyword + " " + s.name
	if s.Superclass != "" {
		header += " : public " + s.Superclass
	}
	fmt.Fprintf(&sb, "%s%s {\n", ind, header)
	if s.Keyword == "class" {
		fmt.Fprintf(&sb, "%spublic:\n", ind)
	}
	renderChildren(&sb, s.children)
	fmt.Fprintf(&sb, "%s};", ind)
	if s.lookup {
		fmt.Fprintf(&sb, "\n%sstruct %s {\n", ind, s.ProjectionName())
		for _, de := range DataElements(s) {
			fmt.Fprintf(&sb, "%s\t%s %s;\n", ind, de.Descriptor.InnerType(), de.name)
		}
		fmt.Fprintf(&sb, "%s};", ind)
	}
	return sb.String()
}

// DataElement is a data member carrying its resolved type.
type DataElement struct {
	DeclBase
	Descriptor types.TypeDescriptor
	Required   bool
}

func NewDataElement(parent Declaration, name string, descriptor types.TypeDescriptor, required bool) *DataElement {
	d := &DataElement{DeclBase: NewDeclBase(name), Descriptor: descriptor, Required: required}
	attach(parent, d)
	return d
}

func (d *DataElement) Type() string { return d.Descriptor.CppType() }

func (d *DataElement) Signature() string { return d.Type() + " " + d.name }

func (d *DataElement) Render() string {
	return fmt.Sprintf("%s%s %s;", indent(d), d.Type(), d.name)
}

// IsSetFlag records whether the matching member was present in the input.
type IsSetFlag struct {
	DeclBase
	Element string
}

func NewIsSetFlag(parent Declaration, element string) *IsSetFlag {
	f := &IsSetFlag{DeclBase: NewDeclBase(element + "_is_set"), Element: element}
	attach(parent, f)
	return f
}

func (f *IsSetFlag) Signature() string { return "bool " + f.name }

func (f *IsSetFlag) Render() string {
	return fmt.Sprintf("%sbool %s;", indent(f), f.name)
}

// StaticMetaInfo is a static string member holding schema metadata such as
// an element's units. The value is emitted by its definition.
type StaticMetaInfo struct {
	DeclBase
	Value string
}

func NewStaticMetaInfo(parent Declaration, name, value string) *StaticMetaInfo {
	m := &StaticMetaInfo{DeclBase: NewDeclBase(name), Value: value}
	attach(parent, m)
	return m
}

func (m *StaticMetaInfo) Type() string { return "std::string_view" }

func (m *StaticMetaInfo) Signature() string { return m.Type() + " " + m.name }

func (m *StaticMetaInfo) Render() string {
	return fmt.Sprintf("%sconst static %s %s;", indent(m), m.Type(), m.name)
}

// StoredDependency is a static member shared by all instances, e.g. the
// logger.
type StoredDependency struct {
	DeclBase
	Type string
}

func NewStoredDependency(parent Declaration, name, typ string) *StoredDependency {
	d := &StoredDependency{DeclBase: NewDeclBase(name), Type: typ}
	attach(parent, d)
	return d
}

func (d *StoredDependency) Signature() string { return d.Type + " " + d.name }

func (d *StoredDependency) Render() string {
	return fmt.Sprintf("%sstatic %s %s;", indent(d), d.Type, d.name)
}

type FunctionKind int

const (
	FunctionPlain FunctionKind = iota
	FunctionOverride
	FunctionSerialization
	FunctionPerformanceOverload
)

// FunctionDeclaration declares a member or free function.
type FunctionDeclaration struct {
	DeclBase
	Kind   FunctionKind
	Return string
	Args   []string
	// Target is the group a serialization declaration converts into.
	Target string
	// UsingBase is the base class whose overload set a performance
	// overload brings into scope.
	UsingBase string
	// ArgNames are the argument names of a performance overload, in
	// grid axis order.
	ArgNames []string
	// Lookup is the sibling lookup struct a performance overload returns.
	Lookup *Struct
}

func NewFunctionDeclaration(parent Declaration, kind FunctionKind, ret, name string, args ...string) *FunctionDeclaration {
	f := &FunctionDeclaration{DeclBase: NewDeclBase(name), Kind: kind, Return: ret, Args: args}
	attach(parent, f)
	return f
}

// NewSerializationDeclaration declares from_json for the named group.
func NewSerializationDeclaration(parent Declaration, group string) *FunctionDeclaration {
	f := NewFunctionDeclaration(parent, FunctionSerialization, "void", "from_json",
		"const nlohmann::json& j", group+"& x")
	f.Target = group
	return f
}

func (f *FunctionDeclaration) Signature() string {
	return f.Return + " " + f.name + "(" + strings.Join(f.Args, ", ") + ")"
}

func (f *FunctionDeclaration) Render() string {
	ind := indent(f)
	decl := fmt.Sprintf("%s%s %s(%s)", ind, f.Return, f.name, strings.Join(f.Args, ", "))
	switch f.Kind {
	case FunctionOverride:
		return decl + " override;"
	case FunctionPerformanceOverload:
		return fmt.Sprintf("%susing %s::%s;\n%s;", ind, f.UsingBase, f.name, decl)
	default:
		return decl + ";"
	}
}

// CounterEnum is an unscoped enum giving each member a positional index
// and ending with index_count.
type CounterEnum struct {
	DeclBase
	Enumerants []string
}

// NewCounterEnum builds {m}_index for each member plus index_count.
func NewCounterEnum(parent Declaration, members []string) *CounterEnum {
	c := &CounterEnum{DeclBase: NewDeclBase("")}
	for _, m := range members {
		c.Enumerants = append(c.Enumerants, m+"_index")
	}
	c.Enumerants = append(c.Enumerants, "index_count")
	attach(parent, c)
	return c
}

func (c *CounterEnum) Signature() string { return "enum " + strings.Join(c.Enumerants, " ") }

func (c *CounterEnum) Render() string {
	ind := indent(c)
	var sb strings.Builder
	fmt.Fprintf(&sb, "%senum {\n", ind)
	for i, e := range c.Enumerants {
		sep := ","
		if i == len(c.Enumerants)-1 {
			sep = ""
		}
		fmt.Fprintf(&sb, "%s\t%s%s\n", ind, e, sep)
	}
	fmt.Fprintf(&sb, "%s};", ind)
	return sb.String()
}
