package nodes

import (
	"fmt"
	"strconv"
	"strings"

	"schema205/internal/types"
)

// ImplNamespace mirrors a declaration Namespace.
type ImplNamespace struct {
	ImplBase
}

func NewImplNamespace(parent Implementation, decl *Namespace) *ImplNamespace {
	n := &ImplNamespace{ImplBase: NewImplBase(decl)}
	attachImpl(parent, n)
	return n
}

func (n *ImplNamespace) Render() string {
	ind := implIndent(n)
	var sb strings.Builder
	fmt.Fprintf(&sb, "%snamespace %s {\n", ind, n.decl.Name())
	for _, c := range n.children {
		sb.WriteString(c.Render())
		sb.WriteString("\n")
	}
	sb.WriteString(ind + "}")
	return sb.String()
}

// FunctionDefinition is the body of a declared function, either free or a
// member of Owner.
type FunctionDefinition struct {
	ImplBase
	owner *Struct
}

func NewFunctionDefinition(parent Implementation, fn *FunctionDeclaration, owner *Struct) *FunctionDefinition {
	d := &FunctionDefinition{ImplBase: NewImplBase(fn), owner: owner}
	attachImpl(parent, d)
	return d
}

func (d *FunctionDefinition) Function() *FunctionDeclaration {
	return d.decl.(*FunctionDeclaration)
}

// Owner is the struct a member definition belongs to; nil for free
// functions.
func (d *FunctionDefinition) Owner() *Struct { return d.owner }

func (d *FunctionDefinition) Member() bool { return d.owner != nil }

func (d *FunctionDefinition) Render() string {
	fn := d.Function()
	ind := implIndent(d)
	args := make([]string, 0, len(fn.Args))
	for _, a := range fn.Args {
		// default arguments belong to the declaration only
		arg, _, _ := strings.Cut(a, " = ")
		args = append(args, arg)
	}
	name := fn.Name()
	if d.owner != nil {
		name = d.owner.Name() + "::" + name
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s%s %s(%s) {\n", ind, fn.Return, name, strings.Join(args, ", "))
	for _, c := range d.children {
		sb.WriteString(c.Render())
		sb.WriteString("\n")
	}
	sb.WriteString(ind + "}")
	return sb.String()
}

// Accessor returns the prefix used to reach members inside a function
// body: "x." for free functions, nothing for members.
func Accessor(def *FunctionDefinition) string {
	if def.Member() {
		return ""
	}
	return "x."
}

// ElementFetch reads one member from the JSON input.
type ElementFetch struct {
	ImplBase
	accessor string
}

func NewElementFetch(parent *FunctionDefinition, elem *DataElement) *ElementFetch {
	f := &ElementFetch{ImplBase: NewImplBase(elem), accessor: Accessor(parent)}
	attachImpl(parent, f)
	return f
}

func (f *ElementFetch) Element() *DataElement { return f.decl.(*DataElement) }

func (f *ElementFetch) Render() string {
	elem := f.Element()
	n := f.accessor + elem.Name()
	return renderLines(f, fmt.Sprintf("json_get<%s>(j, %s, %s, %s_is_set, %t);",
		elem.Type(), strconv.Quote(elem.Name()), n, n, elem.Required))
}

// OwnedElementCreation constructs a selector member through its factory,
// one branch per selector case.
type OwnedElementCreation struct {
	ImplBase
	accessor string
}

func NewOwnedElementCreation(parent *FunctionDefinition, elem *DataElement) *OwnedElementCreation {
	c := &OwnedElementCreation{ImplBase: NewImplBase(elem), accessor: Accessor(parent)}
	attachImpl(parent, c)
	return c
}

func (c *OwnedElementCreation) Element() *DataElement { return c.decl.(*DataElement) }

func (c *OwnedElementCreation) Branches() []types.SelectorCase {
	return append([]types.SelectorCase(nil), c.Element().Descriptor.Cases...)
}

func (c *OwnedElementCreation) Render() string {
	elem := c.Element()
	member := c.accessor + elem.Name()
	key := c.accessor + elem.Descriptor.Key
	var lines []string
	for i, bc := range elem.Descriptor.Cases {
		cond := "if"
		if i > 0 {
			cond = "else if"
		}
		lines = append(lines,
			fmt.Sprintf("%s (%s == %s) {", cond, key, bc.Enumerator),
			fmt.Sprintf("\t%s = %s_factory::create(%s);", member, elem.Name(), strconv.Quote(bc.Type)),
			fmt.Sprintf("\tif (%s) {", member),
			fmt.Sprintf("\t\t%s->initialize(j.at(%s));", member, strconv.Quote(elem.Name())),
			"\t}",
			"}",
		)
	}
	return renderLines(c, lines...)
}

// PopulateDelegation hands the enclosing performance map to a grid or
// lookup member so it can register itself.
type PopulateDelegation struct {
	ImplBase
	accessor string
}

func NewPopulateDelegation(parent *FunctionDefinition, elem *DataElement) *PopulateDelegation {
	p := &PopulateDelegation{ImplBase: NewImplBase(elem), accessor: Accessor(parent)}
	attachImpl(parent, p)
	return p
}

func (p *PopulateDelegation) Element() *DataElement { return p.decl.(*DataElement) }

func (p *PopulateDelegation) Render() string {
	if p.accessor == "" {
		return renderLines(p, p.Element().Name()+".populate_performance_map(this);")
	}
	return renderLines(p, fmt.Sprintf("%s%s.populate_performance_map(&x);", p.accessor, p.Element().Name()))
}

// GridAxisAdd registers one grid variable as an interpolation axis.
type GridAxisAdd struct {
	ImplBase
}

func NewGridAxisAdd(parent *FunctionDefinition, elem *DataElement) *GridAxisAdd {
	a := &GridAxisAdd{ImplBase: NewImplBase(elem)}
	attachImpl(parent, a)
	return a
}

func (a *GridAxisAdd) Element() *DataElement { return a.decl.(*DataElement) }

func (a *GridAxisAdd) Render() string {
	return renderLines(a, fmt.Sprintf("add_grid_axis(performance_map, %s);", a.Element().Name()))
}

// GridFinalize closes the axis list; it follows every GridAxisAdd.
type GridFinalize struct {
	ImplBase
}

func NewGridFinalize(parent *FunctionDefinition) *GridFinalize {
	f := &GridFinalize{ImplBase: NewImplBase(parent.Function())}
	attachImpl(parent, f)
	return f
}

func (f *GridFinalize) Render() string {
	return renderLines(f, "performance_map->finalize_grid();")
}

// DataTableAdd registers one lookup variable as a data table.
type DataTableAdd struct {
	ImplBase
}

func NewDataTableAdd(parent *FunctionDefinition, elem *DataElement) *DataTableAdd {
	a := &DataTableAdd{ImplBase: NewImplBase(elem)}
	attachImpl(parent, a)
	return a
}

func (a *DataTableAdd) Element() *DataElement { return a.decl.(*DataElement) }

func (a *DataTableAdd) Render() string {
	return renderLines(a, fmt.Sprintf("add_data_table(performance_map, %s);", a.Element().Name()))
}

// PerformanceOverloadBody packs the overload's arguments into a target
// vector, evaluates the map and rebuilds the lookup projection from the
// raw result slots.
type PerformanceOverloadBody struct {
	ImplBase
	Result string
}

func NewPerformanceOverloadBody(parent *FunctionDefinition, result string) *PerformanceOverloadBody {
	b := &PerformanceOverloadBody{ImplBase: NewImplBase(parent.Function()), Result: result}
	attachImpl(parent, b)
	return b
}

// Slots lists the initializer expression for each lookup member.
func (b *PerformanceOverloadBody) Slots() []string {
	fn := b.decl.(*FunctionDeclaration)
	var slots []string
	if fn.Lookup == nil {
		return slots
	}
	for i, de := range DataElements(fn.Lookup) {
		slot := fmt.Sprintf("v[%d]", i)
		if t := de.Descriptor.InnerType(); t != "double" {
			slot = fmt.Sprintf("static_cast<%s>(%s)", t, slot)
		}
		slots = append(slots, slot)
	}
	return slots
}

func (b *PerformanceOverloadBody) Render() string {
	fn := b.decl.(*FunctionDeclaration)
	projection := ""
	if fn.Lookup != nil {
		projection = fn.Lookup.ProjectionName()
	}
	return renderLines(b,
		fmt.Sprintf("std::vector<double> target {%s};", strings.Join(fn.ArgNames, ", ")),
		fmt.Sprintf("auto v = %s::calculate_performance(target, performance_interpolation_method);", fn.UsingBase),
		fmt.Sprintf("%s %s {%s};", projection, b.Result, strings.Join(b.Slots(), ", ")),
	)
}

// ReturnName returns a local variable by name.
type ReturnName struct {
	ImplBase
	Value string
}

func NewReturnName(parent *FunctionDefinition, value string) *ReturnName {
	r := &ReturnName{ImplBase: NewImplBase(parent.Function()), Value: value}
	attachImpl(parent, r)
	return r
}

func (r *ReturnName) Render() string {
	return renderLines(r, "return "+r.Value+";")
}

// InitializeDelegation forwards a free from_json to the member initialize.
type InitializeDelegation struct {
	ImplBase
}

func NewInitializeDelegation(parent *FunctionDefinition) *InitializeDelegation {
	d := &InitializeDelegation{ImplBase: NewImplBase(parent.Function())}
	attachImpl(parent, d)
	return d
}

func (d *InitializeDelegation) Render() string {
	return renderLines(d, "x.initialize(j);")
}

// StaticMemberDefinition defines a StaticMetaInfo or StoredDependency
// member out of line.
type StaticMemberDefinition struct {
	ImplBase
	owner *Struct
}

func NewStaticMemberDefinition(parent Implementation, decl Declaration, owner *Struct) *StaticMemberDefinition {
	d := &StaticMemberDefinition{ImplBase: NewImplBase(decl), owner: owner}
	attachImpl(parent, d)
	return d
}

func (d *StaticMemberDefinition) Owner() *Struct { return d.owner }

func (d *StaticMemberDefinition) Render() string {
	qualified := d.owner.Name() + "::" + d.decl.Name()
	switch decl := d.decl.(type) {
	case *StaticMetaInfo:
		return renderLines(d, fmt.Sprintf("const %s %s = %s;", decl.Type(), qualified, strconv.Quote(decl.Value)))
	case *StoredDependency:
		return renderLines(d, fmt.Sprintf("%s %s {};", decl.Type, qualified))
	default:
		return renderLines(d, "// "+qualified)
	}
}
