package types

// ObjectType is the "Object Type" tag carried by every top-level schema
// object.
type ObjectType string

const (
	ObjectTypeStringType      ObjectType = "String Type"
	ObjectTypeEnumeration     ObjectType = "Enumeration"
	ObjectTypeDataGroup       ObjectType = "Data Group"
	ObjectTypeGridVariables   ObjectType = "Grid Variables"
	ObjectTypeLookupVariables ObjectType = "Lookup Variables"
	ObjectTypePerformanceMap  ObjectType = "Performance Map"
	ObjectTypeRatingDataGroup ObjectType = "Rating Data Group"
	ObjectTypeMapVariables    ObjectType = "Map Variables"
	ObjectTypeDataType        ObjectType = "Data Type"
	ObjectTypeMeta            ObjectType = "Meta"
)

// IsGroup reports whether objects of this type carry Data Elements and
// compile to a struct-like declaration.
func (t ObjectType) IsGroup() bool {
	switch t {
	case ObjectTypeDataGroup,
		ObjectTypeGridVariables,
		ObjectTypeLookupVariables,
		ObjectTypePerformanceMap,
		ObjectTypeRatingDataGroup:
		return true
	default:
		return false
	}
}

// IsExported reports whether objects of this type can be referenced from
// another schema file.
func (t ObjectType) IsExported() bool {
	switch t {
	case ObjectTypeEnumeration,
		ObjectTypeDataGroup,
		ObjectTypeStringType,
		ObjectTypeMapVariables,
		ObjectTypeRatingDataGroup,
		ObjectTypePerformanceMap,
		ObjectTypeGridVariables,
		ObjectTypeLookupVariables:
		return true
	default:
		return false
	}
}

// DataElement is one member of a group-like object.
type DataElement struct {
	Name        string
	DataType    string
	Required    bool
	Constraints []string
	Units       string
	Description string
	Notes       []string
}

// Enumerator is one value of an Enumeration object.
type Enumerator struct {
	Value       string
	Description string
	DisplayText string
	Notes       string
}

// SchemaMeta holds the fields of a Meta object (conventionally the
// top-level "Schema" entry).
type SchemaMeta struct {
	Title         string
	Version       string
	Description   string
	References    []string
	RootDataGroup string
}

// Object is a single top-level named entry of a schema file.
type Object struct {
	Name         string
	Type         ObjectType
	Description  string
	DataElements []DataElement
	Enumerators  []Enumerator
	Meta         SchemaMeta
}

// Schema is a decoded schema file. Objects keep their file order, which
// is also the order in which declarations are emitted before sorting.
type Schema struct {
	// Name is the file stem without the ".schema" suffix, e.g. "RS0001".
	Name string
	// Path is the absolute path the schema was loaded from.
	Path    string
	Objects []Object
}

// Meta returns the schema's Meta object, if any.
func (s Schema) Meta() (Object, bool) {
	for _, obj := range s.Objects {
		if obj.Type == ObjectTypeMeta {
			return obj, true
		}
	}
	return Object{}, false
}

// ObjectsOfType returns the objects whose type is one of kinds, in file
// order.
func (s Schema) ObjectsOfType(kinds ...ObjectType) []Object {
	var out []Object
	for _, obj := range s.Objects {
		for _, kind := range kinds {
			if obj.Type == kind {
				out = append(out, obj)
				break
			}
		}
	}
	return out
}

// Groups returns every group-like object in file order.
func (s Schema) Groups() []Object {
	var out []Object
	for _, obj := range s.Objects {
		if obj.Type.IsGroup() {
			out = append(out, obj)
		}
	}
	return out
}

// Lookup finds an object by name.
func (s Schema) Lookup(name string) (Object, bool) {
	for _, obj := range s.Objects {
		if obj.Name == name {
			return obj, true
		}
	}
	return Object{}, false
}

// References returns the schema identifiers listed by the Meta object.
func (s Schema) References() []string {
	meta, ok := s.Meta()
	if !ok {
		return nil
	}
	return meta.Meta.References
}
