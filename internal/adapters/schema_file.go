package adapters

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"schema205/internal/ports"
	"schema205/internal/types"
)

// SchemaExtensions are tried, in order, when a referenced schema
// identifier is turned into a file path.
var SchemaExtensions = []string{".schema.yaml", ".schema.yml", ".schema.json"}

// SchemaFileAdapter implements SchemaLoaderPort for YAML and JSON schema
// files. Documents are decoded through yaml.Node so that object, element
// and enumerator order survive decoding.
type SchemaFileAdapter struct{}

func NewSchemaFileAdapter() SchemaFileAdapter {
	return SchemaFileAdapter{}
}

type objectDoc struct {
	ObjectType    types.ObjectType `yaml:"Object Type"`
	Description   string           `yaml:"Description"`
	Title         string           `yaml:"Title"`
	Version       string           `yaml:"Version"`
	References    yaml.Node        `yaml:"References"`
	RootDataGroup string           `yaml:"Root Data Group"`
	DataElements  yaml.Node        `yaml:"Data Elements"`
	Enumerators   yaml.Node        `yaml:"Enumerators"`
}

type elementDoc struct {
	DataType    string    `yaml:"Data Type"`
	Required    yaml.Node `yaml:"Required"`
	Constraints yaml.Node `yaml:"Constraints"`
	Units       string    `yaml:"Units"`
	Description string    `yaml:"Description"`
	Notes       yaml.Node `yaml:"Notes"`
}

type enumeratorDoc struct {
	Description string    `yaml:"Description"`
	DisplayText string    `yaml:"Display Text"`
	Notes       yaml.Node `yaml:"Notes"`
}

func (a SchemaFileAdapter) LoadSchema(path string) (types.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Schema{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read schema file: " + path).
			WithCause(err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	schema := types.Schema{Name: SchemaName(path), Path: abs}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return types.Schema{}, parseError(path, err)
	}
	if len(doc.Content) == 0 {
		return schema, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return types.Schema{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("schema file must be a mapping of named objects: " + path)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		obj, err := decodeObject(name, root.Content[i+1])
		if err != nil {
			return types.Schema{}, parseError(path, err)
		}
		schema.Objects = append(schema.Objects, obj)
	}

	log.Debug().
		Str("path", abs).
		Str("schema", schema.Name).
		Int("objects", len(schema.Objects)).
		Msg("schema file loaded")
	return schema, nil
}

func (a SchemaFileAdapter) ResolveReference(fromPath string, identifier string) (string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("empty schema reference in " + fromPath)
	}
	dir := filepath.Dir(fromPath)
	for _, ext := range SchemaExtensions {
		candidate := filepath.Join(dir, identifier+ext)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg("referenced schema " + identifier + " not found next to " + fromPath)
}

// SchemaName strips the directory and schema extension from a path, e.g.
// "schema/RS0001.schema.yaml" -> "RS0001".
func SchemaName(path string) string {
	base := filepath.Base(path)
	for _, ext := range SchemaExtensions {
		if strings.HasSuffix(base, ext) {
			return strings.TrimSuffix(base, ext)
		}
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func decodeObject(name string, node *yaml.Node) (types.Object, error) {
	var doc objectDoc
	if err := node.Decode(&doc); err != nil {
		return types.Object{}, err
	}
	obj := types.Object{
		Name:        name,
		Type:        doc.ObjectType,
		Description: doc.Description,
	}
	if doc.ObjectType == types.ObjectTypeMeta {
		refs, err := stringList(&doc.References)
		if err != nil {
			return types.Object{}, err
		}
		obj.Meta = types.SchemaMeta{
			Title:         doc.Title,
			Version:       doc.Version,
			Description:   doc.Description,
			References:    refs,
			RootDataGroup: doc.RootDataGroup,
		}
	}

	elements := &doc.DataElements
	for i := 0; elements.Kind == yaml.MappingNode && i+1 < len(elements.Content); i += 2 {
		var ed elementDoc
		if err := elements.Content[i+1].Decode(&ed); err != nil {
			return types.Object{}, err
		}
		constraints, err := stringList(&ed.Constraints)
		if err != nil {
			return types.Object{}, err
		}
		notes, err := stringList(&ed.Notes)
		if err != nil {
			return types.Object{}, err
		}
		obj.DataElements = append(obj.DataElements, types.DataElement{
			Name:        elements.Content[i].Value,
			DataType:    ed.DataType,
			Required:    truthy(&ed.Required),
			Constraints: constraints,
			Units:       ed.Units,
			Description: ed.Description,
			Notes:       notes,
		})
	}

	enumerators := &doc.Enumerators
	for i := 0; enumerators.Kind == yaml.MappingNode && i+1 < len(enumerators.Content); i += 2 {
		var en enumeratorDoc
		if value := enumerators.Content[i+1]; value.Kind == yaml.MappingNode {
			if err := value.Decode(&en); err != nil {
				return types.Object{}, err
			}
		}
		notes, err := stringList(&en.Notes)
		if err != nil {
			return types.Object{}, err
		}
		obj.Enumerators = append(obj.Enumerators, types.Enumerator{
			Value:       enumerators.Content[i].Value,
			Description: en.Description,
			DisplayText: en.DisplayText,
			Notes:       strings.Join(notes, " "),
		})
	}
	return obj, nil
}

// stringList accepts either a scalar or a sequence of scalars.
func stringList(node *yaml.Node) ([]string, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.ShortTag() == "!!null" || node.Value == "" {
			return nil, nil
		}
		return []string{node.Value}, nil
	case yaml.SequenceNode:
		var out []string
		if err := node.Decode(&out); err != nil {
			return nil, err
		}
		return out, nil
	default:
		return nil, nil
	}
}

// truthy treats a boolean scalar by value and any other non-empty scalar,
// such as a conditional requirement expression, as required.
func truthy(node *yaml.Node) bool {
	if node.Kind != yaml.ScalarNode || node.ShortTag() == "!!null" {
		return false
	}
	if node.ShortTag() == "!!bool" {
		var b bool
		if err := node.Decode(&b); err == nil {
			return b
		}
	}
	return strings.TrimSpace(node.Value) != ""
}

func parseError(path string, err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg("failed to parse schema file: " + path).
		WithCause(err)
}

var _ ports.SchemaLoaderPort = SchemaFileAdapter{}
