package core

import (
	"strings"

	"schema205/internal/shared"
	"schema205/internal/types"
)

const generatedNote = "/// @note  This file has been auto-generated. Local changes will not be saved!"

// HeaderGuard is the include guard macro of a schema's header, e.g.
// "RS0001_H_".
func HeaderGuard(schema string) string {
	return strings.ToUpper(shared.SnakeStyle(schema)) + "_H_"
}

// Render turns the translation into header and source text.
func (t Translation) Render() types.RenderedUnit {
	base := shared.SnakeStyle(t.Schema.Name)
	return types.RenderedUnit{
		Schema:     t.Schema.Name,
		HeaderFile: base + ".h",
		Header:     t.renderHeader(),
		SourceFile: base + ".cpp",
		Source:     t.renderSource(),
	}
}

func (t Translation) renderHeader() string {
	guard := HeaderGuard(t.Schema.Name)
	var sb strings.Builder
	sb.WriteString("#ifndef " + guard + "\n")
	sb.WriteString("#define " + guard + "\n")
	for _, line := range t.Declarations.Header.Lines() {
		sb.WriteString(line + "\n")
	}
	sb.WriteString(generatedNote + "\n")
	sb.WriteString(t.Declarations.Root().Render() + "\n")
	sb.WriteString("#endif\n")
	return sb.String()
}

func (t Translation) renderSource() string {
	var sb strings.Builder
	for _, line := range t.Implementations.Source.Lines() {
		sb.WriteString(line + "\n")
	}
	sb.WriteString("\n")
	sb.WriteString(t.Implementations.Root().Render() + "\n")
	return sb.String()
}
