// Package shared provides naming helpers used across the schema205
// packages.
package shared

import (
	"strings"
	"unicode"
)

// SnakeStyle converts a CamelCase or acronym-heavy identifier into the
// lower snake_case form used for namespaces and header file names.
//
//	RS0001             -> rs0001
//	GridVariablesBase  -> grid_variables_base
//	RSInstanceBase     -> rs_instance_base
func SnakeStyle(value string) string {
	runes := []rune(strings.TrimSpace(value))
	var sb strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				sb.WriteRune('_')
			}
		}
		if r == '-' || r == ' ' {
			sb.WriteRune('_')
			continue
		}
		sb.WriteRune(unicode.ToLower(r))
	}
	return sb.String()
}

// PascalCase title-cases each underscore or hyphen separated word and joins
// them, e.g. "heat_source" -> "HeatSource".
func PascalCase(value string) string {
	parts := strings.FieldsFunc(value, func(r rune) bool {
		return r == '_' || r == '-'
	})
	var sb strings.Builder
	for _, part := range parts {
		runes := []rune(strings.ToLower(part))
		runes[0] = unicode.ToUpper(runes[0])
		sb.WriteString(string(runes))
	}
	return sb.String()
}

// Namespace is the C++ namespace generated for a schema, e.g. "rs0001_ns".
func Namespace(schemaName string) string {
	return SnakeStyle(schemaName) + "_ns"
}

// HeaderName is the header file generated for an identifier, e.g.
// "grid_variables_base.h".
func HeaderName(identifier string) string {
	return SnakeStyle(identifier) + ".h"
}

// Identifiers splits text into its whole-word identifier tokens (letters,
// digits and underscores), matching what a \b-delimited regex would see.
func Identifiers(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
	})
}
