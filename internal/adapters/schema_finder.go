package adapters

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/bmatcuk/doublestar/v4"

	"schema205/internal/ports"
)

// DefaultSchemaPattern matches every schema file below a directory.
const DefaultSchemaPattern = "**/*.schema.{yaml,yml,json}"

// SchemaFinderAdapter discovers schema files with a doublestar glob.
type SchemaFinderAdapter struct{}

func NewSchemaFinderAdapter() SchemaFinderAdapter {
	return SchemaFinderAdapter{}
}

func (a SchemaFinderAdapter) FindSchemas(root string, pattern string) ([]string, error) {
	if root == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("schema directory is empty")
	}
	if pattern == "" {
		pattern = DefaultSchemaPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid schema pattern: " + pattern)
	}
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("schema directory not found: " + root).
			WithCause(err)
	}
	matches, err := doublestar.Glob(os.DirFS(root), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to scan schema directory").
			WithCause(err)
	}
	var paths []string
	for _, match := range matches {
		if shouldSkipSchemaPath(match) {
			continue
		}
		paths = append(paths, filepath.Join(root, filepath.FromSlash(match)))
	}
	sort.Strings(paths)
	return paths, nil
}

// shouldSkipSchemaPath drops matches inside build output or VCS
// directories. match is slash separated and relative to the root.
func shouldSkipSchemaPath(match string) bool {
	parts := strings.Split(match, "/")
	for _, dir := range parts[:len(parts)-1] {
		switch dir {
		case "build", "install", ".git", "node_modules":
			return true
		}
	}
	return false
}

var _ ports.SchemaFinderPort = SchemaFinderAdapter{}
