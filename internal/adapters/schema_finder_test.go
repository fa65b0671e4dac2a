package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaFinderAdapterFindsSchemas(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{
		"RS0001.schema.yaml",
		"nested/RS0002.schema.json",
		"nested/deeper/ASHRAE205.schema.yml",
		"build/RS9999.schema.yaml",
		"notes.yaml",
	} {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0644))
	}

	paths, err := NewSchemaFinderAdapter().FindSchemas(root, "")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "RS0001.schema.yaml"),
		filepath.Join(root, "nested", "RS0002.schema.json"),
		filepath.Join(root, "nested", "deeper", "ASHRAE205.schema.yml"),
	}, paths)

	paths, err = NewSchemaFinderAdapter().FindSchemas(root, "*.schema.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "RS0001.schema.yaml")}, paths)
}

func TestSchemaFinderAdapterErrors(t *testing.T) {
	finder := NewSchemaFinderAdapter()

	_, err := finder.FindSchemas("", "")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))

	_, err = finder.FindSchemas(t.TempDir(), "[unterminated")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))

	_, err = finder.FindSchemas(filepath.Join(t.TempDir(), "absent"), "")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}
