package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"schema205/internal/types"
)

func TestOutputFileAdapterWritesHeaderAndSource(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "generated")
	adapter := NewOutputFileAdapter(dir)

	paths, err := adapter.WriteUnit(types.RenderedUnit{
		Schema:     "RS0001",
		HeaderFile: "rs0001.h",
		Header:     "#ifndef RS0001_H_\n",
		SourceFile: "rs0001.cpp",
		Source:     "#include <rs0001.h>\n",
	})
	require.NoError(t, err)
	if diff := cmp.Diff([]string{filepath.Join(dir, "rs0001.h"), filepath.Join(dir, "rs0001.cpp")}, paths); diff != "" {
		t.Fatalf("unexpected paths (-want +got):\n%s", diff)
	}

	data, err := os.ReadFile(filepath.Join(dir, "rs0001.cpp"))
	require.NoError(t, err)
	if diff := cmp.Diff("#include <rs0001.h>\n", string(data)); diff != "" {
		t.Fatalf("unexpected source content (-want +got):\n%s", diff)
	}
}

func TestOutputFileAdapterErrors(t *testing.T) {
	tests := []struct {
		name     string
		dir      string
		unit     types.RenderedUnit
		wantCode errbuilder.ErrCode
	}{
		{
			name:     "empty directory",
			dir:      "",
			unit:     types.RenderedUnit{Schema: "A", HeaderFile: "a.h", SourceFile: "a.cpp"},
			wantCode: errbuilder.CodeInvalidArgument,
		},
		{
			name:     "missing file names",
			dir:      "out",
			unit:     types.RenderedUnit{Schema: "A"},
			wantCode: errbuilder.CodeInvalidArgument,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOutputFileAdapter(tt.dir).WriteUnit(tt.unit)
			require.Error(t, err)
			if diff := cmp.Diff(tt.wantCode, errbuilder.CodeOf(err)); diff != "" {
				t.Fatalf("unexpected error code (-want +got):\n%s", diff)
			}
		})
	}
}
