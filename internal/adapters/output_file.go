package adapters

import (
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"schema205/internal/ports"
	"schema205/internal/types"
)

type OutputFileAdapter struct {
	Dir string
}

func NewOutputFileAdapter(dir string) OutputFileAdapter {
	return OutputFileAdapter{Dir: dir}
}

// WriteUnit writes the header and source of one schema and returns the
// written paths.
func (a OutputFileAdapter) WriteUnit(unit types.RenderedUnit) ([]string, error) {
	if unit.HeaderFile == "" || unit.SourceFile == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("rendered unit for " + unit.Schema + " has no file names")
	}
	var written []string
	for _, file := range []struct {
		name    string
		content string
	}{
		{name: unit.HeaderFile, content: unit.Header},
		{name: unit.SourceFile, content: unit.Source},
	} {
		path, err := a.ensurePath(file.name)
		if err != nil {
			return written, err
		}
		if err := os.WriteFile(path, []byte(file.content), 0644); err != nil {
			return written, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to write " + path).
				WithCause(err)
		}
		written = append(written, path)
	}
	log.Debug().Str("schema", unit.Schema).Strs("files", written).Msg("translation written")
	return written, nil
}

func (a OutputFileAdapter) ensurePath(filename string) (string, error) {
	if a.Dir == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is empty")
	}
	if err := os.MkdirAll(a.Dir, 0755); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}
	return filepath.Join(a.Dir, filename), nil
}

var _ ports.OutputPort = OutputFileAdapter{}
