package core

import (
	"context"
	"strings"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schema205/internal/nodes"
)

type recordingExtensions struct {
	calls int
	err   error
}

func (r *recordingExtensions) Apply(_ context.Context, declarations nodes.Declaration, implementations nodes.Implementation) error {
	r.calls++
	if declarations == nil || implementations == nil {
		return errbuilder.New().WithCode(errbuilder.CodeInternal).WithMsg("missing tree")
	}
	return r.err
}

func TestTranslateRendersUnit(t *testing.T) {
	ext := &recordingExtensions{}
	translator := NewTranslator(testLoader(), ext, TranslateOptions{Container: "tk205", SchemaVersion: ">=1.0"})

	translation, err := translator.Translate(context.Background(), fooSchema())
	require.NoError(t, err)
	assert.Equal(t, 1, ext.calls)

	unit := translation.Render()
	assert.Equal(t, "RS0001", unit.Schema)
	assert.Equal(t, "rs0001.h", unit.HeaderFile)
	assert.Equal(t, "rs0001.cpp", unit.SourceFile)

	assert.True(t, strings.HasPrefix(unit.Header, "#ifndef RS0001_H_\n#define RS0001_H_\n#include <common.h>\n"))
	assert.True(t, strings.HasSuffix(unit.Header, "}\n#endif\n"))
	assert.Contains(t, unit.Header, generatedNote+"\nnamespace tk205 {\n\tnamespace rs0001_ns {\n")
	assert.Contains(t, unit.Header, "\t\tclass Foo {\n\t\tpublic:\n\t\t\tdouble a;\n")

	assert.True(t, strings.HasPrefix(unit.Source, "#include <rs0001.h>\n#include <b_factory.h>\n\nnamespace tk205 {\n"))
	assert.Contains(t, unit.Source, "\t\tconst std::string_view Foo::a_units = \"W\";\n")
}

func TestTranslateStopsOnVersionMismatch(t *testing.T) {
	ext := &recordingExtensions{}
	translator := NewTranslator(testLoader(), ext, TranslateOptions{SchemaVersion: ">=2"})

	_, err := translator.Translate(context.Background(), fooSchema())
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
	assert.Zero(t, ext.calls)
}

func TestTranslatePropagatesExtensionErrors(t *testing.T) {
	ext := &recordingExtensions{err: errbuilder.New().WithCode(errbuilder.CodeInternal).WithMsg("plugin broke the tree")}
	translator := NewTranslator(testLoader(), ext, TranslateOptions{})

	_, err := translator.Translate(context.Background(), performanceSchema())
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInternal, errbuilder.CodeOf(err))
}

func TestTranslateWithoutExtensions(t *testing.T) {
	translation, err := NewTranslator(testLoader(), nil, TranslateOptions{}).Translate(context.Background(), performanceSchema())
	require.NoError(t, err)
	unit := translation.Render()
	assert.True(t, strings.HasPrefix(unit.Header, "#ifndef RS0002_H_\n"))
	assert.Contains(t, unit.Header, "namespace rs0002_ns {\n\ttypedef std::string ModelName;\n")
}

func TestHeaderGuard(t *testing.T) {
	assert.Equal(t, "RS0001_H_", HeaderGuard("RS0001"))
	assert.Equal(t, "ASHRAE205_H_", HeaderGuard("ASHRAE205"))
}
