package catalog

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/pipeconf/internal/value"
)

const sampleJSON = `{
  "version": "1.0",
  "components": [
    {
      "component": "cCsvSink",
      "description": "writes CSV",
      "baseComponent": "cDataSink",
      "fields": [
        {"field": "filename", "type": "string", "default": "smileoutput.csv", "required": true},
        {"field": "delimChar", "type": "char", "default": ";", "allowedValues": [";", ","]},
        {"field": "append", "type": "numeric", "default": 0, "recommendedValue": 1},
        {"field": "instanceName", "type": "string", "default": null, "visibility": "hidden"}
      ],
      "readsFromLevels": ["reader.dmLevel"]
    },
    {
      "component": "cDataSink",
      "fields": [{"field": "reader", "type": "cDataReader"}]
    }
  ],
  "objects": [
    {"object": "cDataReader", "fields": [{"field": "dmLevel", "type": "string", "typeHint": "levelReference"}]}
  ]
}`

func TestReadJSON(t *testing.T) {
	t.Parallel()

	// --- Act ---
	cat, err := ReadJSON(context.Background(), strings.NewReader(sampleJSON))

	// --- Assert ---
	require.NoError(t, err)
	require.NotNil(t, cat)
	assert.Equal(t, 3, cat.Len())

	sink, ok := cat.Type("cCsvSink")
	require.True(t, ok)
	assert.False(t, sink.IsStruct)
	assert.Equal(t, "cDataSink", sink.BaseType)
	assert.Equal(t, []string{"reader.dmLevel"}, sink.ReadsFromLevelFields)

	reader, ok := cat.Type("cDataReader")
	require.True(t, ok)
	assert.True(t, reader.IsStruct)
	assert.Empty(t, reader.BaseType)

	filename, _ := sink.Field("filename")
	require.NotNil(t, filename.Default)
	assert.Equal(t, "smileoutput.csv", value.Text(*filename.Default))
	assert.True(t, filename.Required)
	assert.Equal(t, VisibilityPrimary, filename.Visibility)

	instanceName, _ := sink.Field("instanceName")
	require.True(t, instanceName.HasDefault(), "explicit null is still a default")
	assert.True(t, instanceName.Default.IsNull())
	assert.Equal(t, VisibilityHidden, instanceName.Visibility)

	reader2, _ := sink.Field("reader")
	assert.False(t, reader2.HasDefault())

	delim, _ := sink.Field("delimChar")
	assert.Len(t, delim.AllowedValues, 2)

	appendField, _ := sink.Field("append")
	require.NotNil(t, appendField.RecommendedValue)
	assert.Equal(t, "1", value.Text(*appendField.RecommendedValue))
}

func TestReadJSON_UnknownVersionIsNoop(t *testing.T) {
	t.Parallel()

	cat, err := ReadJSON(context.Background(), strings.NewReader(`{"version":"2.0","components":[{"component":"cX","fields":[]}]}`))

	require.NoError(t, err)
	assert.Nil(t, cat)
}

func TestReadJSON_Malformed(t *testing.T) {
	t.Parallel()

	_, err := ReadJSON(context.Background(), strings.NewReader(`{"version":`))

	assert.Error(t, err)
}

func TestReadYAML(t *testing.T) {
	t.Parallel()

	src := `
version: "1.0"
components:
  - component: cWaveSource
    baseComponent: cDataSource
    fields:
      - field: filename
        type: string
        default: input.wav
      - field: monoMixdown
        type: numeric
        default: ~
    writesToLevels: [writer.dmLevel]
`
	cat, err := ReadYAML(context.Background(), []byte(src))

	require.NoError(t, err)
	require.NotNil(t, cat)
	src1, ok := cat.Type("cWaveSource")
	require.True(t, ok)
	assert.Equal(t, []string{"writer.dmLevel"}, src1.WritesToLevelFields)
	mono, _ := src1.Field("monoMixdown")
	require.True(t, mono.HasDefault())
	assert.True(t, mono.Default.IsNull())
}

func TestLoadFile_PicksDecoderByExtension(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cat/symbols.json", []byte(sampleJSON), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/cat/symbols.yml", []byte("version: \"1.0\"\ncomponents:\n  - component: cA\n    fields: []\n"), 0o644))

	fromJSON, err := LoadFile(context.Background(), fs, "/cat/symbols.json")
	require.NoError(t, err)
	assert.Equal(t, 3, fromJSON.Len())

	fromYAML, err := LoadFile(context.Background(), fs, "/cat/symbols.yml")
	require.NoError(t, err)
	assert.Equal(t, 1, fromYAML.Len())

	_, err = LoadFile(context.Background(), fs, "/cat/missing.json")
	assert.Error(t, err)
}

func TestWriteJSON_RoundTrip(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	original, err := ReadJSON(context.Background(), strings.NewReader(sampleJSON))
	require.NoError(t, err)

	// --- Act ---
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, original))
	again, err := ReadJSON(context.Background(), &buf)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, original.Len(), again.Len())
	for _, typ := range original.Types() {
		other, ok := again.Type(typ.Name)
		require.True(t, ok, typ.Name)
		assert.Equal(t, typ.BaseType, other.BaseType)
		assert.Equal(t, typ.IsStruct, other.IsStruct)
		assert.Equal(t, len(typ.Fields), len(other.Fields))
		for name, f := range typ.Fields {
			g := other.Fields[name]
			require.NotNil(t, g, name)
			assert.Equal(t, f.HasDefault(), g.HasDefault(), name)
			if f.HasDefault() {
				assert.True(t, value.Equal(*f.Default, *g.Default), name)
			}
		}
	}
}
