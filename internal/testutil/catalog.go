package testutil

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/pipeconf/internal/catalog"
)

// SampleCatalogJSON is a small openSMILE-like catalog covering inheritance,
// struct fields, level and message references, and value constraints.
const SampleCatalogJSON = `{
  "version": "1.0",
  "components": [
    {
      "component": "cSmileComponent",
      "description": "root of all components",
      "fields": [
        {"field": "instanceName", "type": "string", "default": null, "visibility": "hidden"}
      ]
    },
    {
      "component": "cComponentManager",
      "baseComponent": "cSmileComponent",
      "fields": [
        {"field": "instance", "type": "cInstanceSpec"},
        {"field": "nThreads", "type": "numeric", "default": 1}
      ]
    },
    {
      "component": "cDataMemory",
      "baseComponent": "cSmileComponent",
      "fields": [
        {"field": "isRb", "type": "numeric", "default": 1}
      ]
    },
    {
      "component": "cDataSource",
      "baseComponent": "cSmileComponent",
      "fields": [
        {"field": "writer", "type": "cDataWriter"},
        {"field": "blocksize_sec", "type": "numeric", "default": 0.01}
      ],
      "writesToLevels": ["writer.dmLevel"]
    },
    {
      "component": "cDataSink",
      "baseComponent": "cSmileComponent",
      "fields": [
        {"field": "reader", "type": "cDataReader"}
      ],
      "readsFromLevels": ["reader.dmLevel"]
    },
    {
      "component": "cDataProcessor",
      "baseComponent": "cSmileComponent",
      "fields": [
        {"field": "reader", "type": "cDataReader"},
        {"field": "writer", "type": "cDataWriter"}
      ],
      "readsFromLevels": ["reader.dmLevel"],
      "writesToLevels": ["writer.dmLevel"]
    },
    {
      "component": "cVectorProcessor",
      "baseComponent": "cDataProcessor",
      "fields": [
        {"field": "processArrayFields", "type": "numeric", "default": 1}
      ]
    },
    {
      "component": "cWaveSource",
      "description": "reads a WAVE file",
      "baseComponent": "cDataSource",
      "fields": [
        {"field": "filename", "type": "string", "default": "input.wav", "required": true},
        {"field": "dmLevel", "type": "string", "default": "wave", "typeHint": "levelReference"},
        {"field": "monoMixdown", "type": "numeric", "default": 0, "recommendedValue": 1}
      ],
      "writesToLevels": ["dmLevel"]
    },
    {
      "component": "cCsvSink",
      "description": "writes CSV",
      "baseComponent": "cDataSink",
      "fields": [
        {"field": "filename", "type": "string", "required": true},
        {"field": "dmLevel", "type": "string", "typeHint": "levelReference"},
        {"field": "delimChar", "type": "char", "default": ";", "allowedValues": [";", ","]},
        {"field": "append", "type": "numeric", "default": 0, "allowedValues": [0, 1]}
      ],
      "readsFromLevels": ["dmLevel"]
    },
    {
      "component": "cFramer",
      "baseComponent": "cVectorProcessor",
      "fields": [
        {"field": "frameSize", "type": "numeric", "default": 0.025},
        {"field": "frameMode", "type": "string", "default": "fixed", "suggestedValues": ["fixed", "list"]}
      ]
    },
    {
      "component": "cTurnDetector",
      "baseComponent": "cDataSink",
      "fields": [
        {"field": "messageRecp", "type": "string", "typeHint": "componentInstanceReference"}
      ],
      "sendsMessagesToComponents": ["messageRecp"]
    }
  ],
  "objects": [
    {
      "object": "cDataReader",
      "fields": [
        {"field": "dmInstance", "type": "string", "default": "dataMemory"},
        {"field": "dmLevel", "type": "string", "typeHint": "levelReference"}
      ]
    },
    {
      "object": "cDataWriter",
      "fields": [
        {"field": "dmInstance", "type": "string", "default": "dataMemory"},
        {"field": "dmLevel", "type": "string", "typeHint": "levelReference"},
        {"field": "levelconf", "type": "cLevelConfig"}
      ]
    },
    {
      "object": "cLevelConfig",
      "fields": [
        {"field": "nT", "type": "numeric", "default": 100},
        {"field": "isRb", "type": "numeric", "default": 1}
      ]
    },
    {
      "object": "cInstanceSpec",
      "fields": [
        {"field": "type", "type": "string", "typeHint": "componentTypeReference"}
      ]
    }
  ]
}`

// SampleCatalog decodes SampleCatalogJSON.
func SampleCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	cat, err := catalog.ReadJSON(context.Background(), strings.NewReader(SampleCatalogJSON))
	require.NoError(t, err)
	require.NotNil(t, cat)
	return cat
}
