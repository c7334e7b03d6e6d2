package workspace

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/pipeconf/internal/graph"
)

const fullWorkspace = `
catalog {
  path       = "symbols.json"
  tool       = "/opt/opensmile/bin/SMILExtract"
  base_types = { cWaveSource = "cDataSource" }
}

graph {
  skip_types   = ["cComponentManager"]
  roles        = ["cDataSource", "cDataSink"]
  default_role = "other"
  collapse     = true
  rankdir      = "tb"
}

layout {
  url       = "http://localhost:3000"
  namespace = "/layout"
  timeout   = "2s"
}

check {
  extensions = [".conf"]
  workers    = 8
}
`

func TestParse_FullFile(t *testing.T) {
	t.Parallel()

	// --- Act ---
	s, err := Parse([]byte(fullWorkspace), "pipeconf.hcl")

	// --- Assert ---
	require.NoError(t, err)
	want := &Settings{
		Source: "pipeconf.hcl",
		Catalog: CatalogSettings{
			Path:      "symbols.json",
			Tool:      "/opt/opensmile/bin/SMILExtract",
			BaseTypes: map[string]string{"cWaveSource": "cDataSource"},
		},
		Graph: GraphSettings{
			Options: graph.Options{
				Collapse:    true,
				SkipTypes:   []string{"cComponentManager"},
				Roles:       []string{"cDataSource", "cDataSink"},
				DefaultRole: "other",
			},
			RankDir: "TB",
		},
		Layout: LayoutSettings{
			URL:       "http://localhost:3000",
			Namespace: "/layout",
			Timeout:   2 * time.Second,
		},
		Check: CheckSettings{
			Extensions: []string{".conf"},
			Workers:    8,
		},
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_PartialBlocksKeepDefaults(t *testing.T) {
	t.Parallel()

	s, err := Parse([]byte("graph {\n  collapse = true\n}\n"), "pipeconf.hcl")

	require.NoError(t, err)
	def := Default()
	assert.True(t, s.Graph.Options.Collapse)
	assert.Equal(t, def.Graph.Options.SkipTypes, s.Graph.Options.SkipTypes)
	assert.Equal(t, def.Graph.Options.Roles, s.Graph.Options.Roles)
	assert.Equal(t, "LR", s.Graph.RankDir)
	assert.Equal(t, def.Check, s.Check)
	assert.Equal(t, def.Layout, s.Layout)
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		src     string
		wantErr string
	}{
		{name: "syntax", src: "graph {", wantErr: "failed to parse"},
		{name: "unknown block", src: "server {}\n", wantErr: "failed to decode"},
		{name: "unknown attribute", src: "graph {\n  colour = 1\n}\n", wantErr: "failed to decode"},
		{name: "bad timeout", src: "layout {\n  timeout = \"soon\"\n}\n", wantErr: "layout.timeout"},
		{name: "negative timeout", src: "layout {\n  timeout = \"-1s\"\n}\n", wantErr: "must be positive"},
		{name: "zero workers", src: "check {\n  workers = 0\n}\n", wantErr: "check.workers"},
		{name: "extension without dot", src: "check {\n  extensions = [\"conf\"]\n}\n", wantErr: "must start with a dot"},
		{name: "bad rankdir", src: "graph {\n  rankdir = \"up\"\n}\n", wantErr: "graph.rankdir"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tc.src), "pipeconf.hcl")
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestLoad_ResolvesCatalogPath(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/proj/pipeconf.hcl", []byte("catalog {\n  path = \"cat/symbols.json\"\n}\n"), 0o644))

	// --- Act ---
	s, err := Load(context.Background(), fs, "/proj/pipeconf.hcl")

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "/proj/cat/symbols.json", s.Catalog.Path)
	assert.Equal(t, "/proj/pipeconf.hcl", s.Source)
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/with/pipeconf.hcl", []byte("check {\n  workers = 2\n}\n"), 0o644))
	require.NoError(t, fs.MkdirAll("/without", 0o755))

	found, err := Discover(context.Background(), fs, "/with")
	require.NoError(t, err)
	assert.Equal(t, 2, found.Check.Workers)

	fallback, err := Discover(context.Background(), fs, "/without")
	require.NoError(t, err)
	assert.Equal(t, Default(), fallback)
}
