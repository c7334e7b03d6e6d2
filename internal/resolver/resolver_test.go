package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/pipeconf/internal/catalog"
)

func testCatalog() *catalog.Catalog {
	f := func(name, typ string) *catalog.FieldInfo { return &catalog.FieldInfo{Name: name, Type: typ} }
	m := func(fs ...*catalog.FieldInfo) map[string]*catalog.FieldInfo {
		out := map[string]*catalog.FieldInfo{}
		for _, x := range fs {
			out[x.Name] = x
		}
		return out
	}
	return catalog.New(
		&catalog.TypeInfo{Name: "cSmileComponent", Fields: m(f("blocksize", "numeric"))},
		&catalog.TypeInfo{Name: "cDataSink", BaseType: "cSmileComponent", Fields: m(f("reader", "cDataReader"))},
		&catalog.TypeInfo{Name: "cCsvSink", BaseType: "cDataSink", Fields: m(f("filename", "string"))},
		&catalog.TypeInfo{Name: "cDataReader", IsStruct: true, Fields: m(f("dmLevel", "string"), f("levelconf", "cLevelConf"))},
		&catalog.TypeInfo{Name: "cLevelConf", IsStruct: true, Fields: m(f("nT", "numeric"))},
	)
}

func TestResolveFieldExpression(t *testing.T) {
	t.Parallel()
	cat := testCatalog()

	testCases := []struct {
		name     string
		root     string
		expr     string
		wantOK   bool
		wantName string
		wantType string
	}{
		{name: "own field", root: "cCsvSink", expr: "filename", wantOK: true, wantName: "filename", wantType: "string"},
		{name: "two levels up", root: "cCsvSink", expr: "blocksize", wantOK: true, wantName: "blocksize", wantType: "numeric"},
		{name: "struct descent", root: "cCsvSink", expr: "reader.dmLevel", wantOK: true, wantName: "dmLevel", wantType: "string"},
		{name: "index skipped", root: "cCsvSink", expr: "reader[0].dmLevel", wantOK: true, wantName: "dmLevel", wantType: "string"},
		{name: "deep struct", root: "cCsvSink", expr: "reader.levelconf.nT", wantOK: true, wantName: "nT", wantType: "numeric"},
		{name: "struct itself", root: "cCsvSink", expr: "reader", wantOK: true, wantName: "reader", wantType: "cDataReader"},
		{name: "unknown type", root: "cNope", expr: "filename"},
		{name: "unknown field", root: "cCsvSink", expr: "nope"},
		{name: "descent into primitive", root: "cCsvSink", expr: "filename.x"},
		{name: "malformed", root: "cCsvSink", expr: "reader->dmLevel"},
		{name: "only index", root: "cCsvSink", expr: "[0]"},
		{name: "empty", root: "cCsvSink", expr: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, ok := ResolveFieldExpression(cat, tc.root, tc.expr)

			require.Equal(t, tc.wantOK, ok)
			if !tc.wantOK {
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, tc.wantName, got.Name)
			assert.Equal(t, tc.wantType, got.Type)
		})
	}
}

func TestResolver_FollowsHandleSwaps(t *testing.T) {
	t.Parallel()

	h := catalog.NewHandle(nil)
	r := New(h)

	_, ok := r.Resolve("cCsvSink", "filename")
	assert.False(t, ok)

	h.Store(testCatalog())

	f, ok := r.Resolve("cCsvSink", "filename")
	require.True(t, ok)
	assert.Equal(t, "filename", f.Name)
}
