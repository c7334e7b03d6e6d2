package value

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestParseScalar(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		raw      string
		typ      string
		wantOK   bool
		wantText string
	}{
		{name: "string unchanged", raw: " spaced out ", typ: TypeString, wantOK: true, wantText: " spaced out "},
		{name: "empty string", raw: "", typ: TypeString, wantOK: true, wantText: ""},
		{name: "integer", raw: "16000", typ: TypeNumeric, wantOK: true, wantText: "16000"},
		{name: "negative float", raw: "-0.25", typ: TypeNumeric, wantOK: true, wantText: "-0.25"},
		{name: "exponent", raw: "1e-3", typ: TypeNumeric, wantOK: true, wantText: "0.001"},
		{name: "numeric trims whitespace", raw: "  42 ", typ: TypeNumeric, wantOK: true, wantText: "42"},
		{name: "numeric rejects trailing garbage", raw: "12abc", typ: TypeNumeric, wantOK: false},
		{name: "numeric rejects empty", raw: "  ", typ: TypeNumeric, wantOK: false},
		{name: "numeric rejects Inf", raw: "Inf", typ: TypeNumeric, wantOK: false},
		{name: "numeric rejects signed inf", raw: "-inf", typ: TypeNumeric, wantOK: false},
		{name: "char single", raw: ";", typ: TypeChar, wantOK: true, wantText: ";"},
		{name: "char multibyte single rune", raw: "é", typ: TypeChar, wantOK: true, wantText: "é"},
		{name: "char too long", raw: "ab", typ: TypeChar, wantOK: false},
		{name: "char empty", raw: "", typ: TypeChar, wantOK: false},
		{name: "object type fails", raw: "x", typ: "cDataReader", wantOK: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, ok := ParseScalar(tc.raw, tc.typ)

			require.Equal(t, tc.wantOK, ok)
			if ok {
				assert.Equal(t, tc.wantText, Text(got))
			}
		})
	}
}

func TestParseScalar_NumericIsNumberType(t *testing.T) {
	t.Parallel()

	got, ok := ParseScalar("3.5", TypeNumeric)

	require.True(t, ok)
	assert.True(t, got.Type().Equals(cty.Number))
}

func TestParseArray(t *testing.T) {
	t.Parallel()

	t.Run("trims and drops trailing separator", func(t *testing.T) {
		t.Parallel()

		got, ok := ParseArray("1; 2 ;3;", TypeNumeric)

		require.True(t, ok)
		require.Len(t, got, 3)
		assert.Equal(t, "1", Text(got[0]))
		assert.Equal(t, "2", Text(got[1]))
		assert.Equal(t, "3", Text(got[2]))
	})

	t.Run("one bad element fails the whole array", func(t *testing.T) {
		t.Parallel()

		_, ok := ParseArray("1;x;3", TypeNumeric)

		assert.False(t, ok)
	})

	t.Run("string levels", func(t *testing.T) {
		t.Parallel()

		got, ok := ParseArray("wave;energy", TypeString)

		require.True(t, ok)
		require.Len(t, got, 2)
		assert.Equal(t, "wave", Text(got[0]))
		assert.Equal(t, "energy", Text(got[1]))
	})

	t.Run("inner empty elements are kept", func(t *testing.T) {
		t.Parallel()

		got, ok := ParseArray("a;;b", TypeString)

		require.True(t, ok)
		assert.Len(t, got, 3)
	})
}

func TestParseList(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "b", "c"}, ParseList(" a, b ,,c ", ','))
	assert.Equal(t, []string{"a", "b"}, ParseList("a;b", ',', ';'))
	assert.Empty(t, ParseList("  ", ','))
}

func TestEqual(t *testing.T) {
	t.Parallel()

	one, _ := ParseScalar("1", TypeNumeric)
	oneFloat, _ := ParseScalar("1.0", TypeNumeric)
	two, _ := ParseScalar("2", TypeNumeric)

	assert.True(t, Equal(one, oneFloat))
	assert.False(t, Equal(one, two))
	assert.False(t, Equal(one, cty.StringVal("1")))
	assert.True(t, Equal(cty.StringVal("x"), cty.StringVal("x")))
	assert.True(t, Equal(cty.NullVal(cty.String), cty.NullVal(cty.DynamicPseudoType)))
	assert.False(t, Equal(cty.NullVal(cty.String), cty.StringVal("")))
}

func TestFromJSONRoundTrip(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		raw  string
		want any
	}{
		{raw: `"abc"`, want: "abc"},
		{raw: `16000`, want: int64(16000)},
		{raw: `0.5`, want: 0.5},
		{raw: `true`, want: true},
		{raw: `null`, want: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			t.Parallel()

			v, err := FromJSON(json.RawMessage(tc.raw))

			require.NoError(t, err)
			assert.Equal(t, tc.want, ToGo(v))
		})
	}

	_, err := FromJSON(json.RawMessage(`{"a":1}`))
	assert.Error(t, err)
}
