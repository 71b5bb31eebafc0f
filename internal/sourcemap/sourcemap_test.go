package sourcemap

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const regularMap = `{"version":3,"file":"main.user.js","sources":["../src/main.ts"],"names":[],"mappings":"AAAA;AACA","sourcesContent":["const a = '<b>';"]}`

func decode(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestLineOffset(t *testing.T) {
	assert.Equal(t, 0, LineOffset(""))
	assert.Equal(t, 3, LineOffset("// ==UserScript==\n// ==/UserScript==\n\n"))
}

func TestShift_Regular(t *testing.T) {
	out, err := Shift([]byte(regularMap), 3)
	require.NoError(t, err)

	doc := decode(t, out)
	assert.Equal(t, ";;;AAAA;AACA", doc["mappings"])
	assert.Equal(t, "main.user.js", doc["file"])
	assert.Equal(t, []any{"../src/main.ts"}, doc["sources"])
	assert.Contains(t, string(out), `'<b>'`, "HTML characters are not escaped")
}

func TestShift_RoundTrip(t *testing.T) {
	shifted, err := Shift([]byte(regularMap), 5)
	require.NoError(t, err)

	back, err := Shift(shifted, -5)
	require.NoError(t, err)
	assert.Equal(t, "AAAA;AACA", decode(t, back)["mappings"])
}

func TestShift_NegativeRefusesMappedLines(t *testing.T) {
	_, err := Shift([]byte(regularMap), -1)
	assert.Error(t, err)
}

func TestShift_Zero(t *testing.T) {
	out, err := Shift([]byte(regularMap), 0)
	require.NoError(t, err)
	assert.Equal(t, "AAAA;AACA", decode(t, out)["mappings"])
}

func TestShift_IndexMap(t *testing.T) {
	index := `{"version":3,"file":"app.js","sections":[
		{"offset":{"line":0,"column":0},"map":{"version":3,"mappings":"AAAA","sources":["a.js"]}},
		{"offset":{"line":10,"column":4},"url":"b.js.map"}
	]}`

	out, err := Shift([]byte(index), 2)
	require.NoError(t, err)

	doc := decode(t, out)
	sections := doc["sections"].([]any)
	require.Len(t, sections, 2)

	first := sections[0].(map[string]any)
	assert.Equal(t, map[string]any{"line": float64(2), "column": float64(0)}, first["offset"])
	assert.Equal(t, "AAAA", first["map"].(map[string]any)["mappings"], "nested maps are untouched")

	second := sections[1].(map[string]any)
	assert.Equal(t, map[string]any{"line": float64(12), "column": float64(4)}, second["offset"])
	assert.Equal(t, "b.js.map", second["url"])
	assert.NotContains(t, doc, "mappings")
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name        string
		data        string
		unsupported bool
	}{
		{"not json", "nope", false},
		{"version 2", `{"version":2,"mappings":""}`, true},
		{"missing version", `{"mappings":""}`, true},
		{"string version", `{"version":"3"}`, true},
		{"bad mappings", `{"version":3,"mappings":5}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.Equal(t, tt.unsupported, errors.Is(err, ErrUnsupported))
		})
	}
}

func TestSourceMap_Mappings(t *testing.T) {
	sm, err := Parse([]byte(regularMap))
	require.NoError(t, err)
	require.NoError(t, sm.Shift(1))
	assert.Equal(t, ";AAAA;AACA", sm.Mappings())
}
