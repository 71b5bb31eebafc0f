package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseGrant(t *testing.T) {
	tests := []struct {
		in   string
		ok   bool
	}{
		{"GM_getValue", true},
		{"GM.getValue", true},
		{"GM_xmlhttpRequest", true},
		{"GM.xmlHttpRequest", true},
		{"window.focus", true},
		{"window.close", true},
		{"gm_getvalue", false},
		{"GM_xmlHttpRequest", false},
		{"GM_newThing", false},
		{"window.open", false},
		{"none", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			g, ok := ParseGrant(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, Grant(tt.in), g)
				assert.True(t, g.Valid())
			}
		})
	}
}

func TestGrants_ReturnsCopy(t *testing.T) {
	grants := Grants()
	assert.Len(t, grants, 33)
	grants[0] = "tampered"
	assert.Equal(t, Grant("GM_info"), Grants()[0])
}

func TestSet_Operations(t *testing.T) {
	a := NewGrantSet("GM_getValue", "GM_setValue", "GM_getValue")
	b := NewGrantSet("GM_setValue", "window.focus")

	assert.Equal(t, 2, a.Len())
	assert.True(t, a.Has("GM_getValue"))
	assert.False(t, a.Has("window.focus"))

	union := a.Union(b)
	assert.Equal(t, []Grant{"GM_getValue", "GM_setValue", "window.focus"}, union.Sorted())
	assert.Equal(t, 2, a.Len(), "Union must not modify the receiver")

	assert.True(t, a.Equal(NewGrantSet("GM_setValue", "GM_getValue")))
	assert.False(t, a.Equal(b))

	clone := a.Clone()
	clone.Add("GM_info")
	assert.False(t, a.Has("GM_info"))

	var nilSet GrantSet
	assert.Equal(t, 0, nilSet.Len())
	assert.NotNil(t, nilSet.Clone())
	assert.True(t, nilSet.Equal(GrantSet{}))
}

// TestSet_SortedOrder pins the lexical byte order used for grant lines
func TestSet_SortedOrder(t *testing.T) {
	s := NewGrantSet("window.focus", "GM_info", "GM.info", "GM_addStyle")
	assert.Equal(t, []string{"GM.info", "GM_addStyle", "GM_info", "window.focus"}, s.Strings())
}

func TestOrderedMap(t *testing.T) {
	m := NewOrderedMap()
	m.Set("b", "2")
	m.Set("a", "1")
	m.Set("b", "3")

	assert.Equal(t, []string{"b", "a"}, m.Keys())
	v, ok := m.Get("b")
	assert.True(t, ok)
	assert.Equal(t, "3", v)

	clone := m.Clone()
	clone.Set("c", "4")
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, map[string]string{"a": "1", "b": "3"}, m.Map())

	var nilMap *OrderedMap
	assert.Equal(t, 0, nilMap.Len())
	assert.Nil(t, nilMap.Keys())
	assert.Nil(t, nilMap.Clone())
}
