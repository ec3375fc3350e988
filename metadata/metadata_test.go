package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitwit/inkcall/call"
)

const flipperJSON = `{
  "name": "flipper",
  "constructors": [
    {"label": "new", "selector": "0x9bae9d5e"}
  ],
  "messages": [
    {"label": "flip", "selector": "0x633aa551"},
    {"label": "get", "selector": "0x2f865bd9", "returns": "bool"}
  ]
}`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(flipperJSON))
	require.NoError(t, err)
	assert.Equal(t, "flipper", c.Name)
	require.Len(t, c.Messages, 2)

	e, kind, ok := c.Lookup(call.SelectorFromLabel("get"))
	require.True(t, ok)
	assert.Equal(t, KindMessage, kind)
	assert.Equal(t, "bool", e.Returns)

	e, kind, ok = c.Lookup(call.SelectorFromLabel("new"))
	require.True(t, ok)
	assert.Equal(t, KindConstructor, kind)
	assert.Equal(t, "new", e.Label)

	_, _, ok = c.Lookup(call.SelectorFromUint32(0))
	assert.False(t, ok)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{`},
		{"missing name", `{"constructors":[{"label":"new","selector":"0x9bae9d5e"}]}`},
		{"no constructors", `{"name":"x","messages":[]}`},
		{"short selector", `{"name":"x","constructors":[{"label":"new","selector":"0x9bae"}]}`},
		{"missing label", `{"name":"x","constructors":[{"selector":"0x9bae9d5e"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
		})
	}
}

func TestCheckSelectors(t *testing.T) {
	c := &Contract{
		Name:         "clash",
		Constructors: []Entry{{Label: "new", Selector: "0xdeadbeef"}},
		Messages: []Entry{
			{Label: "a", Selector: "0x00000001"},
			{Label: "b", Selector: "0xDEADBEEF"},
			{Label: "c", Selector: "0x00000001"},
		},
	}

	err := c.CheckSelectors()
	require.ErrorIs(t, err, ErrDuplicateSelector)
	assert.Contains(t, err.Error(), "constructor new and message b")
	assert.Contains(t, err.Error(), "message a and message c")
}
