package device

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_KeepsExtraFields(t *testing.T) {
	var r Record
	err := json.Unmarshal([]byte(`{"nodeID":"n7","isOn":true,"room":"kitchen","pos":{"x":1}}`), &r)
	require.NoError(t, err)

	assert.Equal(t, "n7", r.NodeID)
	assert.True(t, r.IsOn)
	assert.JSONEq(t, `"kitchen"`, string(r.Extra["room"]))
	assert.NotContains(t, r.Extra, "nodeID")

	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"nodeID":"n7","isOn":true,"room":"kitchen","pos":{"x":1}}`, string(out))
}

func TestRecord_MissingIsOnDefaultsToOff(t *testing.T) {
	var r Record
	require.NoError(t, json.Unmarshal([]byte(`{"nodeID":"n1"}`), &r))
	assert.False(t, r.IsOn)
	assert.Nil(t, r.Extra)
}

func TestRecord_RejectsNonBooleanIsOn(t *testing.T) {
	var r Record
	err := json.Unmarshal([]byte(`{"nodeID":"n1","isOn":"yes"}`), &r)
	assert.Error(t, err)
}

func TestDocument_SortedIDs(t *testing.T) {
	doc := Document{
		"hotspot-10": {NodeID: "a"},
		"hotspot-2":  {NodeID: "b"},
		"lobby":      {NodeID: "c"},
		"hotspot-1":  {NodeID: "d"},
	}
	assert.Equal(t, []string{"hotspot-1", "hotspot-2", "hotspot-10", "lobby"}, doc.SortedIDs())
}

func TestDocument_FindByNode(t *testing.T) {
	doc := Document{
		"hotspot-3": {ID: "hotspot-3", NodeID: "n1"},
		"hotspot-1": {ID: "hotspot-1", NodeID: "n1"},
		"hotspot-2": nil,
	}
	matches := doc.FindByNode("n1")
	require.Len(t, matches, 2)
	assert.Equal(t, "hotspot-1", matches[0].ID)
	assert.Empty(t, doc.FindByNode("missing"))
}

func TestSuffix(t *testing.T) {
	tests := []struct {
		id   string
		want int
		ok   bool
	}{
		{"hotspot-1", 1, true},
		{"hotspot-042", 42, true},
		{"a-b-7", 7, true},
		{"hotspot-", 0, false},
		{"hotspot", 0, false},
		{"hotspot-+5", 0, false},
		{"hotspot- 5", 0, false},
		{"hotspot-5x", 0, false},
		{"hotspot-99999999999999999999999", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			n, ok := Suffix(tt.id)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestDocument_SortedIDsSignedSuffix(t *testing.T) {
	doc := Document{
		"hotspot-+1": {NodeID: "a"},
		"hotspot-2":  {NodeID: "b"},
	}
	assert.Equal(t, []string{"hotspot-2", "hotspot-+1"}, doc.SortedIDs())
}
