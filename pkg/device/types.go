package device

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Record is the bridge's bookkeeping entry for one mesh node (blind, light, hotspot).
// ID is the document key and is not stored inside the value. Any fields other than
// nodeID and isOn are kept in Extra and written back untouched.
type Record struct {
	ID     string                     `json:"-"`
	NodeID string                     `json:"nodeID"`
	IsOn   bool                       `json:"isOn"`
	Extra  map[string]json.RawMessage `json:"-"`
}

// MarshalJSON flattens Extra next to nodeID and isOn.
func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Extra)+2)
	for k, v := range r.Extra {
		out[k] = v
	}
	out["nodeID"] = r.NodeID
	out["isOn"] = r.IsOn
	return json.Marshal(out)
}

// UnmarshalJSON reads nodeID and isOn and keeps every other field in Extra.
func (r *Record) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	r.NodeID, r.IsOn = "", false
	if raw, ok := fields["nodeID"]; ok {
		if err := json.Unmarshal(raw, &r.NodeID); err != nil {
			return fmt.Errorf("nodeID: %w", err)
		}
		delete(fields, "nodeID")
	}
	if raw, ok := fields["isOn"]; ok {
		if err := json.Unmarshal(raw, &r.IsOn); err != nil {
			return fmt.Errorf("isOn: %w", err)
		}
		delete(fields, "isOn")
	}

	r.Extra = nil
	if len(fields) > 0 {
		r.Extra = fields
	}
	return nil
}

// Document is the full persisted mapping of slot id to record.
type Document map[string]*Record

// SortedIDs returns the document keys ordered by their numeric suffix,
// falling back to lexical order for keys without one.
func (d Document) SortedIDs() []string {
	ids := make([]string, 0, len(d))
	for id := range d {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		ni, iok := Suffix(ids[i])
		nj, jok := Suffix(ids[j])
		if iok && jok && ni != nj {
			return ni < nj
		}
		if iok != jok {
			return iok
		}
		return ids[i] < ids[j]
	})
	return ids
}

// FindByNode returns every record whose NodeID matches, in SortedIDs order.
func (d Document) FindByNode(nodeID string) []*Record {
	var matches []*Record
	for _, id := range d.SortedIDs() {
		if r := d[id]; r != nil && r.NodeID == nodeID {
			matches = append(matches, r)
		}
	}
	return matches
}

// Suffix extracts the decimal number after the last '-' in a slot id.
func Suffix(id string) (int, bool) {
	i := strings.LastIndexByte(id, '-')
	if i < 0 || i == len(id)-1 {
		return 0, false
	}
	return ParseSeq(id[i+1:])
}

// ParseSeq parses an unsigned decimal sequence number. Signs, spaces and anything
// other than ASCII digits are rejected.
func ParseSeq(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// CommandResult is the outcome of a command relayed to the gateway.
// A non-OK result carries the gateway's status and body verbatim.
type CommandResult struct {
	OK         bool   `json:"ok"`
	StatusCode int    `json:"status_code"`
	Body       string `json:"body,omitempty"`
}

// Blind actions understood by the blinds endpoint. Other actions are
// forwarded to the gateway without local checks.
const (
	ActionOpen  = "open"
	ActionClose = "close"
	ActionStop  = "stop"
)
