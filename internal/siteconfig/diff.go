package siteconfig

import (
	"bytes"
	"encoding/json"
	"sort"
)

// FieldChange records one changed top-level configuration key.
// OldValue/NewValue carry the whole section object: a change to a nested
// sub-field is reported as a change to its entire top-level parent.
type FieldChange struct {
	Field    string      `json:"field"`
	OldValue interface{} `json:"oldValue"`
	NewValue interface{} `json:"newValue"`
}

// Diff compares two configuration documents at top-level-key granularity.
// Every key present in either document is compared by canonical JSON
// serialization (structural equality, not reference equality); keys whose
// serialized forms match are omitted, so the changeset is sparse. Keys are
// emitted in sorted order to keep audit output stable.
func Diff(oldConfig, newConfig map[string]interface{}) []FieldChange {
	keys := make(map[string]struct{}, len(oldConfig)+len(newConfig))
	for k := range oldConfig {
		keys[k] = struct{}{}
	}
	for k := range newConfig {
		keys[k] = struct{}{}
	}

	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	var changes []FieldChange
	for _, k := range sorted {
		oldVal, newVal := oldConfig[k], newConfig[k]
		if canonicalEqual(oldVal, newVal) {
			continue
		}
		changes = append(changes, FieldChange{
			Field:    k,
			OldValue: oldVal,
			NewValue: newVal,
		})
	}
	return changes
}

// MergeShallow applies a partial document onto a base at top-level keys
// only; nested objects in the patch replace the base section wholesale.
// The inputs are not mutated.
func MergeShallow(base, patch map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(base)+len(patch))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}
	return merged
}

// canonicalEqual compares two values by their JSON encoding. encoding/json
// sorts map keys, which makes the encoding canonical for document values.
func canonicalEqual(a, b interface{}) bool {
	aj, errA := json.Marshal(a)
	bj, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(aj, bj)
}
