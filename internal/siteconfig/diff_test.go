package siteconfig

import (
	"reflect"
	"testing"
)

func TestDiff(t *testing.T) {
	tests := []struct {
		name string
		old  map[string]interface{}
		new  map[string]interface{}
		want []FieldChange
	}{
		{
			name: "identical documents yield empty changeset",
			old:  map[string]interface{}{"colors": map[string]interface{}{"primary": "#000"}},
			new:  map[string]interface{}{"colors": map[string]interface{}{"primary": "#000"}},
			want: nil,
		},
		{
			name: "nested change reported at whole top-level key",
			old:  map[string]interface{}{"colors": map[string]interface{}{"primary": "#000"}},
			new:  map[string]interface{}{"colors": map[string]interface{}{"primary": "#fff"}},
			want: []FieldChange{
				{
					Field:    "colors",
					OldValue: map[string]interface{}{"primary": "#000"},
					NewValue: map[string]interface{}{"primary": "#fff"},
				},
			},
		},
		{
			name: "unchanged keys are omitted",
			old: map[string]interface{}{
				"branding": map[string]interface{}{"siteName": "Coop"},
				"colors":   map[string]interface{}{"primary": "#000"},
			},
			new: map[string]interface{}{
				"branding": map[string]interface{}{"siteName": "Coop"},
				"colors":   map[string]interface{}{"primary": "#fff"},
			},
			want: []FieldChange{
				{
					Field:    "colors",
					OldValue: map[string]interface{}{"primary": "#000"},
					NewValue: map[string]interface{}{"primary": "#fff"},
				},
			},
		},
		{
			name: "added key",
			old:  map[string]interface{}{},
			new:  map[string]interface{}{"footer": "hello"},
			want: []FieldChange{
				{Field: "footer", OldValue: nil, NewValue: "hello"},
			},
		},
		{
			name: "removed key",
			old:  map[string]interface{}{"footer": "hello"},
			new:  map[string]interface{}{},
			want: []FieldChange{
				{Field: "footer", OldValue: "hello", NewValue: nil},
			},
		},
		{
			name: "structural equality, not reference equality",
			old: map[string]interface{}{
				"contact": map[string]interface{}{"email": "a@b.c", "phone": "123"},
			},
			new: map[string]interface{}{
				"contact": map[string]interface{}{"phone": "123", "email": "a@b.c"},
			},
			want: nil,
		},
		{
			name: "multiple changes emitted in sorted key order",
			old: map[string]interface{}{
				"colors":   "x",
				"branding": "y",
			},
			new: map[string]interface{}{
				"colors":   "x2",
				"branding": "y2",
			},
			want: []FieldChange{
				{Field: "branding", OldValue: "y", NewValue: "y2"},
				{Field: "colors", OldValue: "x", NewValue: "x2"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(tt.old, tt.new)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Diff() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

// Restoring a snapshot and diffing against it must yield an empty changeset.
func TestDiff_RestoredStateIsClean(t *testing.T) {
	snapshot := map[string]interface{}{
		"branding": map[string]interface{}{"siteName": "Coop"},
		"colors":   map[string]interface{}{"primary": "#000", "accent": "#f00"},
	}

	restored := MergeShallow(map[string]interface{}{}, snapshot)
	if changes := Diff(restored, snapshot); changes != nil {
		t.Errorf("expected empty changeset after restore, got %v", changes)
	}
}

func TestMergeShallow(t *testing.T) {
	base := map[string]interface{}{
		"branding": map[string]interface{}{"siteName": "Coop", "logo": "old.png"},
		"colors":   map[string]interface{}{"primary": "#000"},
	}
	patch := map[string]interface{}{
		"branding": map[string]interface{}{"siteName": "New Coop"},
	}

	merged := MergeShallow(base, patch)

	// Patch section replaces the base section wholesale
	branding, ok := merged["branding"].(map[string]interface{})
	if !ok {
		t.Fatal("branding section missing after merge")
	}
	if branding["siteName"] != "New Coop" {
		t.Errorf("siteName = %v, want New Coop", branding["siteName"])
	}
	if _, exists := branding["logo"]; exists {
		t.Error("shallow merge must replace the section, not deep-merge it")
	}

	// Untouched sections survive
	if _, exists := merged["colors"]; !exists {
		t.Error("untouched section dropped by merge")
	}

	// Inputs are not mutated
	if base["branding"].(map[string]interface{})["siteName"] != "Coop" {
		t.Error("base was mutated")
	}
}
