package siteconfig

import (
	"reflect"
	"testing"
)

func validConfig() map[string]interface{} {
	return map[string]interface{}{
		"branding": map[string]interface{}{"siteName": "Coop"},
		"colors":   map[string]interface{}{"primary": "#336699"},
	}
}

func TestValidateBundleConfig(t *testing.T) {
	tests := []struct {
		name   string
		config map[string]interface{}
		want   []string
	}{
		{
			name:   "valid config",
			config: validConfig(),
			want:   nil,
		},
		{
			name:   "nil config",
			config: nil,
			want:   []string{"config document is missing"},
		},
		{
			name: "missing branding section",
			config: map[string]interface{}{
				"colors": map[string]interface{}{"primary": "#336699"},
			},
			want: []string{"missing required section: branding"},
		},
		{
			name: "missing colors.primary",
			config: map[string]interface{}{
				"branding": map[string]interface{}{"siteName": "Coop"},
				"colors":   map[string]interface{}{"accent": "#f00"},
			},
			want: []string{"missing required field: colors.primary"},
		},
		{
			name: "empty siteName counts as missing",
			config: map[string]interface{}{
				"branding": map[string]interface{}{"siteName": ""},
				"colors":   map[string]interface{}{"primary": "#336699"},
			},
			want: []string{"missing required field: branding.siteName"},
		},
		{
			name: "section with wrong shape",
			config: map[string]interface{}{
				"branding": "not an object",
				"colors":   map[string]interface{}{"primary": "#336699"},
			},
			want: []string{"section branding must be an object"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateBundleConfig(tt.config)
			if !sameViolations(got, tt.want) {
				t.Errorf("ValidateBundleConfig() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateBundleConfig_CollectsAllViolations(t *testing.T) {
	got := ValidateBundleConfig(map[string]interface{}{})
	if len(got) != 2 {
		t.Errorf("expected one violation per missing section, got %v", got)
	}
}

// requiredSections is a map, so violation order is not deterministic across
// sections; compare as sets.
func sameViolations(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	gotSet := make(map[string]int)
	wantSet := make(map[string]int)
	for _, v := range got {
		gotSet[v]++
	}
	for _, v := range want {
		wantSet[v]++
	}
	return reflect.DeepEqual(gotSet, wantSet)
}
