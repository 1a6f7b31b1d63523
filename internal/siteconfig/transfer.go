package siteconfig

import (
	"fmt"
	"time"

	"go_shop/internal/model"
)

// ExportSchemaVersion identifies the bundle layout for import compatibility.
const ExportSchemaVersion = 1

// ExportVersionLimit caps how many recent versions an export carries.
const ExportVersionLimit = 10

// ExportBundle is the portable form of the live configuration.
type ExportBundle struct {
	SchemaVersion int                    `json:"schemaVersion"`
	ExportedAt    time.Time              `json:"exportedAt"`
	ExportedBy    Actor                  `json:"exportedBy"`
	Config        map[string]interface{} `json:"config"`
	Versions      []model.ConfigVersion  `json:"versions,omitempty"`
}

// requiredSections lists the top-level sections and the keys inside them an
// importable configuration must carry.
var requiredSections = map[string][]string{
	"branding": {"siteName"},
	"colors":   {"primary"},
}

// Export serializes the live configuration with exporter metadata.
// Pure read; no side effects.
func (s *Service) Export(actor Actor, includeVersions bool) (*ExportBundle, error) {
	live, err := s.Active()
	if err != nil {
		return nil, err
	}
	if live == nil {
		return nil, fmt.Errorf("no active configuration to export")
	}

	bundle := &ExportBundle{
		SchemaVersion: ExportSchemaVersion,
		ExportedAt:    time.Now(),
		ExportedBy:    actor,
		Config:        map[string]interface{}(live.Data),
	}

	if includeVersions {
		versions, err := s.LatestVersions(ExportVersionLimit)
		if err != nil {
			return nil, err
		}
		bundle.Versions = versions
	}

	return bundle, nil
}

// ValidateBundleConfig runs structural validation on an imported
// configuration document. Returns the list of violations; empty means valid.
func ValidateBundleConfig(config map[string]interface{}) []string {
	var violations []string

	if config == nil {
		return []string{"config document is missing"}
	}

	for section, keys := range requiredSections {
		raw, ok := config[section]
		if !ok {
			violations = append(violations, fmt.Sprintf("missing required section: %s", section))
			continue
		}
		obj, ok := raw.(map[string]interface{})
		if !ok {
			violations = append(violations, fmt.Sprintf("section %s must be an object", section))
			continue
		}
		for _, key := range keys {
			if v, ok := obj[key]; !ok || v == nil || v == "" {
				violations = append(violations, fmt.Sprintf("missing required field: %s.%s", section, key))
			}
		}
	}

	return violations
}

// ImportResult reports the outcome of an import.
type ImportResult struct {
	Valid      bool                  `json:"valid"`
	Violations []string              `json:"violations,omitempty"`
	Applied    bool                  `json:"applied"`
	Config     *model.SiteConfig     `json:"config,omitempty"`
	Version    *model.ConfigVersion  `json:"version,omitempty"`
}

// Import applies an export bundle. With validateOnly the bundle is checked
// and nothing is persisted. With overwrite the current state is snapshotted,
// all configs deactivated and the bundle inserted as a new active document;
// otherwise the bundle's fields are shallow-merged into the active one.
// Every applied import records a version tagged "import".
func (s *Service) Import(bundle *ExportBundle, actor Actor, overwrite, validateOnly bool) (*ImportResult, error) {
	violations := ValidateBundleConfig(bundle.Config)
	if len(violations) > 0 || validateOnly {
		return &ImportResult{
			Valid:      len(violations) == 0,
			Violations: violations,
			Applied:    false,
		}, nil
	}

	tags := []string{model.VersionTagImport}

	var (
		cfg     *model.SiteConfig
		version *model.ConfigVersion
		err     error
	)
	if overwrite {
		cfg, version, err = s.ReplaceActive(bundle.Config, actor, "configuration import (overwrite)", tags)
	} else {
		cfg, version, err = s.Update(bundle.Config, actor, "configuration import (merge)", tags)
	}
	if err != nil {
		return nil, err
	}

	return &ImportResult{
		Valid:   true,
		Applied: true,
		Config:  cfg,
		Version: version,
	}, nil
}
