package siteconfig

import (
	"encoding/json"
	"errors"
	"fmt"

	"go_shop/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Actor identifies who triggered a configuration write. The ledger performs
// no authentication itself; the caller passes the identity in.
type Actor struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Service maintains the live configuration document and its append-only
// version history.
type Service struct {
	db *gorm.DB
}

// NewService creates a new site configuration service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Active returns the current live configuration, or nil if none exists yet.
// If several documents are flagged active (a race the write path tolerates),
// the most recently updated one wins.
func (s *Service) Active() (*model.SiteConfig, error) {
	var cfg model.SiteConfig
	if err := s.db.Where("is_active = ?", true).
		Order("updated_at DESC").
		First(&cfg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active config: %w", err)
	}
	return &cfg, nil
}

// SnapshotBeforeWrite records the pre-mutation state as a new immutable
// version. It runs and commits before the live write is attempted, so the
// version survives even if that write later fails. Version numbers are
// monotonic and gapless, starting at 1.
func (s *Service) SnapshotBeforeWrite(liveData map[string]interface{}, actor Actor, description string, tags []string, changes []FieldChange) (*model.ConfigVersion, error) {
	var last int64
	err := s.db.Model(&model.ConfigVersion{}).
		Select("COALESCE(MAX(version), 0)").
		Scan(&last).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read last version: %w", err)
	}

	changesJSON, err := json.Marshal(changes)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize changes: %w", err)
	}

	version := &model.ConfigVersion{
		Version:     last + 1,
		Config:      datatypes.JSONMap(liveData),
		Changes:     datatypes.JSON(changesJSON),
		ActorID:     actor.ID,
		ActorName:   actor.Name,
		ActorEmail:  actor.Email,
		Description: description,
		Tags:        datatypes.JSONSlice[string](tags),
	}

	if err := s.db.Create(version).Error; err != nil {
		return nil, fmt.Errorf("failed to create config version: %w", err)
	}
	return version, nil
}

// Update applies a partial document onto the live configuration (shallow,
// top-level merge), snapshotting the pre-patch state first. Creates the live
// document if none exists. Last write wins; there is no optimistic lock.
func (s *Service) Update(patch map[string]interface{}, actor Actor, description string, tags []string) (*model.SiteConfig, *model.ConfigVersion, error) {
	live, err := s.Active()
	if err != nil {
		return nil, nil, err
	}

	oldData := map[string]interface{}{}
	if live != nil {
		oldData = map[string]interface{}(live.Data)
	}

	merged := MergeShallow(oldData, patch)
	changes := Diff(oldData, merged)

	version, err := s.SnapshotBeforeWrite(oldData, actor, description, tags, changes)
	if err != nil {
		return nil, nil, err
	}

	if live == nil {
		live = &model.SiteConfig{
			IsActive: true,
			Data:     datatypes.JSONMap(merged),
		}
		if err := s.db.Create(live).Error; err != nil {
			return nil, version, fmt.Errorf("failed to create config: %w", err)
		}
		return live, version, nil
	}

	live.Data = datatypes.JSONMap(merged)
	if err := s.db.Model(live).Update("data", live.Data).Error; err != nil {
		return nil, version, fmt.Errorf("failed to update config: %w", err)
	}
	return live, version, nil
}

// ReplaceActive snapshots the current state, deactivates every existing
// configuration document and inserts data as a brand-new active one (new
// identity, not an update of the old row).
func (s *Service) ReplaceActive(data map[string]interface{}, actor Actor, description string, tags []string) (*model.SiteConfig, *model.ConfigVersion, error) {
	live, err := s.Active()
	if err != nil {
		return nil, nil, err
	}

	oldData := map[string]interface{}{}
	if live != nil {
		oldData = map[string]interface{}(live.Data)
	}
	changes := Diff(oldData, data)

	version, err := s.SnapshotBeforeWrite(oldData, actor, description, tags, changes)
	if err != nil {
		return nil, nil, err
	}

	if err := s.db.Model(&model.SiteConfig{}).
		Where("is_active = ?", true).
		Update("is_active", false).Error; err != nil {
		return nil, version, fmt.Errorf("failed to deactivate configs: %w", err)
	}

	cfg := &model.SiteConfig{
		IsActive: true,
		Data:     datatypes.JSONMap(data),
	}
	if err := s.db.Create(cfg).Error; err != nil {
		return nil, version, fmt.Errorf("failed to insert config: %w", err)
	}
	return cfg, version, nil
}

// Restore copies a prior version's snapshot back onto the live configuration
// in full (no merge). Restore is itself a write, so the pre-restore state is
// snapshotted first; history stays linear and nothing is destroyed.
// Returns nil if the version does not exist.
func (s *Service) Restore(versionNumber int64, actor Actor) (*model.SiteConfig, *model.ConfigVersion, error) {
	target, err := s.GetVersion(versionNumber)
	if err != nil {
		return nil, nil, err
	}
	if target == nil {
		return nil, nil, nil
	}

	live, err := s.Active()
	if err != nil {
		return nil, nil, err
	}

	oldData := map[string]interface{}{}
	if live != nil {
		oldData = map[string]interface{}(live.Data)
	}
	restored := map[string]interface{}(target.Config)
	changes := Diff(oldData, restored)

	description := fmt.Sprintf("restore to version %d", versionNumber)
	version, err := s.SnapshotBeforeWrite(oldData, actor, description, []string{model.VersionTagRestore}, changes)
	if err != nil {
		return nil, nil, err
	}

	if live == nil {
		live = &model.SiteConfig{
			IsActive: true,
			Data:     datatypes.JSONMap(restored),
		}
		if err := s.db.Create(live).Error; err != nil {
			return nil, version, fmt.Errorf("failed to create config: %w", err)
		}
		return live, version, nil
	}

	live.Data = datatypes.JSONMap(restored)
	if err := s.db.Model(live).Update("data", live.Data).Error; err != nil {
		return nil, version, fmt.Errorf("failed to restore config: %w", err)
	}
	return live, version, nil
}

// GetVersion returns the version with that exact number, or nil if absent.
func (s *Service) GetVersion(versionNumber int64) (*model.ConfigVersion, error) {
	var version model.ConfigVersion
	if err := s.db.Where("version = ?", versionNumber).First(&version).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get version: %w", err)
	}
	return &version, nil
}

// ListVersions lists version history with pagination, newest first.
func (s *Service) ListVersions(page, pageSize int) ([]model.ConfigVersion, int64, error) {
	var total int64
	if err := s.db.Model(&model.ConfigVersion{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count versions: %w", err)
	}

	var versions []model.ConfigVersion
	offset := (page - 1) * pageSize
	if err := s.db.Order("version DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&versions).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list versions: %w", err)
	}

	return versions, total, nil
}

// LatestVersions returns up to limit most recent versions, newest first.
func (s *Service) LatestVersions(limit int) ([]model.ConfigVersion, error) {
	var versions []model.ConfigVersion
	if err := s.db.Order("version DESC").Limit(limit).Find(&versions).Error; err != nil {
		return nil, fmt.Errorf("failed to load versions: %w", err)
	}
	return versions, nil
}
