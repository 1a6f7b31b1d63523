package campaign

import (
	"errors"
	"fmt"

	"go_shop/internal/model"

	"gorm.io/gorm"
)

// ErrSlugTaken indicates a campaign slug collision on create or duplicate.
var ErrSlugTaken = errors.New("campaign slug already exists")

// Service handles campaign persistence
type Service struct {
	db *gorm.DB
}

// NewService creates a new campaign service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Create persists a new campaign after validating its payment scheme.
func (s *Service) Create(c *model.Campaign) error {
	if err := ValidateScheme(c.Payment); err != nil {
		return err
	}

	var count int64
	if err := s.db.Model(&model.Campaign{}).Where("slug = ?", c.Slug).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check slug: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: %s", ErrSlugTaken, c.Slug)
	}

	if err := s.db.Create(c).Error; err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}
	return nil
}

// GetBySlug returns the campaign with the given slug, or nil if absent.
func (s *Service) GetBySlug(slug string) (*model.Campaign, error) {
	var c model.Campaign
	if err := s.db.Where("slug = ?", slug).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}
	return &c, nil
}

// List lists campaigns with pagination, newest first.
func (s *Service) List(activeOnly bool, page, pageSize int) ([]model.Campaign, int64, error) {
	query := s.db.Model(&model.Campaign{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count campaigns: %w", err)
	}

	var campaigns []model.Campaign
	offset := (page - 1) * pageSize
	if err := query.Order("id DESC").Offset(offset).Limit(pageSize).Find(&campaigns).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list campaigns: %w", err)
	}

	return campaigns, total, nil
}

// Update saves campaign fields. The payment scheme is re-validated so an
// edit can never leave an inconsistent scheme behind.
func (s *Service) Update(c *model.Campaign) error {
	if err := ValidateScheme(c.Payment); err != nil {
		return err
	}
	if err := s.db.Save(c).Error; err != nil {
		return fmt.Errorf("failed to update campaign: %w", err)
	}
	return nil
}

// Disable soft-disables a campaign. Campaigns are never hard-deleted.
func (s *Service) Disable(slug string) (*model.Campaign, error) {
	c, err := s.GetBySlug(slug)
	if err != nil || c == nil {
		return nil, err
	}
	if err := s.db.Model(c).Update("is_active", false).Error; err != nil {
		return nil, fmt.Errorf("failed to disable campaign: %w", err)
	}
	c.IsActive = false
	return c, nil
}

// Duplicate copies an existing campaign under a new slug with zeroed stats.
func (s *Service) Duplicate(slug, newSlug string) (*model.Campaign, error) {
	src, err := s.GetBySlug(slug)
	if err != nil || src == nil {
		return nil, err
	}

	dup := *src
	dup.BaseModel = model.BaseModel{}
	dup.Slug = newSlug
	dup.Stats = model.CampaignStats{}

	if err := s.Create(&dup); err != nil {
		return nil, err
	}
	return &dup, nil
}

// RecordOrder additively folds one completed order into the campaign stats.
// Uses atomic SQL increments; a read-modify-write here would lose updates
// under concurrent checkouts.
func (s *Service) RecordOrder(campaignID int, quantity int, revenue int64) error {
	err := s.db.Model(&model.Campaign{}).
		Where("id = ?", campaignID).
		UpdateColumns(map[string]interface{}{
			"stats_order_count":  gorm.Expr("stats_order_count + ?", 1),
			"stats_quantity_sum": gorm.Expr("stats_quantity_sum + ?", quantity),
			"stats_revenue_sum":  gorm.Expr("stats_revenue_sum + ?", revenue),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to record order stats: %w", err)
	}
	return nil
}

// UnitPrice returns the campaign's flat price for a product class.
func UnitPrice(pricing model.SpecialPricing, productClass string) (int64, error) {
	switch productClass {
	case model.ProductClassStandard:
		return pricing.StandardUnitPrice, nil
	case model.ProductClassPremium:
		return pricing.PremiumUnitPrice, nil
	default:
		return 0, fmt.Errorf("unknown product class: %s", productClass)
	}
}
