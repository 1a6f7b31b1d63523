package campaigns

import (
	"errors"
	"time"

	"go_shop/internal/cache"
	"go_shop/internal/campaign"
	"go_shop/internal/httpx"
	"go_shop/internal/model"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles campaign administration requests
type Handler struct {
	db      *gorm.DB
	service *campaign.Service
}

// NewHandler creates a new campaign handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		db:      db,
		service: campaign.NewService(db),
	}
}

// CreateRequest 创建活动请求
type CreateRequest struct {
	Slug        string                  `json:"slug" binding:"required"`
	Name        string                  `json:"name" binding:"required"`
	StartsAt    time.Time               `json:"startsAt" binding:"required"`
	EndsAt      time.Time               `json:"endsAt" binding:"required"`
	Eligibility model.EligibilityPolicy `json:"eligibility"`
	Payment     model.PaymentScheme     `json:"paymentScheme"`
	Pricing     model.SpecialPricing    `json:"specialPricing"`
}

// Create handles POST /api/v1/campaigns/create
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid request body"))
		return
	}

	if !req.EndsAt.After(req.StartsAt) {
		httpx.FailErr(c, httpx.ErrParamIllegal("endsAt must be after startsAt"))
		return
	}

	cmp := &model.Campaign{
		Slug:        req.Slug,
		Name:        req.Name,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		IsActive:    true,
		Eligibility: req.Eligibility,
		Payment:     req.Payment,
		Pricing:     req.Pricing,
	}

	if err := h.service.Create(cmp); err != nil {
		switch {
		case errors.Is(err, campaign.ErrSlugTaken):
			httpx.FailErr(c, httpx.ErrAlreadyExists("campaign slug already exists"))
		case errors.Is(err, campaign.ErrInvalidScheme):
			httpx.FailErr(c, httpx.ErrParamIllegal(err.Error()))
		default:
			httpx.FailErr(c, httpx.ErrDatabaseError("failed to create campaign", err))
		}
		return
	}

	httpx.OK(c, cmp)
}

// ListRequest 活动列表请求
type ListRequest struct {
	ActiveOnly bool `form:"activeOnly"`
	Page       int  `form:"page"`
	PageSize   int  `form:"pageSize"`
}

// List handles GET /api/v1/campaigns
func (h *Handler) List(c *gin.Context) {
	var req ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid(err.Error()))
		return
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}

	campaigns, total, err := h.service.List(req.ActiveOnly, req.Page, req.PageSize)
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("query failed", err))
		return
	}

	httpx.OKItems(c, campaigns, total, req.Page, req.PageSize)
}

// Get handles GET /api/v1/campaigns/:slug (storefront read, cached)
func (h *Handler) Get(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		httpx.FailErr(c, httpx.ErrParamMissing("slug required"))
		return
	}

	var cached model.Campaign
	if cache.GetJSON(c.Request.Context(), cache.CampaignKey(slug), &cached) {
		httpx.OK(c, cached)
		return
	}

	cmp, err := h.service.GetBySlug(slug)
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("query failed", err))
		return
	}
	if cmp == nil {
		httpx.FailErr(c, httpx.ErrNotFound("campaign not found"))
		return
	}

	cache.SetJSON(c.Request.Context(), cache.CampaignKey(slug), cmp)
	httpx.OK(c, cmp)
}

// UpdateRequest 更新活动请求
type UpdateRequest struct {
	Slug        string                   `json:"slug" binding:"required"`
	Name        *string                  `json:"name"`
	StartsAt    *time.Time               `json:"startsAt"`
	EndsAt      *time.Time               `json:"endsAt"`
	Eligibility *model.EligibilityPolicy `json:"eligibility"`
	Payment     *model.PaymentScheme     `json:"paymentScheme"`
	Pricing     *model.SpecialPricing    `json:"specialPricing"`
}

// Update handles POST /api/v1/campaigns/update
func (h *Handler) Update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid request body"))
		return
	}

	cmp, err := h.service.GetBySlug(req.Slug)
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("query failed", err))
		return
	}
	if cmp == nil {
		httpx.FailErr(c, httpx.ErrNotFound("campaign not found"))
		return
	}

	if req.Name != nil {
		cmp.Name = *req.Name
	}
	if req.StartsAt != nil {
		cmp.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		cmp.EndsAt = *req.EndsAt
	}
	if req.Eligibility != nil {
		cmp.Eligibility = *req.Eligibility
	}
	if req.Payment != nil {
		cmp.Payment = *req.Payment
	}
	if req.Pricing != nil {
		cmp.Pricing = *req.Pricing
	}

	if !cmp.EndsAt.After(cmp.StartsAt) {
		httpx.FailErr(c, httpx.ErrParamIllegal("endsAt must be after startsAt"))
		return
	}

	if err := h.service.Update(cmp); err != nil {
		if errors.Is(err, campaign.ErrInvalidScheme) {
			httpx.FailErr(c, httpx.ErrParamIllegal(err.Error()))
			return
		}
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to update campaign", err))
		return
	}

	cache.Invalidate(c.Request.Context(), cache.CampaignKey(cmp.Slug))
	httpx.OK(c, cmp)
}

// DisableRequest 下架活动请求
type DisableRequest struct {
	Slug string `json:"slug" binding:"required"`
}

// Disable handles POST /api/v1/campaigns/disable (soft disable, never deleted)
func (h *Handler) Disable(c *gin.Context) {
	var req DisableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid request body"))
		return
	}

	cmp, err := h.service.Disable(req.Slug)
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to disable campaign", err))
		return
	}
	if cmp == nil {
		httpx.FailErr(c, httpx.ErrNotFound("campaign not found"))
		return
	}

	cache.Invalidate(c.Request.Context(), cache.CampaignKey(req.Slug))
	httpx.OK(c, cmp)
}

// DuplicateRequest 复制活动请求
type DuplicateRequest struct {
	Slug    string `json:"slug" binding:"required"`
	NewSlug string `json:"newSlug"`
}

// Duplicate handles POST /api/v1/campaigns/duplicate
func (h *Handler) Duplicate(c *gin.Context) {
	var req DuplicateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid request body"))
		return
	}
	if req.NewSlug == "" {
		httpx.FailErr(c, httpx.ErrParamMissing("newSlug is required"))
		return
	}

	dup, err := h.service.Duplicate(req.Slug, req.NewSlug)
	if err != nil {
		if errors.Is(err, campaign.ErrSlugTaken) {
			httpx.FailErr(c, httpx.ErrAlreadyExists("campaign slug already exists"))
			return
		}
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to duplicate campaign", err))
		return
	}
	if dup == nil {
		httpx.FailErr(c, httpx.ErrNotFound("campaign not found"))
		return
	}

	httpx.OK(c, dup)
}

// EligibilityRequest 资格预检请求
type EligibilityRequest struct {
	CampaignSlug      string `json:"campaignSlug" binding:"required"`
	IsMember          bool   `json:"isMember"`
	HasInsurance      bool   `json:"hasInsurance"`
	InsuranceProvider string `json:"insuranceProvider"`
	Quantity          int    `json:"quantity" binding:"required,min=1"`
}

// CheckEligibility handles POST /api/v1/campaigns/eligibility
// Pure evaluation, no side effects; the storefront uses it before checkout.
func (h *Handler) CheckEligibility(c *gin.Context) {
	var req EligibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid request body"))
		return
	}

	cmp, err := h.service.GetBySlug(req.CampaignSlug)
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("query failed", err))
		return
	}
	if cmp == nil {
		httpx.FailErr(c, httpx.ErrNotFound("campaign not found"))
		return
	}

	result := campaign.EvaluateEligibility(cmp.Eligibility, campaign.Declaration{
		IsMember:          req.IsMember,
		HasInsurance:      req.HasInsurance,
		InsuranceProvider: req.InsuranceProvider,
		Quantity:          req.Quantity,
	})

	httpx.OK(c, result)
}
