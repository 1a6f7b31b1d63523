package orders

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"go_shop/internal/cache"
	"go_shop/internal/campaign"
	"go_shop/internal/config"
	"go_shop/internal/httpx"
	"go_shop/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Handler handles order requests
type Handler struct {
	db       *gorm.DB
	service  *campaign.Service
	cfg      *config.Config
}

// NewHandler creates a new order handler
func NewHandler(db *gorm.DB, cfg *config.Config) *Handler {
	return &Handler{
		db:      db,
		service: campaign.NewService(db),
		cfg:     cfg,
	}
}

// CheckoutRequest 下单请求
type CheckoutRequest struct {
	CampaignSlug      string `json:"campaignSlug" binding:"required"`
	BuyerName         string `json:"buyerName" binding:"required"`
	BuyerPhone        string `json:"buyerPhone"`
	IsMember          bool   `json:"isMember"`
	HasInsurance      bool   `json:"hasInsurance"`
	InsuranceProvider string `json:"insuranceProvider"`
	ProductClass      string `json:"productClass" binding:"required,oneof=standard premium"`
	Quantity          int    `json:"quantity" binding:"required,min=1"`
	Installment       bool   `json:"installment"`
}

// Checkout handles POST /api/v1/orders/checkout
//
// Flow: load campaign, evaluate eligibility, price the order from the
// campaign's special pricing, compute the two-tranche plan when requested,
// persist the order, then fold it into campaign stats with atomic adds.
func (h *Handler) Checkout(c *gin.Context) {
	var req CheckoutRequest
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

	now := time.Now()
	if !cmp.IsOpen(now) {
		httpx.FailErr(c, httpx.ErrStateConflict("campaign is not open for orders"))
		return
	}

	decl := campaign.Declaration{
		IsMember:          req.IsMember,
		HasInsurance:      req.HasInsurance,
		InsuranceProvider: req.InsuranceProvider,
		Quantity:          req.Quantity,
	}
	result := campaign.EvaluateEligibility(cmp.Eligibility, decl)
	if !result.Eligible {
		httpx.FailErr(c, httpx.ErrParamIllegal("conditions d'éligibilité non remplies").WithData(result.Issues))
		return
	}

	unitPrice, err := campaign.UnitPrice(cmp.Pricing, req.ProductClass)
	if err != nil {
		httpx.FailErr(c, httpx.ErrParamIllegal(err.Error()))
		return
	}
	subtotal := unitPrice * int64(req.Quantity)

	order := &model.Order{
		Reference:         uuid.New().String(),
		CampaignID:        cmp.ID,
		CampaignSlug:      cmp.Slug,
		BuyerName:         req.BuyerName,
		BuyerPhone:        req.BuyerPhone,
		IsMember:          req.IsMember,
		HasInsurance:      req.HasInsurance,
		InsuranceProvider: req.InsuranceProvider,
		ProductClass:      req.ProductClass,
		Quantity:          req.Quantity,
		Subtotal:          subtotal,
		PaymentMode:       model.PaymentModeFull,
	}

	if req.Installment {
		plan, err := campaign.ComputeInstallments(cmp.Payment, subtotal, now, h.cfg.Installment.SecondTrancheOffsetDays)
		if err != nil {
			if errors.Is(err, campaign.ErrInvalidScheme) {
				// The stored campaign record is broken, not the request
				httpx.FailErr(c, httpx.ErrConfigInvalid(err.Error()))
				return
			}
			httpx.FailErr(c, httpx.ErrInternalError("failed to compute installments", err))
			return
		}
		if plan == nil {
			httpx.FailErr(c, httpx.ErrStateConflict("campaign does not offer installment payment"))
			return
		}
		order.PaymentMode = model.PaymentModeInstallment
		order.Installment = *plan
	}

	if snapshot, err := json.Marshal(result); err == nil {
		order.EligibilitySnapshot = datatypes.JSON(snapshot)
	}

	if err := h.db.Create(order).Error; err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to create order", err))
		return
	}

	if err := h.service.RecordOrder(cmp.ID, req.Quantity, subtotal); err != nil {
		// Order exists; stats drift is logged, not surfaced to the buyer
		log.Printf("[ERROR] failed to record stats for campaign %s: %v", cmp.Slug, err)
	}
	cache.Invalidate(c.Request.Context(), cache.CampaignKey(cmp.Slug))

	httpx.OK(c, order)
}

// Get handles GET /api/v1/orders/:reference
func (h *Handler) Get(c *gin.Context) {
	reference := c.Param("reference")

	var order model.Order
	if err := h.db.Where("reference = ?", reference).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.FailErr(c, httpx.ErrNotFound("order not found"))
			return
		}
		httpx.FailErr(c, httpx.ErrDatabaseError("query failed", err))
		return
	}

	httpx.OK(c, gin.H{
		"order":                 order,
		"secondTrancheOverdue": order.SecondTrancheOverdue(time.Now()),
	})
}

// ListRequest 订单列表请求
type ListRequest struct {
	CampaignSlug string `form:"campaignSlug"`
	Page         int    `form:"page"`
	PageSize     int    `form:"pageSize"`
}

// List handles GET /api/v1/orders
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

	query := h.db.Model(&model.Order{})
	if req.CampaignSlug != "" {
		query = query.Where("campaign_slug = ?", req.CampaignSlug)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("query failed", err))
		return
	}

	var orders []model.Order
	offset := (req.Page - 1) * req.PageSize
	if err := query.Order("id DESC").Offset(offset).Limit(req.PageSize).Find(&orders).Error; err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("query failed", err))
		return
	}

	httpx.OKItems(c, orders, total, req.Page, req.PageSize)
}

// MarkPaidRequest 确认到账请求
type MarkPaidRequest struct {
	Reference string `json:"reference" binding:"required"`
	Tranche   string `json:"tranche" binding:"required,oneof=first second"`
}

// MarkTranchePaid handles POST /api/v1/orders/mark-paid
// Records an external payment confirmation: the only supported transition is
// pending -> paid. Gateway integration lives outside this service.
func (h *Handler) MarkTranchePaid(c *gin.Context) {
	var req MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid request body"))
		return
	}

	var order model.Order
	if err := h.db.Where("reference = ?", req.Reference).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.FailErr(c, httpx.ErrNotFound("order not found"))
			return
		}
		httpx.FailErr(c, httpx.ErrDatabaseError("query failed", err))
		return
	}

	if order.PaymentMode != model.PaymentModeInstallment {
		httpx.FailErr(c, httpx.ErrStateConflict("order has no installment plan"))
		return
	}

	var column, current string
	switch req.Tranche {
	case "first":
		column, current = "inst_first_status", order.Installment.FirstStatus
	case "second":
		column, current = "inst_second_status", order.Installment.SecondStatus
	}

	if current != model.TrancheStatusPending {
		httpx.FailErr(c, httpx.ErrStateConflict("tranche is not pending"))
		return
	}

	if err := h.db.Model(&order).Update(column, model.TrancheStatusPaid).Error; err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to update tranche", err))
		return
	}

	if req.Tranche == "first" {
		order.Installment.FirstStatus = model.TrancheStatusPaid
	} else {
		order.Installment.SecondStatus = model.TrancheStatusPaid
	}

	httpx.OK(c, order)
}
