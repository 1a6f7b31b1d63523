package siteconfig

import (
	"strconv"

	"go_shop/internal/cache"
	"go_shop/internal/httpx"
	"go_shop/internal/model"
	"go_shop/internal/siteconfig"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles site configuration requests
type Handler struct {
	db      *gorm.DB
	service *siteconfig.Service
}

// NewHandler creates a new site configuration handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		db:      db,
		service: siteconfig.NewService(db),
	}
}

// actorFrom builds the version-ledger actor from the authenticated context.
func actorFrom(c *gin.Context) siteconfig.Actor {
	return siteconfig.Actor{
		ID:    c.GetInt("uid"),
		Name:  c.GetString("username"),
		Email: c.GetString("email"),
	}
}

// GetActive handles GET /api/v1/site-config (storefront read, cached)
func (h *Handler) GetActive(c *gin.Context) {
	var cached model.SiteConfig
	if cache.GetJSON(c.Request.Context(), cache.ActiveConfigKey, &cached) {
		httpx.OK(c, cached)
		return
	}

	cfg, err := h.service.Active()
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("query failed", err))
		return
	}
	if cfg == nil {
		httpx.FailErr(c, httpx.ErrNotFound("no active configuration"))
		return
	}

	cache.SetJSON(c.Request.Context(), cache.ActiveConfigKey, cfg)
	httpx.OK(c, cfg)
}

// UpdateRequest 配置更新请求（顶层浅合并）
type UpdateRequest struct {
	Patch       map[string]interface{} `json:"patch" binding:"required"`
	Description string                 `json:"description"`
	Tags        []string               `json:"tags"`
}

// Update handles POST /api/v1/site-config/update
// Snapshot-before-write: the pre-patch state is versioned before the live
// document changes, so history survives even a failed write.
func (h *Handler) Update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid request body"))
		return
	}
	if len(req.Patch) == 0 {
		httpx.FailErr(c, httpx.ErrParamMissing("patch must not be empty"))
		return
	}

	cfg, version, err := h.service.Update(req.Patch, actorFrom(c), req.Description, req.Tags)
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to update configuration", err))
		return
	}

	cache.Invalidate(c.Request.Context(), cache.ActiveConfigKey)
	httpx.OK(c, gin.H{
		"config":  cfg,
		"version": version,
	})
}

// ListVersionsRequest 版本历史请求
type ListVersionsRequest struct {
	Page     int `form:"page"`
	PageSize int `form:"pageSize"`
}

// ListVersions handles GET /api/v1/site-config/versions
func (h *Handler) ListVersions(c *gin.Context) {
	var req ListVersionsRequest
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

	versions, total, err := h.service.ListVersions(req.Page, req.PageSize)
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("query failed", err))
		return
	}

	httpx.OKItems(c, versions, total, req.Page, req.PageSize)
}

// GetVersion handles GET /api/v1/site-config/versions/:version
func (h *Handler) GetVersion(c *gin.Context) {
	version, err := strconv.ParseInt(c.Param("version"), 10, 64)
	if err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid version format"))
		return
	}

	record, err := h.service.GetVersion(version)
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("query failed", err))
		return
	}
	if record == nil {
		httpx.FailErr(c, httpx.ErrNotFound("version not found"))
		return
	}

	httpx.OK(c, record)
}

// RestoreRequest 回滚请求
type RestoreRequest struct {
	Version int64 `json:"version" binding:"required"`
}

// Restore handles POST /api/v1/site-config/restore
func (h *Handler) Restore(c *gin.Context) {
	var req RestoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid request body"))
		return
	}

	cfg, version, err := h.service.Restore(req.Version, actorFrom(c))
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to restore configuration", err))
		return
	}
	if cfg == nil {
		httpx.FailErr(c, httpx.ErrNotFound("version not found"))
		return
	}

	cache.Invalidate(c.Request.Context(), cache.ActiveConfigKey)
	httpx.OK(c, gin.H{
		"config":  cfg,
		"version": version,
	})
}

// ExportRequest 导出请求
type ExportRequest struct {
	IncludeVersions bool `form:"includeVersions"`
}

// Export handles GET /api/v1/site-config/export
func (h *Handler) Export(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid(err.Error()))
		return
	}

	bundle, err := h.service.Export(actorFrom(c), req.IncludeVersions)
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to export configuration", err))
		return
	}

	httpx.OK(c, bundle)
}

// ImportRequest 导入请求
type ImportRequest struct {
	Bundle       siteconfig.ExportBundle `json:"bundle" binding:"required"`
	Overwrite    bool                    `json:"overwrite"`
	ValidateOnly bool                    `json:"validateOnly"`
}

// Import handles POST /api/v1/site-config/import
func (h *Handler) Import(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid request body"))
		return
	}

	result, err := h.service.Import(&req.Bundle, actorFrom(c), req.Overwrite, req.ValidateOnly)
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to import configuration", err))
		return
	}

	if result.Applied {
		cache.Invalidate(c.Request.Context(), cache.ActiveConfigKey)
	}
	if !result.Valid {
		httpx.FailErr(c, httpx.ErrParamIllegal("configuration bundle failed validation").WithData(result.Violations))
		return
	}

	httpx.OK(c, result)
}
