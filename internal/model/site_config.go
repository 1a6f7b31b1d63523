package model

import (
	"gorm.io/datatypes"
)

// SiteConfig 站点配置文档
// 同一时刻至多一份 isActive=true 的配置被视为当前配置；
// 写路径先将全部配置置为非激活，再创建或更新激活的那一份。
type SiteConfig struct {
	BaseModel
	IsActive bool              `gorm:"not null;default:true;index" json:"isActive"`
	Data     datatypes.JSONMap `gorm:"type:json;not null" json:"data"` // 顶层按板块分键（branding、colors 等）
}

// TableName 指定表名
func (SiteConfig) TableName() string {
	return "site_configs"
}
