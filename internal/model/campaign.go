package model

import (
	"time"

	"gorm.io/datatypes"
)

// EligibilityPolicy 活动参与条件（全部可选，全关闭时任何买家都符合条件）
type EligibilityPolicy struct {
	RequireMembership      bool                         `gorm:"not null;default:false" json:"requireMembership"`      // 需要合作社会员身份
	RequireMutualInsurance bool                         `gorm:"not null;default:false" json:"requireMutualInsurance"` // 需要互助保险
	MinQuantity            int                          `gorm:"not null;default:0" json:"minQuantity"`                // 最低订购数量
	AcceptedInsurers       datatypes.JSONSlice[string]  `gorm:"type:json" json:"acceptedInsurers"`                    // 认可的保险机构（空=不限）
}

// PaymentScheme 分期付款方案（两期，百分比之和必须为 100）
type PaymentScheme struct {
	Enabled          bool   `gorm:"not null;default:false" json:"enabled"`
	FirstPercentage  int    `gorm:"not null;default:0" json:"firstPercentage"`
	SecondPercentage int    `gorm:"not null;default:0" json:"secondPercentage"`
	FirstLabel       string `gorm:"type:varchar(128)" json:"firstLabel"`
	SecondLabel      string `gorm:"type:varchar(128)" json:"secondLabel"`
}

// SpecialPricing 活动专属单价（两类商品，金额单位为最小货币单位）
type SpecialPricing struct {
	StandardUnitPrice int64 `gorm:"not null;default:0" json:"standardUnitPrice"`
	PremiumUnitPrice  int64 `gorm:"not null;default:0" json:"premiumUnitPrice"`
}

// CampaignStats 活动累计统计，只允许原子累加，禁止读改写
type CampaignStats struct {
	OrderCount  int64 `gorm:"not null;default:0" json:"orderCount"`
	QuantitySum int64 `gorm:"not null;default:0" json:"quantitySum"`
	RevenueSum  int64 `gorm:"not null;default:0" json:"revenueSum"`
}

// Campaign 促销活动
type Campaign struct {
	BaseModel
	Slug     string    `gorm:"type:varchar(128);uniqueIndex:uk_campaigns_slug;not null" json:"slug"` // 唯一标识
	Name     string    `gorm:"type:varchar(255);not null" json:"name"`
	StartsAt time.Time `gorm:"not null" json:"startsAt"`
	EndsAt   time.Time `gorm:"not null" json:"endsAt"`
	IsActive bool      `gorm:"not null;default:true;index" json:"isActive"` // 软下架，从不硬删除

	Eligibility EligibilityPolicy `gorm:"embedded;embeddedPrefix:elig_" json:"eligibility"`
	Payment     PaymentScheme     `gorm:"embedded;embeddedPrefix:pay_" json:"paymentScheme"`
	Pricing     SpecialPricing    `gorm:"embedded;embeddedPrefix:price_" json:"specialPricing"`
	Stats       CampaignStats     `gorm:"embedded;embeddedPrefix:stats_" json:"stats"`
}

// TableName 指定表名
func (Campaign) TableName() string {
	return "campaigns"
}

// IsOpen reports whether the campaign accepts orders at the given time.
func (c *Campaign) IsOpen(now time.Time) bool {
	return c.IsActive && !now.Before(c.StartsAt) && !now.After(c.EndsAt)
}
