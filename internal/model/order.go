package model

import (
	"time"

	"gorm.io/datatypes"
)

// Tranche status constants
const (
	TrancheStatusPending = "pending"
	TrancheStatusPaid    = "paid"
	TrancheStatusOverdue = "overdue"
	TrancheStatusFailed  = "failed"
)

// Product class constants
const (
	ProductClassStandard = "standard"
	ProductClassPremium  = "premium"
)

// Payment mode constants
const (
	PaymentModeFull        = "full"
	PaymentModeInstallment = "installment"
)

// Installment 两期付款计划（内嵌在订单中）
// 不变量：FirstAmount + SecondAmount == 订单小计，分毫不差
type Installment struct {
	FirstAmount  int64      `gorm:"not null;default:0" json:"firstAmount"`
	SecondAmount int64      `gorm:"not null;default:0" json:"secondAmount"`
	FirstStatus  string     `gorm:"type:varchar(20);not null;default:'pending'" json:"firstStatus"`
	SecondStatus string     `gorm:"type:varchar(20);not null;default:'pending'" json:"secondStatus"`
	SecondDueAt  *time.Time `gorm:"default:null" json:"secondDueAt"`
}

// Order 订单
type Order struct {
	BaseModel
	Reference    string `gorm:"type:varchar(64);uniqueIndex:uk_orders_reference;not null" json:"reference"`
	CampaignID   int    `gorm:"not null;index" json:"campaignId"`
	CampaignSlug string `gorm:"type:varchar(128);not null;index" json:"campaignSlug"`

	// 买家申报信息（下单时的自述，资格校验依据）
	BuyerName         string `gorm:"type:varchar(255);not null" json:"buyerName"`
	BuyerPhone        string `gorm:"type:varchar(32)" json:"buyerPhone"`
	IsMember          bool   `gorm:"not null;default:false" json:"isMember"`
	HasInsurance      bool   `gorm:"not null;default:false" json:"hasInsurance"`
	InsuranceProvider string `gorm:"type:varchar(128)" json:"insuranceProvider"`

	ProductClass string `gorm:"type:enum('standard','premium');not null" json:"productClass"`
	Quantity     int    `gorm:"not null" json:"quantity"`
	Subtotal     int64  `gorm:"not null" json:"subtotal"`

	PaymentMode string      `gorm:"type:enum('full','installment');not null;default:'full'" json:"paymentMode"`
	Installment Installment `gorm:"embedded;embeddedPrefix:inst_" json:"installment"`

	// 下单时刻的资格评估快照（仅在此处落库）
	EligibilitySnapshot datatypes.JSON `gorm:"type:json" json:"eligibilitySnapshot"`
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// SecondTrancheOverdue reports whether the second tranche is past due and
// still unpaid. Breach is computed at read time, never stored as a transition.
func (o *Order) SecondTrancheOverdue(now time.Time) bool {
	if o.PaymentMode != PaymentModeInstallment {
		return false
	}
	if o.Installment.SecondStatus != TrancheStatusPending {
		return false
	}
	return o.Installment.SecondDueAt != nil && now.After(*o.Installment.SecondDueAt)
}
