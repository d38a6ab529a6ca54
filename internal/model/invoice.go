package model

import (
	"time"

	"gorm.io/gorm"
)

// Invoice 项目发票
type Invoice struct {
	ID        string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	ProjectID string `json:"project_id" gorm:"not null;index"`

	Number     string     `json:"number" gorm:"not null"`
	Vendor     string     `json:"vendor"`
	Amount     float64    `json:"amount"`
	EscrowHeld float64    `json:"escrow_held"` // 里程碑核验前暂扣金额
	IssuedAt   time.Time  `json:"issued_at"`
	PaidAt     *time.Time `json:"paid_at,omitempty"`

	Status InvoiceStatus `json:"status" gorm:"default:'draft'"`
}

// InvoiceStatus 发票状态
type InvoiceStatus string

const (
	InvoiceStatusDraft InvoiceStatus = "draft" // 草稿
	InvoiceStatusSent  InvoiceStatus = "sent"  // 已寄送
	InvoiceStatusPaid  InvoiceStatus = "paid"  // 已支付
)

// BudgetSummary 项目预算汇总，按发票列表实时计算
type BudgetSummary struct {
	Budget     float64 `json:"budget"`
	Spent      float64 `json:"spent"`       // 已支付发票合计
	Pending    float64 `json:"pending"`     // 已寄送未支付合计
	EscrowHeld float64 `json:"escrow_held"` // 未支付发票暂扣合计
	Remaining  float64 `json:"remaining"`
}
