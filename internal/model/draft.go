package model

import (
	"time"

	"gorm.io/gorm"
)

// ProjectDraft 创建向导自动保存的草稿
type ProjectDraft struct {
	ID        string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	CompanyID string `json:"company_id" gorm:"not null;index"`
	CreatedBy string `json:"created_by"`

	Step int `json:"step"` // 最后停留的向导步骤 1-5
	// Payload 表单的部分状态，JSON原样保存
	Payload     string    `json:"payload" gorm:"type:text"`
	LastSavedAt time.Time `json:"last_saved_at"`
}
