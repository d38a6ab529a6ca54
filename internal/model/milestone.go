package model

import (
	"time"

	"gorm.io/gorm"
)

// Milestone 项目里程碑
type Milestone struct {
	ID        string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	ProjectID string `json:"project_id" gorm:"not null;index"`

	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description" gorm:"type:text"`
	TargetDate  time.Time  `json:"target_date"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Order       int        `json:"order" gorm:"column:display_order"` // 手动排序位置

	// EvidenceRequired 为真时，必须先挂接佐证材料才能标记完成
	EvidenceRequired bool     `json:"evidence_required" gorm:"default:false"`
	EvidenceIDs      []string `json:"evidence_ids" gorm:"serializer:json"`

	Status MilestoneStatus `json:"status" gorm:"default:'planned'"`
}

// MilestoneStatus 里程碑状态
type MilestoneStatus string

const (
	MilestoneStatusPlanned   MilestoneStatus = "planned"   // 已规划
	MilestoneStatusOngoing   MilestoneStatus = "ongoing"   // 进行中
	MilestoneStatusCompleted MilestoneStatus = "completed" // 已完成
)
