package model

import (
	"time"

	"gorm.io/gorm"
)

// ImpactReport 影响力报告生成任务
type ImpactReport struct {
	ID        string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	ProjectID string `json:"project_id" gorm:"not null;index"`

	Kind        string     `json:"kind"`     // quarterly / annual / custom
	Progress    int        `json:"progress"` // 生成进度 0-100
	RequestedAt time.Time  `json:"requested_at"`
	ReadyAt     *time.Time `json:"ready_at,omitempty"`

	Status ReportStatus `json:"status" gorm:"default:'generating'"`
}

// ReportStatus 报告生成状态
type ReportStatus string

const (
	ReportStatusGenerating ReportStatus = "generating" // 生成中
	ReportStatusReady      ReportStatus = "ready"      // 已就绪
)
