package model

import (
	"time"

	"gorm.io/gorm"
)

// NGOCandidate 项目候选NGO
type NGOCandidate struct {
	ID        string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	ProjectID string `json:"project_id" gorm:"not null;index"`

	Name    string  `json:"name" gorm:"not null"`
	City    string  `json:"city"`
	Focus   string  `json:"focus"` // 机构专注领域
	Score   float64 `json:"score"` // 尽调评分 0-100
	Contact string  `json:"contact"`

	Status NGOStatus `json:"status" gorm:"default:'pending'"`

	// 批准后挂接到项目时填写
	Role             NGORole    `json:"role,omitempty"`
	Responsibilities string     `json:"responsibilities,omitempty" gorm:"type:text"`
	BudgetAllocation float64    `json:"budget_allocation,omitempty"`
	AttachedAt       *time.Time `json:"attached_at,omitempty"`
}

// NGOStatus 候选NGO审核状态
type NGOStatus string

const (
	NGOStatusPending  NGOStatus = "pending"  // 待审核
	NGOStatusApproved NGOStatus = "approved" // 已批准
	NGOStatusRejected NGOStatus = "rejected" // 已拒绝
)

// NGORole NGO在项目中的角色
type NGORole string

const (
	NGORoleLead    NGORole = "lead"    // 主导方
	NGORolePartner NGORole = "partner" // 合作方
)
