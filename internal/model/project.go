package model

import (
	"time"

	"gorm.io/gorm"
)

// Project CSR公益项目模型
type Project struct {
	ID        string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	// 归属信息
	CompanyID string `json:"company_id" gorm:"not null;uniqueIndex:idx_company_slug;index"`
	Slug      string `json:"slug" gorm:"not null;uniqueIndex:idx_company_slug"`
	CreatedBy string `json:"created_by"`

	// 基本信息
	Title            string      `json:"title" gorm:"not null" binding:"required"`
	ShortDescription string      `json:"short_description" gorm:"type:text"`
	Type             ProjectType `json:"type" gorm:"default:'other'"`
	SDGs             []int       `json:"sdgs" gorm:"serializer:json"`

	// 执行信息
	Location        Location     `json:"location" gorm:"embedded;embeddedPrefix:location_"`
	StartDate       time.Time    `json:"start_date"`
	EndDate         time.Time    `json:"end_date"`
	VolunteerTarget int          `json:"volunteer_target" gorm:"default:0"`
	DeliveryMode    DeliveryMode `json:"delivery_mode" gorm:"default:'on-ground'"`

	// 预算信息
	Budget          float64      `json:"budget"`
	BudgetBreakdown []BudgetLine `json:"budget_breakdown" gorm:"serializer:json"`
	Approvers       []Approver   `json:"approvers" gorm:"serializer:json"`

	// 媒体引用（仅保存上传成功的文件ID）
	MediaIDs    []string `json:"media_ids" gorm:"serializer:json"`
	DocumentIDs []string `json:"document_ids" gorm:"serializer:json"`

	// 状态
	Status ProjectStatus `json:"status" gorm:"default:'draft'"`
	// PrevStatus 归档前的状态，取消归档时恢复
	PrevStatus ProjectStatus `json:"prev_status,omitempty"`
}

// Location 项目地点
type Location struct {
	Country string `json:"country"`
	City    string `json:"city"`
	Address string `json:"address,omitempty"`
}

// BudgetLine 预算明细行
type BudgetLine struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Notes    string  `json:"notes,omitempty"`
}

// Approver 预算审批人
type Approver struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProjectStatus 项目状态
type ProjectStatus string

const (
	ProjectStatusDraft     ProjectStatus = "draft"     // 草稿
	ProjectStatusPending   ProjectStatus = "pending"   // 待审核
	ProjectStatusActive    ProjectStatus = "active"    // 进行中
	ProjectStatusCompleted ProjectStatus = "completed" // 已完成
	ProjectStatusArchived  ProjectStatus = "archived"  // 已归档
)

// ProjectType 项目类型
type ProjectType string

const (
	ProjectTypeEducation   ProjectType = "education"   // 教育
	ProjectTypeHealth      ProjectType = "health"      // 健康
	ProjectTypeEnvironment ProjectType = "environment" // 环境
	ProjectTypeOther       ProjectType = "other"       // 其他
)

// DeliveryMode 执行方式
type DeliveryMode string

const (
	DeliveryModeOnGround DeliveryMode = "on-ground" // 线下
	DeliveryModeRemote   DeliveryMode = "remote"    // 远程
	DeliveryModeHybrid   DeliveryMode = "hybrid"    // 混合
)

// BreakdownTotal 预算明细合计
func (p *Project) BreakdownTotal() float64 {
	var total float64
	for _, line := range p.BudgetBreakdown {
		total += line.Amount
	}
	return total
}

// HasSDG 项目是否包含指定SDG
func (p *Project) HasSDG(id int) bool {
	for _, s := range p.SDGs {
		if s == id {
			return true
		}
	}
	return false
}
