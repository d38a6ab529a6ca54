package model

import (
	"time"

	"gorm.io/gorm"
)

// VolunteerApplication 志愿者报名申请
type VolunteerApplication struct {
	ID        string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	ProjectID string `json:"project_id" gorm:"not null;index"`

	Name       string    `json:"name" gorm:"not null"`
	Email      string    `json:"email"`
	University string    `json:"university"`
	Skills     []string  `json:"skills" gorm:"serializer:json"`
	AppliedAt  time.Time `json:"applied_at"`

	Status VolunteerStatus `json:"status" gorm:"default:'applied'"`
}

// VolunteerStatus 志愿者申请状态
type VolunteerStatus string

const (
	VolunteerStatusApplied   VolunteerStatus = "applied"   // 已报名
	VolunteerStatusAccepted  VolunteerStatus = "accepted"  // 已录取
	VolunteerStatusRejected  VolunteerStatus = "rejected"  // 已拒绝
	VolunteerStatusCompleted VolunteerStatus = "completed" // 已完成服务
)

// HasSkill 申请人是否具备指定技能，不区分大小写由调用方保证
func (v *VolunteerApplication) HasSkill(skill string) bool {
	for _, s := range v.Skills {
		if s == skill {
			return true
		}
	}
	return false
}
