package model

import (
	"time"

	"gorm.io/gorm"
)

// MediaItem 项目媒体素材
type MediaItem struct {
	ID        string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	ProjectID string `json:"project_id" gorm:"not null;index"`
	// MilestoneID 关联里程碑，可为空
	MilestoneID string `json:"milestone_id,omitempty" gorm:"index"`

	FileName   string          `json:"file_name" gorm:"not null"`
	Type       MediaType       `json:"type" gorm:"default:'image'"`
	Tags       []string        `json:"tags" gorm:"serializer:json"`
	Permission MediaPermission `json:"permission" gorm:"default:'internal'"`
	SizeBytes  int64           `json:"size_bytes"`
	UploadedAt time.Time       `json:"uploaded_at"`
}

// MediaType 素材类型
type MediaType string

const (
	MediaTypeImage    MediaType = "image"    // 图片
	MediaTypeVideo    MediaType = "video"    // 视频
	MediaTypeDocument MediaType = "document" // 文档
)

// MediaPermission 素材可见性
type MediaPermission string

const (
	MediaPermissionPublic   MediaPermission = "public"   // 公开
	MediaPermissionInternal MediaPermission = "internal" // 内部
)

// HasTag 素材是否带有指定标签
func (m *MediaItem) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
