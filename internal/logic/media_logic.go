package logic

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/wasilah/csr/internal/model"
	"gorm.io/gorm"
)

// MediaLogic 媒体素材业务逻辑
type MediaLogic struct {
	db *gorm.DB
}

// NewMediaLogic 创建媒体业务逻辑
func NewMediaLogic(db *gorm.DB) *MediaLogic {
	return &MediaLogic{db: db}
}

// MediaListOptions 按类型、标签、可见性筛选，取交集
type MediaListOptions struct {
	Type       string `form:"type"`
	Tag        string `form:"tag"`
	Permission string `form:"permission"`
}

// ListMedia 项目下的媒体素材
func (m *MediaLogic) ListMedia(projectID string, opts MediaListOptions) ([]model.MediaItem, error) {
	var items []model.MediaItem
	db := m.db.Where("project_id = ?", projectID)
	if opts.Type != "" {
		db = db.Where("type = ?", opts.Type)
	}
	if opts.Permission != "" {
		db = db.Where("permission = ?", opts.Permission)
	}
	if err := db.Order("uploaded_at DESC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("获取媒体列表失败: %w", err)
	}

	// 标签存JSON，内存中过滤
	if opts.Tag != "" {
		filtered := items[:0]
		for _, item := range items {
			if item.HasTag(opts.Tag) {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}
	return items, nil
}

// AddMedia 登记一条媒体素材（文件本体由上传批次模拟）
func (m *MediaLogic) AddMedia(item *model.MediaItem) error {
	if item.FileName == "" {
		return fmt.Errorf("文件名不能为空")
	}
	item.ID = uuid.NewString()
	if err := m.db.Create(item).Error; err != nil {
		return fmt.Errorf("登记媒体素材失败: %w", err)
	}
	return nil
}
