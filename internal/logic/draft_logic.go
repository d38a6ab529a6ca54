package logic

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/wasilah/csr/internal/logger"
	"github.com/wasilah/csr/internal/model"
	"github.com/wasilah/csr/internal/wizard"
	"gorm.io/gorm"
)

// DraftLogic 草稿持久化，作为向导的保存协作方
type DraftLogic struct {
	db *gorm.DB
}

// NewDraftLogic 创建草稿业务逻辑
func NewDraftLogic(db *gorm.DB) *DraftLogic {
	return &DraftLogic{db: db}
}

// SaveDraft 实现 wizard.DraftSaver，按会话ID覆盖保存
func (d *DraftLogic) SaveDraft(snapshot wizard.DraftSnapshot) error {
	payload, err := json.Marshal(snapshot.Form)
	if err != nil {
		return fmt.Errorf("序列化草稿失败: %w", err)
	}

	draft := model.ProjectDraft{
		ID:          snapshot.SessionID,
		CompanyID:   snapshot.CompanyID,
		CreatedBy:   snapshot.CreatedBy,
		Step:        int(snapshot.Step),
		Payload:     string(payload),
		LastSavedAt: snapshot.SavedAt,
	}

	// 同一会话反复保存时覆盖
	err = d.db.Where("id = ?", draft.ID).
		Assign(map[string]interface{}{
			"step":          draft.Step,
			"payload":       draft.Payload,
			"last_saved_at": draft.LastSavedAt,
		}).
		FirstOrCreate(&draft).Error
	if err != nil {
		return fmt.Errorf("保存草稿失败: %w", err)
	}
	return nil
}

// ListDrafts 公司下的全部草稿
func (d *DraftLogic) ListDrafts(companyID string) ([]model.ProjectDraft, error) {
	var drafts []model.ProjectDraft
	if err := d.db.Where("company_id = ?", companyID).
		Order("last_saved_at DESC").Find(&drafts).Error; err != nil {
		return nil, fmt.Errorf("获取草稿列表失败: %w", err)
	}
	return drafts, nil
}

// GetDraft 获取草稿
func (d *DraftLogic) GetDraft(id string) (*model.ProjectDraft, error) {
	var draft model.ProjectDraft
	if err := d.db.First(&draft, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("草稿不存在")
		}
		return nil, fmt.Errorf("获取草稿失败: %w", err)
	}
	return &draft, nil
}

// DeleteDraft 删除草稿（提交成功或显式丢弃后）
func (d *DraftLogic) DeleteDraft(id string) error {
	return d.db.Delete(&model.ProjectDraft{}, "id = ?", id).Error
}

// CleanupStale 清理闲置超过ttl的草稿，返回清理数量
func (d *DraftLogic) CleanupStale(ttl time.Duration) (int64, error) {
	cutoff := time.Now().Add(-ttl)
	result := d.db.Where("last_saved_at < ?", cutoff).Delete(&model.ProjectDraft{})
	if result.Error != nil {
		return 0, fmt.Errorf("清理过期草稿失败: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		logger.Info("cleaned up %d stale drafts", result.RowsAffected)
	}
	return result.RowsAffected, nil
}
