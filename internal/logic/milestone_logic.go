package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wasilah/csr/internal/model"
	"gorm.io/gorm"
)

// ErrEvidenceRequired 里程碑要求佐证材料时，未挂接材料不能标记完成
var ErrEvidenceRequired = errors.New("该里程碑需要先上传佐证材料才能标记完成")

// MilestoneLogic 里程碑业务逻辑
type MilestoneLogic struct {
	db *gorm.DB
}

// NewMilestoneLogic 创建里程碑业务逻辑
func NewMilestoneLogic(db *gorm.DB) *MilestoneLogic {
	return &MilestoneLogic{db: db}
}

// ListMilestones 项目下的里程碑，按手动排序位置返回
func (m *MilestoneLogic) ListMilestones(projectID string) ([]model.Milestone, error) {
	var milestones []model.Milestone
	if err := m.db.Where("project_id = ?", projectID).
		Order("display_order ASC, created_at ASC").Find(&milestones).Error; err != nil {
		return nil, fmt.Errorf("获取里程碑列表失败: %w", err)
	}
	return milestones, nil
}

// CreateMilestone 创建里程碑，排在当前列表末尾
func (m *MilestoneLogic) CreateMilestone(milestone *model.Milestone) error {
	if milestone.Title == "" {
		return errors.New("里程碑标题不能为空")
	}

	var maxOrder int
	m.db.Model(&model.Milestone{}).
		Where("project_id = ?", milestone.ProjectID).
		Select("COALESCE(MAX(display_order), 0)").Scan(&maxOrder)

	milestone.ID = uuid.NewString()
	milestone.Order = maxOrder + 1
	milestone.Status = model.MilestoneStatusPlanned
	if err := m.db.Create(milestone).Error; err != nil {
		return fmt.Errorf("创建里程碑失败: %w", err)
	}
	return nil
}

// StartMilestone 已规划 -> 进行中
func (m *MilestoneLogic) StartMilestone(id string) error {
	milestone, err := m.get(id)
	if err != nil {
		return err
	}
	if milestone.Status != model.MilestoneStatusPlanned {
		return fmt.Errorf("里程碑当前状态为%s，无法开始", milestone.Status)
	}
	if err := m.db.Model(milestone).Update("status", model.MilestoneStatusOngoing).Error; err != nil {
		return fmt.Errorf("更新里程碑状态失败: %w", err)
	}
	return nil
}

// CanComplete 完成前置校验：要求佐证的里程碑必须已挂接材料
func CanComplete(milestone *model.Milestone) error {
	if milestone.Status == model.MilestoneStatusCompleted {
		return errors.New("里程碑已完成")
	}
	if milestone.EvidenceRequired && len(milestone.EvidenceIDs) == 0 {
		return ErrEvidenceRequired
	}
	return nil
}

// CompleteMilestone 标记完成
func (m *MilestoneLogic) CompleteMilestone(id string) error {
	milestone, err := m.get(id)
	if err != nil {
		return err
	}
	if err := CanComplete(milestone); err != nil {
		return err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":       model.MilestoneStatusCompleted,
		"completed_at": &now,
	}
	if err := m.db.Model(milestone).Updates(updates).Error; err != nil {
		return fmt.Errorf("更新里程碑状态失败: %w", err)
	}
	return nil
}

// AttachEvidence 挂接佐证材料（上传成功的文件引用）
func (m *MilestoneLogic) AttachEvidence(id string, evidenceIDs []string) error {
	if len(evidenceIDs) == 0 {
		return errors.New("佐证材料不能为空")
	}
	milestone, err := m.get(id)
	if err != nil {
		return err
	}

	merged := append(milestone.EvidenceIDs, evidenceIDs...)
	if err := m.db.Model(milestone).Update("evidence_ids", merged).Error; err != nil {
		return fmt.Errorf("挂接佐证材料失败: %w", err)
	}
	return nil
}

// Reorder 按给定ID顺序持久化手动排序。
// ids必须恰好覆盖项目下的全部里程碑。
func (m *MilestoneLogic) Reorder(projectID string, ids []string) error {
	milestones, err := m.ListMilestones(projectID)
	if err != nil {
		return err
	}
	if len(ids) != len(milestones) {
		return fmt.Errorf("排序列表数量不匹配: 期望%d个，实际%d个", len(milestones), len(ids))
	}
	known := make(map[string]bool, len(milestones))
	for _, ms := range milestones {
		known[ms.ID] = true
	}
	for _, id := range ids {
		if !known[id] {
			return fmt.Errorf("里程碑不属于该项目: %s", id)
		}
	}

	return m.db.Transaction(func(tx *gorm.DB) error {
		for i, id := range ids {
			if err := tx.Model(&model.Milestone{}).
				Where("id = ?", id).
				Update("display_order", i+1).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (m *MilestoneLogic) get(id string) (*model.Milestone, error) {
	var milestone model.Milestone
	if err := m.db.First(&milestone, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("里程碑不存在")
		}
		return nil, fmt.Errorf("获取里程碑失败: %w", err)
	}
	return &milestone, nil
}
