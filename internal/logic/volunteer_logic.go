package logic

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wasilah/csr/internal/export"
	"github.com/wasilah/csr/internal/logger"
	"github.com/wasilah/csr/internal/model"
	"gorm.io/gorm"
)

// VolunteerLogic 志愿者申请业务逻辑
type VolunteerLogic struct {
	db *gorm.DB
}

// NewVolunteerLogic 创建志愿者业务逻辑
func NewVolunteerLogic(db *gorm.DB) *VolunteerLogic {
	return &VolunteerLogic{db: db}
}

// VolunteerListOptions 搜索、日期区间、技能筛选，全部取交集
type VolunteerListOptions struct {
	Search string     `form:"search"`
	From   *time.Time `form:"from" time_format:"2006-01-02"`
	To     *time.Time `form:"to" time_format:"2006-01-02"`
	Skill  string     `form:"skill"`
	Status string     `form:"status"`
}

// ListApplications 项目下的志愿者申请
func (v *VolunteerLogic) ListApplications(projectID string, opts VolunteerListOptions) ([]model.VolunteerApplication, error) {
	var apps []model.VolunteerApplication
	db := v.db.Where("project_id = ?", projectID)
	if opts.Status != "" {
		db = db.Where("status = ?", opts.Status)
	}
	if opts.From != nil {
		db = db.Where("applied_at >= ?", *opts.From)
	}
	if opts.To != nil {
		db = db.Where("applied_at <= ?", *opts.To)
	}
	if err := db.Order("applied_at ASC").Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("获取志愿者申请列表失败: %w", err)
	}

	// 搜索和技能筛选在内存中完成，技能列以JSON存储
	if opts.Search != "" {
		q := strings.ToLower(opts.Search)
		filtered := apps[:0]
		for _, a := range apps {
			if strings.Contains(strings.ToLower(a.Name), q) ||
				strings.Contains(strings.ToLower(a.Email), q) ||
				strings.Contains(strings.ToLower(a.University), q) {
				filtered = append(filtered, a)
			}
		}
		apps = filtered
	}
	if opts.Skill != "" {
		skill := strings.ToLower(opts.Skill)
		filtered := apps[:0]
		for _, a := range apps {
			for _, s := range a.Skills {
				if strings.ToLower(s) == skill {
					filtered = append(filtered, a)
					break
				}
			}
		}
		apps = filtered
	}
	return apps, nil
}

// AcceptApplication 录取单个申请
func (v *VolunteerLogic) AcceptApplication(id string) error {
	return v.transition(id, model.VolunteerStatusApplied, model.VolunteerStatusAccepted)
}

// RejectApplication 拒绝单个申请
func (v *VolunteerLogic) RejectApplication(id string) error {
	return v.transition(id, model.VolunteerStatusApplied, model.VolunteerStatusRejected)
}

// CompleteApplication 标记志愿者完成服务
func (v *VolunteerLogic) CompleteApplication(id string) error {
	return v.transition(id, model.VolunteerStatusAccepted, model.VolunteerStatusCompleted)
}

// BulkAccept 批量录取，只改动给定ID且当前为已报名的记录
func (v *VolunteerLogic) BulkAccept(ids []string) (int64, error) {
	return v.bulkTransition(ids, model.VolunteerStatusApplied, model.VolunteerStatusAccepted)
}

// BulkReject 批量拒绝
func (v *VolunteerLogic) BulkReject(ids []string) (int64, error) {
	return v.bulkTransition(ids, model.VolunteerStatusApplied, model.VolunteerStatusRejected)
}

// BulkMessage 批量发送消息。消息通道未接入，仅记录日志。
func (v *VolunteerLogic) BulkMessage(ids []string, message string) error {
	if len(ids) == 0 {
		return errors.New("未选择任何申请")
	}
	if message == "" {
		return errors.New("消息内容不能为空")
	}
	logger.Info("volunteer message queued for %d recipients: %s", len(ids), message)
	return nil
}

// ExportApplications 导出筛选后的志愿者申请CSV
func (v *VolunteerLogic) ExportApplications(projectID string, opts VolunteerListOptions) ([]byte, string, error) {
	apps, err := v.ListApplications(projectID, opts)
	if err != nil {
		return nil, "", err
	}
	data, err := export.VolunteersCSV(apps)
	if err != nil {
		return nil, "", err
	}
	return data, export.FileName("volunteers", time.Now()), nil
}

// AddApplication 添加报名申请
func (v *VolunteerLogic) AddApplication(app *model.VolunteerApplication) error {
	if app.Name == "" {
		return errors.New("志愿者姓名不能为空")
	}
	app.ID = uuid.NewString()
	app.Status = model.VolunteerStatusApplied
	if app.AppliedAt.IsZero() {
		app.AppliedAt = time.Now()
	}
	if err := v.db.Create(app).Error; err != nil {
		return fmt.Errorf("添加志愿者申请失败: %w", err)
	}
	return nil
}

func (v *VolunteerLogic) transition(id string, from, to model.VolunteerStatus) error {
	var app model.VolunteerApplication
	if err := v.db.First(&app, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("志愿者申请不存在")
		}
		return fmt.Errorf("获取志愿者申请失败: %w", err)
	}
	if app.Status != from {
		return fmt.Errorf("申请当前状态为%s，无法转为%s", app.Status, to)
	}
	if err := v.db.Model(&app).Update("status", to).Error; err != nil {
		return fmt.Errorf("更新志愿者申请状态失败: %w", err)
	}
	return nil
}

// EligibleForTransition 从勾选的申请中挑出当前处于from状态的，
// 未勾选或状态不符的记录不受批量操作影响
func EligibleForTransition(apps []model.VolunteerApplication, ids []string, from model.VolunteerStatus) []string {
	selected := make(map[string]bool, len(ids))
	for _, id := range ids {
		selected[id] = true
	}

	var eligible []string
	for _, a := range apps {
		if selected[a.ID] && a.Status == from {
			eligible = append(eligible, a.ID)
		}
	}
	return eligible
}

// bulkTransition 批量状态转移，只改动勾选且状态相符的记录
func (v *VolunteerLogic) bulkTransition(ids []string, from, to model.VolunteerStatus) (int64, error) {
	if len(ids) == 0 {
		return 0, errors.New("未选择任何申请")
	}

	var apps []model.VolunteerApplication
	if err := v.db.Where("id IN ?", ids).Find(&apps).Error; err != nil {
		return 0, fmt.Errorf("获取志愿者申请失败: %w", err)
	}
	eligible := EligibleForTransition(apps, ids, from)
	if len(eligible) == 0 {
		return 0, nil
	}

	result := v.db.Model(&model.VolunteerApplication{}).
		Where("id IN ?", eligible).
		Update("status", to)
	if result.Error != nil {
		return 0, fmt.Errorf("批量更新志愿者申请失败: %w", result.Error)
	}
	return result.RowsAffected, nil
}
