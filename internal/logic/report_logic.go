package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wasilah/csr/internal/logger"
	"github.com/wasilah/csr/internal/model"
	"gorm.io/gorm"
)

// ReportLogic 影响力报告业务逻辑
type ReportLogic struct {
	db *gorm.DB
}

// NewReportLogic 创建报告业务逻辑
func NewReportLogic(db *gorm.DB) *ReportLogic {
	return &ReportLogic{db: db}
}

// StartReport 发起一次报告生成，进度从0开始由后台任务推进
func (r *ReportLogic) StartReport(projectID, kind string) (*model.ImpactReport, error) {
	if kind == "" {
		kind = "custom"
	}
	report := &model.ImpactReport{
		ID:          uuid.NewString(),
		ProjectID:   projectID,
		Kind:        kind,
		Progress:    0,
		RequestedAt: time.Now(),
		Status:      model.ReportStatusGenerating,
	}
	if err := r.db.Create(report).Error; err != nil {
		return nil, fmt.Errorf("发起报告生成失败: %w", err)
	}
	return report, nil
}

// ListReports 项目下的报告，按生成中/已就绪分组
func (r *ReportLogic) ListReports(projectID string) (generating, ready []model.ImpactReport, err error) {
	var reports []model.ImpactReport
	if err := r.db.Where("project_id = ?", projectID).
		Order("requested_at DESC").Find(&reports).Error; err != nil {
		return nil, nil, fmt.Errorf("获取报告列表失败: %w", err)
	}

	for _, report := range reports {
		if report.Status == model.ReportStatusReady {
			ready = append(ready, report)
		} else {
			generating = append(generating, report)
		}
	}
	return generating, ready, nil
}

// GetReport 获取报告
func (r *ReportLogic) GetReport(id string) (*model.ImpactReport, error) {
	var report model.ImpactReport
	if err := r.db.First(&report, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("报告不存在")
		}
		return nil, fmt.Errorf("获取报告失败: %w", err)
	}
	return &report, nil
}

// AdvanceGenerating 推进所有生成中的报告，满100转为就绪。
// 后台任务按固定间隔调用，返回本轮就绪的数量。
func (r *ReportLogic) AdvanceGenerating(increment int) (int64, error) {
	if increment <= 0 {
		increment = 10
	}

	var reports []model.ImpactReport
	if err := r.db.Where("status = ?", model.ReportStatusGenerating).
		Find(&reports).Error; err != nil {
		return 0, fmt.Errorf("获取生成中的报告失败: %w", err)
	}

	var readyCount int64
	for _, report := range reports {
		progress := report.Progress + increment
		updates := map[string]interface{}{"progress": progress}
		if progress >= 100 {
			now := time.Now()
			updates["progress"] = 100
			updates["status"] = model.ReportStatusReady
			updates["ready_at"] = &now
			readyCount++
		}
		if err := r.db.Model(&report).Updates(updates).Error; err != nil {
			logger.Error("failed to advance report %s: %v", report.ID, err)
			continue
		}
	}

	if readyCount > 0 {
		logger.Info("%d impact reports became ready", readyCount)
	}
	return readyCount, nil
}

// ProjectKPIs 项目KPI汇总，影响力标签页的只读数据
func (r *ReportLogic) ProjectKPIs(projectID string) (map[string]interface{}, error) {
	var volunteerCount int64
	r.db.Model(&model.VolunteerApplication{}).
		Where("project_id = ? AND status IN ?", projectID,
			[]model.VolunteerStatus{model.VolunteerStatusAccepted, model.VolunteerStatusCompleted}).
		Count(&volunteerCount)

	var milestonesDone int64
	r.db.Model(&model.Milestone{}).
		Where("project_id = ? AND status = ?", projectID, model.MilestoneStatusCompleted).
		Count(&milestonesDone)

	var spent float64
	r.db.Model(&model.Invoice{}).
		Where("project_id = ? AND status = ?", projectID, model.InvoiceStatusPaid).
		Select("COALESCE(SUM(amount), 0)").Scan(&spent)

	return map[string]interface{}{
		"volunteers_engaged":   volunteerCount,
		"milestones_completed": milestonesDone,
		"amount_spent":         spent,
	}, nil
}
