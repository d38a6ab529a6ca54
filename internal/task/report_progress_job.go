package task

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/wasilah/csr/internal/config"
	"github.com/wasilah/csr/internal/logger"
	"github.com/wasilah/csr/internal/logic"
	"gorm.io/gorm"
)

// ReportProgressJob 报告生成推进任务。
// 报告生成是异步的，每轮按固定百分比推进，满100%转为就绪。
type ReportProgressJob struct {
	reportLogic *logic.ReportLogic
	config      *config.Config
}

// NewReportProgressJob 创建报告推进任务
func NewReportProgressJob(db *gorm.DB, cfg *config.Config) *ReportProgressJob {
	return &ReportProgressJob{
		reportLogic: logic.NewReportLogic(db),
		config:      cfg,
	}
}

// GetName 获取任务名称
func (j *ReportProgressJob) GetName() string {
	return "report_progress_advancer"
}

// GetSchedule 获取调度配置
func (j *ReportProgressJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Scheduler.Interval) * time.Second)
}

// Execute 执行任务
func (j *ReportProgressJob) Execute() {
	advanced, err := j.reportLogic.AdvanceGenerating(j.config.Scheduler.ReportIncrement)
	if err != nil {
		logger.Error("Failed to advance report generation: %v", err)
		return
	}
	if advanced > 0 {
		logger.Info("Advanced %d generating reports by %d%%", advanced, j.config.Scheduler.ReportIncrement)
	}
}
