package task

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/wasilah/csr/internal/config"
	"github.com/wasilah/csr/internal/logger"
	"github.com/wasilah/csr/internal/model"
	"gorm.io/gorm"
)

// ProjectLifecycleJob 项目生命周期任务：
// 进行中且已过结束日期的项目自动转为已完成。
type ProjectLifecycleJob struct {
	db     *gorm.DB
	config *config.Config
}

// NewProjectLifecycleJob 创建项目生命周期任务
func NewProjectLifecycleJob(db *gorm.DB, cfg *config.Config) *ProjectLifecycleJob {
	return &ProjectLifecycleJob{
		db:     db,
		config: cfg,
	}
}

// GetName 获取任务名称
func (j *ProjectLifecycleJob) GetName() string {
	return "project_lifecycle_updater"
}

// GetSchedule 获取调度配置
func (j *ProjectLifecycleJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Scheduler.Interval) * time.Second)
}

// Execute 执行任务
func (j *ProjectLifecycleJob) Execute() {
	now := time.Now()

	result := j.db.Model(&model.Project{}).
		Where("status = ? AND end_date <= ?", model.ProjectStatusActive, now).
		Update("status", model.ProjectStatusCompleted)
	if result.Error != nil {
		logger.Error("Failed to complete expired projects: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		logger.Info("Project lifecycle task completed %d expired projects", result.RowsAffected)
	}
}
