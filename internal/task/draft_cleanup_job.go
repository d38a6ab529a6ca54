package task

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/wasilah/csr/internal/config"
	"github.com/wasilah/csr/internal/logger"
	"github.com/wasilah/csr/internal/logic"
	"gorm.io/gorm"
)

// DraftCleanupJob 清理长期未更新的向导草稿
type DraftCleanupJob struct {
	draftLogic *logic.DraftLogic
	config     *config.Config
}

// NewDraftCleanupJob 创建草稿清理任务
func NewDraftCleanupJob(db *gorm.DB, cfg *config.Config) *DraftCleanupJob {
	return &DraftCleanupJob{
		draftLogic: logic.NewDraftLogic(db),
		config:     cfg,
	}
}

// GetName 获取任务名称
func (j *DraftCleanupJob) GetName() string {
	return "draft_cleanup"
}

// GetSchedule 获取调度配置，清理频率远低于其他任务
func (j *DraftCleanupJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Hour)
}

// Execute 执行任务
func (j *DraftCleanupJob) Execute() {
	ttl := time.Duration(j.config.Scheduler.DraftTTLHours) * time.Hour

	removed, err := j.draftLogic.CleanupStale(ttl)
	if err != nil {
		logger.Error("Failed to cleanup stale drafts: %v", err)
		return
	}
	if removed > 0 {
		logger.Info("Draft cleanup removed %d stale drafts", removed)
	}
}
