package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wasilah/csr/internal/logic"
	"gorm.io/gorm"
)

// ReportHandler 影响力报告处理器
type ReportHandler struct {
	reportLogic *logic.ReportLogic
}

func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{
		reportLogic: logic.NewReportLogic(db),
	}
}

// GetReports 获取项目下的报告，按生成中/已就绪分组
func (h *ReportHandler) GetReports(c *gin.Context) {
	generating, ready, err := h.reportLogic.ListReports(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"generating": generating,
		"ready":      ready,
	})
}

// StartReport 发起报告生成
func (h *ReportHandler) StartReport(c *gin.Context) {
	var req struct {
		Kind string `json:"kind"`
	}
	// 请求体可为空，kind默认custom
	_ = c.ShouldBindJSON(&req)

	report, err := h.reportLogic.StartReport(c.Param("id"), req.Kind)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "报告生成中",
		"report":  report,
	})
}

// GetReport 获取单个报告
func (h *ReportHandler) GetReport(c *gin.Context) {
	report, err := h.reportLogic.GetReport(c.Param("report_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}

// GetProjectKPIs 获取项目关键指标
func (h *ReportHandler) GetProjectKPIs(c *gin.Context) {
	kpis, err := h.reportLogic.ProjectKPIs(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"kpis": kpis})
}
