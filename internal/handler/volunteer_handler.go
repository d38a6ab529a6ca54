package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wasilah/csr/internal/logic"
	"github.com/wasilah/csr/internal/model"
	"gorm.io/gorm"
)

// VolunteerHandler 志愿者申请处理器
type VolunteerHandler struct {
	volunteerLogic *logic.VolunteerLogic
}

func NewVolunteerHandler(db *gorm.DB) *VolunteerHandler {
	return &VolunteerHandler{
		volunteerLogic: logic.NewVolunteerLogic(db),
	}
}

// GetApplications 获取项目下的志愿者申请
func (h *VolunteerHandler) GetApplications(c *gin.Context) {
	var opts logic.VolunteerListOptions
	if err := c.ShouldBindQuery(&opts); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	apps, err := h.volunteerLogic.ListApplications(c.Param("id"), opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

// AddApplication 添加报名申请
func (h *VolunteerHandler) AddApplication(c *gin.Context) {
	var app model.VolunteerApplication
	if err := c.ShouldBindJSON(&app); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	app.ProjectID = c.Param("id")

	if err := h.volunteerLogic.AddApplication(&app); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":     "报名申请已添加",
		"application": app,
	})
}

// AcceptApplication 录取单个申请
func (h *VolunteerHandler) AcceptApplication(c *gin.Context) {
	if err := h.volunteerLogic.AcceptApplication(c.Param("app_id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "申请已录取"})
}

// RejectApplication 拒绝单个申请
func (h *VolunteerHandler) RejectApplication(c *gin.Context) {
	if err := h.volunteerLogic.RejectApplication(c.Param("app_id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "申请已拒绝"})
}

// CompleteApplication 标记志愿者完成服务
func (h *VolunteerHandler) CompleteApplication(c *gin.Context) {
	if err := h.volunteerLogic.CompleteApplication(c.Param("app_id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "志愿服务已完成"})
}

type bulkRequest struct {
	IDs     []string `json:"ids" binding:"required"`
	Message string   `json:"message"`
}

// BulkAccept 批量录取勾选的申请
func (h *VolunteerHandler) BulkAccept(c *gin.Context) {
	var req bulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	affected, err := h.volunteerLogic.BulkAccept(req.IDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "批量录取完成",
		"affected": affected,
	})
}

// BulkReject 批量拒绝勾选的申请
func (h *VolunteerHandler) BulkReject(c *gin.Context) {
	var req bulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	affected, err := h.volunteerLogic.BulkReject(req.IDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "批量拒绝完成",
		"affected": affected,
	})
}

// BulkMessage 批量发送消息
func (h *VolunteerHandler) BulkMessage(c *gin.Context) {
	var req bulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.volunteerLogic.BulkMessage(req.IDs, req.Message); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "消息已发送"})
}

// ExportApplications 导出筛选后的志愿者申请CSV
func (h *VolunteerHandler) ExportApplications(c *gin.Context) {
	var opts logic.VolunteerListOptions
	if err := c.ShouldBindQuery(&opts); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	data, filename, err := h.volunteerLogic.ExportApplications(c.Param("id"), opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	sendCSV(c, filename, data)
}
