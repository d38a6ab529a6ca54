package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wasilah/csr/internal/logic"
	"github.com/wasilah/csr/internal/model"
	"gorm.io/gorm"
)

// MilestoneHandler 里程碑处理器
type MilestoneHandler struct {
	milestoneLogic *logic.MilestoneLogic
}

func NewMilestoneHandler(db *gorm.DB) *MilestoneHandler {
	return &MilestoneHandler{
		milestoneLogic: logic.NewMilestoneLogic(db),
	}
}

// GetMilestones 获取项目下的里程碑
func (h *MilestoneHandler) GetMilestones(c *gin.Context) {
	milestones, err := h.milestoneLogic.ListMilestones(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"milestones": milestones})
}

// CreateMilestone 创建里程碑
func (h *MilestoneHandler) CreateMilestone(c *gin.Context) {
	var milestone model.Milestone
	if err := c.ShouldBindJSON(&milestone); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	milestone.ProjectID = c.Param("id")

	if err := h.milestoneLogic.CreateMilestone(&milestone); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":   "里程碑已创建",
		"milestone": milestone,
	})
}

// StartMilestone 里程碑进入进行中
func (h *MilestoneHandler) StartMilestone(c *gin.Context) {
	if err := h.milestoneLogic.StartMilestone(c.Param("ms_id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "里程碑已开始"})
}

// CompleteMilestone 标记里程碑完成，要求佐证的须先挂接材料
func (h *MilestoneHandler) CompleteMilestone(c *gin.Context) {
	if err := h.milestoneLogic.CompleteMilestone(c.Param("ms_id")); err != nil {
		if errors.Is(err, logic.ErrEvidenceRequired) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "里程碑已完成"})
}

// AttachEvidence 挂接佐证材料
func (h *MilestoneHandler) AttachEvidence(c *gin.Context) {
	var req struct {
		EvidenceIDs []string `json:"evidence_ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.milestoneLogic.AttachEvidence(c.Param("ms_id"), req.EvidenceIDs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "佐证材料已挂接"})
}

// ReorderMilestones 持久化手动排序
func (h *MilestoneHandler) ReorderMilestones(c *gin.Context) {
	var req struct {
		IDs []string `json:"ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.milestoneLogic.Reorder(c.Param("id"), req.IDs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "排序已保存"})
}
