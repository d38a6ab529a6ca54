package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wasilah/csr/internal/logic"
	"github.com/wasilah/csr/internal/model"
	"gorm.io/gorm"
)

// NGOHandler NGO合作方处理器
type NGOHandler struct {
	ngoLogic *logic.NGOLogic
}

func NewNGOHandler(db *gorm.DB) *NGOHandler {
	return &NGOHandler{
		ngoLogic: logic.NewNGOLogic(db),
	}
}

// GetCandidates 获取项目下的候选NGO
func (h *NGOHandler) GetCandidates(c *gin.Context) {
	var opts logic.NGOListOptions
	if err := c.ShouldBindQuery(&opts); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	candidates, err := h.ngoLogic.ListCandidates(c.Param("id"), opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"candidates": candidates})
}

// AddCandidate 添加候选NGO
func (h *NGOHandler) AddCandidate(c *gin.Context) {
	var candidate model.NGOCandidate
	if err := c.ShouldBindJSON(&candidate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	candidate.ProjectID = c.Param("id")

	if err := h.ngoLogic.AddCandidate(&candidate); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":   "候选NGO已添加",
		"candidate": candidate,
	})
}

// ApproveCandidate 批准候选NGO
func (h *NGOHandler) ApproveCandidate(c *gin.Context) {
	if err := h.ngoLogic.ApproveCandidate(c.Param("ngo_id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "候选NGO已批准"})
}

// RejectCandidate 拒绝候选NGO
func (h *NGOHandler) RejectCandidate(c *gin.Context) {
	if err := h.ngoLogic.RejectCandidate(c.Param("ngo_id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "候选NGO已拒绝"})
}

// AttachCandidate 将已批准的NGO挂接到项目
func (h *NGOHandler) AttachCandidate(c *gin.Context) {
	var req logic.AttachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.ngoLogic.AttachCandidate(c.Param("ngo_id"), req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "NGO已挂接到项目"})
}
