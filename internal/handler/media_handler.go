package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wasilah/csr/internal/logic"
	"github.com/wasilah/csr/internal/model"
	"gorm.io/gorm"
)

// MediaHandler 媒体素材处理器
type MediaHandler struct {
	mediaLogic *logic.MediaLogic
}

func NewMediaHandler(db *gorm.DB) *MediaHandler {
	return &MediaHandler{
		mediaLogic: logic.NewMediaLogic(db),
	}
}

// GetMedia 获取项目下的媒体素材
func (h *MediaHandler) GetMedia(c *gin.Context) {
	var opts logic.MediaListOptions
	if err := c.ShouldBindQuery(&opts); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := h.mediaLogic.ListMedia(c.Param("id"), opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"media": items})
}

// AddMedia 添加媒体素材
func (h *MediaHandler) AddMedia(c *gin.Context) {
	var item model.MediaItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item.ProjectID = c.Param("id")

	if err := h.mediaLogic.AddMedia(&item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "媒体素材已添加",
		"media":   item,
	})
}
