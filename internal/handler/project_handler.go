package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wasilah/csr/internal/logic"
	"github.com/wasilah/csr/internal/model"
	"github.com/wasilah/csr/internal/query"
	"gorm.io/gorm"
)

type ProjectHandler struct {
	projectLogic *logic.ProjectLogic
}

func NewProjectHandler(db *gorm.DB) *ProjectHandler {
	return &ProjectHandler{
		projectLogic: logic.NewProjectLogic(db),
	}
}

// GetProjects 获取项目列表，支持筛选与分页
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	spec, err := parseFilterSpec(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 调用logic层获取项目列表
	result, err := h.projectLogic.ListProjects(companyID(c), spec, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects":  result.Items,
		"total":     result.Total,
		"page":      result.Page,
		"page_size": result.PageSize,
	})
}

// ExportProjects 按当前筛选条件导出CSV（不分页）
func (h *ProjectHandler) ExportProjects(c *gin.Context) {
	spec, err := parseFilterSpec(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	data, filename, err := h.projectLogic.ExportProjects(companyID(c), spec)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sendCSV(c, filename, data)
}

// GetProject 获取单个项目详情
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, err := h.projectLogic.GetProject(c.Param("id"))
	if err != nil {
		if errors.Is(err, logic.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": project})
}

// UpdateProject 更新项目
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	// 只允许更新特定字段
	var updateData struct {
		Title            *string  `json:"title"`
		ShortDescription *string  `json:"short_description"`
		Type             *string  `json:"type"`
		VolunteerTarget  *int     `json:"volunteer_target"`
		DeliveryMode     *string  `json:"delivery_mode"`
		Budget           *float64 `json:"budget"`
	}

	if err := c.ShouldBindJSON(&updateData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 更新字段
	updates := make(map[string]interface{})
	if updateData.Title != nil {
		updates["title"] = *updateData.Title
	}
	if updateData.ShortDescription != nil {
		updates["short_description"] = *updateData.ShortDescription
	}
	if updateData.Type != nil {
		updates["type"] = *updateData.Type
	}
	if updateData.VolunteerTarget != nil {
		updates["volunteer_target"] = *updateData.VolunteerTarget
	}
	if updateData.DeliveryMode != nil {
		updates["delivery_mode"] = *updateData.DeliveryMode
	}
	if updateData.Budget != nil {
		updates["budget"] = *updateData.Budget
	}

	if err := h.projectLogic.UpdateProject(c.Param("id"), updates); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "项目更新成功"})
}

// ApproveProject 审核通过
func (h *ProjectHandler) ApproveProject(c *gin.Context) {
	if err := h.projectLogic.ApproveProject(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "项目已通过审核"})
}

// RejectProject 审核拒绝，项目归档
func (h *ProjectHandler) RejectProject(c *gin.Context) {
	if err := h.projectLogic.RejectProject(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "项目已拒绝并归档"})
}

// SubmitForReview 草稿提交审核
func (h *ProjectHandler) SubmitForReview(c *gin.Context) {
	if err := h.projectLogic.SubmitForReview(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "项目已提交审核"})
}

// ArchiveProject 归档项目，需要显式确认
func (h *ProjectHandler) ArchiveProject(c *gin.Context) {
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "归档需要confirm=true确认"})
		return
	}
	if err := h.projectLogic.ArchiveProject(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "项目已归档"})
}

// BulkArchiveProjects 批量归档，需要显式确认
func (h *ProjectHandler) BulkArchiveProjects(c *gin.Context) {
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "归档需要confirm=true确认"})
		return
	}

	var req struct {
		IDs []string `json:"ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	archived, err := h.projectLogic.BulkArchive(req.IDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "批量归档完成",
		"archived": archived,
	})
}

// UnarchiveProject 取消归档，恢复归档前状态
func (h *ProjectHandler) UnarchiveProject(c *gin.Context) {
	if err := h.projectLogic.UnarchiveProject(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "项目已恢复"})
}

// DuplicateProject 复制项目
func (h *ProjectHandler) DuplicateProject(c *gin.Context) {
	project, err := h.projectLogic.DuplicateProject(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "项目复制成功",
		"project": project,
	})
}

// parseFilterSpec 从查询参数组装筛选条件
func parseFilterSpec(c *gin.Context) (query.Spec, error) {
	spec := query.Spec{
		Text: c.Query("q"),
		Sort: c.Query("sort"),
	}
	for _, s := range c.QueryArray("status") {
		spec.Statuses = append(spec.Statuses, model.ProjectStatus(s))
	}
	for _, s := range c.QueryArray("sdg") {
		n, err := strconv.Atoi(s)
		if err != nil {
			return query.Spec{}, errors.New("无效的SDG编号: " + s)
		}
		spec.SDGs = append(spec.SDGs, n)
	}
	if city := c.Query("city"); city != "" {
		radius, err := strconv.ParseFloat(c.DefaultQuery("radius_km", "50"), 64)
		if err != nil {
			return query.Spec{}, errors.New("无效的半径参数")
		}
		spec.Location = &query.LocationSpec{City: city, RadiusKm: radius}
	}
	return spec, nil
}
