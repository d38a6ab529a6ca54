package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wasilah/csr/internal/logic"
	"github.com/wasilah/csr/internal/wizard"
	"gorm.io/gorm"
)

// WizardHandler 项目创建向导处理器
type WizardHandler struct {
	manager      *wizard.Manager
	projectLogic *logic.ProjectLogic
	draftLogic   *logic.DraftLogic
}

func NewWizardHandler(db *gorm.DB, manager *wizard.Manager) *WizardHandler {
	return &WizardHandler{
		manager:      manager,
		projectLogic: logic.NewProjectLogic(db),
		draftLogic:   logic.NewDraftLogic(db),
	}
}

// StartSession 开启创建向导会话
func (h *WizardHandler) StartSession(c *gin.Context) {
	var req struct {
		Slug string `json:"slug"`
	}
	// 请求体可为空
	_ = c.ShouldBindJSON(&req)

	s := h.manager.Start(companyID(c), c.GetHeader(UserHeader), req.Slug)
	c.JSON(http.StatusCreated, gin.H{
		"session_id": s.ID,
		"step":       s.Step(),
		"form":       s.Form(),
	})
}

// GetSession 获取会话当前状态
func (h *WizardHandler) GetSession(c *gin.Context) {
	s, err := h.manager.Get(c.Param("sid"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{
		"session_id":    s.ID,
		"step":          s.Step(),
		"form":          s.Form(),
		"last_saved_at": s.LastSavedAt(),
	}
	if b := s.Uploads(); b != nil {
		resp["files"] = b.Files()
	}
	c.JSON(http.StatusOK, resp)
}

// ApplyChanges 提交字段变更，触发自动保存防抖
func (h *WizardHandler) ApplyChanges(c *gin.Context) {
	s, err := h.manager.Get(c.Param("sid"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	var changes wizard.FieldChanges
	if err := c.ShouldBindJSON(&changes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.Apply(changes); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"form": s.Form()})
}

// NextStep 前进一步，受当前步骤校验把关
func (h *WizardHandler) NextStep(c *gin.Context) {
	s, err := h.manager.Get(c.Param("sid"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	step, err := s.Next()
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"step": step})
}

// PrevStep 后退一步，不做校验
func (h *WizardHandler) PrevStep(c *gin.Context) {
	s, err := h.manager.Get(c.Param("sid"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"step": s.Back()})
}

// CloseSession 关闭会话。存在未保存修改时需要discard=true确认丢弃。
func (h *WizardHandler) CloseSession(c *gin.Context) {
	discard := c.Query("discard") == "true"
	if err := h.manager.Close(c.Param("sid"), discard); err != nil {
		if errors.Is(err, wizard.ErrUnsavedChanges) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "会话已关闭"})
}

// SubmitSession 在确认步骤提交，创建项目
func (h *WizardHandler) SubmitSession(c *gin.Context) {
	s, err := h.manager.Get(c.Param("sid"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	req, err := s.Submit()
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projectLogic.CreateProject(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// 创建成功后回收会话与草稿
	_ = h.manager.Close(s.ID, true)
	_ = h.draftLogic.DeleteDraft(s.ID)

	c.JSON(http.StatusCreated, gin.H{
		"message": "项目创建成功",
		"project": project,
	})
}

// AddUpload 向会话上传批次添加文件
func (h *WizardHandler) AddUpload(c *gin.Context) {
	s, err := h.manager.Get(c.Param("sid"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	batch := s.Uploads()
	if batch == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "上传通道未开启"})
		return
	}

	var req struct {
		Name      string `json:"name" binding:"required"`
		SizeBytes int64  `json:"size_bytes" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file, err := batch.Add(req.Name, req.SizeBytes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"file": file})
}

// ListUploads 查看批次内文件的上传进度
func (h *WizardHandler) ListUploads(c *gin.Context) {
	s, err := h.manager.Get(c.Param("sid"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	batch := s.Uploads()
	if batch == nil {
		c.JSON(http.StatusOK, gin.H{"files": []interface{}{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"files": batch.Files()})
}

// CancelUpload 取消上传中的文件
func (h *WizardHandler) CancelUpload(c *gin.Context) {
	s, err := h.manager.Get(c.Param("sid"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	batch := s.Uploads()
	if batch == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "上传通道未开启"})
		return
	}

	file, err := batch.Cancel(c.Param("file_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"file": file})
}

// RetryUpload 重试失败的上传
func (h *WizardHandler) RetryUpload(c *gin.Context) {
	s, err := h.manager.Get(c.Param("sid"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	batch := s.Uploads()
	if batch == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "上传通道未开启"})
		return
	}

	file, err := batch.Retry(c.Param("file_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"file": file})
}

// ListDrafts 获取公司的自动保存草稿
func (h *WizardHandler) ListDrafts(c *gin.Context) {
	drafts, err := h.draftLogic.ListDrafts(companyID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"drafts": drafts})
}

// GetDraft 获取单个草稿
func (h *WizardHandler) GetDraft(c *gin.Context) {
	draft, err := h.draftLogic.GetDraft(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

// DeleteDraft 删除草稿
func (h *WizardHandler) DeleteDraft(c *gin.Context) {
	if err := h.draftLogic.DeleteDraft(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "草稿已删除"})
}
