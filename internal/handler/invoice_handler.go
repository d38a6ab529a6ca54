package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wasilah/csr/internal/logic"
	"github.com/wasilah/csr/internal/model"
	"gorm.io/gorm"
)

// InvoiceHandler 发票与预算处理器
type InvoiceHandler struct {
	invoiceLogic *logic.InvoiceLogic
	projectLogic *logic.ProjectLogic
}

func NewInvoiceHandler(db *gorm.DB) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceLogic: logic.NewInvoiceLogic(db),
		projectLogic: logic.NewProjectLogic(db),
	}
}

// GetInvoices 获取项目下的发票
func (h *InvoiceHandler) GetInvoices(c *gin.Context) {
	invoices, err := h.invoiceLogic.ListInvoices(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": invoices})
}

// AddInvoice 添加发票，初始状态为草稿
func (h *InvoiceHandler) AddInvoice(c *gin.Context) {
	var invoice model.Invoice
	if err := c.ShouldBindJSON(&invoice); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	invoice.ProjectID = c.Param("id")

	if err := h.invoiceLogic.AddInvoice(&invoice); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "发票已添加",
		"invoice": invoice,
	})
}

// SendInvoice 发出发票
func (h *InvoiceHandler) SendInvoice(c *gin.Context) {
	if err := h.invoiceLogic.SendInvoice(c.Param("invoice_id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "发票已发出"})
}

// MarkInvoicePaid 标记发票已支付
func (h *InvoiceHandler) MarkInvoicePaid(c *gin.Context) {
	if err := h.invoiceLogic.MarkPaid(c.Param("invoice_id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "发票已支付"})
}

// GetBudgetSummary 获取项目预算汇总
func (h *InvoiceHandler) GetBudgetSummary(c *gin.Context) {
	project, err := h.projectLogic.GetProject(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.invoiceLogic.GetSummary(project.ID, project.Budget)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// ExportInvoices 导出发票CSV，末尾附预算汇总行
func (h *InvoiceHandler) ExportInvoices(c *gin.Context) {
	project, err := h.projectLogic.GetProject(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	data, filename, err := h.invoiceLogic.ExportInvoices(project.ID, project.Budget)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	sendCSV(c, filename, data)
}
