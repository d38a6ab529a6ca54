package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wasilah/csr/internal/export"
	"github.com/wasilah/csr/internal/model"
	"gorm.io/gorm"
)

// InvoiceLogic 发票与预算业务逻辑
type InvoiceLogic struct {
	db *gorm.DB
}

// NewInvoiceLogic 创建发票业务逻辑
func NewInvoiceLogic(db *gorm.DB) *InvoiceLogic {
	return &InvoiceLogic{db: db}
}

// ListInvoices 项目下的发票
func (l *InvoiceLogic) ListInvoices(projectID string) ([]model.Invoice, error) {
	var invoices []model.Invoice
	if err := l.db.Where("project_id = ?", projectID).
		Order("issued_at ASC").Find(&invoices).Error; err != nil {
		return nil, fmt.Errorf("获取发票列表失败: %w", err)
	}
	return invoices, nil
}

// AddInvoice 添加发票，初始为草稿状态
func (l *InvoiceLogic) AddInvoice(invoice *model.Invoice) error {
	if invoice.Number == "" {
		return errors.New("发票编号不能为空")
	}
	if invoice.Amount <= 0 {
		return errors.New("发票金额必须大于0")
	}
	invoice.ID = uuid.NewString()
	invoice.Status = model.InvoiceStatusDraft
	if invoice.IssuedAt.IsZero() {
		invoice.IssuedAt = time.Now()
	}
	if err := l.db.Create(invoice).Error; err != nil {
		return fmt.Errorf("添加发票失败: %w", err)
	}
	return nil
}

// SendInvoice 寄送发票，草稿 -> 已寄送
func (l *InvoiceLogic) SendInvoice(id string) error {
	return l.transition(id, model.InvoiceStatusDraft, model.InvoiceStatusSent)
}

// MarkPaid 标记支付，已寄送 -> 已支付（不允许跳过寄送）
func (l *InvoiceLogic) MarkPaid(id string) error {
	invoice, err := l.get(id)
	if err != nil {
		return err
	}
	if invoice.Status != model.InvoiceStatusSent {
		return fmt.Errorf("发票当前状态为%s，只有已寄送的发票可标记支付", invoice.Status)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":  model.InvoiceStatusPaid,
		"paid_at": &now,
	}
	if err := l.db.Model(invoice).Updates(updates).Error; err != nil {
		return fmt.Errorf("更新发票状态失败: %w", err)
	}
	return nil
}

// Summarize 按发票列表实时计算预算汇总
func (l *InvoiceLogic) Summarize(budget float64, invoices []model.Invoice) model.BudgetSummary {
	summary := model.BudgetSummary{Budget: budget}
	for _, inv := range invoices {
		switch inv.Status {
		case model.InvoiceStatusPaid:
			summary.Spent += inv.Amount
		case model.InvoiceStatusSent:
			summary.Pending += inv.Amount
		}
		// 暂扣金额只统计未支付的发票
		if inv.Status != model.InvoiceStatusPaid {
			summary.EscrowHeld += inv.EscrowHeld
		}
	}
	summary.Remaining = budget - summary.Spent - summary.Pending
	return summary
}

// GetSummary 项目预算汇总
func (l *InvoiceLogic) GetSummary(projectID string, budget float64) (model.BudgetSummary, error) {
	invoices, err := l.ListInvoices(projectID)
	if err != nil {
		return model.BudgetSummary{}, err
	}
	return l.Summarize(budget, invoices), nil
}

// ExportInvoices 导出发票CSV，末尾带预算汇总块
func (l *InvoiceLogic) ExportInvoices(projectID string, budget float64) ([]byte, string, error) {
	invoices, err := l.ListInvoices(projectID)
	if err != nil {
		return nil, "", err
	}
	data, err := export.InvoicesCSV(invoices, l.Summarize(budget, invoices))
	if err != nil {
		return nil, "", err
	}
	return data, export.FileName("invoices", time.Now()), nil
}

func (l *InvoiceLogic) transition(id string, from, to model.InvoiceStatus) error {
	invoice, err := l.get(id)
	if err != nil {
		return err
	}
	if invoice.Status != from {
		return fmt.Errorf("发票当前状态为%s，无法转为%s", invoice.Status, to)
	}
	if err := l.db.Model(invoice).Update("status", to).Error; err != nil {
		return fmt.Errorf("更新发票状态失败: %w", err)
	}
	return nil
}

func (l *InvoiceLogic) get(id string) (*model.Invoice, error) {
	var invoice model.Invoice
	if err := l.db.First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("发票不存在")
		}
		return nil, fmt.Errorf("获取发票失败: %w", err)
	}
	return &invoice, nil
}
