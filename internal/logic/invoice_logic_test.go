package logic

import (
	"testing"

	"github.com/wasilah/csr/internal/model"
)

func TestSummarize(t *testing.T) {
	l := &InvoiceLogic{}
	invoices := []model.Invoice{
		{Amount: 30000, EscrowHeld: 3000, Status: model.InvoiceStatusPaid},
		{Amount: 20000, EscrowHeld: 2000, Status: model.InvoiceStatusSent},
		{Amount: 10000, EscrowHeld: 1000, Status: model.InvoiceStatusDraft},
	}

	got := l.Summarize(100000, invoices)

	if got.Spent != 30000 {
		t.Errorf("spent: got %v, want 30000", got.Spent)
	}
	if got.Pending != 20000 {
		t.Errorf("pending: got %v, want 20000", got.Pending)
	}
	// 暂扣只统计未支付的发票
	if got.EscrowHeld != 3000 {
		t.Errorf("escrow: got %v, want 3000", got.EscrowHeld)
	}
	if got.Remaining != 50000 {
		t.Errorf("remaining: got %v, want 50000", got.Remaining)
	}
}

func TestSummarizeEmptyInvoices(t *testing.T) {
	l := &InvoiceLogic{}
	got := l.Summarize(75000, nil)
	if got.Spent != 0 || got.Pending != 0 || got.EscrowHeld != 0 {
		t.Fatalf("empty invoice list should produce zero aggregates: %+v", got)
	}
	if got.Remaining != 75000 {
		t.Fatalf("remaining should equal budget, got %v", got.Remaining)
	}
}
