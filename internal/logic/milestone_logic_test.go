package logic

import (
	"errors"
	"testing"

	"github.com/wasilah/csr/internal/model"
)

func TestCanCompleteRequiresEvidence(t *testing.T) {
	// 要求佐证且未挂接材料：拒绝完成
	ms := &model.Milestone{
		Status:           model.MilestoneStatusOngoing,
		EvidenceRequired: true,
	}
	if err := CanComplete(ms); !errors.Is(err, ErrEvidenceRequired) {
		t.Fatalf("expected ErrEvidenceRequired, got %v", err)
	}

	// 挂接材料后放行
	ms.EvidenceIDs = []string{"f1"}
	if err := CanComplete(ms); err != nil {
		t.Fatalf("evidence attached, should pass: %v", err)
	}
}

func TestCanCompleteWithoutEvidenceRequirement(t *testing.T) {
	ms := &model.Milestone{Status: model.MilestoneStatusOngoing}
	if err := CanComplete(ms); err != nil {
		t.Fatalf("no evidence requirement, should pass immediately: %v", err)
	}
}

func TestCanCompleteRejectsAlreadyCompleted(t *testing.T) {
	ms := &model.Milestone{Status: model.MilestoneStatusCompleted}
	if err := CanComplete(ms); err == nil {
		t.Fatal("completed milestone cannot be completed again")
	}
}
