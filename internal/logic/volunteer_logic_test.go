package logic

import (
	"testing"

	"github.com/wasilah/csr/internal/model"
)

func TestEligibleForTransitionTouchesExactlySelected(t *testing.T) {
	apps := []model.VolunteerApplication{
		{ID: "a1", Status: model.VolunteerStatusApplied},
		{ID: "a2", Status: model.VolunteerStatusApplied},
		{ID: "a3", Status: model.VolunteerStatusAccepted}, // 状态不符
		{ID: "a4", Status: model.VolunteerStatusApplied},  // 未勾选
	}

	got := EligibleForTransition(apps, []string{"a1", "a2", "a3"}, model.VolunteerStatusApplied)

	if len(got) != 2 {
		t.Fatalf("expected 2 eligible applications, got %v", got)
	}
	want := map[string]bool{"a1": true, "a2": true}
	for _, id := range got {
		if !want[id] {
			t.Errorf("unexpected id in eligible set: %s", id)
		}
	}
}

func TestEligibleForTransitionEmptySelection(t *testing.T) {
	apps := []model.VolunteerApplication{
		{ID: "a1", Status: model.VolunteerStatusApplied},
	}
	if got := EligibleForTransition(apps, nil, model.VolunteerStatusApplied); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}
