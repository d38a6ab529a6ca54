package wizard

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/wasilah/csr/internal/model"
)

type fakeSaver struct {
	mu        sync.Mutex
	snapshots []DraftSnapshot
}

func (f *fakeSaver) SaveDraft(s DraftSnapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snapshots = append(f.snapshots, s)
	return nil
}

func (f *fakeSaver) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.snapshots)
}

func testManager(saver *fakeSaver) *Manager {
	m := NewManager(saver, nil)
	m.AutosaveDelay = 20 * time.Millisecond
	return m
}

func str(s string) *string        { return &s }
func num(f float64) *float64      { return &f }
func sdgs(ids ...int) *[]int      { return &ids }
func date(t time.Time) *time.Time { return &t }

// fillValidForm 填到足以通过1-3步校验的程度
func fillValidForm(s *Session) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	s.Apply(FieldChanges{
		Title:            str("Clean Karachi Drive 2026!"),
		ShortDescription: str("Beach cleanup across three districts."),
		SDGs:             sdgs(6, 11),
		City:             str("Karachi"),
		Country:          str("Pakistan"),
		StartDate:        date(start),
		EndDate:          date(end),
		Budget:           num(100000),
		BudgetBreakdown: &[]model.BudgetLine{
			{Category: "Logistics", Amount: 60000},
			{Category: "Supplies", Amount: 40000},
		},
	})
}

func TestTitleLengthBoundaries(t *testing.T) {
	cases := []struct {
		length int
		ok     bool
	}{
		{5, false},
		{6, true},
		{150, true},
		{151, false},
	}

	for _, c := range cases {
		form := &FormState{
			Title:            strings.Repeat("a", c.length),
			ShortDescription: "desc",
			SDGs:             []int{1},
		}
		err := ValidateStep(StepBasicInfo, form)
		if c.ok && err != nil {
			t.Errorf("title length %d should pass, got %v", c.length, err)
		}
		if !c.ok && err == nil {
			t.Errorf("title length %d should fail", c.length)
		}
	}
}

func TestSDGCountBoundaries(t *testing.T) {
	form := &FormState{Title: "valid title", ShortDescription: "desc"}

	form.SDGs = nil
	if ValidateStep(StepBasicInfo, form) == nil {
		t.Error("zero SDGs should fail")
	}
	form.SDGs = []int{1, 2, 3, 4, 5, 6}
	if ValidateStep(StepBasicInfo, form) == nil {
		t.Error("six SDGs should fail")
	}
	form.SDGs = []int{1, 2, 3, 4, 5}
	if err := ValidateStep(StepBasicInfo, form); err != nil {
		t.Errorf("five SDGs should pass, got %v", err)
	}
}

func TestBudgetToleranceBoundaries(t *testing.T) {
	cases := []struct {
		sum float64
		ok  bool
	}{
		{100000, true},
		{100001, true}, // 误差1为含边界
		{100002, false},
		{100005, false},
	}

	for _, c := range cases {
		form := &FormState{
			Budget:          100000,
			BudgetBreakdown: []model.BudgetLine{{Category: "All", Amount: c.sum}},
		}
		err := ValidateStep(StepBudget, form)
		if c.ok && err != nil {
			t.Errorf("sum %.0f should pass, got %v", c.sum, err)
		}
		if !c.ok && err == nil {
			t.Errorf("sum %.0f should fail", c.sum)
		}
	}
}

func TestBudgetMismatchNamesBothTotals(t *testing.T) {
	form := &FormState{
		Budget:          100000,
		BudgetBreakdown: []model.BudgetLine{{Category: "All", Amount: 100005}},
	}
	err := ValidateStep(StepBudget, form)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "100005") || !strings.Contains(err.Error(), "100000") {
		t.Fatalf("error should name both totals, got: %v", err)
	}
}

func TestEndDateBeforeStartDateRejected(t *testing.T) {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -1)
	form := &FormState{City: "Lahore", StartDate: &start, EndDate: &end}
	if ValidateStep(StepLogistics, form) == nil {
		t.Fatal("end before start should fail")
	}

	sameDay := start
	form.EndDate = &sameDay
	if err := ValidateStep(StepLogistics, form); err != nil {
		t.Fatalf("end equal to start should pass, got %v", err)
	}
}

func TestNextGatedByValidation(t *testing.T) {
	m := testManager(&fakeSaver{})
	s := m.Start("c1", "u1", "")

	if _, err := s.Next(); err == nil {
		t.Fatal("advancing an empty step 1 should fail")
	}
	if s.Step() != StepBasicInfo {
		t.Fatalf("step should stay at 1, got %d", s.Step())
	}

	fillValidForm(s)
	step, err := s.Next()
	if err != nil {
		t.Fatalf("valid step 1 should advance, got %v", err)
	}
	if step != StepLogistics {
		t.Fatalf("expected step 2, got %d", step)
	}
}

func TestBackNeverValidates(t *testing.T) {
	m := testManager(&fakeSaver{})
	s := m.Start("c1", "u1", "")
	fillValidForm(s)
	s.Next()

	// 清空表单后仍可自由后退
	s.Apply(FieldChanges{Title: str("")})
	if got := s.Back(); got != StepBasicInfo {
		t.Fatalf("expected back to step 1, got %d", got)
	}
	if got := s.Back(); got != StepBasicInfo {
		t.Fatalf("back at step 1 should stay, got %d", got)
	}
}

func TestSlugDerivesFromTitle(t *testing.T) {
	m := testManager(&fakeSaver{})
	s := m.Start("c1", "u1", "")

	s.Apply(FieldChanges{Title: str("Clean Karachi Drive 2026!")})
	if got := s.Form().Slug; got != "clean-karachi-drive-2026" {
		t.Fatalf("unexpected slug: %q", got)
	}
}

func TestExplicitSlugSuppressesDerivation(t *testing.T) {
	m := testManager(&fakeSaver{})

	// 初始slug来自调用方
	s := m.Start("c1", "u1", "my-custom-slug")
	s.Apply(FieldChanges{Title: str("Some New Title")})
	if got := s.Form().Slug; got != "my-custom-slug" {
		t.Fatalf("initial slug should survive title edits, got %q", got)
	}

	// 会话中途显式改slug后同样不再派生
	s2 := m.Start("c1", "u1", "")
	s2.Apply(FieldChanges{Title: str("First Title")})
	s2.Apply(FieldChanges{Slug: str("pinned-slug")})
	s2.Apply(FieldChanges{Title: str("Second Title")})
	if got := s2.Form().Slug; got != "pinned-slug" {
		t.Fatalf("explicit slug should be permanent for the session, got %q", got)
	}
}

func TestAutosaveDebounce(t *testing.T) {
	saver := &fakeSaver{}
	m := testManager(saver)
	s := m.Start("c1", "u1", "")

	// 连续编辑只应触发一次保存
	for i := 0; i < 5; i++ {
		s.Apply(FieldChanges{Title: str("Typing in progress")})
		time.Sleep(2 * time.Millisecond)
	}
	time.Sleep(100 * time.Millisecond)

	if got := saver.count(); got != 1 {
		t.Fatalf("expected exactly 1 autosave, got %d", got)
	}
	if s.LastSavedAt().IsZero() {
		t.Fatal("LastSavedAt should be recorded after autosave")
	}
}

func TestCloseRequiresDiscardWhenDirty(t *testing.T) {
	m := testManager(&fakeSaver{})
	s := m.Start("c1", "u1", "")
	s.Apply(FieldChanges{Title: str("Unsaved work")})

	if err := m.Close(s.ID, false); err != ErrUnsavedChanges {
		t.Fatalf("expected ErrUnsavedChanges, got %v", err)
	}
	if err := m.Close(s.ID, true); err != nil {
		t.Fatalf("discard close should succeed, got %v", err)
	}
	if _, err := m.Get(s.ID); err != ErrSessionNotFound {
		t.Fatalf("closed session should be removed, got %v", err)
	}
}

func TestCloseStopsAutosave(t *testing.T) {
	saver := &fakeSaver{}
	m := testManager(saver)
	s := m.Start("c1", "u1", "")
	s.Apply(FieldChanges{Title: str("About to close")})

	if err := m.Close(s.ID, true); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	time.Sleep(100 * time.Millisecond)
	if got := saver.count(); got != 0 {
		t.Fatalf("autosave should not fire after close, got %d saves", got)
	}
}

func TestSubmitOnlyFromReview(t *testing.T) {
	m := testManager(&fakeSaver{})
	s := m.Start("c1", "u1", "")
	fillValidForm(s)

	if _, err := s.Submit(); err != ErrNotAtReview {
		t.Fatalf("expected ErrNotAtReview, got %v", err)
	}
}

func TestSubmitFiltersInvalidRows(t *testing.T) {
	m := testManager(&fakeSaver{})
	s := m.Start("c1", "u1", "")
	fillValidForm(s)
	// 类别为空或金额非正的明细行、邮箱缺失的审批人在提交时剔除
	s.Apply(FieldChanges{
		BudgetBreakdown: &[]model.BudgetLine{
			{Category: "Logistics", Amount: 60000},
			{Category: "Supplies", Amount: 40000},
			{Category: "", Amount: 1},
			{Category: "Misc", Amount: 0},
		},
		Approvers: &[]model.Approver{
			{Name: "Ayesha Khan", Email: "ayesha@example.com"},
			{Name: "No Email", Email: ""},
		},
	})

	for i := 0; i < 4; i++ {
		if _, err := s.Next(); err != nil {
			t.Fatalf("step %d should advance: %v", i+1, err)
		}
	}

	req, err := s.Submit()
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if len(req.BudgetBreakdown) != 2 {
		t.Fatalf("expected 2 breakdown rows, got %d", len(req.BudgetBreakdown))
	}
	if len(req.Approvers) != 1 || req.Approvers[0].Name != "Ayesha Khan" {
		t.Fatalf("expected only the valid approver, got %v", req.Approvers)
	}
	if req.Slug != "clean-karachi-drive-2026" {
		t.Fatalf("unexpected slug in request: %q", req.Slug)
	}
	if req.CompanyID != "c1" || req.CreatedBy != "u1" {
		t.Fatalf("request missing caller context: %+v", req)
	}
}

func TestSubmitRevalidatesEarlierSteps(t *testing.T) {
	m := testManager(&fakeSaver{})
	s := m.Start("c1", "u1", "")
	fillValidForm(s)
	for i := 0; i < 4; i++ {
		s.Next()
	}

	// 到达最后一步后把标题改坏，提交必须重新校验并拒绝
	s.Apply(FieldChanges{Title: str("bad")})
	if _, err := s.Submit(); err == nil {
		t.Fatal("submit should re-validate step 1")
	}
}
