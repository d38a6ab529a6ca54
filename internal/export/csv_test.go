package export

import (
	"strings"
	"testing"
	"time"

	"github.com/wasilah/csr/internal/model"
)

func TestProjectsCSVRoundTrip(t *testing.T) {
	projects := []model.Project{
		{
			ID:        "p1",
			Title:     `Clean "Karachi" Drive, Phase 1`, // 含引号和逗号
			Status:    model.ProjectStatusActive,
			Type:      model.ProjectTypeEnvironment,
			Location:  model.Location{City: "Karachi"},
			Budget:    100000,
			StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:        "p2",
			Title:     "Lahore Literacy Camp",
			Status:    model.ProjectStatusDraft,
			Type:      model.ProjectTypeEducation,
			Location:  model.Location{City: "Lahore"},
			Budget:    54321.5,
			StartDate: time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC),
		},
	}

	data, err := ProjectsCSV(projects)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	parsed, err := ParseProjectsCSV(data)
	if err != nil {
		t.Fatalf("re-parse failed: %v", err)
	}
	if len(parsed) != len(projects) {
		t.Fatalf("expected %d rows, got %d", len(projects), len(parsed))
	}

	for i, p := range projects {
		got := parsed[i]
		if got.Title != p.Title {
			t.Errorf("row %d title: got %q, want %q", i, got.Title, p.Title)
		}
		if got.Status != p.Status {
			t.Errorf("row %d status: got %s, want %s", i, got.Status, p.Status)
		}
		if got.Location.City != p.Location.City {
			t.Errorf("row %d city: got %q, want %q", i, got.Location.City, p.Location.City)
		}
		if got.Budget != p.Budget {
			t.Errorf("row %d budget: got %v, want %v", i, got.Budget, p.Budget)
		}
	}
}

func TestInvoicesCSVAppendsSummary(t *testing.T) {
	invoices := []model.Invoice{
		{ID: "i1", Number: "INV-001", Amount: 1000, Status: model.InvoiceStatusPaid,
			IssuedAt: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)},
	}
	summary := model.BudgetSummary{Spent: 1000, Pending: 0, EscrowHeld: 0, Remaining: 99000}

	data, err := InvoicesCSV(invoices, summary)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	out := string(data)
	if !strings.Contains(out, "INV-001") {
		t.Error("invoice row missing")
	}
	if !strings.Contains(out, "summary") || !strings.Contains(out, "remaining,99000.00") {
		t.Errorf("summary block missing or malformed:\n%s", out)
	}
}

func TestFileName(t *testing.T) {
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	if got := FileName("projects", now); got != "projects-2026-08-29.csv" {
		t.Fatalf("unexpected file name: %q", got)
	}
}
