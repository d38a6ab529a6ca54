package logic

import (
	"errors"
	"testing"

	"github.com/wasilah/csr/internal/model"
	"github.com/wasilah/csr/internal/wizard"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

// dryRunDB 只构建SQL不执行，用于校验写入前的字段准备
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	if err != nil {
		t.Fatalf("failed to open dry-run db: %v", err)
	}
	return db
}

func TestAddEntitiesAssignIDs(t *testing.T) {
	db := dryRunDB(t)

	candidate := &model.NGOCandidate{Name: "Saylani Welfare"}
	if err := NewNGOLogic(db).AddCandidate(candidate); err != nil {
		t.Fatalf("add candidate: %v", err)
	}
	app := &model.VolunteerApplication{Name: "Ayesha Khan"}
	if err := NewVolunteerLogic(db).AddApplication(app); err != nil {
		t.Fatalf("add application: %v", err)
	}
	invoice := &model.Invoice{Number: "INV-001", Amount: 5000}
	if err := NewInvoiceLogic(db).AddInvoice(invoice); err != nil {
		t.Fatalf("add invoice: %v", err)
	}
	milestone := &model.Milestone{Title: "Site survey"}
	if err := NewMilestoneLogic(db).CreateMilestone(milestone); err != nil {
		t.Fatalf("create milestone: %v", err)
	}
	item := &model.MediaItem{FileName: "site.png"}
	if err := NewMediaLogic(db).AddMedia(item); err != nil {
		t.Fatalf("add media: %v", err)
	}

	// 每条记录写入前都要拿到自己的主键，否则按ID寻址的状态流转无从谈起
	seen := make(map[string]bool)
	for _, id := range []string{candidate.ID, app.ID, invoice.ID, milestone.ID, item.ID} {
		if id == "" {
			t.Fatal("entity handed to the database without an id")
		}
		if seen[id] {
			t.Fatalf("duplicate id assigned: %s", id)
		}
		seen[id] = true
	}
}

func TestCreateProjectSurfacesSlugCheckFailure(t *testing.T) {
	db := dryRunDB(t)
	dbDown := errors.New("connection down")
	_ = db.AddError(dbDown)

	_, err := NewProjectLogic(db).CreateProject(wizard.CreateProjectRequest{
		CompanyID: "c1",
		Title:     "Clean Karachi Drive",
		Slug:      "clean-karachi-drive",
	})
	if !errors.Is(err, dbDown) {
		t.Fatalf("slug uniqueness check should surface the query error, got %v", err)
	}
}
