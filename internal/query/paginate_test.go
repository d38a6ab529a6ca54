package query

import (
	"fmt"
	"testing"

	"github.com/wasilah/csr/internal/model"
)

func numberedProjects(n int) []model.Project {
	projects := make([]model.Project, 0, n)
	for i := 0; i < n; i++ {
		projects = append(projects, model.Project{ID: fmt.Sprintf("p%d", i)})
	}
	return projects
}

func TestPaginateNeverExceedsPageSize(t *testing.T) {
	projects := numberedProjects(23)
	for page := 1; page <= 5; page++ {
		got := Paginate(projects, page, 10)
		if len(got.Items) > 10 {
			t.Errorf("page %d has %d items, exceeds page size", page, len(got.Items))
		}
	}
}

func TestPaginatePartitionsExactly(t *testing.T) {
	projects := numberedProjects(23)

	var all []string
	for page := 1; ; page++ {
		got := Paginate(projects, page, 10)
		if len(got.Items) == 0 {
			break
		}
		all = append(all, ids(got.Items)...)
	}

	if len(all) != len(projects) {
		t.Fatalf("pages concatenate to %d items, expected %d", len(all), len(projects))
	}
	for i, p := range projects {
		if all[i] != p.ID {
			t.Errorf("position %d: expected %s, got %s", i, p.ID, all[i])
		}
	}
}

func TestPaginateOutOfRangePage(t *testing.T) {
	got := Paginate(numberedProjects(5), 4, 10)
	if len(got.Items) != 0 {
		t.Fatalf("expected empty page, got %d items", len(got.Items))
	}
	if got.Total != 5 {
		t.Fatalf("total should still report filtered size, got %d", got.Total)
	}
}

func TestPaginateDefaults(t *testing.T) {
	got := Paginate(numberedProjects(15), 0, 0)
	if got.Page != 1 || got.PageSize != 10 {
		t.Fatalf("expected defaults page=1 size=10, got page=%d size=%d", got.Page, got.PageSize)
	}
	if len(got.Items) != 10 {
		t.Fatalf("expected 10 items on first page, got %d", len(got.Items))
	}
}
