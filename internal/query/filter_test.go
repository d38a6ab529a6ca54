package query

import (
	"testing"

	"github.com/wasilah/csr/internal/model"
)

func sampleProjects() []model.Project {
	return []model.Project{
		{
			ID:     "p1",
			Title:  "Clean Karachi Drive",
			Status: model.ProjectStatusActive,
			SDGs:   []int{6, 11},
			Location: model.Location{
				Country: "Pakistan", City: "Karachi",
			},
		},
		{
			ID:     "p2",
			Title:  "Lahore Literacy Camp",
			Status: model.ProjectStatusDraft,
			SDGs:   []int{4},
			Location: model.Location{
				Country: "Pakistan", City: "Lahore",
			},
		},
		{
			ID:     "p3",
			Title:  "Hyderabad Health Outreach",
			Status: model.ProjectStatusActive,
			SDGs:   []int{3},
			Location: model.Location{
				Country: "Pakistan", City: "Hyderabad",
			},
		},
		{
			ID:     "p4",
			Title:  "Remote Mentorship",
			Status: model.ProjectStatusCompleted,
			SDGs:   []int{4, 8},
			Location: model.Location{
				Country: "Pakistan", City: "Gilgit", // 不在坐标表内
			},
		},
	}
}

func TestFilterEmptySpecReturnsAllInOrder(t *testing.T) {
	projects := sampleProjects()
	got := Filter(projects, Spec{})

	if len(got) != len(projects) {
		t.Fatalf("expected %d projects, got %d", len(projects), len(got))
	}
	for i := range projects {
		if got[i].ID != projects[i].ID {
			t.Errorf("order changed at %d: expected %s, got %s", i, projects[i].ID, got[i].ID)
		}
	}
}

func TestFilterByStatusSet(t *testing.T) {
	got := Filter(sampleProjects(), Spec{
		Statuses: []model.ProjectStatus{model.ProjectStatusActive, model.ProjectStatusDraft},
	})

	if len(got) != 3 {
		t.Fatalf("expected 3 projects, got %d", len(got))
	}
	for _, p := range got {
		if p.Status != model.ProjectStatusActive && p.Status != model.ProjectStatusDraft {
			t.Errorf("project %s has status %s outside the selected set", p.ID, p.Status)
		}
	}
}

func TestFilterBySDGAnyMatch(t *testing.T) {
	got := Filter(sampleProjects(), Spec{SDGs: []int{4, 6}})

	if len(got) != 3 {
		t.Fatalf("expected 3 projects, got %d", len(got))
	}
	for _, p := range got {
		if !p.HasSDG(4) && !p.HasSDG(6) {
			t.Errorf("project %s matches none of the selected SDGs", p.ID)
		}
	}
}

func TestFilterByText(t *testing.T) {
	got := Filter(sampleProjects(), Spec{Text: "karachi"})
	if len(got) != 1 || got[0].ID != "p1" {
		t.Fatalf("expected only p1, got %v", ids(got))
	}

	// 城市字段同样参与匹配
	got = Filter(sampleProjects(), Spec{Text: "LAHORE"})
	if len(got) != 1 || got[0].ID != "p2" {
		t.Fatalf("expected only p2, got %v", ids(got))
	}
}

func TestFilterByLocationRadius(t *testing.T) {
	// 卡拉奇到海得拉巴约150公里，到拉合尔超过1000公里
	got := Filter(sampleProjects(), Spec{
		Location: &LocationSpec{City: "Karachi", RadiusKm: 200},
	})

	if len(got) != 2 {
		t.Fatalf("expected p1 and p3, got %v", ids(got))
	}
	for _, p := range got {
		if p.ID != "p1" && p.ID != "p3" {
			t.Errorf("unexpected project %s in radius result", p.ID)
		}
	}
}

func TestFilterLocationExcludesUnknownCities(t *testing.T) {
	// p4 的城市不在坐标表内，地理筛选开启时必须被排除
	got := Filter(sampleProjects(), Spec{
		Location: &LocationSpec{City: "Karachi", RadiusKm: 5000},
	})
	for _, p := range got {
		if p.ID == "p4" {
			t.Fatal("project with unknown city should be excluded under location filter")
		}
	}
}

func TestFilterUnknownOriginMatchesNothing(t *testing.T) {
	got := Filter(sampleProjects(), Spec{
		Location: &LocationSpec{City: "Atlantis", RadiusKm: 100},
	})
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %v", ids(got))
	}
}

func TestFilterCombinesWithAnd(t *testing.T) {
	got := Filter(sampleProjects(), Spec{
		Text:     "a",
		Statuses: []model.ProjectStatus{model.ProjectStatusActive},
		SDGs:     []int{3},
	})
	if len(got) != 1 || got[0].ID != "p3" {
		t.Fatalf("expected only p3, got %v", ids(got))
	}
}

func TestHaversineKnownDistance(t *testing.T) {
	karachi, _ := model.LookupCity("Karachi")
	lahore, _ := model.LookupCity("Lahore")

	d := HaversineKm(karachi, lahore)
	// 实际约1020公里
	if d < 950 || d > 1100 {
		t.Fatalf("Karachi-Lahore distance out of range: %.1f km", d)
	}
}

func ids(projects []model.Project) []string {
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.ID)
	}
	return out
}
