package wizard

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Clean Karachi Drive 2026!", "clean-karachi-drive-2026"},
		{"Hello World", "hello-world"},
		{"  trimmed  ", "trimmed"},
		{"A--B__C", "a-b-c"},
		{"ALLCAPS", "allcaps"},
		{"!!!", ""},
		{"", ""},
	}

	for _, c := range cases {
		if got := Slugify(c.title); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.title, got, c.want)
		}
	}
}
