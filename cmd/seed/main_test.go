package main

import (
	"strings"
	"testing"
)

func TestParseGroups(t *testing.T) {
	input := `[
		{"title": " Cats ", "slug": "cats", "description": "All about cats"},
		{"title": "Dogs", "slug": "dogs_2"}
	]`

	groups, err := parseGroups(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].Title != "Cats" {
		t.Errorf("title not trimmed: %q", groups[0].Title)
	}
}

func TestParseGroupsRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"not json", `{`, "decode"},
		{"missing title", `[{"slug": "cats"}]`, "title is required"},
		{"long title", `[{"title": "` + strings.Repeat("a", 201) + `", "slug": "cats"}]`, "longer than"},
		{"bad slug", `[{"title": "Cats", "slug": "cats and dogs"}]`, "invalid slug"},
		{"empty slug", `[{"title": "Cats", "slug": ""}]`, "invalid slug"},
		{"duplicate slug", `[{"title": "A", "slug": "x"}, {"title": "B", "slug": "x"}]`, "duplicate slug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseGroups(strings.NewReader(tt.input))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("got %v, want error containing %q", err, tt.want)
			}
		})
	}
}
