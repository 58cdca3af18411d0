package project

import (
	"reflect"
	"testing"
)

func TestFilterNeutralArgsReturnInputUnchanged(t *testing.T) {
	projects := FallbackProjects()

	got := Filter(projects, FilterAll, FilterAll, "")
	if !reflect.DeepEqual(got, projects) {
		t.Fatalf("neutral filter changed the input: got %d projects, want %d", len(got), len(projects))
	}
}

func TestFilterReturnsOrderPreservingSubset(t *testing.T) {
	projects := FallbackProjects()

	got := Filter(projects, FilterAll, FilterAll, "a")
	if len(got) > len(projects) {
		t.Fatalf("filter grew the input: %d > %d", len(got), len(projects))
	}

	// Every result must appear in the input, in input order.
	idx := 0
	for _, g := range got {
		found := false
		for ; idx < len(projects); idx++ {
			if projects[idx].ID == g.ID {
				found = true
				idx++
				break
			}
		}
		if !found {
			t.Fatalf("result %q is not an in-order member of the input", g.ID)
		}
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	projects := FallbackProjects()

	once := Filter(projects, "marketing", FilterAll, "seo")
	twice := Filter(once, "marketing", FilterAll, "seo")
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("second application changed the result: %v vs %v", once, twice)
	}
}

func TestFilterByCategory(t *testing.T) {
	projects := FallbackProjects()

	got := Filter(projects, "branding", FilterAll, "")
	if len(got) != 1 {
		t.Fatalf("expected 1 branding project, got %d", len(got))
	}
	if got[0].Title != "Nova Health Rebrand" {
		t.Fatalf("expected Nova Health Rebrand, got %q", got[0].Title)
	}
}

func TestFilterByBrand(t *testing.T) {
	projects := FallbackProjects()

	got := Filter(projects, FilterAll, "iautodidact", "")
	if len(got) != 1 {
		t.Fatalf("expected 1 iautodidact project, got %d", len(got))
	}
	if got[0].Slug != "rally" {
		t.Fatalf("expected rally, got %q", got[0].Slug)
	}
}

func TestFilterQueryMatchesTagsCaseInsensitive(t *testing.T) {
	projects := FallbackProjects()

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"tag match", "seo", 1},
		{"tag match uppercase", "SEO", 1},
		{"title match", "rally", 1},
		{"summary match", "identity", 1},
		{"no match", "zzz", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(projects, FilterAll, FilterAll, tt.query)
			if len(got) != tt.want {
				t.Fatalf("query %q: expected %d results, got %d", tt.query, tt.want, len(got))
			}
		})
	}
}

func TestFilterPredicatesAreConjunctive(t *testing.T) {
	projects := FallbackProjects()

	// "seo" matches the Rally project, but Rally is marketing, not web.
	got := Filter(projects, "web", FilterAll, "seo")
	if len(got) != 0 {
		t.Fatalf("expected no results for web+seo, got %d", len(got))
	}

	got = Filter(projects, "marketing", "iautodidact", "seo")
	if len(got) != 1 {
		t.Fatalf("expected 1 result when all predicates match, got %d", len(got))
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	projects := FallbackProjects()
	before := make([]Project, len(projects))
	copy(before, projects)

	Filter(projects, "branding", "meauxbility", "nova")

	if !reflect.DeepEqual(projects, before) {
		t.Fatal("filter mutated its input slice")
	}
}
