package project

import "strings"

// Filter returns the projects matching all three predicates:
//   - category: "all" or exact category match
//   - brand: "all" or exact brand_id match
//   - query: empty or a case-insensitive substring of the title, summary,
//     or any tag
//
// It is a pure function: the result is always an order-preserving subset of
// the input, neutral arguments return the input unchanged, and identical
// calls yield identical results.
func Filter(projects []Project, category, brand, query string) []Project {
	query = strings.ToLower(strings.TrimSpace(query))

	result := make([]Project, 0, len(projects))
	for _, p := range projects {
		if !matchesCategory(p, category) {
			continue
		}
		if !matchesBrand(p, brand) {
			continue
		}
		if !matchesQuery(p, query) {
			continue
		}
		result = append(result, p)
	}
	return result
}

func matchesCategory(p Project, category string) bool {
	return category == "" || category == FilterAll || string(p.Category) == category
}

func matchesBrand(p Project, brand string) bool {
	return brand == "" || brand == FilterAll || p.BrandID == brand
}

func matchesQuery(p Project, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Summary), query) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}
