// Package query derives the visible directory listing from a snapshot of
// entities and a filter state. Every function is pure and preserves the
// input order.
package query

import (
	"sort"
	"strings"

	"github.com/ajitpratap0/ecodir/internal/models"
)

// Result is everything a listing view needs for one filter state.
type Result struct {
	Filter        models.FilterState `json:"filter"`
	Items         []models.Entity    `json:"items"`
	AvailableTags []string           `json:"available_tags"`
}

// Run applies the category and text stages, derives the tag palette from
// that intermediate set, then applies the tag stage.
func Run(entities []models.Entity, filter models.FilterState) Result {
	base := ByCategoryAndText(entities, filter)
	return Result{
		Filter:        filter,
		Items:         ByTag(base, filter.Tag),
		AvailableTags: AvailableTags(base),
	}
}

// Visible returns the entities shown for filter.
func Visible(entities []models.Entity, filter models.FilterState) []models.Entity {
	return ByTag(ByCategoryAndText(entities, filter), filter.Tag)
}

// ByCategoryAndText keeps entities in the selected category (any category
// for All) whose name or description contains the query, ignoring case.
func ByCategoryAndText(entities []models.Entity, filter models.FilterState) []models.Entity {
	q := strings.ToLower(filter.Query)
	out := make([]models.Entity, 0, len(entities))
	for i := range entities {
		e := &entities[i]
		if !filter.IsAll() && e.Category != filter.Category {
			continue
		}
		if !MatchesText(e, q) {
			continue
		}
		out = append(out, *e)
	}
	return out
}

// MatchesText reports whether lowerQuery is a substring of the lower-cased
// name or description. An empty query matches everything.
func MatchesText(e *models.Entity, lowerQuery string) bool {
	if lowerQuery == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Name), lowerQuery) ||
		strings.Contains(strings.ToLower(e.Description), lowerQuery)
}

// ByTag keeps entities carrying tag exactly. An empty tag keeps everything.
func ByTag(entities []models.Entity, tag string) []models.Entity {
	if tag == "" {
		return entities
	}
	out := make([]models.Entity, 0, len(entities))
	for i := range entities {
		if entities[i].HasTag(tag) {
			out = append(out, entities[i])
		}
	}
	return out
}

// AvailableTags returns the sorted, deduplicated union of tags across
// entities. Comparison is case-sensitive.
func AvailableTags(entities []models.Entity) []string {
	seen := make(map[string]struct{})
	tags := make([]string, 0)
	for i := range entities {
		for _, t := range entities[i].Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	sort.Strings(tags)
	return tags
}
