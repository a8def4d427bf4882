// Package relations resolves cross-entity links at read time: which brands
// use a tool, which directory tools a brand's stack points at, and which
// same-category entities share the most tags.
//
// Nothing is indexed. Every call scans the snapshot it is given.
package relations

import (
	"sort"
	"strings"

	"github.com/ajitpratap0/ecodir/internal/models"
)

// DefaultSimilarLimit is the number of similar entities shown on a detail view.
const DefaultSimilarLimit = 4

// ResolvedStackEntry pairs a declared stack entry with the directory tool it
// names. Tool is nil when the entry is mentioned but not indexed.
type ResolvedStackEntry struct {
	models.TechStackEntry
	Tool *models.Entity `json:"directoryItem,omitempty"`
}

// Resolved reports whether the entry links to a directory tool.
func (r ResolvedStackEntry) Resolved() bool { return r.Tool != nil }

// EntityDetail is the detail view of one entity.
type EntityDetail struct {
	Entity  models.Entity        `json:"entity"`
	UsedBy  []models.Entity      `json:"used_by"`
	Stack   []ResolvedStackEntry `json:"stack"`
	Similar []models.Entity      `json:"similar"`
}

// Detail assembles the detail view for e.
func Detail(entities []models.Entity, e *models.Entity, similarLimit int) EntityDetail {
	return EntityDetail{
		Entity:  *e,
		UsedBy:  ToolUsers(entities, e),
		Stack:   BrandStack(entities, e),
		Similar: Similar(entities, e, similarLimit),
	}
}

// ToolUsers returns the brands whose tech stack resolves to tool, by the
// same rule BrandStack uses: an explicit tool id wins, otherwise a
// case-insensitive exact name. It returns an empty slice when tool is not a
// tool.
func ToolUsers(entities []models.Entity, tool *models.Entity) []models.Entity {
	out := make([]models.Entity, 0)
	if tool.Category != models.CategoryTool {
		return out
	}
	for i := range entities {
		b := &entities[i]
		if b.Category != models.CategoryBrand {
			continue
		}
		for _, s := range b.TechStack {
			if j := toolIndex(entities, s); j >= 0 && entities[j].ID == tool.ID {
				out = append(out, *b)
				break
			}
		}
	}
	return out
}

// BrandStack resolves each entry of brand's tech stack against the
// directory's tools. It returns an empty slice when brand is not a brand.
func BrandStack(entities []models.Entity, brand *models.Entity) []ResolvedStackEntry {
	out := make([]ResolvedStackEntry, 0, len(brand.TechStack))
	if brand.Category != models.CategoryBrand {
		return out
	}
	for _, s := range brand.TechStack {
		entry := ResolvedStackEntry{TechStackEntry: s}
		if j := toolIndex(entities, s); j >= 0 {
			t := entities[j].Clone()
			entry.Tool = &t
		}
		out = append(out, entry)
	}
	return out
}

// toolIndex returns the index of the tool s refers to, or -1. The explicit
// id link is preferred; name matching is the fallback.
func toolIndex(entities []models.Entity, s models.TechStackEntry) int {
	if s.ToolID != "" {
		for i := range entities {
			if entities[i].Category == models.CategoryTool && entities[i].ID == s.ToolID {
				return i
			}
		}
	}
	name := strings.ToLower(s.Name)
	for i := range entities {
		if entities[i].Category == models.CategoryTool && strings.ToLower(entities[i].Name) == name {
			return i
		}
	}
	return -1
}

// Similar returns up to limit entities of e's category, excluding e, ranked
// by the number of e's tags they also carry. Ties keep snapshot order, and
// candidates with no shared tags still fill remaining slots. A limit <= 0
// means DefaultSimilarLimit.
func Similar(entities []models.Entity, e *models.Entity, limit int) []models.Entity {
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}

	own := make(map[string]struct{}, len(e.Tags))
	for _, t := range e.Tags {
		own[t] = struct{}{}
	}

	type scored struct {
		entity models.Entity
		score  int
	}
	candidates := make([]scored, 0, len(entities))
	for i := range entities {
		c := &entities[i]
		if c.ID == e.ID || c.Category != e.Category {
			continue
		}
		candidates = append(candidates, scored{entity: *c, score: SharedTags(own, c.Tags)})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	out := make([]models.Entity, len(candidates))
	for i := range candidates {
		out[i] = candidates[i].entity
	}
	return out
}

// SharedTags counts the tags in candidate that are also in own.
func SharedTags(own map[string]struct{}, candidate []string) int {
	n := 0
	for _, t := range candidate {
		if _, ok := own[t]; ok {
			n++
		}
	}
	return n
}
