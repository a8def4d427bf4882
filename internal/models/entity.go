package models

import (
	"strings"
)

// PlaceholderLogoURL is the logo assigned to entities that arrive without one.
const PlaceholderLogoURL = "https://picsum.photos/100/100"

// Category classifies a directory entity.
type Category string

const (
	CategoryBrand  Category = "Brand"
	CategoryTool   Category = "Tech & Tools"
	CategoryAgency Category = "Agency"

	// CategoryAll is a filter selector only; no entity carries it.
	CategoryAll Category = "All"
)

// ValidCategories is the set of all valid entity categories, in display order.
var ValidCategories = []Category{
	CategoryBrand,
	CategoryTool,
	CategoryAgency,
}

// IsValid returns true if the category is one of the three entity categories.
func (c Category) IsValid() bool {
	for i := range ValidCategories {
		if c == ValidCategories[i] {
			return true
		}
	}
	return false
}

// ParseCategory accepts a canonical label or one of the short aliases
// brand, tool and agency (case-insensitive). "all" parses to CategoryAll.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for i := range ValidCategories {
		if strings.EqualFold(s, string(ValidCategories[i])) {
			return ValidCategories[i], true
		}
	}
	switch strings.ToLower(s) {
	case "brand", "brands":
		return CategoryBrand, true
	case "tool", "tools", "tech":
		return CategoryTool, true
	case "agency", "agencies":
		return CategoryAgency, true
	case "all", "":
		return CategoryAll, true
	}
	return "", false
}

// TechStackEntry is one third-party tool or platform a brand declares using.
// ToolID, when set, links the entry to a directory tool by identifier and
// takes precedence over name matching.
type TechStackEntry struct {
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category" yaml:"category"`
	Website  string `json:"website,omitempty" yaml:"website,omitempty"`
	ToolID   string `json:"toolId,omitempty" yaml:"toolId,omitempty"`
}

// Entity is a brand, tool or agency listed in the directory.
//
// TechStack is meaningful for brands, PricingModel for tools, and Services and
// Partners for agencies. Nothing enforces this; readers must not assume the
// other fields are empty.
type Entity struct {
	ID           string           `json:"id" yaml:"id"`
	Name         string           `json:"name" yaml:"name"`
	Category     Category         `json:"category" yaml:"category"`
	Description  string           `json:"description" yaml:"description"`
	LogoURL      string           `json:"logoUrl" yaml:"logoUrl"`
	Tags         []string         `json:"tags" yaml:"tags"`
	WebsiteURL   string           `json:"websiteUrl" yaml:"websiteUrl"`
	TechStack    []TechStackEntry `json:"techStack,omitempty" yaml:"techStack,omitempty"`
	PricingModel string           `json:"pricingModel,omitempty" yaml:"pricingModel,omitempty"`
	Services     []string         `json:"services,omitempty" yaml:"services,omitempty"`
	Partners     []string         `json:"partners,omitempty" yaml:"partners,omitempty"`
}

// Clone returns a deep copy of e so the copy's slices can be mutated freely.
func (e Entity) Clone() Entity {
	out := e
	out.Tags = cloneStrings(e.Tags)
	out.Services = cloneStrings(e.Services)
	out.Partners = cloneStrings(e.Partners)
	if e.TechStack != nil {
		out.TechStack = make([]TechStackEntry, len(e.TechStack))
		copy(out.TechStack, e.TechStack)
	}
	return out
}

// HasTag reports whether tag appears in e.Tags (exact, case-sensitive).
func (e *Entity) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// DirectoryStats holds summary counts for the directory.
type DirectoryStats struct {
	TotalEntities      int              `json:"total_entities"`
	ByCategory         map[Category]int `json:"by_category"`
	PendingSubmissions int              `json:"pending_submissions"`
}
