package models

// ChatRole identifies the author of a transcript message.
type ChatRole string

const (
	RoleUser  ChatRole = "user"
	RoleModel ChatRole = "model"
)

// ChatMessage is one line of the assistant transcript.
type ChatMessage struct {
	Role ChatRole `json:"role"`
	Text string   `json:"text"`
}

// EntitySummary is the per-entity context sent to the assistant.
type EntitySummary struct {
	Name        string           `json:"name"`
	Category    Category         `json:"category"`
	Description string           `json:"description"`
	Tags        []string         `json:"tags"`
	TechStack   []TechStackEntry `json:"techStack,omitempty"`
	Partners    []string         `json:"partners,omitempty"`
}

// Summarize builds the assistant context snapshot for entities.
func Summarize(entities []Entity) []EntitySummary {
	out := make([]EntitySummary, 0, len(entities))
	for i := range entities {
		e := &entities[i]
		out = append(out, EntitySummary{
			Name:        e.Name,
			Category:    e.Category,
			Description: e.Description,
			Tags:        e.Tags,
			TechStack:   e.TechStack,
			Partners:    e.Partners,
		})
	}
	return out
}

// EntityDraft is a best-effort entity record suggested by the URL inspector.
// Any field may be empty; ToEntity fills the gaps.
type EntityDraft struct {
	Name         string           `json:"name"`
	Category     Category         `json:"category"`
	Description  string           `json:"description"`
	Tags         []string         `json:"tags"`
	LogoURL      string           `json:"logoUrl"`
	WebsiteURL   string           `json:"websiteUrl"`
	PricingModel string           `json:"pricingModel,omitempty"`
	Services     []string         `json:"services,omitempty"`
	TechStack    []TechStackEntry `json:"techStack,omitempty"`
}

// ToEntity turns the draft into an insertable entity under id. Missing name
// becomes "Unknown", missing category Brand, missing logo the placeholder and
// missing website the inspected URL.
func (d *EntityDraft) ToEntity(id, inspectedURL string) Entity {
	e := Entity{
		ID:           id,
		Name:         d.Name,
		Category:     d.Category,
		Description:  d.Description,
		LogoURL:      d.LogoURL,
		Tags:         cloneStrings(d.Tags),
		WebsiteURL:   d.WebsiteURL,
		PricingModel: d.PricingModel,
		Services:     cloneStrings(d.Services),
	}
	if len(d.TechStack) > 0 {
		e.TechStack = make([]TechStackEntry, len(d.TechStack))
		copy(e.TechStack, d.TechStack)
	}
	if e.Name == "" {
		e.Name = "Unknown"
	}
	if e.Category == "" {
		e.Category = CategoryBrand
	}
	if e.LogoURL == "" {
		e.LogoURL = PlaceholderLogoURL
	}
	if e.WebsiteURL == "" {
		e.WebsiteURL = inspectedURL
	}
	if e.Tags == nil {
		e.Tags = []string{}
	}
	return e
}
