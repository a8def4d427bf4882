// Package seed provides the directory's starting entity set.
package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ajitpratap0/ecodir/internal/models"
)

// Default returns a fresh copy of the built-in seed list.
func Default() []models.Entity {
	out := make([]models.Entity, len(defaultEntities))
	for i := range defaultEntities {
		out[i] = defaultEntities[i].Clone()
	}
	return out
}

// LoadFile reads a YAML list of entities from path and validates it.
func LoadFile(path string) ([]models.Entity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: reading %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML list of entities and validates it.
func Parse(data []byte) ([]models.Entity, error) {
	var entities []models.Entity
	if err := yaml.Unmarshal(data, &entities); err != nil {
		return nil, fmt.Errorf("seed: decoding yaml: %w", err)
	}
	if err := Validate(entities); err != nil {
		return nil, err
	}
	for i := range entities {
		if entities[i].Tags == nil {
			entities[i].Tags = []string{}
		}
		if entities[i].LogoURL == "" {
			entities[i].LogoURL = models.PlaceholderLogoURL
		}
	}
	return entities, nil
}

// Validate checks that every entity has an id, a name and a valid category,
// and that ids are unique.
func Validate(entities []models.Entity) error {
	seen := make(map[string]int, len(entities))
	for i := range entities {
		e := &entities[i]
		if e.ID == "" {
			return fmt.Errorf("seed: entity %d: id must not be empty", i)
		}
		if e.Name == "" {
			return fmt.Errorf("seed: entity %s: name must not be empty", e.ID)
		}
		if !e.Category.IsValid() {
			return fmt.Errorf("seed: entity %s: invalid category %q", e.ID, e.Category)
		}
		if prev, ok := seen[e.ID]; ok {
			return fmt.Errorf("seed: entity %d: duplicate id %s (first at %d)", i, e.ID, prev)
		}
		seen[e.ID] = i
	}
	return nil
}

var defaultEntities = []models.Entity{
	// Brands
	{
		ID:          "b1",
		Name:        "Mavi",
		Category:    models.CategoryBrand,
		Description: "Turkey’s leading global fashion lifestyle brand, known for high quality denim.",
		LogoURL:     "https://picsum.photos/100/100?random=1",
		Tags:        []string{"Fashion", "Apparel", "Global"},
		WebsiteURL:  "https://www.mavi.com",
		TechStack: []models.TechStackEntry{
			{Name: "Akinon", Category: "Infrastructure"},
			{Name: "Insider", Category: "Growth"},
			{Name: "Iyzico", Category: "Payment"},
		},
	},
	{
		ID:          "b2",
		Name:        "LC Waikiki",
		Category:    models.CategoryBrand,
		Description: `One of the world’s leading fashion retail brands with a philosophy that "Everyone deserves to dress well".`,
		LogoURL:     "https://picsum.photos/100/100?random=2",
		Tags:        []string{"Fashion", "Retail", "Mass Market"},
		WebsiteURL:  "https://www.lcwaikiki.com",
		TechStack: []models.TechStackEntry{
			{Name: "Custom Built", Category: "Infrastructure"},
			{Name: "Segmentify", Category: "Personalization"},
			{Name: "Vispera", Category: "Visual AI"},
		},
	},
	{
		ID:          "b3",
		Name:        "Getir",
		Category:    models.CategoryBrand,
		Description: "Pioneer of ultrafast grocery delivery, expanding globally from Turkey.",
		LogoURL:     "https://picsum.photos/100/100?random=3",
		Tags:        []string{"Q-Commerce", "Delivery", "Tech"},
		WebsiteURL:  "https://getir.com",
		TechStack: []models.TechStackEntry{
			{Name: "AWS", Category: "Cloud"},
			{Name: "Adjust", Category: "Attribution"},
			{Name: "Braze", Category: "CRM"},
		},
	},
	{
		ID:          "b4",
		Name:        "Divarese",
		Category:    models.CategoryBrand,
		Description: "Iconic footwear and accessory brand blending Italian heritage with modern style.",
		LogoURL:     "https://picsum.photos/100/100?random=4",
		Tags:        []string{"Footwear", "Luxury", "Fashion"},
		WebsiteURL:  "https://www.divarese.com.tr",
		TechStack: []models.TechStackEntry{
			{Name: "Magento", Category: "Infrastructure"},
			{Name: "Emarsys", Category: "Marketing Automation"},
		},
	},

	// Tools
	{
		ID:           "t1",
		Name:         "Iyzico",
		Category:     models.CategoryTool,
		Description:  "Democratizing financial services with an easy-to-use payment platform for e-commerce.",
		LogoURL:      "https://picsum.photos/100/100?random=5",
		Tags:         []string{"Fintech", "Payment Gateway", "infrastructure"},
		WebsiteURL:   "https://www.iyzico.com",
		PricingModel: "Commission Based",
	},
	{
		ID:           "t2",
		Name:         "Insider",
		Category:     models.CategoryTool,
		Description:  "A platform for individualized, cross-channel customer experiences.",
		LogoURL:      "https://picsum.photos/100/100?random=6",
		Tags:         []string{"MarTech", "Personalization", "AI"},
		WebsiteURL:   "https://useinsider.com",
		PricingModel: "Enterprise",
	},
	{
		ID:           "t3",
		Name:         "Akinon",
		Category:     models.CategoryTool,
		Description:  "Headless digital commerce platform for enterprise brands.",
		LogoURL:      "https://picsum.photos/100/100?random=7",
		Tags:         []string{"Infrastructure", "Headless", "Cloud"},
		WebsiteURL:   "https://akinon.com",
		PricingModel: "Enterprise",
	},
	{
		ID:           "t4",
		Name:         "Ticimax",
		Category:     models.CategoryTool,
		Description:  "Comprehensive e-commerce infrastructure provider popular among SMEs.",
		LogoURL:      "https://picsum.photos/100/100?random=8",
		Tags:         []string{"Infrastructure", "SME", "SaaS"},
		WebsiteURL:   "https://www.ticimax.com",
		PricingModel: "Subscription",
	},
	{
		ID:           "t5",
		Name:         "Segmentify",
		Category:     models.CategoryTool,
		Description:  "eCommerce personalization platform to increase conversion rates.",
		LogoURL:      "https://picsum.photos/100/100?random=9",
		Tags:         []string{"Personalization", "Analytics", "CRO"},
		WebsiteURL:   "https://www.segmentify.com",
		PricingModel: "Performance Based",
	},

	// Agencies
	{
		ID:          "a1",
		Name:        "Positive",
		Category:    models.CategoryAgency,
		Description: "Digital experience studio focusing on e-commerce strategy and design.",
		LogoURL:     "https://picsum.photos/100/100?random=10",
		Tags:        []string{"UX/UI", "Development", "Strategy"},
		WebsiteURL:  "https://positive.com.tr",
		Services:    []string{"Custom Development", "UX Design", "Consultancy"},
		Partners:    []string{"Akinon Partner", "Salesforce Partner"},
	},
	{
		ID:          "a2",
		Name:        "Moo F Digital",
		Category:    models.CategoryAgency,
		Description: "Full-service digital agency specializing in performance marketing and Shopify.",
		LogoURL:     "https://picsum.photos/100/100?random=11",
		Tags:        []string{"Marketing", "Shopify", "Performance"},
		WebsiteURL:  "https://moof.com.tr",
		Services:    []string{"Growth Marketing", "Shopify Development", "SEO"},
		Partners:    []string{"Shopify Experts", "Google Premier Partner"},
	},
	{
		ID:          "a3",
		Name:        "Inveon",
		Category:    models.CategoryAgency,
		Description: "Provides enterprise e-commerce platforms and growth management services.",
		LogoURL:     "https://picsum.photos/100/100?random=12",
		Tags:        []string{"Enterprise", "Growth", "Consultancy"},
		WebsiteURL:  "https://inveon.com",
		Services:    []string{"Omnichannel Strategy", "Digital Growth Management"},
		Partners:    []string{"Global Partnerships"},
	},
}
