package relations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/ecodir/internal/models"
	"github.com/ajitpratap0/ecodir/internal/seed"
)

func find(t *testing.T, entities []models.Entity, name string) *models.Entity {
	t.Helper()
	for i := range entities {
		if entities[i].Name == name {
			return &entities[i]
		}
	}
	t.Fatalf("entity %q not in snapshot", name)
	return nil
}

func names(entities []models.Entity) []string {
	out := make([]string, len(entities))
	for i := range entities {
		out[i] = entities[i].Name
	}
	return out
}

func TestMaviIyzicoScenario(t *testing.T) {
	entities := []models.Entity{
		{ID: "b1", Name: "Mavi", Category: models.CategoryBrand,
			TechStack: []models.TechStackEntry{{Name: "Iyzico", Category: "Payment"}}},
		{ID: "t1", Name: "Iyzico", Category: models.CategoryTool},
	}
	mavi, iyzico := &entities[0], &entities[1]

	stack := BrandStack(entities, mavi)
	require.Len(t, stack, 1)
	require.True(t, stack[0].Resolved())
	assert.Equal(t, "t1", stack[0].Tool.ID)
	assert.Equal(t, "Payment", stack[0].Category)

	users := ToolUsers(entities, iyzico)
	assert.Equal(t, []string{"Mavi"}, names(users))
}

func TestToolUsersAgainstSeed(t *testing.T) {
	all := seed.Default()

	assert.Equal(t, []string{"Mavi"}, names(ToolUsers(all, find(t, all, "Akinon"))))
	assert.Equal(t, []string{"LC Waikiki"}, names(ToolUsers(all, find(t, all, "Segmentify"))))
	assert.Empty(t, ToolUsers(all, find(t, all, "Ticimax")))
}

func TestToolUsersNameMatchIgnoresCase(t *testing.T) {
	entities := []models.Entity{
		{ID: "b1", Name: "Koton", Category: models.CategoryBrand,
			TechStack: []models.TechStackEntry{{Name: "INSIDER"}}},
		{ID: "t2", Name: "insider", Category: models.CategoryTool},
	}
	assert.Len(t, ToolUsers(entities, &entities[1]), 1)
}

func TestToolUsersNoFuzzyMatch(t *testing.T) {
	entities := []models.Entity{
		{ID: "b1", Name: "Koton", Category: models.CategoryBrand,
			TechStack: []models.TechStackEntry{{Name: "Insider Growth"}}},
		{ID: "t2", Name: "Insider", Category: models.CategoryTool},
	}
	assert.Empty(t, ToolUsers(entities, &entities[1]))
}

func TestToolUsersByExplicitID(t *testing.T) {
	entities := []models.Entity{
		{ID: "b1", Name: "Koton", Category: models.CategoryBrand,
			TechStack: []models.TechStackEntry{{Name: "useinsider", ToolID: "t2"}}},
		{ID: "t2", Name: "Insider", Category: models.CategoryTool},
	}
	assert.Len(t, ToolUsers(entities, &entities[1]), 1)

	stack := BrandStack(entities, &entities[0])
	require.Len(t, stack, 1)
	require.NotNil(t, stack[0].Tool)
	assert.Equal(t, "t2", stack[0].Tool.ID)
}

func TestToolIDOverridesNameForBothDirections(t *testing.T) {
	entities := []models.Entity{
		{ID: "b1", Name: "Koton", Category: models.CategoryBrand,
			TechStack: []models.TechStackEntry{{Name: "Iyzico", ToolID: "t9"}}},
		{ID: "t1", Name: "Iyzico", Category: models.CategoryTool},
		{ID: "t9", Name: "Param", Category: models.CategoryTool},
	}
	koton, iyzico, param := &entities[0], &entities[1], &entities[2]

	stack := BrandStack(entities, koton)
	require.Len(t, stack, 1)
	require.True(t, stack[0].Resolved())
	assert.Equal(t, "t9", stack[0].Tool.ID)

	assert.Equal(t, []string{"Koton"}, names(ToolUsers(entities, param)))
	assert.Empty(t, ToolUsers(entities, iyzico))
}

func TestToolUsersFallsBackToNameForDanglingID(t *testing.T) {
	entities := []models.Entity{
		{ID: "b1", Name: "Koton", Category: models.CategoryBrand,
			TechStack: []models.TechStackEntry{{Name: "Iyzico", ToolID: "gone"}}},
		{ID: "t1", Name: "Iyzico", Category: models.CategoryTool},
	}
	assert.Equal(t, []string{"Koton"}, names(ToolUsers(entities, &entities[1])))

	stack := BrandStack(entities, &entities[0])
	require.Len(t, stack, 1)
	require.NotNil(t, stack[0].Tool)
	assert.Equal(t, "t1", stack[0].Tool.ID)
}

func TestToolUsersEmptyForNonTools(t *testing.T) {
	all := seed.Default()
	for _, name := range []string{"Mavi", "Positive"} {
		got := ToolUsers(all, find(t, all, name))
		assert.NotNil(t, got)
		assert.Empty(t, got, name)
	}
}

func TestToolUsersSkipsNonBrands(t *testing.T) {
	entities := []models.Entity{
		{ID: "a1", Name: "Agency", Category: models.CategoryAgency,
			TechStack: []models.TechStackEntry{{Name: "Iyzico"}}},
		{ID: "t1", Name: "Iyzico", Category: models.CategoryTool},
	}
	assert.Empty(t, ToolUsers(entities, &entities[1]))
}

func TestBrandStackEmptyForNonBrands(t *testing.T) {
	all := seed.Default()
	for _, name := range []string{"Iyzico", "Inveon"} {
		got := BrandStack(all, find(t, all, name))
		assert.NotNil(t, got)
		assert.Empty(t, got, name)
	}

	// A stack on a non-brand is advisory data and is ignored.
	odd := models.Entity{ID: "t9", Name: "Odd", Category: models.CategoryTool,
		TechStack: []models.TechStackEntry{{Name: "Iyzico"}}}
	assert.Empty(t, BrandStack(all, &odd))
}

func TestBrandStackKeepsUnresolvedEntries(t *testing.T) {
	all := seed.Default()
	stack := BrandStack(all, find(t, all, "LC Waikiki"))
	require.Len(t, stack, 3)

	assert.Equal(t, "Custom Built", stack[0].Name)
	assert.False(t, stack[0].Resolved())
	assert.Equal(t, "Segmentify", stack[1].Name)
	require.True(t, stack[1].Resolved())
	assert.Equal(t, "t5", stack[1].Tool.ID)
	assert.False(t, stack[2].Resolved())
}

func TestBrandStackOnlyResolvesTools(t *testing.T) {
	entities := []models.Entity{
		{ID: "b1", Name: "Koton", Category: models.CategoryBrand,
			TechStack: []models.TechStackEntry{{Name: "Positive"}}},
		{ID: "a1", Name: "Positive", Category: models.CategoryAgency},
	}
	stack := BrandStack(entities, &entities[0])
	require.Len(t, stack, 1)
	assert.Nil(t, stack[0].Tool)
}

func TestSimilarInvariants(t *testing.T) {
	all := seed.Default()
	for i := range all {
		e := &all[i]
		got := Similar(all, e, 4)
		assert.LessOrEqual(t, len(got), 4)

		own := map[string]struct{}{}
		for _, tag := range e.Tags {
			own[tag] = struct{}{}
		}
		prev := -1
		for j := range got {
			assert.NotEqual(t, e.ID, got[j].ID, "similar must exclude self")
			assert.Equal(t, e.Category, got[j].Category)
			score := SharedTags(own, got[j].Tags)
			if prev >= 0 {
				assert.LessOrEqual(t, score, prev, "similar must be sorted by score")
			}
			prev = score
		}
	}
}

func TestSimilarBrandsRanking(t *testing.T) {
	all := seed.Default()
	got := Similar(all, find(t, all, "Mavi"), DefaultSimilarLimit)
	// LC Waikiki and Divarese share "Fashion"; Getir shares nothing but
	// still fills a slot.
	assert.Equal(t, []string{"LC Waikiki", "Divarese", "Getir"}, names(got))
}

func TestSimilarIsStable(t *testing.T) {
	entities := []models.Entity{
		{ID: "x", Name: "X", Category: models.CategoryTool, Tags: []string{"a", "b"}},
		{ID: "1", Name: "One", Category: models.CategoryTool, Tags: []string{"z"}},
		{ID: "2", Name: "Two", Category: models.CategoryTool, Tags: []string{"a"}},
		{ID: "3", Name: "Three", Category: models.CategoryTool, Tags: []string{"y"}},
		{ID: "4", Name: "Four", Category: models.CategoryTool, Tags: []string{"b"}},
		{ID: "5", Name: "Five", Category: models.CategoryTool, Tags: []string{"a", "b"}},
		{ID: "6", Name: "Six", Category: models.CategoryBrand, Tags: []string{"a", "b"}},
	}
	got := Similar(entities, &entities[0], 4)
	assert.Equal(t, []string{"Five", "Two", "Four", "One"}, names(got))
}

func TestSimilarDefaultLimit(t *testing.T) {
	entities := make([]models.Entity, 0, 10)
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		entities = append(entities, models.Entity{ID: id, Name: id, Category: models.CategoryAgency})
	}
	assert.Len(t, Similar(entities, &entities[0], 0), DefaultSimilarLimit)
	assert.Len(t, Similar(entities, &entities[0], 2), 2)
	assert.Len(t, Similar(entities, &entities[0], 100), 6)
}

func TestDetail(t *testing.T) {
	all := seed.Default()

	d := Detail(all, find(t, all, "Iyzico"), 0)
	assert.Equal(t, "Iyzico", d.Entity.Name)
	assert.Equal(t, []string{"Mavi"}, names(d.UsedBy))
	assert.Empty(t, d.Stack)
	assert.Len(t, d.Similar, 4)

	d = Detail(all, find(t, all, "Mavi"), 2)
	assert.Empty(t, d.UsedBy)
	assert.Len(t, d.Stack, 3)
	assert.Len(t, d.Similar, 2)
}
