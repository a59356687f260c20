package merge

import (
	"testing"

	"schemesathi/internal/models"
	"schemesathi/internal/schemes/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_NameJoinDoesNotDuplicateUniversalScheme(t *testing.T) {
	c := catalog.Default()
	recs := []models.Recommendation{{SchemeName: "Dr. NTR Vaidya Seva Scheme", Reasoning: "covers hospital costs"}}

	withoutAlways := Merge(catalog.NewIDSet(), recs, catalog.NewIDSet(), c.All())
	require.Len(t, withoutAlways, 1)
	assert.Equal(t, "dr-ntr-vaidya-seva", withoutAlways[0].SchemeID)

	withAlways := Merge(catalog.NewIDSet(), recs, c.AlwaysShown(), c.All())
	assert.Equal(t, []string{"dr-ntr-vaidya-seva"}, IDs(withAlways))
}

func TestMerge_AlwaysShownSurvivesMissingAIOutput(t *testing.T) {
	c := catalog.Default()
	rules := catalog.NewIDSet("rythu-bharosa")

	for name, recs := range map[string][]models.Recommendation{
		"nil":   nil,
		"empty": {},
		"junk":  {{SchemeName: "Imaginary Scheme"}},
	} {
		t.Run(name, func(t *testing.T) {
			got := IDs(Merge(rules, recs, c.AlwaysShown(), c.All()))
			assert.Equal(t, []string{"dr-ntr-vaidya-seva", "rythu-bharosa"}, got)
		})
	}
}

func TestMerge_CatalogOrderAndIdempotence(t *testing.T) {
	c := catalog.Default()
	rules := catalog.NewIDSet("ysr-matsyakara-bharosa", "indiramma-housing")
	recs := []models.Recommendation{
		{SchemeID: "aadabidda-nidhi", SchemeName: "wrong name is ignored"},
		{SchemeName: "Rythu Bharosa Scheme"},
		{SchemeName: "Rythu Bharosa Scheme"},
	}

	first := Merge(rules, recs, c.AlwaysShown(), c.All())
	second := Merge(rules, recs, c.AlwaysShown(), c.All())

	assert.Equal(t, first, second)
	assert.Equal(t, []string{
		"aadabidda-nidhi",
		"dr-ntr-vaidya-seva",
		"indiramma-housing",
		"rythu-bharosa",
		"ysr-matsyakara-bharosa",
	}, IDs(first))
}

func TestResolve(t *testing.T) {
	c := catalog.Default()
	recs := []models.Recommendation{
		{SchemeID: "ntr-bharosa-pension"},
		{SchemeID: "no-such-id", SchemeName: "YSR Cheyutha Scheme"},
		{SchemeName: "ysr cheyutha scheme"},
		{SchemeID: "ghost", SchemeName: "Ghost"},
	}

	ids, unresolved := Resolve(recs, c.All())

	assert.Equal(t, []string{"ntr-bharosa-pension", "ysr-cheyutha"}, ids.Sorted())
	require.Len(t, unresolved, 2)
	assert.Equal(t, "unknown scheme name", unresolved[0].Reason)
	assert.Equal(t, "unknown scheme id and name", unresolved[1].Reason)
}
