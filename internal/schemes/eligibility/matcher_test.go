package eligibility

import (
	"math/rand"
	"testing"

	"schemesathi/internal/models"
	"schemesathi/internal/schemes/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefaultMatcher() (*Matcher, *catalog.Catalog) {
	return NewMatcher(DefaultRules()), catalog.Default()
}

func TestMatch_RetiredFarmer(t *testing.T) {
	m, c := newDefaultMatcher()
	p := models.Profile{
		Age:          models.IntPtr(62),
		AnnualIncome: models.IntPtr(50000),
		Occupation:   models.OccupationFarmer,
		HouseType:    models.HouseNone,
		Category:     models.CategorySC,
		Gender:       models.GenderMale,
	}

	got := m.Match(p, c.All())

	assert.Equal(t, []string{
		"dr-ntr-vaidya-seva",
		"indiramma-housing",
		"ntr-bharosa-pension",
		"rythu-bharosa",
	}, got.Sorted())
}

func TestMatch_IncomeAboveLimit(t *testing.T) {
	m, c := newDefaultMatcher()
	p := models.Profile{
		Age:          models.IntPtr(30),
		AnnualIncome: models.IntPtr(200000),
		Occupation:   models.OccupationEmployed,
		HouseType:    models.HouseOwned,
		Category:     models.CategoryGeneral,
		Gender:       models.GenderMale,
	}

	got := m.Match(p, c.All())
	for _, s := range c.All() {
		if s.EligibilityCriteria.IncomeLimit == 120000 {
			assert.False(t, got.Has(s.SchemeID), s.SchemeID)
		}
	}
	assert.True(t, got.Has("dr-ntr-vaidya-seva"))
}

func TestMatch_EmptyProfile(t *testing.T) {
	m, c := newDefaultMatcher()

	var got catalog.IDSet
	require.NotPanics(t, func() { got = m.Match(models.Profile{}, c.All()) })

	// rythu-bharosa needs a farmer, so only the universal scheme is left.
	assert.Equal(t, []string{"dr-ntr-vaidya-seva"}, got.Sorted())
}

func TestMatch_RuleSpecifics(t *testing.T) {
	m, c := newDefaultMatcher()

	tests := []struct {
		name    string
		profile models.Profile
		scheme  string
		want    bool
	}{
		{
			name: "small farmer gets annadata",
			profile: models.Profile{Age: models.IntPtr(40), AnnualIncome: models.IntPtr(90000),
				Occupation: models.OccupationFarmer, LandHolding: "0-3 wet"},
			scheme: "annadata-sukhibhava",
			want:   true,
		},
		{
			name: "large holding excluded from rythu bharosa",
			profile: models.Profile{Age: models.IntPtr(40), AnnualIncome: models.IntPtr(90000),
				Occupation: models.OccupationFarmer, LandHolding: ">25 dry"},
			scheme: "rythu-bharosa",
			want:   false,
		},
		{
			name: "mother of two",
			profile: models.Profile{Age: models.IntPtr(32), AnnualIncome: models.IntPtr(80000),
				Gender: models.GenderFemale, FamilySize: models.IntPtr(4)},
			scheme: "thalliki-vandanam",
			want:   true,
		},
		{
			name: "single woman not thalliki",
			profile: models.Profile{Age: models.IntPtr(32), AnnualIncome: models.IntPtr(80000),
				Gender: models.GenderFemale, FamilySize: models.IntPtr(1)},
			scheme: "thalliki-vandanam",
			want:   false,
		},
		{
			name: "cheyutha boundary age 60",
			profile: models.Profile{Age: models.IntPtr(60), AnnualIncome: models.IntPtr(100000),
				Gender: models.GenderFemale, Category: models.CategoryST},
			scheme: "ysr-cheyutha",
			want:   true,
		},
		{
			name: "kapu nestham for BC woman",
			profile: models.Profile{Age: models.IntPtr(50), AnnualIncome: models.IntPtr(100000),
				Gender: models.GenderFemale, Category: models.CategoryBC},
			scheme: "ysr-kapu-nestham",
			want:   true,
		},
		{
			name: "disabled senior gets pension kanuka",
			profile: models.Profile{Age: models.IntPtr(65), AnnualIncome: models.IntPtr(60000),
				Disability: models.BoolPtr(true)},
			scheme: "ysr-pension-kanuka",
			want:   true,
		},
		{
			name:    "disability undeclared",
			profile: models.Profile{Age: models.IntPtr(65), AnnualIncome: models.IntPtr(60000)},
			scheme:  "ysr-pension-kanuka",
			want:    false,
		},
		{
			name:    "unemployed youth skill development",
			profile: models.Profile{Age: models.IntPtr(24), Occupation: models.OccupationUnemployed},
			scheme:  "ap-skill-development",
			want:    true,
		},
		{
			name:    "student outside midday meal ages",
			profile: models.Profile{Age: models.IntPtr(16), Occupation: models.OccupationStudent},
			scheme:  "dokka-seethamma-midday-meal",
			want:    false,
		},
		{
			name: "auto driver",
			profile: models.Profile{Age: models.IntPtr(38), AnnualIncome: models.IntPtr(140000),
				Occupation: models.OccupationDriver},
			scheme: "ysr-vahana-mitra",
			want:   true,
		},
		{
			name:    "fisherman over age range",
			profile: models.Profile{Age: models.IntPtr(61), Occupation: models.OccupationFisherman},
			scheme:  "ysr-matsyakara-bharosa",
			want:    false,
		},
		{
			name:    "house type missing",
			profile: models.Profile{Age: models.IntPtr(40), AnnualIncome: models.IntPtr(50000)},
			scheme:  "indiramma-housing",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Match(tt.profile, c.All())
			assert.Equal(t, tt.want, got.Has(tt.scheme))
		})
	}
}

func TestMatch_IncomeExclusionIsMonotonic(t *testing.T) {
	m, c := newDefaultMatcher()
	rng := rand.New(rand.NewSource(42))

	genders := []models.Gender{models.GenderMale, models.GenderFemale, models.GenderOther}
	occupations := []models.Occupation{
		models.OccupationFarmer, models.OccupationStudent, models.OccupationDriver,
		models.OccupationFisherman, models.OccupationUnemployed, models.OccupationEmployed,
	}
	categories := []models.SocialCategory{
		models.CategorySC, models.CategoryST, models.CategoryBC, models.CategoryGeneral, models.CategoryMinority,
	}
	houses := []models.HouseType{models.HouseOwned, models.HouseRented, models.HouseNone}
	holdings := []string{"", "0-3 wet", "0-10 dry", ">25 dry"}

	for i := 0; i < 2000; i++ {
		p := models.Profile{
			Age:          models.IntPtr(rng.Intn(101)),
			AnnualIncome: models.IntPtr(rng.Intn(400000)),
			FamilySize:   models.IntPtr(1 + rng.Intn(8)),
			Gender:       genders[rng.Intn(len(genders))],
			Occupation:   occupations[rng.Intn(len(occupations))],
			Category:     categories[rng.Intn(len(categories))],
			HouseType:    houses[rng.Intn(len(houses))],
			LandHolding:  holdings[rng.Intn(len(holdings))],
			Disability:   models.BoolPtr(rng.Intn(2) == 0),
		}

		got := m.Match(p, c.All())
		for _, s := range c.All() {
			limit := s.EligibilityCriteria.IncomeLimit
			if limit != catalog.NoIncomeLimit && *p.AnnualIncome > limit {
				require.False(t, got.Has(s.SchemeID), "profile %d matched %s above limit", i, s.SchemeID)
			}
		}
		require.True(t, got.Has("dr-ntr-vaidya-seva"))
	}
}

func TestMatch_Deterministic(t *testing.T) {
	m, c := newDefaultMatcher()
	p := models.Profile{Age: models.IntPtr(50), AnnualIncome: models.IntPtr(100000), Gender: models.GenderFemale,
		Category: models.CategoryBC, HouseType: models.HouseRented}
	schemes := c.All()

	first := m.Match(p, schemes).Sorted()
	second := m.Match(p, schemes).Sorted()
	assert.Equal(t, first, second)
	assert.Equal(t, c.All(), schemes)
}

func TestMatcher_PanickingRuleIsContained(t *testing.T) {
	rules := DefaultRules()
	rules["rythu-bharosa"] = func(models.Profile, models.Scheme) bool {
		var m map[string]int
		m["boom"]++
		return true
	}
	m := NewMatcher(rules)
	c := catalog.Default()

	p := models.Profile{Age: models.IntPtr(70), AnnualIncome: models.IntPtr(10000), Occupation: models.OccupationFarmer}
	got := m.Match(p, c.All())

	assert.False(t, got.Has("rythu-bharosa"))
	assert.True(t, got.Has("ntr-bharosa-pension"))
}

func TestMatcher_ExplainAndUnruled(t *testing.T) {
	m, c := newDefaultMatcher()
	assert.Empty(t, m.Unruled(c.All()))

	extra := models.Scheme{SchemeID: "new-scheme", SchemeName: "New",
		EligibilityCriteria: models.EligibilityCriteria{IncomeLimit: catalog.NoIncomeLimit}}
	assert.Equal(t, []string{"new-scheme"}, m.Unruled(append(c.All(), extra)))

	p := models.Profile{Age: models.IntPtr(62), AnnualIncome: models.IntPtr(500000)}
	decisions := m.Explain(p, c.All())
	require.Len(t, decisions, c.Len())

	byID := map[string]Decision{}
	for _, d := range decisions {
		byID[d.SchemeID] = d
	}
	assert.Equal(t, ReasonAlwaysEligible, byID["dr-ntr-vaidya-seva"].Reason)
	assert.Equal(t, ReasonIncomeExceeded, byID["ntr-bharosa-pension"].Reason)
	assert.Equal(t, ReasonRuleFailed, byID["rythu-bharosa"].Reason)
}
