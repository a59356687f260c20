package eligibility

import "schemesathi/internal/models"

// Rules maps a schemeId to its hard-coded predicate. The income limit is applied on top of
// every rule by the Matcher.
type Rules map[string]Predicate

// DefaultRules covers the Andhra Pradesh catalog. dr-ntr-vaidya-seva has no entry: it is
// flagged alwaysEligible in the catalog.
func DefaultRules() Rules {
	var (
		female  = GenderIs(models.GenderFemale)
		farmer  = OccupationIs(models.OccupationFarmer)
		student = OccupationIs(models.OccupationStudent)
	)

	return Rules{
		"aadabidda-nidhi":     All(female, Structured),
		"annadata-sukhibhava": All(farmer, LandHoldingSmall, Structured),
		"ysr-vahana-mitra":    All(OccupationIs(models.OccupationDriver), Structured),
		"thalliki-vandanam":   All(female, FamilySizeAtLeast(2), Structured),
		"ysr-cheyutha": All(female, AgeBetween(45, 60),
			CategoryIn(models.CategorySC, models.CategoryST, models.CategoryBC, models.CategoryMinority)),
		"indiramma-housing":           HouseTypeNot(models.HouseOwned),
		"ap-skill-development":        All(Structured, OccupationIs(models.OccupationStudent, models.OccupationUnemployed)),
		"ntr-bharosa-pension":         MinAge(60),
		"dokka-seethamma-midday-meal": All(Structured, student),
		"rythu-bharosa":               All(farmer, LandHoldingBounded),
		"ysr-kapu-nestham":            All(female, AgeBetween(45, 60), CategoryIn(models.CategoryBC, models.CategoryGeneral)),
		"ysr-pension-kanuka":          All(HasDisability, Structured),
		"jagananna-vidya-deevena":     All(student, Structured),
		"ysr-matsyakara-bharosa":      All(OccupationIs(models.OccupationFisherman), Structured),
	}
}
