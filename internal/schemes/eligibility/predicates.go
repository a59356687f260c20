// Package eligibility decides which catalog schemes a profile qualifies for.
//
// A predicate that reads a field the profile does not carry returns false. Evaluation of the
// other schemes continues.
package eligibility

import (
	"strings"

	"schemesathi/internal/models"
	"schemesathi/internal/schemes/catalog"
)

// Predicate is one eligibility condition over a profile and the scheme being evaluated.
type Predicate func(p models.Profile, s models.Scheme) bool

func All(preds ...Predicate) Predicate {
	return func(p models.Profile, s models.Scheme) bool {
		for _, pred := range preds {
			if !pred(p, s) {
				return false
			}
		}
		return true
	}
}

func Any(preds ...Predicate) Predicate {
	return func(p models.Profile, s models.Scheme) bool {
		for _, pred := range preds {
			if pred(p, s) {
				return true
			}
		}
		return false
	}
}

// Not inverts pred. Note that Not of a predicate over a missing field is true; prefer the
// explicit negative predicates (HouseTypeNot) when absence must not match.
func Not(pred Predicate) Predicate {
	return func(p models.Profile, s models.Scheme) bool {
		return !pred(p, s)
	}
}

// AgeInRange checks the scheme's own age range, both ends inclusive.
func AgeInRange(p models.Profile, s models.Scheme) bool {
	r := s.EligibilityCriteria.AgeRange
	return p.Age != nil && *p.Age >= r.MinimumAge && *p.Age <= r.MaximumAge
}

// IncomeWithinLimit checks annualIncome <= incomeLimit. The NoIncomeLimit sentinel
// matches even when no income was declared.
func IncomeWithinLimit(p models.Profile, s models.Scheme) bool {
	limit := s.EligibilityCriteria.IncomeLimit
	if limit == catalog.NoIncomeLimit {
		return true
	}
	return p.AnnualIncome != nil && *p.AnnualIncome <= limit
}

// CategoryAllowed passes when the scheme lists no categories or lists the profile's.
func CategoryAllowed(p models.Profile, s models.Scheme) bool {
	required := s.EligibilityCriteria.SocialCategoryRequired
	if len(required) == 0 {
		return true
	}
	return containsCategory(required, p.Category)
}

// Structured is the criteria-driven predicate: age range, income limit and category.
var Structured = All(AgeInRange, IncomeWithinLimit, CategoryAllowed)

func OccupationIs(occupations ...models.Occupation) Predicate {
	return func(p models.Profile, _ models.Scheme) bool {
		if p.Occupation == "" {
			return false
		}
		for _, o := range occupations {
			if p.Occupation == o {
				return true
			}
		}
		return false
	}
}

func GenderIs(g models.Gender) Predicate {
	return func(p models.Profile, _ models.Scheme) bool {
		return p.Gender != "" && p.Gender == g
	}
}

// HouseTypeNot requires a declared house type different from h.
func HouseTypeNot(h models.HouseType) Predicate {
	return func(p models.Profile, _ models.Scheme) bool {
		return p.HouseType != "" && p.HouseType != h
	}
}

func MinAge(min int) Predicate {
	return func(p models.Profile, _ models.Scheme) bool {
		return p.Age != nil && *p.Age >= min
	}
}

func AgeBetween(min, max int) Predicate {
	return func(p models.Profile, _ models.Scheme) bool {
		return p.Age != nil && *p.Age >= min && *p.Age <= max
	}
}

// CategoryIn checks a fixed category list, independent of the scheme's criteria.
func CategoryIn(categories ...models.SocialCategory) Predicate {
	return func(p models.Profile, _ models.Scheme) bool {
		return containsCategory(categories, p.Category)
	}
}

// LandHoldingBounded fails only for an open-ended bracket such as ">25".
// landHolding is optional, so an undeclared holding is not unbounded.
func LandHoldingBounded(p models.Profile, _ models.Scheme) bool {
	return !strings.HasPrefix(strings.TrimSpace(p.LandHolding), ">")
}

// LandHoldingSmall requires a declared bracket starting at zero ("0-3 wet", "0-10 dry").
func LandHoldingSmall(p models.Profile, _ models.Scheme) bool {
	return strings.HasPrefix(strings.TrimSpace(p.LandHolding), "0-")
}

func HasDisability(p models.Profile, _ models.Scheme) bool {
	return p.Disability != nil && *p.Disability
}

func FamilySizeAtLeast(n int) Predicate {
	return func(p models.Profile, _ models.Scheme) bool {
		return p.FamilySize != nil && *p.FamilySize >= n
	}
}

func containsCategory(list []models.SocialCategory, c models.SocialCategory) bool {
	if c == "" {
		return false
	}
	for _, item := range list {
		if item == c {
			return true
		}
	}
	return false
}
