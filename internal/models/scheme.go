package models

import "strings"

// SchemeCategory drives iconography only.
type SchemeCategory string

const (
	SchemeWomen      SchemeCategory = "Women"
	SchemeFarmer     SchemeCategory = "Farmer"
	SchemeDriver     SchemeCategory = "Driver"
	SchemeStudent    SchemeCategory = "Student"
	SchemeHealth     SchemeCategory = "Health"
	SchemeHousing    SchemeCategory = "Housing"
	SchemeEmployment SchemeCategory = "Employment"
	SchemeGeneral    SchemeCategory = "General"
	SchemeFisherman  SchemeCategory = "Fisherman"
)

var SchemeCategories = []SchemeCategory{
	SchemeWomen, SchemeFarmer, SchemeDriver, SchemeStudent, SchemeHealth,
	SchemeHousing, SchemeEmployment, SchemeGeneral, SchemeFisherman,
}

// ParseSchemeCategory matches case-insensitively.
func ParseSchemeCategory(s string) (SchemeCategory, bool) {
	for _, c := range SchemeCategories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, true
		}
	}
	return "", false
}

type AgeRange struct {
	MinimumAge int `json:"minimumAge"`
	MaximumAge int `json:"maximumAge"`
}

type EligibilityCriteria struct {
	AgeRange AgeRange `json:"ageRange"`
	// IncomeLimit is inclusive; catalog.NoIncomeLimit means no limit.
	IncomeLimit int `json:"incomeLimit"`
	// SocialCategoryRequired empty means any category.
	SocialCategoryRequired []SocialCategory `json:"socialCategoryRequired"`
}

type Scheme struct {
	SchemeID            string              `json:"schemeId"`
	SchemeName          string              `json:"schemeName"`
	Description         string              `json:"description"`
	Category            SchemeCategory      `json:"category"`
	BenefitAmount       int                 `json:"benefitAmount"`
	BenefitCurrency     string              `json:"benefitCurrency"`
	ApplicablePortal    string              `json:"applicablePortal"`
	EligibilityCriteria EligibilityCriteria `json:"eligibilityCriteria"`
	DocumentsRequired   []string            `json:"documentsRequired"`
	ApplicationProcess  string              `json:"applicationProcess"`
	AlwaysEligible      bool                `json:"alwaysEligible,omitempty"`
}
