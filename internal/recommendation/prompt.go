package recommendation

import (
	"fmt"
	"strings"

	"schemesathi/internal/models"
)

const systemPrompt = "You are an expert advisor on Indian government schemes, specifically for Andhra Pradesh."

const summarySystemPrompt = "You are an assistant that summarizes government schemes, highlighting key benefits and requirements so citizens can assess their relevance quickly."

func (c *Client) buildRecommendPrompt(p models.Profile) string {
	var parts []string

	parts = append(parts, "Based on the citizen's profile below, recommend exactly three schemes from the catalog.")

	parts = append(parts, "\nCitizen Details:")
	parts = append(parts, profileLines(p)...)

	parts = append(parts, "\nCatalog (schemeId: schemeName):")
	for _, s := range c.catalog.All() {
		parts = append(parts, fmt.Sprintf("- %s: %s", s.SchemeID, s.SchemeName))
	}

	parts = append(parts, "\nRules:")
	if p.HouseType == models.HouseOwned {
		parts = append(parts, "1. Health (1 scheme): recommend ONE health or medical scheme. The citizen owns a house, so do not recommend a housing scheme.")
	} else {
		parts = append(parts, "1. Health or Housing (1 scheme): recommend ONE health/medical scheme OR one housing scheme.")
	}
	parts = append(parts, "2. Occupation (1 scheme): recommend ONE scheme directly relevant to the stated occupation. For 'unemployed' or 'housewife', pick a welfare or empowerment scheme.")
	parts = append(parts, "3. Income/Category (1 scheme): recommend ONE financial assistance or empowerment scheme based on income level and social category.")
	parts = append(parts, "Only include schemes the citizen qualifies for. Each reasoning must name the criteria the citizen meets (age, income, occupation, category).")

	parts = append(parts, "\nOutput:")
	parts = append(parts, `Return a JSON array of exactly three objects: {"schemeId": string, "schemeName": string, "reasoning": string}.`)
	parts = append(parts, "Use schemeId and schemeName exactly as written in the catalog. Do not include a match score or any other field.")

	return strings.Join(parts, "\n")
}

func profileLines(p models.Profile) []string {
	var lines []string
	add := func(label string, value interface{}) {
		lines = append(lines, fmt.Sprintf("%s: %v", label, value))
	}

	if p.Age != nil {
		add("Age", *p.Age)
	}
	if p.Gender != "" {
		add("Gender", p.Gender)
	}
	if p.AnnualIncome != nil {
		add("Annual Family Income (INR)", *p.AnnualIncome)
	}
	if p.FamilySize != nil {
		add("Family Size", *p.FamilySize)
	}
	if p.Location != "" {
		add("Location Type", p.Location)
	}
	if p.District != "" {
		add("District", p.District)
	}
	if p.Mandal != "" {
		add("Mandal", p.Mandal)
	}
	if p.Category != "" {
		add("Social Category", p.Category)
	}
	if p.Disability != nil {
		add("Disability", *p.Disability)
	}
	if p.Occupation != "" {
		add("Occupation", p.Occupation)
	}
	if p.LandHolding != "" {
		add("Land Holding (acres)", p.LandHolding)
	}
	if p.VehiclesOwned != nil {
		add("Owns 4-Wheeler", *p.VehiclesOwned)
	}
	if p.HouseType != "" {
		add("House Type", p.HouseType)
	}
	if p.EducationQualification != "" {
		add("Education", p.EducationQualification)
	}
	if len(lines) == 0 {
		lines = append(lines, "(no details provided)")
	}
	return lines
}

func buildSummaryPrompt(s models.Scheme) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("Scheme: %s", s.SchemeName))
	parts = append(parts, fmt.Sprintf("Category: %s", s.Category))
	parts = append(parts, fmt.Sprintf("Description: %s", s.Description))
	parts = append(parts, fmt.Sprintf("Benefit: %d %s", s.BenefitAmount, s.BenefitCurrency))
	if len(s.DocumentsRequired) > 0 {
		parts = append(parts, "Documents: "+strings.Join(s.DocumentsRequired, ", "))
	}
	parts = append(parts, fmt.Sprintf("How to apply: %s", s.ApplicationProcess))

	parts = append(parts, "\nReturn a JSON object {\"summary\": string} with a concise summary of at most four sentences.")
	return strings.Join(parts, "\n")
}
