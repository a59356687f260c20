// Package merge combines rule matches, AI recommendations and always-shown schemes into the
// list presented to the user.
package merge

import (
	"schemesathi/internal/models"
	"schemesathi/internal/schemes/catalog"
)

// Unresolved is a recommendation that points at no catalog scheme.
type Unresolved struct {
	Recommendation models.Recommendation
	Reason         string
}

// Resolve maps recommendations to scheme ids. A schemeId present in schemes wins; otherwise
// the exact, case-sensitive schemeName is used.
func Resolve(recs []models.Recommendation, schemes []models.Scheme) (catalog.IDSet, []Unresolved) {
	byID := make(map[string]struct{}, len(schemes))
	byName := make(map[string]string, len(schemes))
	for _, s := range schemes {
		byID[s.SchemeID] = struct{}{}
		byName[s.SchemeName] = s.SchemeID
	}

	ids := catalog.NewIDSet()
	var unresolved []Unresolved
	for _, rec := range recs {
		if _, ok := byID[rec.SchemeID]; ok && rec.SchemeID != "" {
			ids.Add(rec.SchemeID)
			continue
		}
		if id, ok := byName[rec.SchemeName]; ok {
			ids.Add(id)
			continue
		}

		reason := "unknown scheme name"
		if rec.SchemeID != "" {
			reason = "unknown scheme id and name"
		}
		unresolved = append(unresolved, Unresolved{Recommendation: rec, Reason: reason})
	}
	return ids, unresolved
}

// Merge returns ruleMatches ∪ resolved(aiRecommendations) ∪ alwaysShown as full scheme records,
// deduplicated by schemeId, in the order of schemes. A nil aiRecommendations means no
// recommendation was made or it failed.
func Merge(ruleMatches catalog.IDSet, aiRecommendations []models.Recommendation, alwaysShown catalog.IDSet, schemes []models.Scheme) []models.Scheme {
	ids := catalog.NewIDSet().Union(ruleMatches).Union(alwaysShown)
	if aiRecommendations != nil {
		resolved, _ := Resolve(aiRecommendations, schemes)
		ids = ids.Union(resolved)
	}

	out := make([]models.Scheme, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, s := range schemes {
		if !ids.Has(s.SchemeID) {
			continue
		}
		if _, dup := seen[s.SchemeID]; dup {
			continue
		}
		seen[s.SchemeID] = struct{}{}
		out = append(out, s)
	}
	return out
}

// IDs projects schemes to their ids, keeping order.
func IDs(schemes []models.Scheme) []string {
	out := make([]string, len(schemes))
	for i, s := range schemes {
		out[i] = s.SchemeID
	}
	return out
}
