// Package catalog holds the immutable list of welfare schemes and the id set type shared by
// the matcher and the merger.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"schemesathi/internal/models"
)

// NoIncomeLimit as an incomeLimit means the scheme has no income ceiling.
const NoIncomeLimit = 999999

// IDSet is a set of scheme ids.
type IDSet map[string]struct{}

func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s IDSet) Add(id string) { s[id] = struct{}{} }

func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Union returns a new set; neither input is modified.
func (s IDSet) Union(other IDSet) IDSet {
	out := make(IDSet, len(s)+len(other))
	for id := range s {
		out[id] = struct{}{}
	}
	for id := range other {
		out[id] = struct{}{}
	}
	return out
}

// Sorted returns the ids in lexical order.
func (s IDSet) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Catalog is safe for concurrent use; nothing mutates it after New.
type Catalog struct {
	schemes []models.Scheme
	byID    map[string]int
	byName  map[string]int
}

// New validates schemes and indexes them by id and name.
func New(schemes []models.Scheme) (*Catalog, error) {
	if err := Validate(schemes); err != nil {
		return nil, err
	}

	c := &Catalog{
		schemes: make([]models.Scheme, len(schemes)),
		byID:    make(map[string]int, len(schemes)),
		byName:  make(map[string]int, len(schemes)),
	}
	for i, s := range schemes {
		c.schemes[i] = clone(s)
		c.byID[s.SchemeID] = i
		c.byName[s.SchemeName] = i
	}
	return c, nil
}

// Default returns the Andhra Pradesh catalog.
func Default() *Catalog {
	c, err := New(apSchemes)
	if err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	return c
}

// Validate checks id and name uniqueness and the sentinel conventions.
func Validate(schemes []models.Scheme) error {
	ids := make(map[string]bool, len(schemes))
	names := make(map[string]bool, len(schemes))

	for i, s := range schemes {
		switch {
		case strings.TrimSpace(s.SchemeID) == "":
			return fmt.Errorf("scheme %d: empty schemeId", i)
		case strings.TrimSpace(s.SchemeName) == "":
			return fmt.Errorf("scheme %s: empty schemeName", s.SchemeID)
		case ids[s.SchemeID]:
			return fmt.Errorf("duplicate schemeId %q", s.SchemeID)
		case names[s.SchemeName]:
			return fmt.Errorf("duplicate schemeName %q", s.SchemeName)
		}
		ids[s.SchemeID] = true
		names[s.SchemeName] = true

		ec := s.EligibilityCriteria
		if ec.AgeRange.MinimumAge < 0 || ec.AgeRange.MinimumAge > ec.AgeRange.MaximumAge {
			return fmt.Errorf("scheme %s: invalid age range %d-%d", s.SchemeID, ec.AgeRange.MinimumAge, ec.AgeRange.MaximumAge)
		}
		if ec.IncomeLimit < 0 {
			return fmt.Errorf("scheme %s: negative income limit", s.SchemeID)
		}
		if s.AlwaysEligible && ec.IncomeLimit != NoIncomeLimit {
			return fmt.Errorf("scheme %s: alwaysEligible schemes must not set an income limit", s.SchemeID)
		}
		if s.BenefitAmount < 0 {
			return fmt.Errorf("scheme %s: negative benefit amount", s.SchemeID)
		}
	}
	return nil
}

// All returns the schemes in declaration order. The slice is a copy.
func (c *Catalog) All() []models.Scheme {
	out := make([]models.Scheme, len(c.schemes))
	for i, s := range c.schemes {
		out[i] = clone(s)
	}
	return out
}

func (c *Catalog) Len() int { return len(c.schemes) }

func (c *Catalog) Get(id string) (models.Scheme, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Scheme{}, false
	}
	return clone(c.schemes[i]), true
}

// ByName is an exact, case-sensitive lookup.
func (c *Catalog) ByName(name string) (models.Scheme, bool) {
	i, ok := c.byName[name]
	if !ok {
		return models.Scheme{}, false
	}
	return clone(c.schemes[i]), true
}

// Index returns the declaration position of id, or -1.
func (c *Catalog) Index(id string) int {
	if i, ok := c.byID[id]; ok {
		return i
	}
	return -1
}

// AlwaysShown is the set of schemes flagged alwaysEligible.
func (c *Catalog) AlwaysShown() IDSet {
	out := NewIDSet()
	for _, s := range c.schemes {
		if s.AlwaysEligible {
			out.Add(s.SchemeID)
		}
	}
	return out
}

// Pick returns the catalog schemes whose ids are in set, in declaration order.
func (c *Catalog) Pick(set IDSet) []models.Scheme {
	out := make([]models.Scheme, 0, len(set))
	for _, s := range c.schemes {
		if set.Has(s.SchemeID) {
			out = append(out, clone(s))
		}
	}
	return out
}

func clone(s models.Scheme) models.Scheme {
	s.DocumentsRequired = append([]string(nil), s.DocumentsRequired...)
	s.EligibilityCriteria.SocialCategoryRequired = append([]models.SocialCategory{}, s.EligibilityCriteria.SocialCategoryRequired...)
	return s
}
