package eligibility

import (
	"fmt"

	"schemesathi/internal/models"
	"schemesathi/internal/schemes/catalog"
)

// Reason explains a single scheme decision.
type Reason string

const (
	ReasonAlwaysEligible Reason = "always-eligible"
	ReasonRuleMatched    Reason = "rule-matched"
	ReasonIncomeExceeded Reason = "income-exceeded"
	ReasonRuleFailed     Reason = "rule-failed"
	ReasonNoRule         Reason = "no-rule"
	ReasonRulePanicked   Reason = "rule-panicked"
)

type Decision struct {
	SchemeID string `json:"schemeId"`
	Matched  bool   `json:"matched"`
	Reason   Reason `json:"reason"`
}

// Matcher is pure: no I/O, inputs are not modified, same inputs give the same set.
type Matcher struct {
	rules Rules
}

func NewMatcher(rules Rules) *Matcher {
	copied := make(Rules, len(rules))
	for id, pred := range rules {
		copied[id] = pred
	}
	return &Matcher{rules: copied}
}

// Match returns the ids of the schemes p qualifies for.
func (m *Matcher) Match(p models.Profile, schemes []models.Scheme) catalog.IDSet {
	out := catalog.NewIDSet()
	for _, s := range schemes {
		if d := m.decide(p, s); d.Matched {
			out.Add(s.SchemeID)
		}
	}
	return out
}

// Explain returns one decision per scheme, in input order.
func (m *Matcher) Explain(p models.Profile, schemes []models.Scheme) []Decision {
	out := make([]Decision, 0, len(schemes))
	for _, s := range schemes {
		out = append(out, m.decide(p, s))
	}
	return out
}

// Unruled lists the schemes that can never match: not alwaysEligible and without a rule.
func (m *Matcher) Unruled(schemes []models.Scheme) []string {
	var ids []string
	for _, s := range schemes {
		if _, ok := m.rules[s.SchemeID]; !ok && !s.AlwaysEligible {
			ids = append(ids, s.SchemeID)
		}
	}
	return ids
}

func (m *Matcher) decide(p models.Profile, s models.Scheme) (d Decision) {
	d.SchemeID = s.SchemeID

	if s.AlwaysEligible {
		d.Matched, d.Reason = true, ReasonAlwaysEligible
		return d
	}

	rule, ok := m.rules[s.SchemeID]
	if !ok {
		d.Reason = ReasonNoRule
		return d
	}

	defer func() {
		if r := recover(); r != nil {
			d.Matched, d.Reason = false, ReasonRulePanicked
		}
	}()

	switch {
	case !IncomeWithinLimit(p, s):
		d.Reason = ReasonIncomeExceeded
	case rule(p, s):
		d.Matched, d.Reason = true, ReasonRuleMatched
	default:
		d.Reason = ReasonRuleFailed
	}
	return d
}

// String is used in log fields.
func (d Decision) String() string {
	return fmt.Sprintf("%s:%t(%s)", d.SchemeID, d.Matched, d.Reason)
}
