// Package recommend turns a calculated plan into ordered advisory messages.
// Rules are plain data grouped into tiers, so goal-specific thresholds live
// in the goal profile rather than in code paths.
package recommend

import (
	"github.com/rgehrsitz/goalplan/internal/domain"
)

// Rule produces one message when its predicate holds
type Rule struct {
	ID     string
	Kind   domain.RecommendationKind
	When   func(Facts) bool
	Render func(Facts) string
}

// Group is one tier of rules. An exclusive group stops at the first matching
// rule; otherwise every matching rule fires.
type Group struct {
	Name      string
	Exclusive bool
	// Applies gates the whole group; nil means always.
	Applies func(Facts) bool
	Rules   []Rule
}

// Engine evaluates groups in order and concatenates their messages
type Engine struct {
	Groups []Group
}

// NewEngine creates an engine over the given groups
func NewEngine(groups ...Group) *Engine {
	return &Engine{Groups: groups}
}

// DefaultEngine uses the built-in rule table
func DefaultEngine() *Engine {
	return NewEngine(DefaultGroups()...)
}

// Evaluate runs every group against the facts
func (e *Engine) Evaluate(f Facts) []domain.Recommendation {
	var out []domain.Recommendation
	e.each(f, func(r Rule) {
		out = append(out, domain.Recommendation{Kind: r.Kind, Text: r.Render(f)})
	})
	return out
}

// Matches returns the IDs of rules that fire, in evaluation order
func (e *Engine) Matches(f Facts) []string {
	var ids []string
	e.each(f, func(r Rule) {
		ids = append(ids, r.ID)
	})
	return ids
}

func (e *Engine) each(f Facts, fire func(Rule)) {
	for _, g := range e.Groups {
		if g.Applies != nil && !g.Applies(f) {
			continue
		}
		for _, r := range g.Rules {
			if r.When != nil && !r.When(f) {
				continue
			}
			fire(r)
			if g.Exclusive {
				break
			}
		}
	}
}
