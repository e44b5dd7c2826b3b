// Package classifier recommends an execution tier for a task
// description using regular-expression rules. It is a sibling
// tool to the workset engine: the two share nothing but a
// repository, and the classifier consumes no engine state.
//
// # Quick Start
//
//	c := classifier.New()
//	rec := c.Classify("refactor the auth module across services")
//	fmt.Println(rec.Tier) // complex
//
// Custom rule sets load from JSON and are validated against an
// embedded JSON Schema before any pattern is compiled, so a
// malformed rules file fails loudly at load time rather than
// at classification time.
package classifier

import (
	"regexp"
	"strings"
)

// Tier is a recommended execution tier.
type Tier string

const (
	// TierSimple suits single-step lookups and small edits.
	TierSimple Tier = "simple"

	// TierStandard is the default tier for ordinary tasks.
	TierStandard Tier = "standard"

	// TierComplex suits multi-step work that benefits from
	// planning and a larger context budget.
	TierComplex Tier = "complex"
)

// Rule associates regex patterns with a tier and a weight.
// Every pattern that matches the input contributes the rule's
// weight toward its tier.
type Rule struct {
	Tier     Tier     `json:"tier"`
	Weight   float64  `json:"weight"`
	Patterns []string `json:"patterns"`
}

type compiledRule struct {
	tier    Tier
	weight  float64
	regexps []*regexp.Regexp
}

// Recommendation is the result of classifying a task.
type Recommendation struct {
	// Tier is the recommended execution tier.
	Tier Tier

	// Score is the summed weight of the winning tier's
	// matches. Zero when nothing matched.
	Score float64

	// Matched lists the patterns that matched, across all
	// tiers, in rule order.
	Matched []string
}

// Classifier recommends tiers from free text. Safe to share
// across goroutines after construction: classification only
// reads the compiled rules.
type Classifier struct {
	rules []compiledRule
}

// New creates a Classifier with the default rule set.
func New() *Classifier {
	c, err := NewWithRules(DefaultRules())
	if err != nil {
		// Default rules are compiled in tests; a failure
		// here is a programmer error.
		panic("classifier: default rules invalid: " + err.Error())
	}
	return c
}

// NewWithRules creates a Classifier from the given rules.
// Returns an error if any pattern fails to compile.
func NewWithRules(rules []Rule) (*Classifier, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, rule := range rules {
		cr := compiledRule{tier: rule.Tier, weight: rule.Weight}
		for _, pattern := range rule.Patterns {
			re, err := regexp.Compile(pattern)
			if err != nil {
				return nil, err
			}
			cr.regexps = append(cr.regexps, re)
		}
		compiled = append(compiled, cr)
	}
	return &Classifier{rules: compiled}, nil
}

// Classify scores text against every rule and returns the
// highest-scoring tier. Ties resolve toward the more complex
// tier — underestimating task complexity is the costlier
// mistake. Text that matches nothing gets TierStandard with a
// zero score.
func (c *Classifier) Classify(text string) Recommendation {
	lowered := strings.ToLower(text)

	scores := make(map[Tier]float64)
	var matched []string
	for _, rule := range c.rules {
		for _, re := range rule.regexps {
			if re.MatchString(lowered) {
				scores[rule.tier] += rule.weight
				matched = append(matched, re.String())
			}
		}
	}

	if len(scores) == 0 {
		return Recommendation{Tier: TierStandard}
	}

	best := TierSimple
	for _, tier := range []Tier{
		TierSimple, TierStandard, TierComplex,
	} {
		if scores[tier] >= scores[best] && scores[tier] > 0 {
			best = tier
		}
	}
	return Recommendation{
		Tier:    best,
		Score:   scores[best],
		Matched: matched,
	}
}

// DefaultRules returns the built-in rule set.
func DefaultRules() []Rule {
	return []Rule{
		{
			Tier:   TierSimple,
			Weight: 1,
			Patterns: []string{
				`\b(what is|look ?up|show|list|print)\b`,
				`\b(rename|typo|format)\b`,
			},
		},
		{
			Tier:   TierStandard,
			Weight: 1,
			Patterns: []string{
				`\b(fix|add|update|write|implement)\b`,
				`\b(test|document|explain)\b`,
			},
		},
		{
			Tier:   TierComplex,
			Weight: 2,
			Patterns: []string{
				`\b(refactor|redesign|architect|migrate)\b`,
				`\b(analyze|investigate|optimi[sz]e)\b`,
				`\b(multi[- ]step|across|end[- ]to[- ]end)\b`,
			},
		},
	}
}
