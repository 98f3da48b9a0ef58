package safety

import (
	"regexp"
)

// Category names a refusal in the knowledge record
type Category string

const (
	CategoryNone      Category = ""
	CategoryNDA       Category = "nda"
	CategorySensitive Category = "sensitive"
	CategoryUnknown   Category = "unknown"
)

// Verdict is the outcome of the safety gate
type Verdict struct {
	Blocked  bool     `json:"blocked"`
	Category Category `json:"category,omitempty"`
	Pattern  string   `json:"pattern,omitempty"`
}

type rule struct {
	category Category
	pattern  *regexp.Regexp
}

// Patterns are written against normalized text: lowercase, no punctuation,
// single spaces ("client's name" arrives as "client s name").
var (
	ndaPatterns = compilePatterns(CategoryNDA, []string{
		`\bndas?\b`,
		`\bnon ?disclosure\b`,
		`\bconfidential(ity)?\b`,
		`\b(company|client|customer|employer)( s)? names?\b`,
		`\bname (of )?(the |your |that |this )?(company|client|customer|employer)\b`,
		`\bwho (was|is) (it|that|this) (for|built for|made for)\b`,
		`\bwho did you (build|make|do|create) (it|this|that) for\b`,
		`\b(which|what) (company|client|customer)\b`,
	})

	sensitivePatterns = compilePatterns(CategorySensitive, []string{
		`\b(disciplinary|discipline|misconduct|suspension|expelled|expulsion)\b`,
		`\b(lawsuit|litigation|sued|legal action|arrest(ed)?|criminal|convict(ed|ion)?)\b`,
		`\b(medical|diagnos(is|ed)|illness|disabilit(y|ies)|health condition|therapy|medication)\b`,
		`\b(registrar|transcripts?|gpa|grades?|marks sheet|case (number|no|id)s?|student (id|number))\b`,
		`\b(ssn|social security|home address|date of birth|salary history)\b`,
	})
)

// Classifier is the pattern gate that runs before any routing
type Classifier struct {
	rules []rule
}

// NewClassifier returns the gate with NDA probes ordered before the broader
// sensitive-topic markers so the more specific refusal wins.
func NewClassifier() *Classifier {
	rules := make([]rule, 0, len(ndaPatterns)+len(sensitivePatterns))
	rules = append(rules, ndaPatterns...)
	rules = append(rules, sensitivePatterns...)
	return &Classifier{rules: rules}
}

// Classify checks normalized query text against the gate
func (c *Classifier) Classify(normalized string) Verdict {
	if normalized == "" {
		return Verdict{}
	}
	for _, r := range c.rules {
		if r.pattern.MatchString(normalized) {
			return Verdict{
				Blocked:  true,
				Category: r.category,
				Pattern:  r.pattern.String(),
			}
		}
	}
	return Verdict{}
}

func compilePatterns(category Category, patterns []string) []rule {
	compiled := make([]rule, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, rule{
			category: category,
			pattern:  regexp.MustCompile(p),
		})
	}
	return compiled
}
