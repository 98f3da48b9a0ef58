package classifier

import (
	"regexp"
	"strings"

	"github.com/themobileprof/portfolio-concierge/internal/textnorm"
)

// Intent represents the topic a visitor query was routed to
type Intent string

const (
	IntentGreeting       Intent = "greeting"
	IntentProjectDetail  Intent = "project_detail"
	IntentMetrics        Intent = "metrics"
	IntentProjectList    Intent = "project_list"
	IntentSkills         Intent = "skills"
	IntentCertifications Intent = "certifications"
	IntentContact        Intent = "contact"
	IntentExperience     Intent = "experience"
	IntentEducation      Intent = "education"
	IntentWorkPolicy     Intent = "work_policy"
	IntentFAQ            Intent = "faq"
	IntentRefused        Intent = "refused"
	IntentUnclear        Intent = "unclear"
)

// ClassifierResult contains the classification result
type ClassifierResult struct {
	Intent     Intent  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

// Query is a visitor message prepared once for every detector
type Query struct {
	Raw        string
	Normalized string
	Tokens     []string

	// routing is the normalized text followed by the canonical form of
	// every token the synonym table knows, so "cv" also reads as "resume".
	routing string
}

// NewQuery normalizes and tokenizes raw
func NewQuery(raw string) Query {
	normalized := textnorm.Normalize(raw)
	tokens := textnorm.Tokenize(normalized)

	var b strings.Builder
	b.WriteString(normalized)
	for _, t := range strings.Fields(normalized) {
		if canon, ok := textnorm.Canonical(t); ok && canon != t {
			b.WriteByte(' ')
			b.WriteString(canon)
		}
	}

	return Query{
		Raw:        raw,
		Normalized: normalized,
		Tokens:     tokens,
		routing:    b.String(),
	}
}

// IsEmpty reports whether nothing survived normalization
func (q Query) IsEmpty() bool {
	return q.Normalized == ""
}

var (
	greetingPatterns = compilePatterns([]string{
		`^(hi|hello|hey|hiya|howdy|greetings|yo|hola)\b`,
		`^good (morning|afternoon|evening|day)\b`,
	})

	detailCuePatterns = compilePatterns([]string{
		`\b(tell me|explain|details?|describe|walk me through|deep dive|case study|more about|elaborate)\b`,
		`\bhow did you (build|make|design|approach)\b`,
	})

	metricsPatterns = compilePatterns([]string{
		`\b(metrics?|impact|results?|outcomes?|achievements?|accomplishments?|highlights?|kpis?|wins)\b`,
		`\bby the numbers\b`,
	})

	projectListPatterns = compilePatterns([]string{
		`\b(projects?|portfolio|case stud(y|ies)|work samples?)\b`,
	})

	skillsPatterns = compilePatterns([]string{
		`\b(skills?|skillset|stack|expertise|proficien(t|cy)|strengths?)\b`,
		`\bgood at\b`,
	})

	certificationPatterns = compilePatterns([]string{
		`\b(certifications?|certificates?|certified|certs?|credentials?|badges?)\b`,
	})

	contactPatterns = compilePatterns([]string{
		`\b(contact|email|e mail|reach|hire|linkedin|github|connect|socials?)\b`,
		`\bget in touch\b`,
	})

	experiencePatterns = compilePatterns([]string{
		`\b(experience|background|worked|career|employment)\b`,
		`\bwork history\b`,
		`\b(previous|past|prior) (jobs?|roles?|positions?)\b`,
	})

	educationPatterns = compilePatterns([]string{
		`\b(education|degree|university|college|school|studied|studying|academics?)\b`,
		`\b(you|did you|do you) study\b`,
		`\bstudy at\b`,
		`\b(graduat\w*|bachelor\w*|bsc|msc|masters?)\b`,
	})

	workPolicyPatterns = compilePatterns([]string{
		`\b(remote|relocat\w*|onsite|hybrid|visa|sponsorship|availab\w*|freelance|contract\w*)\b`,
		`\b(on site|in office|full time|part time|notice period|work policy)\b`,
		`\bopen to (work|roles?|opportunities|offers)\b`,
	})
)

// IsGreeting reports whether the query opens with a conversational opener
func IsGreeting(q Query) bool {
	return matchesPatterns(q.Normalized, greetingPatterns)
}

// HasDetailCue reports whether the visitor asked for a detailed explanation
func HasDetailCue(q Query) bool {
	return matchesPatterns(q.routing, detailCuePatterns)
}

func isMetrics(q Query) bool       { return matchesPatterns(q.routing, metricsPatterns) }
func isProjectList(q Query) bool   { return matchesPatterns(q.routing, projectListPatterns) }
func isSkills(q Query) bool        { return matchesPatterns(q.routing, skillsPatterns) }
func isCertification(q Query) bool { return matchesPatterns(q.routing, certificationPatterns) }
func isContact(q Query) bool       { return matchesPatterns(q.routing, contactPatterns) }
func isExperience(q Query) bool    { return matchesPatterns(q.routing, experiencePatterns) }
func isEducation(q Query) bool     { return matchesPatterns(q.routing, educationPatterns) }
func isWorkPolicy(q Query) bool    { return matchesPatterns(q.routing, workPolicyPatterns) }

// matchesPatterns checks if any pattern matches
func matchesPatterns(text string, patterns []*regexp.Regexp) bool {
	if text == "" {
		return false
	}
	for _, pattern := range patterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}

// compilePatterns compiles a slice of regex patterns
func compilePatterns(patterns []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(p))
	}
	return compiled
}
