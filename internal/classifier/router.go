package classifier

import (
	"github.com/themobileprof/portfolio-concierge/internal/fallback"
	"github.com/themobileprof/portfolio-concierge/internal/faq"
	"github.com/themobileprof/portfolio-concierge/internal/knowledge"
)

// Provenance tags for routed answers
const (
	SourceCaseStudy      = "Projects (case study)"
	SourceHighlights     = "Highlights"
	SourceProjects       = "Projects"
	SourceSkills         = "Skills"
	SourceCertifications = "Certifications"
	SourceContact        = "Contact"
	SourceExperience     = "Experience"
	SourceEducation      = "Education"
	SourceWorkPolicy     = "Work policy"
)

// ProjectMatchThreshold is the minimum name overlap for the fuzzy project lookup
const ProjectMatchThreshold = 0.25

// Answer is a routed reply built from the knowledge record
type Answer struct {
	Content string
	Source  string
	Actions []knowledge.Link
}

// Route pairs a detector with the formatter that answers it. Answer returns
// false when the record lacks what the formatter needs; routing then moves
// on as if the detector had not matched.
type Route struct {
	Intent     Intent
	Confidence float64
	Detect     func(q Query) bool
	Answer     func(q Query, rec *knowledge.Record) (Answer, bool)
}

// Router dispatches a query to the first route that detects and answers it
type Router struct {
	routes []Route
}

// NewRouter returns the routes in precedence order
func NewRouter() *Router {
	return &Router{routes: DefaultRoutes()}
}

// NewRouterWithRoutes builds a router over a custom route list
func NewRouterWithRoutes(routes []Route) *Router {
	return &Router{routes: routes}
}

// DefaultRoutes lists the topic routes in precedence order
func DefaultRoutes() []Route {
	return []Route{
		{Intent: IntentGreeting, Confidence: 0.95, Detect: IsGreeting, Answer: answerGreeting},
		{Intent: IntentProjectDetail, Confidence: 0.9, Detect: HasDetailCue, Answer: answerProjectDetail},
		{Intent: IntentMetrics, Confidence: 0.8, Detect: isMetrics, Answer: answerHighlights},
		{Intent: IntentProjectList, Confidence: 0.8, Detect: isProjectList, Answer: answerProjectList},
		{Intent: IntentSkills, Confidence: 0.8, Detect: isSkills, Answer: answerSkills},
		{Intent: IntentCertifications, Confidence: 0.8, Detect: isCertification, Answer: answerCertifications},
		{Intent: IntentContact, Confidence: 0.8, Detect: isContact, Answer: answerContact},
		{Intent: IntentExperience, Confidence: 0.75, Detect: isExperience, Answer: answerExperience},
		{Intent: IntentEducation, Confidence: 0.75, Detect: isEducation, Answer: answerEducation},
		{Intent: IntentWorkPolicy, Confidence: 0.75, Detect: isWorkPolicy, Answer: answerWorkPolicy},
	}
}

// Route returns the first route that both detects the query and can answer
// it from rec. A nil record is treated as empty.
func (r *Router) Route(q Query, rec *knowledge.Record) (Intent, Answer, bool) {
	if q.IsEmpty() {
		return IntentUnclear, Answer{}, false
	}
	if rec == nil {
		rec = &knowledge.Record{}
	}

	for _, route := range r.routes {
		if !route.Detect(q) {
			continue
		}
		if ans, ok := route.Answer(q, rec); ok {
			return route.Intent, ans, true
		}
	}
	return IntentUnclear, Answer{}, false
}

// Classify reports the first detector that matches, ignoring whether the
// record could answer it
func (r *Router) Classify(q Query) ClassifierResult {
	if q.IsEmpty() {
		return ClassifierResult{Intent: IntentUnclear, Confidence: 0.1}
	}
	for _, route := range r.routes {
		if route.Detect(q) {
			return ClassifierResult{Intent: route.Intent, Confidence: route.Confidence}
		}
	}
	return ClassifierResult{Intent: IntentUnclear, Confidence: 0.3}
}

func answerGreeting(_ Query, _ *knowledge.Record) (Answer, bool) {
	resp := fallback.GetGreetingResponse()
	return Answer{Content: resp.Content, Source: resp.Source}, true
}

func answerProjectDetail(q Query, rec *knowledge.Record) (Answer, bool) {
	project, ok := FindProject(q, rec.Projects)
	if !ok {
		return Answer{}, false
	}
	return formatCaseStudy(project)
}

func answerHighlights(_ Query, rec *knowledge.Record) (Answer, bool) {
	return formatBullets(rec.Highlights, SourceHighlights)
}

func answerProjectList(_ Query, rec *knowledge.Record) (Answer, bool) {
	return formatProjectList(rec.Projects)
}

func answerSkills(_ Query, rec *knowledge.Record) (Answer, bool) {
	return formatSkills(rec.Skills)
}

func answerCertifications(_ Query, rec *knowledge.Record) (Answer, bool) {
	return formatCertifications(rec.Certifications)
}

func answerContact(_ Query, rec *knowledge.Record) (Answer, bool) {
	return formatContact(rec.Links)
}

func answerExperience(_ Query, rec *knowledge.Record) (Answer, bool) {
	return formatExperience(rec.Experience)
}

// answerEducation returns the approved line verbatim and nothing else
func answerEducation(_ Query, rec *knowledge.Record) (Answer, bool) {
	if rec.Education.ApprovedLine == "" {
		return Answer{}, false
	}
	return Answer{Content: rec.Education.ApprovedLine, Source: SourceEducation}, true
}

func answerWorkPolicy(_ Query, rec *knowledge.Record) (Answer, bool) {
	if rec.Profile.WorkPolicy != "" {
		return Answer{Content: rec.Profile.WorkPolicy, Source: SourceWorkPolicy}, true
	}
	resp := fallback.GetUnknownResponse(rec)
	return Answer{Content: resp.Content, Source: resp.Source, Actions: resp.Actions}, true
}

// FindProject resolves the project a query names: first through each
// project's keywords in record order, then by the best name overlap at or
// above ProjectMatchThreshold.
func FindProject(q Query, projects []knowledge.Project) (knowledge.Project, bool) {
	padded := " " + q.Normalized + " "
	for _, p := range projects {
		for _, kw := range p.Keywords {
			if containsPhrase(padded, kw) {
				return p, true
			}
		}
	}

	best, bestScore := -1, 0.0
	for i, p := range projects {
		score := faq.Overlap(q.Tokens, tokenizeName(p.Name))
		if score >= ProjectMatchThreshold && score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return knowledge.Project{}, false
	}
	return projects[best], true
}
