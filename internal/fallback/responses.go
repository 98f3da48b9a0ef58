package fallback

import (
	"github.com/themobileprof/portfolio-concierge/internal/knowledge"
	"github.com/themobileprof/portfolio-concierge/internal/safety"
)

// Provenance tags for canned responses
const (
	SourceSafety    = "Safety policy"
	SourceFallback  = "Fallback"
	SourceAssistant = "Assistant"
)

// Response represents a canned or refusal response
type Response struct {
	Content string
	Source  string
	Actions []knowledge.Link
}

// lastResortRefusal is used only when the record carries no refusal text at all
const lastResortRefusal = "I can't answer that here. Please use the contact links to reach out directly."

// capabilityOverview is the greeting reply; it describes what can be asked
// rather than stating any fact about the site owner.
const capabilityOverview = "Hi! I can answer questions about projects, skills, certifications, experience, education, and how to get in touch. Try \"tell me about a project\" or \"what's your tech stack?\"."

// GetGreetingResponse returns the capability overview
func GetGreetingResponse() Response {
	return Response{
		Content: capabilityOverview,
		Source:  SourceAssistant,
	}
}

// GetRefusal returns the record's refusal for category, always with contact
// actions attached. Missing text degrades nda -> sensitive -> unknown.
func GetRefusal(rec *knowledge.Record, category safety.Category) Response {
	source := SourceSafety
	if category == safety.CategoryUnknown || category == safety.CategoryNone {
		source = SourceFallback
	}

	return Response{
		Content: refusalText(rec, category),
		Source:  source,
		Actions: ContactActions(rec),
	}
}

// GetUnknownResponse is the last-resort reply for unmatched queries
func GetUnknownResponse(rec *knowledge.Record) Response {
	return GetRefusal(rec, safety.CategoryUnknown)
}

// ContactActions returns a copy of the record's contact links
func ContactActions(rec *knowledge.Record) []knowledge.Link {
	if rec == nil || len(rec.Links) == 0 {
		return nil
	}
	actions := make([]knowledge.Link, 0, len(rec.Links))
	for _, l := range rec.Links {
		if l.URL == "" {
			continue
		}
		actions = append(actions, l)
	}
	return actions
}

func refusalText(rec *knowledge.Record, category safety.Category) string {
	if rec == nil {
		return lastResortRefusal
	}
	r := rec.Safety.Refusals

	switch category {
	case safety.CategoryNDA:
		if r.NDA != "" {
			return r.NDA
		}
		fallthrough
	case safety.CategorySensitive:
		if r.Sensitive != "" {
			return r.Sensitive
		}
	}

	if r.Unknown != "" {
		return r.Unknown
	}
	return lastResortRefusal
}

// IsRefusal reports whether source marks a policy refusal
func IsRefusal(source string) bool {
	return source == SourceSafety
}
