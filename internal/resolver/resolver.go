// Package resolver turns a visitor question into a grounded answer drawn
// from a knowledge record.
//
// Resolution is a single pass with no state kept between calls:
//
//	received -> safety-checked -> refused | routed | faq-matched | unknown
//
// The safety gate always runs first and its refusal is final.
package resolver

import (
	"github.com/themobileprof/portfolio-concierge/internal/classifier"
	"github.com/themobileprof/portfolio-concierge/internal/fallback"
	"github.com/themobileprof/portfolio-concierge/internal/faq"
	"github.com/themobileprof/portfolio-concierge/internal/knowledge"
	"github.com/themobileprof/portfolio-concierge/internal/safety"
)

// SourceFAQ tags answers taken from a matched FAQ item
const SourceFAQ = "FAQ"

// MaxActions is how many quick links a transport should surface
const MaxActions = 3

// Result is the outcome of resolving one message
type Result struct {
	Answer  string            `json:"answer"`
	Source  string            `json:"source"`
	Actions []knowledge.Link  `json:"actions,omitempty"`
	Intent  classifier.Intent `json:"intent"`
	FAQID   string            `json:"faqId,omitempty"`
	Safety  safety.Category   `json:"-"`
	Score   float64           `json:"-"`
}

// Resolver holds the fixed tables used for resolution. It has no mutable
// state and is safe for concurrent use.
type Resolver struct {
	gate   *safety.Classifier
	router *classifier.Router
}

// New builds a resolver with the default safety gate and route table
func New() *Resolver {
	return &Resolver{
		gate:   safety.NewClassifier(),
		router: classifier.NewRouter(),
	}
}

var std = New()

// Resolve answers text from rec using the default resolver
func Resolve(text string, rec *knowledge.Record) Result {
	return std.Resolve(text, rec)
}

// Resolve answers text from rec. It never fails: empty or unmatched input
// ends in the record's unknown refusal with contact actions attached, and a
// nil record behaves like an empty one.
func (r *Resolver) Resolve(text string, rec *knowledge.Record) Result {
	if rec == nil {
		rec = &knowledge.Record{}
	}

	q := classifier.NewQuery(text)
	if q.IsEmpty() {
		return unknown(rec)
	}

	if verdict := r.gate.Classify(q.Normalized); verdict.Blocked {
		resp := fallback.GetRefusal(rec, verdict.Category)
		return Result{
			Answer:  resp.Content,
			Source:  resp.Source,
			Actions: resp.Actions,
			Intent:  classifier.IntentRefused,
			Safety:  verdict.Category,
		}
	}

	if intent, ans, ok := r.router.Route(q, rec); ok {
		// a route that could only offer the unknown refusal leaves the
		// question unanswered
		if ans.Source == fallback.SourceFallback {
			return unknown(rec)
		}
		return Result{
			Answer:  ans.Content,
			Source:  ans.Source,
			Actions: ans.Actions,
			Intent:  intent,
		}
	}

	if cand, ok := faq.Match(q.Tokens, rec.FAQ); ok {
		return Result{
			Answer: cand.Item.A,
			Source: SourceFAQ,
			Intent: classifier.IntentFAQ,
			FAQID:  cand.Item.ID,
			Score:  cand.Score,
		}
	}

	return unknown(rec)
}

// Classify reports the intent a message would be routed to, for logging
func (r *Resolver) Classify(text string) classifier.ClassifierResult {
	return r.router.Classify(classifier.NewQuery(text))
}

// TruncateActions caps actions at MaxActions without modifying the input
func TruncateActions(actions []knowledge.Link) []knowledge.Link {
	if len(actions) <= MaxActions {
		return actions
	}
	out := make([]knowledge.Link, MaxActions)
	copy(out, actions[:MaxActions])
	return out
}

func unknown(rec *knowledge.Record) Result {
	resp := fallback.GetUnknownResponse(rec)
	return Result{
		Answer:  resp.Content,
		Source:  resp.Source,
		Actions: resp.Actions,
		Intent:  classifier.IntentUnclear,
		Safety:  safety.CategoryUnknown,
	}
}
