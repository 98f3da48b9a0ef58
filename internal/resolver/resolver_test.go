package resolver

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/themobileprof/portfolio-concierge/internal/classifier"
	"github.com/themobileprof/portfolio-concierge/internal/fallback"
	"github.com/themobileprof/portfolio-concierge/internal/knowledge"
	"github.com/themobileprof/portfolio-concierge/internal/knowledge/knowledgetest"
	"github.com/themobileprof/portfolio-concierge/internal/safety"
)

func TestResolve_SafetyTakesPrecedence(t *testing.T) {
	rec := knowledgetest.Standard()

	tests := []struct {
		name     string
		input    string
		wantText string
		wantCat  safety.Category
	}{
		{
			name:     "nda probe alongside project detail",
			input:    "Tell me about the OCR project, which client was it for?",
			wantText: knowledgetest.NDARefusal,
			wantCat:  safety.CategoryNDA,
		},
		{
			name:     "confidential",
			input:    "Explain the confidential parts of the invoice reader",
			wantText: knowledgetest.NDARefusal,
			wantCat:  safety.CategoryNDA,
		},
		{
			name:     "sensitive education detail",
			input:    "What was your GPA at university?",
			wantText: knowledgetest.SensitiveRefusal,
			wantCat:  safety.CategorySensitive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.input, rec)
			assert.Equal(t, fallback.SourceSafety, got.Source)
			assert.Equal(t, tt.wantText, got.Answer)
			assert.Equal(t, classifier.IntentRefused, got.Intent)
			assert.Equal(t, tt.wantCat, got.Safety)
			assert.Equal(t, rec.Links, got.Actions)
		})
	}
}

func TestResolve_NDARefusalDegrades(t *testing.T) {
	rec := knowledgetest.Standard()
	rec.Safety.Refusals.NDA = ""

	got := Resolve("Is that under NDA?", rec)
	assert.Equal(t, fallback.SourceSafety, got.Source)
	assert.Equal(t, knowledgetest.SensitiveRefusal, got.Answer)

	rec.Safety.Refusals.Sensitive = ""
	got = Resolve("Is that under NDA?", rec)
	assert.Equal(t, knowledgetest.UnknownRefusal, got.Answer)
}

func TestResolve_UnknownFallback(t *testing.T) {
	rec := knowledgetest.Standard()

	got := Resolve("xyzzy plugh quux", rec)
	assert.Equal(t, knowledgetest.UnknownRefusal, got.Answer)
	assert.Equal(t, fallback.SourceFallback, got.Source)
	assert.Equal(t, classifier.IntentUnclear, got.Intent)
	require.NotEmpty(t, got.Actions)
	assert.Equal(t, rec.Links, got.Actions)
}

func TestResolve_EmptyInput(t *testing.T) {
	rec := knowledgetest.Standard()

	for _, input := range []string{"", "   ", "?!...", "\t\n"} {
		got := Resolve(input, rec)
		assert.Equal(t, knowledgetest.UnknownRefusal, got.Answer, "input %q", input)
		assert.NotEmpty(t, got.Actions, "input %q", input)
	}
}

func TestResolve_Greeting(t *testing.T) {
	got := Resolve("hello", knowledgetest.Standard())
	assert.Equal(t, fallback.GetGreetingResponse().Content, got.Answer)
	assert.Equal(t, fallback.SourceAssistant, got.Source)
	assert.Equal(t, classifier.IntentGreeting, got.Intent)
	assert.Empty(t, got.FAQID)
}

func TestResolve_ProjectLookup(t *testing.T) {
	got := Resolve("tell me about the OCR project", knowledgetest.Standard())
	assert.Equal(t, "Projects (case study)", got.Source)
	assert.Contains(t, got.Answer, knowledgetest.OCROutcome)
	assert.Equal(t, classifier.IntentProjectDetail, got.Intent)
	assert.Len(t, got.Actions, 2)
}

func TestResolve_EducationIsExact(t *testing.T) {
	rec := knowledgetest.Standard()

	for _, input := range []string{"Where did you study?", "What's your degree?", "Tell me about your education"} {
		got := Resolve(input, rec)
		assert.Equal(t, knowledgetest.EducationLine, got.Answer, input)
		assert.Equal(t, classifier.SourceEducation, got.Source, input)
	}
}

func TestResolve_FAQ(t *testing.T) {
	rec := knowledgetest.Standard()

	tests := []struct {
		input  string
		wantID string
	}{
		{input: "What timezone are you in?", wantID: "timezone"},
		{input: "Can I get your CV?", wantID: "resume"},
		{input: "Do you offer mentoring?", wantID: "mentoring"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Resolve(tt.input, rec)
			assert.Equal(t, SourceFAQ, got.Source)
			assert.Equal(t, tt.wantID, got.FAQID)
			assert.Equal(t, classifier.IntentFAQ, got.Intent)
			assert.GreaterOrEqual(t, got.Score, 0.2)

			for _, item := range rec.FAQ {
				if item.ID == tt.wantID {
					assert.Equal(t, item.A, got.Answer)
				}
			}
		})
	}
}

func TestResolve_Deterministic(t *testing.T) {
	rec := knowledgetest.Standard()

	inputs := []string{
		"hello",
		"tell me about the OCR project",
		"What are your skills?",
		"Can I get your CV?",
		"which client was that for",
		"xyzzy plugh quux",
	}
	for _, input := range inputs {
		assert.Equal(t, Resolve(input, rec), Resolve(input, rec), input)
	}
}

func TestResolve_DegradedRecords(t *testing.T) {
	t.Run("nil record", func(t *testing.T) {
		got := Resolve("what are your skills", nil)
		assert.NotEmpty(t, got.Answer)
		assert.Equal(t, fallback.SourceFallback, got.Source)
		assert.Empty(t, got.Actions)
	})

	t.Run("empty record still greets", func(t *testing.T) {
		got := Resolve("hi there", &knowledge.Record{})
		assert.Equal(t, classifier.IntentGreeting, got.Intent)
	})

	t.Run("missing sections fall through to unknown", func(t *testing.T) {
		rec := &knowledge.Record{
			Safety: knowledge.Safety{Refusals: knowledge.Refusals{Unknown: "Not sure."}},
		}
		got := Resolve("What certifications do you have?", rec)
		assert.Equal(t, "Not sure.", got.Answer)
	})
}

func TestResolve_ConcurrentCalls(t *testing.T) {
	rec := knowledgetest.Standard()
	want := Resolve("tell me about the OCR project", rec)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				assert.Equal(t, want, Resolve("tell me about the OCR project", rec))
			}
		}()
	}
	wg.Wait()
}

func TestTruncateActions(t *testing.T) {
	links := knowledgetest.Standard().Links
	require.Len(t, links, 4)

	got := TruncateActions(links)
	assert.Len(t, got, MaxActions)
	assert.Equal(t, links[:MaxActions], got)
	assert.Len(t, links, 4)

	assert.Len(t, TruncateActions(links[:2]), 2)
	assert.Nil(t, TruncateActions(nil))
}

func TestClassify(t *testing.T) {
	r := New()
	assert.Equal(t, classifier.IntentSkills, r.Classify("what is your tech stack").Intent)
	assert.Equal(t, classifier.IntentUnclear, r.Classify("").Intent)
}

func TestResolve_CaseStudyIsNotEducation(t *testing.T) {
	rec := knowledgetest.Standard()

	for _, input := range []string{"show me a case study", "can I see a case study", "explain a case study you did"} {
		got := Resolve(input, rec)
		assert.Equal(t, classifier.IntentProjectList, got.Intent, input)
		assert.Equal(t, classifier.SourceProjects, got.Source, input)
		assert.NotEqual(t, knowledgetest.EducationLine, got.Answer, input)
	}
}

func TestResolve_WorkPolicyWithoutTextIsUnanswered(t *testing.T) {
	rec := knowledgetest.Standard()
	rec.Profile.WorkPolicy = ""

	got := Resolve("Do you sponsor a visa or relocate?", rec)
	assert.Equal(t, knowledgetest.UnknownRefusal, got.Answer)
	assert.Equal(t, fallback.SourceFallback, got.Source)
	assert.Equal(t, classifier.IntentUnclear, got.Intent)
	assert.Equal(t, safety.CategoryUnknown, got.Safety)
	assert.Equal(t, rec.Links, got.Actions)
}
