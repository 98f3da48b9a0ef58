package safety

import (
	"testing"

	"github.com/themobileprof/portfolio-concierge/internal/textnorm"
)

func TestClassifier_Classify(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantBlocked  bool
		wantCategory Category
	}{
		// NDA probes
		{name: "nda word", input: "Is the OCR project under NDA?", wantBlocked: true, wantCategory: CategoryNDA},
		{name: "non-disclosure", input: "any non-disclosure agreements?", wantBlocked: true, wantCategory: CategoryNDA},
		{name: "client's name", input: "What was the client's name?", wantBlocked: true, wantCategory: CategoryNDA},
		{name: "company name", input: "tell me the company name for the chat gateway", wantBlocked: true, wantCategory: CategoryNDA},
		{name: "who was it for", input: "Who was it for?", wantBlocked: true, wantCategory: CategoryNDA},
		{name: "who did you build it for", input: "who did you build this for", wantBlocked: true, wantCategory: CategoryNDA},
		{name: "which client", input: "which client used the pipeline?", wantBlocked: true, wantCategory: CategoryNDA},

		// Sensitive topics
		{name: "disciplinary", input: "Any disciplinary record?", wantBlocked: true, wantCategory: CategorySensitive},
		{name: "transcript", input: "can I see your transcript", wantBlocked: true, wantCategory: CategorySensitive},
		{name: "gpa", input: "What's your GPA?", wantBlocked: true, wantCategory: CategorySensitive},
		{name: "medical", input: "do you have a medical condition", wantBlocked: true, wantCategory: CategorySensitive},
		{name: "case number", input: "what is the case number", wantBlocked: true, wantCategory: CategorySensitive},
		{name: "lawsuit", input: "were you ever sued?", wantBlocked: true, wantCategory: CategorySensitive},

		// Clean queries
		{name: "project question", input: "tell me about the OCR project", wantBlocked: false},
		{name: "skills", input: "what are your skills", wantBlocked: false},
		{name: "education", input: "where did you study", wantBlocked: false},
		{name: "empty", input: "", wantBlocked: false},
		{name: "company word alone", input: "what kind of companies have you worked with", wantBlocked: false},
	}

	classifier := NewClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.Classify(textnorm.Normalize(tt.input))

			if got.Blocked != tt.wantBlocked {
				t.Fatalf("Classify(%q).Blocked = %v, want %v", tt.input, got.Blocked, tt.wantBlocked)
			}
			if got.Category != tt.wantCategory {
				t.Errorf("Classify(%q).Category = %q, want %q", tt.input, got.Category, tt.wantCategory)
			}
			if got.Blocked && got.Pattern == "" {
				t.Errorf("blocked verdict should name the matching pattern")
			}
		})
	}
}

func TestClassifier_NDABeatsSensitive(t *testing.T) {
	// NDA probes are checked before sensitive markers
	got := NewClassifier().Classify(textnorm.Normalize("what's the client name and your GPA"))
	if got.Category != CategoryNDA {
		t.Errorf("Category = %q, want %q", got.Category, CategoryNDA)
	}
}

func TestClassifier_SensitivePatternsAreReachable(t *testing.T) {
	nda := make(map[string]bool, len(ndaPatterns))
	for _, r := range ndaPatterns {
		nda[r.pattern.String()] = true
	}
	for _, r := range sensitivePatterns {
		if nda[r.pattern.String()] {
			t.Errorf("sensitive pattern %q is shadowed by the same NDA pattern", r.pattern.String())
		}
	}
}
