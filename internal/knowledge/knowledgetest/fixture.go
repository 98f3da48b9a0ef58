// Package knowledgetest provides a fully populated record for tests.
package knowledgetest

import "github.com/themobileprof/portfolio-concierge/internal/knowledge"

const (
	OCROutcome       = "Cut manual invoice entry by 80% across three finance teams."
	EducationLine    = "Studying Computer Science (BSc), expected 2026."
	WorkPolicy       = "Open to remote roles worldwide and hybrid roles in Lagos."
	UnknownRefusal   = "I don't have that in my notes yet. Feel free to reach out directly."
	NDARefusal       = "That work is under NDA, so I can't share client details."
	SensitiveRefusal = "That's not something I discuss here. Please reach out directly."
)

// Standard returns a fresh record on every call so tests may mutate it
func Standard() *knowledge.Record {
	return &knowledge.Record{
		Version: "test-1",
		Profile: knowledge.Profile{
			Name:       "Ada Example",
			Summary:    "Backend and ML engineer.",
			WorkPolicy: WorkPolicy,
		},
		Highlights: []string{
			"Shipped 12 production services.",
			"Reduced cloud spend by 35%.",
		},
		Projects: []knowledge.Project{
			{
				Name:     "OCR Invoice Pipeline",
				Keywords: []string{"ocr", "invoice reader"},
				CaseStudy: knowledge.CaseStudy{
					Outcome:     OCROutcome,
					Approach:    "Layout-aware OCR with a rules layer for totals.",
					Reliability: "Nightly regression set of 2,000 invoices.",
					Stack:       []string{"Go", "Tesseract", "Postgres"},
					Links: []knowledge.Link{
						{Label: "Write-up", URL: "https://example.dev/ocr"},
						{Label: "Source", URL: "https://github.com/example/ocr"},
					},
				},
			},
			{
				Name: "Realtime Chat Gateway",
				CaseStudy: knowledge.CaseStudy{
					Outcome:  "Served 50k concurrent websocket sessions.",
					Approach: "Sharded hubs behind a consistent-hash router.",
					Stack:    []string{"Go", "Redis"},
				},
			},
		},
		Skills: knowledge.SkillGroups{
			{Name: "Languages", Skills: []string{"Go", "Python", "TypeScript"}},
			{Name: "Data", Skills: []string{"Postgres", "Redis"}},
		},
		Certifications: []knowledge.Certification{
			{Name: "AWS Solutions Architect Associate", Proof: "https://example.dev/cert/aws"},
			{Name: "CKA"},
		},
		Experience: []knowledge.Experience{
			{Area: "Platform engineering", Summary: []string{"Built CI pipelines.", "Ran on-call for 40 services."}},
			{Area: "Machine learning", Summary: []string{"Deployed document models."}},
		},
		Education: knowledge.Education{
			Institution:  "Example University",
			Field:        "Computer Science",
			Status:       "in progress",
			ApprovedLine: EducationLine,
		},
		FAQ: []knowledge.FaqItem{
			{ID: "timezone", Q: "What timezone do you work in?", A: "West Africa Time (UTC+1), with overlap for EU mornings."},
			{ID: "resume", Q: "Can I download your resume?", A: "Yes, the resume link is in the contact section."},
			{ID: "mentoring", Q: "Do you offer mentoring sessions?", A: "Occasionally, for early-career backend engineers."},
		},
		Safety: knowledge.Safety{
			Refusals: knowledge.Refusals{
				NDA:       NDARefusal,
				Sensitive: SensitiveRefusal,
				Unknown:   UnknownRefusal,
			},
		},
		Links: []knowledge.Link{
			{Label: "Email", URL: "mailto:ada@example.dev"},
			{Label: "LinkedIn", URL: "https://linkedin.com/in/ada-example"},
			{Label: "GitHub", URL: "https://github.com/ada-example"},
			{Label: "Blog", URL: "https://example.dev/blog"},
		},
	}
}
