package classifier

import (
	"strings"

	"github.com/themobileprof/portfolio-concierge/internal/knowledge"
	"github.com/themobileprof/portfolio-concierge/internal/textnorm"
)

const bullet = "• "

func formatCaseStudy(p knowledge.Project) (Answer, bool) {
	cs := p.CaseStudy
	if cs.IsEmpty() {
		return Answer{}, false
	}

	lines := []string{p.Name}
	if cs.Outcome != "" {
		lines = append(lines, "Outcome: "+cs.Outcome)
	}
	if cs.Approach != "" {
		lines = append(lines, "Approach: "+cs.Approach)
	}
	if cs.Reliability != "" {
		lines = append(lines, "Reliability: "+cs.Reliability)
	}
	if stack := nonEmpty(cs.Stack); len(stack) > 0 {
		lines = append(lines, "Stack: "+strings.Join(stack, ", "))
	}

	return Answer{
		Content: strings.Join(lines, "\n"),
		Source:  SourceCaseStudy,
		Actions: validLinks(cs.Links),
	}, true
}

func formatBullets(items []string, source string) (Answer, bool) {
	items = nonEmpty(items)
	if len(items) == 0 {
		return Answer{}, false
	}
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = bullet + it
	}
	return Answer{Content: strings.Join(lines, "\n"), Source: source}, true
}

func formatProjectList(projects []knowledge.Project) (Answer, bool) {
	lines := make([]string, 0, len(projects))
	for _, p := range projects {
		if p.Name == "" {
			continue
		}
		if p.CaseStudy.Outcome != "" {
			lines = append(lines, bullet+p.Name+": "+p.CaseStudy.Outcome)
			continue
		}
		lines = append(lines, bullet+p.Name)
	}
	if len(lines) == 0 {
		return Answer{}, false
	}
	return Answer{Content: strings.Join(lines, "\n"), Source: SourceProjects}, true
}

func formatSkills(groups knowledge.SkillGroups) (Answer, bool) {
	lines := make([]string, 0, len(groups))
	for _, g := range groups {
		skills := nonEmpty(g.Skills)
		if len(skills) == 0 {
			continue
		}
		if g.Name == "" {
			lines = append(lines, strings.Join(skills, ", "))
			continue
		}
		lines = append(lines, g.Name+": "+strings.Join(skills, ", "))
	}
	if len(lines) == 0 {
		return Answer{}, false
	}
	return Answer{Content: strings.Join(lines, "\n"), Source: SourceSkills}, true
}

func formatCertifications(certs []knowledge.Certification) (Answer, bool) {
	lines := make([]string, 0, len(certs))
	var actions []knowledge.Link
	for _, c := range certs {
		if c.Name == "" {
			continue
		}
		lines = append(lines, bullet+c.Name)
		if c.Proof != "" {
			actions = append(actions, knowledge.Link{Label: c.Name, URL: c.Proof})
		}
	}
	if len(lines) == 0 {
		return Answer{}, false
	}
	return Answer{
		Content: strings.Join(lines, "\n"),
		Source:  SourceCertifications,
		Actions: actions,
	}, true
}

func formatContact(links []knowledge.Link) (Answer, bool) {
	valid := validLinks(links)
	if len(valid) == 0 {
		return Answer{}, false
	}
	lines := make([]string, len(valid))
	for i, l := range valid {
		if l.Label == "" {
			lines[i] = l.URL
			continue
		}
		lines[i] = l.Label + ": " + l.URL
	}
	return Answer{
		Content: strings.Join(lines, "\n"),
		Source:  SourceContact,
		Actions: valid,
	}, true
}

func formatExperience(entries []knowledge.Experience) (Answer, bool) {
	blocks := make([]string, 0, len(entries))
	for _, e := range entries {
		summary := nonEmpty(e.Summary)
		if e.Area == "" && len(summary) == 0 {
			continue
		}
		lines := make([]string, 0, len(summary)+1)
		if e.Area != "" {
			lines = append(lines, e.Area)
		}
		for _, s := range summary {
			lines = append(lines, bullet+s)
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	if len(blocks) == 0 {
		return Answer{}, false
	}
	return Answer{Content: strings.Join(blocks, "\n\n"), Source: SourceExperience}, true
}

func validLinks(links []knowledge.Link) []knowledge.Link {
	var out []knowledge.Link
	for _, l := range links {
		if l.URL != "" {
			out = append(out, l)
		}
	}
	return out
}

func nonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if strings.TrimSpace(it) != "" {
			out = append(out, it)
		}
	}
	return out
}

// containsPhrase reports whether the normalized phrase occurs as whole words
// in padded, which must be normalized text wrapped in single spaces
func containsPhrase(padded, phrase string) bool {
	norm := textnorm.Normalize(phrase)
	if norm == "" {
		return false
	}
	return strings.Contains(padded, " "+norm+" ")
}

func tokenizeName(name string) []string {
	return textnorm.Tokenize(name)
}
