package knowledge

// Record is the author-curated set of facts the concierge is allowed to
// answer from. It is read-only once loaded.
type Record struct {
	Version        string          `json:"version,omitempty" yaml:"version,omitempty"`
	Profile        Profile         `json:"profile" yaml:"profile"`
	Highlights     []string        `json:"highlights" yaml:"highlights"`
	Projects       []Project       `json:"projects" yaml:"projects"`
	Skills         SkillGroups     `json:"skills" yaml:"skills"`
	Certifications []Certification `json:"certifications" yaml:"certifications"`
	Experience     []Experience    `json:"experience" yaml:"experience"`
	Education      Education       `json:"education" yaml:"education"`
	FAQ            []FaqItem       `json:"faq" yaml:"faq"`
	Safety         Safety          `json:"safety" yaml:"safety"`
	Links          []Link          `json:"links" yaml:"links"`
}

// Profile holds the identity summary and work policy
type Profile struct {
	Name       string `json:"name,omitempty" yaml:"name,omitempty"`
	Summary    string `json:"summary,omitempty" yaml:"summary,omitempty"`
	WorkPolicy string `json:"workPolicy,omitempty" yaml:"workPolicy,omitempty"`
}

// Project is a portfolio entry. Keywords are the author's lookup aliases
// ("ocr", "invoice reader") that point a question at this project.
type Project struct {
	Name      string    `json:"name" yaml:"name"`
	Keywords  []string  `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	CaseStudy CaseStudy `json:"caseStudy" yaml:"caseStudy"`
}

type CaseStudy struct {
	Outcome     string   `json:"outcome,omitempty" yaml:"outcome,omitempty"`
	Approach    string   `json:"approach,omitempty" yaml:"approach,omitempty"`
	Reliability string   `json:"reliability,omitempty" yaml:"reliability,omitempty"`
	Stack       []string `json:"stack,omitempty" yaml:"stack,omitempty"`
	Links       []Link   `json:"links,omitempty" yaml:"links,omitempty"`
}

// IsEmpty reports whether the case study carries no text at all
func (c CaseStudy) IsEmpty() bool {
	return c.Outcome == "" && c.Approach == "" && c.Reliability == "" && len(c.Stack) == 0
}

// SkillGroup is one named list of skill phrases
type SkillGroup struct {
	Name   string   `json:"name" yaml:"name"`
	Skills []string `json:"skills" yaml:"skills"`
}

type Certification struct {
	Name  string `json:"name" yaml:"name"`
	Proof string `json:"proof,omitempty" yaml:"proof,omitempty"`
}

type Experience struct {
	Area    string   `json:"area" yaml:"area"`
	Summary []string `json:"summary" yaml:"summary"`
}

// Education carries the approved one-line phrasing. Only ApprovedLine is
// ever shown to visitors; the other fields are author notes.
type Education struct {
	Institution  string `json:"institution,omitempty" yaml:"institution,omitempty"`
	Field        string `json:"field,omitempty" yaml:"field,omitempty"`
	Status       string `json:"status,omitempty" yaml:"status,omitempty"`
	ApprovedLine string `json:"approvedLine,omitempty" yaml:"approvedLine,omitempty"`
}

type FaqItem struct {
	ID string `json:"id" yaml:"id"`
	Q  string `json:"q" yaml:"q"`
	A  string `json:"a" yaml:"a"`
}

type Safety struct {
	Refusals Refusals `json:"refusals" yaml:"refusals"`
}

// Refusals are the pre-authored policy responses
type Refusals struct {
	NDA       string `json:"nda,omitempty" yaml:"nda,omitempty"`
	Sensitive string `json:"sensitive,omitempty" yaml:"sensitive,omitempty"`
	Unknown   string `json:"unknown" yaml:"unknown"`
}

// Link is a labelled URI
type Link struct {
	Label string `json:"label" yaml:"label"`
	URL   string `json:"url" yaml:"url"`
}

// Summary counts the entries of each record section
type Summary struct {
	Version        string `json:"version,omitempty"`
	Highlights     int    `json:"highlights"`
	Projects       int    `json:"projects"`
	SkillGroups    int    `json:"skill_groups"`
	Certifications int    `json:"certifications"`
	Experience     int    `json:"experience"`
	FAQ            int    `json:"faq"`
	Links          int    `json:"links"`
	HasEducation   bool   `json:"has_education"`
	HasWorkPolicy  bool   `json:"has_work_policy"`
}

// Summarize returns section counts for r. A nil record yields zero counts.
func Summarize(r *Record) Summary {
	if r == nil {
		return Summary{}
	}
	return Summary{
		Version:        r.Version,
		Highlights:     len(r.Highlights),
		Projects:       len(r.Projects),
		SkillGroups:    len(r.Skills),
		Certifications: len(r.Certifications),
		Experience:     len(r.Experience),
		FAQ:            len(r.FAQ),
		Links:          len(r.Links),
		HasEducation:   r.Education.ApprovedLine != "",
		HasWorkPolicy:  r.Profile.WorkPolicy != "",
	}
}
