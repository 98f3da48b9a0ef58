package textnorm

// synonyms maps informal or variant spellings to the canonical term the
// detectors and FAQ entries use. Stemmed spellings are listed next to the
// raw ones so lookups work on either side of Stem.
var synonyms = map[string]string{
	// Role / work
	"job":       "role",
	"jobs":      "role",
	"position":  "role",
	"positions": "role",
	"gig":       "role",
	"gigs":      "role",
	"opening":   "role",
	"vacancy":   "role",
	"hiring":    "role",
	"hire":      "role",

	// Resume
	"cv":      "resume",
	"cvs":     "resume",
	"resumes": "resume",
	"resum":   "resume",

	// Education
	"uni":        "education",
	"university": "education",
	"college":    "education",
	"degree":     "education",
	"degrees":    "education",
	"school":     "education",
	"schooling":  "education",
	"educ":       "education",
	"studied":    "education",
	"studi":      "education",

	// Certification
	"cert":         "certification",
	"certs":        "certification",
	"certificate":  "certification",
	"certificates": "certification",
	"certified":    "certification",
	"certifi":      "certification",
	"certific":     "certification",
	"credential":   "certification",
	"credentials":  "certification",
	"badge":        "certification",
	"badges":       "certification",

	// Contact
	"email":    "contact",
	"emails":   "contact",
	"mail":     "contact",
	"phone":    "contact",
	"reach":    "contact",
	"touch":    "contact",
	"linkedin": "contact",
	"dm":       "contact",

	// Tech stack
	"tech":         "stack",
	"techstack":    "stack",
	"tool":         "stack",
	"tools":        "stack",
	"tooling":      "stack",
	"technology":   "stack",
	"technologies": "stack",
	"framework":    "stack",
	"frameworks":   "stack",
	"languages":    "stack",
	"language":     "stack",

	// Projects
	"app":       "project",
	"apps":      "project",
	"portfolio": "project",
	"build":     "project",
	"builds":    "project",
	"built":     "project",
	"product":   "project",
	"products":  "project",
	"repo":      "project",
	"repos":     "project",

	// Background
	"bio":        "background",
	"history":    "background",
	"story":      "background",
	"career":     "background",
	"journey":    "background",
	"experience": "background",

	// AI / ML
	"ml":         "ai",
	"genai":      "ai",
	"llm":        "ai",
	"llms":       "ai",
	"nlp":        "ai",
	"gpt":        "ai",
	"machine":    "ai",
	"artificial": "ai",
	"rag":        "ai",
}

// Canonical returns the canonical form of token and whether the table knew it.
func Canonical(token string) (string, bool) {
	c, ok := synonyms[token]
	return c, ok
}

// ExpandSynonyms replaces each token with its canonical form. Tokens absent
// from the table pass through unchanged; the mapping is strictly one to one.
func ExpandSynonyms(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		if c, ok := synonyms[t]; ok {
			out[i] = c
			continue
		}
		out[i] = t
	}
	return out
}
