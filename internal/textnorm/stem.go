package textnorm

import (
	"strings"
	"unicode/utf8"
)

const (
	minStemmableLen = 4
	minStemLen      = 3
)

// stemRule strips suffix and appends replacement. Rules whose replacement
// equals the suffix protect an ending from the generic rules below them.
type stemRule struct {
	suffix      string
	replacement string
}

func (r stemRule) protects() bool { return r.suffix == r.replacement }

// stemRules are tried in order; the first rule whose suffix matches and
// leaves at least minStemLen runes wins. Protected endings match regardless
// of length. Longer suffixes that share a tail with a protected ending or a
// plural rule come first.
var stemRules = []stemRule{
	{"ities", ""},
	{"ness", ""},
	{"sses", "ss"},

	// Protected endings
	{"ss", "ss"},
	{"us", "us"},
	{"is", "is"},

	// Plurals
	{"ies", "y"},
	{"xes", "x"},
	{"ches", "ch"},
	{"shes", "sh"},

	// Gerunds
	{"ing", ""},

	// Nominalizations
	{"ations", ""},
	{"ation", ""},
	{"ments", ""},
	{"ment", ""},
	{"ity", ""},

	// Adverbial and adjectival endings
	{"ally", "al"},
	{"ly", ""},
	{"ful", ""},
	{"ous", ""},
	{"ive", ""},
	{"able", ""},

	// Past tense
	{"ed", ""},

	{"s", ""},
}

// Stem applies a light suffix-stripping stemmer. Tokens shorter than four
// runes are returned unchanged.
func Stem(token string) string {
	if utf8.RuneCountInString(token) < minStemmableLen {
		return token
	}

	for _, rule := range stemRules {
		if !strings.HasSuffix(token, rule.suffix) {
			continue
		}
		if rule.protects() {
			return token
		}
		base := strings.TrimSuffix(token, rule.suffix)
		if utf8.RuneCountInString(base) < minStemLen {
			continue
		}
		return base + rule.replacement
	}
	return token
}

// StemAll stems every token, preserving order
func StemAll(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = Stem(t)
	}
	return out
}
