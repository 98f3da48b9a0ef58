package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stopWords is the closed list of tokens dropped by Tokenize
var stopWords = map[string]struct{}{
	// Articles
	"a": {}, "an": {}, "the": {},
	// Pronouns
	"i": {}, "me": {}, "my": {}, "you": {}, "your": {}, "we": {}, "our": {},
	"he": {}, "she": {}, "it": {}, "its": {}, "they": {}, "them": {}, "their": {},
	// Auxiliary and modal verbs
	"is": {}, "am": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {},
	"do": {}, "does": {}, "did": {}, "have": {}, "has": {}, "had": {},
	"can": {}, "could": {}, "would": {}, "should": {}, "will": {},
	// Function words
	"of": {}, "to": {}, "and": {}, "or": {}, "in": {}, "on": {}, "for": {},
}

var foldMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases text, folds diacritics, turns every rune that is not a
// letter, digit or space into a space and collapses whitespace.
// Normalize(Normalize(s)) == Normalize(s) for every s.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	lowered := strings.ToLower(text)
	if folded, _, err := transform.String(foldMarks, lowered); err == nil {
		lowered = folded
	}

	var b strings.Builder
	b.Grow(len(lowered))
	pendingSpace := false
	for _, r := range lowered {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
			continue
		}
		pendingSpace = true
	}
	return b.String()
}

// Tokenize normalizes text and returns its non-stop-word tokens in order.
func Tokenize(text string) []string {
	fields := strings.Fields(Normalize(text))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if IsStopWord(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// IsStopWord reports whether token is in the stop-word list
func IsStopWord(token string) bool {
	_, ok := stopWords[token]
	return ok
}
