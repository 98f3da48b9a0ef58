package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "lowercase", input: "HELLO World", want: "hello world"},
		{name: "trim and collapse", input: "  hello \t\n   world  ", want: "hello world"},
		{name: "punctuation becomes space", input: "what's your tech-stack?", want: "what s your tech stack"},
		{name: "digits kept", input: "Top 3 projects (2024)", want: "top 3 projects 2024"},
		{name: "diacritics folded", input: "Résumé", want: "resume"},
		{name: "only punctuation", input: "?!...", want: ""},
		{name: "emoji dropped", input: "hi 👋 there", want: "hi there"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"Hello, World!",
		"  Tell me about the OCR project...  ",
		"Ünïcödé ÇÀFÉ naïve",
		"İstanbul",
		"Å Ω ß ǅ",
		"tabs\tand\nnewlines\r\n",
		"mixed_123-abc.DEF/ghi",
		"日本語 テキスト",
		"áb̈c",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "drops stop words", input: "What is your education?", want: []string{"what", "education"}},
		{name: "project question", input: "Tell me about the OCR project", want: []string{"tell", "about", "ocr", "project"}},
		{name: "all stop words", input: "I am the one", want: []string{"one"}},
		{name: "empty", input: "   ", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.input))
		})
	}
}

func TestStem(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"projects", "project"},
		{"skills", "skill"},
		{"studies", "study"},
		{"building", "build"},
		{"certifications", "certific"},
		{"certification", "certific"},
		{"deployments", "deploy"},
		{"deployed", "deploy"},
		{"quickly", "quick"},
		{"classes", "class"},
		{"class", "class"},
		{"status", "status"},
		{"analysis", "analysis"},
		{"indexes", "index"},
		{"ocr", "ocr"},
		{"was", "was"},
		{"apps", "app"},
		{"only", "only"},
		{"happiness", "happi"},
		{"awareness", "aware"},
		{"abilities", "abil"},
		{"ability", "abil"},
		{"addresses", "address"},
		{"this", "this"},
		{"plus", "plus"},
		{"less", "less"},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, Stem(tt.token))
		})
	}
}

func TestStem_SingularAndPluralAgree(t *testing.T) {
	pairs := [][2]string{
		{"ability", "abilities"},
		{"activity", "activities"},
		{"class", "classes"},
		{"project", "projects"},
	}
	for _, p := range pairs {
		assert.Equal(t, Stem(p[0]), Stem(p[1]), p[0])
	}
}

func TestStemAll(t *testing.T) {
	assert.Equal(t, []string{"project", "skill", "ocr"}, StemAll([]string{"projects", "skills", "ocr"}))
}

func TestExpandSynonyms(t *testing.T) {
	got := ExpandSynonyms([]string{"cv", "certs", "ml", "ocr", "tools"})
	assert.Equal(t, []string{"resume", "certification", "ai", "ocr", "stack"}, got)
}

func TestExpandSynonyms_StemmedKeys(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"certs", "certification"},
		{"certified", "certification"},
		{"certifications", "certification"},
		{"credentials", "certification"},
		{"llms", "ai"},
		{"apps", "project"},
		{"technologies", "stack"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandSynonyms([]string{Stem(tt.raw)})[0])
		})
	}
}

func TestCanonical(t *testing.T) {
	c, ok := Canonical("university")
	assert.True(t, ok)
	assert.Equal(t, "education", c)

	_, ok = Canonical("xyzzy")
	assert.False(t, ok)
}
