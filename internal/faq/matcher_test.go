package faq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/themobileprof/portfolio-concierge/internal/knowledge"
	"github.com/themobileprof/portfolio-concierge/internal/knowledge/knowledgetest"
	"github.com/themobileprof/portfolio-concierge/internal/textnorm"
)

func TestAccept_Boundary(t *testing.T) {
	assert.True(t, Accept(0.2))
	assert.True(t, Accept(0.2000001))
	assert.False(t, Accept(0.19999999999))
	assert.False(t, Accept(0))
}

func TestMatch_ExactThresholdAccepted(t *testing.T) {
	rec := knowledgetest.Standard()

	// One hit out of five query tokens against a three-token question: 1/5 == 0.2
	query := []string{"timezone", "alpha", "bravo", "charlie", "delta"}
	got, ok := Match(query, rec.FAQ)
	require.True(t, ok)
	assert.Equal(t, "timezone", got.Item.ID)
	assert.Equal(t, 0.2, got.Score)
}

func TestMatch_BelowThresholdRejected(t *testing.T) {
	rec := knowledgetest.Standard()

	// One hit out of six: 0.1666...
	query := []string{"timezone", "alpha", "bravo", "charlie", "delta", "echo"}
	_, ok := Match(query, rec.FAQ)
	assert.False(t, ok)
}

func TestMatch_SynonymOnQuerySide(t *testing.T) {
	rec := knowledgetest.Standard()

	got, ok := Match(textnorm.Tokenize("Can I get your CV?"), rec.FAQ)
	require.True(t, ok)
	assert.Equal(t, "resume", got.Item.ID)
	assert.InDelta(t, 0.5, got.Score, 1e-9)
}

func TestMatch_AnswerOverlapIsDiscounted(t *testing.T) {
	rec := knowledgetest.Standard()

	query := []string{"utc", "overlap", "eu", "mornings", "west", "africa"}
	got, ok := Match(query, rec.FAQ)
	require.True(t, ok)
	assert.Equal(t, "timezone", got.Item.ID)
	// six of nine answer tokens, discounted
	assert.InDelta(t, AnswerWeight*6.0/9.0, got.Score, 1e-9)
}

func TestMatch_NoMatch(t *testing.T) {
	rec := knowledgetest.Standard()

	_, ok := Match(textnorm.Tokenize("xyzzy plugh quux"), rec.FAQ)
	assert.False(t, ok)

	_, ok = Match(nil, rec.FAQ)
	assert.False(t, ok)

	_, ok = Match([]string{"timezone"}, nil)
	assert.False(t, ok)
}

func TestMatch_TieKeepsFirstItem(t *testing.T) {
	items := []knowledge.FaqItem{
		{ID: "first", Q: "deploy pipeline", A: "a"},
		{ID: "second", Q: "deploy pipeline", A: "b"},
	}
	got, ok := Match([]string{"deploy", "pipeline"}, items)
	require.True(t, ok)
	assert.Equal(t, "first", got.Item.ID)
}

func TestMatch_SkipsDuplicateIDs(t *testing.T) {
	items := []knowledge.FaqItem{
		{ID: "dup", Q: "unrelated words here", A: "nothing"},
		{ID: "dup", Q: "timezone", A: "UTC"},
	}
	_, ok := Match([]string{"timezone"}, items)
	assert.False(t, ok)
}

func TestMatch_BlankIDsAreNotDuplicates(t *testing.T) {
	items := []knowledge.FaqItem{
		{Q: "unrelated words here", A: "nothing"},
		{Q: "timezone", A: "UTC"},
	}
	got, ok := Match([]string{"timezone"}, items)
	require.True(t, ok)
	assert.Equal(t, "UTC", got.Item.A)
}

func TestOverlap(t *testing.T) {
	tests := []struct {
		name  string
		query []string
		cand  []string
		want  float64
	}{
		{name: "identical", query: []string{"deploy", "pipeline"}, cand: []string{"deploy", "pipeline"}, want: 1},
		{name: "stemmed match", query: []string{"deployments"}, cand: []string{"deployed"}, want: 1},
		{name: "larger candidate dilutes", query: []string{"project"}, cand: []string{"project", "list", "here", "now"}, want: 0.25},
		{name: "query synonym", query: []string{"certs"}, cand: []string{"certifications"}, want: 1},
		{name: "no overlap", query: []string{"alpha"}, cand: []string{"beta"}, want: 0},
		{name: "empty query", query: nil, cand: []string{"beta"}, want: 0},
		{name: "empty candidate", query: []string{"alpha"}, cand: nil, want: 0},
		{name: "repeated query tokens stay bounded", query: []string{"go", "go"}, cand: []string{"go"}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Overlap(tt.query, tt.cand), 1e-9)
		})
	}
}

func TestOverlap_Asymmetric(t *testing.T) {
	// "hiring" expands to "role" on the query side, but a candidate
	// carrying "hiring" only contributes its stem.
	assert.Equal(t, 1.0, Overlap([]string{"hiring"}, []string{"role"}))
	assert.Equal(t, 0.0, Overlap([]string{"role"}, []string{"hiring"}))
}
