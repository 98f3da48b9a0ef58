package faq

import (
	"github.com/themobileprof/portfolio-concierge/internal/knowledge"
	"github.com/themobileprof/portfolio-concierge/internal/textnorm"
)

const (
	// AcceptThreshold is the minimum score a candidate needs. Tuned against
	// the asymmetric overlap below.
	AcceptThreshold = 0.2

	// AnswerWeight discounts matches found only in an item's answer text
	AnswerWeight = 0.7

	formWeight = 1.0
	rawWeight  = 0.5
)

// Candidate is a scored FAQ item
type Candidate struct {
	Item  knowledge.FaqItem
	Score float64
}

// Accept reports whether score clears the acceptance threshold
func Accept(score float64) bool {
	return score >= AcceptThreshold
}

// Match scores every item against the query tokens and returns the best one
// that clears AcceptThreshold. Ties keep the earlier item. Items repeating an
// already scored id are skipped.
func Match(queryTokens []string, items []knowledge.FaqItem) (Candidate, bool) {
	if len(queryTokens) == 0 || len(items) == 0 {
		return Candidate{}, false
	}

	best := Candidate{Score: -1}
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item.ID != "" {
			if _, dup := seen[item.ID]; dup {
				continue
			}
			seen[item.ID] = struct{}{}
		}

		score := ScoreItem(queryTokens, item)
		if score > best.Score {
			best = Candidate{Item: item, Score: score}
		}
	}

	if !Accept(best.Score) {
		return Candidate{}, false
	}
	return best, true
}

// ScoreItem is the better of the question overlap and the discounted answer overlap
func ScoreItem(queryTokens []string, item knowledge.FaqItem) float64 {
	qScore := Overlap(queryTokens, textnorm.Tokenize(item.Q))
	aScore := AnswerWeight * Overlap(queryTokens, textnorm.Tokenize(item.A))
	if aScore > qScore {
		return aScore
	}
	return qScore
}

// Overlap is a bounded lexical similarity in [0, 1]. The query side is
// matched through its stem, its expanded stem and the stem of its expansion;
// the candidate side contributes only its stems and their expansions. A
// query token that misses every form but appears verbatim among the
// candidate tokens earns a half point.
func Overlap(queryTokens, candTokens []string) float64 {
	if len(queryTokens) == 0 || len(candTokens) == 0 {
		return 0
	}

	candSet := make(map[string]struct{}, len(candTokens)*3)
	candRaw := make(map[string]struct{}, len(candTokens))
	for _, c := range candTokens {
		candRaw[c] = struct{}{}
		stem := textnorm.Stem(c)
		candSet[stem] = struct{}{}
		if canon, ok := textnorm.Canonical(stem); ok {
			candSet[canon] = struct{}{}
			candSet[textnorm.Stem(canon)] = struct{}{}
		}
	}

	var hits float64
	for _, q := range queryTokens {
		if anyIn(candSet, queryForms(q)) {
			hits += formWeight
			continue
		}
		if _, ok := candRaw[q]; ok {
			hits += rawWeight
		}
	}

	denom := len(queryTokens)
	if len(candTokens) > denom {
		denom = len(candTokens)
	}
	score := hits / float64(denom)
	if score > 1 {
		score = 1
	}
	return score
}

func queryForms(token string) []string {
	stem := textnorm.Stem(token)
	forms := []string{stem}
	if canon, ok := textnorm.Canonical(stem); ok {
		forms = append(forms, canon, textnorm.Stem(canon))
	}
	if canon, ok := textnorm.Canonical(token); ok {
		forms = append(forms, canon, textnorm.Stem(canon))
	}
	return forms
}

func anyIn(set map[string]struct{}, forms []string) bool {
	for _, f := range forms {
		if _, ok := set[f]; ok {
			return true
		}
	}
	return false
}
