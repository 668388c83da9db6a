// README: Deterministic keyword fallback picker for discarded generative baskets.
package assistant

import (
	"sort"
	"strings"

	"github.com/Alfredcrmn/hardware-kiosk/internal/modules/catalog"
)

// DefaultFallbackMax caps how many candidates a fallback rebuild selects.
const DefaultFallbackMax = 3

// keywordGroups are the synonym groups the picker scores against. A group
// counts when both the utterance and the product text contain one of its
// members.
var keywordGroups = [][]string{
	{"union", "roscada"},
	{"teflon", "ptfe", "ptf", "cinta"},
	{"cople", "acople"},
	{"cortatubo"},
	{"repuesto", "disco", "cuchilla"},
	{"pegamento", "cemento", "adhesivo"},
}

func groupMatches(text string, group []string) bool {
	for _, term := range group {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

// PickByKeywords scores candidates against the utterance: +2 per keyword
// group matched on both sides, +1 for being in stock. It returns up to max
// candidates with a positive score, best first; ties keep the original
// candidate order.
func PickByKeywords(utterance string, candidates []catalog.Product, max int) []catalog.Product {
	if max <= 0 {
		max = DefaultFallbackMax
	}
	norm := catalog.Normalize(utterance)

	type scored struct {
		product catalog.Product
		score   int
	}
	var hits []scored
	for _, p := range candidates {
		text := p.SearchText()
		score := 0
		for _, group := range keywordGroups {
			if groupMatches(norm, group) && groupMatches(text, group) {
				score += 2
			}
		}
		if p.Stock > 0 {
			score++
		}
		if score > 0 {
			hits = append(hits, scored{product: p, score: score})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })

	if len(hits) > max {
		hits = hits[:max]
	}
	out := make([]catalog.Product, len(hits))
	for i, h := range hits {
		out[i] = h.product
	}
	return out
}
