// README: Candidate retrieval: phrase/token/synonym search plus cart forced inclusion.
package catalog

import (
	"context"
	"strings"
)

// tokenWhitelist is the closed set of domain words worth searching on their
// own. Arbitrary utterance tokens ("quiero", "para", names) never reach the
// database.
var tokenWhitelist = []string{
	"union", "roscada", "teflon", "ptfe", "cinta",
	"cople", "acople", "cortatubo", "cortador",
	"repuesto", "disco", "cuchilla",
	"pegamento", "cemento", "adhesivo",
	"pvc", "cpvc", "cobre", "tubo", "tuberia",
	"llave", "valvula", "codo", "tee", "reduccion",
	"niple", "tuerca", "empaque", "abrazadera", "segueta",
}

// synonyms expands a matched whitelist token into the spellings the catalog
// may use instead.
var synonyms = map[string][]string{
	"teflon":    {"ptfe", "cinta teflon"},
	"ptfe":      {"teflon"},
	"cople":     {"acople"},
	"acople":    {"cople"},
	"union":     {"roscada"},
	"repuesto":  {"disco", "cuchilla"},
	"pegamento": {"cemento", "adhesivo"},
	"cortador":  {"cortatubo"},
	"cortatubo": {"cortador"},
}

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// Candidates builds the turn's candidate universe: search matches for the
// utterance plus every cart SKU, force-included so the engine can always
// reconstruct the client's prior selection. Search failure is fatal for the
// turn; the engine must never fabricate a plan from an absent catalog.
func (s *Service) Candidates(ctx context.Context, utterance string, cartSKUs []string) ([]Product, error) {
	found, err := s.store.Search(ctx, searchTerms(utterance))
	if err != nil {
		return nil, err
	}

	present := map[string]bool{}
	for _, p := range found {
		present[p.SKU] = true
	}
	var missing []string
	for _, sku := range cartSKUs {
		if !present[sku] {
			missing = append(missing, sku)
		}
	}
	if len(missing) > 0 {
		carted, err := s.store.FetchBySKUs(ctx, missing)
		if err != nil {
			return nil, err
		}
		found = append(found, carted...)
	}
	return found, nil
}

// FetchBySKUs exposes point lookups for pinned-fallback backfills.
func (s *Service) FetchBySKUs(ctx context.Context, skus []string) ([]Product, error) {
	return s.store.FetchBySKUs(ctx, skus)
}

// searchTerms derives the term list for one search call: the raw phrase,
// its normalized form, every whitelisted token present in the utterance,
// and the synonyms of those tokens.
func searchTerms(utterance string) []string {
	raw := strings.TrimSpace(utterance)
	if raw == "" {
		return nil
	}
	norm := Normalize(raw)

	terms := []string{raw}
	seen := map[string]bool{strings.ToLower(raw): true}
	add := func(t string) {
		if t == "" || seen[t] {
			return
		}
		seen[t] = true
		terms = append(terms, t)
	}
	add(norm)

	tokens := map[string]bool{}
	for _, t := range strings.Fields(norm) {
		tokens[t] = true
	}
	for _, w := range tokenWhitelist {
		if !tokens[w] && !strings.Contains(norm, w) {
			continue
		}
		add(w)
		for _, syn := range synonyms[w] {
			add(syn)
		}
	}
	return terms
}
