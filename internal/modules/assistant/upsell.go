// README: Deterministic cross-sell rule table over the final basket.
package assistant

// maxUpsellSuggestions caps the rule engine's output per turn.
const maxUpsellSuggestions = 2

// UpsellRule fires when every trigger SKU is in the basket and the target
// is not. The target still has to be a candidate; the candidate-membership
// invariant holds for suggestions too.
type UpsellRule struct {
	Triggers []string
	Target   string
	Why      string
}

// DefaultUpsellRules is the store's cross-sell table, evaluated in order.
// Fully independent of the generative output: it works even when the model
// call is down.
func DefaultUpsellRules() []UpsellRule {
	return []UpsellRule{
		{Triggers: []string{"CORTA-COBRE-001"}, Target: "REP-CORTA-001",
			Why: "Disco de repuesto para tu cortatubo"},
		{Triggers: []string{"PVC-CPL-050"}, Target: "PEGA-PVC-250",
			Why: "Cemento PVC para fijar el cople"},
		{Triggers: []string{"PVC-UNION-050"}, Target: "TEFLON-STD-001",
			Why: "Cinta teflón para sellar la unión"},
		{Triggers: []string{"PVC-UNION-R-050"}, Target: "TEFLON-STD-001",
			Why: "Cinta teflón para sellar la rosca"},
	}
}

// SuggestUpsell evaluates the rule table against the final basket and
// returns at most maxUpsellSuggestions lines, built from candidate data.
func SuggestUpsell(basketSKUs map[string]bool, candidates CandidateSet, rules []UpsellRule) []BasketLine {
	var out []BasketLine
	suggested := map[string]bool{}
	for _, rule := range rules {
		if len(out) >= maxUpsellSuggestions {
			break
		}
		if basketSKUs[rule.Target] || suggested[rule.Target] {
			continue
		}
		fired := true
		for _, trigger := range rule.Triggers {
			if !basketSKUs[trigger] {
				fired = false
				break
			}
		}
		if !fired {
			continue
		}
		p, ok := candidates.Get(rule.Target)
		if !ok {
			continue
		}
		suggested[rule.Target] = true
		out = append(out, lineFromProduct(p, 1, rule.Why))
	}
	return out
}
