// README: Ensure-rule configuration: need categories, pinned SKUs, paired spares.
package assistant

// needCategory groups the vocabulary of one "the customer implied they need
// X" situation. requires, when set, must also match the candidate text, so
// a spare-part ensure only picks spares that belong to a pipe cutter.
type needCategory struct {
	name     string
	terms    []string // utterance and candidate vocabulary
	requires []string // extra candidate-side vocabulary
}

var (
	needSpare = needCategory{
		name:     "repuesto",
		terms:    []string{"repuesto", "disco", "cuchilla"},
		requires: []string{"cortatubo", "cortador"},
	}
	needSealingTape = needCategory{
		name:  "teflon",
		terms: []string{"teflon", "ptfe", "cinta"},
	}
)

// alternateCategories is the "alternate vocabulary" used by the implicit
// replace heuristic, and the per-category representation check after a
// forced replace.
var alternateCategories = []needCategory{
	{name: "union", terms: []string{"union", "roscada"}},
	needSealingTape,
	needSpare,
}

// PinnedFallbacks maps a need category to the SKUs known to satisfy it when
// no stocked candidate matches heuristically. Kept as data so operators can
// swap SKUs without touching reconciliation logic.
type PinnedFallbacks map[string][]string

func DefaultPinnedFallbacks() PinnedFallbacks {
	return PinnedFallbacks{
		needSpare.name:       {"REP-CORTA-001"},
		needSealingTape.name: {"TEFLON-STD-001"},
	}
}

// pairedSpares maps a pipe-cutter SKU in the cart to its matching
// spare-part SKU, covering the common "cutter already in cart + spare
// intent" turn.
var pairedSpares = map[string]string{
	"CORTA-COBRE-001": "REP-CORTA-001",
}
