// README: Heuristic intent classification over the normalized utterance.
package assistant

import (
	"strings"

	"github.com/Alfredcrmn/hardware-kiosk/internal/modules/catalog"
)

// Intent captures the classified purpose of one customer turn. The flags
// are independent; WantsRemoval is a modifier, not a primary label.
type Intent struct {
	End          bool
	Replace      bool
	Add          bool
	WantsRemoval bool
}

// Normal reports whether no flag fired.
func (i Intent) Normal() bool {
	return !i.End && !i.Replace && !i.Add && !i.WantsRemoval
}

// Label renders the intent as the hint passed to the generative prompt.
func (i Intent) Label() string {
	var primary string
	switch {
	case i.End:
		primary = "end"
	case i.Replace:
		primary = "replace"
	case i.Add:
		primary = "add"
	default:
		primary = "normal"
	}
	if i.WantsRemoval {
		return primary + "+remove"
	}
	return primary
}

// closingPhrases end the conversation when the whole utterance matches.
var closingPhrases = []string{
	"no", "no gracias", "eso es todo", "listo", "estoy bien", "nada mas",
}

// lexiconRule matches either substrings of the normalized utterance or
// whole tokens. Short words ("si", "sin") must match whole tokens only,
// otherwise "sin" would fire inside "sintético".
type lexiconRule struct {
	name       string
	substrings []string
	words      []string
}

var (
	replaceRule = lexiconRule{
		name:       "replace",
		substrings: []string{"mejor", "prefiero", "cambial", "en lugar de", "en vez de"},
	}
	addRule = lexiconRule{
		name:       "add",
		substrings: []string{"agrega", "dame", "tambien", "ponlo", "sumalo", "mete"},
		words:      []string{"si"},
	}
	removalRule = lexiconRule{
		name:       "remove",
		substrings: []string{"quita", "remueve", "borra", "elimina", "saca"},
		words:      []string{"sin"},
	}
)

func (r lexiconRule) matches(norm string, tokens []string) bool {
	for _, s := range r.substrings {
		if strings.Contains(norm, s) {
			return true
		}
	}
	for _, w := range r.words {
		for _, tok := range tokens {
			if tok == w {
				return true
			}
		}
	}
	return false
}

// ClassifyIntent derives the turn intent from the raw utterance. All rules
// are evaluated independently; only End short-circuits, since an ended
// conversation has no further semantics.
func ClassifyIntent(utterance string) Intent {
	tokens := catalog.Tokens(utterance)
	joined := strings.Join(tokens, " ")
	for _, phrase := range closingPhrases {
		if joined == phrase {
			return Intent{End: true}
		}
	}

	norm := catalog.Normalize(utterance)
	return Intent{
		Replace:      replaceRule.matches(norm, tokens),
		Add:          addRule.matches(norm, tokens),
		WantsRemoval: removalRule.matches(norm, tokens),
	}
}
