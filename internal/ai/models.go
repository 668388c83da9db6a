// README: Wire types for the generative proposal and the JSON parse choke point.
package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Alfredcrmn/hardware-kiosk/internal/modules/catalog"
)

// ErrMalformedProposal is returned when the model output cannot be parsed
// as a well-formed proposal. Callers degrade to a fallback plan; this error
// never reaches the end customer.
var ErrMalformedProposal = errors.New("malformed proposal")

// Turn is one prior conversation message, caller-owned and append-only.
type Turn struct {
	Role string `json:"role"` // "user" or "assistant"
	Text string `json:"text"`
}

// CartItem is one line of the client-held cart, the authoritative quantity
// source for its SKU.
type CartItem struct {
	SKU string `json:"sku"`
	Qty int    `json:"qty"`
}

// ProposeRequest carries everything the model is allowed to see.
type ProposeRequest struct {
	Utterance  string
	History    []Turn
	Cart       []CartItem
	Candidates []catalog.Product
	IntentHint string
}

// ProposedLine is one basket/upsell line as drafted by the model. Only the
// sku, qty and why fields are ever read; everything else about the product
// is re-derived from the candidate set.
type ProposedLine struct {
	SKU string `json:"sku"`
	Qty int    `json:"qty"`
	Why string `json:"why"`
}

// ProposedPlan mirrors the model's JSON plan draft.
type ProposedPlan struct {
	Title   string         `json:"title"`
	Steps   []string       `json:"steps"`
	Basket  []ProposedLine `json:"basket"`
	Upsell  []ProposedLine `json:"upsell"`
	Confirm string         `json:"confirm"`
}

// Proposal is the untrusted {plan, reply} pair.
type Proposal struct {
	Plan  *ProposedPlan `json:"plan"`
	Reply string        `json:"reply"`
}

// ParseProposal converts raw model text into a Proposal. This is the single
// point where untrusted text becomes a typed value; any parse failure maps
// to ErrMalformedProposal.
func ParseProposal(raw string) (*Proposal, error) {
	clean := cleanJSONString(raw)
	if clean == "" {
		return nil, fmt.Errorf("%w: empty response", ErrMalformedProposal)
	}
	var p Proposal
	if err := json.Unmarshal([]byte(clean), &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedProposal, err)
	}
	return &p, nil
}

// cleanJSONString removes markdown code fences if present (e.g. ```json ... ```)
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
