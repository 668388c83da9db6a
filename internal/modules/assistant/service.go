// README: Per-turn orchestration: classify, retrieve, propose, reconcile, upsell.
package assistant

import (
	"context"
	"fmt"
	"log"

	"github.com/Alfredcrmn/hardware-kiosk/internal/ai"
	"github.com/Alfredcrmn/hardware-kiosk/internal/modules/catalog"
)

// Searcher is the candidate-retrieval collaborator. Its output is the
// closed universe of SKUs for the turn.
type Searcher interface {
	Candidates(ctx context.Context, utterance string, cartSKUs []string) ([]catalog.Product, error)
}

// DefaultHistoryWindow bounds how many prior turns the model sees.
const DefaultHistoryWindow = 8

type Service struct {
	search        Searcher
	provider      ai.PlanProvider
	engine        *Engine
	upsellRules   []UpsellRule
	historyWindow int
}

func NewService(search Searcher, provider ai.PlanProvider, engine *Engine, historyWindow int) *Service {
	if historyWindow <= 0 {
		historyWindow = DefaultHistoryWindow
	}
	return &Service{
		search:        search,
		provider:      provider,
		engine:        engine,
		upsellRules:   DefaultUpsellRules(),
		historyWindow: historyWindow,
	}
}

// ChatInput is one customer turn. History and Cart are caller-supplied
// every turn; the service holds no state between calls.
type ChatInput struct {
	Utterance string
	History   []Turn
	Cart      []CartItem
}

type ChatResult struct {
	Plan   Plan   `json:"plan"`
	Reply  string `json:"reply"`
	Intent string `json:"intent"`
}

// Chat runs one full turn. Candidate-search failure is fatal for the turn;
// a generative failure degrades to the engine's fallback plan.
func (s *Service) Chat(ctx context.Context, in ChatInput) (*ChatResult, error) {
	intent := ClassifyIntent(in.Utterance)

	// Terminal transition: no search, no model call.
	if intent.End {
		plan, reply := s.engine.Reconcile(ctx, ReconcileInput{Intent: intent})
		return &ChatResult{Plan: plan, Reply: reply, Intent: intent.Label()}, nil
	}

	cartSKUs := make([]string, 0, len(in.Cart))
	for _, item := range in.Cart {
		cartSKUs = append(cartSKUs, item.SKU)
	}

	products, err := s.search.Candidates(ctx, in.Utterance, cartSKUs)
	if err != nil {
		return nil, fmt.Errorf("candidate search: %w", err)
	}
	candidates := NewCandidateSet(products)

	proposal, err := s.provider.ProposePlan(ctx, s.buildProposeRequest(in, products, intent))
	if err != nil {
		// Malformed or failed proposal: the engine degrades to the fixed
		// fallback plan instead of failing the turn.
		log.Printf("plan proposal failed: %v", err)
		proposal = nil
	}

	plan, reply := s.engine.Reconcile(ctx, ReconcileInput{
		Utterance:  in.Utterance,
		Intent:     intent,
		Cart:       in.Cart,
		Candidates: candidates,
		Proposal:   proposal,
	})

	// Second, fully deterministic suggestion source over the final basket.
	basketSKUs := map[string]bool{}
	for _, line := range plan.Basket {
		basketSKUs[line.SKU] = true
	}
	inUpsell := map[string]bool{}
	for _, line := range plan.Upsell {
		inUpsell[line.SKU] = true
	}
	for _, suggestion := range SuggestUpsell(basketSKUs, candidates, s.upsellRules) {
		if inUpsell[suggestion.SKU] {
			continue
		}
		plan.Upsell = append(plan.Upsell, suggestion)
	}

	return &ChatResult{Plan: plan, Reply: reply, Intent: intent.Label()}, nil
}

func (s *Service) buildProposeRequest(in ChatInput, products []catalog.Product, intent Intent) ai.ProposeRequest {
	history := in.History
	if len(history) > s.historyWindow {
		history = history[len(history)-s.historyWindow:]
	}
	req := ai.ProposeRequest{
		Utterance:  in.Utterance,
		Candidates: products,
		IntentHint: intent.Label(),
	}
	for _, t := range history {
		req.History = append(req.History, ai.Turn{Role: t.Role, Text: t.Text})
	}
	for _, item := range in.Cart {
		req.Cart = append(req.Cart, ai.CartItem{SKU: item.SKU, Qty: item.Qty})
	}
	return req
}
