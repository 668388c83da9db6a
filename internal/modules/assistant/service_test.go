package assistant

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Alfredcrmn/hardware-kiosk/internal/ai"
	"github.com/Alfredcrmn/hardware-kiosk/internal/modules/catalog"
)

type fakeSearcher struct {
	products     []catalog.Product
	err          error
	calls        int
	lastCartSKUs []string
}

func (f *fakeSearcher) Candidates(_ context.Context, _ string, cartSKUs []string) ([]catalog.Product, error) {
	f.calls++
	f.lastCartSKUs = cartSKUs
	return f.products, f.err
}

type fakeProvider struct {
	proposal *ai.Proposal
	err      error
	calls    int
	lastReq  ai.ProposeRequest
}

func (f *fakeProvider) ProposePlan(_ context.Context, req ai.ProposeRequest) (*ai.Proposal, error) {
	f.calls++
	f.lastReq = req
	return f.proposal, f.err
}

func newTestService(search *fakeSearcher, provider *fakeProvider) *Service {
	return NewService(search, provider, NewEngine(nil, nil), 0)
}

func TestChat_EndSkipsSearchAndModel(t *testing.T) {
	search := &fakeSearcher{}
	provider := &fakeProvider{}
	svc := newTestService(search, provider)

	res, err := svc.Chat(context.Background(), ChatInput{
		Utterance: "no gracias",
		Cart:      []CartItem{{SKU: testTeflon.SKU, Qty: 1}},
	})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if search.calls != 0 || provider.calls != 0 {
		t.Errorf("closing turn hit collaborators: search=%d provider=%d", search.calls, provider.calls)
	}
	if res.Intent != "end" {
		t.Errorf("intent = %q, want end", res.Intent)
	}
	if len(res.Plan.Basket) != 0 {
		t.Errorf("closing turn basket = %v, want empty", res.Plan.Basket)
	}
}

func TestChat_SearchFailureIsFatal(t *testing.T) {
	search := &fakeSearcher{err: errors.New("db down")}
	provider := &fakeProvider{}
	svc := newTestService(search, provider)

	if _, err := svc.Chat(context.Background(), ChatInput{Utterance: "quiero teflón"}); err == nil {
		t.Fatal("Chat should fail when candidate search fails")
	}
	if provider.calls != 0 {
		t.Error("model was called despite search failure")
	}
}

func TestChat_ProviderFailureDegrades(t *testing.T) {
	search := &fakeSearcher{products: []catalog.Product{testTeflon}}
	provider := &fakeProvider{err: errors.New("quota exceeded")}
	svc := newTestService(search, provider)

	res, err := svc.Chat(context.Background(), ChatInput{Utterance: "quiero teflón"})
	if err != nil {
		t.Fatalf("generative failure should not fail the turn: %v", err)
	}
	if len(res.Plan.Basket) != 0 {
		t.Errorf("fallback basket = %v, want empty", res.Plan.Basket)
	}
	if res.Reply == "" {
		t.Error("fallback turn should still reply")
	}
}

func TestChat_MalformedProposalDegrades(t *testing.T) {
	search := &fakeSearcher{products: []catalog.Product{testTeflon}}
	provider := &fakeProvider{err: fmt.Errorf("decode: %w", ai.ErrMalformedProposal)}
	svc := newTestService(search, provider)

	res, err := svc.Chat(context.Background(), ChatInput{Utterance: "quiero teflón"})
	if err != nil {
		t.Fatalf("malformed proposal should not fail the turn: %v", err)
	}
	if len(res.Plan.Basket) != 0 {
		t.Errorf("fallback basket = %v, want empty", res.Plan.Basket)
	}
}

func TestChat_CartSKUsReachSearcher(t *testing.T) {
	search := &fakeSearcher{products: []catalog.Product{testTeflon}}
	provider := &fakeProvider{proposal: validProposal("ok", nil, nil)}
	svc := newTestService(search, provider)

	_, err := svc.Chat(context.Background(), ChatInput{
		Utterance: "¿cuánto llevo?",
		Cart:      []CartItem{{SKU: testTeflon.SKU, Qty: 2}, {SKU: testCutter.SKU, Qty: 1}},
	})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if len(search.lastCartSKUs) != 2 || search.lastCartSKUs[0] != testTeflon.SKU {
		t.Errorf("cart SKUs passed to searcher = %v", search.lastCartSKUs)
	}
}

func TestChat_DeterministicUpsellAppended(t *testing.T) {
	search := &fakeSearcher{products: []catalog.Product{testCutter, testSpare}}
	provider := &fakeProvider{proposal: validProposal("aquí tienes",
		[]ai.ProposedLine{{SKU: testCutter.SKU, Qty: 1}}, nil)}
	svc := newTestService(search, provider)

	res, err := svc.Chat(context.Background(), ChatInput{Utterance: "quiero un cortatubo"})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if len(res.Plan.Upsell) != 1 || res.Plan.Upsell[0].SKU != testSpare.SKU {
		t.Errorf("upsell = %v, want the cutter spare", res.Plan.Upsell)
	}
}

func TestChat_UpsellNotDuplicated(t *testing.T) {
	search := &fakeSearcher{products: []catalog.Product{testCutter, testSpare}}
	// The model already suggested the spare; the rule engine must not
	// suggest it a second time.
	provider := &fakeProvider{proposal: validProposal("aquí tienes",
		[]ai.ProposedLine{{SKU: testCutter.SKU, Qty: 1}},
		[]ai.ProposedLine{{SKU: testSpare.SKU, Qty: 1, Why: "por si se gasta"}})}
	svc := newTestService(search, provider)

	res, err := svc.Chat(context.Background(), ChatInput{Utterance: "quiero un cortatubo"})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if len(res.Plan.Upsell) != 1 {
		t.Errorf("upsell = %v, want a single spare suggestion", res.Plan.Upsell)
	}
}

func TestChat_HistoryWindowTruncated(t *testing.T) {
	search := &fakeSearcher{products: []catalog.Product{testTeflon}}
	provider := &fakeProvider{proposal: validProposal("ok", nil, nil)}
	svc := newTestService(search, provider)

	var history []Turn
	for i := 0; i < 12; i++ {
		history = append(history, Turn{Role: "user", Text: fmt.Sprintf("turno %d", i)})
	}
	_, err := svc.Chat(context.Background(), ChatInput{Utterance: "quiero teflón", History: history})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if got := len(provider.lastReq.History); got != DefaultHistoryWindow {
		t.Fatalf("history window = %d, want %d", got, DefaultHistoryWindow)
	}
	if provider.lastReq.History[0].Text != "turno 4" {
		t.Errorf("window start = %q, want the most recent turns", provider.lastReq.History[0].Text)
	}
	if provider.lastReq.IntentHint == "" {
		t.Error("intent hint missing from propose request")
	}
}
