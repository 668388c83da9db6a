// README: Basket reconciliation engine: validates and repairs the generative proposal.
package assistant

import (
	"context"
	"log"
	"strings"

	"github.com/Alfredcrmn/hardware-kiosk/internal/ai"
	"github.com/Alfredcrmn/hardware-kiosk/internal/modules/catalog"
)

// SKUFetcher performs read-only point lookups against the catalog, used
// only for pinned-fallback backfills.
type SKUFetcher interface {
	FetchBySKUs(ctx context.Context, skus []string) ([]catalog.Product, error)
}

// Engine turns an untrusted proposal into a validated, cart-consistent
// plan. It is a pure function of its inputs except for the pinned-SKU
// backfill lookups, which are idempotent reads.
type Engine struct {
	fetcher SKUFetcher
	pinned  PinnedFallbacks
}

func NewEngine(fetcher SKUFetcher, pinned PinnedFallbacks) *Engine {
	if pinned == nil {
		pinned = DefaultPinnedFallbacks()
	}
	return &Engine{fetcher: fetcher, pinned: pinned}
}

// ReconcileInput carries one turn's worth of ground truth plus the
// untrusted proposal. A nil Proposal means the generative call failed or
// returned something unparseable.
type ReconcileInput struct {
	Utterance  string
	Intent     Intent
	Cart       []CartItem
	Candidates CandidateSet
	Proposal   *ai.Proposal
}

const (
	closingReply   = "¡Gracias por tu visita! Pasa a caja cuando gustes."
	fallbackReply  = "Aquí tienes tu pedido, ¿lo confirmamos?"
	genericConfirm = "¿Confirmas tu pedido?"
	changeConfirm  = "¿Confirmas el cambio?"
	keptWhy        = "Lo mantuve de tu selección anterior"
	rebuiltWhy     = "Coincide con lo que pediste"
)

var defaultSteps = []string{
	"Revisa los artículos de tu canasta",
	"Confirma cantidades y precios",
	"Pasa a caja para pagar tu pedido",
}

// Reconcile applies the full pipeline: End short-circuit, candidate
// filtering, quantity reassertion, intent-specific merges, empty-basket
// recovery, cart preservation, stock nudges and the upsell filter. Given
// identical inputs it yields an identical plan.
func (e *Engine) Reconcile(ctx context.Context, in ReconcileInput) (Plan, string) {
	if in.Intent.End {
		return emptyPlan(), closingReply
	}
	if in.Proposal == nil {
		return fallbackPlan(), fallbackReply
	}

	draft := in.Proposal.Plan
	if draft == nil {
		draft = &ai.ProposedPlan{}
	}

	cartQty := map[string]int{}
	var cartOrder []string
	for _, item := range in.Cart {
		if _, ok := cartQty[item.SKU]; !ok {
			cartOrder = append(cartOrder, item.SKU)
		}
		cartQty[item.SKU] = item.Qty
	}

	candidates := in.Candidates
	norm := catalog.Normalize(in.Utterance)

	// Hallucination guard + client-authoritative quantities.
	basket := validateLines(draft.Basket, candidates, cartQty)

	// Implicit-replace signal: the model echoed the cart back even though
	// the customer asked for an alternative. Computed before any merge.
	subsetOfCart := true
	for _, line := range basket {
		if _, ok := cartQty[line.SKU]; !ok {
			subsetOfCart = false
			break
		}
	}

	forcedReplace := false
	switch {
	case in.Intent.Add && !in.Intent.Replace:
		basket = e.mergeAddPath(ctx, norm, basket, cartQty, cartOrder, &candidates)
	case !in.Intent.Add && (in.Intent.Replace ||
		(!in.Intent.WantsRemoval && mentionsAlternate(norm) && subsetOfCart)):
		forcedReplace = true
		basket = forceReplace(in.Utterance, norm, basket, cartQty, candidates)
	}

	confirm := strings.TrimSpace(draft.Confirm)

	// Empty-basket recovery: a customer who did not ask for removal and
	// holds a non-empty cart never ends up with an empty basket.
	if len(basket) == 0 {
		switch {
		case in.Intent.Replace:
			basket = linesFromProducts(
				PickByKeywords(in.Utterance, candidates.Products(), DefaultFallbackMax),
				cartQty, rebuiltWhy)
			confirm = changeConfirm
		case !in.Intent.WantsRemoval && len(cartOrder) > 0:
			basket = appendMissingCart(basket, cartOrder, cartQty, candidates)
			confirm = genericConfirm
		}
	}

	// The model frequently "forgets" cart items across turns; re-append
	// them on non-replace, non-removal turns.
	if !in.Intent.Replace && !in.Intent.WantsRemoval && !forcedReplace {
		basket = appendMissingCart(basket, cartOrder, cartQty, candidates)
	}

	// Upsell lines pass the same membership filter; quantities stay as
	// proposed (no cart reassertion for suggestions).
	upsell := validateLines(draft.Upsell, candidates, nil)

	plan := buildPlan(draft.Title, draft.Steps, confirm, basket, upsell)

	reply := strings.TrimSpace(in.Proposal.Reply)
	if reply == "" {
		reply = fallbackReply
	}
	plan, reply = applyStockNudges(plan, reply, candidates)

	return plan, reply
}

// mergeAddPath unions the validated proposal with the client cart and runs
// the bounded ensure-rules.
func (e *Engine) mergeAddPath(ctx context.Context, norm string, basket []BasketLine,
	cartQty map[string]int, cartOrder []string, candidates *CandidateSet) []BasketLine {

	basket = appendMissingCart(basket, cartOrder, cartQty, *candidates)

	if mentions(norm, needSpare.terms) {
		basket = e.ensureNeed(ctx, needSpare, basket, candidates)
		// Cutter already in cart: make sure its paired spare is covered.
		for _, sku := range cartOrder {
			spare, ok := pairedSpares[sku]
			if !ok {
				continue
			}
			basket = e.ensureSKUs(ctx, []string{spare}, basket, candidates, "Repuesto para tu cortatubo")
		}
	}
	if mentions(norm, needSealingTape.terms) {
		basket = e.ensureNeed(ctx, needSealingTape, basket, candidates)
	}
	return basket
}

// ensureNeed adds one item satisfying the need category: first a stocked
// candidate matching the category's vocabulary, then the pinned SKUs. A
// loosely equivalent line already in the basket makes it a no-op.
func (e *Engine) ensureNeed(ctx context.Context, need needCategory, basket []BasketLine, candidates *CandidateSet) []BasketLine {
	if hasEquivalent(basket, need) {
		return basket
	}
	for _, p := range candidates.Products() {
		text := p.SearchText()
		if p.Stock <= 0 || !mentions(text, need.terms) {
			continue
		}
		if len(need.requires) > 0 && !mentions(text, need.requires) {
			continue
		}
		return append(basket, lineFromProduct(p, 1, rebuiltWhy))
	}
	return e.ensureSKUs(ctx, e.pinned[need.name], basket, candidates, rebuiltWhy)
}

// ensureSKUs guarantees the given SKUs are present, backfilling from the
// catalog when a pinned SKU is not a candidate yet. A lookup miss is a
// logged skip, never a turn failure.
func (e *Engine) ensureSKUs(ctx context.Context, skus []string, basket []BasketLine, candidates *CandidateSet, why string) []BasketLine {
	for _, sku := range skus {
		if basketHasSKU(basket, sku) {
			continue
		}
		if p, ok := candidates.Get(sku); ok {
			basket = append(basket, lineFromProduct(p, 1, why))
			continue
		}
		if e.fetcher == nil {
			continue
		}
		fetched, err := e.fetcher.FetchBySKUs(ctx, []string{sku})
		if err != nil || len(fetched) == 0 {
			log.Printf("pinned sku %s unavailable, skipping ensure-rule: %v", sku, err)
			continue
		}
		candidates.Add(fetched[0])
		basket = append(basket, lineFromProduct(fetched[0], 1, why))
	}
	return basket
}

// forceReplace drops every line the customer already had, then rebuilds or
// completes the basket from the keyword picker. Quantities are reasserted
// at the end.
func forceReplace(utterance, norm string, basket []BasketLine, cartQty map[string]int, candidates CandidateSet) []BasketLine {
	var kept []BasketLine
	for _, line := range basket {
		if _, inCart := cartQty[line.SKU]; !inCart {
			kept = append(kept, line)
		}
	}

	// Dropped items must not sneak back in through the picker.
	var pool []catalog.Product
	for _, p := range candidates.Products() {
		if _, inCart := cartQty[p.SKU]; !inCart {
			pool = append(pool, p)
		}
	}

	if len(kept) == 0 {
		kept = linesFromProducts(PickByKeywords(utterance, pool, DefaultFallbackMax), cartQty, rebuiltWhy)
	} else {
		for _, cat := range alternateCategories {
			if !mentions(norm, cat.terms) || categoryRepresented(kept, cat) {
				continue
			}
			picks := PickByKeywords(strings.Join(cat.terms, " "), pool, DefaultFallbackMax)
			for _, p := range picks {
				if basketHasSKU(kept, p.SKU) || !mentions(p.SearchText(), cat.terms) {
					continue
				}
				kept = append(kept, lineFromProduct(p, 1, rebuiltWhy))
			}
		}
	}

	for i := range kept {
		if q, ok := cartQty[kept[i].SKU]; ok {
			kept[i].Qty = q
		} else if kept[i].Qty < 1 {
			kept[i].Qty = 1
		}
	}
	return kept
}

// applyStockNudges prepends out-of-stock warnings and adjusts the confirm
// prompt. Text only: the basket is never touched here.
func applyStockNudges(plan Plan, reply string, candidates CandidateSet) (Plan, string) {
	inBasket := map[string]bool{}
	for _, line := range plan.Basket {
		inBasket[line.SKU] = true
	}
	for _, n := range stockNudges {
		if !inBasket[n.SubstituteSKU] {
			continue
		}
		p, ok := candidates.Get(n.OutOfStockSKU)
		if !ok || p.Stock > 0 {
			continue
		}
		if !strings.Contains(catalog.Normalize(reply), n.marker) {
			reply = n.Warning + " " + reply
		}
		plan.Confirm = n.Confirm
	}
	return plan, reply
}

// stockNudge warns when a substitute sits in the basket while the item it
// substitutes for is out of stock.
type stockNudge struct {
	SubstituteSKU string
	OutOfStockSKU string
	Warning       string
	Confirm       string
	marker        string // reply substring meaning the warning was already given
}

var stockNudges = []stockNudge{
	{
		SubstituteSKU: "PVC-UNION-R-050",
		OutOfStockSKU: "PVC-CPL-050",
		Warning:       "Ojo: el cople de 1/2\" está **agotado**, te propongo la unión roscada equivalente.",
		Confirm:       "¿Confirmas la unión roscada en lugar del cople?",
		marker:        "agotado",
	},
}

// --- helpers -------------------------------------------------------------

// validateLines is the single choke point where untrusted proposal lines
// become trusted basket lines: unknown SKUs are dropped, duplicates
// collapse to the first occurrence, and cart quantities win when cartQty
// is supplied.
func validateLines(lines []ai.ProposedLine, candidates CandidateSet, cartQty map[string]int) []BasketLine {
	var out []BasketLine
	seen := map[string]bool{}
	for _, l := range lines {
		p, ok := candidates.Get(l.SKU)
		if !ok || seen[l.SKU] {
			continue
		}
		seen[l.SKU] = true
		qty := l.Qty
		if cartQty != nil {
			if q, ok := cartQty[l.SKU]; ok {
				qty = q
			}
		}
		out = append(out, lineFromProduct(p, qty, strings.TrimSpace(l.Why)))
	}
	return out
}

func appendMissingCart(basket []BasketLine, cartOrder []string, cartQty map[string]int, candidates CandidateSet) []BasketLine {
	for _, sku := range cartOrder {
		if basketHasSKU(basket, sku) {
			continue
		}
		if p, ok := candidates.Get(sku); ok {
			basket = append(basket, lineFromProduct(p, cartQty[sku], keptWhy))
		}
	}
	return basket
}

func linesFromProducts(products []catalog.Product, cartQty map[string]int, why string) []BasketLine {
	var out []BasketLine
	for _, p := range products {
		qty := 1
		if q, ok := cartQty[p.SKU]; ok {
			qty = q
		}
		out = append(out, lineFromProduct(p, qty, why))
	}
	return out
}

func basketHasSKU(basket []BasketLine, sku string) bool {
	for _, line := range basket {
		if line.SKU == sku {
			return true
		}
	}
	return false
}

func hasEquivalent(basket []BasketLine, need needCategory) bool {
	for _, line := range basket {
		if mentions(catalog.Normalize(line.SKU+" "+line.Name), need.terms) {
			return true
		}
	}
	return false
}

func categoryRepresented(basket []BasketLine, cat needCategory) bool {
	return hasEquivalent(basket, cat)
}

func mentions(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

func mentionsAlternate(norm string) bool {
	for _, cat := range alternateCategories {
		if mentions(norm, cat.terms) {
			return true
		}
	}
	return false
}

// buildPlan clamps the draft's text fields into a well-formed plan: title
// and confirm get defaults, steps are held to 3..5 entries, and the line
// slices are never nil.
func buildPlan(title string, steps []string, confirm string, basket, upsell []BasketLine) Plan {
	title = strings.TrimSpace(title)
	if title == "" {
		title = "Tu pedido"
	}
	var clamped []string
	for _, s := range steps {
		if s = strings.TrimSpace(s); s != "" {
			clamped = append(clamped, s)
		}
		if len(clamped) == 5 {
			break
		}
	}
	for _, s := range defaultSteps {
		if len(clamped) >= 3 {
			break
		}
		clamped = append(clamped, s)
	}
	if confirm == "" {
		confirm = genericConfirm
	}
	if basket == nil {
		basket = []BasketLine{}
	}
	if upsell == nil {
		upsell = []BasketLine{}
	}
	return Plan{Title: title, Steps: clamped, Basket: basket, Upsell: upsell, Confirm: confirm}
}

func emptyPlan() Plan {
	return Plan{
		Title:   "Hasta pronto",
		Steps:   defaultSteps,
		Basket:  []BasketLine{},
		Upsell:  []BasketLine{},
		Confirm: "Pedido cerrado, ¡que te vaya bien!",
	}
}

func fallbackPlan() Plan {
	return Plan{
		Title:   "Tu pedido",
		Steps:   defaultSteps,
		Basket:  []BasketLine{},
		Upsell:  []BasketLine{},
		Confirm: genericConfirm,
	}
}
