// README: Assistant domain model: cart, conversation, plan and candidate set.
package assistant

import "github.com/Alfredcrmn/hardware-kiosk/internal/modules/catalog"

// Turn is one prior conversation message. The caller owns the transcript;
// the assistant only reads a bounded window of it.
type Turn struct {
	Role string `json:"role"` // "user" or "assistant"
	Text string `json:"text"`
}

// CartItem is one line of the client-held cart. The client cart is the
// authoritative quantity source for any SKU it contains.
type CartItem struct {
	SKU string `json:"sku"`
	Qty int    `json:"qty"`
}

// BasketLine is a UI-ready projection of a product plus a quantity and a
// justification. It is always rebuilt from candidate data; only the why
// text may originate from the generative proposal.
type BasketLine struct {
	SKU      string  `json:"sku"`
	Name     string  `json:"name"`
	Qty      int     `json:"qty"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
	Stock    int     `json:"stock"`
	ImageURL string  `json:"image_url,omitempty"`
	Why      string  `json:"why,omitempty"`
}

// Plan is the structured shopping plan returned to the caller. A new plan
// replaces the previous one wholesale every turn.
type Plan struct {
	Title   string       `json:"title"`
	Steps   []string     `json:"steps"`
	Basket  []BasketLine `json:"basket"`
	Upsell  []BasketLine `json:"upsell"`
	Confirm string       `json:"confirm"`
}

// CandidateSet is the closed universe of SKUs a turn may reference. It
// preserves the retrieval order so deterministic tie-breaking is possible.
type CandidateSet struct {
	order []string
	bySKU map[string]catalog.Product
}

func NewCandidateSet(products []catalog.Product) CandidateSet {
	cs := CandidateSet{bySKU: make(map[string]catalog.Product, len(products))}
	for _, p := range products {
		cs.Add(p)
	}
	return cs
}

func (cs *CandidateSet) Add(p catalog.Product) {
	if cs.bySKU == nil {
		cs.bySKU = map[string]catalog.Product{}
	}
	if _, ok := cs.bySKU[p.SKU]; ok {
		return
	}
	cs.bySKU[p.SKU] = p
	cs.order = append(cs.order, p.SKU)
}

func (cs CandidateSet) Has(sku string) bool {
	_, ok := cs.bySKU[sku]
	return ok
}

func (cs CandidateSet) Get(sku string) (catalog.Product, bool) {
	p, ok := cs.bySKU[sku]
	return p, ok
}

// Products returns candidates in their original retrieval order.
func (cs CandidateSet) Products() []catalog.Product {
	out := make([]catalog.Product, 0, len(cs.order))
	for _, sku := range cs.order {
		out = append(out, cs.bySKU[sku])
	}
	return out
}

func (cs CandidateSet) Len() int {
	return len(cs.order)
}

// lineFromProduct denormalizes a candidate product into a basket line.
func lineFromProduct(p catalog.Product, qty int, why string) BasketLine {
	if qty < 1 {
		qty = 1
	}
	return BasketLine{
		SKU:      p.SKU,
		Name:     p.Name,
		Qty:      qty,
		Price:    p.Price,
		Currency: p.Currency,
		Stock:    p.Stock,
		ImageURL: p.ImageURL,
		Why:      why,
	}
}
