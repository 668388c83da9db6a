// README: Gemini-backed plan proposer (JSON mode, prompt with candidate grounding).
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider implements PlanProvider using Google's Gemini models.
type GeminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiProvider initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	// Flash keeps per-turn latency low enough for a kiosk screen.
	model := client.GenerativeModel("gemini-2.0-flash")

	// Force JSON response for structured parsing.
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0.4)

	return &GeminiProvider{client: client, model: model}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

// ProposePlan asks Gemini for a shopping plan draft. The prompt instructs
// the model to stick to candidate SKUs and cart quantities, but that is
// defense-in-depth only: the reconciliation engine re-validates everything.
func (p *GeminiProvider) ProposePlan(ctx context.Context, req ProposeRequest) (*Proposal, error) {
	prompt := buildSystemPrompt(req)

	resp, err := p.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini generation error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no response candidates from Gemini")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		}
	}

	return ParseProposal(responseText.String())
}

// buildSystemPrompt constructs the instructions for the AI.
func buildSystemPrompt(req ProposeRequest) string {
	var b strings.Builder

	b.WriteString(`Role: You are "Ferre", the in-store kiosk assistant of a Mexican hardware store.
You help customers assemble a shopping basket through short conversations in Spanish.

AVAILABLE PRODUCTS (the ONLY SKUs you may reference, one per line as sku | name | price currency | stock | category):
`)
	for _, c := range req.Candidates {
		fmt.Fprintf(&b, "- %s | %s | %.2f %s | stock %d | %s %s\n",
			c.SKU, c.Name, c.Price, c.Currency, c.Stock, c.Category, c.Subcategory)
	}
	if len(req.Candidates) == 0 {
		b.WriteString("(none matched)\n")
	}

	b.WriteString("\nCURRENT CART (quantities chosen by the customer — NEVER change them unless the customer explicitly asks to replace or remove):\n")
	for _, item := range req.Cart {
		fmt.Fprintf(&b, "- %s x%d\n", item.SKU, item.Qty)
	}
	if len(req.Cart) == 0 {
		b.WriteString("(empty)\n")
	}

	fmt.Fprintf(&b, "\nDETECTED INTENT HINT: %s\n", req.IntentHint)

	b.WriteString("\nCONVERSATION SO FAR:\n")
	for _, turn := range req.History {
		fmt.Fprintf(&b, "[%s] %s\n", turn.Role, turn.Text)
	}

	b.WriteString(`
RULES:
1. Use ONLY SKUs from AVAILABLE PRODUCTS. NEVER invent a SKU.
2. If the cart contains a SKU you keep in the basket, copy its quantity EXACTLY.
3. Intent "add" means the customer wants items ADDED to the cart: keep every cart item.
4. Intent "replace" means the customer wants a swap: drop the replaced item, add the alternative.
5. Intent "remove" means take the mentioned item out; keep the rest.
6. "steps" must have 3 to 5 short instructional entries (how to use/install what they buy).
7. "reply" is conversational Mexican Spanish. Simple **bold** emphasis is allowed, no other markup.
8. "why" on each line explains in one short Spanish phrase why the item is in the basket.
9. "confirm" asks the customer to confirm the basket.

Output JSON Schema:
{
  "plan": {
    "title": "string",
    "steps": ["string", ...],
    "basket": [{"sku": "string", "qty": integer, "why": "string"}],
    "upsell": [{"sku": "string", "qty": integer, "why": "string"}],
    "confirm": "string"
  },
  "reply": "string (user facing, Spanish)"
}
`)

	fmt.Fprintf(&b, "\nUser Message: %s\n", req.Utterance)
	return b.String()
}
