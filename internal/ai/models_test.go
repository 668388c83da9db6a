package ai

import (
	"errors"
	"testing"
)

func TestParseProposal_Valid(t *testing.T) {
	raw := `{"plan":{"title":"Tu pedido","steps":["a","b","c"],"basket":[{"sku":"TEFLON-STD-001","qty":2,"why":"sella la rosca"}],"upsell":[],"confirm":"¿Confirmamos?"},"reply":"Listo"}`
	p, err := ParseProposal(raw)
	if err != nil {
		t.Fatalf("ParseProposal: %v", err)
	}
	if p.Plan == nil || len(p.Plan.Basket) != 1 || p.Plan.Basket[0].SKU != "TEFLON-STD-001" {
		t.Errorf("unexpected plan: %+v", p.Plan)
	}
	if p.Reply != "Listo" {
		t.Errorf("reply = %q", p.Reply)
	}
}

func TestParseProposal_MarkdownFences(t *testing.T) {
	raw := "```json\n{\"plan\":null,\"reply\":\"hola\"}\n```"
	p, err := ParseProposal(raw)
	if err != nil {
		t.Fatalf("ParseProposal: %v", err)
	}
	if p.Plan != nil || p.Reply != "hola" {
		t.Errorf("got %+v", p)
	}
}

func TestParseProposal_Malformed(t *testing.T) {
	for _, raw := range []string{"", "   ", "not json at all", `{"plan":`} {
		_, err := ParseProposal(raw)
		if !errors.Is(err, ErrMalformedProposal) {
			t.Errorf("ParseProposal(%q) err = %v, want ErrMalformedProposal", raw, err)
		}
	}
}
