package assistant

import (
	"testing"

	"github.com/Alfredcrmn/hardware-kiosk/internal/modules/catalog"
)

func TestPickByKeywords_SingleGroupMatchWins(t *testing.T) {
	// Only one candidate matches the {teflon, ptfe} group; it must come
	// first regardless of insertion order.
	candidates := []catalog.Product{
		{SKU: "PEGA-PVC-250", Name: "Cemento PVC 250ml", Stock: 5},
		{SKU: "CORTA-COBRE-001", Name: "Cortatubo para cobre", Stock: 2},
		{SKU: "TEFLON-STD-001", Name: "Cinta teflón 1/2\"", Stock: 10},
	}
	got := PickByKeywords("necesito teflón", candidates, 3)
	if len(got) == 0 || got[0].SKU != "TEFLON-STD-001" {
		t.Fatalf("PickByKeywords first pick = %v, want TEFLON-STD-001", got)
	}
}

func TestPickByKeywords_ScoreAndStableOrder(t *testing.T) {
	candidates := []catalog.Product{
		{SKU: "A", Name: "Unión roscada PVC", Stock: 0},   // union group: 2
		{SKU: "B", Name: "Unión simple PVC", Stock: 3},    // union group + stock: 3
		{SKU: "C", Name: "Cople PVC", Stock: 1},           // stock only: 1
		{SKU: "D", Name: "Unión galvanizada", Stock: 2},   // union group + stock: 3, after B
		{SKU: "E", Name: "Martillo de carpintero", Stock: 0}, // score 0, excluded
	}
	got := PickByKeywords("quiero una unión", candidates, 4)
	wantOrder := []string{"B", "D", "A", "C"}
	if len(got) != len(wantOrder) {
		t.Fatalf("got %d picks, want %d (%v)", len(got), len(wantOrder), got)
	}
	for i, sku := range wantOrder {
		if got[i].SKU != sku {
			t.Errorf("pick[%d] = %s, want %s", i, got[i].SKU, sku)
		}
	}
}

func TestPickByKeywords_CapAndZeroScore(t *testing.T) {
	candidates := []catalog.Product{
		{SKU: "A", Name: "Cinta teflón", Stock: 1},
		{SKU: "B", Name: "Cinta PTFE", Stock: 1},
		{SKU: "C", Name: "Cinta aislante", Stock: 1},
		{SKU: "D", Name: "Cinta métrica", Stock: 1},
	}
	got := PickByKeywords("cinta teflón", candidates, 3)
	if len(got) != 3 {
		t.Fatalf("cap not applied: got %d picks", len(got))
	}

	if got := PickByKeywords("martillo", []catalog.Product{{SKU: "X", Name: "Clavo", Stock: 0}}, 3); len(got) != 0 {
		t.Errorf("zero-score candidates must be excluded, got %v", got)
	}
}

func TestPickByKeywords_DefaultMax(t *testing.T) {
	var candidates []catalog.Product
	for _, sku := range []string{"A", "B", "C", "D", "E"} {
		candidates = append(candidates, catalog.Product{SKU: sku, Name: "Cinta teflón", Stock: 1})
	}
	if got := PickByKeywords("teflón", candidates, 0); len(got) != DefaultFallbackMax {
		t.Errorf("default cap = %d picks, want %d", len(got), DefaultFallbackMax)
	}
}
