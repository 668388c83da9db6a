// README: One-shot demo turn against Gemini with a canned candidate set.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/Alfredcrmn/hardware-kiosk/internal/ai"
	"github.com/Alfredcrmn/hardware-kiosk/internal/modules/catalog"
)

func main() {
	_ = godotenv.Load()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable not set")
	}

	ctx := context.Background()
	provider, err := ai.NewGeminiProvider(ctx, apiKey)
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}
	defer provider.Close()

	candidates := []catalog.Product{
		{SKU: "CORTA-COBRE-001", Name: "Cortatubo para cobre 1/8\"-1 1/8\"", Price: 289, Currency: "MXN", Stock: 4, Category: "Herramientas", Subcategory: "Corte"},
		{SKU: "REP-CORTA-001", Name: "Disco de repuesto para cortatubo", Price: 49, Currency: "MXN", Stock: 12, Category: "Herramientas", Subcategory: "Refacciones"},
		{SKU: "TEFLON-STD-001", Name: "Cinta teflón 1/2\" x 10m", Price: 12, Currency: "MXN", Stock: 80, Category: "Plomería", Subcategory: "Consumibles"},
	}

	userMessage := "sí, dame el repuesto"
	fmt.Printf("User: %s\n", userMessage)

	proposal, err := provider.ProposePlan(ctx, ai.ProposeRequest{
		Utterance:  userMessage,
		Cart:       []ai.CartItem{{SKU: "CORTA-COBRE-001", Qty: 1}},
		Candidates: candidates,
		IntentHint: "add",
	})
	if err != nil {
		log.Fatalf("Error proposing plan: %v", err)
	}

	fmt.Printf("AI Reply: %s\n", proposal.Reply)
	if proposal.Plan != nil {
		fmt.Printf("Title: %s\n", proposal.Plan.Title)
		for _, line := range proposal.Plan.Basket {
			fmt.Printf("  - %s x%d (%s)\n", line.SKU, line.Qty, line.Why)
		}
	}
}
