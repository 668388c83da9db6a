// README: Provider contract for the generative plan proposal.
package ai

import "context"

// PlanProvider defines the contract for the generative collaborator.
// The interface allows swapping providers (Gemini, OpenAI, a canned fake in
// tests) without touching the reconciliation engine.
type PlanProvider interface {
	// ProposePlan asks the model for a shopping plan draft given the turn's
	// context. The returned Proposal is untrusted: the caller must validate
	// every SKU and quantity before using it.
	ProposePlan(ctx context.Context, req ProposeRequest) (*Proposal, error)
}
