package matcher

import (
	"github.com/agentstation/revcheck/pkg/ledger"
)

// ClassifyFunc turns one tier's candidates into an outcome.
type ClassifyFunc func(client ledger.ClientRecord, candidates []ledger.HomeRecord) ledger.Outcome

// Chain tries tiers in order.
type Chain struct {
	tiers []Tier
}

// NewChain creates a chain over tiers. No tiers means Default().
func NewChain(tiers ...Tier) *Chain {
	if len(tiers) == 0 {
		tiers = Default()
	}
	return &Chain{tiers: tiers}
}

// Tiers returns the chain's tiers in priority order.
func (c *Chain) Tiers() []Tier {
	return c.tiers
}

// Resolve runs each applicable tier and classifies its candidates, stopping
// at the first handled outcome. Tiers with no candidates are skipped. The
// returned outcome is unhandled when no tier produced a verdict.
func (c *Chain) Resolve(client ledger.ClientRecord, catalog *ledger.HomeCatalog, classify ClassifyFunc) ledger.Outcome {
	for _, tier := range c.tiers {
		if !tier.Applies(client) {
			continue
		}
		candidates := tier.Match(client, catalog)
		if len(candidates) == 0 {
			continue
		}
		outcome := classify(client, candidates)
		if outcome.Handled {
			outcome.Tier = tier.Type().String()
			return outcome
		}
	}
	return ledger.Outcome{}
}
