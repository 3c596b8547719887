package revcheck

import (
	"sync"

	"github.com/agentstation/revcheck/pkg/ledger"
)

// Hook function types for run events
type (
	// UnverifiedHook is called for every client record that did not verify
	UnverifiedHook func(record ledger.ClientRecord)

	// CompleteHook is called once a run has written all of its outputs
	CompleteHook func(report *Report)
)

// hooks manages event callbacks for a checker
type hooks struct {
	mu           sync.RWMutex
	onUnverified []UnverifiedHook
	onComplete   []CompleteHook
}

func newHooks() *hooks {
	return &hooks{}
}

// OnUnverified registers a callback for records that need attention
func (h *hooks) OnUnverified(fn UnverifiedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onUnverified = append(h.onUnverified, fn)
}

// OnComplete registers a callback for finished runs
func (h *hooks) OnComplete(fn CompleteHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onComplete = append(h.onComplete, fn)
}

func (h *hooks) trigger(report *Report) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.onUnverified) > 0 {
		for _, rec := range report.Result.Unverified() {
			for _, fn := range h.onUnverified {
				fn(rec)
			}
		}
	}
	for _, fn := range h.onComplete {
		fn(report)
	}
}
