package marksync

import (
	"sync"

	"github.com/agentstation/marksync/pkg/reconciler"
	"github.com/agentstation/marksync/pkg/suggest"
)

// Hook function types for run events
type (
	// OutcomeHook is called once for every source entry of a migration
	OutcomeHook func(out reconciler.Outcome)

	// SuggestionHook is called once for every record examined by suggest
	SuggestionHook func(s suggest.Suggestion, status suggest.Status)
)

// hooks manages event callbacks
type hooks struct {
	mu           sync.RWMutex
	onOutcome    []OutcomeHook
	onSuggestion []SuggestionHook
}

func newHooks() *hooks {
	return &hooks{}
}

// OnOutcome registers a callback for migration outcomes.
func (c *Client) OnOutcome(fn OutcomeHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onOutcome = append(c.hooks.onOutcome, fn)
}

// OnSuggestion registers a callback for suggest decisions.
func (c *Client) OnSuggestion(fn SuggestionHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onSuggestion = append(c.hooks.onSuggestion, fn)
}

func (h *hooks) outcome(out reconciler.Outcome) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onOutcome {
		fn(out)
	}
}

func (h *hooks) suggestion(s suggest.Suggestion, status suggest.Status) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onSuggestion {
		fn(s, status)
	}
}
