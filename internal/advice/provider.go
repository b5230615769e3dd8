package advice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// Fallback answers returned in place of a completion.
const (
	FallbackStatus    = "Sorry, I'm unable to provide advice right now. Please try again later."
	FallbackTransport = "I'm having trouble connecting right now. Here's some general advice: Ensure your goats have access to fresh water, quality hay, and regular health check-ups. Monitor their behavior daily for any changes."
	FallbackMalformed = "Unable to get AI response at this time."
)

// Provider runs prompts through a Completer and tracks which task ids are
// in flight. Asking the same task id twice starts two exchanges.
type Provider struct {
	completer Completer
	log       *slog.Logger
	metrics   *Metrics

	mu           sync.Mutex
	loading      map[string]int
	lastError    string
	lastResponse string
}

// NewProvider wraps c. metrics may be nil.
func NewProvider(c Completer, log *slog.Logger, metrics *Metrics) *Provider {
	if log == nil {
		log = slog.Default()
	}
	return &Provider{
		completer: c,
		log:       log,
		metrics:   metrics,
		loading:   map[string]int{},
	}
}

// Ask sends p and returns the answer, or a fallback string when the
// exchange fails. It never returns an empty string.
func (p *Provider) Ask(ctx context.Context, pr Prompt) string {
	p.begin(pr.TaskID)
	defer p.end(pr.TaskID)

	start := time.Now()
	p.log.DebugContext(ctx, "advice request", "kind", pr.Kind, "task_id", pr.TaskID)
	answer, err := p.completer.Complete(ctx, pr.System, pr.User)
	elapsed := time.Since(start)

	outcome := OutcomeOK
	var errMsg string
	if err != nil {
		var statusErr *StatusError
		switch {
		case errors.As(err, &statusErr):
			outcome, answer = OutcomeStatus, FallbackStatus
			errMsg = fmt.Sprintf("API Error: %d", statusErr.Code)
		case errors.Is(err, ErrMalformedResponse):
			outcome, answer = OutcomeMalformed, FallbackMalformed
			errMsg = err.Error()
		default:
			outcome, answer = OutcomeTransport, FallbackTransport
			errMsg = "Network error: " + err.Error()
		}
		p.log.WarnContext(ctx, "advice request failed",
			"kind", pr.Kind, "task_id", pr.TaskID, "outcome", outcome, "error", err)
	} else if answer == "" {
		outcome, answer = OutcomeMalformed, FallbackMalformed
		errMsg = "empty completion"
	}
	p.metrics.observe(pr.Kind, outcome, elapsed.Seconds())
	p.log.DebugContext(ctx, "advice response",
		"kind", pr.Kind, "task_id", pr.TaskID, "outcome", outcome, "duration", elapsed)

	p.mu.Lock()
	p.lastError = errMsg
	p.lastResponse = answer
	p.mu.Unlock()
	return answer
}

// IsLoading reports whether an exchange for id is in flight.
func (p *Provider) IsLoading(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading[id] > 0
}

// Loading returns the sorted task ids currently in flight.
func (p *Provider) Loading() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	ids := make([]string, 0, len(p.loading))
	for id := range p.loading {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// LastError is the error message of the most recent exchange, empty when it
// succeeded.
func (p *Provider) LastError() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastError
}

// LastResponse is the answer (or fallback) of the most recent exchange.
func (p *Provider) LastResponse() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastResponse
}

func (p *Provider) begin(id string) {
	p.mu.Lock()
	p.loading[id]++
	p.mu.Unlock()
}

func (p *Provider) end(id string) {
	p.mu.Lock()
	if p.loading[id] <= 1 {
		delete(p.loading, id)
	} else {
		p.loading[id]--
	}
	p.mu.Unlock()
}
