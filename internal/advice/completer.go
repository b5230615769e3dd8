// Package advice turns farm records into prompts for a chat-completion API
// and degrades every failure to a fixed, readable fallback answer.
package advice

import (
	"context"
	"errors"
	"fmt"
)

// Completion defaults, applied when a config leaves them zero.
const (
	DefaultModel       = "gpt-3.5-turbo"
	DefaultGeminiModel = "gemini-2.0-flash"
	DefaultMaxTokens   = 300
	DefaultTemperature = 0.7
	DefaultBaseURL     = "https://api.openai.com/v1"
)

// Completer sends one system + user exchange and returns the answer text,
// trimmed. Implementations do not retry.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// StatusError reports a completion API response other than 200.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("advice: completion api returned status %d: %s", e.Code, e.Body)
}

// ErrMalformedResponse is returned when the API answered 200 but the body
// held no usable completion.
var ErrMalformedResponse = errors.New("advice: malformed completion response")
