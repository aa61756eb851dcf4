// Package oracle adapts the remote completion service behind a one-method
// capability: ordered transcript in, raw text out. The service gives no
// structural guarantee on its output; callers salvage what they can.
package oracle

import "context"

// Chat message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one entry of the ordered transcript sent to the completion
// service.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completer sends an ordered transcript to a completion service and returns
// the raw response text. Implementations return an error for transport
// failures and empty responses; they never invent content.
type Completer interface {
	Complete(ctx context.Context, messages []ChatMessage) (string, error)
}
