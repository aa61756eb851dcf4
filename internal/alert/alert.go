// Package alert delivers escalation notifications to a human operator's
// channel. Delivery is best-effort; a failed alert never blocks a reply.
package alert

import (
	"context"
	"fmt"
	"log"

	"github.com/zulandar/attendant/internal/models"
)

// Escalation describes a conversation flagged for human takeover.
type Escalation struct {
	ConversationID string
	UserNumber     string
	Domain         string
	Sentiment      string
	Score          float64
	Reason         string
}

// Notifier delivers an escalation alert to a chat platform.
type Notifier interface {
	Escalate(ctx context.Context, e Escalation) error
}

// Format renders the operator-facing alert text.
func Format(e Escalation) string {
	text := fmt.Sprintf("Human takeover needed for %s (conversation %s)\nDomain: %s\nReason: %s",
		e.UserNumber, e.ConversationID, e.Domain, e.Reason)
	if e.Sentiment != "" {
		text += fmt.Sprintf("\nSentiment: %s (%.2f)", e.Sentiment, e.Score)
	}
	return text
}

// LogNotifier writes escalations to the process log. Used when no chat
// platform is configured.
type LogNotifier struct{}

// Escalate logs the alert.
func (LogNotifier) Escalate(_ context.Context, e Escalation) error {
	log.Printf("alert: %s", Format(e))
	return nil
}

// Multi fans an escalation out to several notifiers. Each notifier gets a
// chance to deliver; the first error is returned after all have run.
type Multi []Notifier

// Escalate delivers to every notifier.
func (m Multi) Escalate(ctx context.Context, e Escalation) error {
	var first error
	for _, n := range m {
		if err := n.Escalate(ctx, e); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// FromConversation builds an Escalation from a conversation row.
func FromConversation(conv *models.Conversation, reason string) Escalation {
	e := Escalation{
		ConversationID: conv.ID,
		UserNumber:     conv.UserNumber,
		Domain:         conv.Domain,
		Reason:         reason,
	}
	if conv.Sentiment != nil {
		e.Sentiment = *conv.Sentiment
	}
	if conv.SentimentScore != nil {
		e.Score = *conv.SentimentScore
	}
	return e
}
