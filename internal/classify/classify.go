// Package classify infers the commercial domain of a conversation from its
// recent message window.
package classify

import (
	"context"
	"log"
	"strings"

	"github.com/zulandar/attendant/internal/models"
	"github.com/zulandar/attendant/internal/oracle"
	"github.com/zulandar/attendant/internal/profile"
)

// windowSize bounds the classification prompt to the most recent turns,
// dropping the oldest first.
const windowSize = 10

// instruction is the closed-label classification prompt. The completion
// service is told to answer with exactly one of the four labels.
const instruction = "You are a business-type classifier with exactly four possible answers: " +
	"'delivery', 'mechanic', 'pharmacy' or 'unknown'. Analyze the messages below. " +
	"If the customer talks about food, orders or delivery, answer 'delivery'. " +
	"If it is about vehicles, automotive services or car maintenance, answer 'mechanic'. " +
	"If it is about medication, health or pharmacies, answer 'pharmacy'. " +
	"If you cannot tell, answer only 'unknown'. " +
	"IMPORTANT: answer with ONLY one of the four words: delivery, mechanic, pharmacy or unknown. " +
	"Do NOT add extra text, explanations or sentences."

// Classifier issues closed-label classification requests to the completion
// service.
type Classifier struct {
	oracle oracle.Completer
}

// New creates a Classifier backed by the given completer.
func New(completer oracle.Completer) *Classifier {
	return &Classifier{oracle: completer}
}

// Detect classifies the conversation from its history plus the newest inbound
// message, windowed to the most recent turns. Any oracle error is swallowed
// and reported as Unknown; an unrecognized answer is forced to Unknown.
func (c *Classifier) Detect(ctx context.Context, history []models.Message, incoming string) profile.Domain {
	transcript := make([]oracle.ChatMessage, 0, len(history)+2)
	transcript = append(transcript, oracle.ChatMessage{Role: oracle.RoleSystem, Content: instruction})

	turns := make([]oracle.ChatMessage, 0, len(history)+1)
	for _, m := range history {
		role := oracle.RoleAssistant
		if m.FromUser {
			role = oracle.RoleUser
		}
		turns = append(turns, oracle.ChatMessage{Role: role, Content: m.Content})
	}
	turns = append(turns, oracle.ChatMessage{Role: oracle.RoleUser, Content: incoming})
	if len(turns) > windowSize {
		turns = turns[len(turns)-windowSize:]
	}
	transcript = append(transcript, turns...)

	raw, err := c.oracle.Complete(ctx, transcript)
	if err != nil {
		log.Printf("classify: detection failed, using unknown: %v", err)
		return profile.Unknown
	}

	domain := profile.Sanitize(raw)
	if domain == profile.Unknown && !strings.EqualFold(strings.TrimSpace(raw), string(profile.Unknown)) {
		log.Printf("classify: unrecognized label %q, using unknown", raw)
	}
	return domain
}
