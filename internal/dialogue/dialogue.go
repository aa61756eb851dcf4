// Package dialogue orchestrates one conversational turn: persist the inbound
// message, classify the business domain, assemble the prompt, call the
// completion service, parse the structured response, and record sentiment and
// escalation state.
package dialogue

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/zulandar/attendant/internal/alert"
	"github.com/zulandar/attendant/internal/classify"
	"github.com/zulandar/attendant/internal/contract"
	"github.com/zulandar/attendant/internal/models"
	"github.com/zulandar/attendant/internal/oracle"
	"github.com/zulandar/attendant/internal/profile"
	"github.com/zulandar/attendant/internal/store"
)

// escalationThreshold is the sentiment score below which a negative turn
// flags the conversation for human takeover.
const escalationThreshold = -0.5

// Engine runs the turn pipeline.
type Engine struct {
	store      *store.Store
	oracle     oracle.Completer
	classifier *classify.Classifier
	notifier   alert.Notifier
	locks      *userLocks
}

// New creates an Engine. The notifier may be nil when no alert channel is
// configured.
func New(st *store.Store, completer oracle.Completer, notifier alert.Notifier) *Engine {
	return &Engine{
		store:      st,
		oracle:     completer,
		classifier: classify.New(completer),
		notifier:   notifier,
		locks:      newUserLocks(),
	}
}

// Result is the outcome of one processed turn.
type Result struct {
	Reply     string  `json:"reply"`
	Sentiment string  `json:"sentiment"`
	Score     float64 `json:"score"`
}

// HandleInbound processes one inbound message from a user and returns the
// reply. Turns from the same user are serialized; concurrent messages from
// different users proceed independently.
func (e *Engine) HandleInbound(ctx context.Context, userNumber, content string) (*Result, error) {
	unlock := e.locks.lock(userNumber)
	defer unlock()

	// The inbound message is persisted first; its row pins the session, so
	// the conversation is resolved from it rather than looked up separately.
	inbound, err := e.store.CreateMessage(userNumber, content, true, "")
	if err != nil {
		return nil, fmt.Errorf("dialogue: persist inbound for %s: %w", userNumber, err)
	}
	conv, err := e.store.ConversationByID(inbound.ConversationID)
	if err != nil {
		return nil, fmt.Errorf("dialogue: resolve conversation for %s: %w", userNumber, err)
	}
	if conv == nil {
		return nil, fmt.Errorf("dialogue: conversation %s not found", inbound.ConversationID)
	}

	all, err := e.store.MessagesByConversation(conv.ID)
	if err != nil {
		return nil, fmt.Errorf("dialogue: load history for %s: %w", conv.ID, err)
	}
	// History is every prior turn; the just-persisted inbound message is
	// passed separately so it never appears twice in a prompt.
	history := make([]models.Message, 0, len(all))
	for _, m := range all {
		if m.ID != inbound.ID {
			history = append(history, m)
		}
	}

	detected := e.classifier.Detect(ctx, history, content)
	if detected.Concrete() && string(detected) != conv.Domain {
		conv.Domain = string(detected)
		if err := e.store.UpdateDomain(conv.ID, conv.Domain); err != nil {
			log.Printf("dialogue: %v", err)
		}
	}

	resp := e.generate(ctx, conv, history, content)

	reply := resp.Reply
	if len(history) == 0 && strings.TrimSpace(reply) == "" {
		reply = firstTurnGreeting
	}

	sentiment := strings.ToUpper(strings.TrimSpace(resp.Sentiment))
	switch sentiment {
	case models.SentimentPositive, models.SentimentNeutral, models.SentimentNegative:
	default:
		sentiment = models.SentimentNeutral
	}
	score := resp.Score

	now := e.store.Now()
	conv.Sentiment = &sentiment
	conv.SentimentScore = &score
	conv.LastSentimentUpdate = &now

	escalated := false
	reason := ""
	if sentiment == models.SentimentNegative && score < escalationThreshold {
		escalated = true
		reason = fmt.Sprintf("negative sentiment (score %.2f)", score)
	} else if needsHuman(reply) {
		escalated = true
		reason = "escalation phrase in reply"
	}
	// The flag only ever goes up; a later pleasant turn does not cancel a
	// pending takeover.
	if escalated && !conv.NeedsHuman {
		conv.NeedsHuman = true
		e.notify(ctx, conv, reason)
	}

	if err := e.store.SaveConversation(conv); err != nil {
		log.Printf("dialogue: %v", err)
	}
	if _, err := e.store.CreateMessage(userNumber, reply, false, conv.Domain); err != nil {
		log.Printf("dialogue: persist reply: %v", err)
	}

	return &Result{Reply: reply, Sentiment: sentiment, Score: score}, nil
}

// generate runs the completion and parse steps, retrying once with a
// corrective instruction when the first output is not parseable or parses to
// a blank reply. When no attempt yields a parse result the apology response
// is returned.
func (e *Engine) generate(ctx context.Context, conv *models.Conversation, history []models.Message, content string) *contract.Response {
	transcript := buildTranscript(conv, history, content)

	raw := e.complete(ctx, transcript)
	first, ok := contract.Extract(raw)
	if ok && strings.TrimSpace(first.Reply) != "" {
		return first
	}

	retry := transcript
	if strings.TrimSpace(raw) != "" {
		retry = append(retry, oracle.ChatMessage{Role: oracle.RoleAssistant, Content: raw})
	}
	retry = append(retry, oracle.ChatMessage{Role: oracle.RoleUser, Content: retryInstruction})

	raw = e.complete(ctx, retry)
	if resp, retried := contract.Extract(raw); retried {
		return resp
	}
	if ok {
		// The retry produced nothing; keep the first parse even though its
		// reply is blank.
		return first
	}

	log.Printf("dialogue: unparseable completion after retry for conversation %s", conv.ID)
	return &contract.Response{
		Reply:     apologyReply,
		Sentiment: models.SentimentNeutral,
		Score:     0,
	}
}

// complete calls the completion service, treating transport errors as an
// empty output so the retry and fallback path handles them uniformly.
func (e *Engine) complete(ctx context.Context, transcript []oracle.ChatMessage) string {
	out, err := e.oracle.Complete(ctx, transcript)
	if err != nil {
		log.Printf("dialogue: completion failed: %v", err)
		return ""
	}
	return out
}

// buildTranscript assembles the prompt: system turn, prior history in
// transcript order, then the inbound message.
func buildTranscript(conv *models.Conversation, history []models.Message, content string) []oracle.ChatMessage {
	transcript := make([]oracle.ChatMessage, 0, len(history)+2)
	transcript = append(transcript, oracle.ChatMessage{
		Role:    oracle.RoleSystem,
		Content: buildSystemPrompt(profile.Domain(conv.Domain)),
	})
	for _, m := range history {
		role := oracle.RoleAssistant
		if m.FromUser {
			role = oracle.RoleUser
		}
		transcript = append(transcript, oracle.ChatMessage{Role: role, Content: m.Content})
	}
	transcript = append(transcript, oracle.ChatMessage{Role: oracle.RoleUser, Content: content})
	return transcript
}

func (e *Engine) notify(ctx context.Context, conv *models.Conversation, reason string) {
	if e.notifier == nil {
		return
	}
	if err := e.notifier.Escalate(ctx, alert.FromConversation(conv, reason)); err != nil {
		log.Printf("dialogue: escalation alert: %v", err)
	}
}

// sentimentInstruction asks for a fresh whole-conversation sentiment reading
// in the same JSON shape as a normal turn; the reply field is ignored.
const sentimentInstruction = "Read the conversation above and assess the customer's overall sentiment. " +
	"Answer ONLY with a valid JSON object in the format: " +
	`{"reply": "", "sentiment": "POSITIVO" | "NEUTRO" | "NEGATIVO", "score": a number between -1.0 and 1.0}`

// RefreshSentiment re-evaluates a conversation's sentiment from its full
// transcript and persists the result. Returns the updated conversation.
func (e *Engine) RefreshSentiment(ctx context.Context, conversationID string) (*models.Conversation, error) {
	conv, err := e.store.ConversationByID(conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, fmt.Errorf("dialogue: conversation %s not found", conversationID)
	}

	msgs, err := e.store.MessagesByConversation(conversationID)
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return nil, fmt.Errorf("dialogue: conversation %s has no messages", conversationID)
	}

	transcript := make([]oracle.ChatMessage, 0, len(msgs)+2)
	transcript = append(transcript, oracle.ChatMessage{
		Role:    oracle.RoleSystem,
		Content: basePersona + outputContract,
	})
	for _, m := range msgs {
		role := oracle.RoleAssistant
		if m.FromUser {
			role = oracle.RoleUser
		}
		transcript = append(transcript, oracle.ChatMessage{Role: role, Content: m.Content})
	}
	transcript = append(transcript, oracle.ChatMessage{Role: oracle.RoleUser, Content: sentimentInstruction})

	raw, err := e.oracle.Complete(ctx, transcript)
	if err != nil {
		return nil, fmt.Errorf("dialogue: sentiment refresh for %s: %w", conversationID, err)
	}
	resp, ok := contract.Extract(raw)
	if !ok {
		return nil, fmt.Errorf("dialogue: unparseable sentiment output for %s", conversationID)
	}

	sentiment := strings.ToUpper(strings.TrimSpace(resp.Sentiment))
	switch sentiment {
	case models.SentimentPositive, models.SentimentNeutral, models.SentimentNegative:
	default:
		sentiment = models.SentimentNeutral
	}
	if err := e.store.UpdateSentiment(conversationID, sentiment, resp.Score); err != nil {
		return nil, err
	}
	return e.store.ConversationByID(conversationID)
}
