// Package store owns persistence and timeout transitions for conversations
// and messages. No explicit end-of-conversation event exists in the protocol;
// the inactivity window is the sole session boundary, so staleness detection
// runs opportunistically on every path that touches conversations.
package store

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/zulandar/attendant/internal/models"
	"github.com/zulandar/attendant/internal/profile"
	"gorm.io/gorm"
)

// DefaultInactivity is the session inactivity threshold applied when none is
// configured.
const DefaultInactivity = 60 * time.Minute

// Store provides CRUD and timeout logic over conversations and messages.
type Store struct {
	db         *gorm.DB
	inactivity time.Duration

	// now is injectable for tests.
	now func() time.Time
}

// New creates a Store with the given inactivity threshold. A non-positive
// threshold falls back to DefaultInactivity.
func New(db *gorm.DB, inactivity time.Duration) *Store {
	if inactivity <= 0 {
		inactivity = DefaultInactivity
	}
	return &Store{db: db, inactivity: inactivity, now: time.Now}
}

// Inactivity returns the configured inactivity threshold.
func (s *Store) Inactivity() time.Duration {
	return s.inactivity
}

// CloseInactive scans all open conversations and closes those whose most
// recent message (or start time, when no message exists) is older than the
// inactivity threshold. Closures are persisted per conversation, not as one
// batch; a partial failure leaves the rest open and is safe to retry.
// Returns the count closed.
func (s *Store) CloseInactive() (int, error) {
	cutoff := s.now().Add(-s.inactivity)

	var open []models.Conversation
	if err := s.db.Where("status = ?", models.StatusOpen).Find(&open).Error; err != nil {
		return 0, fmt.Errorf("store: list open conversations: %w", err)
	}

	closed := 0
	for i := range open {
		conv := &open[i]

		lastActivity := conv.StartTime
		var last models.Message
		err := s.db.Where("conversation_id = ?", conv.ID).
			Order("timestamp DESC, seq DESC").First(&last).Error
		switch {
		case err == nil:
			lastActivity = last.Timestamp
		case errors.Is(err, gorm.ErrRecordNotFound):
			// no messages yet, judge by start time
		default:
			return closed, fmt.Errorf("store: last message for %s: %w", conv.ID, err)
		}

		if !lastActivity.Before(cutoff) {
			continue
		}
		if err := s.close(conv); err != nil {
			return closed, err
		}
		closed++
	}

	if closed > 0 {
		log.Printf("store: closed %d inactive conversations", closed)
	}
	return closed, nil
}

// close transitions a conversation to closed and stamps its end time.
func (s *Store) close(conv *models.Conversation) error {
	now := s.now()
	err := s.db.Model(&models.Conversation{}).Where("id = ?", conv.ID).
		Updates(map[string]interface{}{
			"status":   models.StatusClosed,
			"end_time": now,
		}).Error
	if err != nil {
		return fmt.Errorf("store: close conversation %s: %w", conv.ID, err)
	}
	conv.Status = models.StatusClosed
	conv.EndTime = &now
	return nil
}

// GetOrCreate returns the user's current open conversation, or creates a new
// one. A sweep of inactive conversations runs first. An open conversation is
// returned unchanged only when its most recent message is within the
// inactivity threshold; otherwise it is closed and a fresh conversation is
// created with status open and domain unknown.
func (s *Store) GetOrCreate(userNumber string) (*models.Conversation, error) {
	if _, err := s.CloseInactive(); err != nil {
		log.Printf("store: inactivity sweep failed: %v", err)
	}

	var existing models.Conversation
	err := s.db.Where("user_number = ? AND status = ?", userNumber, models.StatusOpen).
		Order("start_time DESC").First(&existing).Error
	switch {
	case err == nil:
		cutoff := s.now().Add(-s.inactivity)

		var last models.Message
		lerr := s.db.Where("conversation_id = ?", existing.ID).
			Order("timestamp DESC, seq DESC").First(&last).Error
		if lerr == nil && !last.Timestamp.Before(cutoff) {
			return &existing, nil
		}
		if lerr != nil && !errors.Is(lerr, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("store: last message for %s: %w", existing.ID, lerr)
		}
		// Stale, or open with no messages at all: close and fall through.
		if cerr := s.close(&existing); cerr != nil {
			return nil, cerr
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return nil, fmt.Errorf("store: lookup open conversation for %s: %w", userNumber, err)
	}

	conv := models.Conversation{
		ID:         uuid.NewString(),
		UserNumber: userNumber,
		StartTime:  s.now(),
		Domain:     string(profile.Unknown),
		Status:     models.StatusOpen,
	}
	if err := s.db.Create(&conv).Error; err != nil {
		return nil, fmt.Errorf("store: create conversation for %s: %w", userNumber, err)
	}
	return &conv, nil
}

// CreateMessage resolves the owning conversation via GetOrCreate and appends
// a new message row. An empty domain inherits the conversation's current
// domain tag.
func (s *Store) CreateMessage(userNumber, content string, fromUser bool, domain string) (*models.Message, error) {
	conv, err := s.GetOrCreate(userNumber)
	if err != nil {
		return nil, err
	}
	if domain == "" {
		domain = conv.Domain
	}

	var maxSeq int
	s.db.Model(&models.Message{}).
		Where("conversation_id = ?", conv.ID).
		Select("COALESCE(MAX(seq), 0)").Scan(&maxSeq)

	msg := models.Message{
		ID:             uuid.NewString(),
		Seq:            maxSeq + 1,
		ConversationID: conv.ID,
		UserNumber:     userNumber,
		Content:        content,
		FromUser:       fromUser,
		Domain:         domain,
		Timestamp:      s.now(),
	}
	if err := s.db.Create(&msg).Error; err != nil {
		return nil, fmt.Errorf("store: create message for %s: %w", userNumber, err)
	}
	return &msg, nil
}

// ConversationByID looks up a conversation. Malformed or unknown identifiers
// yield (nil, nil), never an error.
func (s *Store) ConversationByID(id string) (*models.Conversation, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	var conv models.Conversation
	err := s.db.Where("id = ?", id).First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: conversation %s: %w", id, err)
	}
	return &conv, nil
}

// MessagesByConversation returns all messages of a conversation in transcript
// order: timestamp ascending, insertion order breaking ties. Malformed
// identifiers yield an empty result.
func (s *Store) MessagesByConversation(id string) ([]models.Message, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	var msgs []models.Message
	err := s.db.Where("conversation_id = ?", id).
		Order("timestamp ASC, seq ASC").Find(&msgs).Error
	if err != nil {
		return nil, fmt.Errorf("store: messages for %s: %w", id, err)
	}
	return msgs, nil
}

// UpdateDomain persists a new domain tag for a conversation.
func (s *Store) UpdateDomain(conversationID, domain string) error {
	err := s.db.Model(&models.Conversation{}).Where("id = ?", conversationID).
		Update("domain", domain).Error
	if err != nil {
		return fmt.Errorf("store: update domain for %s: %w", conversationID, err)
	}
	return nil
}

// SaveConversation persists the mutable turn state of a conversation:
// domain, sentiment fields, and the escalation flag.
func (s *Store) SaveConversation(conv *models.Conversation) error {
	err := s.db.Model(&models.Conversation{}).Where("id = ?", conv.ID).
		Updates(map[string]interface{}{
			"domain":                conv.Domain,
			"needs_human":           conv.NeedsHuman,
			"sentiment":             conv.Sentiment,
			"sentiment_score":       conv.SentimentScore,
			"last_sentiment_update": conv.LastSentimentUpdate,
		}).Error
	if err != nil {
		return fmt.Errorf("store: save conversation %s: %w", conv.ID, err)
	}
	return nil
}

// Now returns the store's current clock reading. The clock is injectable in
// tests; production stores read time.Now.
func (s *Store) Now() time.Time {
	return s.now()
}

// UpdateSentiment persists sentiment, score, and the sentiment-update
// timestamp for a conversation. Used by the manual refresh path outside the
// normal ingestion flow.
func (s *Store) UpdateSentiment(conversationID, sentiment string, score float64) error {
	if _, err := uuid.Parse(conversationID); err != nil {
		return fmt.Errorf("store: update sentiment: malformed id %q", conversationID)
	}
	err := s.db.Model(&models.Conversation{}).Where("id = ?", conversationID).
		Updates(map[string]interface{}{
			"sentiment":             sentiment,
			"sentiment_score":       score,
			"last_sentiment_update": s.now(),
		}).Error
	if err != nil {
		return fmt.Errorf("store: update sentiment for %s: %w", conversationID, err)
	}
	return nil
}
