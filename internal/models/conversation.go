package models

import "time"

// Conversation statuses.
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Sentiment labels carried on the wire contract with the completion service.
const (
	SentimentPositive = "POSITIVO"
	SentimentNeutral  = "NEUTRO"
	SentimentNegative = "NEGATIVO"
)

// Conversation is a bounded session of turns between one user number and the
// engine, scoped by an inactivity timeout. At most one open conversation
// exists per user number; EndTime is set exactly when Status is closed.
type Conversation struct {
	ID                  string     `gorm:"primaryKey;size:36"`
	UserNumber          string     `gorm:"size:32;index"`
	StartTime           time.Time  `gorm:"index"`
	EndTime             *time.Time
	Domain              string     `gorm:"size:16;default:unknown;index"`
	Status              string     `gorm:"size:16;default:open;index"`
	NeedsHuman          bool       `gorm:"default:false;index"`
	Sentiment           *string    `gorm:"size:16"`
	SentimentScore      *float64
	LastSentimentUpdate *time.Time

	Messages []Message `gorm:"foreignKey:ConversationID"`
}
