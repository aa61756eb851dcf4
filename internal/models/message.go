package models

import "time"

// Message is a single conversation turn, either inbound from the user or a
// generated reply. Rows are append-only and immutable once created. Transcript
// order is Timestamp ascending with Seq breaking ties in insertion order.
type Message struct {
	ID             string    `gorm:"primaryKey;size:36"`
	Seq            int       `gorm:"not null;index"`
	ConversationID string    `gorm:"size:36;index"`
	UserNumber     string    `gorm:"size:32;index"`
	Content        string    `gorm:"type:text"`
	FromUser       bool
	Domain         string    `gorm:"size:16;default:unknown"`
	Timestamp      time.Time `gorm:"index"`

	Conversation Conversation `gorm:"foreignKey:ConversationID"`
}
