package store

import (
	"fmt"
	"time"

	"github.com/zulandar/attendant/internal/models"
)

// Filter selects conversations for the admin/query surfaces. Zero-valued
// fields are ignored.
type Filter struct {
	UserNumber string
	Status     string
	Domain     string
	Sentiment  string
	NeedsHuman *bool
}

// ListConversations returns conversations matching the filter, most recent
// first. An inactivity sweep runs before the query so listings reflect
// current session state.
func (s *Store) ListConversations(f Filter) ([]models.Conversation, error) {
	if _, err := s.CloseInactive(); err != nil {
		return nil, err
	}

	q := s.db.Model(&models.Conversation{})
	if f.UserNumber != "" {
		q = q.Where("user_number = ?", f.UserNumber)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Domain != "" {
		q = q.Where("domain = ?", f.Domain)
	}
	if f.Sentiment != "" {
		q = q.Where("sentiment = ?", f.Sentiment)
	}
	if f.NeedsHuman != nil {
		q = q.Where("needs_human = ?", *f.NeedsHuman)
	}

	var convs []models.Conversation
	if err := q.Order("start_time DESC").Find(&convs).Error; err != nil {
		return nil, fmt.Errorf("store: list conversations: %w", err)
	}
	return convs, nil
}

// Stats summarizes conversation state for the dashboard.
type Stats struct {
	StatusCounts map[string]int64
	StaleOpen    int64 // open conversations started more than an hour ago
	LastCheck    time.Time
}

// ConversationStats returns the status distribution and the count of
// long-running open conversations.
func (s *Store) ConversationStats() (Stats, error) {
	stats := Stats{StatusCounts: make(map[string]int64), LastCheck: s.now()}

	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := s.db.Model(&models.Conversation{}).
		Select("status, count(*) as count").
		Group("status").Find(&rows).Error
	if err != nil {
		return stats, fmt.Errorf("store: status counts: %w", err)
	}
	for _, r := range rows {
		stats.StatusCounts[r.Status] = r.Count
	}

	oneHourAgo := s.now().Add(-time.Hour)
	err = s.db.Model(&models.Conversation{}).
		Where("status = ? AND start_time < ?", models.StatusOpen, oneHourAgo).
		Count(&stats.StaleOpen).Error
	if err != nil {
		return stats, fmt.Errorf("store: stale open count: %w", err)
	}
	return stats, nil
}

// SentimentCounts returns conversation counts grouped by sentiment label,
// excluding conversations with no sentiment yet.
func (s *Store) SentimentCounts() (map[string]int64, error) {
	type row struct {
		Sentiment string
		Count     int64
	}
	var rows []row
	err := s.db.Model(&models.Conversation{}).
		Select("sentiment, count(*) as count").
		Where("sentiment IS NOT NULL").
		Group("sentiment").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("store: sentiment counts: %w", err)
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Sentiment] = r.Count
	}
	return counts, nil
}

// DomainCounts returns conversation counts grouped by domain tag.
func (s *Store) DomainCounts() (map[string]int64, error) {
	type row struct {
		Domain string
		Count  int64
	}
	var rows []row
	err := s.db.Model(&models.Conversation{}).
		Select("domain, count(*) as count").
		Group("domain").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("store: domain counts: %w", err)
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Domain] = r.Count
	}
	return counts, nil
}
