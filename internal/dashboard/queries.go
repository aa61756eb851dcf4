package dashboard

import (
	"fmt"
	"log"
	"time"

	"github.com/zulandar/attendant/internal/models"
	"github.com/zulandar/attendant/internal/store"
)

// recentLimit caps the recent-conversations table.
const recentLimit = 20

// ConversationRow holds conversation data for display.
type ConversationRow struct {
	ID             string
	UserNumber     string
	Domain         string
	Status         string
	Sentiment      string
	SentimentClass string
	NeedsHuman     bool
	StartedAgo     string
}

// MessageRow holds message data for the transcript view.
type MessageRow struct {
	Seq     int
	When    string
	Sender  string
	Content string
}

// indexData builds the view model for the overview page. Query failures are
// logged and rendered as empty sections rather than error pages.
func indexData(st *store.Store) map[string]any {
	data := map[string]any{
		"Page":            "index",
		"OpenCount":       int64(0),
		"ClosedCount":     int64(0),
		"EscalationCount": int64(0),
		"NegativeCount":   int64(0),
		"Escalations":     []ConversationRow{},
		"Recent":          []ConversationRow{},
	}

	stats, err := st.ConversationStats()
	if err != nil {
		log.Printf("dashboard: stats: %v", err)
	} else {
		data["OpenCount"] = stats.StatusCounts[models.StatusOpen]
		data["ClosedCount"] = stats.StatusCounts[models.StatusClosed]
	}

	sentiments, err := st.SentimentCounts()
	if err != nil {
		log.Printf("dashboard: sentiment counts: %v", err)
	} else {
		data["NegativeCount"] = sentiments[models.SentimentNegative]
	}

	needsHuman := true
	escalated, err := st.ListConversations(store.Filter{NeedsHuman: &needsHuman})
	if err != nil {
		log.Printf("dashboard: escalations: %v", err)
	} else {
		data["EscalationCount"] = int64(len(escalated))
		data["Escalations"] = toRows(escalated)
	}

	recent, err := st.ListConversations(store.Filter{})
	if err != nil {
		log.Printf("dashboard: recent conversations: %v", err)
	} else {
		if len(recent) > recentLimit {
			recent = recent[:recentLimit]
		}
		data["Recent"] = toRows(recent)
	}

	return data
}

// detailData builds the view model for one conversation's transcript page.
// Returns nil when the conversation does not exist.
func detailData(st *store.Store, id string) (map[string]any, error) {
	conv, err := st.ConversationByID(id)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, nil
	}
	msgs, err := st.MessagesByConversation(conv.ID)
	if err != nil {
		return nil, err
	}

	rows := make([]MessageRow, len(msgs))
	for i, m := range msgs {
		sender := "bot"
		if m.FromUser {
			sender = "user"
		}
		rows[i] = MessageRow{
			Seq:     m.Seq,
			When:    m.Timestamp.Format("2006-01-02 15:04:05"),
			Sender:  sender,
			Content: m.Content,
		}
	}

	return map[string]any{
		"Page":           "detail",
		"Conversation":   conv,
		"Messages":       rows,
		"Started":        conv.StartTime.Format("2006-01-02 15:04:05"),
		"Sentiment":      sentimentLabel(conv),
		"SentimentClass": sentimentClass(conv),
	}, nil
}

func toRows(convs []models.Conversation) []ConversationRow {
	rows := make([]ConversationRow, len(convs))
	for i, conv := range convs {
		rows[i] = ConversationRow{
			ID:             conv.ID,
			UserNumber:     conv.UserNumber,
			Domain:         conv.Domain,
			Status:         conv.Status,
			Sentiment:      sentimentLabel(&conv),
			SentimentClass: sentimentClass(&conv),
			NeedsHuman:     conv.NeedsHuman,
			StartedAgo:     TimeAgo(conv.StartTime),
		}
	}
	return rows
}

func sentimentLabel(conv *models.Conversation) string {
	if conv.Sentiment == nil {
		return ""
	}
	label := *conv.Sentiment
	if conv.SentimentScore != nil {
		label = fmt.Sprintf("%s (%.2f)", label, *conv.SentimentScore)
	}
	return label
}

func sentimentClass(conv *models.Conversation) string {
	if conv.Sentiment == nil {
		return ""
	}
	switch *conv.Sentiment {
	case models.SentimentNegative:
		return "sentiment-negative"
	case models.SentimentPositive:
		return "sentiment-positive"
	default:
		return ""
	}
}

// TimeAgo renders a timestamp as a relative age.
func TimeAgo(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
