// Package export renders conversation transcripts as downloadable documents.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/zulandar/attendant/internal/models"
)

const timestampLayout = "2006-01-02 15:04:05"

// CSV writes a conversation transcript as CSV: a metadata preamble followed
// by one row per message in transcript order.
func CSV(w io.Writer, conv *models.Conversation, msgs []models.Message) error {
	cw := csv.NewWriter(w)

	meta := [][]string{
		{"conversation_id", conv.ID},
		{"user_number", conv.UserNumber},
		{"domain", conv.Domain},
		{"status", conv.Status},
		{"start_time", conv.StartTime.Format(timestampLayout)},
		{"needs_human", strconv.FormatBool(conv.NeedsHuman)},
	}
	if conv.EndTime != nil {
		meta = append(meta, []string{"end_time", conv.EndTime.Format(timestampLayout)})
	}
	if conv.Sentiment != nil {
		score := ""
		if conv.SentimentScore != nil {
			score = strconv.FormatFloat(*conv.SentimentScore, 'f', 2, 64)
		}
		meta = append(meta, []string{"sentiment", *conv.Sentiment}, []string{"sentiment_score", score})
	}
	for _, row := range meta {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: csv metadata: %w", err)
		}
	}

	if err := cw.Write([]string{"seq", "timestamp", "sender", "domain", "content"}); err != nil {
		return fmt.Errorf("export: csv header: %w", err)
	}
	for _, m := range msgs {
		sender := "bot"
		if m.FromUser {
			sender = "user"
		}
		row := []string{
			strconv.Itoa(m.Seq),
			m.Timestamp.Format(timestampLayout),
			sender,
			m.Domain,
			m.Content,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: csv flush: %w", err)
	}
	return nil
}

// Filename builds a download filename for a conversation export.
func Filename(conv *models.Conversation, ext string) string {
	return fmt.Sprintf("conversation-%s-%s.%s",
		conv.ID, conv.StartTime.Format("20060102"), ext)
}

func formatTime(t time.Time) string {
	return t.Format(timestampLayout)
}
