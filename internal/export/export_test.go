package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/zulandar/attendant/internal/models"
)

func sampleTranscript() (*models.Conversation, []models.Message) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sentiment := models.SentimentNegative
	score := -0.7
	conv := &models.Conversation{
		ID:             "3b241101-e2bb-4255-8caf-4136c566a962",
		UserNumber:     "+5511999990001",
		StartTime:      start,
		Domain:         "delivery",
		Status:         models.StatusOpen,
		NeedsHuman:     true,
		Sentiment:      &sentiment,
		SentimentScore: &score,
	}
	msgs := []models.Message{
		{Seq: 1, ConversationID: conv.ID, UserNumber: conv.UserNumber,
			Content: "Where is my order?", FromUser: true, Domain: "delivery", Timestamp: start},
		{Seq: 2, ConversationID: conv.ID, UserNumber: conv.UserNumber,
			Content: "It is on the way, about 10 minutes out.", FromUser: false, Domain: "delivery",
			Timestamp: start.Add(time.Minute)},
	}
	return conv, msgs
}

func TestCSV(t *testing.T) {
	conv, msgs := sampleTranscript()
	var buf bytes.Buffer
	if err := CSV(&buf, conv, msgs); err != nil {
		t.Fatalf("CSV: %v", err)
	}

	r := csv.NewReader(&buf)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}

	// 6 base metadata rows + sentiment pair + column header + 2 message rows
	if len(records) != 11 {
		t.Fatalf("records = %d, want 11:\n%v", len(records), records)
	}
	if records[0][0] != "conversation_id" || records[0][1] != conv.ID {
		t.Errorf("metadata row = %v", records[0])
	}

	last := records[len(records)-1]
	if last[0] != "2" || last[2] != "bot" || last[4] != "It is on the way, about 10 minutes out." {
		t.Errorf("message row = %v", last)
	}
	user := records[len(records)-2]
	if user[2] != "user" || user[4] != "Where is my order?" {
		t.Errorf("message row = %v", user)
	}
}

func TestCSV_NoSentiment(t *testing.T) {
	conv, msgs := sampleTranscript()
	conv.Sentiment = nil
	conv.SentimentScore = nil

	var buf bytes.Buffer
	if err := CSV(&buf, conv, msgs); err != nil {
		t.Fatalf("CSV: %v", err)
	}
	if strings.Contains(buf.String(), "sentiment") {
		t.Error("sentiment rows should be omitted when unset")
	}
}

func TestPDF(t *testing.T) {
	conv, msgs := sampleTranscript()
	var buf bytes.Buffer
	if err := PDF(&buf, conv, msgs); err != nil {
		t.Fatalf("PDF: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Errorf("output does not look like a PDF, first bytes: %q", buf.Bytes()[:8])
	}
	if buf.Len() < 500 {
		t.Errorf("suspiciously small PDF: %d bytes", buf.Len())
	}
}

func TestFilename(t *testing.T) {
	conv, _ := sampleTranscript()
	got := Filename(conv, "csv")
	want := "conversation-3b241101-e2bb-4255-8caf-4136c566a962-20250601.csv"
	if got != want {
		t.Errorf("Filename = %q, want %q", got, want)
	}
}
