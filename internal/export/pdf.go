package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/zulandar/attendant/internal/models"
)

// PDF writes a conversation transcript as an A4 PDF document: a header block
// with the conversation metadata, then one paragraph per message.
func PDF(w io.Writer, conv *models.Conversation, msgs []models.Message) error {
	doc := fpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 14)
	doc.Cell(0, 10, "Conversation transcript")
	doc.Ln(12)

	doc.SetFont("Helvetica", "", 10)
	header := []string{
		"Conversation: " + conv.ID,
		"User: " + conv.UserNumber,
		"Domain: " + conv.Domain,
		"Status: " + conv.Status,
		"Started: " + formatTime(conv.StartTime),
	}
	if conv.EndTime != nil {
		header = append(header, "Ended: "+formatTime(*conv.EndTime))
	}
	if conv.Sentiment != nil {
		line := "Sentiment: " + *conv.Sentiment
		if conv.SentimentScore != nil {
			line += fmt.Sprintf(" (%.2f)", *conv.SentimentScore)
		}
		header = append(header, line)
	}
	if conv.NeedsHuman {
		header = append(header, "Flagged for human takeover")
	}
	for _, line := range header {
		doc.Cell(0, 6, tr(line))
		doc.Ln(6)
	}
	doc.Ln(4)

	for _, m := range msgs {
		sender := "Bot"
		if m.FromUser {
			sender = "User"
		}
		doc.SetFont("Helvetica", "B", 10)
		doc.Cell(0, 6, fmt.Sprintf("%s - %s", sender, formatTime(m.Timestamp)))
		doc.Ln(6)
		doc.SetFont("Helvetica", "", 10)
		doc.MultiCell(0, 5, tr(m.Content), "", "L", false)
		doc.Ln(3)
	}

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("export: pdf output: %w", err)
	}
	return nil
}
