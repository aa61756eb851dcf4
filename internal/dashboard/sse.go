package dashboard

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/attendant/internal/store"
)

// escalationEvent holds data for an escalation SSE event.
type escalationEvent struct {
	ConversationID string `json:"conversation_id"`
	UserNumber     string `json:"user_number"`
	Domain         string `json:"domain"`
	Sentiment      string `json:"sentiment,omitempty"`
	Count          int    `json:"count"`
}

// handleSSE streams newly escalated conversations to the browser. The feed
// polls the store; conversations already flagged when the client connects are
// not replayed.
func handleSSE(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")
		c.Header("X-Accel-Buffering", "no")

		// Send connected event.
		writeSSE(c.Writer, "connected", map[string]string{"type": "connected"})
		c.Writer.Flush()

		// If no store, just send connected and return — tests use nil.
		if st == nil {
			return
		}

		needsHuman := true
		seen := make(map[string]bool)

		// Record what is already flagged so only new escalations alert.
		if current, err := st.ListConversations(store.Filter{NeedsHuman: &needsHuman}); err == nil {
			for _, conv := range current {
				seen[conv.ID] = true
			}
		}

		ctx := c.Request.Context()
		ticker := time.NewTicker(3 * time.Second)
		heartbeat := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		defer heartbeat.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-heartbeat.C:
				writeSSE(c.Writer, "heartbeat", map[string]string{
					"timestamp": time.Now().UTC().Format(time.RFC3339),
				})
				c.Writer.Flush()
			case <-ticker.C:
				flagged, err := st.ListConversations(store.Filter{NeedsHuman: &needsHuman})
				if err != nil {
					continue
				}

				for _, conv := range flagged {
					if seen[conv.ID] {
						continue
					}
					seen[conv.ID] = true

					evt := escalationEvent{
						ConversationID: conv.ID,
						UserNumber:     conv.UserNumber,
						Domain:         conv.Domain,
						Count:          len(flagged),
					}
					if conv.Sentiment != nil {
						evt.Sentiment = *conv.Sentiment
					}
					writeSSE(c.Writer, "escalation", evt)
					c.Writer.Flush()
				}
			}
		}
	}
}

// writeSSE writes a single SSE event to the writer.
func writeSSE(w io.Writer, event string, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, string(jsonData))
}
