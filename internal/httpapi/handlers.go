package httpapi

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/attendant/internal/export"
	"github.com/zulandar/attendant/internal/models"
	"github.com/zulandar/attendant/internal/store"
)

// webhookRequest is the inbound message payload.
type webhookRequest struct {
	UserNumber string `json:"user_number" binding:"required"`
	Message    string `json:"message" binding:"required"`
}

func handleWebhook(d Dialogue) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req webhookRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_number and message are required"})
			return
		}

		res, err := d.HandleInbound(c.Request.Context(), req.UserNumber, req.Message)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

func handleListConversations(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		f := store.Filter{
			UserNumber: c.Query("user_number"),
			Status:     c.Query("status"),
			Domain:     c.Query("domain"),
			Sentiment:  c.Query("sentiment"),
		}
		if raw := c.Query("needs_human"); raw != "" {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "needs_human must be a boolean"})
				return
			}
			f.NeedsHuman = &v
		}

		convs, err := st.ListConversations(f)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"conversations": convs, "count": len(convs)})
	}
}

// loadConversation resolves the :id param, writing the error response itself
// when the conversation cannot be served.
func loadConversation(c *gin.Context, st *store.Store) *models.Conversation {
	conv, err := st.ConversationByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil
	}
	if conv == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
		return nil
	}
	return conv
}

func handleConversationDetail(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		conv := loadConversation(c, st)
		if conv == nil {
			return
		}
		c.JSON(http.StatusOK, conv)
	}
}

func handleConversationMessages(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		conv := loadConversation(c, st)
		if conv == nil {
			return
		}
		msgs, err := st.MessagesByConversation(conv.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"conversation_id": conv.ID, "messages": msgs, "count": len(msgs)})
	}
}

func handleExportCSV(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		conv := loadConversation(c, st)
		if conv == nil {
			return
		}
		msgs, err := st.MessagesByConversation(conv.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var buf bytes.Buffer
		if err := export.CSV(&buf, conv, msgs); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+export.Filename(conv, "csv")+`"`)
		c.Data(http.StatusOK, "text/csv", buf.Bytes())
	}
}

func handleExportPDF(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		conv := loadConversation(c, st)
		if conv == nil {
			return
		}
		msgs, err := st.MessagesByConversation(conv.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var buf bytes.Buffer
		if err := export.PDF(&buf, conv, msgs); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+export.Filename(conv, "pdf")+`"`)
		c.Data(http.StatusOK, "application/pdf", buf.Bytes())
	}
}

func handleSentimentRefresh(d Dialogue) gin.HandlerFunc {
	return func(c *gin.Context) {
		conv, err := d.RefreshSentiment(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, conv)
	}
}

func handleStats(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := st.ConversationStats()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		sentiments, err := st.SentimentCounts()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		domains, err := st.DomainCounts()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status_counts":    stats.StatusCounts,
			"stale_open":       stats.StaleOpen,
			"sentiment_counts": sentiments,
			"domain_counts":    domains,
		})
	}
}
