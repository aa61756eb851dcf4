package dashboard

import (
	"bytes"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/attendant/internal/export"
	"github.com/zulandar/attendant/internal/store"
)

// registerRoutes sets up all dashboard routes on the Gin router.
func registerRoutes(router *gin.Engine, st *store.Store) {
	// Embedded static assets (served from assets/ subdir of the embed.FS).
	staticFS, _ := fs.Sub(assetsFS, "assets")
	router.StaticFS("/static", http.FS(staticFS))

	// Pages.
	router.GET("/", handleIndex(st))
	router.GET("/conversations/:id", handleConversationDetail(st))
	router.GET("/conversations/:id/export.csv", handleExport(st, "csv"))
	router.GET("/conversations/:id/export.pdf", handleExport(st, "pdf"))

	// SSE escalation feed.
	router.GET("/api/events", handleSSE(st))
}

func handleIndex(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "layout.html", indexData(st))
	}
}

func handleConversationDetail(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := detailData(st, c.Param("id"))
		if err != nil {
			c.String(http.StatusInternalServerError, "query failed")
			return
		}
		if data == nil {
			c.String(http.StatusNotFound, "conversation not found")
			return
		}
		c.HTML(http.StatusOK, "layout.html", data)
	}
}

func handleExport(st *store.Store, format string) gin.HandlerFunc {
	return func(c *gin.Context) {
		conv, err := st.ConversationByID(c.Param("id"))
		if err != nil {
			c.String(http.StatusInternalServerError, "query failed")
			return
		}
		if conv == nil {
			c.String(http.StatusNotFound, "conversation not found")
			return
		}
		msgs, err := st.MessagesByConversation(conv.ID)
		if err != nil {
			c.String(http.StatusInternalServerError, "query failed")
			return
		}

		var buf bytes.Buffer
		contentType := "text/csv"
		if format == "pdf" {
			contentType = "application/pdf"
			err = export.PDF(&buf, conv, msgs)
		} else {
			err = export.CSV(&buf, conv, msgs)
		}
		if err != nil {
			c.String(http.StatusInternalServerError, "export failed")
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+export.Filename(conv, format)+`"`)
		c.Data(http.StatusOK, contentType, buf.Bytes())
	}
}
