// Package httpapi exposes the inbound webhook and the admin query surface
// over HTTP.
package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/attendant/internal/dialogue"
	"github.com/zulandar/attendant/internal/models"
	"github.com/zulandar/attendant/internal/store"
)

// Dialogue is the turn-processing surface the API depends on.
type Dialogue interface {
	HandleInbound(ctx context.Context, userNumber, content string) (*dialogue.Result, error)
	RefreshSentiment(ctx context.Context, conversationID string) (*models.Conversation, error)
}

// StartOpts holds configuration for the API server.
type StartOpts struct {
	Store    *store.Store
	Dialogue Dialogue
	Port     int
	Out      io.Writer
}

// Start launches the API server. It blocks until ctx is cancelled, then shuts
// down gracefully.
func Start(ctx context.Context, opts StartOpts) error {
	if opts.Store == nil {
		return fmt.Errorf("httpapi: store is required")
	}
	if opts.Dialogue == nil {
		return fmt.Errorf("httpapi: dialogue engine is required")
	}
	if opts.Port <= 0 {
		opts.Port = 8000
	}

	gin.SetMode(gin.ReleaseMode)
	router := NewRouter(opts.Store, opts.Dialogue)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: router,
	}

	// Graceful shutdown on context cancellation.
	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	if opts.Out != nil {
		fmt.Fprintf(opts.Out, "API listening at http://localhost:%d\n", opts.Port)
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("httpapi: %w", err)
	}
	return nil
}

// NewRouter builds the Gin router with all API routes registered.
func NewRouter(st *store.Store, d Dialogue) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.POST("/webhook", handleWebhook(d))

	admin := router.Group("/admin")
	admin.GET("/conversations", handleListConversations(st))
	admin.GET("/conversations/:id", handleConversationDetail(st))
	admin.GET("/conversations/:id/messages", handleConversationMessages(st))
	admin.GET("/conversations/:id/export.csv", handleExportCSV(st))
	admin.GET("/conversations/:id/export.pdf", handleExportPDF(st))
	admin.POST("/conversations/:id/sentiment/refresh", handleSentimentRefresh(d))
	admin.GET("/stats", handleStats(st))

	return router
}
