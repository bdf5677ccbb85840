// Package httpapi exposes the bot over HTTP: one inbound message endpoint
// plus health and metrics.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"log/slog"

	"github.com/aretw0/picbot/internal/logging"
	"github.com/aretw0/picbot/pkg/domain"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Bot is the surface the HTTP adapter drives.
type Bot interface {
	HandleActivity(ctx context.Context, act domain.Activity) error
}

// activityRequest is the inbound wire shape.
type activityRequest struct {
	Type         string `json:"type"`
	Text         string `json:"text"`
	Conversation struct {
		ID string `json:"id"`
	} `json:"conversation"`
}

// NewHandler creates the HTTP handler for the bot.
func NewHandler(bot Bot, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = logging.NewNop()
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Post("/api/messages", func(w http.ResponseWriter, req *http.Request) {
		var body activityRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if body.Conversation.ID == "" {
			http.Error(w, "Missing conversation id", http.StatusBadRequest)
			return
		}

		act := domain.Activity{
			Kind:           domain.ActivityKind(body.Type),
			Utterance:      body.Text,
			ConversationID: body.Conversation.ID,
		}

		if err := bot.HandleActivity(req.Context(), act); err != nil {
			logger.Error("activity handling failed",
				"conversation_id", act.ConversationID,
				"err", err,
			)
			http.Error(w, "Turn processing failed", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusAccepted)
	})

	return r
}
