// Package server exposes the bot fleet over HTTP in the envelope Zulip's
// outgoing webhooks understand: every application outcome, errors
// included, is an HTTP 200 with a {"content": ...} body.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rasben/openai-zulip/internal/bot"
	"github.com/rasben/openai-zulip/internal/logger"
)

// response is the outbound webhook envelope.
type response struct {
	Content string `json:"content"`
}

// Server routes one endpoint per bot persona to the orchestration engine.
type Server struct {
	engine   *bot.Engine
	personas map[string]bot.Persona
	log      *slog.Logger
}

// New creates a webhook server for the given persona fleet.
func New(engine *bot.Engine, fleet []bot.Persona, log *slog.Logger) *Server {
	personas := make(map[string]bot.Persona, len(fleet))
	for _, p := range fleet {
		personas[p.Name] = p
	}

	return &Server{
		engine:   engine,
		personas: personas,
		log:      log.With("component", "server"),
	}
}

// Handler returns the HTTP handler serving /bots/<name> for every persona.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /bots/{name}", s.handleWebhook)
	return logger.Middleware(s.log, mux)
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	persona, ok := s.personas[r.PathValue("name")]
	if !ok {
		http.NotFound(w, r)
		return
	}

	payload, err := bot.DecodePayload(r.Body)
	if err != nil {
		// A malformed body is still answered in-band; the transport
		// always reports success.
		s.log.WarnContext(ctx, "Rejecting malformed webhook payload", "bot", persona.Name, "error", err)
		s.writeResponse(ctx, w, "Error: Invalid request payload.")
		return
	}

	s.writeResponse(ctx, w, s.engine.Respond(ctx, payload, persona))
}

func (s *Server) writeResponse(ctx context.Context, w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(response{Content: content}); err != nil {
		s.log.ErrorContext(ctx, "Failed to encode webhook response", "error", err)
	}
}
