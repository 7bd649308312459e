package bot

import (
	"context"
	"log/slog"
	"strings"

	"github.com/rasben/openai-zulip/internal/ai"
	"github.com/rasben/openai-zulip/internal/config"
	"github.com/rasben/openai-zulip/internal/database"
)

// ErrorReply is the fixed user-visible text returned when the completion
// backend cannot produce a reply. It travels in the response body as a
// normal application outcome, never as a transport-level error.
const ErrorReply = "Error: Could not get bot response."

const recapDirective = "Create a short but precise recap of your chat with the user up until now."

// Engine sequences one webhook request through the consent gate, summary
// recall, message assembly, the completion backend, and summary
// recomputation. All collaborators are injected; the engine holds no
// process-wide state and one request never shares state with another.
type Engine struct {
	store    database.Store
	client   ai.Client
	gate     *Gate
	language string
	consent  config.ConsentConfig
	log      *slog.Logger
}

// NewEngine creates the orchestration engine with its collaborators.
func NewEngine(store database.Store, client ai.Client, gate *Gate, cfg *config.Config, log *slog.Logger) *Engine {
	return &Engine{
		store:    store,
		client:   client,
		gate:     gate,
		language: cfg.Language,
		consent:  cfg.Consent,
		log:      log.With("component", "engine"),
	}
}

// request is the per-request aggregate: the sender, the normalized prompt,
// the conversation key, and the growing message sequence. It is owned
// exclusively by one request's execution and never persisted directly.
type request struct {
	userName string
	userID   int64
	botID    string
	prompt   string
	key      ConversationKey
	messages []ai.Message
}

// newRequest normalizes the payload and assembles the leading system
// directives in their fixed order: persona setup, personality, then the
// language directive. The language directive is always present and always
// last of the directives, so later messages cannot easily override it.
func (e *Engine) newRequest(p *Payload, persona Persona) *request {
	botID := BotID(p.BotFullName)

	messages := make([]ai.Message, 0, len(persona.Setup)+4)
	messages = append(messages, persona.Setup...)

	if persona.Personality != "" {
		messages = append(messages, ai.Message{
			Role:    ai.RoleSystem,
			Content: "You are taking the personality of " + persona.Personality,
		})
	}

	messages = append(messages, ai.Message{
		Role:    ai.RoleSystem,
		Content: "IMPORTANT: by default you will answer in " + e.language + ".",
	})

	return &request{
		userName: p.SenderName(),
		userID:   p.SenderID(),
		botID:    botID,
		prompt:   CleanPrompt(p.Data, p.BotFullName),
		key: ConversationKey{
			BotID:    botID,
			StreamID: p.StreamID(),
			UserID:   p.SenderID(),
		},
		messages: messages,
	}
}

// Respond processes one webhook payload and returns the reply content.
// Terminal branches are evaluated strictly in order: consent command,
// history request, missing basic consent, then the completion pipeline.
func (e *Engine) Respond(ctx context.Context, p *Payload, persona Persona) string {
	if persona.Passthrough {
		return e.respondPassthrough(ctx, p)
	}

	vars := e.newRequest(p, persona)

	// Command interception takes priority over every other interpretation
	// of the message, including history requests.
	if e.gate.HandleCommand(ctx, vars.userID, vars.prompt) {
		return e.consent.UpdatedMessage
	}

	// The stored summary is returned verbatim, empty string when none.
	if vars.prompt == e.consent.CmdShowHistory {
		return e.recallSummary(ctx, vars.key)
	}

	if !e.gate.HasBasic(ctx, vars.userID) {
		return e.consent.RequestMessage
	}

	hasFullConsent := e.gate.HasFull(ctx, vars.userID)

	// With full consent, any previous recap is injected before the user
	// turn so the model sees the conversation history.
	if hasFullConsent {
		if summary := e.recallSummary(ctx, vars.key); summary != "" {
			vars.messages = append(vars.messages, ai.Message{
				Role:    ai.RoleSystem,
				Content: "Recap of conversation history with this user: " + summary,
			})
		}
	}

	vars.messages = append(vars.messages, ai.Message{
		Role:    ai.RoleUser,
		Content: vars.userName + ": " + vars.prompt,
	})

	reply, err := e.client.Complete(ctx, vars.messages)
	if err != nil {
		e.log.ErrorContext(ctx, "Completion failed", "bot_id", vars.botID, "user_id", vars.userID, "error", err)
		return ErrorReply
	}

	// The summary is recomputed from the entire assembled sequence, not
	// incrementally merged. Persistence is best-effort: a failed write
	// never fails the user-visible response.
	if hasFullConsent {
		e.refreshSummary(ctx, vars, reply)
	}

	return reply
}

// recallSummary reads the stored summary for a key, downgrading storage
// errors to an empty result.
func (e *Engine) recallSummary(ctx context.Context, key ConversationKey) string {
	summary, err := e.store.GetSummary(ctx, key.String())
	if err != nil {
		e.log.ErrorContext(ctx, "Failed to read summary, treating as empty", "key", key.String(), "error", err)
		return ""
	}
	return summary
}

// refreshSummary appends the assistant's reply and the recap directive to
// the request's message sequence, asks the backend for a fresh recap, and
// upserts it under the conversation key.
func (e *Engine) refreshSummary(ctx context.Context, vars *request, reply string) {
	if reply != "" {
		vars.messages = append(vars.messages, ai.Message{
			Role:    ai.RoleAssistant,
			Content: reply,
		})
	}

	vars.messages = append(vars.messages, ai.Message{
		Role:    ai.RoleSystem,
		Content: recapDirective,
	})

	summary, err := e.client.Complete(ctx, vars.messages)
	if err != nil {
		e.log.ErrorContext(ctx, "Summary recomputation failed", "key", vars.key.String(), "error", err)
		return
	}

	if err := e.store.UpsertSummary(ctx, vars.key.String(), vars.userID, vars.botID, summary); err != nil {
		e.log.ErrorContext(ctx, "Failed to persist summary", "key", vars.key.String(), "error", err)
	}
}

// respondPassthrough treats each line of the normalized prompt as a
// separate message. Lines prefixed "system:" or "assistant:" take that
// role; everything else is a user turn. No consent or memory machinery is
// involved.
func (e *Engine) respondPassthrough(ctx context.Context, p *Payload) string {
	prompt := CleanPrompt(p.Data, p.BotFullName)

	var messages []ai.Message
	for _, line := range strings.Split(prompt, "\n") {
		if line == "" {
			continue
		}

		role := ai.RoleUser
		switch {
		case strings.HasPrefix(line, "system: "):
			role = ai.RoleSystem
			line = strings.TrimPrefix(line, "system: ")
		case strings.HasPrefix(line, "assistant: "):
			role = ai.RoleAssistant
			line = strings.TrimPrefix(line, "assistant: ")
		}

		messages = append(messages, ai.Message{Role: role, Content: line})
	}

	reply, err := e.client.Complete(ctx, messages)
	if err != nil {
		e.log.ErrorContext(ctx, "Passthrough completion failed", "error", err)
		return ErrorReply
	}

	return reply
}
