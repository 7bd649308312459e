package bot

import (
	"context"
	"log/slog"

	"github.com/rasben/openai-zulip/internal/config"
	"github.com/rasben/openai-zulip/internal/database"
)

// Gate decides, per user, whether messages may be processed, recalled, or
// remembered. It intercepts the reserved consent command keywords before
// any other interpretation of the message.
//
// The store reports errors explicitly; the gate makes the documented
// choice to downgrade read failures to "no consent" so that a broken
// store never grants access it shouldn't.
type Gate struct {
	store database.Store
	cfg   config.ConsentConfig
	log   *slog.Logger
}

// NewGate creates a consent gate backed by the given store.
func NewGate(store database.Store, cfg config.ConsentConfig, log *slog.Logger) *Gate {
	return &Gate{
		store: store,
		cfg:   cfg,
		log:   log.With("component", "consent_gate"),
	}
}

// HandleCommand checks whether the normalized prompt is one of the
// consent-change keywords and applies the transition if so. It returns
// true when a command was intercepted; the caller then answers with the
// fixed confirmation message and does no further processing.
//
// Store failures during a transition are logged and the confirmation is
// still returned; the user's intent is honored on the next attempt.
func (g *Gate) HandleCommand(ctx context.Context, userID int64, prompt string) bool {
	switch prompt {
	// The user has agreed to the basic terms; chat history stays off.
	case g.cfg.CmdGrantBasic:
		if err := g.store.SaveConsent(ctx, userID, true, false); err != nil {
			g.log.ErrorContext(ctx, "Failed to save basic consent", "user_id", userID, "error", err)
		}
		return true

	// The user has agreed to all data terms.
	case g.cfg.CmdGrantFull:
		if err := g.store.SaveConsent(ctx, userID, true, true); err != nil {
			g.log.ErrorContext(ctx, "Failed to save full consent", "user_id", userID, "error", err)
		}
		return true

	// The user wants their data deleted and consent revoked. The schema
	// cascades the delete to any stored summaries.
	case g.cfg.CmdRevoke:
		if err := g.store.DeleteUser(ctx, userID); err != nil {
			g.log.ErrorContext(ctx, "Failed to delete user data", "user_id", userID, "error", err)
		}
		return true
	}

	return false
}

// HasBasic reports whether the user has granted basic consent. Absence
// and store errors both resolve to false.
func (g *Gate) HasBasic(ctx context.Context, userID int64) bool {
	consent, err := g.store.GetConsent(ctx, userID)
	if err != nil {
		g.log.ErrorContext(ctx, "Failed to read consent, treating as not granted", "user_id", userID, "error", err)
		return false
	}
	return consent != nil && consent.BasicConsent
}

// HasFull reports whether the user has granted full consent. The basic
// flag is deliberately not re-checked here: a row holding full without
// basic is a store inconsistency, and recall proceeds once the basic
// check earlier in the pipeline has passed.
func (g *Gate) HasFull(ctx context.Context, userID int64) bool {
	consent, err := g.store.GetConsent(ctx, userID)
	if err != nil {
		g.log.ErrorContext(ctx, "Failed to read consent, treating as not granted", "user_id", userID, "error", err)
		return false
	}
	return consent != nil && consent.FullConsent
}
