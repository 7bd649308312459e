// Package ai provides interfaces and implementations for interacting with
// different AI completion backends.
package ai

import (
	"context"
	"errors"
)

// Message roles understood by the completion backends. Ordering of the
// message list is significant: it is the literal sequence handed to the
// backend and determines model context.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry in an ordered conversation handed to a backend.
type Message struct {
	Role    string
	Content string
}

// ErrUnavailable signals that the backend cannot produce a reply at all:
// a missing credential or a malformed upstream payload. Callers surface
// this once as a fixed user-visible error and never retry.
var ErrUnavailable = errors.New("completion backend unavailable")

// Client turns an ordered message list into generated reply text.
type Client interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}
