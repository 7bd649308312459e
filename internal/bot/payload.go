// Package bot implements the conversation orchestration engine: prompt
// normalization, the consent gate, summary recall and persistence, and the
// message assembly pipeline between the webhook transport and the AI
// completion backend.
package bot

import (
	"encoding/json"
	"fmt"
	"io"
)

// Payload is the inbound Zulip outgoing-webhook envelope. Message and its
// fields are optional; absent numeric ids decode to zero and the pipeline
// degrades gracefully rather than rejecting the request.
type Payload struct {
	BotFullName string          `json:"bot_full_name"`
	Data        string          `json:"data"`
	Message     *PayloadMessage `json:"message,omitempty"`
}

// PayloadMessage carries the sender and stream details of the triggering
// Zulip message.
type PayloadMessage struct {
	SenderFullName string `json:"sender_full_name,omitempty"`
	SenderID       int64  `json:"sender_id,omitempty"`
	StreamID       int64  `json:"stream_id,omitempty"`
}

// SenderName returns the sender's display name, or "" when absent.
func (p *Payload) SenderName() string {
	if p.Message == nil {
		return ""
	}
	return p.Message.SenderFullName
}

// SenderID returns the sender's user id, or the zero sentinel when absent.
func (p *Payload) SenderID() int64 {
	if p.Message == nil {
		return 0
	}
	return p.Message.SenderID
}

// StreamID returns the stream id, or the zero sentinel when absent.
func (p *Payload) StreamID() int64 {
	if p.Message == nil {
		return 0
	}
	return p.Message.StreamID
}

// DecodePayload parses the webhook body into a typed payload. A body that
// is not valid JSON is a parse failure; missing fields are not.
func DecodePayload(r io.Reader) (*Payload, error) {
	var p Payload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to decode webhook payload: %w", err)
	}
	return &p, nil
}
