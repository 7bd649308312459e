package bot_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rasben/openai-zulip/internal/bot"
)

func TestDecodePayload(t *testing.T) {
	t.Parallel()

	t.Run("full payload", func(t *testing.T) {
		t.Parallel()
		body := `{
			"bot_full_name": "Test Bot",
			"data": "@**Test Bot** hello",
			"message": {"sender_full_name": "Benji", "sender_id": 42, "stream_id": 7}
		}`

		p, err := bot.DecodePayload(strings.NewReader(body))
		require.NoError(t, err)
		assert.Equal(t, "Test Bot", p.BotFullName)
		assert.Equal(t, "@**Test Bot** hello", p.Data)
		assert.Equal(t, "Benji", p.SenderName())
		assert.Equal(t, int64(42), p.SenderID())
		assert.Equal(t, int64(7), p.StreamID())
	})

	t.Run("missing message block degrades to sentinels", func(t *testing.T) {
		t.Parallel()
		p, err := bot.DecodePayload(strings.NewReader(`{"bot_full_name": "Test Bot", "data": "hello"}`))
		require.NoError(t, err)
		assert.Equal(t, "", p.SenderName())
		assert.Equal(t, int64(0), p.SenderID())
		assert.Equal(t, int64(0), p.StreamID())
	})

	t.Run("partial message block", func(t *testing.T) {
		t.Parallel()
		p, err := bot.DecodePayload(strings.NewReader(`{"data": "hi", "message": {"sender_id": 42}}`))
		require.NoError(t, err)
		assert.Equal(t, int64(42), p.SenderID())
		assert.Equal(t, int64(0), p.StreamID())
		assert.Equal(t, "", p.SenderName())
	})

	t.Run("invalid JSON is a parse failure", func(t *testing.T) {
		t.Parallel()
		p, err := bot.DecodePayload(strings.NewReader(`{"data": `))
		require.Error(t, err)
		assert.Nil(t, p)
		assert.Contains(t, err.Error(), "failed to decode webhook payload")
	})

	t.Run("unknown fields are ignored", func(t *testing.T) {
		t.Parallel()
		p, err := bot.DecodePayload(strings.NewReader(`{"data": "hi", "token": "abc", "trigger": "mention"}`))
		require.NoError(t, err)
		assert.Equal(t, "hi", p.Data)
	})
}
