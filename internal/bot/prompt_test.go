package bot_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rasben/openai-zulip/internal/bot"
)

func TestCleanPrompt(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		raw      string
		botName  string
		expected string
	}{
		{
			name:     "plain message",
			raw:      "hello there",
			botName:  "Test Bot",
			expected: "hello there",
		},
		{
			name:     "leading mention removed",
			raw:      "@**Test Bot** hello there",
			botName:  "Test Bot",
			expected: "hello there",
		},
		{
			name:     "mention in the middle kept",
			raw:      "hello @**Test Bot** there",
			botName:  "Test Bot",
			expected: "hello @**Test Bot** there",
		},
		{
			name:     "other bot mention kept",
			raw:      "@**Other Bot** hello",
			botName:  "Test Bot",
			expected: "@**Other Bot** hello",
		},
		{
			name:     "whitespace trimmed",
			raw:      "   hello   ",
			botName:  "Test Bot",
			expected: "hello",
		},
		{
			name:     "mention only becomes empty",
			raw:      "@**Test Bot**",
			botName:  "Test Bot",
			expected: "",
		},
		{
			name:     "empty input",
			raw:      "",
			botName:  "Test Bot",
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, bot.CleanPrompt(tc.raw, tc.botName))
		})
	}
}

func TestCleanPromptIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"@**Test Bot** hello there",
		"  what do I like?  ",
		"history",
	}

	for _, input := range inputs {
		once := bot.CleanPrompt(input, "Test Bot")
		twice := bot.CleanPrompt(once, "Test Bot")
		assert.Equal(t, once, twice, "normalizing %q twice changed the result", input)
	}
}

func TestBotID(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		fullName string
		expected string
	}{
		{"spaces stripped", "Test Bot", "TestBot"},
		{"symbols stripped", "Haddock-Bot!", "HaddockBot"},
		{"already clean", "yodabot", "yodabot"},
		{"digits kept", "bot42", "bot42"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, bot.BotID(tc.fullName))
		})
	}
}
