package bot

import "fmt"

// ConversationKey scopes one rolling summary to a (bot, stream, user)
// triple. Summaries are saved per user, per stream: if the user says they
// like hamburgers in #lounge, the bot won't remember it in #random.
type ConversationKey struct {
	BotID    string
	StreamID int64
	UserID   int64
}

// String renders the key in its stored form. The concatenation is
// deterministic; ids are bounded numerics so the dash-joined form cannot
// collide across distinct triples.
func (k ConversationKey) String() string {
	return fmt.Sprintf("%s-%d-%d", k.BotID, k.StreamID, k.UserID)
}
