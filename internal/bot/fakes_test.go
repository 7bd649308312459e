package bot_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/rasben/openai-zulip/internal/ai"
	"github.com/rasben/openai-zulip/internal/bot"
	"github.com/rasben/openai-zulip/internal/config"
	"github.com/rasben/openai-zulip/internal/database"
)

// fakeStore is an in-memory Store for engine and gate tests.
type fakeStore struct {
	consents  map[int64]*database.UserConsent
	summaries map[string]string

	// failReads forces every read to return an error, simulating a broken
	// persistence collaborator.
	failReads  bool
	failWrites bool

	summaryWrites int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		consents:  make(map[int64]*database.UserConsent),
		summaries: make(map[string]string),
	}
}

var errStoreDown = errors.New("store down")

func (s *fakeStore) Ping(context.Context) error { return nil }

func (s *fakeStore) GetConsent(_ context.Context, userID int64) (*database.UserConsent, error) {
	if s.failReads {
		return nil, errStoreDown
	}
	return s.consents[userID], nil
}

func (s *fakeStore) SaveConsent(_ context.Context, userID int64, basic, full bool) error {
	if s.failWrites {
		return errStoreDown
	}
	s.consents[userID] = &database.UserConsent{UserID: userID, BasicConsent: basic, FullConsent: full}
	return nil
}

func (s *fakeStore) DeleteUser(_ context.Context, userID int64) error {
	if s.failWrites {
		return errStoreDown
	}
	delete(s.consents, userID)
	for key := range s.summaries {
		delete(s.summaries, key)
	}
	return nil
}

func (s *fakeStore) GetSummary(_ context.Context, key string) (string, error) {
	if s.failReads {
		return "", errStoreDown
	}
	return s.summaries[key], nil
}

func (s *fakeStore) UpsertSummary(_ context.Context, key string, _ int64, _, summary string) error {
	if s.failWrites {
		return errStoreDown
	}
	s.summaries[key] = summary
	s.summaryWrites++
	return nil
}

func (s *fakeStore) RunMaintenance(context.Context) error { return nil }

// fakeAI records every assembled message list and replies from a queue.
type fakeAI struct {
	replies     []string
	err         error
	calls       [][]ai.Message
	replyCursor int
}

func (f *fakeAI) Complete(_ context.Context, messages []ai.Message) (string, error) {
	copied := make([]ai.Message, len(messages))
	copy(copied, messages)
	f.calls = append(f.calls, copied)

	if f.err != nil {
		return "", f.err
	}

	reply := "stub reply"
	if f.replyCursor < len(f.replies) {
		reply = f.replies[f.replyCursor]
		f.replyCursor++
	}
	return reply, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Language: "Danish",
		Consent: config.ConsentConfig{
			CmdGrantBasic:  "tjoh",
			CmdGrantFull:   "ok",
			CmdRevoke:      "delete",
			CmdShowHistory: "history",
			RequestMessage: "please consent first",
			UpdatedMessage: "consent updated",
		},
	}
}

func newTestEngine(t *testing.T, store database.Store, client ai.Client) *bot.Engine {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := testConfig()
	gate := bot.NewGate(store, cfg.Consent, log)
	return bot.NewEngine(store, client, gate, cfg, log)
}

func webhookPayload(botName, data string, senderID, streamID int64) *bot.Payload {
	return &bot.Payload{
		BotFullName: botName,
		Data:        data,
		Message: &bot.PayloadMessage{
			SenderFullName: "Benji",
			SenderID:       senderID,
			StreamID:       streamID,
		},
	}
}
