package database

import "time"

// UserConsent records what a user has agreed to. BasicConsent permits
// processing a message at all; FullConsent additionally permits storing a
// rolling conversation summary. The store does not force FullConsent to
// imply BasicConsent; callers treat the flags independently.
type UserConsent struct {
	UserID    int64     `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	BasicConsent bool `db:"basic_consent"`
	FullConsent  bool `db:"full_consent"`
}

// Summary is one rolling conversation recap, keyed by the derived
// conversation key. Later writes overwrite; there is no versioning.
type Summary struct {
	Key       string    `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	UserID  int64  `db:"user_id"`
	BotID   string `db:"bot_id"`
	Summary string `db:"summary"`
}
