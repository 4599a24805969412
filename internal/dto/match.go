package dto

import (
	"strconv"
	"time"

	"github.com/emberapp/ember-backend/internal/db"
)

// MatchEntry is one row of the match directory. Counterpart is nil when the
// paired account no longer resolves; the entry itself is still listed.
type MatchEntry struct {
	ID          string      `json:"id"`
	Counterpart *UserPublic `json:"other"`
	CreatedAt   time.Time   `json:"created_at"`
}

// MatchOutcome reports what a like submission resulted in.
type MatchOutcome struct {
	Matched bool        `json:"matched"`
	Match   *MatchEntry `json:"match,omitempty"`
}

// Liker is one entry of the liked-you listing: who liked the caller and when.
type Liker struct {
	UserID  string    `json:"user_id"`
	LikedAt time.Time `json:"liked_at"`
}

// MatchRow maps a stored match into a directory entry.
func MatchRow(m *db.Match, counterpart *db.User) *MatchEntry {
	entry := &MatchEntry{
		ID:        strconv.FormatUint(m.ID, 10),
		CreatedAt: m.CreatedAt,
	}
	if counterpart != nil {
		entry.Counterpart = PublicUser(counterpart)
	}
	return entry
}
