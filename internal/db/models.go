package db

import (
	"fmt"
	"time"
)

// User table. Profile attributes mirror what the mobile clients edit; the
// slice-valued fields are stored as JSON columns.
type User struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement"`
	Email        string `gorm:"uniqueIndex;size:128;not null"`
	PasswordHash string `gorm:"size:255;not null"`

	FullName   string   `gorm:"size:128"`
	Gender     string   `gorm:"size:16"`
	Birthday   string   `gorm:"size:10"` // YYYY-MM-DD
	Photos     []string `gorm:"serializer:json;type:text"`
	Bio        string   `gorm:"size:1024"`
	Interests  []string `gorm:"serializer:json;type:text"`
	ShowMe     string   `gorm:"size:16;default:everyone"`
	AgeMin     int      `gorm:"default:18"`
	AgeMax     int      `gorm:"default:35"`
	DistanceKm int      `gorm:"default:50"`
	Verified   bool     `gorm:"default:false"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Like is a directed interest edge liker -> liked. The ledger is append-only
// and deliberately carries no uniqueness constraint: repeated likes from the
// same liker are allowed, matching only cares about existence per direction.
//
// Indexes:
//   - idx_liker_liked(liker_id, liked_id)
//     O(1) reverse-direction lookups during match resolution.
//   - liked_id index for "who liked me" listings.
type Like struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	LikerID   uint64    `gorm:"not null;index:idx_liker_liked,priority:1"`
	LikedID   uint64    `gorm:"not null;index:idx_liker_liked,priority:2;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Match is the undirected pairing of two users. UserA/UserB keep the order
// of the like that closed the pair; equality is order-independent through
// PairKey.
//
// PairKey is the normalized "<lo>:<hi>" form of the two participant IDs and
// carries the unique index that enforces at most one match per unordered
// pair. Concurrent resolvers racing on the same pair hit the constraint and
// recover by re-reading the winner's row.
type Match struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	UserA     uint64    `gorm:"not null;index"`
	UserB     uint64    `gorm:"not null;index"`
	PairKey   string    `gorm:"size:64;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// PairKeyFor normalizes an unordered user pair into its canonical key.
func PairKeyFor(a, b uint64) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d:%d", a, b)
}

// HasUser reports whether the given user is a participant of the match.
func (m *Match) HasUser(userID uint64) bool {
	return m.UserA == userID || m.UserB == userID
}

// OtherUser returns the counterpart of the given participant.
func (m *Match) OtherUser(userID uint64) (uint64, bool) {
	switch userID {
	case m.UserA:
		return m.UserB, true
	case m.UserB:
		return m.UserA, true
	}
	return 0, false
}

// Message belongs to exactly one match. Sender membership is enforced at
// write time by the chat service, not by a foreign key.
type Message struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	MatchID   uint64    `gorm:"not null;index:idx_match_created,priority:1"`
	SenderID  uint64    `gorm:"not null"`
	Text      string    `gorm:"size:2048"`
	MediaURL  string    `gorm:"size:512"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_match_created,priority:2"`
}

// Report captures a user report. Capture only, no enforcement.
type Report struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	ReporterID uint64    `gorm:"not null;index"`
	ReportedID uint64    `gorm:"not null;index"`
	Reason     string    `gorm:"size:1024;not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}
