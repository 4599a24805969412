package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/emberapp/ember-backend/internal/db"
)

// MessageRepository provides data access methods for the per-match message
// log. The log is append-only; membership checks happen a layer above.
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new repository bound to the given DB connection.
func NewMessageRepository(database *gorm.DB) *MessageRepository {
	return &MessageRepository{db: database}
}

// Append stores a message with the current timestamp and returns it.
func (r *MessageRepository) Append(ctx context.Context, matchID, senderID uint64, text, mediaURL string) (*db.Message, error) {
	msg := db.Message{
		MatchID:  matchID,
		SenderID: senderID,
		Text:     text,
		MediaURL: mediaURL,
	}
	if err := r.db.WithContext(ctx).Create(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListByMatch returns the messages of one match in creation order.
// The secondary sort on id keeps messages created within the same
// timestamp tick in insertion order.
func (r *MessageRepository) ListByMatch(ctx context.Context, matchID uint64) ([]db.Message, error) {
	var messages []db.Message
	err := r.db.WithContext(ctx).
		Where("match_id = ?", matchID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
