package dto

import (
	"strconv"
	"time"

	"github.com/emberapp/ember-backend/internal/db"
)

// MessageOut is a single conversation message as returned to clients.
type MessageOut struct {
	ID        string    `json:"id"`
	SenderID  string    `json:"sender_id"`
	Text      string    `json:"text"`
	MediaURL  string    `json:"media_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageRow maps a stored message into its wire shape.
func MessageRow(m *db.Message) *MessageOut {
	return &MessageOut{
		ID:        strconv.FormatUint(m.ID, 10),
		SenderID:  strconv.FormatUint(m.SenderID, 10),
		Text:      m.Text,
		MediaURL:  m.MediaURL,
		CreatedAt: m.CreatedAt,
	}
}
