// Package chat implements match-scoped messaging. Every read and write goes
// through Authorize, the single gate protecting conversation contents.
package chat

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/emberapp/ember-backend/internal/app"
	"github.com/emberapp/ember-backend/internal/db"
	svcErr "github.com/emberapp/ember-backend/internal/errors"
	"github.com/emberapp/ember-backend/internal/repository"
)

type Service struct {
	appCtx   *app.AppContext
	matches  *repository.MatchRepository
	messages *repository.MessageRepository
}

func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:   appCtx,
		matches:  repository.NewMatchRepository(appCtx.DB),
		messages: repository.NewMessageRepository(appCtx.DB),
	}
}

// Authorize resolves a match and confirms the acting user participates in
// it. It fails NotFound for unknown matches and Forbidden for non-members.
func (s *Service) Authorize(ctx context.Context, matchID, actingUserID uint64) (*db.Match, error) {
	match, err := s.matches.FindByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, svcErr.NotFound("match not found")
		}
		return nil, svcErr.Map(err)
	}

	if !match.HasUser(actingUserID) {
		return nil, svcErr.Forbidden("not a participant of this match")
	}
	return match, nil
}

// PostMessage appends a message to a match's conversation on behalf of a
// participant. Text must be non-empty unless the message carries media.
func (s *Service) PostMessage(ctx context.Context, matchID, senderID uint64, text, mediaURL string) (*db.Message, error) {
	if _, err := s.Authorize(ctx, matchID, senderID); err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" && mediaURL == "" {
		return nil, svcErr.InvalidInput("message text must not be empty")
	}

	msg, err := s.messages.Append(ctx, matchID, senderID, text, mediaURL)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return msg, nil
}

// ListMessages returns a match's conversation in creation order, restricted
// to participants.
func (s *Service) ListMessages(ctx context.Context, matchID, actingUserID uint64) ([]db.Message, error) {
	if _, err := s.Authorize(ctx, matchID, actingUserID); err != nil {
		return nil, err
	}

	messages, err := s.messages.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return messages, nil
}
