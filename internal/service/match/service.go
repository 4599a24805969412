// Package match implements the like ledger, mutual-like resolution and the
// match directory. Match creation is the only correctness-critical race in
// the system; see ProcessLike.
package match

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/emberapp/ember-backend/internal/app"
	"github.com/emberapp/ember-backend/internal/db"
	"github.com/emberapp/ember-backend/internal/dto"
	svcErr "github.com/emberapp/ember-backend/internal/errors"
	"github.com/emberapp/ember-backend/internal/repository"
)

const likedYouPageSize = 20

type Service struct {
	appCtx  *app.AppContext
	users   *repository.UserRepository
	likes   *repository.LikeRepository
	matches *repository.MatchRepository
}

func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:  appCtx,
		users:   repository.NewUserRepository(appCtx.DB),
		likes:   repository.NewLikeRepository(appCtx.DB),
		matches: repository.NewMatchRepository(appCtx.DB),
	}
}

// Outcome reports what a like submission resolved to.
type Outcome struct {
	Matched bool
	Match   *db.Match
}

// ProcessLike records a like and resolves whether it closes a mutual pair.
//
// Steps:
//  1. Reject self-likes and unknown targets.
//  2. Append the like to the ledger (no dedup, the ledger is raw history).
//  3. Probe the reverse direction; no reverse like means no match yet.
//  4. Materialize the match through the pair_key unique index. Concurrent
//     submissions from both directions funnel into the same row: the insert
//     either wins or recovers the winner's row, so for any unordered pair
//     exactly one match ever exists and the call stays idempotent.
func (s *Service) ProcessLike(ctx context.Context, likerID, likedID uint64) (*Outcome, error) {
	if likerID == likedID {
		return nil, svcErr.InvalidInput("cannot like yourself")
	}

	exists, err := s.users.Exists(ctx, likedID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	if !exists {
		return nil, svcErr.NotFound("user not found")
	}

	prior, err := s.likes.Exists(ctx, likerID, likedID)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	if _, err := s.likes.Create(ctx, likerID, likedID); err != nil {
		return nil, svcErr.Map(err)
	}

	// bump the target's liked-you counter, first like per direction only
	if !prior {
		if err := s.appCtx.RedisCache.IncrLikedYouCount(ctx, likedID); err != nil {
			s.appCtx.Logger.Debug("liked-you counter bump failed", "user_id", likedID, "err", err)
		}
	}

	reverse, err := s.likes.Exists(ctx, likedID, likerID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	if !reverse {
		return &Outcome{Matched: false}, nil
	}

	matched, created, err := s.matches.CreateIfAbsent(ctx, likerID, likedID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	if created {
		s.appCtx.Logger.Info("match created", "match_id", matched.ID, "user_a", matched.UserA, "user_b", matched.UserB)
	}

	return &Outcome{Matched: true, Match: matched}, nil
}

// ListMatches returns the acting user's match directory, most recent first.
// A counterpart that no longer resolves yields a nil counterpart but the
// entry is still listed.
func (s *Service) ListMatches(ctx context.Context, userID uint64) ([]*dto.MatchEntry, error) {
	matches, err := s.matches.ListForUser(ctx, userID)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	entries := make([]*dto.MatchEntry, 0, len(matches))
	for i := range matches {
		m := &matches[i]
		otherID, ok := m.OtherUser(userID)
		if !ok {
			continue
		}

		counterpart, err := s.users.FindByID(ctx, otherID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, svcErr.Map(err)
			}
			counterpart = nil
		}
		entries = append(entries, dto.MatchRow(m, counterpart))
	}
	return entries, nil
}

// LikedYou lists who liked the acting user, newest first, cursor paginated.
func (s *Service) LikedYou(ctx context.Context, userID uint64, paginationToken *string) ([]*dto.Liker, *string, error) {
	rows, nextToken, err := s.likes.GetLikers(ctx, userID, paginationToken, likedYouPageSize)
	if err != nil {
		return nil, nil, svcErr.Map(err)
	}

	likers := make([]*dto.Liker, 0, len(rows))
	for _, row := range rows {
		likers = append(likers, &dto.Liker{
			UserID:  formatID(row.LikerID),
			LikedAt: row.CreatedAt,
		})
	}
	return likers, nextToken, nil
}

// CountLikedYou returns how many distinct users liked the acting user.
// Cache-first: Redis serves hot counters, the DB is the fallback and
// repopulates the cache with a TTL.
func (s *Service) CountLikedYou(ctx context.Context, userID uint64) (int64, error) {
	if n, ok, err := s.appCtx.RedisCache.GetLikedYouCount(ctx, userID); err == nil && ok {
		return n, nil
	}

	count, err := s.likes.CountLikers(ctx, userID)
	if err != nil {
		return 0, svcErr.Map(err)
	}

	if err := s.appCtx.RedisCache.SetLikedYouCount(ctx, userID, count); err != nil {
		s.appCtx.Logger.Debug("liked-you counter store failed", "user_id", userID, "err", err)
	}
	return count, nil
}
