package match_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/emberapp/ember-backend/internal/app"
	"github.com/emberapp/ember-backend/internal/cache"
	"github.com/emberapp/ember-backend/internal/config"
	"github.com/emberapp/ember-backend/internal/db"
	svcErr "github.com/emberapp/ember-backend/internal/errors"
	"github.com/emberapp/ember-backend/internal/repository"
	"github.com/emberapp/ember-backend/internal/service/match"
)

// setupService spins up an in-memory SQLite DB with the full schema, seeds
// three users, starts a miniredis, and wires everything into a match
// service. Each test gets its own isolated DB + Redis.
func setupService(t *testing.T) (*match.Service, *app.AppContext) {
	t.Helper()

	dbName := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	dbase, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{
		NowFunc:                func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	sqlDB, err := dbase.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(dbase))

	users := []db.User{
		{ID: 1, Email: "a@test.com", PasswordHash: "x", Gender: "male", FullName: "Alice"},
		{ID: 2, Email: "b@test.com", PasswordHash: "x", Gender: "female", FullName: "Bob"},
		{ID: 3, Email: "c@test.com", PasswordHash: "x", Gender: "female", FullName: "Cid"},
	}
	require.NoError(t, dbase.Create(&users).Error)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cfg := &config.Config{}
	cfg.Redis.Addr = mr.Addr()

	redisCache := cache.NewRedisCache(cfg)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	appCtx := app.New(cfg, dbase, redisCache, logger)
	return match.NewService(appCtx), appCtx
}

func matchCount(t *testing.T, appCtx *app.AppContext) int64 {
	t.Helper()
	var count int64
	require.NoError(t, appCtx.DB.Model(&db.Match{}).Count(&count).Error)
	return count
}

func TestSelfLikeRejected(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	_, err := svc.ProcessLike(ctx, 1, 1)
	require.Error(t, err)
	assert.Equal(t, svcErr.KindInvalidInput, svcErr.KindOf(err))
}

func TestLikeUnknownTarget(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	_, err := svc.ProcessLike(ctx, 1, 999)
	require.Error(t, err)
	assert.Equal(t, svcErr.KindNotFound, svcErr.KindOf(err))
}

func TestNoPrematureMatch(t *testing.T) {
	ctx := context.Background()
	svc, appCtx := setupService(t)

	outcome, err := svc.ProcessLike(ctx, 1, 2)
	require.NoError(t, err)
	assert.False(t, outcome.Matched)
	assert.Nil(t, outcome.Match)
	assert.Equal(t, int64(0), matchCount(t, appCtx))
}

func TestMutualLikeCreatesExactlyOneMatch(t *testing.T) {
	ctx := context.Background()
	svc, appCtx := setupService(t)

	outcome, err := svc.ProcessLike(ctx, 1, 2)
	require.NoError(t, err)
	assert.False(t, outcome.Matched)

	outcome, err = svc.ProcessLike(ctx, 2, 1)
	require.NoError(t, err)
	require.True(t, outcome.Matched)
	require.NotNil(t, outcome.Match)
	firstID := outcome.Match.ID

	// repeating either direction is idempotent
	outcome, err = svc.ProcessLike(ctx, 1, 2)
	require.NoError(t, err)
	require.True(t, outcome.Matched)
	assert.Equal(t, firstID, outcome.Match.ID)

	assert.Equal(t, int64(1), matchCount(t, appCtx))
}

func TestConcurrentMutualResolution(t *testing.T) {
	ctx := context.Background()
	svc, appCtx := setupService(t)

	// both directions already in the ledger: the race is purely on the
	// existence-check-then-insert of the match row
	likes := repository.NewLikeRepository(appCtx.DB)
	_, err := likes.Create(ctx, 1, 2)
	require.NoError(t, err)
	_, err = likes.Create(ctx, 2, 1)
	require.NoError(t, err)

	var wg sync.WaitGroup
	outcomes := make([]*match.Outcome, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, b := uint64(1), uint64(2)
			if i == 1 {
				a, b = b, a
			}
			outcome, err := svc.ProcessLike(ctx, a, b)
			if assert.NoError(t, err) {
				outcomes[i] = outcome
			}
		}(i)
	}
	wg.Wait()

	require.NotNil(t, outcomes[0])
	require.NotNil(t, outcomes[1])
	assert.True(t, outcomes[0].Matched)
	assert.True(t, outcomes[1].Matched)
	assert.Equal(t, outcomes[0].Match.ID, outcomes[1].Match.ID)
	assert.Equal(t, int64(1), matchCount(t, appCtx))
}

func TestListMatchesResolvesCounterpart(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	_, err := svc.ProcessLike(ctx, 1, 2)
	require.NoError(t, err)
	_, err = svc.ProcessLike(ctx, 2, 1)
	require.NoError(t, err)

	entries, err := svc.ListMatches(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].Counterpart)
	assert.Equal(t, "b@test.com", entries[0].Counterpart.Email)

	// user 3 is in no match
	entries, err = svc.ListMatches(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestListMatchesKeepsEntryForMissingCounterpart(t *testing.T) {
	ctx := context.Background()
	svc, appCtx := setupService(t)

	// match against an account that no longer resolves
	matches := repository.NewMatchRepository(appCtx.DB)
	_, _, err := matches.CreateIfAbsent(ctx, 1, 999)
	require.NoError(t, err)

	entries, err := svc.ListMatches(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].Counterpart)
}

func TestListMatchesNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc, appCtx := setupService(t)

	matches := repository.NewMatchRepository(appCtx.DB)
	for _, other := range []uint64{2, 3} {
		_, _, err := matches.CreateIfAbsent(ctx, 1, other)
		require.NoError(t, err)
	}

	entries, err := svc.ListMatches(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.False(t, entries[1].CreatedAt.After(entries[0].CreatedAt))
}

func TestLikedYouListing(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	_, err := svc.ProcessLike(ctx, 2, 1)
	require.NoError(t, err)
	_, err = svc.ProcessLike(ctx, 3, 1)
	require.NoError(t, err)

	likers, next, err := svc.LikedYou(ctx, 1, nil)
	require.NoError(t, err)
	assert.Len(t, likers, 2)
	assert.Nil(t, next)
}

func TestCountLikedYouCacheFallbackAndHit(t *testing.T) {
	ctx := context.Background()
	svc, appCtx := setupService(t)

	_, err := svc.ProcessLike(ctx, 2, 1)
	require.NoError(t, err)
	_, err = svc.ProcessLike(ctx, 3, 1)
	require.NoError(t, err)

	// cache miss: DB fallback populates the counter
	count, err := svc.CountLikedYou(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// cache hit wins over the DB
	require.NoError(t, appCtx.RedisCache.SetLikedYouCount(ctx, 1, 99))
	count, err = svc.CountLikedYou(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(99), count)
}

func TestLikeBumpsWarmCounter(t *testing.T) {
	ctx := context.Background()
	svc, appCtx := setupService(t)

	// warm the counter, then a fresh like must bump it
	require.NoError(t, appCtx.RedisCache.SetLikedYouCount(ctx, 1, 0))

	_, err := svc.ProcessLike(ctx, 2, 1)
	require.NoError(t, err)

	count, ok, err := appCtx.RedisCache.GetLikedYouCount(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(1), count)

	// a duplicate like from the same user must not bump it again
	_, err = svc.ProcessLike(ctx, 2, 1)
	require.NoError(t, err)

	count, _, err = appCtx.RedisCache.GetLikedYouCount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
