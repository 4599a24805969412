package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/emberapp/ember-backend/internal/db"
	"github.com/emberapp/ember-backend/internal/utils/pagination"
)

// LikeRepository provides data access methods for the like ledger.
// The ledger is append-only: likes are never updated or deleted, and the
// same liker may appear multiple times for the same target.
type LikeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new repository bound to the given DB connection.
func NewLikeRepository(database *gorm.DB) *LikeRepository {
	return &LikeRepository{db: database}
}

// Create appends a like entry liker -> liked with the current timestamp.
//
// Example:
//
//	repo.Create(ctx, 1, 2) // user 1 liked user 2
func (r *LikeRepository) Create(ctx context.Context, likerID, likedID uint64) (*db.Like, error) {
	like := db.Like{LikerID: likerID, LikedID: likedID}
	if err := r.db.WithContext(ctx).Create(&like).Error; err != nil {
		return nil, err
	}
	return &like, nil
}

// Exists reports whether at least one like liker -> liked is recorded.
// This is the reverse-direction probe used during match resolution.
func (r *LikeRepository) Exists(ctx context.Context, likerID, likedID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Like{}).
		Where("liker_id = ? AND liked_id = ?", likerID, likedID).
		Count(&count).Error
	return count > 0, err
}

// LikerRow is one collapsed liker of the liked-you listing: duplicate raw
// likes from the same liker fold into their most recent timestamp.
type LikerRow struct {
	LikerID   uint64
	CreatedAt time.Time
}

// GetLikers returns the users who liked the given target.
//
// Behavior:
//   - Collapses duplicate ledger entries per liker (MAX(created_at)).
//   - Ordered by created_at DESC, liker_id DESC.
//   - Supports cursor-based pagination via paginationToken.
//
// Example:
//
//	repo.GetLikers(ctx, 42, nil, 20) // first 20 people who liked user 42
func (r *LikeRepository) GetLikers(
	ctx context.Context,
	likedID uint64,
	paginationToken *string,
	limit int,
) ([]LikerRow, *string, error) {
	cursor, err := pagination.Decode(getString(paginationToken))
	if err != nil {
		return nil, nil, err
	}

	query := r.db.WithContext(ctx).
		Model(&db.Like{}).
		Select("liker_id, MAX(created_at) AS created_at").
		Where("liked_id = ?", likedID).
		Group("liker_id").
		Order("created_at DESC, liker_id DESC").
		Limit(limit + 1)

	// apply cursor
	if cursor.UserID > 0 && cursor.CreatedUnix > 0 {
		ts := time.UnixMilli(cursor.CreatedUnix)
		query = query.Having(
			"(MAX(created_at) < ? OR (MAX(created_at) = ? AND liker_id < ?))",
			ts, ts, cursor.UserID,
		)
	}

	var rows []LikerRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, nil, err
	}

	// pagination: build next cursor if needed
	var nextToken *string
	if len(rows) > limit {
		last := rows[limit-1]
		token, _ := pagination.Encode(pagination.Cursor{
			UserID:      last.LikerID,
			CreatedUnix: last.CreatedAt.UnixMilli(),
		})
		nextToken = &token
		rows = rows[:limit]
	}

	return rows, nextToken, nil
}

// CountLikers returns how many distinct users liked the given target.
// Duplicate ledger entries from the same liker count once.
func (r *LikeRepository) CountLikers(ctx context.Context, likedID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Like{}).
		Distinct("liker_id").
		Where("liked_id = ?", likedID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// getString safely dereferences a string pointer for pagination tokens.
func getString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
