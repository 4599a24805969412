package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emberapp/ember-backend/internal/db"
)

// MatchRepository provides data access methods for the Match model.
// The unique index on pair_key is what guarantees at most one match per
// unordered user pair; every write path goes through it.
type MatchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a new repository bound to the given DB connection.
func NewMatchRepository(database *gorm.DB) *MatchRepository {
	return &MatchRepository{db: database}
}

// CreateIfAbsent inserts the match for a pair unless one already exists.
//
// Behavior:
//   - Insert races on the pair_key unique index with ON CONFLICT DO NOTHING,
//     so two resolvers processing the same pair concurrently cannot both
//     insert; the loser observes zero affected rows.
//   - On conflict the existing row is re-read and returned with created=false.
//   - Argument order is irrelevant: (a,b) and (b,a) resolve to the same row.
//
// Example:
//
//	match, created, err := repo.CreateIfAbsent(ctx, 1, 2)
func (r *MatchRepository) CreateIfAbsent(ctx context.Context, userA, userB uint64) (*db.Match, bool, error) {
	if userA > userB {
		userA, userB = userB, userA
	}
	match := db.Match{
		UserA:   userA,
		UserB:   userB,
		PairKey: db.PairKeyFor(userA, userB),
	}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "pair_key"}},
			DoNothing: true,
		}).
		Create(&match)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected > 0 {
		return &match, true, nil
	}

	// lost the race (or the pair matched earlier): fetch the winner's row
	existing, err := r.FindByPair(ctx, userA, userB)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// FindByPair looks up the match for an unordered user pair.
func (r *MatchRepository) FindByPair(ctx context.Context, userA, userB uint64) (*db.Match, error) {
	var match db.Match
	err := r.db.WithContext(ctx).
		Where("pair_key = ?", db.PairKeyFor(userA, userB)).
		First(&match).Error
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// FindByID returns the match with the given ID, gorm.ErrRecordNotFound otherwise.
func (r *MatchRepository) FindByID(ctx context.Context, id uint64) (*db.Match, error) {
	var match db.Match
	if err := r.db.WithContext(ctx).First(&match, id).Error; err != nil {
		return nil, err
	}
	return &match, nil
}

// ListForUser returns every match the user participates in, most recent first.
func (r *MatchRepository) ListForUser(ctx context.Context, userID uint64) ([]db.Match, error) {
	var matches []db.Match
	err := r.db.WithContext(ctx).
		Where("user_a = ? OR user_b = ?", userID, userID).
		Order("created_at DESC, id DESC").
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}
