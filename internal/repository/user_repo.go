package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/emberapp/ember-backend/internal/db"
)

// UserRepository provides data access methods for the User model.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new repository bound to the given DB connection.
func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{db: database}
}

// Create persists a new user. Email uniqueness is enforced by the store.
func (r *UserRepository) Create(ctx context.Context, user *db.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// FindByID returns the user with the given ID, gorm.ErrRecordNotFound otherwise.
func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*db.User, error) {
	var user db.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail returns the user with the given email, gorm.ErrRecordNotFound otherwise.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*db.User, error) {
	var user db.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Exists reports whether a user with the given ID is stored.
func (r *UserRepository) Exists(ctx context.Context, id uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.User{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

// Save writes back a full user record. Profile updates load the record,
// mutate the fields the client sent, and save; that keeps the JSON-encoded
// slice columns going through the serializer.
func (r *UserRepository) Save(ctx context.Context, user *db.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// Discover returns feed candidates for a viewer.
//
// Behavior:
//   - Excludes the viewer themselves.
//   - When the viewer's show_me preference is a concrete gender, only users
//     of that gender are returned; "everyone" (or empty) applies no filter.
//   - Capped at limit rows, newest profiles first.
func (r *UserRepository) Discover(ctx context.Context, viewer *db.User, limit int) ([]db.User, error) {
	query := r.db.WithContext(ctx).
		Where("id <> ?", viewer.ID).
		Order("created_at DESC").
		Limit(limit)

	switch viewer.ShowMe {
	case "male", "female":
		query = query.Where("gender = ?", viewer.ShowMe)
	}

	var users []db.User
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// IsDuplicateEmail reports whether the error is the unique-index violation
// raised for an already-registered email.
func IsDuplicateEmail(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
