// Package account implements registration, login and profile management.
package account

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/emberapp/ember-backend/internal/app"
	"github.com/emberapp/ember-backend/internal/auth"
	"github.com/emberapp/ember-backend/internal/db"
	svcErr "github.com/emberapp/ember-backend/internal/errors"
	"github.com/emberapp/ember-backend/internal/repository"
)

type Service struct {
	appCtx *app.AppContext
	users  *repository.UserRepository
}

func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx: appCtx,
		users:  repository.NewUserRepository(appCtx.DB),
	}
}

// Register creates a new user with a hashed password and default discovery
// preferences.
func (s *Service) Register(ctx context.Context, email, password, fullName string) (*db.User, error) {
	if err := auth.ValidatePassword(password); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, svcErr.Conflict("email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, svcErr.Map(err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, svcErr.Internal(err)
	}

	user := &db.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		ShowMe:       "everyone",
		AgeMin:       18,
		AgeMax:       35,
		DistanceKm:   50,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsDuplicateEmail(err) {
			return nil, svcErr.Conflict("email already registered")
		}
		return nil, svcErr.Map(err)
	}

	s.appCtx.Logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Login checks the credentials and issues a bearer token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", svcErr.Unauthorized("incorrect email or password")
		}
		return "", svcErr.Map(err)
	}

	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		return "", svcErr.Unauthorized("incorrect email or password")
	}

	token, err := auth.GenerateToken(s.appCtx.Config, user.ID)
	if err != nil {
		return "", svcErr.Internal(err)
	}
	return token, nil
}

// Profile returns the acting user's own record.
func (s *Service) Profile(ctx context.Context, userID uint64) (*db.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return user, nil
}

// ProfileUpdate carries the optional profile fields a client may change.
// Nil pointers mean "leave as is".
type ProfileUpdate struct {
	FullName   *string
	Photos     *[]string
	Bio        *string
	Gender     *string
	Birthday   *string
	ShowMe     *string
	AgeRange   *[]int
	DistanceKm *int
	Interests  *[]string
}

func (u *ProfileUpdate) validate() error {
	if u.Gender != nil {
		switch *u.Gender {
		case "male", "female", "other":
		default:
			return svcErr.InvalidInput("gender must be one of male, female, other")
		}
	}
	if u.ShowMe != nil {
		switch *u.ShowMe {
		case "male", "female", "everyone":
		default:
			return svcErr.InvalidInput("show_me must be one of male, female, everyone")
		}
	}
	if u.Birthday != nil {
		if _, err := time.Parse("2006-01-02", *u.Birthday); err != nil {
			return svcErr.InvalidInput("birthday must be in YYYY-MM-DD format")
		}
	}
	if u.AgeRange != nil {
		r := *u.AgeRange
		if len(r) != 2 || r[0] < 18 || r[0] > r[1] {
			return svcErr.InvalidInput("age_range must be [min, max] with 18 <= min <= max")
		}
	}
	if u.DistanceKm != nil && (*u.DistanceKm < 1 || *u.DistanceKm > 500) {
		return svcErr.InvalidInput("distance_km must be between 1 and 500")
	}
	return nil
}

// UpdateProfile applies a partial update to the acting user's profile and
// returns the fresh record.
func (s *Service) UpdateProfile(ctx context.Context, userID uint64, upd ProfileUpdate) (*db.User, error) {
	if err := upd.validate(); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	if upd.FullName != nil {
		user.FullName = *upd.FullName
	}
	if upd.Photos != nil {
		user.Photos = *upd.Photos
	}
	if upd.Bio != nil {
		user.Bio = *upd.Bio
	}
	if upd.Gender != nil {
		user.Gender = *upd.Gender
	}
	if upd.Birthday != nil {
		user.Birthday = *upd.Birthday
	}
	if upd.ShowMe != nil {
		user.ShowMe = *upd.ShowMe
	}
	if upd.AgeRange != nil {
		user.AgeMin, user.AgeMax = (*upd.AgeRange)[0], (*upd.AgeRange)[1]
	}
	if upd.DistanceKm != nil {
		user.DistanceKm = *upd.DistanceKm
	}
	if upd.Interests != nil {
		user.Interests = *upd.Interests
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, svcErr.Map(err)
	}
	return user, nil
}
