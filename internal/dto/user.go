package dto

import (
	"strconv"

	"github.com/emberapp/ember-backend/internal/db"
)

// UserPublic is the profile shape exposed to other users. Password hash and
// email-verification internals never leave the server through it.
type UserPublic struct {
	ID         string   `json:"id"`
	Email      string   `json:"email"`
	FullName   string   `json:"full_name,omitempty"`
	Photos     []string `json:"photos"`
	Bio        string   `json:"bio,omitempty"`
	Gender     string   `json:"gender,omitempty"`
	ShowMe     string   `json:"show_me,omitempty"`
	AgeRange   []int    `json:"age_range"`
	DistanceKm int      `json:"distance_km"`
	Interests  []string `json:"interests"`
	Verified   bool     `json:"verified"`
}

// PublicUser maps a stored user onto its public representation.
func PublicUser(u *db.User) *UserPublic {
	photos := u.Photos
	if photos == nil {
		photos = []string{}
	}
	interests := u.Interests
	if interests == nil {
		interests = []string{}
	}

	return &UserPublic{
		ID:         strconv.FormatUint(u.ID, 10),
		Email:      u.Email,
		FullName:   u.FullName,
		Photos:     photos,
		Bio:        u.Bio,
		Gender:     u.Gender,
		ShowMe:     u.ShowMe,
		AgeRange:   []int{u.AgeMin, u.AgeMax},
		DistanceKm: u.DistanceKm,
		Interests:  interests,
		Verified:   u.Verified,
	}
}
