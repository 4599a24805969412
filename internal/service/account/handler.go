package account

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emberapp/ember-backend/internal/auth"
	"github.com/emberapp/ember-backend/internal/dto"
	svcErr "github.com/emberapp/ember-backend/internal/errors"
)

type registerInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name"`
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type profileInput struct {
	FullName   *string   `json:"full_name"`
	Photos     *[]string `json:"photos"`
	Bio        *string   `json:"bio"`
	Gender     *string   `json:"gender"`
	Birthday   *string   `json:"birthday"`
	ShowMe     *string   `json:"show_me"`
	AgeRange   *[]int    `json:"age_range"`
	DistanceKm *int      `json:"distance_km"`
	Interests  *[]string `json:"interests"`
}

func (s *Service) handleRegister(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		svcErr.Respond(c, svcErr.InvalidInput(err.Error()))
		return
	}

	user, err := s.Register(c.Request.Context(), input.Email, input.Password, input.FullName)
	if err != nil {
		svcErr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.PublicUser(user))
}

func (s *Service) handleLogin(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		svcErr.Respond(c, svcErr.InvalidInput(err.Error()))
		return
	}

	token, err := s.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		svcErr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}

func (s *Service) handleMe(c *gin.Context) {
	user, err := s.Profile(c.Request.Context(), auth.UserID(c))
	if err != nil {
		svcErr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PublicUser(user))
}

func (s *Service) handleUpdateMe(c *gin.Context) {
	var input profileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		svcErr.Respond(c, svcErr.InvalidInput(err.Error()))
		return
	}

	user, err := s.UpdateProfile(c.Request.Context(), auth.UserID(c), ProfileUpdate{
		FullName:   input.FullName,
		Photos:     input.Photos,
		Bio:        input.Bio,
		Gender:     input.Gender,
		Birthday:   input.Birthday,
		ShowMe:     input.ShowMe,
		AgeRange:   input.AgeRange,
		DistanceKm: input.DistanceKm,
		Interests:  input.Interests,
	})
	if err != nil {
		svcErr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PublicUser(user))
}
