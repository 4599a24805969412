package match

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/emberapp/ember-backend/internal/auth"
	"github.com/emberapp/ember-backend/internal/dto"
	svcErr "github.com/emberapp/ember-backend/internal/errors"
)

type likeInput struct {
	TargetUserID string `json:"target_user_id" binding:"required"`
}

func (s *Service) handleLike(c *gin.Context) {
	var input likeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		svcErr.Respond(c, svcErr.InvalidInput(err.Error()))
		return
	}

	targetID, err := strconv.ParseUint(input.TargetUserID, 10, 64)
	if err != nil || targetID == 0 {
		svcErr.Respond(c, svcErr.InvalidInput("target_user_id must be a valid user id"))
		return
	}

	actorID := auth.UserID(c)
	outcome, err := s.ProcessLike(c.Request.Context(), actorID, targetID)
	if err != nil {
		svcErr.Respond(c, err)
		return
	}

	resp := dto.MatchOutcome{Matched: outcome.Matched}
	if outcome.Match != nil {
		counterpart, err := s.users.FindByID(c.Request.Context(), targetID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			svcErr.Respond(c, svcErr.Map(err))
			return
		}
		resp.Match = dto.MatchRow(outcome.Match, counterpart)
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Service) handleListMatches(c *gin.Context) {
	entries, err := s.ListMatches(c.Request.Context(), auth.UserID(c))
	if err != nil {
		svcErr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": entries})
}

func (s *Service) handleLikedYou(c *gin.Context) {
	var token *string
	if v := c.Query("page_token"); v != "" {
		token = &v
	}

	likers, nextToken, err := s.LikedYou(c.Request.Context(), auth.UserID(c), token)
	if err != nil {
		svcErr.Respond(c, err)
		return
	}

	resp := gin.H{"items": likers}
	if nextToken != nil {
		resp["next_page_token"] = *nextToken
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Service) handleLikedYouCount(c *gin.Context) {
	count, err := s.CountLikedYou(c.Request.Context(), auth.UserID(c))
	if err != nil {
		svcErr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func formatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}
