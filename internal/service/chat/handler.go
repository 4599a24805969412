package chat

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emberapp/ember-backend/internal/auth"
	"github.com/emberapp/ember-backend/internal/dto"
	svcErr "github.com/emberapp/ember-backend/internal/errors"
)

type messageInput struct {
	Text     string `json:"text"`
	MediaURL string `json:"media_url"`
}

func matchIDParam(c *gin.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, svcErr.InvalidInput("invalid match id")
	}
	return id, nil
}

func (s *Service) handlePostMessage(c *gin.Context) {
	matchID, err := matchIDParam(c)
	if err != nil {
		svcErr.Respond(c, err)
		return
	}

	var input messageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		svcErr.Respond(c, svcErr.InvalidInput(err.Error()))
		return
	}

	msg, err := s.PostMessage(c.Request.Context(), matchID, auth.UserID(c), input.Text, input.MediaURL)
	if err != nil {
		svcErr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.MessageRow(msg))
}

func (s *Service) handleListMessages(c *gin.Context) {
	matchID, err := matchIDParam(c)
	if err != nil {
		svcErr.Respond(c, err)
		return
	}

	messages, err := s.ListMessages(c.Request.Context(), matchID, auth.UserID(c))
	if err != nil {
		svcErr.Respond(c, err)
		return
	}

	items := make([]*dto.MessageOut, 0, len(messages))
	for i := range messages {
		items = append(items, dto.MessageRow(&messages[i]))
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
