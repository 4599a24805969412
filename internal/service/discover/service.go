// Package discover serves the discovery feed: a capped list of candidate
// profiles filtered by the viewer's gender preference.
package discover

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emberapp/ember-backend/internal/app"
	"github.com/emberapp/ember-backend/internal/auth"
	"github.com/emberapp/ember-backend/internal/db"
	"github.com/emberapp/ember-backend/internal/dto"
	svcErr "github.com/emberapp/ember-backend/internal/errors"
	"github.com/emberapp/ember-backend/internal/repository"
)

const feedLimit = 50

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

// Feed returns up to feedLimit candidate profiles for the viewer.
func (s *Service) Feed(ctx context.Context, viewerID uint64) ([]db.User, error) {
	viewer, err := s.users.FindByID(ctx, viewerID)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	candidates, err := s.users.Discover(ctx, viewer, feedLimit)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return candidates, nil
}

func (s *Service) handleFeed(c *gin.Context) {
	candidates, err := s.Feed(c.Request.Context(), auth.UserID(c))
	if err != nil {
		svcErr.Respond(c, err)
		return
	}

	items := make([]*dto.UserPublic, 0, len(candidates))
	for i := range candidates {
		items = append(items, dto.PublicUser(&candidates[i]))
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Registrar ties the discover service into the HTTP server.
type Registrar struct {
	appCtx *app.AppContext
}

func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

func (r *Registrar) Register(_, protected *gin.RouterGroup) {
	service := NewService(r.appCtx)
	protected.GET("/discover", service.handleFeed)
}
