package match

import (
	"github.com/gin-gonic/gin"

	"github.com/emberapp/ember-backend/internal/app"
)

// Registrar ties the match service into the HTTP server.
type Registrar struct {
	appCtx *app.AppContext
}

func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

func (r *Registrar) Register(_, protected *gin.RouterGroup) {
	service := NewService(r.appCtx)

	protected.POST("/likes", service.handleLike)
	protected.GET("/likes", service.handleLikedYou)
	protected.GET("/likes/count", service.handleLikedYouCount)
	protected.GET("/matches", service.handleListMatches)
}
