package chat

import (
	"github.com/gin-gonic/gin"

	"github.com/emberapp/ember-backend/internal/app"
)

// Registrar ties the chat service into the HTTP server.
type Registrar struct {
	appCtx *app.AppContext
}

func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

func (r *Registrar) Register(_, protected *gin.RouterGroup) {
	service := NewService(r.appCtx)

	protected.POST("/matches/:id/messages", service.handlePostMessage)
	protected.GET("/matches/:id/messages", service.handleListMessages)
}
