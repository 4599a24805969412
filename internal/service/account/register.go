package account

import (
	"github.com/gin-gonic/gin"

	"github.com/emberapp/ember-backend/internal/app"
)

// Registrar ties the account service into the HTTP server.
type Registrar struct {
	appCtx *app.AppContext
}

func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

func (r *Registrar) Register(public, protected *gin.RouterGroup) {
	service := NewService(r.appCtx)

	public.POST("/auth/register", service.handleRegister)
	public.POST("/auth/login", service.handleLogin)

	protected.GET("/me", service.handleMe)
	protected.PUT("/me", service.handleUpdateMe)
}
