package server

import "github.com/gin-gonic/gin"

// Registrar is a common interface for all HTTP service registrars.
// Routes added to public skip authentication; routes added to protected sit
// behind the bearer-token middleware.
type Registrar interface {
	Register(public, protected *gin.RouterGroup)
}
