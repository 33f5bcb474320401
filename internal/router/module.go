package router

import "github.com/gin-gonic/gin"

// Module is one feature area (webhooks, users, resumes) that owns its routes
// and attaches them, with their middleware, to the shared API group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
